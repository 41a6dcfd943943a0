package domain

import "time"

// MessageInput is a contact submission as received from a visitor.
// Validation happens before it reaches storage.
type MessageInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Message is a stored contact submission
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewMessage builds a Message from input, stamping it with createdAt.
// The ID is left for the backend to assign.
func NewMessage(in MessageInput, createdAt time.Time) Message {
	return Message{
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: createdAt,
	}
}
