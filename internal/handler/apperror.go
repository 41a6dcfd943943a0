package handler

import "net/http"

// AppError is an error with a client-facing status and message
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message, field string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Field: field}
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, nil)
}

func Internal(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "Internal Server Error", err)
}
