package repository

import (
	"context"
	"errors"

	"portfolio/internal/domain"
)

// Kind names a backend implementation
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindMemory   Kind = "memory"
)

// ErrNotInitialized is reported when storage is used before a backend has
// been selected.
var ErrNotInitialized = errors.New("storage not initialized")

// Reader defines the read operations served to visitors
type Reader interface {
	ListSkills(ctx context.Context) ([]domain.Skill, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	// GetProject returns nil, nil when no project has the given id
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	ListExperience(ctx context.Context) ([]domain.Experience, error)
	ListEducation(ctx context.Context) ([]domain.Education, error)
}

// Seedable defines the batch writes used to populate an empty store
type Seedable interface {
	InsertSkills(ctx context.Context, skills []domain.Skill) error
	InsertProjects(ctx context.Context, projects []domain.Project) error
	InsertExperience(ctx context.Context, entries []domain.Experience) error
	InsertEducation(ctx context.Context, entries []domain.Education) error
}

// Repository defines the full capability set of a storage backend
type Repository interface {
	Reader
	Seedable

	// CreateMessage stores a contact message, assigning ID and CreatedAt
	CreateMessage(ctx context.Context, in domain.MessageInput) (*domain.Message, error)

	// Kind reports which implementation this is
	Kind() Kind

	// Close releases resources
	Close() error
}
