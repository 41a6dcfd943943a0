package storage

import (
	"context"
	"log/slog"
	"sync"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	"portfolio/internal/repository"
	"portfolio/internal/seed"
)

var _ repository.Repository = (*Facade)(nil)

// Facade forwards every operation to the selected backend. Calling any
// method on a Facade without a backend panics with
// repository.ErrNotInitialized.
type Facade struct {
	repo repository.Repository
}

// NewFacade wraps repo
func NewFacade(repo repository.Repository) *Facade {
	return &Facade{repo: repo}
}

func (f *Facade) backend() repository.Repository {
	if f == nil || f.repo == nil {
		panic(repository.ErrNotInitialized)
	}
	return f.repo
}

// Kind reports which backend was selected
func (f *Facade) Kind() repository.Kind {
	return f.backend().Kind()
}

// ListSkills returns all skills in insertion order
func (f *Facade) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	return f.backend().ListSkills(ctx)
}

// ListProjects returns all projects in insertion order
func (f *Facade) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return f.backend().ListProjects(ctx)
}

// GetProject returns the project with id, or nil if there is none
func (f *Facade) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	return f.backend().GetProject(ctx, id)
}

// ListExperience returns all experience entries in insertion order
func (f *Facade) ListExperience(ctx context.Context) ([]domain.Experience, error) {
	return f.backend().ListExperience(ctx)
}

// ListEducation returns all education entries in insertion order
func (f *Facade) ListEducation(ctx context.Context) ([]domain.Education, error) {
	return f.backend().ListEducation(ctx)
}

// CreateMessage stores a contact message. The backend assigns the ID and
// creation time.
func (f *Facade) CreateMessage(ctx context.Context, in domain.MessageInput) (*domain.Message, error) {
	return f.backend().CreateMessage(ctx, in)
}

// InsertSkills appends skills in slice order
func (f *Facade) InsertSkills(ctx context.Context, skills []domain.Skill) error {
	return f.backend().InsertSkills(ctx, skills)
}

// InsertProjects appends projects in slice order
func (f *Facade) InsertProjects(ctx context.Context, projects []domain.Project) error {
	return f.backend().InsertProjects(ctx, projects)
}

// InsertExperience appends experience entries in slice order
func (f *Facade) InsertExperience(ctx context.Context, entries []domain.Experience) error {
	return f.backend().InsertExperience(ctx, entries)
}

// InsertEducation appends education entries in slice order
func (f *Facade) InsertEducation(ctx context.Context, entries []domain.Education) error {
	return f.backend().InsertEducation(ctx, entries)
}

// SeedIfEmpty populates the backend with ds unless it already holds skills
func (f *Facade) SeedIfEmpty(ctx context.Context, ds *domain.Dataset) (seed.Result, error) {
	return seed.IfEmpty(ctx, f.backend(), ds)
}

// Close releases the backend
func (f *Facade) Close() error {
	return f.backend().Close()
}

// Process-wide façade installed by Init.
var (
	initMu  sync.Mutex
	current *Facade
)

// Init selects the backend for the process and installs the façade returned
// by Default. Later calls return the façade from the first call.
func Init(cfg config.DatabaseConfig, logger *slog.Logger) *Facade {
	return initWith(NewSelector(cfg, nil, logger))
}

func initWith(sel *Selector) *Facade {
	initMu.Lock()
	defer initMu.Unlock()
	if current == nil {
		current = NewFacade(sel.Select())
	}
	return current
}

// Default returns the façade installed by Init. It panics with
// repository.ErrNotInitialized if Init has not run.
func Default() *Facade {
	initMu.Lock()
	defer initMu.Unlock()
	if current == nil {
		panic(repository.ErrNotInitialized)
	}
	return current
}
