package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"portfolio/internal/domain"
	"portfolio/internal/repository"

	"github.com/go-playground/validator/v10"
)

// ErrProjectNotFound is returned by Project when no project has the id
var ErrProjectNotFound = errors.New("project not found")

// ValidationError describes the first invalid field of a contact submission
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PortfolioService provides the operations behind the public API
type PortfolioService struct {
	repo     repository.Repository
	events   *EventBus
	validate *validator.Validate
}

// NewPortfolioService creates a service over repo. events may be nil.
func NewPortfolioService(repo repository.Repository, events *EventBus) *PortfolioService {
	return &PortfolioService{
		repo:     repo,
		events:   events,
		validate: newValidator(),
	}
}

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Backend reports which storage kind serves requests
func (s *PortfolioService) Backend() repository.Kind {
	return s.repo.Kind()
}

func (s *PortfolioService) Skills(ctx context.Context) ([]domain.Skill, error) {
	return s.repo.ListSkills(ctx)
}

func (s *PortfolioService) Projects(ctx context.Context) ([]domain.Project, error) {
	return s.repo.ListProjects(ctx)
}

// Project returns the project with id, or ErrProjectNotFound
func (s *PortfolioService) Project(ctx context.Context, id int64) (*domain.Project, error) {
	project, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func (s *PortfolioService) Experience(ctx context.Context) ([]domain.Experience, error) {
	return s.repo.ListExperience(ctx)
}

func (s *PortfolioService) Education(ctx context.Context) ([]domain.Education, error) {
	return s.repo.ListEducation(ctx)
}

// SubmitContact validates in and stores it. An invalid submission returns a
// *ValidationError for the first failing field.
func (s *PortfolioService) SubmitContact(ctx context.Context, in domain.MessageInput) (*domain.Message, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	msg, err := s.repo.CreateMessage(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("store contact message: %w", err)
	}

	s.events.Publish(Event{
		Type:    EventMessageReceived,
		Payload: MessageReceived{ID: msg.ID, CreatedAt: msg.CreatedAt},
	})

	return msg, nil
}

func (s *PortfolioService) validateInput(in domain.MessageInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate contact message: %w", err)
	}
	first := fieldErrs[0]
	return &ValidationError{Field: first.Field(), Message: describe(first)}
}

// describe turns a field error into a visitor-facing sentence
func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return "Invalid email address"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

// Snapshot returns the current read-only content as a dataset
func (s *PortfolioService) Snapshot(ctx context.Context) (*domain.Dataset, error) {
	skills, err := s.repo.ListSkills(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	experience, err := s.repo.ListExperience(ctx)
	if err != nil {
		return nil, err
	}
	education, err := s.repo.ListEducation(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Dataset{
		Skills:     skills,
		Projects:   projects,
		Experience: experience,
		Education:  education,
	}, nil
}
