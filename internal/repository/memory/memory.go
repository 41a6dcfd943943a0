// Package memory provides a volatile, process-local implementation of
// repository.Repository. It is used when no durable store is configured or
// the durable store cannot be opened, and in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/repository"
)

var _ repository.Repository = (*Store)(nil)

// Store keeps every collection in insertion-ordered slices guarded by one
// RWMutex. IDs come from per-collection counters that start at 1 and never
// go backwards.
type Store struct {
	mu    sync.RWMutex
	nowFn func() time.Time

	skills     []domain.Skill
	projects   []domain.Project
	experience []domain.Experience
	education  []domain.Education
	messages   []domain.Message

	lastSkillID      int64
	lastProjectID    int64
	lastExperienceID int64
	lastEducationID  int64
	lastMessageID    int64
}

// New creates an empty store
func New() *Store {
	return &Store{
		nowFn: func() time.Time { return time.Now().UTC() },
	}
}

// Kind reports the backend kind
func (s *Store) Kind() repository.Kind {
	return repository.KindMemory
}

// ListSkills returns all skills in insertion order
func (s *Store) ListSkills(_ context.Context) ([]domain.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Skill, len(s.skills))
	copy(out, s.skills)
	return out, nil
}

// ListProjects returns all projects in insertion order
func (s *Store) ListProjects(_ context.Context) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p.Clone())
	}
	return out, nil
}

// GetProject retrieves a project by ID, or nil when absent
func (s *Store) GetProject(_ context.Context, id int64) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			c := p.Clone()
			return &c, nil
		}
	}
	return nil, nil
}

// ListExperience returns all experience entries in insertion order
func (s *Store) ListExperience(_ context.Context) ([]domain.Experience, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Experience, len(s.experience))
	copy(out, s.experience)
	return out, nil
}

// ListEducation returns all education entries in insertion order
func (s *Store) ListEducation(_ context.Context) ([]domain.Education, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Education, len(s.education))
	copy(out, s.education)
	return out, nil
}

// CreateMessage stores a contact message and returns the stored record
func (s *Store) CreateMessage(_ context.Context, in domain.MessageInput) (*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastMessageID++
	msg := domain.NewMessage(in, s.nowFn())
	msg.ID = s.lastMessageID
	s.messages = append(s.messages, msg)
	return &msg, nil
}

// InsertSkills appends skills in slice order
func (s *Store) InsertSkills(_ context.Context, skills []domain.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sk := range skills {
		s.lastSkillID++
		sk.ID = s.lastSkillID
		sk.Proficiency = domain.ClampProficiency(sk.Proficiency)
		s.skills = append(s.skills, sk)
	}
	return nil
}

// InsertProjects appends projects in slice order
func (s *Store) InsertProjects(_ context.Context, projects []domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range projects {
		s.lastProjectID++
		p = p.Clone()
		p.ID = s.lastProjectID
		if p.TechStack == nil {
			p.TechStack = []string{}
		}
		s.projects = append(s.projects, p)
	}
	return nil
}

// InsertExperience appends experience entries in slice order
func (s *Store) InsertExperience(_ context.Context, entries []domain.Experience) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.lastExperienceID++
		e.ID = s.lastExperienceID
		s.experience = append(s.experience, e)
	}
	return nil
}

// InsertEducation appends education entries in slice order
func (s *Store) InsertEducation(_ context.Context, entries []domain.Education) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.lastEducationID++
		e.ID = s.lastEducationID
		s.education = append(s.education, e)
	}
	return nil
}

// MessageCount returns how many messages have been stored
func (s *Store) MessageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Close is a no-op; the data is discarded with the store
func (s *Store) Close() error {
	return nil
}
