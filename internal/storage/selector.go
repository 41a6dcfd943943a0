// Package storage chooses the backend for the process and exposes it
// through a single façade.
//
// Selection happens once. After Init returns, every caller of Default sees
// the same backend until the process exits; a durable store that cannot be
// opened degrades to the in-memory store instead of failing startup.
package storage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"portfolio/internal/config"
	"portfolio/internal/repository"
	"portfolio/internal/repository/memory"
	"portfolio/internal/repository/postgres"
	"portfolio/internal/repository/sqlite"
)

// connectTimeout bounds the initial connection to a postgres server
const connectTimeout = 10 * time.Second

// Opener opens the durable store at location
type Opener func(location string) (repository.Repository, error)

// OpenDurable opens a postgres store for postgres:// URLs and a SQLite file
// for anything else
func OpenDurable(location string) (repository.Repository, error) {
	if config.IsPostgresURL(location) {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		return postgres.New(ctx, location)
	}
	return sqlite.New(location)
}

// Selector decides once which backend serves the process
type Selector struct {
	cfg    config.DatabaseConfig
	open   Opener
	logger *slog.Logger

	once sync.Once
	repo repository.Repository
}

// NewSelector creates a selector. A nil open uses OpenDurable and a nil
// logger uses slog.Default().
func NewSelector(cfg config.DatabaseConfig, open Opener, logger *slog.Logger) *Selector {
	if open == nil {
		open = OpenDurable
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{cfg: cfg, open: open, logger: logger}
}

// Select returns the backend, choosing it on the first call
func (s *Selector) Select() repository.Repository {
	s.once.Do(func() {
		s.repo = s.choose()
	})
	return s.repo
}

func (s *Selector) choose() repository.Repository {
	if s.cfg.ForceMemory || s.cfg.Serverless {
		s.logger.Info("storage backend selected",
			"kind", repository.KindMemory,
			"force_memory", s.cfg.ForceMemory,
			"serverless", s.cfg.Serverless)
		return memory.New()
	}

	repo, err := s.open(s.cfg.Path)
	if err != nil {
		s.logger.Warn("durable store unavailable, falling back to memory",
			"location", config.RedactLocation(s.cfg.Path),
			"error", err)
		return memory.New()
	}

	s.logger.Info("storage backend selected",
		"kind", repo.Kind(),
		"location", config.RedactLocation(s.cfg.Path))
	return repo
}
