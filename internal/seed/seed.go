// Package seed populates an empty store with the canonical demo content.
//
// The only "already seeded" signal is a non-empty skills collection; there is
// no version marker. If skills exist but another collection was cleared or
// only partially written, it is left as is.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"portfolio/internal/codec"
	"portfolio/internal/domain"
)

//go:embed dataset.yaml
var canonicalYAML []byte

// Target is the subset of a repository the seeder needs
type Target interface {
	ListSkills(ctx context.Context) ([]domain.Skill, error)
	InsertSkills(ctx context.Context, skills []domain.Skill) error
	InsertProjects(ctx context.Context, projects []domain.Project) error
	InsertExperience(ctx context.Context, entries []domain.Experience) error
	InsertEducation(ctx context.Context, entries []domain.Education) error
}

// Result reports what a seeding run did
type Result struct {
	Seeded bool          `json:"seeded"`
	Counts domain.Counts `json:"counts"`
}

// Canonical returns a fresh copy of the built-in dataset
func Canonical() (*domain.Dataset, error) {
	ds, err := codec.NewYAMLCodec().Parse(bytes.NewReader(canonicalYAML))
	if err != nil {
		return nil, fmt.Errorf("built-in dataset: %w", err)
	}
	return ds, nil
}

// LoadFile reads a dataset from disk. Files ending in .json are read as
// JSON, everything else as YAML.
func LoadFile(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := codec.ImporterForPath(path).Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return ds, nil
}

// IfEmpty writes ds into target when target has no skills. Collections are
// written in a fixed order (skills, projects, experience, education) and the
// first failure stops the run.
func IfEmpty(ctx context.Context, target Target, ds *domain.Dataset) (Result, error) {
	if ds == nil {
		return Result{}, fmt.Errorf("seed: nil dataset")
	}

	existing, err := target.ListSkills(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("seed: probe skills: %w", err)
	}
	if len(existing) > 0 {
		return Result{Seeded: false}, nil
	}

	if err := target.InsertSkills(ctx, ds.Skills); err != nil {
		return Result{}, fmt.Errorf("seed: insert skills: %w", err)
	}
	if err := target.InsertProjects(ctx, ds.Projects); err != nil {
		return Result{}, fmt.Errorf("seed: insert projects: %w", err)
	}
	if err := target.InsertExperience(ctx, ds.Experience); err != nil {
		return Result{}, fmt.Errorf("seed: insert experience: %w", err)
	}
	if err := target.InsertEducation(ctx, ds.Education); err != nil {
		return Result{}, fmt.Errorf("seed: insert education: %w", err)
	}

	return Result{Seeded: true, Counts: ds.Counts()}, nil
}
