// Package postgres implements repository.Repository on a PostgreSQL server
// through a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ repository.Repository = (*Repository)(nil)

// Repository implements repository.Repository using PostgreSQL
type Repository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// New connects to the server at connString and migrates the schema
func New(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	// Transaction-mode poolers reject named prepared statements.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	config.MaxConns = 10
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to open pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := &Repository{pool: pool, now: time.Now}
	if err := repo.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS skills (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		proficiency INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		problem_statement TEXT NOT NULL,
		tech_stack TEXT[] NOT NULL DEFAULT '{}',
		challenges TEXT NOT NULL,
		solution TEXT NOT NULL,
		outcome TEXT NOT NULL,
		github_link TEXT,
		demo_link TEXT,
		image_url TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS experience (
		id BIGSERIAL PRIMARY KEY,
		role TEXT NOT NULL,
		company TEXT NOT NULL,
		duration TEXT NOT NULL,
		description TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS education (
		id BIGSERIAL PRIMARY KEY,
		degree TEXT NOT NULL,
		institution TEXT NOT NULL,
		year TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

func (r *Repository) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Kind reports the backend kind
func (r *Repository) Kind() repository.Kind {
	return repository.KindPostgres
}

// ListSkills returns all skills in insertion order
func (r *Repository) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, category, proficiency FROM skills ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query skills: %w", err)
	}
	defer rows.Close()

	skills := []domain.Skill{}
	for rows.Next() {
		var (
			s        domain.Skill
			category string
		)
		if err := rows.Scan(&s.ID, &s.Name, &category, &s.Proficiency); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		s.Category = domain.SkillCategory(category)
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skills: %w", err)
	}

	return skills, nil
}

const projectColumns = `id, title, description, problem_statement, tech_stack,
	challenges, solution, outcome, github_link, demo_link, image_url`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		p                    domain.Project
		githubLink, demoLink *string
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ProblemStatement, &p.TechStack,
		&p.Challenges, &p.Solution, &p.Outcome, &githubLink, &demoLink, &p.ImageURL)
	if err != nil {
		return nil, err
	}
	if githubLink != nil {
		p.GithubLink = *githubLink
	}
	if demoLink != nil {
		p.DemoLink = *demoLink
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	return &p, nil
}

// ListProjects returns all projects in insertion order
func (r *Repository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

// GetProject retrieves a single project by ID
func (r *Repository) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := scanProject(r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query project: %w", err)
	}
	return p, nil
}

// ListExperience returns all experience entries in insertion order
func (r *Repository) ListExperience(ctx context.Context) ([]domain.Experience, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, role, company, duration, description FROM experience ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query experience: %w", err)
	}
	defer rows.Close()

	entries := []domain.Experience{}
	for rows.Next() {
		var e domain.Experience
		if err := rows.Scan(&e.ID, &e.Role, &e.Company, &e.Duration, &e.Description); err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating experience: %w", err)
	}

	return entries, nil
}

// ListEducation returns all education entries in insertion order
func (r *Repository) ListEducation(ctx context.Context) ([]domain.Education, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, degree, institution, year FROM education ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query education: %w", err)
	}
	defer rows.Close()

	entries := []domain.Education{}
	for rows.Next() {
		var e domain.Education
		if err := rows.Scan(&e.ID, &e.Degree, &e.Institution, &e.Year); err != nil {
			return nil, fmt.Errorf("failed to scan education: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating education: %w", err)
	}

	return entries, nil
}

// CreateMessage stores a contact message and returns the stored record
func (r *Repository) CreateMessage(ctx context.Context, in domain.MessageInput) (*domain.Message, error) {
	msg := domain.NewMessage(in, ceilMicrosecond(r.now().UTC()))

	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (name, email, message, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at
	`, msg.Name, msg.Email, msg.Message, msg.CreatedAt).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}
	msg.CreatedAt = msg.CreatedAt.UTC()

	return &msg, nil
}

// ceilMicrosecond rounds t up to TIMESTAMPTZ precision so the stored value
// is never earlier than t
func ceilMicrosecond(t time.Time) time.Time {
	truncated := t.Truncate(time.Microsecond)
	if truncated.Before(t) {
		return truncated.Add(time.Microsecond)
	}
	return truncated
}

// InsertSkills appends skills in slice order within one transaction
func (r *Repository) InsertSkills(ctx context.Context, skills []domain.Skill) error {
	return r.insertBatch(ctx, "skills", `
		INSERT INTO skills (name, category, proficiency) VALUES ($1, $2, $3)
	`, len(skills), func(i int) []any {
		s := skills[i]
		return []any{s.Name, string(s.Category), domain.ClampProficiency(s.Proficiency)}
	})
}

// InsertProjects appends projects in slice order within one transaction
func (r *Repository) InsertProjects(ctx context.Context, projects []domain.Project) error {
	return r.insertBatch(ctx, "projects", `
		INSERT INTO projects (title, description, problem_statement, tech_stack,
			challenges, solution, outcome, github_link, demo_link, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, len(projects), func(i int) []any {
		p := projects[i]
		techStack := p.TechStack
		if techStack == nil {
			techStack = []string{}
		}
		return []any{p.Title, p.Description, p.ProblemStatement, techStack,
			p.Challenges, p.Solution, p.Outcome, optional(p.GithubLink), optional(p.DemoLink), p.ImageURL}
	})
}

// InsertExperience appends experience entries in slice order within one transaction
func (r *Repository) InsertExperience(ctx context.Context, entries []domain.Experience) error {
	return r.insertBatch(ctx, "experience", `
		INSERT INTO experience (role, company, duration, description) VALUES ($1, $2, $3, $4)
	`, len(entries), func(i int) []any {
		e := entries[i]
		return []any{e.Role, e.Company, e.Duration, e.Description}
	})
}

// InsertEducation appends education entries in slice order within one transaction
func (r *Repository) InsertEducation(ctx context.Context, entries []domain.Education) error {
	return r.insertBatch(ctx, "education", `
		INSERT INTO education (degree, institution, year) VALUES ($1, $2, $3)
	`, len(entries), func(i int) []any {
		e := entries[i]
		return []any{e.Degree, e.Institution, e.Year}
	})
}

func (r *Repository) insertBatch(ctx context.Context, table, query string, n int, args func(i int) []any) error {
	if n == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := 0; i < n; i++ {
		if _, err := tx.Exec(ctx, query, args(i)...); err != nil {
			return fmt.Errorf("failed to insert %s row %d: %w", table, i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// optional maps an empty link to NULL
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Close releases the pool
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}
