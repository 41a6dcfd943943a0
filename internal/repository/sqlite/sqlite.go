package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/repository"

	_ "modernc.org/sqlite"
)

var _ repository.Repository = (*Repository)(nil)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// New opens (creating if needed) the SQLite database at dbPath and migrates
// the schema. The file's parent directory must already exist.
func New(dbPath string) (*Repository, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("failed to open database: empty path")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite serializes writers; one connection also keeps ":memory:"
	// databases from splitting into several independent instances.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := &Repository{db: db, path: dbPath, now: time.Now}
	if err := repo.applyPragmas(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) applyPragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := r.db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS skills (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		proficiency INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		problem_statement TEXT NOT NULL,
		tech_stack TEXT NOT NULL,
		challenges TEXT NOT NULL,
		solution TEXT NOT NULL,
		outcome TEXT NOT NULL,
		github_link TEXT,
		demo_link TEXT,
		image_url TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS experience (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		role TEXT NOT NULL,
		company TEXT NOT NULL,
		duration TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS education (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		degree TEXT NOT NULL,
		institution TEXT NOT NULL,
		year TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Kind reports the backend kind
func (r *Repository) Kind() repository.Kind {
	return repository.KindSQLite
}

// Path returns the database file path
func (r *Repository) Path() string {
	return r.path
}

// ListSkills returns all skills in insertion order
func (r *Repository) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query skills: %w", err)
	}
	defer rows.Close()

	skills := []domain.Skill{}
	for rows.Next() {
		var row skillRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skills: %w", err)
	}

	return skills, nil
}

// ListProjects returns all projects in insertion order
func (r *Repository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		var row projectRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		project, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("project %d: %w", row.ID, err)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

// GetProject retrieves a single project by ID
func (r *Repository) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	var row projectRow
	err := r.db.QueryRowContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects WHERE id = ?
	`, id).Scan(row.scanArgs()...)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query project: %w", err)
	}

	return row.toDomain()
}

// ListExperience returns all experience entries in insertion order
func (r *Repository) ListExperience(ctx context.Context) ([]domain.Experience, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, role, company, duration, description
		FROM experience ORDER BY id
	`)
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
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, degree, institution, year
		FROM education ORDER BY id
	`)
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
	msg := domain.NewMessage(in, r.now().UTC())

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (name, email, message, created_at)
		VALUES (?, ?, ?, ?)
	`, msg.Name, msg.Email, msg.Message, formatTime(msg.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read message id: %w", err)
	}
	msg.ID = id

	return &msg, nil
}

// InsertSkills appends skills in slice order within one transaction
func (r *Repository) InsertSkills(ctx context.Context, skills []domain.Skill) error {
	return r.insertBatch(ctx, "skills", `
		INSERT INTO skills (name, category, proficiency) VALUES (?, ?, ?)
	`, len(skills), func(i int) ([]interface{}, error) {
		s := skills[i]
		return []interface{}{s.Name, string(s.Category), domain.ClampProficiency(s.Proficiency)}, nil
	})
}

// InsertProjects appends projects in slice order within one transaction
func (r *Repository) InsertProjects(ctx context.Context, projects []domain.Project) error {
	return r.insertBatch(ctx, "projects", `
		INSERT INTO projects (`+projectInsertColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, len(projects), func(i int) ([]interface{}, error) {
		return projectInsertArgs(&projects[i])
	})
}

// InsertExperience appends experience entries in slice order within one transaction
func (r *Repository) InsertExperience(ctx context.Context, entries []domain.Experience) error {
	return r.insertBatch(ctx, "experience", `
		INSERT INTO experience (role, company, duration, description) VALUES (?, ?, ?, ?)
	`, len(entries), func(i int) ([]interface{}, error) {
		e := entries[i]
		return []interface{}{e.Role, e.Company, e.Duration, e.Description}, nil
	})
}

// InsertEducation appends education entries in slice order within one transaction
func (r *Repository) InsertEducation(ctx context.Context, entries []domain.Education) error {
	return r.insertBatch(ctx, "education", `
		INSERT INTO education (degree, institution, year) VALUES (?, ?, ?)
	`, len(entries), func(i int) ([]interface{}, error) {
		e := entries[i]
		return []interface{}{e.Degree, e.Institution, e.Year}, nil
	})
}

// insertBatch runs one prepared INSERT per element inside a transaction.
// Either the whole batch lands or none of it does.
func (r *Repository) insertBatch(ctx context.Context, table, query string, n int, args func(i int) ([]interface{}, error)) error {
	if n == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare %s statement: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		a, err := args(i)
		if err != nil {
			return fmt.Errorf("failed to encode %s row %d: %w", table, i, err)
		}
		if _, err := stmt.ExecContext(ctx, a...); err != nil {
			return fmt.Errorf("failed to insert %s row %d: %w", table, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
