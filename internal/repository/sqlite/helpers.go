package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"portfolio/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// ============================================================================
// Time Helpers
// ============================================================================

// timeLayout is how timestamps are stored in TEXT columns
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// ============================================================================
// JSON Marshaling Helpers
// ============================================================================

// marshalStrings encodes an ordered string list for a TEXT column.
// A nil slice is stored as "[]" so the column never holds NULL.
func marshalStrings(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// unmarshalStrings decodes a JSON string list, treating empty as no entries
func unmarshalStrings(s string) ([]string, error) {
	out := []string{}
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ============================================================================
// Skill Row Scanner
// ============================================================================

// skillRow holds all columns from a skill query for scanning
type skillRow struct {
	ID          int64
	Name        string
	Category    string
	Proficiency int
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match skillColumns order exactly
func (r *skillRow) scanArgs() []interface{} {
	return []interface{}{&r.ID, &r.Name, &r.Category, &r.Proficiency}
}

func (r *skillRow) toDomain() domain.Skill {
	return domain.Skill{
		ID:          r.ID,
		Name:        r.Name,
		Category:    domain.SkillCategory(r.Category),
		Proficiency: r.Proficiency,
	}
}

const skillColumns = `id, name, category, proficiency`

// ============================================================================
// Project Row Scanner
// ============================================================================

// projectRow holds all columns from a project query for scanning
type projectRow struct {
	ID               int64
	Title            string
	Description      string
	ProblemStatement string
	TechStackJSON    string
	Challenges       string
	Solution         string
	Outcome          string
	GithubLink       sql.NullString
	DemoLink         sql.NullString
	ImageURL         string
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match projectColumns order exactly:
// id, title, description, problem_statement, tech_stack, challenges,
// solution, outcome, github_link, demo_link, image_url
func (r *projectRow) scanArgs() []interface{} {
	return []interface{}{
		&r.ID,               // 1
		&r.Title,            // 2
		&r.Description,      // 3
		&r.ProblemStatement, // 4
		&r.TechStackJSON,    // 5
		&r.Challenges,       // 6
		&r.Solution,         // 7
		&r.Outcome,          // 8
		&r.GithubLink,       // 9
		&r.DemoLink,         // 10
		&r.ImageURL,         // 11
	}
}

// toDomain converts the scanned row to a domain.Project
func (r *projectRow) toDomain() (*domain.Project, error) {
	techStack, err := unmarshalStrings(r.TechStackJSON)
	if err != nil {
		return nil, fmt.Errorf("unmarshal tech stack: %w", err)
	}

	return &domain.Project{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		ProblemStatement: r.ProblemStatement,
		TechStack:        techStack,
		Challenges:       r.Challenges,
		Solution:         r.Solution,
		Outcome:          r.Outcome,
		GithubLink:       nullToString(r.GithubLink),
		DemoLink:         nullToString(r.DemoLink),
		ImageURL:         r.ImageURL,
	}, nil
}

// projectColumns returns the SELECT column list for project queries
const projectColumns = `id, title, description, problem_statement, tech_stack,
	challenges, solution, outcome, github_link, demo_link, image_url`

// projectInsertColumns is projectColumns without the generated id
const projectInsertColumns = `title, description, problem_statement, tech_stack,
	challenges, solution, outcome, github_link, demo_link, image_url`

// projectInsertArgs prepares arguments in projectInsertColumns order
func projectInsertArgs(p *domain.Project) ([]interface{}, error) {
	techStack, err := marshalStrings(p.TechStack)
	if err != nil {
		return nil, fmt.Errorf("marshal tech stack: %w", err)
	}

	return []interface{}{
		p.Title,
		p.Description,
		p.ProblemStatement,
		techStack,
		p.Challenges,
		p.Solution,
		p.Outcome,
		stringToNull(p.GithubLink),
		stringToNull(p.DemoLink),
		p.ImageURL,
	}, nil
}
