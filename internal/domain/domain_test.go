package domain

import (
	"testing"
	"time"
)

func TestClampProficiency(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 0},
		{0, 0},
		{90, 90},
		{100, 100},
		{140, 100},
	}

	for _, tt := range tests {
		if got := ClampProficiency(tt.in); got != tt.want {
			t.Errorf("ClampProficiency(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestProjectClone(t *testing.T) {
	p := Project{Title: "x", TechStack: []string{"Go", "SQLite"}}
	c := p.Clone()
	c.TechStack[0] = "Rust"

	if p.TechStack[0] != "Go" {
		t.Errorf("clone shares tech stack with original: %v", p.TechStack)
	}

	empty := Project{}.Clone()
	if empty.TechStack != nil {
		t.Errorf("expected nil tech stack, got %v", empty.TechStack)
	}
}

func TestNewMessage(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	msg := NewMessage(MessageInput{Name: "Ada", Email: "ada@example.com", Message: "hi"}, now)

	if msg.ID != 0 {
		t.Errorf("expected unassigned id, got %d", msg.ID)
	}
	if msg.Name != "Ada" || msg.Email != "ada@example.com" || msg.Message != "hi" {
		t.Errorf("input fields not copied: %+v", msg)
	}
	if !msg.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", msg.CreatedAt, now)
	}
}

func TestDatasetCounts(t *testing.T) {
	var nilSet *Dataset
	if got := nilSet.Counts(); got != (Counts{}) {
		t.Errorf("nil dataset counts = %+v", got)
	}

	d := &Dataset{
		Skills:    []Skill{{Name: "Go"}, {Name: "SQL"}},
		Projects:  []Project{{Title: "p"}},
		Education: []Education{{Degree: "BSc"}},
	}
	want := Counts{Skills: 2, Projects: 1, Experience: 0, Education: 1}
	if got := d.Counts(); got != want {
		t.Errorf("Counts() = %+v, want %+v", got, want)
	}
}

func TestDatasetNormalized(t *testing.T) {
	ds := Dataset{Skills: []Skill{{Name: "Go"}}}
	n := ds.Normalized()

	if len(n.Skills) != 1 || n.Skills[0].Name != "Go" {
		t.Fatalf("skills changed: %+v", n.Skills)
	}
	if n.Projects == nil || n.Experience == nil || n.Education == nil {
		t.Fatal("expected empty, non-nil collections")
	}
	if ds.Projects != nil {
		t.Fatal("receiver must not be modified")
	}
}
