package memory

import (
	"context"
	"testing"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/repository"
	"portfolio/internal/repository/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSuite(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.Repository {
		return New()
	})
}

func TestKind(t *testing.T) {
	assert.Equal(t, repository.KindMemory, New().Kind())
}

func TestCreateMessageUsesClock(t *testing.T) {
	s := New()
	fixed := time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)
	s.nowFn = func() time.Time { return fixed }

	msg, err := s.CreateMessage(context.Background(), domain.MessageInput{Name: "Ada", Email: "ada@example.com", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.ID)
	assert.True(t, msg.CreatedAt.Equal(fixed))
	assert.Equal(t, 1, s.MessageCount())
}

func TestInsertDoesNotAliasCallerSlices(t *testing.T) {
	ctx := context.Background()
	s := New()
	stack := []string{"Go", "Redis"}
	require.NoError(t, s.InsertProjects(ctx, []domain.Project{{Title: "x", TechStack: stack, ImageURL: "https://img"}}))

	stack[0] = "Perl"
	p, err := s.GetProject(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []string{"Go", "Redis"}, p.TechStack)
}

func TestProficiencyClamped(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.InsertSkills(ctx, []domain.Skill{
		{Name: "hi", Proficiency: 150},
		{Name: "lo", Proficiency: -3},
	}))

	skills, err := s.ListSkills(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, skills[0].Proficiency)
	assert.Equal(t, 0, skills[1].Proficiency)
}

func TestCloseIsNoop(t *testing.T) {
	s := New()
	require.NoError(t, s.InsertSkills(context.Background(), []domain.Skill{{Name: "Go"}}))
	require.NoError(t, s.Close())

	skills, err := s.ListSkills(context.Background())
	require.NoError(t, err)
	assert.Len(t, skills, 1)
}
