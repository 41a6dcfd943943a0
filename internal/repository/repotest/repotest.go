// Package repotest holds the behavioural suite every repository.Repository
// implementation must pass.
package repotest

import (
	"context"
	"sync"
	"testing"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty repository for one subtest
type Factory func(t *testing.T) repository.Repository

// Run executes the shared suite against repositories built by newRepo
func Run(t *testing.T, newRepo Factory) {
	t.Run("EmptyListsAreNonNil", func(t *testing.T) { testEmptyLists(t, newRepo(t)) })
	t.Run("InsertionOrder", func(t *testing.T) { testInsertionOrder(t, newRepo(t)) })
	t.Run("GetProject", func(t *testing.T) { testGetProject(t, newRepo(t)) })
	t.Run("ProjectOptionalLinks", func(t *testing.T) { testOptionalLinks(t, newRepo(t)) })
	t.Run("ProficiencyDefault", func(t *testing.T) { testProficiencyDefault(t, newRepo(t)) })
	t.Run("CreateMessage", func(t *testing.T) { testCreateMessage(t, newRepo(t)) })
	t.Run("MessageIDsIncrease", func(t *testing.T) { testMessageIDsIncrease(t, newRepo(t)) })
	t.Run("ConcurrentMessages", func(t *testing.T) { testConcurrentMessages(t, newRepo(t)) })
	t.Run("ReturnedRecordsAreCopies", func(t *testing.T) { testCopies(t, newRepo(t)) })
}

func sampleProjects() []domain.Project {
	return []domain.Project{
		{
			Title:            "Alpha",
			Description:      "first",
			ProblemStatement: "p1",
			TechStack:        []string{"Go", "SQLite", "HTMX"},
			Challenges:       "c1",
			Solution:         "s1",
			Outcome:          "o1",
			GithubLink:       "https://github.com/example/alpha",
			DemoLink:         "https://alpha.example.com",
			ImageURL:         "https://img.example.com/alpha.png",
		},
		{
			Title:            "Beta",
			Description:      "second",
			ProblemStatement: "p2",
			TechStack:        []string{"Python"},
			Challenges:       "c2",
			Solution:         "s2",
			Outcome:          "o2",
			ImageURL:         "https://img.example.com/beta.png",
		},
	}
}

func testEmptyLists(t *testing.T, repo repository.Repository) {
	ctx := context.Background()

	skills, err := repo.ListSkills(ctx)
	require.NoError(t, err)
	assert.NotNil(t, skills)
	assert.Empty(t, skills)

	projects, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)

	exp, err := repo.ListExperience(ctx)
	require.NoError(t, err)
	assert.NotNil(t, exp)

	edu, err := repo.ListEducation(ctx)
	require.NoError(t, err)
	assert.NotNil(t, edu)
}

func testInsertionOrder(t *testing.T, repo repository.Repository) {
	ctx := context.Background()

	// Deliberately not alphabetical.
	require.NoError(t, repo.InsertSkills(ctx, []domain.Skill{
		{Name: "Zig", Category: "backend", Proficiency: 10},
		{Name: "Ansible", Category: "tools", Proficiency: 50},
		{Name: "Mojo", Category: "ai_ml", Proficiency: 20},
	}))
	require.NoError(t, repo.InsertExperience(ctx, []domain.Experience{
		{Role: "Later", Company: "B", Duration: "2023", Description: "d"},
		{Role: "Earlier", Company: "A", Duration: "2020", Description: "d"},
	}))
	require.NoError(t, repo.InsertEducation(ctx, []domain.Education{
		{Degree: "MSc", Institution: "U2", Year: "2022"},
		{Degree: "BSc", Institution: "U1", Year: "2019"},
	}))

	for i := 0; i < 2; i++ {
		skills, err := repo.ListSkills(ctx)
		require.NoError(t, err)
		require.Len(t, skills, 3)
		assert.Equal(t, []string{"Zig", "Ansible", "Mojo"}, []string{skills[0].Name, skills[1].Name, skills[2].Name})
		assert.Equal(t, []int64{1, 2, 3}, []int64{skills[0].ID, skills[1].ID, skills[2].ID})

		exp, err := repo.ListExperience(ctx)
		require.NoError(t, err)
		require.Len(t, exp, 2)
		assert.Equal(t, "Later", exp[0].Role)
		assert.Equal(t, "Earlier", exp[1].Role)

		edu, err := repo.ListEducation(ctx)
		require.NoError(t, err)
		require.Len(t, edu, 2)
		assert.Equal(t, "MSc", edu[0].Degree)
		assert.Equal(t, int64(2), edu[1].ID)
	}
}

func testGetProject(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.InsertProjects(ctx, sampleProjects()))

	listed, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	for _, want := range listed {
		got, err := repo.GetProject(ctx, want.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want, *got)
	}

	first, err := repo.GetProject(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "Alpha", first.Title)
	assert.Equal(t, []string{"Go", "SQLite", "HTMX"}, first.TechStack)

	for _, id := range []int64{0, -1, 3, 1 << 40} {
		missing, err := repo.GetProject(ctx, id)
		require.NoError(t, err, "id %d", id)
		assert.Nil(t, missing, "id %d", id)
	}
}

func testOptionalLinks(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.InsertProjects(ctx, sampleProjects()))

	beta, err := repo.GetProject(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, beta)
	assert.Empty(t, beta.GithubLink)
	assert.Empty(t, beta.DemoLink)
	assert.Equal(t, "https://img.example.com/beta.png", beta.ImageURL)
}

func testProficiencyDefault(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.InsertSkills(ctx, []domain.Skill{{Name: "Bash", Category: "tools"}}))

	skills, err := repo.ListSkills(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, 0, skills[0].Proficiency)
	assert.Equal(t, domain.SkillCategoryTools, skills[0].Category)
}

func testCreateMessage(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.InsertSkills(ctx, []domain.Skill{{Name: "Go", Category: "backend", Proficiency: 80}}))
	before, err := repo.ListSkills(ctx)
	require.NoError(t, err)

	callTime := time.Now().UTC().Truncate(time.Microsecond)
	msg, err := repo.CreateMessage(ctx, domain.MessageInput{Name: "Ada", Email: "ada@example.com", Message: "hi"})
	require.NoError(t, err)
	require.NotNil(t, msg)

	assert.Greater(t, msg.ID, int64(0))
	assert.Equal(t, "Ada", msg.Name)
	assert.Equal(t, "ada@example.com", msg.Email)
	assert.Equal(t, "hi", msg.Message)
	assert.False(t, msg.CreatedAt.Before(callTime), "createdAt %v earlier than call %v", msg.CreatedAt, callTime)

	after, err := repo.ListSkills(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func testMessageIDsIncrease(t *testing.T, repo repository.Repository) {
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		msg, err := repo.CreateMessage(ctx, domain.MessageInput{Name: "n", Email: "n@example.com", Message: "m"})
		require.NoError(t, err)
		assert.Greater(t, msg.ID, last)
		last = msg.ID
	}
}

func testConcurrentMessages(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	const n = 20

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[int64]bool, n)
	)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg, err := repo.CreateMessage(ctx, domain.MessageInput{Name: "c", Email: "c@example.com", Message: "m"})
			if err != nil {
				errs <- err
				return
			}
			mu.Lock()
			ids[msg.ID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Len(t, ids, n, "message ids must be distinct")
}

func testCopies(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.InsertProjects(ctx, sampleProjects()))

	p, err := repo.GetProject(ctx, 1)
	require.NoError(t, err)
	p.TechStack[0] = "COBOL"
	p.Title = "changed"

	again, err := repo.GetProject(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Go", again.TechStack[0])
	assert.Equal(t, "Alpha", again.Title)
}
