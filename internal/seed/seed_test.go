package seed_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"portfolio/internal/domain"
	"portfolio/internal/repository"
	"portfolio/internal/repository/memory"
	"portfolio/internal/repository/sqlite"
	"portfolio/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTarget struct {
	mock.Mock
}

func (m *MockTarget) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Skill), args.Error(1)
}

func (m *MockTarget) InsertSkills(ctx context.Context, skills []domain.Skill) error {
	return m.Called(ctx, skills).Error(0)
}

func (m *MockTarget) InsertProjects(ctx context.Context, projects []domain.Project) error {
	return m.Called(ctx, projects).Error(0)
}

func (m *MockTarget) InsertExperience(ctx context.Context, entries []domain.Experience) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockTarget) InsertEducation(ctx context.Context, entries []domain.Education) error {
	return m.Called(ctx, entries).Error(0)
}

func counts(t *testing.T, repo repository.Reader) domain.Counts {
	t.Helper()
	ctx := context.Background()
	skills, err := repo.ListSkills(ctx)
	require.NoError(t, err)
	projects, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	exp, err := repo.ListExperience(ctx)
	require.NoError(t, err)
	edu, err := repo.ListEducation(ctx)
	require.NoError(t, err)
	return domain.Counts{Skills: len(skills), Projects: len(projects), Experience: len(exp), Education: len(edu)}
}

func TestCanonicalDataset(t *testing.T) {
	ds, err := seed.Canonical()
	require.NoError(t, err)

	assert.Equal(t, domain.Counts{Skills: 9, Projects: 3, Experience: 2, Education: 2}, ds.Counts())
	assert.Equal(t, domain.Skill{Name: "React", Category: domain.SkillCategoryFrontend, Proficiency: 90}, ds.Skills[0])
	assert.Equal(t, "Docker", ds.Skills[8].Name)

	p := ds.Projects[0]
	assert.Equal(t, "AI-Powered Code Assistant", p.Title)
	assert.Equal(t, []string{"Python", "TensorFlow", "React", "Node.js"}, p.TechStack)
	assert.Equal(t, "https://images.unsplash.com/photo-1555949963-ff9fe0c870eb?w=800&q=80", p.ImageURL)
	assert.Equal(t, "https://github.com", p.GithubLink)

	assert.Equal(t, "2023 - Present", ds.Experience[0].Duration)
	assert.Equal(t, "2021", ds.Education[0].Year)
	assert.Equal(t, "AWS Certification", ds.Education[1].Institution)
}

func TestCanonicalReturnsFreshCopies(t *testing.T) {
	a, err := seed.Canonical()
	require.NoError(t, err)
	a.Skills[0].Name = "changed"

	b, err := seed.Canonical()
	require.NoError(t, err)
	assert.Equal(t, "React", b.Skills[0].Name)
}

func TestLoadFileRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte("skills:\n  - name: Go\n    level: 3\n"), 0o644))

	_, err := seed.LoadFile(path)
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte("skills:\n  - name: Go\n    category: backend\n"), 0o644))

	ds, err := seed.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, ds.Skills, 1)
	assert.Equal(t, 0, ds.Skills[0].Proficiency)

	_, err = seed.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	body := `{"skills":[{"id":7,"name":"Go","category":"backend","proficiency":80}],"education":[{"degree":"BSc","institution":"Uni","year":"2019"}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	ds, err := seed.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, ds.Skills, 1)
	assert.Equal(t, 80, ds.Skills[0].Proficiency)
	assert.Equal(t, "2019", ds.Education[0].Year)
}

func TestIfEmptySeedsMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	ds, err := seed.Canonical()
	require.NoError(t, err)

	res, err := seed.IfEmpty(ctx, store, ds)
	require.NoError(t, err)
	assert.True(t, res.Seeded)
	assert.Equal(t, ds.Counts(), res.Counts)

	skills, err := store.ListSkills(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 9)
	assert.Equal(t, "React", skills[0].Name)
	assert.Equal(t, domain.SkillCategoryFrontend, skills[0].Category)
	assert.Equal(t, 90, skills[0].Proficiency)

	p, err := store.GetProject(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "AI-Powered Code Assistant", p.Title)
	assert.Equal(t, []string{"Python", "TensorFlow", "React", "Node.js"}, p.TechStack)
}

func TestIfEmptyIsIdempotent(t *testing.T) {
	ctx := context.Background()

	backends := map[string]func(t *testing.T) repository.Repository{
		"memory": func(t *testing.T) repository.Repository { return memory.New() },
		"sqlite": func(t *testing.T) repository.Repository {
			repo, err := sqlite.New(filepath.Join(t.TempDir(), "seed.db"))
			require.NoError(t, err)
			t.Cleanup(func() { repo.Close() })
			return repo
		},
	}

	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ds, err := seed.Canonical()
			require.NoError(t, err)

			first, err := seed.IfEmpty(ctx, repo, ds)
			require.NoError(t, err)
			assert.True(t, first.Seeded)
			once := counts(t, repo)

			second, err := seed.IfEmpty(ctx, repo, ds)
			require.NoError(t, err)
			assert.False(t, second.Seeded)
			assert.Equal(t, once, counts(t, repo))
		})
	}
}

func TestIfEmptySkipsWhenSkillsPresent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.InsertSkills(ctx, []domain.Skill{{Name: "Go"}}))

	ds, err := seed.Canonical()
	require.NoError(t, err)
	res, err := seed.IfEmpty(ctx, store, ds)
	require.NoError(t, err)
	assert.False(t, res.Seeded)

	// Only skills are probed, so the other collections stay empty.
	assert.Equal(t, domain.Counts{Skills: 1}, counts(t, store))
}

func TestIfEmptyStopsOnFirstFailure(t *testing.T) {
	ctx := context.Background()
	ds, err := seed.Canonical()
	require.NoError(t, err)

	target := new(MockTarget)
	target.On("ListSkills", ctx).Return([]domain.Skill{}, nil)
	target.On("InsertSkills", ctx, ds.Skills).Return(nil)
	target.On("InsertProjects", ctx, ds.Projects).Return(errors.New("disk full"))

	_, err = seed.IfEmpty(ctx, target, ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert projects")
	assert.Contains(t, err.Error(), "disk full")

	target.AssertExpectations(t)
	target.AssertNotCalled(t, "InsertExperience", mock.Anything, mock.Anything)
	target.AssertNotCalled(t, "InsertEducation", mock.Anything, mock.Anything)
}

func TestIfEmptyProbeFailure(t *testing.T) {
	ctx := context.Background()
	target := new(MockTarget)
	target.On("ListSkills", ctx).Return(nil, errors.New("locked"))

	_, err := seed.IfEmpty(ctx, target, &domain.Dataset{})
	require.Error(t, err)
	target.AssertNotCalled(t, "InsertSkills", mock.Anything, mock.Anything)
}

func TestIfEmptyNilDataset(t *testing.T) {
	_, err := seed.IfEmpty(context.Background(), memory.New(), nil)
	require.Error(t, err)
}
