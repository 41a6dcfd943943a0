package postgres

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/repository"
	"portfolio/internal/repository/repotest"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testURLEnv names the server used by the integration tests below. They are
// skipped when it is unset.
const testURLEnv = "PORTFOLIO_TEST_POSTGRES_URL"

// newTestRepo connects to a fresh schema on the test server and drops it on
// cleanup
func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	base := os.Getenv(testURLEnv)
	if base == "" {
		t.Skipf("%s not set", testURLEnv)
	}

	ctx := context.Background()
	schemaName := "portfolio_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := pgxpool.New(ctx, base)
	require.NoError(t, err)
	t.Cleanup(admin.Close)

	_, err = admin.Exec(ctx, fmt.Sprintf(`CREATE SCHEMA %q`, schemaName))
	require.NoError(t, err)
	t.Cleanup(func() {
		admin.Exec(context.Background(), fmt.Sprintf(`DROP SCHEMA %q CASCADE`, schemaName))
	})

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	repo, err := New(ctx, base+sep+"search_path="+schemaName)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestOptional(t *testing.T) {
	assert.Nil(t, optional(""))
	got := optional("https://github.com/x")
	require.NotNil(t, got)
	assert.Equal(t, "https://github.com/x", *got)
}

func TestCeilMicrosecond(t *testing.T) {
	exact := time.Date(2025, 1, 2, 3, 4, 5, 6000, time.UTC)
	assert.Equal(t, exact, ceilMicrosecond(exact))

	fine := time.Date(2025, 1, 2, 3, 4, 5, 6001, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 7000, time.UTC), ceilMicrosecond(fine))
	assert.False(t, ceilMicrosecond(fine).Before(fine))
}

func TestNewRejectsMalformedURL(t *testing.T) {
	_, err := New(context.Background(), "postgres://%zz")
	require.Error(t, err)
}

func TestRepositorySuite(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.Repository {
		return newTestRepo(t)
	})
}

func TestMessageCreatedAtStored(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 6000, time.UTC)
	repo.now = func() time.Time { return fixed }

	msg, err := repo.CreateMessage(ctx, domain.MessageInput{Name: "n", Email: "e@example.com", Message: "m"})
	require.NoError(t, err)
	assert.True(t, msg.CreatedAt.Equal(fixed))

	var stored time.Time
	require.NoError(t, repo.pool.QueryRow(ctx, `SELECT created_at FROM messages WHERE id = $1`, msg.ID).Scan(&stored))
	assert.True(t, stored.Equal(fixed), "stored %v, want %v", stored, fixed)
}

func TestKind(t *testing.T) {
	repo := newTestRepo(t)
	assert.Equal(t, repository.KindPostgres, repo.Kind())
}

func TestMessageCreatedAtMatchesStoredRow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	fine := time.Date(2025, 1, 2, 3, 4, 5, 123456789, time.UTC)
	repo.now = func() time.Time { return fine }

	msg, err := repo.CreateMessage(ctx, domain.MessageInput{Name: "n", Email: "e@example.com", Message: "m"})
	require.NoError(t, err)
	assert.False(t, msg.CreatedAt.Before(fine))

	var stored time.Time
	require.NoError(t, repo.pool.QueryRow(ctx, `SELECT created_at FROM messages WHERE id = $1`, msg.ID).Scan(&stored))
	assert.True(t, stored.Equal(msg.CreatedAt), "stored %v, returned %v", stored, msg.CreatedAt)
}
