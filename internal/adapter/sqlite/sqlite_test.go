package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waterbuddy/internal/adapter/storetest"
	"waterbuddy/internal/domain"
)

// openTest opens a fresh database in a temp dir and seeds n users so that
// foreign keys on user_id resolve.
func openTest(t *testing.T, n int) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "waterbuddy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for i := range n {
		_, err := db.Create(context.Background(), fmt.Sprintf("user%d", i+1), "x")
		require.NoError(t, err)
	}
	return db
}

func TestHistoryRepository(t *testing.T) {
	storetest.HistoryRepository(t, openTest(t, 2))
}

func TestProfileRepository(t *testing.T) {
	storetest.ProfileRepository(t, openTest(t, 2))
}

func TestUserRepository(t *testing.T) {
	storetest.UserRepository(t, openTest(t, 0))
}

func TestSessionRepository(t *testing.T) {
	storetest.SessionRepository(t, NewSessionRepo(openTest(t, 1)), 1)
}

func TestForeignKeysEnforced(t *testing.T) {
	db := openTest(t, 0)
	err := db.UpsertDay(context.Background(), 42, domain.HistoryRecord{Date: "2024-01-01", IntakeML: 1, GoalML: 1})
	assert.Error(t, err)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.db")
	ctx := context.Background()

	db, err := Open(path)
	require.NoError(t, err)
	u, err := db.Create(ctx, "alice", "x")
	require.NoError(t, err)
	require.NoError(t, db.UpsertDay(ctx, u.ID, domain.HistoryRecord{Date: "2024-03-01", IntakeML: 900, GoalML: 2200}))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	rec, err := db.GetDay(ctx, u.ID, "2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 900, rec.IntakeML)
}
