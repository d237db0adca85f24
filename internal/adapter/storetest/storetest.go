// Package storetest holds behaviour checks shared by every history store
// adapter.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waterbuddy/internal/domain"
)

// HistoryRepository exercises upsert, lookup and snapshot semantics.
func HistoryRepository(t *testing.T, repo domain.HistoryRepository) {
	t.Helper()
	ctx := context.Background()

	rec, err := repo.GetDay(ctx, 1, "2024-01-01")
	require.NoError(t, err)
	assert.Nil(t, rec, "missing day should be nil")

	snap, err := repo.Snapshot(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, snap)

	require.NoError(t, repo.UpsertDay(ctx, 1, domain.HistoryRecord{Date: "2024-01-02", IntakeML: 500, GoalML: 2000}))
	require.NoError(t, repo.UpsertDay(ctx, 1, domain.HistoryRecord{Date: "2024-01-01", IntakeML: 2100, GoalML: 2000}))
	// Last write wins.
	require.NoError(t, repo.UpsertDay(ctx, 1, domain.HistoryRecord{Date: "2024-01-02", IntakeML: 2500, GoalML: 1800}))
	require.NoError(t, repo.UpsertDay(ctx, 2, domain.HistoryRecord{Date: "2024-01-02", IntakeML: 7, GoalML: 1200}))

	rec, err = repo.GetDay(ctx, 1, "2024-01-02")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, domain.HistoryRecord{Date: "2024-01-02", IntakeML: 2500, GoalML: 1800}, *rec)

	snap, err = repo.Snapshot(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.HistorySnapshot{
		"2024-01-01": {Date: "2024-01-01", IntakeML: 2100, GoalML: 2000},
		"2024-01-02": {Date: "2024-01-02", IntakeML: 2500, GoalML: 1800},
	}, snap)

	other, err := repo.Snapshot(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, other, 1)

	// Mutating the returned snapshot must not leak into the store.
	delete(snap, "2024-01-01")
	again, err := repo.Snapshot(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, again, 2)
}

// ProfileRepository exercises profile save and load.
func ProfileRepository(t *testing.T, repo domain.ProfileRepository) {
	t.Helper()
	ctx := context.Background()

	p, err := repo.GetProfile(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, p)

	want := domain.DefaultProfile(1)
	want.AgeGroup = domain.AgeSenior
	want.GoalML = 1800
	want.XP = 1234
	want.Level = 3
	want.DarkMode = true
	require.NoError(t, repo.SaveProfile(ctx, want))

	want.XP = 1300
	require.NoError(t, repo.SaveProfile(ctx, want))

	got, err := repo.GetProfile(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.AgeGroup, got.AgeGroup)
	assert.Equal(t, 1800, got.GoalML)
	assert.Equal(t, 1300, got.XP)
	assert.Equal(t, 3, got.Level)
	assert.True(t, got.DarkMode)

	none, err := repo.GetProfile(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, none)
}

// UserRepository exercises user creation and lookup.
func UserRepository(t *testing.T, repo domain.UserRepository) {
	t.Helper()
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	u, err := repo.Create(ctx, "bob", "hash")
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)
	assert.NotZero(t, u.ID)

	_, err = repo.Create(ctx, "bob", "other")
	assert.Error(t, err, "usernames are unique")

	byName, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, u.ID, byName.ID)
	assert.Equal(t, "hash", byName.PasswordHash)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "bob", byID.Username)

	missing, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, missing)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// SessionRepository exercises the session lifecycle. userID must reference
// an existing user for stores that enforce foreign keys.
func SessionRepository(t *testing.T, repo domain.SessionRepository, userID int64) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, userID, "live", "ua/1", "10.0.0.1", now.Add(time.Hour)))
	require.NoError(t, repo.Create(ctx, userID, "stale", "ua/1", "10.0.0.1", now.Add(-time.Hour)))

	sess, err := repo.GetByToken(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, userID, sess.UserID)
	assert.Equal(t, "ua/1", sess.UserAgent)
	assert.Equal(t, "10.0.0.1", sess.IP)
	assert.True(t, sess.ExpiresAt.Equal(now.Add(time.Hour)))

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	sess, err = repo.GetByToken(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, sess)

	require.NoError(t, repo.Delete(ctx, "live"))
	sess, err = repo.GetByToken(ctx, "live")
	require.NoError(t, err)
	assert.Nil(t, sess)
}
