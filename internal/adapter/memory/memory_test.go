package memory

import (
	"context"
	"sync"
	"testing"

	"waterbuddy/internal/adapter/storetest"
	"waterbuddy/internal/domain"
)

func TestHistoryRepository(t *testing.T) {
	storetest.HistoryRepository(t, New())
}

func TestProfileRepository(t *testing.T) {
	storetest.ProfileRepository(t, New())
}

func TestUserRepository(t *testing.T) {
	storetest.UserRepository(t, New())
}

func TestSessionRepository(t *testing.T) {
	db := New()
	storetest.SessionRepository(t, db.NewSessionRepo(), 1)
}

func TestConcurrentUpserts(t *testing.T) {
	db := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = db.UpsertDay(ctx, int64(i%3), domain.HistoryRecord{Date: "2024-01-01", IntakeML: i, GoalML: 2000})
			_, _ = db.Snapshot(ctx, int64(i%3))
		}()
	}
	wg.Wait()

	for u := range int64(3) {
		snap, err := db.Snapshot(ctx, u)
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		if len(snap) != 1 {
			t.Errorf("user %d: expected 1 day, got %d", u, len(snap))
		}
	}
}
