package app_test

import (
	"context"
	"time"

	"waterbuddy/internal/domain"
)

var fixedNow = time.Date(2026, 2, 8, 12, 0, 0, 0, time.Local)

type mockHistoryRepo struct {
	upsertFn   func(ctx context.Context, userID int64, rec domain.HistoryRecord) error
	getDayFn   func(ctx context.Context, userID int64, day string) (*domain.HistoryRecord, error)
	snapshotFn func(ctx context.Context, userID int64) (domain.HistorySnapshot, error)
}

func (m *mockHistoryRepo) UpsertDay(ctx context.Context, userID int64, rec domain.HistoryRecord) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, userID, rec)
	}
	return nil
}

func (m *mockHistoryRepo) GetDay(ctx context.Context, userID int64, day string) (*domain.HistoryRecord, error) {
	if m.getDayFn != nil {
		return m.getDayFn(ctx, userID, day)
	}
	return nil, nil
}

func (m *mockHistoryRepo) Snapshot(ctx context.Context, userID int64) (domain.HistorySnapshot, error) {
	if m.snapshotFn != nil {
		return m.snapshotFn(ctx, userID)
	}
	return domain.HistorySnapshot{}, nil
}

type mockProfileRepo struct {
	getFn  func(ctx context.Context, userID int64) (*domain.Profile, error)
	saveFn func(ctx context.Context, p domain.Profile) error
}

func (m *mockProfileRepo) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockProfileRepo) SaveProfile(ctx context.Context, p domain.Profile) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, p)
	}
	return nil
}
