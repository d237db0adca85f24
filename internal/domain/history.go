package domain

import (
	"context"
)

// DayLayout is the calendar-day key format used by every history store.
const DayLayout = "2006-01-02"

// HistoryRecord is one calendar day's outcome for a profile.
type HistoryRecord struct {
	Date     string `json:"date" msgpack:"date"`
	IntakeML int    `json:"intakeMl" msgpack:"intake_ml"`
	GoalML   int    `json:"goalMl" msgpack:"goal_ml"`
}

// Complete reports whether the day's goal was met. A non-positive goal can
// never be met.
func (r HistoryRecord) Complete() bool {
	return r.GoalML > 0 && r.IntakeML >= r.GoalML
}

// HistorySnapshot maps a calendar day to its record. Stores make no ordering
// guarantee.
type HistorySnapshot map[string]HistoryRecord

// HistoryRepository is the port for per-day history persistence. UpsertDay
// replaces any existing record for the same date.
type HistoryRepository interface {
	UpsertDay(ctx context.Context, userID int64, rec HistoryRecord) error
	GetDay(ctx context.Context, userID int64, day string) (*HistoryRecord, error)
	Snapshot(ctx context.Context, userID int64) (HistorySnapshot, error)
}
