package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"waterbuddy/internal/domain"
)

// UpsertDay stores rec, replacing any record for the same day.
func (d *DB) UpsertDay(ctx context.Context, userID int64, rec domain.HistoryRecord) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO water_days(user_id, day, intake_ml, goal_ml, updated_at) VALUES($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, day) DO UPDATE SET intake_ml = EXCLUDED.intake_ml, goal_ml = EXCLUDED.goal_ml, updated_at = EXCLUDED.updated_at;`,
		userID, rec.Date, rec.IntakeML, rec.GoalML, time.Now().UTC(),
	)
	return err
}

// GetDay returns the record for a day, or nil if none exists.
func (d *DB) GetDay(ctx context.Context, userID int64, day string) (*domain.HistoryRecord, error) {
	rec := domain.HistoryRecord{Date: day}
	err := d.sql.QueryRowContext(ctx,
		"SELECT intake_ml, goal_ml FROM water_days WHERE user_id=$1 AND day=$2;", userID, day,
	).Scan(&rec.IntakeML, &rec.GoalML)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Snapshot returns every recorded day for a user.
func (d *DB) Snapshot(ctx context.Context, userID int64) (domain.HistorySnapshot, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT day, intake_ml, goal_ml FROM water_days WHERE user_id=$1;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make(domain.HistorySnapshot)
	for rows.Next() {
		var r domain.HistoryRecord
		if err := rows.Scan(&r.Date, &r.IntakeML, &r.GoalML); err != nil {
			return nil, err
		}
		out[r.Date] = r
	}
	return out, rows.Err()
}
