package sqlite

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
		`INSERT INTO water_days(user_id, day, intake_ml, goal_ml, updated_at) VALUES(?, ?, ?, ?, ?)
		ON CONFLICT (user_id, day) DO UPDATE SET intake_ml = excluded.intake_ml, goal_ml = excluded.goal_ml, updated_at = excluded.updated_at;`,
		userID, rec.Date, rec.IntakeML, rec.GoalML, toMillis(time.Now()),
	)
	return err
}

// GetDay returns the record for a day, or nil if none exists.
func (d *DB) GetDay(ctx context.Context, userID int64, day string) (*domain.HistoryRecord, error) {
	rec := domain.HistoryRecord{Date: day}
	err := d.sql.QueryRowContext(ctx,
		"SELECT intake_ml, goal_ml FROM water_days WHERE user_id = ? AND day = ?;", userID, day,
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
		"SELECT day, intake_ml, goal_ml FROM water_days WHERE user_id = ?;", userID)
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

// GetProfile returns the stored profile for a user, or nil.
func (d *DB) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	p := domain.Profile{UserID: userID}
	var (
		group   string
		updated int64
	)
	err := d.sql.QueryRowContext(ctx,
		"SELECT age_group, goal_ml, xp, level, dark_mode, updated_at FROM profiles WHERE user_id = ?;", userID,
	).Scan(&group, &p.GoalML, &p.XP, &p.Level, &p.DarkMode, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.AgeGroup = domain.AgeGroup(group)
	p.UpdatedAt = fromMillis(updated)
	return &p, nil
}

// SaveProfile inserts or replaces a profile.
func (d *DB) SaveProfile(ctx context.Context, p domain.Profile) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO profiles(user_id, age_group, goal_ml, xp, level, dark_mode, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET age_group = excluded.age_group, goal_ml = excluded.goal_ml, xp = excluded.xp,
		level = excluded.level, dark_mode = excluded.dark_mode, updated_at = excluded.updated_at;`,
		p.UserID, string(p.AgeGroup), p.GoalML, p.XP, p.Level, p.DarkMode, toMillis(p.UpdatedAt),
	)
	return err
}
