package postgres

import (
	"context"
	"database/sql"
	"errors"

	"waterbuddy/internal/domain"
)

// GetProfile returns the stored profile for a user, or nil.
func (d *DB) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	p := domain.Profile{UserID: userID}
	var group string
	err := d.sql.QueryRowContext(ctx,
		"SELECT age_group, goal_ml, xp, level, dark_mode, updated_at FROM profiles WHERE user_id=$1;", userID,
	).Scan(&group, &p.GoalML, &p.XP, &p.Level, &p.DarkMode, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.AgeGroup = domain.AgeGroup(group)
	return &p, nil
}

// SaveProfile inserts or replaces a profile.
func (d *DB) SaveProfile(ctx context.Context, p domain.Profile) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO profiles(user_id, age_group, goal_ml, xp, level, dark_mode, updated_at) VALUES($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET age_group = EXCLUDED.age_group, goal_ml = EXCLUDED.goal_ml, xp = EXCLUDED.xp,
		level = EXCLUDED.level, dark_mode = EXCLUDED.dark_mode, updated_at = EXCLUDED.updated_at;`,
		p.UserID, string(p.AgeGroup), p.GoalML, p.XP, p.Level, p.DarkMode, p.UpdatedAt.UTC(),
	)
	return err
}
