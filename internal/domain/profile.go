package domain

import (
	"context"
	"time"
)

// XP constants.
const (
	XPPerMLDivisor = 10
	XPPerLevel     = 500
)

// Profile holds a user's hydration settings and gamification state.
type Profile struct {
	UserID    int64     `json:"userId"`
	AgeGroup  AgeGroup  `json:"ageGroup"`
	GoalML    int       `json:"goalMl"`
	XP        int       `json:"xp"`
	Level     int       `json:"level"`
	DarkMode  bool      `json:"darkMode"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultProfile returns the profile used before a user changes anything.
func DefaultProfile(userID int64) Profile {
	goal, _ := GoalForAgeGroup(DefaultAgeGroup)
	return Profile{
		UserID:   userID,
		AgeGroup: DefaultAgeGroup,
		GoalML:   goal,
		Level:    1,
	}
}

// XPForAmount converts a logged amount into XP.
func XPForAmount(ml int) int {
	return max(0, ml/XPPerMLDivisor)
}

// LevelForXP returns the level reached with xp points.
func LevelForXP(xp int) int {
	return 1 + max(0, xp)/XPPerLevel
}

// AwardXP adds XP for a logged amount and recomputes the level.
func (p *Profile) AwardXP(ml int) (gained int, leveledUp bool) {
	gained = XPForAmount(ml)
	if gained == 0 {
		return 0, false
	}
	old := p.Level
	p.XP += gained
	p.Level = LevelForXP(p.XP)
	return gained, p.Level > old
}

// LevelProgress describes how far a profile is into its current level.
type LevelProgress struct {
	XP        int     `json:"xp"`
	Level     int     `json:"level"`
	IntoLevel int     `json:"intoLevel"`
	PerLevel  int     `json:"perLevel"`
	Fraction  float64 `json:"fraction"`
}

// ProgressForXP computes the level progress for xp points.
func ProgressForXP(xp int) LevelProgress {
	level := LevelForXP(xp)
	into := xp - (level-1)*XPPerLevel
	return LevelProgress{
		XP:        xp,
		Level:     level,
		IntoLevel: into,
		PerLevel:  XPPerLevel,
		Fraction:  min(1, float64(into)/XPPerLevel),
	}
}

// ProfileRepository is the port for profile persistence. GetProfile returns
// nil, nil when the user has no stored profile.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	SaveProfile(ctx context.Context, p Profile) error
}
