package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"waterbuddy/internal/domain"
	"waterbuddy/internal/metrics"
)

// Limits for user input.
const (
	MaxAmountML = 10000
	MaxGoalML   = 20000
)

var (
	// ErrInvalidAmount indicates a logged amount outside (0, MaxAmountML].
	ErrInvalidAmount = fmt.Errorf("amountMl must be within (0, %d]", MaxAmountML)
	// ErrInvalidGoal indicates a goal outside (0, MaxGoalML].
	ErrInvalidGoal = fmt.Errorf("goalMl must be within (0, %d]", MaxGoalML)
	// ErrUnknownAgeGroup indicates an age group without a guideline.
	ErrUnknownAgeGroup = errors.New("unknown age group")
)

// HydrationService encapsulates the daily water-logging use cases. Writes
// for the same user are serialized within the process.
type HydrationService struct {
	history  domain.HistoryRepository
	profiles domain.ProfileRepository
	clock    clockwork.Clock

	locks sync.Map // int64 -> *sync.Mutex
}

// NewHydrationService creates a HydrationService backed by the given
// repositories.
func NewHydrationService(history domain.HistoryRepository, profiles domain.ProfileRepository, clock clockwork.Clock) *HydrationService {
	return &HydrationService{history: history, profiles: profiles, clock: clock}
}

// DayView is everything the widget shows for today.
type DayView struct {
	Today    string               `json:"today"`
	AgeGroup domain.AgeGroup      `json:"ageGroup"`
	Progress domain.Progress      `json:"progress"`
	Message  string               `json:"message"`
	Mascot   domain.Mascot        `json:"mascot"`
	XP       domain.LevelProgress `json:"xp"`
	DarkMode bool                 `json:"darkMode"`
}

// AddResult is returned after logging water.
type AddResult struct {
	DayView
	XPGained  int  `json:"xpGained"`
	LeveledUp bool `json:"leveledUp"`
}

// Today returns today's view for a user.
func (s *HydrationService) Today(ctx context.Context, userID int64) (*DayView, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	rec, err := s.todayRecord(ctx, userID, p.GoalML)
	if err != nil {
		return nil, err
	}
	v := buildView(rec, p)
	return &v, nil
}

// AddWater adds ml to today's intake, snapshots the current goal into
// today's record and awards XP.
func (s *HydrationService) AddWater(ctx context.Context, userID int64, ml int) (*AddResult, error) {
	if ml <= 0 || ml > MaxAmountML {
		return nil, ErrInvalidAmount
	}
	defer s.lockUser(userID)()

	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	rec, err := s.todayRecord(ctx, userID, p.GoalML)
	if err != nil {
		return nil, err
	}

	rec.IntakeML += ml
	rec.GoalML = p.GoalML
	if err := s.history.UpsertDay(ctx, userID, rec); err != nil {
		return nil, fmt.Errorf("save day: %w", err)
	}
	metrics.WaterLoggedMLTotal.Add(float64(ml))

	// The day is already written, so an XP save failure is not an error.
	before := *p
	gained, up := p.AwardXP(ml)
	if gained > 0 {
		if err := s.saveProfile(ctx, p); err != nil {
			log.Warn().Err(err).Int64("user_id", userID).Int("xp", gained).Msg("xp not saved")
			p, gained, up = &before, 0, false
		}
	}
	if up {
		metrics.LevelUpsTotal.Inc()
	}

	return &AddResult{DayView: buildView(rec, p), XPGained: gained, LeveledUp: up}, nil
}

// ResetDay zeroes today's intake. History and XP are kept.
func (s *HydrationService) ResetDay(ctx context.Context, userID int64) (*DayView, error) {
	defer s.lockUser(userID)()

	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	rec := domain.HistoryRecord{Date: s.today(), GoalML: p.GoalML}
	if err := s.history.UpsertDay(ctx, userID, rec); err != nil {
		return nil, fmt.Errorf("save day: %w", err)
	}
	metrics.DayResetsTotal.Inc()
	v := buildView(rec, p)
	return &v, nil
}

// SetGoal sets a manual daily goal.
func (s *HydrationService) SetGoal(ctx context.Context, userID int64, goalML int) (*DayView, error) {
	if goalML <= 0 || goalML > MaxGoalML {
		return nil, ErrInvalidGoal
	}
	defer s.lockUser(userID)()

	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.GoalML = goalML
	return s.applyGoal(ctx, p)
}

// SetAgeGroup switches the age group and resets the goal to its guideline.
func (s *HydrationService) SetAgeGroup(ctx context.Context, userID int64, group domain.AgeGroup) (*DayView, error) {
	goal, ok := domain.GoalForAgeGroup(group)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgeGroup, group)
	}
	defer s.lockUser(userID)()

	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.AgeGroup = group
	p.GoalML = goal
	return s.applyGoal(ctx, p)
}

// SetPreferences stores display preferences.
func (s *HydrationService) SetPreferences(ctx context.Context, userID int64, darkMode bool) (*domain.Profile, error) {
	defer s.lockUser(userID)()

	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.DarkMode = darkMode
	if err := s.saveProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Profile returns the stored profile or the default one.
func (s *HydrationService) Profile(ctx context.Context, userID int64) (*domain.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if p == nil {
		d := domain.DefaultProfile(userID)
		return &d, nil
	}
	return p, nil
}

// lockUser locks the user's mutex and returns its unlock func.
func (s *HydrationService) lockUser(userID int64) func() {
	v, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *HydrationService) applyGoal(ctx context.Context, p *domain.Profile) (*DayView, error) {
	if err := s.saveProfile(ctx, p); err != nil {
		return nil, err
	}
	rec, err := s.todayRecord(ctx, p.UserID, p.GoalML)
	if err != nil {
		return nil, err
	}
	rec.GoalML = p.GoalML
	if err := s.history.UpsertDay(ctx, p.UserID, rec); err != nil {
		return nil, fmt.Errorf("save day: %w", err)
	}
	v := buildView(rec, p)
	return &v, nil
}

func (s *HydrationService) saveProfile(ctx context.Context, p *domain.Profile) error {
	p.UpdatedAt = s.clock.Now().UTC()
	if err := s.profiles.SaveProfile(ctx, *p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *HydrationService) todayRecord(ctx context.Context, userID int64, goalML int) (domain.HistoryRecord, error) {
	today := s.today()
	rec, err := s.history.GetDay(ctx, userID, today)
	if err != nil {
		return domain.HistoryRecord{}, fmt.Errorf("load day: %w", err)
	}
	if rec == nil {
		return domain.HistoryRecord{Date: today, GoalML: goalML}, nil
	}
	return *rec, nil
}

func (s *HydrationService) today() string {
	return localDay(s.clock.Now())
}

func localDay(t time.Time) string {
	return t.In(time.Local).Format(domain.DayLayout)
}

func buildView(rec domain.HistoryRecord, p *domain.Profile) DayView {
	progress := domain.ComputeProgress(rec.IntakeML, p.GoalML)
	return DayView{
		Today:    rec.Date,
		AgeGroup: p.AgeGroup,
		Progress: progress,
		Message:  domain.MotivationalMessage(progress.Percent),
		Mascot:   domain.MascotFor(progress.Percent),
		XP:       domain.ProgressForXP(p.XP),
		DarkMode: p.DarkMode,
	}
}
