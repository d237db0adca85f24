package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"gonum.org/v1/gonum/stat"

	"waterbuddy/internal/domain"
)

// MaxTrendDays bounds the trend window.
const MaxTrendDays = 366

// ErrInvalidUnit is returned for an unrecognised volume unit.
var ErrInvalidUnit = errors.New(`unit must be "ml", "l" or "floz"`)

// HistoryService encapsulates history and statistics use cases.
type HistoryService struct {
	history domain.HistoryRepository
	clock   clockwork.Clock
}

// NewHistoryService creates a HistoryService backed by the given repository.
func NewHistoryService(history domain.HistoryRepository, clock clockwork.Clock) *HistoryService {
	return &HistoryService{history: history, clock: clock}
}

// TrendPoint is one day of the trend chart. GoalML is nil for days without
// a record.
type TrendPoint struct {
	Day      string `json:"day"`
	IntakeML int    `json:"intakeMl"`
	GoalML   *int   `json:"goalMl"`
	Complete bool   `json:"complete"`
	// Intake is IntakeML expressed in Unit.
	Intake float64 `json:"intake"`
	Unit   string  `json:"unit"`
}

// Insights extends Stats with distribution figures over logged days.
type Insights struct {
	domain.Stats
	MeanIntakeML   float64 `json:"meanIntakeMl"`
	StdDevIntakeML float64 `json:"stdDevIntakeMl"`
}

// Export is a full, date-ordered dump of a user's history.
type Export struct {
	UserID     int64                  `json:"userId" msgpack:"user_id"`
	ExportedAt time.Time              `json:"exportedAt" msgpack:"exported_at"`
	Records    []domain.HistoryRecord `json:"records" msgpack:"records"`
}

// Stats loads the user's history and aggregates it.
func (s *HistoryService) Stats(ctx context.Context, userID int64) (domain.Stats, error) {
	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Aggregate(snap)
}

// Insights returns the aggregate stats plus mean and standard deviation of
// daily intake.
func (s *HistoryService) Insights(ctx context.Context, userID int64) (*Insights, error) {
	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	st, err := domain.Aggregate(snap)
	if err != nil {
		return nil, err
	}

	out := &Insights{Stats: st}
	if len(snap) == 0 {
		return out, nil
	}
	xs := make([]float64, 0, len(snap))
	for _, r := range snap {
		xs = append(xs, float64(r.IntakeML))
	}
	if len(xs) == 1 {
		out.MeanIntakeML = xs[0]
		return out, nil
	}
	out.MeanIntakeML, out.StdDevIntakeML = stat.MeanStdDev(xs, nil)
	return out, nil
}

// Rows returns every record, newest first.
func (s *HistoryService) Rows(ctx context.Context, userID int64) ([]domain.HistoryRecord, error) {
	rows, err := s.sorted(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// Trend returns one point per calendar day for the last days days ending
// today.
func (s *HistoryService) Trend(ctx context.Context, userID int64, days int, unit string) ([]TrendPoint, error) {
	if unit == "" {
		unit = domain.UnitML
	}
	if !domain.ValidVolumeUnit(unit) {
		return nil, ErrInvalidUnit
	}
	if days < 1 {
		days = 1
	}
	if days > MaxTrendDays {
		days = MaxTrendDays
	}
	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.clock.Now().In(time.Local)
	points := make([]TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format(domain.DayLayout)
		p := TrendPoint{Day: day, Unit: unit}
		if rec, ok := snap[day]; ok {
			goal := rec.GoalML
			p.IntakeML = rec.IntakeML
			p.GoalML = &goal
			p.Complete = rec.Complete()
			p.Intake = domain.ConvertVolume(float64(rec.IntakeML), domain.UnitML, unit)
		}
		points = append(points, p)
	}
	return points, nil
}

// Export returns the user's full history in date order.
func (s *HistoryService) Export(ctx context.Context, userID int64) (*Export, error) {
	rows, err := s.sorted(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Export{UserID: userID, ExportedAt: s.clock.Now().UTC(), Records: rows}, nil
}

func (s *HistoryService) sorted(ctx context.Context, userID int64) ([]domain.HistoryRecord, error) {
	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.HistoryRecord, 0, len(snap))
	for day, r := range snap {
		r.Date = day
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows, nil
}

func (s *HistoryService) snapshot(ctx context.Context, userID int64) (domain.HistorySnapshot, error) {
	snap, err := s.history.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return snap, nil
}
