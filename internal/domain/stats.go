package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidDate is returned when a snapshot key is not a YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid history date")

// Stats summarises a HistorySnapshot.
type Stats struct {
	StreakDays        int     `json:"streakDays"`
	BestDate          string  `json:"bestDate,omitempty"` // empty iff the snapshot is empty
	BestIntakeML      int     `json:"bestIntakeMl"`
	CompletionRatePct float64 `json:"completionRatePct"`
	TotalDays         int     `json:"totalDays"`
	TotalVolumeL      float64 `json:"totalVolumeL"`
}

// Aggregate computes streak, completion-rate and best-day statistics for a
// snapshot. The snapshot is not modified.
//
// The streak counts consecutive calendar days, ending at the latest recorded
// date, on which the goal was met. A missing day ends the walk. Ties for the
// best day go to the earliest date.
func Aggregate(snapshot HistorySnapshot) (Stats, error) {
	if len(snapshot) == 0 {
		return Stats{}, nil
	}

	dates := make([]string, 0, len(snapshot))
	for d := range snapshot {
		if _, err := time.Parse(DayLayout, d); err != nil {
			return Stats{}, fmt.Errorf("%w: %q", ErrInvalidDate, d)
		}
		dates = append(dates, d)
	}
	sort.Strings(dates)

	st := Stats{TotalDays: len(dates)}
	completed := 0
	for i, d := range dates {
		rec := snapshot[d]
		if rec.Complete() {
			completed++
		}
		if i == 0 || rec.IntakeML > st.BestIntakeML {
			st.BestIntakeML = rec.IntakeML
			st.BestDate = d
		}
		st.TotalVolumeL += float64(rec.IntakeML) / 1000
	}
	st.CompletionRatePct = float64(completed) / float64(st.TotalDays) * 100

	// Already validated above.
	day, _ := time.Parse(DayLayout, dates[len(dates)-1])
	for {
		rec, ok := snapshot[day.Format(DayLayout)]
		if !ok || !rec.Complete() {
			break
		}
		st.StreakDays++
		day = day.AddDate(0, 0, -1)
	}
	return st, nil
}
