// Package file stores history and profiles as plain text files, one
// directory per user:
//
//	<dir>/<userID>/water_log.txt      YYYY-MM-DD,intake,goal
//	<dir>/<userID>/water_profile.txt  key=value
package file

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"waterbuddy/internal/domain"
)

const (
	LogFile     = "water_log.txt"
	ProfileFile = "water_profile.txt"
)

// Store is a directory-backed history and profile store. It is safe for
// concurrent use within a single process.
type Store struct {
	mu  sync.Mutex
	dir string
}

var _ domain.HistoryRepository = (*Store)(nil)
var _ domain.ProfileRepository = (*Store)(nil)

// Open returns a store rooted at dir, creating it if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) userPath(userID int64, name string) string {
	return filepath.Join(s.dir, strconv.FormatInt(userID, 10), name)
}

// UpsertDay rewrites the user's log with rec replacing any line for the
// same date.
func (s *Store) UpsertDay(_ context.Context, userID int64, rec domain.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.readLog(userID)
	if err != nil {
		return err
	}
	snap[rec.Date] = rec
	return s.writeLog(userID, snap)
}

// GetDay returns the record for a day, or nil if none exists.
func (s *Store) GetDay(_ context.Context, userID int64, day string) (*domain.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.readLog(userID)
	if err != nil {
		return nil, err
	}
	rec, ok := snap[day]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Snapshot returns every recorded day for a user.
func (s *Store) Snapshot(_ context.Context, userID int64) (domain.HistorySnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLog(userID)
}

// readLog parses the log, skipping blank and malformed lines. A missing
// file is an empty history.
func (s *Store) readLog(userID int64) (domain.HistorySnapshot, error) {
	out := make(domain.HistorySnapshot)
	data, err := os.ReadFile(s.userPath(userID, LogFile))
	if errors.Is(err, fs.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		rec, ok := parseLogLine(sc.Text())
		if ok {
			out[rec.Date] = rec
		}
	}
	return out, sc.Err()
}

func parseLogLine(line string) (domain.HistoryRecord, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return domain.HistoryRecord{}, false
	}
	sep := ","
	if !strings.Contains(line, sep) {
		sep = "|"
	}
	parts := strings.Split(line, sep)
	if len(parts) != 3 {
		return domain.HistoryRecord{}, false
	}
	intake, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.HistoryRecord{}, false
	}
	goal, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return domain.HistoryRecord{}, false
	}
	date := strings.TrimSpace(parts[0])
	if _, err := time.Parse(domain.DayLayout, date); err != nil {
		return domain.HistoryRecord{}, false
	}
	return domain.HistoryRecord{Date: date, IntakeML: intake, GoalML: goal}, true
}

func (s *Store) writeLog(userID int64, snap domain.HistorySnapshot) error {
	days := make([]string, 0, len(snap))
	for d := range snap {
		days = append(days, d)
	}
	slices.Sort(days)

	var buf bytes.Buffer
	for _, d := range days {
		r := snap[d]
		fmt.Fprintf(&buf, "%s,%d,%d\n", d, r.IntakeML, r.GoalML)
	}
	return s.replace(s.userPath(userID, LogFile), buf.Bytes())
}

// GetProfile returns the stored profile for a user, or nil. Unknown keys and
// unparsable values are ignored.
func (s *Store) GetProfile(_ context.Context, userID int64) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.userPath(userID, ProfileFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	p := domain.DefaultProfile(userID)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		k, v, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok {
			continue
		}
		switch k {
		case "age_group":
			p.AgeGroup = domain.AgeGroup(v)
		case "goal_ml":
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				p.GoalML = n
			}
		case "xp":
			if n, err := strconv.Atoi(v); err == nil {
				p.XP = n
			}
		case "level":
			if n, err := strconv.Atoi(v); err == nil {
				p.Level = n
			}
		case "dark_mode":
			if b, err := strconv.ParseBool(v); err == nil {
				p.DarkMode = b
			}
		case "updated_at":
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				p.UpdatedAt = t
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProfile overwrites the user's profile file.
func (s *Store) SaveProfile(_ context.Context, p domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "age_group=%s\n", p.AgeGroup)
	fmt.Fprintf(&buf, "goal_ml=%d\n", p.GoalML)
	fmt.Fprintf(&buf, "xp=%d\n", p.XP)
	fmt.Fprintf(&buf, "level=%d\n", p.Level)
	fmt.Fprintf(&buf, "dark_mode=%t\n", p.DarkMode)
	fmt.Fprintf(&buf, "updated_at=%s\n", p.UpdatedAt.UTC().Format(time.RFC3339))
	return s.replace(s.userPath(p.UserID, ProfileFile), buf.Bytes())
}

// replace writes data to a temp file next to path and renames it into place.
func (s *Store) replace(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
