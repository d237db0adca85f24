package scheduler

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type purgerFunc func(ctx context.Context) (int64, error)

func (f purgerFunc) PurgeExpiredSessions(ctx context.Context) (int64, error) { return f(ctx) }

func TestAddRegistersJobs(t *testing.T) {
	s := New(zerolog.Nop())
	require.NoError(t, s.Add("cleanup", "@hourly", func(context.Context) error { return nil }))
	require.NoError(t, s.Add("tick", "*/5 * * * *", func(context.Context) error { return nil }))
	assert.Equal(t, 2, s.Len())

	s.Start()
	s.Stop()
}

func TestAddRejectsBadSpec(t *testing.T) {
	s := New(zerolog.Nop())
	err := s.Add("broken", "every tuesday", func(context.Context) error { return nil })
	assert.Error(t, err)
	assert.Zero(t, s.Len())
}

func TestRunLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	s := New(zerolog.New(&buf))

	s.run("explode", func(context.Context) error { return errors.New("boom") })
	assert.Contains(t, buf.String(), `"job":"explode"`)
	assert.Contains(t, buf.String(), "boom")
}

func TestSessionCleanup(t *testing.T) {
	var calls int
	job := SessionCleanup(purgerFunc(func(context.Context) (int64, error) {
		calls++
		return 3, nil
	}), zerolog.Nop())

	require.NoError(t, job(context.Background()))
	assert.Equal(t, 1, calls)

	failing := SessionCleanup(purgerFunc(func(context.Context) (int64, error) {
		return 0, errors.New("db down")
	}), zerolog.Nop())
	err := failing(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}
