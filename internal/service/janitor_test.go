package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingCleaner struct {
	calls   int
	removed int
}

func (c *countingCleaner) CleanupExpired() int {
	c.calls++
	return c.removed
}

func TestSessionJanitor_Sweep(t *testing.T) {
	c := &countingCleaner{removed: 3}
	j := NewSessionJanitor(c, "", zap.NewNop())

	assert.Equal(t, 3, j.Sweep())
	assert.Equal(t, 1, c.calls)
	assert.Equal(t, DefaultCleanupSchedule, j.schedule)
}

func TestSessionJanitor_RunRejectsBadSchedule(t *testing.T) {
	j := NewSessionJanitor(&countingCleaner{}, "not a schedule", zap.NewNop())

	err := j.Run(context.Background())
	require.Error(t, err)
}

func TestSessionJanitor_RunStopsOnCancel(t *testing.T) {
	j := NewSessionJanitor(&countingCleaner{}, "@every 1h", zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop")
	}
}
