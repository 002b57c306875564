package service

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultCleanupSchedule is used when no schedule is configured.
const DefaultCleanupSchedule = "@every 5m"

// SessionJanitor periodically drops quiz sessions nobody touched within their ttl.
type SessionJanitor struct {
	sessions SessionCleaner
	schedule string
	logger   *zap.Logger
}

// NewSessionJanitor creates a new SessionJanitor. schedule is a cron spec
// such as "@every 5m" or "*/10 * * * *".
func NewSessionJanitor(sessions SessionCleaner, schedule string, logger *zap.Logger) *SessionJanitor {
	if schedule == "" {
		schedule = DefaultCleanupSchedule
	}
	return &SessionJanitor{
		sessions: sessions,
		schedule: schedule,
		logger:   logger,
	}
}

// Sweep runs one cleanup pass and returns the number of dropped sessions.
func (j *SessionJanitor) Sweep() int {
	removed := j.sessions.CleanupExpired()
	if removed > 0 {
		j.logger.Info("expired quiz sessions removed", zap.Int("removed", removed))
	}
	return removed
}

// Run schedules Sweep and blocks until ctx is done.
func (j *SessionJanitor) Run(ctx context.Context) error {
	c := cron.New()

	if _, err := c.AddFunc(j.schedule, func() { j.Sweep() }); err != nil {
		return fmt.Errorf("add cleanup job %q: %w", j.schedule, err)
	}

	c.Start()
	j.logger.Info("session janitor started", zap.String("schedule", j.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("session janitor stopped")

	return nil
}
