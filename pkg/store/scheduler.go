package store

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
)

// Schedule reloads the graph on a cron schedule. This complements the file
// watcher for rule bases that are synced out-of-band (rsync, object-store
// mounts) where no filesystem events fire.
//
// Common expressions:
//   - "0 3 * * *"   - daily at 3 AM
//   - "*/30 * * * *" - every 30 minutes
//
// Schedule returns after starting the cron runner; the runner stops when the
// context is cancelled.
func (s *Store) Schedule(ctx context.Context, expr string) error {
	if expr == "" {
		s.logger.Info("refresh schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", expr, err)
	}

	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		s.logger.Info("scheduled rule base refresh")
		if err := s.Reload(); err != nil {
			s.logger.Error("scheduled refresh failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	c.Start()
	s.logger.Info("refresh scheduler started", "schedule", expr)

	go func() {
		<-ctx.Done()
		c.Stop()
		s.logger.Info("refresh scheduler stopped")
	}()

	return nil
}
