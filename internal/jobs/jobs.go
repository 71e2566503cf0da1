// Package jobs runs the periodic maintenance tasks.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionEvicter drops idle viewer sessions
type SessionEvicter interface {
	EvictIdle(timeout time.Duration) int
}

// StoryCleaner removes stories past their expiry
type StoryCleaner interface {
	DeleteExpiredStories(ctx context.Context) (int64, error)
}

const cleanupTimeout = time.Minute

// Scheduler wraps a cron runner with the application's jobs
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), logger: logger}
}

// EvictSessions checks for idle sessions every minute
func (s *Scheduler) EvictSessions(sessions SessionEvicter, idle time.Duration) error {
	_, err := s.cron.AddFunc("@every 1m", func() {
		if n := sessions.EvictIdle(idle); n > 0 {
			s.logger.Info("evicted idle sessions", zap.Int("count", n))
		}
	})
	return err
}

// CleanStories deletes expired stories on the given cron schedule
func (s *Scheduler) CleanStories(stories StoryCleaner, schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.logger.Info("Starting expired story cleanup...")
		ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()
		n, err := stories.DeleteExpiredStories(ctx)
		if err != nil {
			s.logger.Error("expired story cleanup failed", zap.Error(err))
			return
		}
		s.logger.Info("expired story cleanup finished", zap.Int64("deleted", n))
	})
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Len reports how many jobs are registered
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}
