package jobs

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

type stubEvicter struct{}

func (stubEvicter) EvictIdle(time.Duration) int { return 0 }

func TestSchedulerRegistersJobs(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	if err := s.EvictSessions(stubEvicter{}, time.Minute); err != nil {
		t.Fatalf("EvictSessions() error = %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	if err := s.CleanStories(nil, "every tuesday"); err == nil {
		t.Fatal("CleanStories() with an invalid schedule error = nil, want error")
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d after a rejected schedule, want 0", s.Len())
	}
}
