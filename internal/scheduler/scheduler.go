package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Sweeper removes quiz snapshots that are too old to resume
type Sweeper interface {
	SweepExpired(ctx context.Context) bool
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   Sweeper
	interval  time.Duration
}

// New creates a new scheduler instance
func New(sweeper Sweeper, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		sweeper:   sweeper,
		interval:  time.Hour,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).Do(s.sweepExpiredSessions); err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// sweepExpiredSessions drops an expired active-session snapshot
func (s *Scheduler) sweepExpiredSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if s.sweeper.SweepExpired(ctx) {
		log.Println("Removed expired quiz session")
	}
}
