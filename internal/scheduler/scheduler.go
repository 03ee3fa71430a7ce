package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Maintainer is the housekeeping hook the scheduler drives.
type Maintainer interface {
	Maintain(ctx context.Context) error
}

// Scheduler periodically runs store housekeeping. It never deletes
// search records; history is cleared only by the explicit endpoint.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	maintainer Maintainer
	interval   time.Duration
}

// New creates a new Scheduler.
func New(maintainer Maintainer, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler:  s,
		maintainer: maintainer,
		interval:   interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	_, err := s.scheduler.Every(interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.maintainer.Maintain(ctx); err != nil {
			log.Printf("scheduler: store maintenance failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
