package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/agroyield/agri-yield-forecast/internal/store"
	"github.com/agroyield/agri-yield-forecast/internal/weather"
)

// Scheduler periodically resolves weather for configured regions into the
// observation store so the history endpoint has data to serve.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	resolver   *weather.Resolver
	store      *store.MemoryStore
	regions    []string
	interval   time.Duration
	preferLive bool
	logger     *slog.Logger
}

// New creates a new Scheduler.
func New(regions []string, interval time.Duration, preferLive bool, resolver *weather.Resolver, st *store.MemoryStore, logger *slog.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler:  s,
		resolver:   resolver,
		store:      st,
		regions:    regions,
		interval:   interval,
		preferLive: preferLive,
		logger:     logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.regions) == 0 {
		s.logger.Info("scheduler: no regions configured, nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		s.logger.Debug("scheduler: running weather refresh job")

		for _, region := range s.regions {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			obs := s.resolver.Resolve(ctx, region, s.preferLive)
			cancel()

			s.store.SaveObservation(region, obs)
		}

		s.logger.Debug("scheduler: completed weather refresh job", "regions", len(s.regions))
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
