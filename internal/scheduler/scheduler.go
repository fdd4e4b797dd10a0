package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/weather-snapshot/internal/weather"
)

// warmConcurrency bounds simultaneous warm-up fetches.
const warmConcurrency = 2

// Refresher is the part of weather.Service the scheduler drives.
type Refresher interface {
	PurgeCache(ctx context.Context) int
	SnapshotForQuery(ctx context.Context, text string) (weather.WeatherSnapshot, error)
}

// Scheduler periodically sweeps expired cache entries and keeps configured
// places warm.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	locations []string
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler.
func New(locations []string, interval time.Duration, service Refresher, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		locations: locations,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().SingletonMode().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce purges expired entries, then refreshes every configured place.
// Refresh failures are logged; one failing place does not stop the others.
func (s *Scheduler) RunOnce(ctx context.Context) {
	purged := s.service.PurgeCache(ctx)
	s.logger.InfoContext(ctx, "scheduler: cache sweep complete", "purged", purged)

	if len(s.locations) == 0 {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(warmConcurrency)
	for _, loc := range s.locations {
		loc := loc
		g.Go(func() error {
			if _, err := s.service.SnapshotForQuery(gctx, loc); err != nil {
				s.logger.WarnContext(gctx, "scheduler: warm-up failed", "location", loc, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	s.logger.InfoContext(ctx, "scheduler: warm-up complete", "locations", len(s.locations))
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
