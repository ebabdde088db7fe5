package scheduler

//go:generate mockgen -source=scheduler.go -destination=mock.go -package=scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/GlebRadaev/loanboard/internal/metrics"
)

const DefaultSchedule = "@every 5m"

type Refresher interface {
	Refresh(ctx context.Context) (*metrics.Dashboard, error)
}

// Service recomputes the dashboard snapshot on a cron schedule so readers hit a warm cache.
type Service struct {
	refresher Refresher
	schedule  string
	loc       *time.Location
	mu        sync.Mutex
}

func New(refresher Refresher, schedule string, loc *time.Location) *Service {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		refresher: refresher,
		schedule:  schedule,
		loc:       loc,
	}
}

// Start refreshes once, then keeps refreshing on schedule until ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(s.loc))
	if _, err := c.AddFunc(s.schedule, func() { s.Run(ctx) }); err != nil {
		return fmt.Errorf("can't schedule snapshot refresh %q: %w", s.schedule, err)
	}

	zap.L().Info("Snapshot scheduler started", zap.String("schedule", s.schedule), zap.String("timezone", s.loc.String()))
	go s.Run(ctx)
	c.Start()

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		zap.L().Info("Context canceled, stopping snapshot scheduler")
	}()
	return nil
}

// Run performs one refresh. Overlapping runs are skipped.
func (s *Service) Run(ctx context.Context) {
	if !s.mu.TryLock() {
		zap.L().Debug("Snapshot refresh already running, skipping")
		return
	}
	defer s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	dash, err := s.refresher.Refresh(ctx)
	if err != nil {
		zap.L().Error("Failed to refresh dashboard snapshot", zap.Error(err))
		return
	}

	dueSoon := 0
	for _, g := range dash.Groups {
		if g.HorizonDays == 7 && !g.Overflow {
			dueSoon = len(g.Loans)
		}
	}
	zap.L().Info("Dashboard snapshot refreshed",
		zap.Int("loans", dash.Metrics.TotalLoans),
		zap.Int("due_within_7_days", dueSoon),
		zap.Int("expired", len(dash.Expired)),
	)
}
