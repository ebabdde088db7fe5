package dashboardservice

//go:generate mockgen -source=dashboardservice.go -destination=mock.go -package=dashboardservice

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/loanboard/internal/domain"
	"github.com/GlebRadaev/loanboard/internal/metrics"
)

type LoanRepo interface {
	FindAll(ctx context.Context) ([]domain.Loan, error)
}

type BatchRepo interface {
	FindLatest(ctx context.Context) (*domain.UploadBatch, error)
}

// Cache holds dashboard snapshots. Every invalidation bumps the generation; Set stores a snapshot only
// while the generation still equals the one read before its loans were loaded, and reports whether it did.
type Cache interface {
	Get(ctx context.Context, day time.Time) (*metrics.Dashboard, error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, day time.Time, dash *metrics.Dashboard, generation int64) (bool, error)
}

// Snapshot is a dashboard together with the upload it was computed from.
type Snapshot struct {
	metrics.Dashboard
	LatestBatch *domain.UploadBatch `json:"latest_batch,omitempty"`
}

type Service struct {
	loanRepo  LoanRepo
	batchRepo BatchRepo
	cache     Cache
	loc       *time.Location
	now       func() time.Time
}

func New(loanRepo LoanRepo, batchRepo BatchRepo, cache Cache, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		loanRepo:  loanRepo,
		batchRepo: batchRepo,
		cache:     cache,
		loc:       loc,
		now:       time.Now,
	}
}

// Dashboard serves today's snapshot from the cache, computing and storing it on a miss.
// Cache failures degrade to a direct computation.
func (s *Service) Dashboard(ctx context.Context) (*Snapshot, error) {
	now := s.now().In(s.loc)

	cached, err := s.cache.Get(ctx, now)
	if err != nil {
		zap.L().Warn("can't read dashboard cache", zap.Error(err))
	}

	var (
		generation int64
		genErr     error
	)
	if cached == nil {
		if generation, genErr = s.cache.Generation(ctx); genErr != nil {
			zap.L().Warn("can't read dashboard cache generation", zap.Error(genErr))
		}
	}

	latest, loans, err := s.fetch(ctx, cached == nil)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return &Snapshot{Dashboard: *cached, LatestBatch: latest}, nil
	}

	dash := metrics.Build(loans, now)
	if genErr == nil {
		if err := s.store(ctx, now, &dash, generation); err != nil {
			zap.L().Warn("can't store dashboard snapshot", zap.Error(err))
		}
	}
	return &Snapshot{Dashboard: dash, LatestBatch: latest}, nil
}

// Refresh recomputes today's snapshot regardless of what is cached.
func (s *Service) Refresh(ctx context.Context) (*metrics.Dashboard, error) {
	now := s.now().In(s.loc)

	generation, genErr := s.cache.Generation(ctx)
	loans, err := s.loanRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't load loans: %w", err)
	}
	dash := metrics.Build(loans, now)
	if genErr != nil {
		return &dash, fmt.Errorf("can't read dashboard cache generation: %w", genErr)
	}
	if err := s.store(ctx, now, &dash, generation); err != nil {
		return &dash, fmt.Errorf("can't store dashboard snapshot: %w", err)
	}
	return &dash, nil
}

// store skips silently when an upload invalidated the cache after the loans were read.
func (s *Service) store(ctx context.Context, day time.Time, dash *metrics.Dashboard, generation int64) error {
	stored, err := s.cache.Set(ctx, day, dash, generation)
	if err != nil {
		return err
	}
	if !stored {
		zap.L().Debug("dashboard snapshot outdated by an upload, not cached", zap.Int64("generation", generation))
	}
	return nil
}

func (s *Service) Loans(ctx context.Context) ([]domain.Loan, error) {
	loans, err := s.loanRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't load loans: %w", err)
	}
	return loans, nil
}

func (s *Service) LatestBatch(ctx context.Context) (*domain.UploadBatch, error) {
	batch, err := s.batchRepo.FindLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't load latest batch: %w", err)
	}
	return batch, nil
}

func (s *Service) fetch(ctx context.Context, withLoans bool) (*domain.UploadBatch, []domain.Loan, error) {
	var (
		latest *domain.UploadBatch
		loans  []domain.Loan
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		latest, err = s.LatestBatch(gctx)
		return err
	})
	if withLoans {
		g.Go(func() error {
			var err error
			loans, err = s.Loans(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return latest, loans, nil
}
