package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/loanboard/internal/cache"
	"github.com/GlebRadaev/loanboard/internal/config"
	"github.com/GlebRadaev/loanboard/internal/handlers"
	"github.com/GlebRadaev/loanboard/internal/ingest"
	"github.com/GlebRadaev/loanboard/internal/pg"
	"github.com/GlebRadaev/loanboard/internal/repo"
	"github.com/GlebRadaev/loanboard/internal/scheduler"
	"github.com/GlebRadaev/loanboard/internal/service"
	"github.com/GlebRadaev/loanboard/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg   *config.Config
	api   *handlers.Handlers
	srv   *service.Services
	repo  *repo.Repositories
	cron  *scheduler.Service
	cache service.Cache

	closers []func()
	errCh   chan error
	wg      sync.WaitGroup
	ready   bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	vocab, err := loadVocabulary(cfg)
	if err != nil {
		return fmt.Errorf("can't load header synonyms: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	a.closers = append(a.closers, pool.Close)
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	snapshots, err := a.buildCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("can't connect to redis: %w", err)
	}

	conn := pg.New(pool)
	a.cfg = cfg
	a.cache = snapshots
	a.repo = repo.New(conn, txManager, cfg.UpsertBatchSize)
	a.srv = service.New(a.repo, a.cache, service.Options{
		Vocabulary:    vocab,
		IngestTimeout: cfg.IngestTimeout,
		Location:      loc,
	})
	a.api = handlers.New(a.srv, cfg.MaxUploadBytes)
	a.cron = scheduler.New(a.srv.Refresher, cfg.SnapshotSchedule, loc)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	if err = a.startScheduler(ctx); err != nil {
		return fmt.Errorf("can't start scheduler: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func loadVocabulary(cfg *config.Config) (*ingest.Vocabulary, error) {
	if cfg.SynonymsFile == "" {
		return ingest.DefaultVocabulary(), nil
	}
	return ingest.LoadVocabulary(cfg.SynonymsFile)
}

func (a *Application) buildCache(ctx context.Context, cfg *config.Config) (service.Cache, error) {
	if cfg.RedisAddress == "" {
		zap.L().Info("REDIS_ADDR is empty, dashboard snapshots are not cached")
		return cache.Noop{}, nil
	}
	client, err := cache.ConnectRedis(ctx, cache.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = client.Close() })
	return cache.NewRedis(client, cfg.CacheTTL), nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startScheduler(ctx context.Context) error {
	return a.cron.Start(ctx)
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}

	return appErr
}
