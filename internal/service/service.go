package service

import (
	"time"

	"github.com/GlebRadaev/loanboard/internal/handlers/dashboard"
	"github.com/GlebRadaev/loanboard/internal/handlers/uploads"
	"github.com/GlebRadaev/loanboard/internal/ingest"
	"github.com/GlebRadaev/loanboard/internal/repo"
	"github.com/GlebRadaev/loanboard/internal/scheduler"
	"github.com/GlebRadaev/loanboard/internal/service/dashboardservice"
	"github.com/GlebRadaev/loanboard/internal/service/uploadservice"
)

// Cache is the snapshot store shared by the read path and the ingestion pipeline.
type Cache interface {
	dashboardservice.Cache
	uploadservice.Invalidator
}

type Options struct {
	Vocabulary    *ingest.Vocabulary
	IngestTimeout time.Duration
	Location      *time.Location
}

type Services struct {
	UploadService    uploads.Service
	DashboardService dashboard.Service
	Refresher        scheduler.Refresher
}

func New(repo *repo.Repositories, cache Cache, opts Options) *Services {
	uploadService := uploadservice.New(repo.BatchRepo, repo.LoanRepo, cache, opts.Vocabulary, opts.IngestTimeout)
	dashboardService := dashboardservice.New(repo.LoanRepo, repo.BatchRepo, cache, opts.Location)

	return &Services{
		UploadService:    uploadService,
		DashboardService: dashboardService,
		Refresher:        dashboardService,
	}
}
