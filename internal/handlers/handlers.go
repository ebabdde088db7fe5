package handlers

//go:generate mockgen -source=handlers.go -destination=mock.go -package=handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/loanboard/docs"
	dashboardhandlers "github.com/GlebRadaev/loanboard/internal/handlers/dashboard"
	uploadhandlers "github.com/GlebRadaev/loanboard/internal/handlers/uploads"
	"github.com/GlebRadaev/loanboard/internal/service"
)

type UploadHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	UploadStream(w http.ResponseWriter, r *http.Request)
	LatestBatch(w http.ResponseWriter, r *http.Request)
}

type DashboardHandler interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
	Loans(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	UploadHandler    UploadHandler
	DashboardHandler DashboardHandler
}

func New(s *service.Services, maxUploadBytes int64) *Handlers {
	return &Handlers{
		UploadHandler:    uploadhandlers.New(s.UploadService, maxUploadBytes),
		DashboardHandler: dashboardhandlers.New(s.DashboardService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Route("/uploads", func(r chi.Router) {
			r.Post("/", h.UploadHandler.Upload)
			r.Post("/stream", h.UploadHandler.UploadStream)
			r.Get("/latest", h.UploadHandler.LatestBatch)
		})
		r.Get("/loans", h.DashboardHandler.Loans)
		r.Get("/dashboard", h.DashboardHandler.Dashboard)
	})

	return r
}
