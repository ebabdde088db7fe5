package dashboard

//go:generate mockgen -source=dashboard.go -destination=mock.go -package=dashboard

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/loanboard/internal/domain"
	"github.com/GlebRadaev/loanboard/internal/dto"
	"github.com/GlebRadaev/loanboard/internal/metrics"
	"github.com/GlebRadaev/loanboard/internal/service/dashboardservice"
	"github.com/GlebRadaev/loanboard/pkg/utils"
)

type Service interface {
	Dashboard(ctx context.Context) (*dashboardservice.Snapshot, error)
	Loans(ctx context.Context) ([]domain.Loan, error)
}

type DashboardHandler struct {
	dashboardService Service
}

func New(dashboardService Service) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func loanDTOs(loans []domain.Loan) []dto.LoanDTO {
	out := make([]dto.LoanDTO, 0, len(loans))
	for _, l := range loans {
		out = append(out, dto.NewLoanDTO(l, string(metrics.Classify(l))))
	}
	return out
}

// Dashboard godoc
//
//	@Summary		Portfolio dashboard
//	@Description	Status and tier counters, due-date groups, expired loans and chart series for today
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	dto.DashboardResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/dashboard [get]
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.dashboardService.Dashboard(r.Context())
	if err != nil {
		zap.L().Error("Failed to build dashboard", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := dto.DashboardResponseDTO{
		GeneratedAt:  snap.GeneratedAt.Format(time.RFC3339),
		LatestBatch:  dto.NewBatchDTO(snap.LatestBatch),
		Metrics:      snap.Metrics,
		Groups:       make([]dto.DueDateGroupDTO, 0, len(snap.Groups)),
		Expired:      loanDTOs(snap.Expired),
		StatusSeries: snap.StatusSeries,
		AmountSeries: snap.AmountSeries,
	}
	for _, g := range snap.Groups {
		resp.Groups = append(resp.Groups, dto.DueDateGroupDTO{
			HorizonDays: g.HorizonDays,
			Overflow:    g.Overflow,
			Count:       len(g.Loans),
			Loans:       loanDTOs(g.Loans),
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// Loans godoc
//
//	@Summary		Stored loans
//	@Description	Every stored loan ordered by due date, with its derived status
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{array}		dto.LoanDTO
//	@Success		204	{object}	utils.Response	"No data available"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/loans [get]
func (h *DashboardHandler) Loans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.dashboardService.Loans(r.Context())
	if err != nil {
		zap.L().Error("Failed to load loans", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(loans) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, loanDTOs(loans))
}
