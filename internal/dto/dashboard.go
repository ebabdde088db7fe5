package dto

import "github.com/GlebRadaev/loanboard/internal/metrics"

type DueDateGroupDTO struct {
	HorizonDays int       `json:"horizon_days" example:"7"`
	Overflow    bool      `json:"overflow,omitempty"`
	Count       int       `json:"count" example:"4"`
	Loans       []LoanDTO `json:"loans"`
}

type DashboardResponseDTO struct {
	GeneratedAt  string               `json:"generated_at" example:"2024-03-15T09:30:00Z"`
	LatestBatch  *BatchDTO            `json:"latest_batch,omitempty"`
	Metrics      metrics.LoanMetrics  `json:"metrics"`
	Groups       []DueDateGroupDTO    `json:"due_date_groups"`
	Expired      []LoanDTO            `json:"expired"`
	StatusSeries []metrics.Point      `json:"status_series"`
	AmountSeries []metrics.TierSeries `json:"amount_series"`
}
