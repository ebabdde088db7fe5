package dto

import (
	"time"

	"github.com/GlebRadaev/loanboard/internal/domain"
)

type LoanDTO struct {
	WalletID        string  `json:"wallet_id" example:"0x8f3a"`
	PrincipalAmount string  `json:"principal_amount" example:"10"`
	RepaidAmount    *string `json:"repaid_amount" example:"10.25"`
	Term            int     `json:"term" example:"30"`
	DueDate         string  `json:"due_date" example:"2024-03-20T00:00:00Z"`
	StartTime       string  `json:"start_time,omitempty" example:"2024-02-19T00:00:00Z"`
	EndTime         string  `json:"end_time,omitempty"`
	DefaultDate     string  `json:"default_date,omitempty"`
	IsDefaulted     bool    `json:"is_defaulted" example:"false"`
	Status          string  `json:"status" example:"in_progress"`
	Version         string  `json:"version,omitempty" example:"v2"`
	UploadBatchID   string  `json:"upload_batch_id" example:"5f1c2d9e-7b0a-4d1f-9a52-3c6e8b7d0a11"`
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// NewLoanDTO renders a loan for the API. status is passed in so callers decide the classification.
func NewLoanDTO(l domain.Loan, status string) LoanDTO {
	out := LoanDTO{
		WalletID:        l.WalletID,
		PrincipalAmount: l.PrincipalAmount.String(),
		Term:            l.Term,
		DueDate:         l.DueDate.UTC().Format(time.RFC3339),
		StartTime:       formatTime(l.StartTime),
		EndTime:         formatTime(l.EndTime),
		DefaultDate:     formatTime(l.DefaultDate),
		IsDefaulted:     l.IsDefaulted,
		Status:          status,
		Version:         l.Version,
		UploadBatchID:   l.UploadBatchID.String(),
	}
	if l.RepaidAmount.Valid {
		repaid := l.RepaidAmount.Decimal.String()
		out.RepaidAmount = &repaid
	}
	return out
}
