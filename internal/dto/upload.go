package dto

import (
	"time"

	"github.com/GlebRadaev/loanboard/internal/domain"
)

type BatchDTO struct {
	BatchID        string `json:"batch_id" example:"5f1c2d9e-7b0a-4d1f-9a52-3c6e8b7d0a11"`
	SourceFileName string `json:"source_file_name" example:"loans.csv"`
	UploadedAt     string `json:"uploaded_at" example:"2024-03-15T09:30:00Z"`
	RecordCount    int    `json:"record_count" example:"120"`
}

func NewBatchDTO(b *domain.UploadBatch) *BatchDTO {
	if b == nil {
		return nil
	}
	return &BatchDTO{
		BatchID:        b.ID.String(),
		SourceFileName: b.SourceFileName,
		UploadedAt:     b.UploadedAt.UTC().Format(time.RFC3339),
		RecordCount:    b.RecordCount,
	}
}

type ProgressDTO struct {
	Percent int    `json:"percent" example:"65"`
	Message string `json:"message" example:"upload batch recorded"`
}

type UploadResponseDTO struct {
	BatchDTO
	RejectedLines []int         `json:"rejected_lines"`
	Warnings      []string      `json:"warnings"`
	Progress      []ProgressDTO `json:"progress"`
}
