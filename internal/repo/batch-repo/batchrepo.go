package batchrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/loanboard/internal/domain"
	"github.com/GlebRadaev/loanboard/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, fileName string, recordCount int) (*domain.UploadBatch, error) {
	query := `
        INSERT INTO upload_batches (source_file_name, record_count)
        VALUES ($1, $2)
        RETURNING id, source_file_name, uploaded_at, record_count
    `
	row := r.db.QueryRow(ctx, query, fileName, recordCount)

	var batch domain.UploadBatch
	err := row.Scan(&batch.ID, &batch.SourceFileName, &batch.UploadedAt, &batch.RecordCount)
	if err != nil {
		zap.L().Error("can't create upload batch", zap.Error(err))
		return nil, err
	}
	return &batch, nil
}

func (r *Repository) FindLatest(ctx context.Context) (*domain.UploadBatch, error) {
	query := `
        SELECT id, source_file_name, uploaded_at, record_count
        FROM upload_batches
        ORDER BY uploaded_at DESC
        LIMIT 1
    `
	row := r.db.QueryRow(ctx, query)

	var batch domain.UploadBatch
	err := row.Scan(&batch.ID, &batch.SourceFileName, &batch.UploadedAt, &batch.RecordCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find latest upload batch", zap.Error(err))
		return nil, err
	}
	return &batch, nil
}
