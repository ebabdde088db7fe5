package uploadservice

//go:generate mockgen -source=uploadservice.go -destination=mock.go -package=uploadservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/loanboard/internal/domain"
	"github.com/GlebRadaev/loanboard/internal/ingest"
)

type BatchRepo interface {
	Create(ctx context.Context, fileName string, recordCount int) (*domain.UploadBatch, error)
	FindLatest(ctx context.Context) (*domain.UploadBatch, error)
}

type LoanRepo interface {
	Upsert(ctx context.Context, loans []domain.Loan, batchID uuid.UUID, onBatch func(done, total int)) error
	FindAll(ctx context.Context) ([]domain.Loan, error)
}

type Invalidator interface {
	Invalidate(ctx context.Context) error
}

const DefaultTimeout = 30 * time.Second

var (
	ErrEmptyFile              = ingest.ErrEmptyFile
	ErrRequiredHeadersMissing = ingest.ErrRequiredHeadersMissing
	ErrNoDataRows             = errors.New("file contains no data rows")
	ErrNoValidRows            = errors.New("no valid rows")
	ErrTimeout                = errors.New("ingestion timed out")
)

type Upload struct {
	FileName string
	Data     []byte
}

type Result struct {
	Batch    *domain.UploadBatch
	Loans    []domain.Loan
	Rejected []int
	Warnings []string
}

type Service struct {
	batchRepo BatchRepo
	loanRepo  LoanRepo
	cache     Invalidator
	vocab     *ingest.Vocabulary
	timeout   time.Duration
}

func New(batchRepo BatchRepo, loanRepo LoanRepo, cache Invalidator, vocab *ingest.Vocabulary, timeout time.Duration) *Service {
	if vocab == nil {
		vocab = ingest.DefaultVocabulary()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		batchRepo: batchRepo,
		loanRepo:  loanRepo,
		cache:     cache,
		vocab:     vocab,
		timeout:   timeout,
	}
}

// IsInputError reports whether err is caused by the uploaded file rather than by the backend.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrRequiredHeadersMissing) ||
		errors.Is(err, ErrNoDataRows) ||
		errors.Is(err, ErrNoValidRows)
}

type outcome struct {
	res *Result
	err error
}

// Ingest parses, validates and stores an upload. Rows without a wallet id are skipped and reported as
// warnings as long as at least one row is valid. The whole call races the configured timeout; writes
// already issued when it fires are not rolled back.
func (s *Service) Ingest(ctx context.Context, upload Upload, sink ProgressSink) (*Result, error) {
	progress := newMonotonic(sink)
	defer progress.close()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		res, err := s.ingest(ctx, upload, progress)
		done <- outcome{res: res, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil && errors.Is(out.err, context.DeadlineExceeded) {
			return nil, s.timedOut(upload)
		}
		return out.res, out.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, s.timedOut(upload)
		}
		return nil, ctx.Err()
	}
}

func (s *Service) timedOut(upload Upload) error {
	zap.L().Warn("ingestion timed out", zap.String("file", upload.FileName), zap.Duration("timeout", s.timeout))
	return fmt.Errorf("%w after %s", ErrTimeout, s.timeout)
}

func (s *Service) ingest(ctx context.Context, upload Upload, progress ProgressSink) (*Result, error) {
	progress.Report(0, "reading file")
	table, err := ingest.ParseUpload(upload.FileName, upload.Data)
	if err != nil {
		zap.L().Info("can't parse upload", zap.String("file", upload.FileName), zap.Error(err))
		return nil, err
	}
	progress.Report(5, fmt.Sprintf("found %d data lines", len(table.Rows)))

	headers, err := s.vocab.Resolve(table.Header)
	if err != nil {
		zap.L().Info("can't resolve headers", zap.String("file", upload.FileName), zap.Error(err))
		return nil, err
	}

	var warnings []string
	if len(headers.Missing) > 0 {
		missing := make([]string, len(headers.Missing))
		for i, f := range headers.Missing {
			missing[i] = string(f)
		}
		warnings = append(warnings, fmt.Sprintf("missing columns [%s]: defaults applied", strings.Join(missing, ", ")))
	}
	progress.Report(10, "headers resolved")

	loans, rejected := normalizeRows(table, headers, progress)
	if len(loans) == 0 {
		if len(rejected) > 0 {
			return nil, fmt.Errorf("%w: %d rows rejected for missing wallet id", ErrNoValidRows, len(rejected))
		}
		return nil, ErrNoDataRows
	}
	if len(rejected) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d rows skipped: missing wallet id", len(rejected)))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	batch, err := s.batchRepo.Create(context.WithoutCancel(ctx), upload.FileName, len(loans))
	if err != nil {
		return nil, fmt.Errorf("can't record upload batch: %w", err)
	}
	for i := range loans {
		loans[i].UploadBatchID = batch.ID
	}
	progress.Report(65, "upload batch recorded")

	err = s.loanRepo.Upsert(ctx, loans, batch.ID, func(done, total int) {
		progress.Report(65+30*done/total, fmt.Sprintf("saved %d of %d loans", done, total))
	})
	if err != nil {
		return nil, fmt.Errorf("can't save loans: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(context.WithoutCancel(ctx)); err != nil {
			zap.L().Warn("can't invalidate dashboard cache", zap.Error(err))
		}
	}

	zap.L().Info("upload ingested",
		zap.String("file", upload.FileName),
		zap.String("batch_id", batch.ID.String()),
		zap.Int("loans", len(loans)),
		zap.Int("rejected", len(rejected)),
	)
	progress.Report(100, "done")

	return &Result{
		Batch:    batch,
		Loans:    loans,
		Rejected: rejected,
		Warnings: warnings,
	}, nil
}

// LatestBatch returns the most recent upload, or nil when nothing was uploaded yet.
func (s *Service) LatestBatch(ctx context.Context) (*domain.UploadBatch, error) {
	batch, err := s.batchRepo.FindLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't load latest batch: %w", err)
	}
	return batch, nil
}

func normalizeRows(table *ingest.Table, headers *ingest.HeaderMap, progress ProgressSink) ([]domain.Loan, []int) {
	var (
		loans    []domain.Loan
		rejected []int
		last     = -1
	)
	total := len(table.Rows)
	for i, row := range table.Rows {
		loan, err := ingest.NormalizeRow(row.Cells, headers)
		if err != nil {
			rejected = append(rejected, row.Line)
		} else {
			loans = append(loans, loan)
		}

		pct := 10 + 50*(i+1)/total
		if pct != last {
			last = pct
			progress.Report(pct, fmt.Sprintf("processed %d of %d rows", i+1, total))
		}
	}
	return loans, rejected
}
