package loanrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/loanboard/internal/domain"
	"github.com/GlebRadaev/loanboard/internal/pg"
)

const DefaultBatchSize = 100

const upsertColumns = 11

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
	batchSize int
}

func New(db pg.Database, txManager pg.TXManager, batchSize int) *Repository {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Repository{
		db:        db,
		txManager: txManager,
		batchSize: batchSize,
	}
}

func upsertQuery(rows int) string {
	var b strings.Builder
	b.WriteString(`
        INSERT INTO loans (wallet_id, principal_amount, repaid_amount, term, start_time, end_time,
                           due_date, default_date, is_defaulted, version, upload_batch_id)
        VALUES `)
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j := 0; j < upsertColumns; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", i*upsertColumns+j+1)
		}
		b.WriteByte(')')
	}
	b.WriteString(`
        ON CONFLICT (wallet_id, principal_amount, due_date) DO UPDATE
        SET repaid_amount = EXCLUDED.repaid_amount,
            term = EXCLUDED.term,
            start_time = EXCLUDED.start_time,
            end_time = EXCLUDED.end_time,
            default_date = EXCLUDED.default_date,
            is_defaulted = EXCLUDED.is_defaulted,
            version = EXCLUDED.version,
            upload_batch_id = EXCLUDED.upload_batch_id
    `)
	return b.String()
}

// dedupe keeps one loan per natural key, the last occurrence winning, in first-seen order.
// A single INSERT ... ON CONFLICT statement can't touch the same row twice.
func dedupe(loans []domain.Loan) []domain.Loan {
	out := make([]domain.Loan, 0, len(loans))
	pos := make(map[string]int, len(loans))
	for _, l := range loans {
		key := l.NaturalKey()
		if i, ok := pos[key]; ok {
			out[i] = l
			continue
		}
		pos[key] = len(out)
		out = append(out, l)
	}
	return out
}

// Upsert writes loans tagged with batchID in sequential chunks, one round trip per chunk, and reports
// each finished chunk through onBatch. The context deadline is checked between chunks only; a chunk
// that has been issued runs to completion. The first failing chunk stops the rest.
func (r *Repository) Upsert(ctx context.Context, loans []domain.Loan, batchID uuid.UUID, onBatch func(done, total int)) error {
	unique := dedupe(loans)
	total := len(unique)

	for start := 0; start < total; start += r.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+r.batchSize, total)
		chunk := unique[start:end]

		args := make([]any, 0, len(chunk)*upsertColumns)
		for _, l := range chunk {
			args = append(args,
				l.WalletID, l.PrincipalAmount, l.RepaidAmount, l.Term, l.StartTime, l.EndTime,
				l.DueDate, l.DefaultDate, l.IsDefaulted, l.Version, batchID,
			)
		}
		query := upsertQuery(len(chunk))

		err := r.txManager.Begin(context.WithoutCancel(ctx), func(ctx context.Context) error {
			_, err := r.db.Exec(ctx, query, args...)
			if err != nil {
				zap.L().Error("can't upsert loans", zap.Int("from", start), zap.Int("to", end), zap.Error(err))
				return err
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("upsert loans %d-%d: %w", start+1, end, err)
		}

		if onBatch != nil {
			onBatch(end, total)
		}
	}
	return nil
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Loan, error) {
	query := `
        SELECT id, wallet_id, principal_amount, repaid_amount, term, start_time, end_time,
               due_date, default_date, is_defaulted, version, upload_batch_id
        FROM loans
        ORDER BY due_date ASC, id ASC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get loans", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var (
			loan      domain.Loan
			principal float64
			repaid    *float64
		)
		err := rows.Scan(&loan.ID, &loan.WalletID, &principal, &repaid, &loan.Term, &loan.StartTime, &loan.EndTime,
			&loan.DueDate, &loan.DefaultDate, &loan.IsDefaulted, &loan.Version, &loan.UploadBatchID)
		if err != nil {
			zap.L().Error("can't scan loan row", zap.Error(err))
			return nil, err
		}
		loan.PrincipalAmount = decimal.NewFromFloat(principal)
		if repaid != nil {
			loan.RepaidAmount = decimal.NewNullDecimal(decimal.NewFromFloat(*repaid))
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate loan rows", zap.Error(err))
		return nil, err
	}
	return loans, nil
}
