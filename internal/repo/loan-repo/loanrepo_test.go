package loanrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/loanboard/internal/domain"
	"github.com/GlebRadaev/loanboard/internal/pg"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var upsertPattern = regexp.QuoteMeta(`INSERT INTO loans (wallet_id, principal_amount, repaid_amount, term, start_time, end_time, due_date, default_date, is_defaulted, version, upload_batch_id) VALUES`) +
	`.*` + regexp.QuoteMeta(`ON CONFLICT (wallet_id, principal_amount, due_date) DO UPDATE`)

func NewMock(t *testing.T, batchSize int) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager, batchSize)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func passThrough(tx *pg.MockTXManager, times int) {
	tx.EXPECT().Begin(gomock.Any(), gomock.Any()).Times(times).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
		return fn(ctx)
	})
}

// rowArgs matches one VALUES tuple, pinning the wallet, version and batch id.
func rowArgs(wallet, version string, batchID uuid.UUID) []any {
	return []any{
		wallet, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), version, batchID,
	}
}

func testLoan(wallet string, amount int64, due time.Time, version string) domain.Loan {
	return domain.Loan{WalletID: wallet, PrincipalAmount: decimal.NewFromInt(amount), DueDate: due, Version: version}
}

func TestUpsertQuery(t *testing.T) {
	q := upsertQuery(2)
	assert.Contains(t, q, "($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11), ($12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)")
	assert.NotContains(t, q, "$23")
}

func TestDedupe(t *testing.T) {
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	loans := []domain.Loan{
		testLoan("0xA", 1, due, "v1"),
		testLoan("0xB", 1, due, ""),
		testLoan("0xA", 1, due, "v2"),
		testLoan("0xA", 10, due, ""),
	}

	got := dedupe(loans)

	require.Len(t, got, 3)
	assert.Equal(t, "v2", got[0].Version)
	assert.Equal(t, "0xB", got[1].WalletID)
	assert.True(t, got[2].PrincipalAmount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "v1", loans[0].Version, "input must not change")
}

func TestRepository_Upsert(t *testing.T) {
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	batchID := uuid.New()
	loans := []domain.Loan{
		testLoan("0xA", 1, due, "v1"),
		testLoan("0xB", 10, due, ""),
		testLoan("0xA", 1, due, "v2"),
		testLoan("0xC", 1, due, ""),
	}

	t.Run("Chunks are written in order", func(t *testing.T) {
		repo, mock, tx := NewMock(t, 2)
		passThrough(tx, 2)
		mock.ExpectExec(upsertPattern).
			WithArgs(append(rowArgs("0xA", "v2", batchID), rowArgs("0xB", "", batchID)...)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 2))
		mock.ExpectExec(upsertPattern).
			WithArgs(rowArgs("0xC", "", batchID)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		var progress [][2]int
		err := repo.Upsert(context.Background(), loans, batchID, func(done, total int) {
			progress = append(progress, [2]int{done, total})
		})

		require.NoError(t, err)
		assert.Equal(t, [][2]int{{2, 3}, {3, 3}}, progress)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure stops later chunks", func(t *testing.T) {
		repo, mock, tx := NewMock(t, 2)
		passThrough(tx, 1)
		mock.ExpectExec(upsertPattern).
			WillReturnError(errors.New("database error"))

		called := false
		err := repo.Upsert(context.Background(), loans, batchID, func(done, total int) { called = true })

		require.Error(t, err)
		assert.Contains(t, err.Error(), "database error")
		assert.False(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Deadline checked between chunks", func(t *testing.T) {
		repo, mock, tx := NewMock(t, 2)
		passThrough(tx, 1)
		mock.ExpectExec(upsertPattern).
			WillReturnResult(pgxmock.NewResult("INSERT", 2))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		err := repo.Upsert(ctx, loans, batchID, func(done, total int) { cancel() })

		assert.ErrorIs(t, err, context.Canceled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nothing to write", func(t *testing.T) {
		repo, mock, _ := NewMock(t, 2)
		err := repo.Upsert(context.Background(), nil, batchID, nil)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNew_DefaultBatchSize(t *testing.T) {
	repo, _, _ := NewMock(t, 0)
	assert.Equal(t, DefaultBatchSize, repo.batchSize)
}

func TestRepository_FindAll(t *testing.T) {
	repo, mock, _ := NewMock(t, 100)
	query := regexp.QuoteMeta(`SELECT id, wallet_id, principal_amount, repaid_amount, term, start_time, end_time, due_date, default_date, is_defaulted, version, upload_batch_id FROM loans ORDER BY due_date ASC, id ASC`)
	columns := []string{"id", "wallet_id", "principal_amount", "repaid_amount", "term", "start_time", "end_time",
		"due_date", "default_date", "is_defaulted", "version", "upload_batch_id"}
	batchID := uuid.New()
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	started := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	repaid := 1.03

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		check     func(t *testing.T, loans []domain.Loan)
	}{
		{
			name: "Loans found",
			mockSetup: func() {
				rows := pgxmock.NewRows(columns).
					AddRow(int64(1), "0xA", 1.0, &repaid, 30, &started, nil, due, nil, false, "v1", batchID).
					AddRow(int64(2), "0xB", 10.0, nil, 14, nil, nil, due.AddDate(0, 0, 1), nil, true, "", batchID)
				mock.ExpectQuery(query).WillReturnRows(rows)
			},
			check: func(t *testing.T, loans []domain.Loan) {
				require.Len(t, loans, 2)
				assert.Equal(t, int64(1), loans[0].ID)
				assert.Equal(t, "0xA", loans[0].WalletID)
				assert.True(t, loans[0].PrincipalAmount.Equal(decimal.NewFromInt(1)))
				assert.True(t, loans[0].RepaidAmount.Valid)
				assert.True(t, loans[0].RepaidAmount.Decimal.Equal(decimal.RequireFromString("1.03")))
				assert.Equal(t, 30, loans[0].Term)
				assert.Equal(t, &started, loans[0].StartTime)
				assert.Nil(t, loans[0].EndTime)
				assert.Equal(t, batchID, loans[0].UploadBatchID)
				assert.False(t, loans[1].RepaidAmount.Valid)
				assert.True(t, loans[1].IsDefaulted)
			},
		},
		{
			name: "No loans",
			mockSetup: func() {
				mock.ExpectQuery(query).WillReturnRows(pgxmock.NewRows(columns))
			},
			check: func(t *testing.T, loans []domain.Loan) {
				assert.Nil(t, loans)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
		{
			name: "Scan row error",
			mockSetup: func() {
				rows := pgxmock.NewRows(columns).
					AddRow(int64(1), "0xA", "invalid_value", nil, 30, nil, nil, due, nil, false, "", batchID)
				mock.ExpectQuery(query).WillReturnRows(rows)
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			loans, err := repo.FindAll(context.Background())
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, loans)
				return
			}
			require.NoError(t, err)
			tt.check(t, loans)
		})
	}
}
