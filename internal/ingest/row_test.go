package ingest

import (
	"testing"
	"time"

	"github.com/GlebRadaev/loanboard/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullHeader(t *testing.T) *HeaderMap {
	hm, err := DefaultVocabulary().Resolve([]string{
		"wallet", "amount", "term", "due_date", "repaid", "start_time", "end_time", "default_date", "is_defaulted", "version",
	})
	require.NoError(t, err)
	return hm
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2025-03-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"2025-03-01T10:00:00+02:00", time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), true},
		{"2025-03-01 10:30:00", time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), true},
		{"03/01/2025", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"2025/03/01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"1 Mar 2025", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"not a date", time.Time{}, false},
		{"2025-13-40", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			if ok {
				assert.Equal(t, time.UTC, got.Location())
			}
		})
	}
}

func TestNormalizeRow(t *testing.T) {
	hm := fullHeader(t)
	start := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	defaulted := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		cells   []string
		want    domain.Loan
		wantErr error
	}{
		{
			name:  "complete row",
			cells: []string{" 0xA ", "1", "30", "2025-03-01", "1.03", "2025-02-01T09:00:00Z", "", "2025-03-10", "TRUE", "v2"},
			want: domain.Loan{
				WalletID:        "0xA",
				PrincipalAmount: decimal.RequireFromString("1"),
				RepaidAmount:    decimal.NewNullDecimal(decimal.RequireFromString("1.03")),
				Term:            30,
				StartTime:       &start,
				DueDate:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				DefaultDate:     &defaulted,
				IsDefaulted:     true,
				Version:         "v2",
			},
		},
		{
			name:  "lenient coercion",
			cells: []string{"0xB", "abc", "7.9", "garbage", "", "nope", "", "", "yes", ""},
			want: domain.Loan{
				WalletID:        "0xB",
				PrincipalAmount: decimal.Zero,
				Term:            7,
				DueDate:         domain.FarFutureDueDate,
			},
		},
		{
			name:  "zero repaid is not unknown",
			cells: []string{"0xC", "10", "", "", "0"},
			want: domain.Loan{
				WalletID:        "0xC",
				PrincipalAmount: decimal.RequireFromString("10"),
				RepaidAmount:    decimal.NewNullDecimal(decimal.Zero),
				DueDate:         domain.FarFutureDueDate,
			},
		},
		{
			name:  "negative amount coerced to zero",
			cells: []string{"0xD", "-5", "-3", "2025-03-01"},
			want: domain.Loan{
				WalletID:        "0xD",
				PrincipalAmount: decimal.Zero,
				DueDate:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:  "amounts rounded to stored precision",
			cells: []string{"0xE", "1.0000004", "", "2025-03-01", "1.0250006"},
			want: domain.Loan{
				WalletID:        "0xE",
				PrincipalAmount: decimal.RequireFromString("1"),
				RepaidAmount:    decimal.NewNullDecimal(decimal.RequireFromString("1.025001")),
				DueDate:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:  "amounts beyond stored range clamped",
			cells: []string{"0xF", "1e15", "", "2025-03-01", "123456789012345678"},
			want: domain.Loan{
				WalletID:        "0xF",
				PrincipalAmount: domain.MaxAmount,
				RepaidAmount:    decimal.NewNullDecimal(domain.MaxAmount),
				DueDate:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:    "missing wallet",
			cells:   []string{"", "1", "30", "2025-03-01"},
			wantErr: ErrMissingWallet,
		},
		{
			name:    "blank wallet",
			cells:   []string{"   ", "1"},
			wantErr: ErrMissingWallet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeRow(tt.cells, hm)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.WalletID, got.WalletID)
			assert.True(t, tt.want.PrincipalAmount.Equal(got.PrincipalAmount), "principal %s", got.PrincipalAmount)
			assert.Equal(t, tt.want.RepaidAmount.Valid, got.RepaidAmount.Valid)
			if tt.want.RepaidAmount.Valid {
				assert.True(t, tt.want.RepaidAmount.Decimal.Equal(got.RepaidAmount.Decimal))
			}
			assert.Equal(t, tt.want.Term, got.Term)
			assert.Equal(t, tt.want.StartTime, got.StartTime)
			assert.Equal(t, tt.want.EndTime, got.EndTime)
			assert.True(t, tt.want.DueDate.Equal(got.DueDate))
			assert.Equal(t, tt.want.DefaultDate, got.DefaultDate)
			assert.Equal(t, tt.want.IsDefaulted, got.IsDefaulted)
			assert.Equal(t, tt.want.Version, got.Version)
		})
	}
}

func TestNormalizeRow_SameStoredAmountSameKey(t *testing.T) {
	hm := fullHeader(t)
	a, err := NormalizeRow([]string{"0xA", "1.0000001", "30", "2025-03-01"}, hm)
	require.NoError(t, err)
	b, err := NormalizeRow([]string{"0xA", "1.0000004", "30", "2025-03-01"}, hm)
	require.NoError(t, err)
	c, err := NormalizeRow([]string{"0xA", "1", "30", "2025-03-01T00:00:00.0000001Z"}, hm)
	require.NoError(t, err)

	assert.Equal(t, a.NaturalKey(), b.NaturalKey())
	assert.Equal(t, a.NaturalKey(), c.NaturalKey())
}

func TestNormalizeRow_DegradedHeader(t *testing.T) {
	hm, err := DefaultVocabulary().Resolve([]string{"wallet", "amount", "due"})
	require.NoError(t, err)
	require.Equal(t, []Field{FieldTerm}, hm.Missing)

	loan, err := NormalizeRow([]string{"0xA", "10", "2025-03-01"}, hm)
	require.NoError(t, err)
	assert.Equal(t, 0, loan.Term)
	assert.Equal(t, "", loan.Version)
}
