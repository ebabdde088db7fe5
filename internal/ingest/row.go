package ingest

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/GlebRadaev/loanboard/internal/domain"
	"github.com/shopspring/decimal"
)

var ErrMissingWallet = errors.New("wallet id is empty")

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"2 Jan 2006",
	"02-Jan-2006",
}

// ParseDate parses s with the accepted layouts and returns it in UTC at microsecond precision.
// Layouts without a zone are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Round(time.Microsecond), true
		}
	}
	return time.Time{}, false
}

func parseDatePtr(s string) *time.Time {
	t, ok := ParseDate(s)
	if !ok {
		return nil
	}
	return &t
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// NormalizeRow turns one row of cells into a loan. A row without a wallet id is rejected with
// ErrMissingWallet; every other field is coerced leniently.
func NormalizeRow(cells []string, hm *HeaderMap) (domain.Loan, error) {
	raw := make(map[Field]string, len(hm.Columns))
	for i, f := range hm.Columns {
		if i < len(cells) {
			raw[f] = strings.TrimSpace(cells[i])
		}
	}

	loan := domain.Loan{
		WalletID:        raw[FieldWallet],
		PrincipalAmount: decimal.Zero,
		DueDate:         domain.FarFutureDueDate,
		Version:         raw[FieldVersion],
	}
	if loan.WalletID == "" {
		return domain.Loan{}, ErrMissingWallet
	}

	if amount, ok := parseAmount(raw[FieldAmount]); ok && !amount.IsNegative() {
		loan.PrincipalAmount = domain.StorableAmount(amount)
	}
	if v := raw[FieldRepaid]; v != "" {
		if repaid, ok := parseAmount(v); ok && !repaid.IsNegative() {
			loan.RepaidAmount = decimal.NewNullDecimal(domain.StorableAmount(repaid))
		}
	}
	if term := parseFloat(raw[FieldTerm]); term > 0 && term <= math.MaxInt32 {
		loan.Term = int(term)
	}

	if due, ok := ParseDate(raw[FieldDueDate]); ok {
		loan.DueDate = due
	}
	loan.StartTime = parseDatePtr(raw[FieldStarted])
	loan.EndTime = parseDatePtr(raw[FieldEnded])
	loan.DefaultDate = parseDatePtr(raw[FieldDefaultDate])
	loan.IsDefaulted = strings.EqualFold(raw[FieldIsDefaulted], "true")

	return loan, nil
}
