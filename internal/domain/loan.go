package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FarFutureDueDate stands in for a missing due date so such loans never look expired or urgent.
var FarFutureDueDate = time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC)

// Amounts are kept at the precision and range of the loans table columns, NUMERIC(20,6).
const AmountScale = 6

var MaxAmount = decimal.New(1, 14).Sub(decimal.New(1, -AmountScale))

// StorableAmount rounds d to AmountScale places and clamps it to [0, MaxAmount], so two amounts that
// the store would hold as the same value compare equal here too.
func StorableAmount(d decimal.Decimal) decimal.Decimal {
	d = d.Round(AmountScale)
	switch {
	case d.IsNegative():
		return decimal.Zero
	case d.GreaterThan(MaxAmount):
		return MaxAmount
	}
	return d
}

type Loan struct {
	ID              int64               `db:"id"               json:"id,omitempty"`
	WalletID        string              `db:"wallet_id"        json:"wallet_id"`
	PrincipalAmount decimal.Decimal     `db:"principal_amount" json:"principal_amount"`
	RepaidAmount    decimal.NullDecimal `db:"repaid_amount"    json:"repaid_amount"`
	Term            int                 `db:"term"             json:"term"`
	StartTime       *time.Time          `db:"start_time"       json:"start_time,omitempty"`
	EndTime         *time.Time          `db:"end_time"         json:"end_time,omitempty"`
	DueDate         time.Time           `db:"due_date"         json:"due_date"`
	DefaultDate     *time.Time          `db:"default_date"     json:"default_date,omitempty"`
	IsDefaulted     bool                `db:"is_defaulted"     json:"is_defaulted"`
	Version         string              `db:"version"          json:"version"`
	UploadBatchID   uuid.UUID           `db:"upload_batch_id"  json:"upload_batch_id"`
}

// Defaulted reports either default signal: the flag or a recorded default date.
func (l Loan) Defaulted() bool {
	return l.IsDefaulted || l.DefaultDate != nil
}

// Repaid reports whether the repaid amount reaches the repayment threshold. Defaulted loans are never repaid.
func (l Loan) Repaid() bool {
	if l.Defaulted() || !l.RepaidAmount.Valid {
		return false
	}
	return l.RepaidAmount.Decimal.GreaterThanOrEqual(RepaymentThreshold(l.PrincipalAmount))
}

// NaturalKey identifies the same logical loan across uploads.
func (l Loan) NaturalKey() string {
	return l.WalletID + "|" + l.PrincipalAmount.String() + "|" + l.DueDate.UTC().Format(time.RFC3339Nano)
}

type UploadBatch struct {
	ID             uuid.UUID `db:"id"               json:"batch_id"`
	SourceFileName string    `db:"source_file_name" json:"source_file_name"`
	UploadedAt     time.Time `db:"uploaded_at"      json:"uploaded_at"`
	RecordCount    int       `db:"record_count"     json:"record_count"`
}
