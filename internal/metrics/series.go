package metrics

import (
	"time"

	"github.com/GlebRadaev/loanboard/internal/domain"
)

type Point struct {
	Label Status `json:"label"`
	Value int    `json:"value"`
}

type TierSeries struct {
	Tier   string  `json:"tier"`
	Points []Point `json:"points"`
}

func points(repaid, inProgress, defaulted int) []Point {
	return []Point{
		{Label: StatusRepaid, Value: repaid},
		{Label: StatusInProgress, Value: inProgress},
		{Label: StatusDefaulted, Value: defaulted},
	}
}

func StatusSeries(m LoanMetrics) []Point {
	return points(m.TotalRepaid, m.TotalInProgress, m.TotalDefaulted)
}

func AmountSeries(m LoanMetrics) []TierSeries {
	return []TierSeries{
		{Tier: domain.OneDollarTier.Name, Points: points(m.OneDollarLoans.Repaid, m.OneDollarLoans.InProgress, m.OneDollarLoans.Defaulted)},
		{Tier: domain.TenDollarTier.Name, Points: points(m.TenDollarLoans.Repaid, m.TenDollarLoans.InProgress, m.TenDollarLoans.Defaulted)},
	}
}

type Dashboard struct {
	GeneratedAt  time.Time      `json:"generated_at"`
	Metrics      LoanMetrics    `json:"metrics"`
	Groups       []DueDateGroup `json:"due_date_groups"`
	Expired      []domain.Loan  `json:"expired"`
	StatusSeries []Point        `json:"status_series"`
	AmountSeries []TierSeries   `json:"amount_series"`
}

func Build(loans []domain.Loan, now time.Time) Dashboard {
	m := Aggregate(loans, now)
	return Dashboard{
		GeneratedAt:  now,
		Metrics:      m,
		Groups:       GroupByDueDate(loans, now, DefaultHorizons),
		Expired:      Expired(loans, now),
		StatusSeries: StatusSeries(m),
		AmountSeries: AmountSeries(m),
	}
}
