// Package metrics derives dashboard figures from a loan snapshot. Every function is pure: inputs are
// never modified and the reference time is passed in explicitly.
package metrics

import (
	"sort"
	"time"

	"github.com/GlebRadaev/loanboard/internal/domain"
)

type Status string

const (
	StatusDefaulted  Status = "defaulted"
	StatusRepaid     Status = "repaid"
	StatusInProgress Status = "in_progress"
)

// DefaultHorizons are the due-date buckets in days.
var DefaultHorizons = []int{1, 5, 7, 10, 14, 30}

// Classify applies the precedence defaulted > repaid > in-progress.
func Classify(l domain.Loan) Status {
	switch {
	case l.Defaulted():
		return StatusDefaulted
	case l.Repaid():
		return StatusRepaid
	default:
		return StatusInProgress
	}
}

type TierCounts struct {
	Total      int `json:"total"`
	Repaid     int `json:"repaid"`
	Defaulted  int `json:"defaulted"`
	InProgress int `json:"in_progress"`
}

func (c *TierCounts) add(s Status) {
	c.Total++
	switch s {
	case StatusDefaulted:
		c.Defaulted++
	case StatusRepaid:
		c.Repaid++
	case StatusInProgress:
		c.InProgress++
	}
}

type LoanMetrics struct {
	TotalLoans      int        `json:"total_loans"`
	TotalDefaulted  int        `json:"total_defaulted"`
	TotalRepaid     int        `json:"total_repaid"`
	TotalInProgress int        `json:"total_in_progress"`
	TotalExpired    int        `json:"total_expired"`
	OneDollarLoans  TierCounts `json:"one_dollar_loans"`
	TenDollarLoans  TierCounts `json:"ten_dollar_loans"`
}

// Aggregate counts loans by status and tier. Expired loans are in-progress loans whose due date has passed.
func Aggregate(loans []domain.Loan, now time.Time) LoanMetrics {
	var m LoanMetrics
	for _, l := range loans {
		s := Classify(l)
		m.TotalLoans++
		switch s {
		case StatusDefaulted:
			m.TotalDefaulted++
		case StatusRepaid:
			m.TotalRepaid++
		case StatusInProgress:
			m.TotalInProgress++
			if DaysUntil(l.DueDate, now) < 0 {
				m.TotalExpired++
			}
		}

		if tier, ok := domain.TierFor(l.PrincipalAmount); ok {
			switch tier.Name {
			case domain.OneDollarTier.Name:
				m.OneDollarLoans.add(s)
			case domain.TenDollarTier.Name:
				m.TenDollarLoans.add(s)
			}
		}
	}
	return m
}

// DaysUntil counts calendar days from today to due; past dates are negative. Due dates are stored as
// UTC calendar dates and keep their UTC day, while today is taken in now's location.
func DaysUntil(due, now time.Time) int {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := due.UTC().Date()
	from := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	to := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func active(l domain.Loan) bool {
	return !l.Defaulted() && !l.Repaid()
}

type DueDateGroup struct {
	HorizonDays int           `json:"horizon_days"`
	Overflow    bool          `json:"overflow,omitempty"`
	Loans       []domain.Loan `json:"loans"`
}

// GroupByDueDate places every active loan due today or later into each horizon bucket it fits
// (buckets are cumulative), and loans due beyond the largest horizon into a trailing overflow group.
func GroupByDueDate(loans []domain.Loan, now time.Time, horizons []int) []DueDateGroup {
	hs := append([]int(nil), horizons...)
	sort.Ints(hs)

	groups := make([]DueDateGroup, 0, len(hs)+1)
	for _, h := range hs {
		groups = append(groups, DueDateGroup{HorizonDays: h, Loans: []domain.Loan{}})
	}
	maxHorizon := 0
	if len(hs) > 0 {
		maxHorizon = hs[len(hs)-1]
	}
	overflow := DueDateGroup{HorizonDays: maxHorizon, Overflow: true, Loans: []domain.Loan{}}

	for _, l := range loans {
		if !active(l) {
			continue
		}
		days := DaysUntil(l.DueDate, now)
		if days < 0 {
			continue
		}
		if days > maxHorizon {
			overflow.Loans = append(overflow.Loans, l)
			continue
		}
		for i := range groups {
			if days <= groups[i].HorizonDays {
				groups[i].Loans = append(groups[i].Loans, l)
			}
		}
	}

	groups = append(groups, overflow)
	for i := range groups {
		sortByDueDate(groups[i].Loans)
	}
	return groups
}

// Expired returns loans that are neither defaulted nor repaid and were due before today.
func Expired(loans []domain.Loan, now time.Time) []domain.Loan {
	out := []domain.Loan{}
	for _, l := range loans {
		if active(l) && DaysUntil(l.DueDate, now) < 0 {
			out = append(out, l)
		}
	}
	sortByDueDate(out)
	return out
}

func sortByDueDate(loans []domain.Loan) {
	sort.SliceStable(loans, func(i, j int) bool {
		return loans[i].DueDate.Before(loans[j].DueDate)
	})
}
