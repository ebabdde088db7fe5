package domain

import "github.com/shopspring/decimal"

// Tier is one of the recognised loan denominations.
type Tier struct {
	Name               string
	FaceValue          decimal.Decimal
	RepaymentThreshold decimal.Decimal
}

// InterestRate applies to loans outside the recognised tiers.
var InterestRate = decimal.RequireFromString("0.025")

var (
	OneDollarTier = Tier{
		Name:               "one_dollar",
		FaceValue:          decimal.NewFromInt(1),
		RepaymentThreshold: decimal.RequireFromString("1.025"),
	}
	TenDollarTier = Tier{
		Name:               "ten_dollar",
		FaceValue:          decimal.NewFromInt(10),
		RepaymentThreshold: decimal.RequireFromString("10.25"),
	}
)

var Tiers = []Tier{OneDollarTier, TenDollarTier}

// TierFor matches the principal exactly against the recognised face values.
func TierFor(principal decimal.Decimal) (Tier, bool) {
	for _, t := range Tiers {
		if principal.Equal(t.FaceValue) {
			return t, true
		}
	}
	return Tier{}, false
}

func RepaymentThreshold(principal decimal.Decimal) decimal.Decimal {
	if t, ok := TierFor(principal); ok {
		return t.RepaymentThreshold
	}
	return principal.Add(principal.Mul(InterestRate))
}
