package calculation

import (
	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
)

// ReliefPolicy is the middle-class relief (ulga dla klasy średniej): a monthly
// reduction of the taxable base for incomes between LowerLimit and UpperLimit.
// Below MiddleLimit the relief rises with income, above it the relief falls.
type ReliefPolicy struct {
	EffectiveFrom domain.TaxYear

	LowerLimit  decimal.Decimal
	MiddleLimit decimal.Decimal
	UpperLimit  decimal.Decimal

	RisingSlope      decimal.Decimal
	RisingIntercept  decimal.Decimal
	FallingSlope     decimal.Decimal
	FallingIntercept decimal.Decimal

	// TaxRate converts the tax reduction back into a base reduction
	TaxRate decimal.Decimal
}

// DefaultReliefPolicy returns the relief as introduced in 2022
func DefaultReliefPolicy() ReliefPolicy {
	return ReliefPolicy{
		EffectiveFrom:    domain.Year2022,
		LowerLimit:       decimal.NewFromInt(5701),
		MiddleLimit:      decimal.NewFromInt(8549),
		UpperLimit:       decimal.NewFromInt(11141),
		RisingSlope:      decimal.RequireFromString("0.0668"),
		RisingIntercept:  decimal.RequireFromString("-380.5"),
		FallingSlope:     decimal.RequireFromString("-0.0735"),
		FallingIntercept: decimal.RequireFromString("819.08"),
		TaxRate:          decimal.RequireFromString("0.17"),
	}
}

// MonthlyAmount returns the relief for a monthly income base in the given year
func (p ReliefPolicy) MonthlyAmount(year domain.TaxYear, base decimal.Decimal) decimal.Decimal {
	if year < p.EffectiveFrom {
		return decimal.Zero
	}
	switch {
	case base.GreaterThan(p.UpperLimit):
		return decimal.Zero
	case base.GreaterThan(p.MiddleLimit):
		return base.Mul(p.FallingSlope).Add(p.FallingIntercept).Div(p.TaxRate)
	case base.GreaterThanOrEqual(p.LowerLimit):
		return base.Mul(p.RisingSlope).Add(p.RisingIntercept).Div(p.TaxRate)
	default:
		return decimal.Zero
	}
}

// Series broadcasts the monthly relief over the year
func (p ReliefPolicy) Series(year domain.TaxYear, base decimal.Decimal) MonthlySeries {
	return Constant(p.MonthlyAmount(year, base))
}
