package calculation

import (
	"time"

	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// MonthsInYear is the number of ledger rows per tax year
const MonthsInYear = 12

// Decimal places each series is rounded to. Gross salary and costs are never rounded.
const (
	ZUSPlaces       int32 = 2
	IncomePlaces    int32 = 0
	HealthPlaces    int32 = 2
	IncomeTaxPlaces int32 = 2
	NetSalaryPlaces int32 = 2
	SummaryPlaces   int32 = 2
)

// MonthlySeries holds one amount per calendar month of a tax year, January first
type MonthlySeries []decimal.Decimal

// MonthEnds returns the last day of every month of year
func MonthEnds(year domain.TaxYear) []time.Time {
	return lo.Times(MonthsInYear, func(i int) time.Time {
		return time.Date(int(year), time.Month(i+2), 0, 0, 0, 0, 0, time.UTC)
	})
}

// Constant returns a series with v in every month
func Constant(v decimal.Decimal) MonthlySeries {
	return lo.Times(MonthsInYear, func(int) decimal.Decimal { return v })
}

// Zero returns an all-zero series
func Zero() MonthlySeries {
	return Constant(decimal.Zero)
}

// Rounded applies banker's rounding to every month. Every computed series
// passes through it exactly once, at the boundary where it is produced.
func Rounded(places int32, s MonthlySeries) MonthlySeries {
	return s.Map(func(v decimal.Decimal) decimal.Decimal { return v.RoundBank(places) })
}

// Map applies fn to every month
func (s MonthlySeries) Map(fn func(decimal.Decimal) decimal.Decimal) MonthlySeries {
	return lo.Map(s, func(v decimal.Decimal, _ int) decimal.Decimal { return fn(v) })
}

func (s MonthlySeries) zip(o MonthlySeries, fn func(a, b decimal.Decimal) decimal.Decimal) MonthlySeries {
	return lo.Map(s, func(v decimal.Decimal, i int) decimal.Decimal { return fn(v, o[i]) })
}

// Add returns the month-by-month sum of s and o
func (s MonthlySeries) Add(o MonthlySeries) MonthlySeries {
	return s.zip(o, decimal.Decimal.Add)
}

// Sub returns the month-by-month difference s - o
func (s MonthlySeries) Sub(o MonthlySeries) MonthlySeries {
	return s.zip(o, decimal.Decimal.Sub)
}

// Mul scales every month by f
func (s MonthlySeries) Mul(f decimal.Decimal) MonthlySeries {
	return s.Map(func(v decimal.Decimal) decimal.Decimal { return v.Mul(f) })
}

// AtLeast raises every month below floor to floor
func (s MonthlySeries) AtLeast(floor decimal.Decimal) MonthlySeries {
	return s.Map(func(v decimal.Decimal) decimal.Decimal { return decimal.Max(v, floor) })
}

// AtMost lowers every month above ceiling to ceiling
func (s MonthlySeries) AtMost(ceiling decimal.Decimal) MonthlySeries {
	return s.Map(func(v decimal.Decimal) decimal.Decimal { return decimal.Min(v, ceiling) })
}

// Cumulative returns the running total through each month
func (s MonthlySeries) Cumulative() MonthlySeries {
	out := make(MonthlySeries, len(s))
	total := decimal.Zero
	for i, v := range s {
		total = total.Add(v)
		out[i] = total
	}
	return out
}

// Deltas is the inverse of Cumulative: the first month unchanged, then month-over-month differences
func (s MonthlySeries) Deltas() MonthlySeries {
	return lo.Map(s, func(v decimal.Decimal, i int) decimal.Decimal {
		if i == 0 {
			return v
		}
		return v.Sub(s[i-1])
	})
}

// Sum returns the total over all months
func (s MonthlySeries) Sum() decimal.Decimal {
	return lo.Reduce(s, func(agg decimal.Decimal, v decimal.Decimal, _ int) decimal.Decimal {
		return agg.Add(v)
	}, decimal.Zero)
}
