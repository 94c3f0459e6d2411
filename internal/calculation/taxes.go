package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// bracketTolerance is the allowed rounding slack between a stored
// previous-level tax and the one implied by the lower brackets.
var bracketTolerance = decimal.RequireFromString("0.01")

// BracketTable is a validated progressive income tax scale evaluated with the
// quick method: rate * (income - bracket minimum) + previous level tax.
type BracketTable struct {
	brackets []domain.TaxBracket
	mins     []decimal.Decimal
}

// NewBracketTable validates brackets and builds a lookup table over them
func NewBracketTable(brackets []domain.TaxBracket) (*BracketTable, error) {
	if err := ValidateBrackets(brackets); err != nil {
		return nil, err
	}
	copied := append([]domain.TaxBracket(nil), brackets...)
	return &BracketTable{
		brackets: copied,
		mins:     lo.Map(copied, func(b domain.TaxBracket, _ int) decimal.Decimal { return b.MinIncome }),
	}, nil
}

// ValidateBrackets checks that brackets start at zero, are contiguous with
// increasing minimums, end unbounded, and carry consistent previous-level tax.
func ValidateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%w: no brackets", ErrInvalidBracketTable)
	}
	if !brackets[0].MinIncome.IsZero() {
		return fmt.Errorf("%w: first bracket must start at 0, got %s", ErrInvalidBracketTable, brackets[0].MinIncome)
	}
	if !brackets[0].PreviousLevelTax.IsZero() {
		return fmt.Errorf("%w: first bracket must have no previous level tax", ErrInvalidBracketTable)
	}
	for i, b := range brackets {
		if b.Rate.IsNegative() {
			return fmt.Errorf("%w: bracket %d has negative rate %s", ErrInvalidBracketTable, i+1, b.Rate)
		}
		last := i == len(brackets)-1
		if last {
			if b.MaxIncome != nil {
				return fmt.Errorf("%w: last bracket must be unbounded", ErrInvalidBracketTable)
			}
			continue
		}
		next := brackets[i+1]
		if !next.MinIncome.GreaterThan(b.MinIncome) {
			return fmt.Errorf("%w: bracket %d minimum %s does not exceed %s", ErrInvalidBracketTable, i+2, next.MinIncome, b.MinIncome)
		}
		if b.MaxIncome != nil && !b.MaxIncome.Equal(next.MinIncome) {
			return fmt.Errorf("%w: gap between bracket %d and %d", ErrInvalidBracketTable, i+1, i+2)
		}
		implied := b.Rate.Mul(next.MinIncome.Sub(b.MinIncome)).Add(b.PreviousLevelTax)
		if implied.Sub(next.PreviousLevelTax).Abs().GreaterThan(bracketTolerance) {
			return fmt.Errorf("%w: bracket %d previous level tax %s, schedule implies %s",
				ErrInvalidBracketTable, i+2, next.PreviousLevelTax, implied.StringFixed(2))
		}
	}
	return nil
}

// searchLowerBounds returns the 1-based position of the last bound not
// exceeding x. Values below the first bound resolve to position 1.
func searchLowerBounds(bounds []decimal.Decimal, x decimal.Decimal) int {
	n := sort.Search(len(bounds), func(i int) bool { return bounds[i].GreaterThan(x) })
	if n < 1 {
		return 1
	}
	return n
}

// Len returns the number of brackets
func (bt *BracketTable) Len() int {
	return len(bt.brackets)
}

// Bracket returns the bracket at a 1-based level
func (bt *BracketTable) Bracket(level int) domain.TaxBracket {
	return bt.brackets[level-1]
}

// FindBracket returns the 1-based level whose minimum is the greatest one not exceeding income
func (bt *BracketTable) FindBracket(income decimal.Decimal) int {
	return searchLowerBounds(bt.mins, income)
}

// TaxOwed returns the tax due on a cumulative income
func (bt *BracketTable) TaxOwed(income decimal.Decimal) decimal.Decimal {
	b := bt.Bracket(bt.FindBracket(income))
	return b.Rate.Mul(income.Sub(b.MinIncome)).Add(b.PreviousLevelTax)
}

// TierTable maps yearly revenue to a fixed monthly health premium
type TierTable struct {
	tiers []domain.HealthPremiumTier
	mins  []decimal.Decimal
}

// NewTierTable validates tiers the same way tax brackets are validated, minus the tax column
func NewTierTable(tiers []domain.HealthPremiumTier) (*TierTable, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: no health premium tiers", ErrInvalidRateTable)
	}
	if !tiers[0].MinRevenue.IsZero() {
		return nil, fmt.Errorf("%w: first health premium tier must start at 0", ErrInvalidRateTable)
	}
	for i := 1; i < len(tiers); i++ {
		if !tiers[i].MinRevenue.GreaterThan(tiers[i-1].MinRevenue) {
			return nil, fmt.Errorf("%w: health premium tier %d is out of order", ErrInvalidRateTable, i+1)
		}
	}
	if tiers[len(tiers)-1].MaxRevenue != nil {
		return nil, fmt.Errorf("%w: last health premium tier must be unbounded", ErrInvalidRateTable)
	}
	copied := append([]domain.HealthPremiumTier(nil), tiers...)
	return &TierTable{
		tiers: copied,
		mins:  lo.Map(copied, func(t domain.HealthPremiumTier, _ int) decimal.Decimal { return t.MinRevenue }),
	}, nil
}

// FindTier returns the 1-based tier holding yearly revenue
func (tt *TierTable) FindTier(revenue decimal.Decimal) int {
	return searchLowerBounds(tt.mins, revenue)
}

// Premium returns the monthly premium for yearly revenue
func (tt *TierTable) Premium(revenue decimal.Decimal) decimal.Decimal {
	return tt.tiers[tt.FindTier(revenue)-1].Premium
}

// ProgressiveWithholding spreads the tax owed on a year's cumulative taxable
// income over monthly payments. taxable is the monthly income already reduced
// by costs and relief; deductible is the part of the health premium that
// reduces tax. A month never pays a negative amount, and a decrease in
// cumulative tax is absorbed rather than refunded.
func ProgressiveWithholding(table *BracketTable, taxable, deductible MonthlySeries) MonthlySeries {
	owed := CumulativeTaxOwed(table, taxable, deductible)
	payments := make(MonthlySeries, len(owed))
	paid := decimal.Zero
	for m, tax := range owed {
		due := tax.Sub(paid)
		if due.IsPositive() {
			payments[m] = due
			paid = paid.Add(due)
		} else {
			payments[m] = decimal.Zero
		}
	}
	return payments
}

// CumulativeTaxOwed returns the tax owed on income through each month, net of
// the cumulative deductible health premium
func CumulativeTaxOwed(table *BracketTable, taxable, deductible MonthlySeries) MonthlySeries {
	cumulativeDeductible := deductible.Cumulative()
	return lo.Map(taxable.Cumulative(), func(income decimal.Decimal, m int) decimal.Decimal {
		return table.TaxOwed(income).Sub(cumulativeDeductible[m])
	})
}
