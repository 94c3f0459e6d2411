package calculation

import (
	"testing"

	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBracketTable_FindBracket(t *testing.T) {
	table, err := NewBracketTable(brackets2022())
	require.NoError(t, err)

	tests := []struct {
		name     string
		income   decimal.Decimal
		expected int
	}{
		{"negative income resolves to first bracket", decimal.NewFromInt(-5000), 1},
		{"zero", decimal.Zero, 1},
		{"inside tax-free amount", decimal.NewFromInt(29999), 1},
		{"boundary belongs to the upper bracket", decimal.NewFromInt(30000), 2},
		{"middle bracket", decimal.NewFromInt(75000), 2},
		{"just below top bracket", decimal.RequireFromString("119999.99"), 2},
		{"top bracket", decimal.NewFromInt(120000), 3},
		{"far above", decimal.NewFromInt(1000000), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, table.FindBracket(tt.income))
		})
	}
}

func TestBracketTable_FirstBracketBelowSecondMinimum(t *testing.T) {
	for _, rt := range BuiltinRateTables() {
		if len(rt.IncomeTax.Brackets) < 2 {
			continue
		}
		t.Run(rt.Regime().String(), func(t *testing.T) {
			table, err := NewBracketTable(rt.IncomeTax.Brackets)
			require.NoError(t, err)

			second := rt.IncomeTax.Brackets[1].MinIncome
			for _, income := range []decimal.Decimal{decimal.Zero, second.Div(decimal.NewFromInt(2)), second.Sub(decimal.RequireFromString("0.01"))} {
				assert.Equal(t, 1, table.FindBracket(income), "income %s", income)
			}
		})
	}
}

func TestBracketTable_TaxOwed(t *testing.T) {
	table, err := NewBracketTable(brackets2022())
	require.NoError(t, err)

	tests := []struct {
		name     string
		income   decimal.Decimal
		expected string
	}{
		{"tax free", decimal.NewFromInt(20000), "0.00"},
		{"negative income owes nothing", decimal.NewFromInt(-100), "0.00"},
		{"17 percent", decimal.NewFromInt(50000), "3400.00"},
		{"at top boundary", decimal.NewFromInt(120000), "15300.00"},
		{"32 percent", decimal.NewFromInt(150000), "24900.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, table.TaxOwed(tt.income).StringFixed(2))
		})
	}
}

func TestValidateBrackets(t *testing.T) {
	t.Run("built-in tables are consistent", func(t *testing.T) {
		for _, rt := range BuiltinRateTables() {
			if len(rt.IncomeTax.Brackets) == 0 {
				continue
			}
			assert.NoError(t, ValidateBrackets(rt.IncomeTax.Brackets), rt.Regime().String())
		}
	})

	tests := []struct {
		name     string
		brackets []domain.TaxBracket
	}{
		{"empty", nil},
		{
			"does not start at zero",
			[]domain.TaxBracket{{MinIncome: dec("100"), Rate: dec("0.1")}},
		},
		{
			"bounded last bracket",
			[]domain.TaxBracket{{MinIncome: dec("0"), MaxIncome: decPtr("100"), Rate: dec("0.1")}},
		},
		{
			"minimums not increasing",
			[]domain.TaxBracket{
				{MinIncome: dec("0"), Rate: dec("0")},
				{MinIncome: dec("0"), Rate: dec("0.1")},
			},
		},
		{
			"gap between brackets",
			[]domain.TaxBracket{
				{MinIncome: dec("0"), MaxIncome: decPtr("1000"), Rate: dec("0")},
				{MinIncome: dec("2000"), Rate: dec("0.1")},
			},
		},
		{
			"previous level tax inconsistent with schedule",
			[]domain.TaxBracket{
				{MinIncome: dec("0"), MaxIncome: decPtr("30000"), Rate: dec("0")},
				{MinIncome: dec("30000"), MaxIncome: decPtr("120000"), Rate: dec("0.17")},
				{MinIncome: dec("120000"), Rate: dec("0.32"), PreviousLevelTax: dec("20400")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBrackets(tt.brackets)
			assert.ErrorIs(t, err, ErrInvalidBracketTable)
		})
	}
}

func TestTierTable(t *testing.T) {
	rt, ok := BuiltinRateTable(domain.Regime{Contract: domain.ContractB2BRevenue, Year: domain.Year2022})
	require.True(t, ok)
	tiers, err := NewTierTable(rt.Health.Tiers)
	require.NoError(t, err)

	tests := []struct {
		revenue  int64
		tier     int
		expected string
	}{
		{0, 1, "305.56"},
		{59999, 1, "305.56"},
		{60000, 2, "509.27"},
		{108000, 2, "509.27"},
		{300000, 3, "916.68"},
		{660000, 3, "916.68"},
	}
	for _, tt := range tests {
		revenue := decimal.NewFromInt(tt.revenue)
		assert.Equal(t, tt.tier, tiers.FindTier(revenue), "revenue %d", tt.revenue)
		assert.Equal(t, tt.expected, tiers.Premium(revenue).StringFixed(2), "revenue %d", tt.revenue)
	}

	_, err = NewTierTable(nil)
	assert.ErrorIs(t, err, ErrInvalidRateTable)
}

func TestProgressiveWithholding(t *testing.T) {
	table, err := NewBracketTable(brackets2022())
	require.NoError(t, err)

	t.Run("payments start once the tax-free amount is used up", func(t *testing.T) {
		payments := ProgressiveWithholding(table, Constant(dec("10000")), Zero())

		// 30000 tax free: Jan-Mar pay nothing, April pays 17% of 10000
		for m := 0; m < 3; m++ {
			assert.True(t, payments[m].IsZero(), "month %d", m+1)
		}
		assert.Equal(t, "1700.00", payments[3].StringFixed(2))
		// 120000 reached in December, still taxed at 17%
		assert.Equal(t, "1700.00", payments[11].StringFixed(2))
		assert.Equal(t, "15300.00", payments.Sum().StringFixed(2))
	})

	t.Run("top bracket raises later payments", func(t *testing.T) {
		payments := ProgressiveWithholding(table, Constant(dec("20000")), Zero())
		// cumulative 120000 in June, 140000 in July
		assert.Equal(t, "3400.00", payments[5].StringFixed(2))
		assert.Equal(t, "6400.00", payments[6].StringFixed(2))
	})

	t.Run("never negative and never ahead of the running maximum owed", func(t *testing.T) {
		scale21, err := NewBracketTable(scaleRates2021().IncomeTax.Brackets)
		require.NoError(t, err)

		// deductible premium larger than the monthly tax keeps cumulative tax negative early on
		taxable := MonthlySeries{dec("500"), dec("500"), dec("4000"), dec("-2000"), dec("3000"), dec("3000"),
			dec("3000"), dec("-6000"), dec("9000"), dec("3000"), dec("3000"), dec("3000")}
		deductible := Constant(dec("328.78"))

		payments := ProgressiveWithholding(scale21, taxable, deductible)
		owed := CumulativeTaxOwed(scale21, taxable, deductible)
		paid := payments.Cumulative()

		runningMax := decimal.Zero
		for m := range payments {
			assert.False(t, payments[m].IsNegative(), "month %d", m+1)
			runningMax = decimal.Max(runningMax, owed[m])
			assert.True(t, paid[m].Equal(runningMax), "month %d: paid %s, max owed %s", m+1, paid[m], runningMax)
		}
	})

	t.Run("decrease in cumulative tax is not refunded", func(t *testing.T) {
		taxable := MonthlySeries{dec("40000"), dec("-5000"), dec("0"), dec("0"), dec("0"), dec("0"),
			dec("0"), dec("0"), dec("0"), dec("0"), dec("0"), dec("10000")}
		payments := ProgressiveWithholding(table, taxable, Zero())

		assert.Equal(t, "1700.00", payments[0].StringFixed(2))
		assert.True(t, payments[1].IsZero())
		// cumulative 45000 owes 2550 of which 1700 is already paid
		assert.Equal(t, "850.00", payments[11].StringFixed(2))
	})
}
