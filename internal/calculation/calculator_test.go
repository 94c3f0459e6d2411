package calculation

import (
	"testing"

	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalculator(t *testing.T, contract domain.ContractType, year domain.TaxYear, params domain.Parameters) Calculator {
	t.Helper()
	calc, err := NewRegistry().Create(domain.Regime{Contract: contract, Year: year}, params)
	require.NoError(t, err)
	return calc
}

func gross(v string) domain.Parameters {
	return domain.Parameters{GrossSalary: dec(v)}
}

func withCosts(p domain.Parameters, costs string) domain.Parameters {
	p.Costs = dec(costs)
	return p
}

// withinTolerance reports whether got is within 1.5% of expected
func withinTolerance(got decimal.Decimal, expected int64) bool {
	want := decimal.NewFromInt(expected)
	return got.Sub(want).Abs().LessThanOrEqual(want.Mul(dec("0.015")))
}

func TestCalculators_ReferenceScenarios(t *testing.T) {
	tests := []struct {
		name        string
		contract    domain.ContractType
		year        domain.TaxYear
		params      domain.Parameters
		approximate int64
		exact       string
	}{
		{"progressive 2021", domain.ContractB2BScale, domain.Year2021, withCosts(gross("9000"), "250"), 75877, "76402.91"},
		{"progressive 2022", domain.ContractB2BScale, domain.Year2022, withCosts(gross("9000"), "250"), 76245, "76244.98"},
		{"employment 2021", domain.ContractEmployment, domain.Year2021, gross("9000"), 75996, "76506.00"},
		{"employment 2022", domain.ContractEmployment, domain.Year2022, gross("4000"), 36259, "36258.96"},
		{"flat 2021", domain.ContractB2BFlat, domain.Year2021, withCosts(gross("55000"), "250"), 522342, "522342.48"},
		{
			"revenue 2022",
			domain.ContractB2BRevenue, domain.Year2022,
			domain.Parameters{GrossSalary: dec("9000"), Costs: dec("250"), TaxRate: dec("0.17")},
			71110, "71110.56",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newCalculator(t, tt.contract, tt.year, tt.params)
			total := Summary(calc)

			assert.True(t, withinTolerance(total, tt.approximate), "total %s not within 1.5%% of %d", total, tt.approximate)
			assert.Equal(t, tt.exact, total.StringFixed(2))
		})
	}
}

func TestCalculators_MoreScenarios(t *testing.T) {
	tests := []struct {
		name     string
		contract domain.ContractType
		year     domain.TaxYear
		params   domain.Parameters
		exact    string
	}{
		{"employment 2022 with relief", domain.ContractEmployment, domain.Year2022, gross("9000"), "76464.24"},
		{"employment 2021 above ZUS cap", domain.ContractEmployment, domain.Year2021, gross("18000"), "144041.57"},
		{"employment 2021 under 26", domain.ContractEmployment, domain.Year2021, domain.Parameters{GrossSalary: dec("9000"), Under26: true}, "84805.92"},
		{"flat 2021 no costs", domain.ContractB2BFlat, domain.Year2021, gross("55000"), "524772.48"},
		{"flat 2021 IP Box", domain.ContractB2BFlat, domain.Year2021, domain.Parameters{GrossSalary: dec("9000"), IPBox: true}, "91183.20"},
		{"flat 2022", domain.ContractB2BFlat, domain.Year2022, withCosts(gross("9000"), "250"), "71123.04"},
		{"progressive 2022 small ZUS", domain.ContractB2BScale, domain.Year2022, domain.Parameters{GrossSalary: dec("9000"), Costs: dec("250"), SmallZUS: true}, "82282.06"},
		{"revenue 2021", domain.ContractB2BRevenue, domain.Year2021, domain.Parameters{GrossSalary: dec("9000"), Costs: dec("250"), TaxRate: dec("0.17")}, "76585.44"},
		{"revenue 2021 ignores IT flag", domain.ContractB2BRevenue, domain.Year2021, domain.Parameters{GrossSalary: dec("9000"), IsIT: true}, "81518.40"},
		{"revenue 2022 IT rate", domain.ContractB2BRevenue, domain.Year2022, domain.Parameters{GrossSalary: dec("9000"), IsIT: true}, "78942.96"},
		{"revenue 2022 costs only lower net", domain.ContractB2BRevenue, domain.Year2022, domain.Parameters{GrossSalary: dec("9000"), TaxRate: dec("0.17")}, "74110.56"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newCalculator(t, tt.contract, tt.year, tt.params)
			assert.Equal(t, tt.exact, Summary(calc).StringFixed(2))
		})
	}
}

func TestEmploymentCalculator_ZUSCap(t *testing.T) {
	calc := newCalculator(t, domain.ContractEmployment, domain.Year2021, gross("18000"))
	zus := calc.MonthlyZUS()

	limit := dec("157770").Mul(dec("0.1371"))
	cumulative := zus.Cumulative()
	for m := range zus {
		assert.False(t, zus[m].IsNegative(), "month %d", m+1)
		if m > 0 {
			assert.True(t, cumulative[m].GreaterThanOrEqual(cumulative[m-1]), "month %d", m+1)
		}
		assert.True(t, cumulative[m].LessThanOrEqual(limit.RoundBank(2)), "month %d", m+1)
	}

	assert.Equal(t, "2467.80", zus[0].StringFixed(2))
	assert.Equal(t, "1887.87", zus[8].StringFixed(2))
	for m := 9; m < MonthsInYear; m++ {
		assert.True(t, zus[m].IsZero(), "month %d", m+1)
	}
}

func TestEmploymentCalculator_Under26PaysNoTax(t *testing.T) {
	for _, year := range domain.SupportedYears() {
		for _, salary := range []string{"3000", "9000", "55000"} {
			params := domain.Parameters{GrossSalary: dec(salary), Under26: true}
			calc := newCalculator(t, domain.ContractEmployment, year, params)
			assert.True(t, calc.MonthlyIncomeTax().Sum().IsZero(), "%d %s", year, salary)
		}
	}
}

func TestEmploymentCalculator_IncomeNeverNegative(t *testing.T) {
	calc := newCalculator(t, domain.ContractEmployment, domain.Year2022, gross("0"))
	for _, v := range calc.MonthlyIncome() {
		assert.True(t, v.IsZero())
	}
	assert.True(t, calc.MonthlyIncomeTax().Sum().IsZero())
}

func TestEmploymentCalculator_NetExcludesCosts(t *testing.T) {
	calc := newCalculator(t, domain.ContractEmployment, domain.Year2021, gross("9000"))

	expected := calc.MonthlyGross().
		Sub(calc.MonthlyZUS()).
		Sub(calc.MonthlyHealthPremium()).
		Sub(calc.MonthlyIncomeTax())
	assert.Equal(t, seriesStrings(Rounded(2, expected)), seriesStrings(calc.MonthlyNetSalary()))
	assert.Equal(t, "250", calc.MonthlyCosts()[0].String())
}

func TestScaleCalculator_HealthPremium2022(t *testing.T) {
	t.Run("low income uses the minimum basis", func(t *testing.T) {
		calc := newCalculator(t, domain.ContractB2BScale, domain.Year2022, gross("3000"))
		// 3000 - 945.67 rounds to 2054, below the 3010 floor
		assert.Equal(t, "270.90", calc.MonthlyHealthPremium()[0].StringFixed(2))
	})

	t.Run("premium follows income", func(t *testing.T) {
		calc := newCalculator(t, domain.ContractB2BScale, domain.Year2022, gross("9000"))
		// income 8054
		assert.Equal(t, "724.86", calc.MonthlyHealthPremium()[0].StringFixed(2))
		assert.True(t, calc.MonthlyHealthPremiumDeductible().Sum().IsZero())
	})
}

func TestRevenueCalculator_HealthTiers(t *testing.T) {
	tests := []struct {
		salary   string
		expected string
	}{
		{"4000", "305.56"},
		{"9000", "509.27"},
		{"24999", "509.27"},
		{"25000", "916.68"},
	}
	for _, tt := range tests {
		calc := newCalculator(t, domain.ContractB2BRevenue, domain.Year2022, gross(tt.salary))
		health := calc.MonthlyHealthPremium()
		for _, v := range health {
			assert.Equal(t, tt.expected, v.StringFixed(2), "salary %s", tt.salary)
		}
	}
}

func TestRevenueCalculator_TaxRate(t *testing.T) {
	tests := []struct {
		name     string
		year     domain.TaxYear
		params   domain.Parameters
		expected string
	}{
		{"default", domain.Year2022, gross("9000"), "0.15"},
		{"selected", domain.Year2022, domain.Parameters{GrossSalary: dec("9000"), TaxRate: dec("0.085")}, "0.085"},
		{"IT overrides selection", domain.Year2022, domain.Parameters{GrossSalary: dec("9000"), TaxRate: dec("0.17"), IsIT: true}, "0.12"},
		{"medic", domain.Year2022, domain.Parameters{GrossSalary: dec("9000"), IsMedic: true}, "0.14"},
		{"IT wins over medic", domain.Year2022, domain.Parameters{GrossSalary: dec("9000"), IsIT: true, IsMedic: true}, "0.12"},
		{"no preferential rates in 2021", domain.Year2021, domain.Parameters{GrossSalary: dec("9000"), TaxRate: dec("0.17"), IsMedic: true}, "0.17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := NewRevenueCalculator(revenueRatesFor(tt.year), tt.params)
			require.NoError(t, err)
			assert.True(t, calc.TaxRate().Equal(dec(tt.expected)), "got %s", calc.TaxRate())
		})
	}
}

func revenueRatesFor(year domain.TaxYear) domain.RateTable {
	if year == domain.Year2021 {
		return revenueRates2021()
	}
	return revenueRates2022()
}

func TestFlatCalculator_TaxIsPerMonth(t *testing.T) {
	calc := newCalculator(t, domain.ContractB2BFlat, domain.Year2021, withCosts(gross("9000"), "250"))
	tax := calc.MonthlyIncomeTax()

	// (8054 - 250) * 0.19 - 328.78
	for _, v := range tax {
		assert.Equal(t, "1153.98", v.StringFixed(2))
	}
}

func TestCalculators_Ledger(t *testing.T) {
	registry := NewRegistry()
	params := domain.Parameters{GrossSalary: dec("12000"), Costs: dec("1200"), TaxRate: dec("0.12")}

	for _, regime := range registry.Regimes() {
		t.Run(regime.String(), func(t *testing.T) {
			calc, err := registry.Create(regime, params)
			require.NoError(t, err)

			ledger := BuildLedger(calc)
			require.Len(t, ledger.Rows, MonthsInYear)
			assert.Equal(t, regime, ledger.Regime)

			total := decimal.Zero
			for i, row := range ledger.Rows {
				total = total.Add(row.NetSalary)
				assert.Equal(t, int(regime.Year), row.Month.Year())
				assert.Equal(t, i+1, int(row.Month.Month()))
				assert.True(t, row.Income.Equal(calc.MonthlyIncome()[i].Sub(row.Costs)))
			}

			assert.True(t, total.RoundBank(2).Equal(ledger.TotalNetSalary))
			assert.True(t, Summary(calc).Equal(ledger.TotalNetSalary))
			assert.True(t, calc.MonthlyIncomeTax().Sum().Equal(ledger.TotalIncomeTax))
			assert.True(t, calc.MonthlyZUS().Sum().Equal(ledger.TotalZUS))
		})
	}
}

func TestCalculators_RejectWrongRateTable(t *testing.T) {
	_, err := NewEmploymentCalculator(flatRates2021(), gross("9000"))
	assert.ErrorIs(t, err, ErrInvalidRateTable)

	_, err = NewScaleCalculator(employmentRates2022(), gross("9000"))
	assert.ErrorIs(t, err, ErrInvalidRateTable)

	broken := scaleRates2022()
	broken.IncomeTax.Brackets[2].PreviousLevelTax = dec("20400")
	_, err = NewScaleCalculator(broken, gross("9000"))
	assert.ErrorIs(t, err, ErrInvalidBracketTable)

	unknown := flatRates2022()
	unknown.Health.Method = "percent_of_gross"
	_, err = NewFlatCalculator(unknown, gross("9000"))
	assert.ErrorIs(t, err, ErrInvalidRateTable)
}
