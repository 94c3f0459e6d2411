package calculation

import (
	"time"

	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
)

// Calculator derives the monthly series of one contract under one year's
// rules. Every series method is pure; calling it twice yields the same values.
type Calculator interface {
	Regime() domain.Regime
	Parameters() domain.Parameters
	Months() []time.Time

	MonthlyGross() MonthlySeries
	MonthlyZUS() MonthlySeries
	MonthlyCosts() MonthlySeries
	MonthlyIncome() MonthlySeries
	MonthlyHealthPremium() MonthlySeries
	MonthlyHealthPremiumDeductible() MonthlySeries
	MonthlyIncomeTax() MonthlySeries
	MonthlyNetSalary() MonthlySeries
}

// base holds what every calculator shares: the rate table, the parameters and the month range
type base struct {
	rates  domain.RateTable
	params domain.Parameters
	months []time.Time
	health *healthRule
}

func newBase(rates domain.RateTable, params domain.Parameters) (base, error) {
	health, err := newHealthRule(rates.Health)
	if err != nil {
		return base{}, err
	}
	return base{
		rates:  rates,
		params: params.WithDefaults(),
		months: MonthEnds(rates.Year),
		health: health,
	}, nil
}

// Regime returns the contract and tax year
func (b *base) Regime() domain.Regime {
	return b.rates.Regime()
}

// Parameters returns the parameters with defaults applied
func (b *base) Parameters() domain.Parameters {
	return b.params
}

// Months returns the month-end dates of the tax year
func (b *base) Months() []time.Time {
	return b.months
}

// MonthlyGross returns the gross salary of every month
func (b *base) MonthlyGross() MonthlySeries {
	return Constant(b.params.GrossSalary)
}

func (b *base) healthPremium(income MonthlySeries) MonthlySeries {
	return Rounded(HealthPlaces, b.health.premium(income, b.MonthlyGross()))
}

func (b *base) healthPremiumDeductible(income MonthlySeries) MonthlySeries {
	return Rounded(HealthPlaces, b.health.deductible(income))
}

// BuildLedger assembles the monthly ledger of c. The income column is income
// after costs.
func BuildLedger(c Calculator) *domain.Ledger {
	months := c.Months()
	gross := c.MonthlyGross()
	costs := c.MonthlyCosts()
	income := c.MonthlyIncome()
	health := c.MonthlyHealthPremium()
	tax := c.MonthlyIncomeTax()
	net := c.MonthlyNetSalary()

	rows := make([]domain.LedgerRow, len(months))
	for i, month := range months {
		rows[i] = domain.LedgerRow{
			Month:         month,
			GrossSalary:   gross[i],
			Costs:         costs[i],
			Income:        income[i].Sub(costs[i]),
			HealthPremium: health[i],
			IncomeTax:     tax[i],
			NetSalary:     net[i],
		}
	}

	return &domain.Ledger{
		Regime:             c.Regime(),
		Parameters:         c.Parameters(),
		Rows:               rows,
		TotalNetSalary:     summarize(net),
		TotalZUS:           c.MonthlyZUS().Sum(),
		TotalHealthPremium: health.Sum(),
		TotalIncomeTax:     tax.Sum(),
	}
}

// Summary returns the total net salary of the year
func Summary(c Calculator) decimal.Decimal {
	return summarize(c.MonthlyNetSalary())
}

func summarize(net MonthlySeries) decimal.Decimal {
	return net.Sum().RoundBank(SummaryPlaces)
}
