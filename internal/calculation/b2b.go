package calculation

import (
	"fmt"

	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
)

// b2bBase holds the series every self-employment variant shares: a flat ZUS
// contribution, business costs from the parameters and net salary after costs
type b2bBase struct {
	base
}

func newB2BBase(contract domain.ContractType, rates domain.RateTable, params domain.Parameters) (b2bBase, error) {
	if rates.Contract != contract {
		return b2bBase{}, fmt.Errorf("%w: %s is not a %s table", ErrInvalidRateTable, rates.Regime(), contract)
	}
	b, err := newBase(rates, params)
	if err != nil {
		return b2bBase{}, err
	}
	return b2bBase{base: b}, nil
}

// MonthlyZUS returns the flat social contribution, reduced for small ZUS
func (b *b2bBase) MonthlyZUS() MonthlySeries {
	amount := b.rates.ZUS.Monthly
	if b.params.SmallZUS {
		amount = b.rates.ZUS.SmallMonthly
	}
	return Rounded(ZUSPlaces, Constant(amount))
}

// MonthlyCosts returns the declared business costs
func (b *b2bBase) MonthlyCosts() MonthlySeries {
	return Constant(b.params.Costs)
}

// MonthlyIncome returns revenue less ZUS in whole złoty
func (b *b2bBase) MonthlyIncome() MonthlySeries {
	return Rounded(IncomePlaces, b.MonthlyGross().Sub(b.MonthlyZUS()))
}

// MonthlyHealthPremium returns the health premium under the year's method
func (b *b2bBase) MonthlyHealthPremium() MonthlySeries {
	return b.healthPremium(b.MonthlyIncome())
}

// MonthlyHealthPremiumDeductible returns the part of the premium that reduces tax
func (b *b2bBase) MonthlyHealthPremiumDeductible() MonthlySeries {
	return b.healthPremiumDeductible(b.MonthlyIncome())
}

// netSalary is revenue less ZUS, health premium, the given tax and business costs
func (b *b2bBase) netSalary(tax MonthlySeries) MonthlySeries {
	net := b.MonthlyGross().
		Sub(b.MonthlyZUS()).
		Sub(b.MonthlyHealthPremium()).
		Sub(tax).
		Sub(b.MonthlyCosts())
	return Rounded(NetSalaryPlaces, net)
}

// ScaleCalculator computes self-employment taxed on the progressive scale
type ScaleCalculator struct {
	b2bBase
	brackets *BracketTable
	relief   ReliefPolicy
}

// NewScaleCalculator creates a progressive-scale calculator for one year's rate table
func NewScaleCalculator(rates domain.RateTable, params domain.Parameters) (*ScaleCalculator, error) {
	b, err := newB2BBase(domain.ContractB2BScale, rates, params)
	if err != nil {
		return nil, err
	}
	brackets, err := NewBracketTable(rates.IncomeTax.Brackets)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rates.Regime(), err)
	}
	return &ScaleCalculator{b2bBase: b, brackets: brackets, relief: DefaultReliefPolicy()}, nil
}

// MonthlyRelief returns the middle-class relief; the base is revenue less costs
func (c *ScaleCalculator) MonthlyRelief() MonthlySeries {
	return c.relief.Series(c.rates.Year, c.params.GrossSalary.Sub(c.params.Costs))
}

// MonthlyIncomeTax returns the income tax advance paid each month
func (c *ScaleCalculator) MonthlyIncomeTax() MonthlySeries {
	taxable := c.MonthlyIncome().Sub(c.MonthlyCosts()).Sub(c.MonthlyRelief())
	payments := ProgressiveWithholding(c.brackets, taxable, c.MonthlyHealthPremiumDeductible())
	return Rounded(IncomeTaxPlaces, payments)
}

// MonthlyNetSalary returns what remains after contributions, tax and costs
func (c *ScaleCalculator) MonthlyNetSalary() MonthlySeries {
	return c.netSalary(c.MonthlyIncomeTax())
}

// FlatCalculator computes self-employment taxed with the flat (linear) rate
type FlatCalculator struct {
	b2bBase
}

// NewFlatCalculator creates a flat-tax calculator for one year's rate table
func NewFlatCalculator(rates domain.RateTable, params domain.Parameters) (*FlatCalculator, error) {
	b, err := newB2BBase(domain.ContractB2BFlat, rates, params)
	if err != nil {
		return nil, err
	}
	return &FlatCalculator{b2bBase: b}, nil
}

// MonthlyIncomeTax returns (income - costs) * rate - deductible premium, month by month.
// IP Box income uses the reduced rate.
func (c *FlatCalculator) MonthlyIncomeTax() MonthlySeries {
	rate := c.rates.IncomeTax.Rate
	if c.params.IPBox {
		rate = c.rates.IncomeTax.IPBoxRate
	}
	tax := c.MonthlyIncome().Sub(c.MonthlyCosts()).Mul(rate).Sub(c.MonthlyHealthPremiumDeductible())
	return Rounded(IncomeTaxPlaces, tax)
}

// MonthlyNetSalary returns what remains after contributions, tax and costs
func (c *FlatCalculator) MonthlyNetSalary() MonthlySeries {
	return c.netSalary(c.MonthlyIncomeTax())
}

// RevenueCalculator computes self-employment taxed on revenue (ryczałt).
// The tax base is income before costs; costs only lower the net salary.
type RevenueCalculator struct {
	b2bBase
}

// NewRevenueCalculator creates a revenue-tax calculator for one year's rate table
func NewRevenueCalculator(rates domain.RateTable, params domain.Parameters) (*RevenueCalculator, error) {
	b, err := newB2BBase(domain.ContractB2BRevenue, rates, params)
	if err != nil {
		return nil, err
	}
	return &RevenueCalculator{b2bBase: b}, nil
}

// TaxRate returns the rate in force: a preferential IT or medical rate when the
// year defines one and the flag is set, otherwise the selected rate
func (c *RevenueCalculator) TaxRate() decimal.Decimal {
	preferential := c.rates.IncomeTax.PreferentialRates
	if c.params.IsIT {
		if rate, ok := preferential[domain.PreferentialIT]; ok {
			return rate
		}
	}
	if c.params.IsMedic {
		if rate, ok := preferential[domain.PreferentialMedic]; ok {
			return rate
		}
	}
	return c.params.TaxRate
}

// MonthlyIncomeTax returns income * rate - deductible premium, month by month
func (c *RevenueCalculator) MonthlyIncomeTax() MonthlySeries {
	tax := c.MonthlyIncome().Mul(c.TaxRate()).Sub(c.MonthlyHealthPremiumDeductible())
	return Rounded(IncomeTaxPlaces, tax)
}

// MonthlyNetSalary returns what remains after contributions, tax and costs
func (c *RevenueCalculator) MonthlyNetSalary() MonthlySeries {
	return c.netSalary(c.MonthlyIncomeTax())
}
