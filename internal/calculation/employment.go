package calculation

import (
	"fmt"

	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
)

// EmploymentCalculator computes a contract of employment (umowa o pracę).
// ZUS is capped per year, costs of income are fixed by law and tax follows the
// progressive scale with cumulative withholding.
type EmploymentCalculator struct {
	base
	brackets *BracketTable
	relief   ReliefPolicy
}

// NewEmploymentCalculator creates an employment calculator for one year's rate table
func NewEmploymentCalculator(rates domain.RateTable, params domain.Parameters) (*EmploymentCalculator, error) {
	if rates.Contract != domain.ContractEmployment {
		return nil, fmt.Errorf("%w: %s is not an employment table", ErrInvalidRateTable, rates.Regime())
	}
	b, err := newBase(rates, params)
	if err != nil {
		return nil, err
	}
	brackets, err := NewBracketTable(rates.IncomeTax.Brackets)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rates.Regime(), err)
	}
	return &EmploymentCalculator{base: b, brackets: brackets, relief: DefaultReliefPolicy()}, nil
}

// MonthlyZUS returns the employee social contribution. The running total is
// capped at max basis * rate, so months after the cap is reached pay nothing.
func (c *EmploymentCalculator) MonthlyZUS() MonthlySeries {
	zus := c.rates.ZUS
	limit := zus.MaxBasis.Mul(zus.Rate)
	cumulative := c.MonthlyGross().Mul(zus.Rate).Cumulative().AtMost(limit)
	return Rounded(ZUSPlaces, cumulative.Deltas())
}

// MonthlyCosts returns the statutory costs of income
func (c *EmploymentCalculator) MonthlyCosts() MonthlySeries {
	return Constant(c.rates.CostsOfIncome)
}

// MonthlyIncome returns gross salary less ZUS, never below zero
func (c *EmploymentCalculator) MonthlyIncome() MonthlySeries {
	income := c.MonthlyGross().Sub(c.MonthlyZUS()).AtLeast(decimal.Zero)
	return Rounded(IncomePlaces, income)
}

// MonthlyHealthPremium returns the health premium charged on income
func (c *EmploymentCalculator) MonthlyHealthPremium() MonthlySeries {
	return c.healthPremium(c.MonthlyIncome())
}

// MonthlyHealthPremiumDeductible returns the part of the premium that reduces tax
func (c *EmploymentCalculator) MonthlyHealthPremiumDeductible() MonthlySeries {
	return c.healthPremiumDeductible(c.MonthlyIncome())
}

// MonthlyRelief returns the middle-class relief; the base is gross salary
func (c *EmploymentCalculator) MonthlyRelief() MonthlySeries {
	return c.relief.Series(c.rates.Year, c.params.GrossSalary)
}

// MonthlyIncomeTax returns the income tax advance withheld each month.
// Employees under 26 pay no income tax.
func (c *EmploymentCalculator) MonthlyIncomeTax() MonthlySeries {
	if c.params.Under26 {
		return Zero()
	}
	taxable := c.MonthlyIncome().Sub(c.MonthlyRelief()).Sub(c.MonthlyCosts())
	payments := ProgressiveWithholding(c.brackets, taxable, c.MonthlyHealthPremiumDeductible())
	return Rounded(IncomeTaxPlaces, payments)
}

// MonthlyNetSalary returns gross less ZUS, health premium and income tax.
// Costs of income only lower the tax base, they are not paid out of salary.
func (c *EmploymentCalculator) MonthlyNetSalary() MonthlySeries {
	net := c.MonthlyGross().
		Sub(c.MonthlyZUS()).
		Sub(c.MonthlyHealthPremium()).
		Sub(c.MonthlyIncomeTax())
	return Rounded(NetSalaryPlaces, net)
}
