package calculation

import (
	"fmt"

	"github.com/rgehrsitz/kalkulator/internal/domain"
)

// healthRule derives the monthly health premium (składka zdrowotna) and the
// part of it that may be deducted from income tax
type healthRule struct {
	rules domain.HealthPremiumRules
	tiers *TierTable
}

func newHealthRule(rules domain.HealthPremiumRules) (*healthRule, error) {
	h := &healthRule{rules: rules}
	switch rules.Method {
	case domain.HealthPremiumFixed:
		if rules.Amount.IsNegative() || rules.DeductibleAmount.IsNegative() {
			return nil, fmt.Errorf("%w: negative health premium", ErrInvalidRateTable)
		}
	case domain.HealthPremiumIncomeRate:
		if !rules.Rate.IsPositive() {
			return nil, fmt.Errorf("%w: health premium rate must be positive", ErrInvalidRateTable)
		}
	case domain.HealthPremiumRevenueTiers:
		tiers, err := NewTierTable(rules.Tiers)
		if err != nil {
			return nil, err
		}
		h.tiers = tiers
	default:
		return nil, fmt.Errorf("%w: unknown health premium method %q", ErrInvalidRateTable, rules.Method)
	}
	return h, nil
}

// premium returns the unrounded monthly premium
func (h *healthRule) premium(income, gross MonthlySeries) MonthlySeries {
	switch h.rules.Method {
	case domain.HealthPremiumIncomeRate:
		return income.AtLeast(h.rules.MinIncome).Mul(h.rules.Rate)
	case domain.HealthPremiumRevenueTiers:
		return Constant(h.tiers.Premium(gross.Sum()))
	default:
		return Constant(h.rules.Amount)
	}
}

// deductible returns the unrounded monthly premium that reduces income tax
func (h *healthRule) deductible(income MonthlySeries) MonthlySeries {
	if h.rules.Method == domain.HealthPremiumIncomeRate {
		return income.AtLeast(h.rules.MinIncome).Mul(h.rules.DeductibleRate)
	}
	return Constant(h.rules.DeductibleAmount)
}
