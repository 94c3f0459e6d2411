package calculation

import (
	"fmt"

	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// BuiltinRateTables returns the statutory tables for every supported regime.
// Each call builds fresh values, so callers may modify what they receive.
func BuiltinRateTables() []domain.RateTable {
	return []domain.RateTable{
		employmentRates2021(),
		employmentRates2022(),
		scaleRates2021(),
		scaleRates2022(),
		flatRates2021(),
		flatRates2022(),
		revenueRates2021(),
		revenueRates2022(),
	}
}

// BuiltinRateTable returns the statutory table for one regime
func BuiltinRateTable(regime domain.Regime) (domain.RateTable, bool) {
	for _, rt := range BuiltinRateTables() {
		if rt.Regime() == regime {
			return rt, true
		}
	}
	return domain.RateTable{}, false
}

func employmentZUS() domain.ZUSRules {
	return domain.ZUSRules{Rate: dec("0.1371"), MaxBasis: dec("157770")}
}

func b2bZUS() domain.ZUSRules {
	return domain.ZUSRules{Monthly: dec("945.67"), SmallMonthly: dec("265.78")}
}

func health2021Fixed() domain.HealthPremiumRules {
	return domain.HealthPremiumRules{
		Method:           domain.HealthPremiumFixed,
		Amount:           dec("381.81"),
		DeductibleAmount: dec("328.78"),
	}
}

func brackets2022() []domain.TaxBracket {
	return []domain.TaxBracket{
		{MinIncome: dec("0"), MaxIncome: decPtr("30000"), Rate: dec("0"), PreviousLevelTax: dec("0")},
		{MinIncome: dec("30000"), MaxIncome: decPtr("120000"), Rate: dec("0.17"), PreviousLevelTax: dec("0")},
		{MinIncome: dec("120000"), Rate: dec("0.32"), PreviousLevelTax: dec("15300")},
	}
}

func employmentRates2021() domain.RateTable {
	return domain.RateTable{
		Contract:      domain.ContractEmployment,
		Year:          domain.Year2021,
		Description:   "Umowa o pracę, 2021",
		ZUS:           employmentZUS(),
		CostsOfIncome: dec("250"),
		Health: domain.HealthPremiumRules{
			Method:         domain.HealthPremiumIncomeRate,
			Rate:           dec("0.09"),
			DeductibleRate: dec("0.0775"),
		},
		IncomeTax: domain.IncomeTaxRules{
			Brackets: []domain.TaxBracket{
				{MinIncome: dec("0"), MaxIncome: decPtr("3000"), Rate: dec("0"), PreviousLevelTax: dec("0")},
				{MinIncome: dec("3000"), MaxIncome: decPtr("85528"), Rate: dec("0.17"), PreviousLevelTax: dec("0")},
				{MinIncome: dec("85528"), Rate: dec("0.32"), PreviousLevelTax: dec("14029.76")},
			},
		},
	}
}

func employmentRates2022() domain.RateTable {
	return domain.RateTable{
		Contract:      domain.ContractEmployment,
		Year:          domain.Year2022,
		Description:   "Umowa o pracę, 2022 (Polski Ład)",
		ZUS:           employmentZUS(),
		CostsOfIncome: dec("250"),
		Health: domain.HealthPremiumRules{
			Method:         domain.HealthPremiumIncomeRate,
			Rate:           dec("0.09"),
			DeductibleRate: dec("0"),
		},
		IncomeTax: domain.IncomeTaxRules{Brackets: brackets2022()},
	}
}

func scaleRates2021() domain.RateTable {
	return domain.RateTable{
		Contract:    domain.ContractB2BScale,
		Year:        domain.Year2021,
		Description: "B2B, skala podatkowa, 2021",
		ZUS:         b2bZUS(),
		Health:      health2021Fixed(),
		IncomeTax: domain.IncomeTaxRules{
			Brackets: []domain.TaxBracket{
				{MinIncome: dec("0"), MaxIncome: decPtr("3091"), Rate: dec("0"), PreviousLevelTax: dec("0")},
				{MinIncome: dec("3091"), MaxIncome: decPtr("85528"), Rate: dec("0.17"), PreviousLevelTax: dec("0")},
				{MinIncome: dec("85528"), Rate: dec("0.32"), PreviousLevelTax: dec("14014.29")},
			},
		},
	}
}

func scaleRates2022() domain.RateTable {
	return domain.RateTable{
		Contract:    domain.ContractB2BScale,
		Year:        domain.Year2022,
		Description: "B2B, skala podatkowa, 2022 (Polski Ład)",
		ZUS:         b2bZUS(),
		Health: domain.HealthPremiumRules{
			Method:         domain.HealthPremiumIncomeRate,
			Rate:           dec("0.09"),
			DeductibleRate: dec("0"),
			MinIncome:      dec("3010"),
		},
		IncomeTax: domain.IncomeTaxRules{Brackets: brackets2022()},
	}
}

func flatRates2021() domain.RateTable {
	return domain.RateTable{
		Contract:    domain.ContractB2BFlat,
		Year:        domain.Year2021,
		Description: "B2B, podatek liniowy, 2021",
		ZUS:         b2bZUS(),
		Health:      health2021Fixed(),
		IncomeTax:   domain.IncomeTaxRules{Rate: dec("0.19"), IPBoxRate: dec("0.05")},
	}
}

func flatRates2022() domain.RateTable {
	return domain.RateTable{
		Contract:    domain.ContractB2BFlat,
		Year:        domain.Year2022,
		Description: "B2B, podatek liniowy, 2022 (Polski Ład)",
		ZUS:         b2bZUS(),
		Health: domain.HealthPremiumRules{
			Method:         domain.HealthPremiumIncomeRate,
			Rate:           dec("0.049"),
			DeductibleRate: dec("0"),
			MinIncome:      dec("3010"),
		},
		IncomeTax: domain.IncomeTaxRules{Rate: dec("0.19"), IPBoxRate: dec("0.05")},
	}
}

func revenueRates2021() domain.RateTable {
	return domain.RateTable{
		Contract:    domain.ContractB2BRevenue,
		Year:        domain.Year2021,
		Description: "B2B, ryczałt, 2021",
		ZUS:         b2bZUS(),
		Health:      health2021Fixed(),
	}
}

func revenueRates2022() domain.RateTable {
	return domain.RateTable{
		Contract:    domain.ContractB2BRevenue,
		Year:        domain.Year2022,
		Description: "B2B, ryczałt, 2022 (Polski Ład)",
		ZUS:         b2bZUS(),
		Health: domain.HealthPremiumRules{
			Method:           domain.HealthPremiumRevenueTiers,
			DeductibleAmount: dec("0"),
			Tiers: []domain.HealthPremiumTier{
				{MinRevenue: dec("0"), MaxRevenue: decPtr("60000"), Premium: dec("305.56")},
				{MinRevenue: dec("60000"), MaxRevenue: decPtr("300000"), Premium: dec("509.27")},
				{MinRevenue: dec("300000"), Premium: dec("916.68")},
			},
		},
		IncomeTax: domain.IncomeTaxRules{
			PreferentialRates: map[string]decimal.Decimal{
				domain.PreferentialIT:    dec("0.12"),
				domain.PreferentialMedic: dec("0.14"),
			},
		},
	}
}

// ValidateRateTable checks that a table carries everything its contract needs
func ValidateRateTable(rt domain.RateTable) error {
	if _, err := domain.ParseContractType(string(rt.Contract)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRateTable, err)
	}
	if _, err := domain.ParseTaxYear(int(rt.Year)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRateTable, err)
	}
	if _, err := newHealthRule(rt.Health); err != nil {
		return fmt.Errorf("%s: %w", rt.Regime(), err)
	}

	switch rt.Contract {
	case domain.ContractEmployment:
		if !rt.ZUS.Rate.IsPositive() || !rt.ZUS.MaxBasis.IsPositive() {
			return fmt.Errorf("%w: %s needs a ZUS rate and max basis", ErrInvalidRateTable, rt.Regime())
		}
		if rt.CostsOfIncome.IsNegative() {
			return fmt.Errorf("%w: %s has negative costs of income", ErrInvalidRateTable, rt.Regime())
		}
	default:
		if rt.ZUS.Monthly.IsNegative() || rt.ZUS.SmallMonthly.IsNegative() {
			return fmt.Errorf("%w: %s has negative ZUS", ErrInvalidRateTable, rt.Regime())
		}
	}

	switch rt.Contract {
	case domain.ContractEmployment, domain.ContractB2BScale:
		if err := ValidateBrackets(rt.IncomeTax.Brackets); err != nil {
			return fmt.Errorf("%s: %w", rt.Regime(), err)
		}
	case domain.ContractB2BFlat:
		if !rt.IncomeTax.Rate.IsPositive() {
			return fmt.Errorf("%w: %s needs a flat tax rate", ErrInvalidRateTable, rt.Regime())
		}
	}
	return nil
}
