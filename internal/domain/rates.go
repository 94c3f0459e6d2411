package domain

import (
	"github.com/shopspring/decimal"
)

// RateTable contains the statutory constants for one contract in one tax year.
// Built-in tables live in the calculation package; a rates file may replace them.
type RateTable struct {
	Contract    ContractType `yaml:"contract" json:"contract"`
	Year        TaxYear      `yaml:"year" json:"year"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`

	ZUS       ZUSRules           `yaml:"zus" json:"zus"`
	Health    HealthPremiumRules `yaml:"health" json:"health"`
	IncomeTax IncomeTaxRules     `yaml:"income_tax" json:"income_tax"`

	// CostsOfIncome is the fixed monthly deductible cost of an employment contract
	CostsOfIncome decimal.Decimal `yaml:"costs_of_income,omitempty" json:"costs_of_income,omitempty"`
}

// Regime returns the contract and year the table applies to
func (rt RateTable) Regime() Regime {
	return Regime{Contract: rt.Contract, Year: rt.Year}
}

// ZUSRules contains social insurance contribution rules
type ZUSRules struct {
	// Employment: share of gross salary, capped at MaxBasis per year
	Rate     decimal.Decimal `yaml:"rate,omitempty" json:"rate,omitempty"`
	MaxBasis decimal.Decimal `yaml:"max_basis,omitempty" json:"max_basis,omitempty"`

	// B2B: flat monthly amounts
	Monthly      decimal.Decimal `yaml:"monthly,omitempty" json:"monthly,omitempty"`
	SmallMonthly decimal.Decimal `yaml:"small_monthly,omitempty" json:"small_monthly,omitempty"`
}

// HealthPremiumMethod selects how the monthly health premium is derived
type HealthPremiumMethod string

const (
	// HealthPremiumFixed charges Amount every month
	HealthPremiumFixed HealthPremiumMethod = "fixed"
	// HealthPremiumIncomeRate charges Rate times monthly income, income floored at MinIncome
	HealthPremiumIncomeRate HealthPremiumMethod = "income_rate"
	// HealthPremiumRevenueTiers charges the premium of the tier holding yearly revenue
	HealthPremiumRevenueTiers HealthPremiumMethod = "revenue_tiers"
)

// HealthPremiumRules contains health insurance (NFZ) premium rules
type HealthPremiumRules struct {
	Method HealthPremiumMethod `yaml:"method" json:"method"`

	Amount           decimal.Decimal `yaml:"amount,omitempty" json:"amount,omitempty"`
	DeductibleAmount decimal.Decimal `yaml:"deductible_amount,omitempty" json:"deductible_amount,omitempty"`

	Rate           decimal.Decimal `yaml:"rate,omitempty" json:"rate,omitempty"`
	DeductibleRate decimal.Decimal `yaml:"deductible_rate,omitempty" json:"deductible_rate,omitempty"`
	MinIncome      decimal.Decimal `yaml:"min_income,omitempty" json:"min_income,omitempty"`

	Tiers []HealthPremiumTier `yaml:"tiers,omitempty" json:"tiers,omitempty"`
}

// HealthPremiumTier is a yearly revenue band with a fixed monthly premium
type HealthPremiumTier struct {
	MinRevenue decimal.Decimal  `yaml:"min_revenue" json:"min_revenue"`
	MaxRevenue *decimal.Decimal `yaml:"max_revenue,omitempty" json:"max_revenue,omitempty"` // nil means unbounded
	Premium    decimal.Decimal  `yaml:"premium" json:"premium"`
}

// Preferential revenue tax rate keys
const (
	PreferentialIT    = "IT"
	PreferentialMedic = "MEDIC"
)

// IncomeTaxRules contains income tax rules
type IncomeTaxRules struct {
	// Progressive scale, cumulative over the year
	Brackets []TaxBracket `yaml:"brackets,omitempty" json:"brackets,omitempty"`

	// Flat tax
	Rate      decimal.Decimal `yaml:"rate,omitempty" json:"rate,omitempty"`
	IPBoxRate decimal.Decimal `yaml:"ipbox_rate,omitempty" json:"ipbox_rate,omitempty"`

	// Revenue tax overrides keyed by PreferentialIT / PreferentialMedic
	PreferentialRates map[string]decimal.Decimal `yaml:"preferential_rates,omitempty" json:"preferential_rates,omitempty"`
}

// TaxBracket is one step of a progressive scale. PreviousLevelTax is the tax
// owed on an income of exactly MinIncome.
type TaxBracket struct {
	MinIncome        decimal.Decimal  `yaml:"min_income" json:"min_income"`
	MaxIncome        *decimal.Decimal `yaml:"max_income,omitempty" json:"max_income,omitempty"` // nil means unbounded
	Rate             decimal.Decimal  `yaml:"rate" json:"rate"`
	PreviousLevelTax decimal.Decimal  `yaml:"previous_level_tax" json:"previous_level_tax"`
}
