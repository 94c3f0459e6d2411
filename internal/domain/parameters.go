package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultRevenueTaxRate is used when no revenue tax rate is selected
var DefaultRevenueTaxRate = decimal.RequireFromString("0.15")

// RevenueTaxRates returns the revenue tax rates a taxpayer may select, highest first
func RevenueTaxRates() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.RequireFromString("0.17"),
		decimal.RequireFromString("0.15"),
		decimal.RequireFromString("0.125"),
		decimal.RequireFromString("0.10"),
		decimal.RequireFromString("0.085"),
		decimal.RequireFromString("0.055"),
		decimal.RequireFromString("0.03"),
		decimal.RequireFromString("0.02"),
	}
}

// IsRevenueTaxRate reports whether rate is one of the selectable revenue tax rates
func IsRevenueTaxRate(rate decimal.Decimal) bool {
	for _, r := range RevenueTaxRates() {
		if r.Equal(rate) {
			return true
		}
	}
	return false
}

// Parameters is the flat parameter bag shared by every regime. Fields a regime
// does not understand are ignored by it.
type Parameters struct {
	GrossSalary decimal.Decimal `yaml:"gross_salary" json:"grossSalary"`
	Costs       decimal.Decimal `yaml:"costs" json:"costs"`
	SmallZUS    bool            `yaml:"small_zus" json:"zus"`
	PPK         bool            `yaml:"ppk" json:"ppk"` // accepted, not used by any regime yet
	Under26     bool            `yaml:"under26" json:"under26"`
	IPBox       bool            `yaml:"ipbox" json:"ipbox"`
	TaxRate     decimal.Decimal `yaml:"tax_rate" json:"taxRate"`
	IsIT        bool            `yaml:"is_it" json:"is_it"`
	IsMedic     bool            `yaml:"is_medic" json:"is_medic"`
}

// WithDefaults fills in the revenue tax rate when it was left unset
func (p Parameters) WithDefaults() Parameters {
	if p.TaxRate.IsZero() {
		p.TaxRate = DefaultRevenueTaxRate
	}
	return p
}
