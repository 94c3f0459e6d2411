package domain

import (
	"fmt"
	"strings"
)

// ContractType identifies the employment arrangement a salary is paid under
type ContractType string

const (
	// ContractEmployment is a standard contract of employment (umowa o pracę)
	ContractEmployment ContractType = "CONTRACT_OF_EMPLOYMENT"
	// ContractB2BScale is self-employment taxed on the progressive scale
	ContractB2BScale ContractType = "B2B_SCALE"
	// ContractB2BFlat is self-employment taxed with the flat (linear) rate
	ContractB2BFlat ContractType = "B2B_FLAT"
	// ContractB2BRevenue is self-employment taxed on revenue (ryczałt)
	ContractB2BRevenue ContractType = "B2B_REVENUE"
)

// AllContracts lists every supported contract type in presentation order
func AllContracts() []ContractType {
	return []ContractType{ContractEmployment, ContractB2BScale, ContractB2BFlat, ContractB2BRevenue}
}

// contractAliases maps the short form ids used by web front ends
var contractAliases = map[string]ContractType{
	"employment":  ContractEmployment,
	"b2b-scale":   ContractB2BScale,
	"b2b-line":    ContractB2BFlat,
	"b2b-flat":    ContractB2BFlat,
	"b2b-revenue": ContractB2BRevenue,
}

// ParseContractType resolves a contract name or alias, case-insensitively
func ParseContractType(s string) (ContractType, error) {
	name := strings.TrimSpace(s)
	for _, c := range AllContracts() {
		if strings.EqualFold(name, string(c)) {
			return c, nil
		}
	}
	if c, ok := contractAliases[strings.ToLower(name)]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownContract, s)
}

// IsB2B reports whether the contract is a self-employment variant
func (c ContractType) IsB2B() bool {
	return c == ContractB2BScale || c == ContractB2BFlat || c == ContractB2BRevenue
}

// TaxYear is the calendar year whose tax law a calculation follows
type TaxYear int

const (
	Year2021 TaxYear = 2021
	Year2022 TaxYear = 2022
)

// SupportedYears returns the years compared by the calculator, oldest first
func SupportedYears() []TaxYear {
	return []TaxYear{Year2021, Year2022}
}

// ParseTaxYear validates a numeric year against the supported set
func ParseTaxYear(year int) (TaxYear, error) {
	for _, y := range SupportedYears() {
		if int(y) == year {
			return y, nil
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrUnsupportedYear, year)
}

// Regime is one contract evaluated under one year's rules
type Regime struct {
	Contract ContractType `yaml:"contract" json:"contract"`
	Year     TaxYear      `yaml:"year" json:"year"`
}

// String renders the regime as CONTRACT/YEAR
func (r Regime) String() string {
	return fmt.Sprintf("%s/%d", r.Contract, r.Year)
}
