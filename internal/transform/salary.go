package transform

import (
	"fmt"

	"github.com/rgehrsitz/kalkulator/internal/config"
	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RaiseGross changes the monthly gross salary by an amount, a percentage, or both
// (percentage first)
type RaiseGross struct {
	Percent decimal.Decimal
	Amount  decimal.Decimal
}

func (rg *RaiseGross) Name() string {
	return "raise_gross"
}

func (rg *RaiseGross) Description() string {
	switch {
	case rg.Amount.IsZero():
		return fmt.Sprintf("Change gross salary by %s%%", rg.Percent.String())
	case rg.Percent.IsZero():
		return fmt.Sprintf("Change gross salary by %s zł", rg.Amount.StringFixed(2))
	default:
		return fmt.Sprintf("Change gross salary by %s%% and %s zł", rg.Percent.String(), rg.Amount.StringFixed(2))
	}
}

func (rg *RaiseGross) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(rg.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if rg.target(base).IsNegative() {
		return NewTransformError(rg.Name(), "validate", "gross salary would become negative", nil)
	}
	return nil
}

func (rg *RaiseGross) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := copyScenario(base)
	modified.Parameters.GrossSalary = rg.target(base)
	return modified, nil
}

func (rg *RaiseGross) target(base *domain.Scenario) decimal.Decimal {
	gross := base.Parameters.GrossSalary
	gross = gross.Add(gross.Mul(rg.Percent).Div(hundred)).RoundBank(2)
	return gross.Add(rg.Amount)
}

// SetContract moves the scenario to another contract type
type SetContract struct {
	Contract domain.ContractType
}

func (sc *SetContract) Name() string {
	return "set_contract"
}

func (sc *SetContract) Description() string {
	return fmt.Sprintf("Switch to %s", sc.Contract)
}

func (sc *SetContract) Validate(base *domain.Scenario) error {
	if _, err := domain.ParseContractType(string(sc.Contract)); err != nil {
		return NewTransformError(sc.Name(), "validate", "invalid contract", err)
	}
	return nil
}

func (sc *SetContract) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	contract, err := domain.ParseContractType(string(sc.Contract))
	if err != nil {
		return nil, NewTransformError(sc.Name(), "apply", "invalid contract", err)
	}
	modified := copyScenario(base)
	modified.Contract = contract
	return modified, nil
}

// SetYear pins the scenario to one tax year
type SetYear struct {
	Year domain.TaxYear
}

func (sy *SetYear) Name() string {
	return "set_year"
}

func (sy *SetYear) Description() string {
	return fmt.Sprintf("Calculate for %d", sy.Year)
}

func (sy *SetYear) Validate(base *domain.Scenario) error {
	if _, err := domain.ParseTaxYear(int(sy.Year)); err != nil {
		return NewTransformError(sy.Name(), "validate", "invalid year", err)
	}
	return nil
}

func (sy *SetYear) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := copyScenario(base)
	modified.Year = sy.Year
	return modified, nil
}

// SetCosts replaces the monthly business costs
type SetCosts struct {
	Costs decimal.Decimal
}

func (sc *SetCosts) Name() string {
	return "set_costs"
}

func (sc *SetCosts) Description() string {
	return fmt.Sprintf("Set monthly costs to %s zł", sc.Costs.StringFixed(2))
}

func (sc *SetCosts) Validate(base *domain.Scenario) error {
	if sc.Costs.IsNegative() {
		return NewTransformError(sc.Name(), "validate", "costs cannot be negative", nil)
	}
	return nil
}

func (sc *SetCosts) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := copyScenario(base)
	modified.Parameters.Costs = sc.Costs
	return modified, nil
}

// SetTaxRate selects the revenue tax rate
type SetTaxRate struct {
	Rate decimal.Decimal
}

func (st *SetTaxRate) Name() string {
	return "set_tax_rate"
}

func (st *SetTaxRate) Description() string {
	return fmt.Sprintf("Use revenue tax rate %s%%", st.Rate.Mul(hundred).String())
}

func (st *SetTaxRate) Validate(base *domain.Scenario) error {
	p := base.Parameters
	p.TaxRate = st.Rate
	if err := config.ValidateParameters(p); err != nil {
		return NewTransformError(st.Name(), "validate", "invalid tax rate", err)
	}
	return nil
}

func (st *SetTaxRate) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := copyScenario(base)
	modified.Parameters.TaxRate = st.Rate
	return modified, nil
}

// SetFlag turns one of the boolean parameters on or off
type SetFlag struct {
	Flag  string
	Value bool
}

// flagFields maps flag names, as written in scenario files, to parameters
var flagFields = map[string]func(p *domain.Parameters) *bool{
	"small_zus": func(p *domain.Parameters) *bool { return &p.SmallZUS },
	"ppk":       func(p *domain.Parameters) *bool { return &p.PPK },
	"under26":   func(p *domain.Parameters) *bool { return &p.Under26 },
	"ipbox":     func(p *domain.Parameters) *bool { return &p.IPBox },
	"is_it":     func(p *domain.Parameters) *bool { return &p.IsIT },
	"is_medic":  func(p *domain.Parameters) *bool { return &p.IsMedic },
}

func (sf *SetFlag) Name() string {
	return "set_flag"
}

func (sf *SetFlag) Description() string {
	state := "off"
	if sf.Value {
		state = "on"
	}
	return fmt.Sprintf("Turn %s %s", sf.Flag, state)
}

func (sf *SetFlag) Validate(base *domain.Scenario) error {
	if _, ok := flagFields[sf.Flag]; !ok {
		return NewTransformError(sf.Name(), "validate", fmt.Sprintf("unknown flag %q", sf.Flag), nil)
	}
	return nil
}

func (sf *SetFlag) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	field, ok := flagFields[sf.Flag]
	if !ok {
		return nil, NewTransformError(sf.Name(), "apply", fmt.Sprintf("unknown flag %q", sf.Flag), nil)
	}
	modified := copyScenario(base)
	*field(&modified.Parameters) = sf.Value
	return modified, nil
}
