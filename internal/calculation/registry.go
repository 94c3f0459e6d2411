package calculation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/kalkulator/internal/domain"
)

// CalculatorFactory creates a calculator from a rate table and parameters
type CalculatorFactory func(rates domain.RateTable, params domain.Parameters) (Calculator, error)

// Registry maps every regime to the factory of its contract and the rate table
// of its year. Registration happens during setup; afterwards the registry is
// only read and may be shared between goroutines.
type Registry struct {
	factories map[domain.ContractType]CalculatorFactory
	rates     map[domain.Regime]domain.RateTable
}

// NewRegistry creates a registry with all built-in calculators and rate tables
func NewRegistry() *Registry {
	registry := &Registry{
		factories: make(map[domain.ContractType]CalculatorFactory),
		rates:     make(map[domain.Regime]domain.RateTable),
	}

	registry.Register(domain.ContractEmployment, createEmployment)
	registry.Register(domain.ContractB2BScale, createScale)
	registry.Register(domain.ContractB2BFlat, createFlat)
	registry.Register(domain.ContractB2BRevenue, createRevenue)

	for _, rt := range BuiltinRateTables() {
		registry.rates[rt.Regime()] = rt
	}
	return registry
}

// Register adds or replaces the factory for a contract
func (r *Registry) Register(contract domain.ContractType, factory CalculatorFactory) {
	r.factories[contract] = factory
}

// SetRateTable validates rt and makes it the table for its regime
func (r *Registry) SetRateTable(rt domain.RateTable) error {
	if err := ValidateRateTable(rt); err != nil {
		return err
	}
	r.rates[rt.Regime()] = rt
	return nil
}

// RateTable returns the table in use for a regime
func (r *Registry) RateTable(regime domain.Regime) (domain.RateTable, bool) {
	rt, ok := r.rates[regime]
	return rt, ok
}

// Create builds the calculator for a regime
func (r *Registry) Create(regime domain.Regime, params domain.Parameters) (Calculator, error) {
	factory, ok := r.factories[regime.Contract]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRegime, regime)
	}
	rates, ok := r.rates[regime]
	if !ok {
		return nil, fmt.Errorf("%w: no rate table for %s", ErrUnsupportedRegime, regime)
	}
	return factory(rates, params)
}

// Regimes lists every regime that has both a factory and a rate table,
// ordered by contract then year
func (r *Registry) Regimes() []domain.Regime {
	order := make(map[domain.ContractType]int)
	for i, c := range domain.AllContracts() {
		order[c] = i
	}
	regimes := make([]domain.Regime, 0, len(r.rates))
	for regime := range r.rates {
		if _, ok := r.factories[regime.Contract]; ok {
			regimes = append(regimes, regime)
		}
	}
	sort.Slice(regimes, func(i, j int) bool {
		if regimes[i].Contract != regimes[j].Contract {
			return order[regimes[i].Contract] < order[regimes[j].Contract]
		}
		return regimes[i].Year < regimes[j].Year
	})
	return regimes
}

// ParseRegime parses a regime specification.
// Format: "contract:year", e.g. "B2B_SCALE:2022" or "employment:2021"
func (r *Registry) ParseRegime(spec string) (domain.Regime, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return domain.Regime{}, fmt.Errorf("invalid regime spec format, expected 'contract:year', got: %s", spec)
	}
	contract, err := domain.ParseContractType(parts[0])
	if err != nil {
		return domain.Regime{}, err
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.Regime{}, fmt.Errorf("invalid year value: %w", err)
	}
	regime := domain.Regime{Contract: contract, Year: domain.TaxYear(year)}
	if _, ok := r.rates[regime]; !ok {
		return domain.Regime{}, fmt.Errorf("%w: %s", ErrUnsupportedRegime, regime)
	}
	return regime, nil
}

// Factory functions for each contract

func createEmployment(rates domain.RateTable, params domain.Parameters) (Calculator, error) {
	c, err := NewEmploymentCalculator(rates, params)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func createScale(rates domain.RateTable, params domain.Parameters) (Calculator, error) {
	c, err := NewScaleCalculator(rates, params)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func createFlat(rates domain.RateTable, params domain.Parameters) (Calculator, error) {
	c, err := NewFlatCalculator(rates, params)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func createRevenue(rates domain.RateTable, params domain.Parameters) (Calculator, error) {
	c, err := NewRevenueCalculator(rates, params)
	if err != nil {
		return nil, err
	}
	return c, nil
}
