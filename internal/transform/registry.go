package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters, as given on
// the command line
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("raise_gross", createRaiseGross)
	registry.Register("set_contract", createSetContract)
	registry.Register("set_year", createSetYear)
	registry.Register("set_costs", createSetCosts)
	registry.Register("set_tax_rate", createSetTaxRate)
	registry.Register("set_flag", createSetFlag)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "raise_gross:percent=10" or "set_flag:flag=small_zus,value=true"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses every spec in order
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]ScenarioTransform, error) {
	transforms := make([]ScenarioTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

// Factory functions for each transform

func createRaiseGross(params map[string]string) (ScenarioTransform, error) {
	percent, err := optionalDecimal(params, "percent")
	if err != nil {
		return nil, err
	}
	amount, err := optionalDecimal(params, "amount")
	if err != nil {
		return nil, err
	}
	if percent.IsZero() && amount.IsZero() {
		return nil, fmt.Errorf("raise_gross requires 'percent' or 'amount' parameter")
	}
	return &RaiseGross{Percent: percent, Amount: amount}, nil
}

func createSetContract(params map[string]string) (ScenarioTransform, error) {
	raw, ok := params["contract"]
	if !ok {
		return nil, fmt.Errorf("set_contract requires 'contract' parameter")
	}
	contract, err := domain.ParseContractType(raw)
	if err != nil {
		return nil, err
	}
	return &SetContract{Contract: contract}, nil
}

func createSetYear(params map[string]string) (ScenarioTransform, error) {
	raw, ok := params["year"]
	if !ok {
		return nil, fmt.Errorf("set_year requires 'year' parameter")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid year value: %w", err)
	}
	year, err := domain.ParseTaxYear(n)
	if err != nil {
		return nil, err
	}
	return &SetYear{Year: year}, nil
}

func createSetCosts(params map[string]string) (ScenarioTransform, error) {
	if _, ok := params["amount"]; !ok {
		return nil, fmt.Errorf("set_costs requires 'amount' parameter")
	}
	costs, err := optionalDecimal(params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetCosts{Costs: costs}, nil
}

func createSetTaxRate(params map[string]string) (ScenarioTransform, error) {
	if _, ok := params["rate"]; !ok {
		return nil, fmt.Errorf("set_tax_rate requires 'rate' parameter")
	}
	rate, err := optionalDecimal(params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetTaxRate{Rate: rate}, nil
}

func createSetFlag(params map[string]string) (ScenarioTransform, error) {
	flag, ok := params["flag"]
	if !ok {
		return nil, fmt.Errorf("set_flag requires 'flag' parameter")
	}
	value := true
	if raw, ok := params["value"]; ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid value for set_flag: %w", err)
		}
		value = v
	}
	return &SetFlag{Flag: flag, Value: value}, nil
}

func optionalDecimal(params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}
