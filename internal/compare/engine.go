package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/kalkulator/internal/calculation"
	"github.com/rgehrsitz/kalkulator/internal/domain"
)

// CompareEngine orchestrates contract comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Year         domain.TaxYear
	BaseContract domain.ContractType // defaults to the contract of employment
}

// Compare runs every contract type for one year on the same parameters
func (ce *CompareEngine) Compare(
	ctx context.Context,
	params domain.Parameters,
	options CompareOptions,
) (*ComparisonSet, error) {

	if options.BaseContract == "" {
		options.BaseContract = domain.ContractEmployment
	}

	ledgers, err := ce.CalcEngine.CompareContracts(ctx, options.Year, params)
	if err != nil {
		return nil, err
	}

	var base *ComparisonResult
	alternatives := []ComparisonResult{}
	for _, ledger := range ledgers {
		result := ce.MetricsCalculator.CalculateMetrics(string(ledger.Regime.Contract), ledger)
		if ledger.Regime.Contract == options.BaseContract {
			base = &result
			continue
		}
		alternatives = append(alternatives, result)
	}
	if base == nil {
		return nil, fmt.Errorf("base contract %s not found in comparison", options.BaseContract)
	}

	return ce.newComparisonSet(options.Year, params, base, alternatives), nil
}

// CompareScenarios compares named scenarios of a scenario file. A scenario
// without a year is calculated for year.
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	config *domain.Configuration,
	year domain.TaxYear,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {

	baseScenario := findScenario(config, baseScenarioName)
	if baseScenario == nil {
		return nil, fmt.Errorf("base scenario %s not found", baseScenarioName)
	}

	base, err := ce.runScenario(ctx, baseScenario, year)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	if len(alternativeScenarioNames) == 0 {
		for _, s := range config.Scenarios {
			if s.Name != baseScenarioName {
				alternativeScenarioNames = append(alternativeScenarioNames, s.Name)
			}
		}
	}

	alternatives := []ComparisonResult{}
	for _, altName := range alternativeScenarioNames {
		scenario := findScenario(config, altName)
		if scenario == nil {
			return nil, fmt.Errorf("alternative scenario %s not found", altName)
		}
		result, err := ce.runScenario(ctx, scenario, year)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", altName, err)
		}
		alternatives = append(alternatives, result)
	}

	compSet := ce.newComparisonSet(year, baseScenario.Parameters, &base, alternatives)
	compSet.BaseScenarioName = baseScenarioName
	compSet.ConfigPath = config.RatesFile
	return compSet, nil
}

func (ce *CompareEngine) runScenario(ctx context.Context, scenario *domain.Scenario, year domain.TaxYear) (ComparisonResult, error) {
	if scenario.Year != 0 {
		year = scenario.Year
	}
	regime := domain.Regime{Contract: scenario.Contract, Year: year}
	ledger, err := ce.CalcEngine.Calculate(ctx, regime, scenario.Parameters)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(scenario.Name, ledger), nil
}

func (ce *CompareEngine) newComparisonSet(year domain.TaxYear, params domain.Parameters, base *ComparisonResult, alternatives []ComparisonResult) *ComparisonSet {
	for i := range alternatives {
		alternatives[i] = ce.MetricsCalculator.CalculateComparison(alternatives[i], *base)
	}

	compSet := &ComparisonSet{
		Year:               year,
		Parameters:         params,
		BaseScenarioName:   base.ScenarioName,
		BaseResult:         base,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}

func findScenario(config *domain.Configuration, name string) *domain.Scenario {
	for i := range config.Scenarios {
		if config.Scenarios[i].Name == name {
			return &config.Scenarios[i]
		}
	}
	return nil
}
