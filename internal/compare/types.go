package compare

import (
	"fmt"

	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents one contract's ledger with its comparison metrics
type ComparisonResult struct {
	ScenarioName string         `json:"scenarioName"`
	Description  string         `json:"description,omitempty"`
	Regime       domain.Regime  `json:"regime"`
	Ledger       *domain.Ledger `json:"-"`

	// Key Metrics
	TotalNetSalary     decimal.Decimal `json:"totalNetSalary"`
	AverageMonthlyNet  decimal.Decimal `json:"averageMonthlyNet"`
	TotalZUS           decimal.Decimal `json:"totalZus"`
	TotalHealthPremium decimal.Decimal `json:"totalHealthPremium"`
	TotalIncomeTax     decimal.Decimal `json:"totalIncomeTax"`

	// Comparison to Base
	NetDiffFromBase decimal.Decimal `json:"netDiffFromBase"`
	NetPctFromBase  decimal.Decimal `json:"netPctFromBase"`
	TaxDiffFromBase decimal.Decimal `json:"taxDiffFromBase"`
}

// ComparisonSet represents a collection of contract comparisons
type ComparisonSet struct {
	Year               domain.TaxYear     `json:"year"`
	Parameters         domain.Parameters  `json:"parameters"`
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// All returns the base result followed by the alternatives
func (cs *ComparisonSet) All() []ComparisonResult {
	all := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		all = append(all, *cs.BaseResult)
	}
	return append(all, cs.AlternativeResults...)
}

// MetricsCalculator extracts key metrics from ledgers
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the totals of one ledger
func (mc *MetricsCalculator) CalculateMetrics(name string, ledger *domain.Ledger) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:       name,
		Regime:             ledger.Regime,
		Ledger:             ledger,
		TotalNetSalary:     ledger.TotalNetSalary,
		TotalZUS:           ledger.TotalZUS,
		TotalHealthPremium: ledger.TotalHealthPremium,
		TotalIncomeTax:     ledger.TotalIncomeTax,
	}
	if n := len(ledger.Rows); n > 0 {
		result.AverageMonthlyNet = ledger.TotalNetSalary.Div(decimal.NewFromInt(int64(n))).RoundBank(2)
	}
	return result
}

// CalculateComparison computes comparison metrics between a result and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.NetDiffFromBase = scenario.TotalNetSalary.Sub(base.TotalNetSalary)

	if !base.TotalNetSalary.IsZero() {
		scenario.NetPctFromBase = scenario.NetDiffFromBase.
			Div(base.TotalNetSalary).
			Mul(decimal.NewFromInt(100))
	}

	scenario.TaxDiffFromBase = scenario.TotalIncomeTax.Sub(base.TotalIncomeTax)

	return scenario
}

// GenerateRecommendations points out the alternatives that beat the base
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	bestNet := base
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].TotalNetSalary.GreaterThan(bestNet.TotalNetSalary) {
			bestNet = &compSet.AlternativeResults[i]
		}
	}
	if bestNet != base {
		diff := bestNet.TotalNetSalary.Sub(base.TotalNetSalary)
		recommendations = append(recommendations,
			fmt.Sprintf("Highest Net: %s pays %s zł more per year than %s",
				bestNet.ScenarioName, diff.StringFixed(2), base.ScenarioName))
	}

	lowestTax := base
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].TotalIncomeTax.LessThan(lowestTax.TotalIncomeTax) {
			lowestTax = &compSet.AlternativeResults[i]
		}
	}
	if lowestTax != base {
		savings := base.TotalIncomeTax.Sub(lowestTax.TotalIncomeTax)
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Tax: %s saves %s zł of income tax",
				lowestTax.ScenarioName, savings.StringFixed(2)))
	}

	lowestContrib := base
	contributions := func(r *ComparisonResult) decimal.Decimal { return r.TotalZUS.Add(r.TotalHealthPremium) }
	for i := range compSet.AlternativeResults {
		if contributions(&compSet.AlternativeResults[i]).LessThan(contributions(lowestContrib)) {
			lowestContrib = &compSet.AlternativeResults[i]
		}
	}
	if lowestContrib != base {
		savings := contributions(base).Sub(contributions(lowestContrib))
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Contributions: %s saves %s zł of ZUS and health premium",
				lowestContrib.ScenarioName, savings.StringFixed(2)))
	}

	return recommendations
}
