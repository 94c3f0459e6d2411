package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Contract",
		"Year",
		"Total Net Salary",
		"Average Monthly Net",
		"Total ZUS",
		"Total Health Premium",
		"Total Income Tax",
		"Net Diff from Base",
		"Net % Change",
		"Tax Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		string(result.Regime.Contract),
		strconv.Itoa(int(result.Regime.Year)),
		result.TotalNetSalary.StringFixed(2),
		result.AverageMonthlyNet.StringFixed(2),
		result.TotalZUS.StringFixed(2),
		result.TotalHealthPremium.StringFixed(2),
		result.TotalIncomeTax.StringFixed(2),
		result.NetDiffFromBase.StringFixed(2),
		result.NetPctFromBase.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
	}
}
