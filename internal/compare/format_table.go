package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	baseMarker   = " (base)"
	minNameWidth = 26
	maxNameWidth = 48
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing contracts
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	nameWidth := tf.nameWidth(compSet)
	numWidth := 15
	rule := nameWidth + 4*(numWidth+1)

	// Header
	sb.WriteString(fmt.Sprintf("CONTRACT COMPARISON %d\n", compSet.Year))
	sb.WriteString(strings.Repeat("=", rule) + "\n")
	sb.WriteString(fmt.Sprintf("Gross Salary: %s zł\n", compSet.Parameters.GrossSalary.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Base: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Rates: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Net / Year",
		numWidth, "Net / Month",
		numWidth, "ZUS + Health",
		numWidth, "Income Tax"))
	sb.WriteString(strings.Repeat("-", rule) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", rule) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", rule) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", rule) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			sb.WriteString(fmt.Sprintf("  Net Salary:  %s%s zł (%s%%)\n",
				tf.deltaSymbol(alt.NetDiffFromBase),
				alt.NetDiffFromBase.StringFixed(2),
				alt.NetPctFromBase.StringFixed(1)))

			if !alt.TaxDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Income Tax:  %s%s zł\n",
					tf.deltaSymbol(alt.TaxDiffFromBase),
					alt.TaxDiffFromBase.StringFixed(2)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", rule) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single contract row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := tf.truncate(result.ScenarioName, nameWidth)
	if isBase {
		name = tf.truncate(result.ScenarioName, nameWidth-len(baseMarker)) + baseMarker
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, name,
		numWidth, result.TotalNetSalary.StringFixed(2),
		numWidth, result.AverageMonthlyNet.StringFixed(2),
		numWidth, result.TotalZUS.Add(result.TotalHealthPremium).StringFixed(2),
		numWidth, result.TotalIncomeTax.StringFixed(2))
}

// deltaSymbol returns "+" for positive deltas; negative values carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// nameWidth fits the longest scenario name, including the base marker
func (tf *TableFormatter) nameWidth(compSet *ComparisonSet) int {
	width := minNameWidth
	if compSet.BaseResult != nil {
		width = max(width, len(compSet.BaseResult.ScenarioName+baseMarker))
	}
	for _, alt := range compSet.AlternativeResults {
		width = max(width, len(alt.ScenarioName))
	}
	return min(width, maxNameWidth)
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each alternative
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.NetDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.NetDiffFromBase) + alt.NetDiffFromBase.StringFixed(0) + " zł"
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
