package breakeven

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format renders one search result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN GROSS SALARY\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Regime:        %s\n", result.Request.Regime))
	sb.WriteString(fmt.Sprintf("Target net:    %s zł\n", result.Request.TargetNet.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Status:        %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:    %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:   %s\n", result.ConvergenceInfo))
	}
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Gross salary:  %s zł / month\n", result.GrossSalary.StringFixed(2)))
	if result.Ledger != nil {
		sb.WriteString(fmt.Sprintf("Net salary:    %s zł / year\n", result.Ledger.TotalNetSalary.StringFixed(2)))
	}
	sb.WriteString(fmt.Sprintf("Difference:    %s%s zł\n", tf.deltaSymbol(result.NetDiff), result.NetDiff.Abs().StringFixed(2)))
	return sb.String()
}

// FormatMatch renders the gross salary each contract needs to match the base
func (tf *TableFormatter) FormatMatch(match *MatchResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("EQUIVALENT GROSS SALARY %d\n", match.Base.Regime.Year))
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Base: %s at %s zł gross, %s zł net per year\n\n",
		match.Base.Regime.Contract,
		match.Base.Parameters.GrossSalary.StringFixed(2),
		match.Base.TotalNetSalary.StringFixed(2)))

	sb.WriteString(fmt.Sprintf("%-24s %14s %14s %10s\n", "Contract", "Gross/month", "vs base", "Status"))
	sb.WriteString(strings.Repeat("-", 65) + "\n")
	for _, m := range match.Matches {
		delta := m.GrossSalary.Sub(match.Base.Parameters.GrossSalary)
		sb.WriteString(fmt.Sprintf("%-24s %14s %14s %10s\n",
			m.Request.Regime.Contract,
			m.GrossSalary.StringFixed(2),
			tf.deltaSymbol(delta)+delta.Abs().StringFixed(2),
			tf.formatStatus(m.Success)))
	}
	return sb.String()
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "converged"
	}
	return "approximate"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsNegative() {
		return "-"
	}
	return "+"
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for any solver result
func (jf *JSONFormatter) Format(v interface{}) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal break-even result: %w", err)
	}
	return string(data), nil
}
