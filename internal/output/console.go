package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/kalkulator/internal/domain"
)

// ConsoleFormatter prints the full monthly ledger of every year
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.YearComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 96))
	fmt.Fprintf(&buf, "NET SALARY CALCULATION: %s\n", results.Contract)
	fmt.Fprintln(&buf, strings.Repeat("=", 96))
	writeParameters(&buf, results.Parameters)

	for _, ledger := range results.Ledgers {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "%d\n", ledger.Regime.Year)
		fmt.Fprintln(&buf, strings.Repeat("-", 96))
		fmt.Fprintf(&buf, "%-12s %12s %12s %12s %12s %12s %14s\n",
			"Month", "Gross", "Costs", "Income", "Health", "Tax", "Net")
		for _, row := range ledger.Rows {
			fmt.Fprintf(&buf, "%-12s %12s %12s %12s %12s %12s %14s\n",
				FormatMonth(row.Month),
				row.GrossSalary.StringFixed(2),
				row.Costs.StringFixed(2),
				row.Income.StringFixed(2),
				row.HealthPremium.StringFixed(2),
				row.IncomeTax.StringFixed(2),
				row.NetSalary.StringFixed(2),
			)
		}
		fmt.Fprintln(&buf, strings.Repeat("-", 96))
		fmt.Fprintf(&buf, "%-12s %12s %12s %12s %12s %12s %14s\n", "Total", "", "",
			"", ledger.TotalHealthPremium.StringFixed(2), ledger.TotalIncomeTax.StringFixed(2),
			ledger.TotalNetSalary.StringFixed(2))
		fmt.Fprintf(&buf, "ZUS paid: %s\n", FormatCurrency(ledger.TotalZUS))
	}

	fmt.Fprintln(&buf)
	writeSummary(&buf, results)
	return buf.Bytes(), nil
}

// SummaryFormatter prints only the yearly totals
type SummaryFormatter struct{}

func (s SummaryFormatter) Name() string { return "summary" }

func (s SummaryFormatter) Format(results *domain.YearComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n", results.Contract)
	writeSummary(&buf, results)
	return buf.Bytes(), nil
}

func writeParameters(buf *bytes.Buffer, p domain.Parameters) {
	fmt.Fprintf(buf, "Gross salary: %s\n", FormatCurrency(p.GrossSalary))
	if !p.Costs.IsZero() {
		fmt.Fprintf(buf, "Costs:        %s\n", FormatCurrency(p.Costs))
	}
	var flags []string
	for _, f := range []struct {
		name string
		on   bool
	}{
		{"small ZUS", p.SmallZUS},
		{"PPK", p.PPK},
		{"under 26", p.Under26},
		{"IP-Box", p.IPBox},
		{"IT", p.IsIT},
		{"medic", p.IsMedic},
	} {
		if f.on {
			flags = append(flags, f.name)
		}
	}
	if len(flags) > 0 {
		fmt.Fprintf(buf, "Options:      %s\n", strings.Join(flags, ", "))
	}
}

func writeSummary(buf *bytes.Buffer, results *domain.YearComparison) {
	for _, ledger := range results.Ledgers {
		fmt.Fprintf(buf, "Total net salary %d: %s\n", ledger.Regime.Year, FormatCurrency(ledger.TotalNetSalary))
	}
	if len(results.Ledgers) > 1 {
		fmt.Fprintf(buf, "Change: %s (%s)\n", DescribeChange(results.Change), FormatCurrency(results.Change.Difference))
	}
}
