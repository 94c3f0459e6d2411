package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/kalkulator/internal/domain"
)

// CSVFormatter writes one row per ledger month
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(results *domain.YearComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Contract", "Year", "Month", "GrossSalary", "Costs", "Income", "HealthPremium", "IncomeTax", "NetSalary"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, ledger := range results.Ledgers {
		year := strconv.Itoa(int(ledger.Regime.Year))
		for _, row := range ledger.Rows {
			record := []string{
				string(ledger.Regime.Contract),
				year,
				FormatMonth(row.Month),
				row.GrossSalary.StringFixed(2),
				row.Costs.StringFixed(2),
				row.Income.StringFixed(2),
				row.HealthPremium.StringFixed(2),
				row.IncomeTax.StringFixed(2),
				row.NetSalary.StringFixed(2),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
