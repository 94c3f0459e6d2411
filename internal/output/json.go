package output

import (
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/kalkulator/internal/domain"
)

// Report is the JSON document written by JSONFormatter
type Report struct {
	ID          uuid.UUID            `json:"id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Contract    domain.ContractType  `json:"contract"`
	Parameters  domain.Parameters    `json:"parameters"`
	Ledgers     []*domain.Ledger     `json:"ledgers"`
	Summary     map[string]string    `json:"summary"`
	Change      domain.SummaryChange `json:"change"`
}

// NewReport wraps results with a fresh report id
func NewReport(results *domain.YearComparison) Report {
	summary := make(map[string]string, len(results.Ledgers))
	for _, ledger := range results.Ledgers {
		summary[yearKey(ledger.Regime.Year)] = ledger.TotalNetSalary.StringFixed(2)
	}
	return Report{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Contract:    results.Contract,
		Parameters:  results.Parameters,
		Ledgers:     results.Ledgers,
		Summary:     summary,
		Change:      results.Change,
	}
}

// JSONFormatter writes the report as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.YearComparison) ([]byte, error) {
	return json.MarshalIndent(NewReport(results), "", "  ")
}

func yearKey(year domain.TaxYear) string {
	return strconv.Itoa(int(year))
}
