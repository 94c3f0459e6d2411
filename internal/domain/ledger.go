package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRow is one month of a salary ledger
type LedgerRow struct {
	Month         time.Time       `json:"month"`
	GrossSalary   decimal.Decimal `json:"gross_salary"`
	Costs         decimal.Decimal `json:"costs"`
	Income        decimal.Decimal `json:"income"` // income after costs
	HealthPremium decimal.Decimal `json:"nfz"`
	IncomeTax     decimal.Decimal `json:"income_tax"`
	NetSalary     decimal.Decimal `json:"net_salary"`
}

// Ledger is the month-by-month result of one regime
type Ledger struct {
	Regime     Regime      `json:"regime"`
	Parameters Parameters  `json:"parameters"`
	Rows       []LedgerRow `json:"rows"`

	TotalNetSalary     decimal.Decimal `json:"total_net_salary"`
	TotalZUS           decimal.Decimal `json:"total_zus"`
	TotalHealthPremium decimal.Decimal `json:"total_health_premium"`
	TotalIncomeTax     decimal.Decimal `json:"total_income_tax"`
}

// Direction describes how a later summary relates to an earlier one
type Direction string

const (
	DirectionHigher    Direction = "higher"
	DirectionLower     Direction = "lower"
	DirectionUnchanged Direction = "unchanged"
)

// SummaryChange compares the total net salary of two years
type SummaryChange struct {
	From       decimal.Decimal `json:"from"`
	To         decimal.Decimal `json:"to"`
	Difference decimal.Decimal `json:"difference"`
	// Percent is |floor((to/from - 1) * 100)|, the figure shown next to the direction
	Percent   int64     `json:"percent"`
	Direction Direction `json:"direction"`
}

// NewSummaryChange builds the comparison of two totals
func NewSummaryChange(from, to decimal.Decimal) SummaryChange {
	change := SummaryChange{
		From:       from,
		To:         to,
		Difference: to.Sub(from),
		Direction:  DirectionUnchanged,
	}
	switch {
	case to.GreaterThan(from):
		change.Direction = DirectionHigher
	case to.LessThan(from):
		change.Direction = DirectionLower
	}
	if !from.IsZero() {
		pct := to.Div(from).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100)).Floor()
		change.Percent = pct.Abs().IntPart()
	}
	return change
}

// YearComparison holds the ledgers of one contract for every supported year
type YearComparison struct {
	Contract   ContractType  `json:"contract"`
	Parameters Parameters    `json:"parameters"`
	Ledgers    []*Ledger     `json:"ledgers"`
	Change     SummaryChange `json:"change"`
}

// Summaries returns the total net salary of each ledger, in year order
func (yc *YearComparison) Summaries() []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(yc.Ledgers))
	for _, l := range yc.Ledgers {
		out = append(out, l.TotalNetSalary)
	}
	return out
}

// LedgerFor returns the ledger computed for the given year, or nil
func (yc *YearComparison) LedgerFor(year TaxYear) *Ledger {
	for _, l := range yc.Ledgers {
		if l.Regime.Year == year {
			return l
		}
	}
	return nil
}
