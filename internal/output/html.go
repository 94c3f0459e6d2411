package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
)

// LedgerHeaders are the Polish column labels of a ledger table
var LedgerHeaders = []string{
	"Miesiąc",
	"Wynagrodzenie na umowie",
	"Koszty",
	"Dochód",
	"Składka zdrowotna",
	"Podatek dochodowy",
	"Wynagrodzenie netto",
}

//go:embed templates/ledger.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("html").Funcs(template.FuncMap{
	"month":    FormatMonth,
	"whole":    func(d decimal.Decimal) string { return d.RoundBank(0).StringFixed(0) },
	"currency": FormatCurrency,
}).Parse(htmlTemplateSource))

// LedgerTable renders the monthly rows of one ledger as an HTML table with
// amounts rounded to whole złoty
func LedgerTable(ledger *domain.Ledger) (template.HTML, error) {
	var buf bytes.Buffer
	data := struct {
		Headers []string
		Rows    []domain.LedgerRow
	}{LedgerHeaders, ledger.Rows}
	if err := htmlTemplate.ExecuteTemplate(&buf, "ledger", data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// HTMLFormatter produces a standalone HTML page with one table per year
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

type htmlYear struct {
	Year  domain.TaxYear
	Table template.HTML
	Total decimal.Decimal
}

func (h HTMLFormatter) Format(results *domain.YearComparison) ([]byte, error) {
	tables := make([]htmlYear, 0, len(results.Ledgers))
	for _, ledger := range results.Ledgers {
		table, err := LedgerTable(ledger)
		if err != nil {
			return nil, err
		}
		tables = append(tables, htmlYear{Year: ledger.Regime.Year, Table: table, Total: ledger.TotalNetSalary})
	}

	var buf bytes.Buffer
	data := struct {
		Contract   domain.ContractType
		Tables     []htmlYear
		ShowChange bool
		Change     string
	}{results.Contract, tables, len(tables) > 1, DescribeChange(results.Change)}
	if err := htmlTemplate.ExecuteTemplate(&buf, "report", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
