package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders the ledgers of one contract
type Formatter interface {
	Name() string
	Format(results *domain.YearComparison) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(results *domain.YearComparison) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(results *domain.YearComparison) ([]byte, error) {
	return f.F(results)
}

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"summary": SummaryFormatter{},
	"csv":     CSVFormatter{},
	"json":    JSONFormatter{},
	"html":    HTMLFormatter{},
}

var formatAliases = map[string]string{
	"table": "console",
	"text":  "console",
	"brief": "summary",
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil
func GetFormatterByName(name string) Formatter {
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames returns the registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the accepted aliases, sorted
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted formats results and writes them to a timestamped file in the
// working directory, returning the file name
func WriteFormatted(f Formatter, results *domain.YearComparison, ext string) (string, error) {
	data, err := f.Format(results)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("kalkulator_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// FormatCurrency formats an amount in PLN with two decimals
func FormatCurrency(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " zł"
}

// FormatMonth formats a ledger month the way it appears in every table
func FormatMonth(month time.Time) string {
	return month.Format("2006-01-02")
}

// DescribeChange renders a year-over-year change, e.g. "lower by 1%"
func DescribeChange(change domain.SummaryChange) string {
	if change.Direction == domain.DirectionUnchanged {
		return "unchanged"
	}
	return fmt.Sprintf("%s by %d%%", change.Direction, change.Percent)
}
