package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/kalkulator/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Logger receives engine diagnostics. A *logrus.Entry satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}

// CalculationEngine runs calculators from a registry
type CalculationEngine struct {
	Registry *Registry
	Logger   Logger
}

// NewCalculationEngine creates an engine over the built-in rate tables
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRegistry(NewRegistry())
}

// NewCalculationEngineWithRegistry creates an engine over a custom registry
func NewCalculationEngineWithRegistry(registry *Registry) *CalculationEngine {
	return &CalculationEngine{
		Registry: registry,
		Logger:   NopLogger{},
	}
}

// SetLogger replaces the logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Calculate computes the ledger of one regime
func (ce *CalculationEngine) Calculate(ctx context.Context, regime domain.Regime, params domain.Parameters) (*domain.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	calc, err := ce.Registry.Create(regime, params)
	if err != nil {
		ce.Logger.Errorf("create calculator %s: %v", regime, err)
		return nil, fmt.Errorf("failed to create calculator for %s: %w", regime, err)
	}
	ledger := BuildLedger(calc)
	ce.Logger.Debugf("%s gross=%s net=%s tax=%s health=%s zus=%s",
		regime,
		params.GrossSalary.StringFixed(2),
		ledger.TotalNetSalary.StringFixed(2),
		ledger.TotalIncomeTax.StringFixed(2),
		ledger.TotalHealthPremium.StringFixed(2),
		ledger.TotalZUS.StringFixed(2))
	return ledger, nil
}

// CalculateYears computes a contract under every supported year and compares
// the first year's total net salary with the last one's
func (ce *CalculationEngine) CalculateYears(ctx context.Context, contract domain.ContractType, params domain.Parameters) (*domain.YearComparison, error) {
	years := domain.SupportedYears()
	result := &domain.YearComparison{
		Contract:   contract,
		Parameters: params.WithDefaults(),
		Ledgers:    make([]*domain.Ledger, 0, len(years)),
	}
	for _, year := range years {
		ledger, err := ce.Calculate(ctx, domain.Regime{Contract: contract, Year: year}, params)
		if err != nil {
			return nil, err
		}
		result.Ledgers = append(result.Ledgers, ledger)
	}
	first, last := result.Ledgers[0], result.Ledgers[len(result.Ledgers)-1]
	result.Change = domain.NewSummaryChange(first.TotalNetSalary, last.TotalNetSalary)
	ce.Logger.Infof("%s: %d -> %d net %s -> %s (%s %d%%)",
		contract, first.Regime.Year, last.Regime.Year,
		first.TotalNetSalary.StringFixed(2), last.TotalNetSalary.StringFixed(2),
		result.Change.Direction, result.Change.Percent)
	return result, nil
}

// CompareContracts computes every contract for one year. Ledgers are returned
// in contract order regardless of which finishes first.
func (ce *CalculationEngine) CompareContracts(ctx context.Context, year domain.TaxYear, params domain.Parameters) ([]*domain.Ledger, error) {
	contracts := domain.AllContracts()
	ledgers := make([]*domain.Ledger, len(contracts))

	g, gctx := errgroup.WithContext(ctx)
	for i, contract := range contracts {
		i, contract := i, contract
		g.Go(func() error {
			ledger, err := ce.Calculate(gctx, domain.Regime{Contract: contract, Year: year}, params)
			if err != nil {
				return err
			}
			ledgers[i] = ledger
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ledgers, nil
}
