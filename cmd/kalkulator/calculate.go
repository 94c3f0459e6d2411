package main

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/kalkulator/internal/calculation"
	"github.com/rgehrsitz/kalkulator/internal/config"
	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/rgehrsitz/kalkulator/internal/output"
	"github.com/spf13/cobra"
)

func newCalculateCmd(opts *globalOptions) *cobra.Command {
	var (
		params       parameterFlags
		contractName string
		year         int
		format       string
		inputFile    string
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate the monthly ledger of a contract",
		Long: "Calculates the monthly ledger of one contract for 2021 and 2022 (or a single --year).\n" +
			"Scenarios may instead be read from a YAML file with --input.",
		Example: "  kalkulator calculate --type B2B_SCALE --gross 9000 --costs 250\n" +
			"  kalkulator calculate -i scenarios.yaml -f csv",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (available: %v)", format, output.AvailableFormatterNames())
			}
			onlyYear, err := parseYear(year)
			if err != nil {
				return err
			}

			var scenarios []domain.Scenario
			ratesFile := opts.ratesFile
			if inputFile != "" {
				cfg, err := config.NewInputParser().LoadFromFile(inputFile)
				if err != nil {
					return err
				}
				if ratesFile == "" {
					ratesFile = cfg.RatesFile
				}
				scenarios = cfg.Scenarios
			} else {
				contract, err := domain.ParseContractType(contractName)
				if err != nil {
					return err
				}
				p, err := params.parameters()
				if err != nil {
					return err
				}
				scenarios = []domain.Scenario{{Name: string(contract), Contract: contract, Year: onlyYear, Parameters: p}}
			}

			engine, err := opts.newEngineWithRates(ratesFile)
			if err != nil {
				return err
			}

			for _, scenario := range scenarios {
				if onlyYear != 0 {
					scenario.Year = onlyYear
				}
				results, err := runScenario(cmd.Context(), engine, scenario)
				if err != nil {
					return fmt.Errorf("scenario %s: %w", scenario.Name, err)
				}
				data, err := formatter.Format(results)
				if err != nil {
					return err
				}
				if len(scenarios) > 1 && formatter.Name() != "csv" && formatter.Name() != "json" {
					fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", scenario.Name)
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
			}
			return nil
		},
	}

	params.register(cmd)
	cmd.Flags().StringVarP(&contractName, "type", "t", "CONTRACT_OF_EMPLOYMENT", "Contract type or alias (employment, b2b-scale, b2b-flat, b2b-revenue)")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Tax year to calculate (default: every supported year)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, summary, csv, json, html)")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Scenario file")
	return cmd
}

// runScenario computes both years of a scenario and keeps only the scenario
// year when one is set
func runScenario(ctx context.Context, engine *calculation.CalculationEngine, scenario domain.Scenario) (*domain.YearComparison, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := engine.CalculateYears(ctx, scenario.Contract, scenario.Parameters)
	if err != nil {
		return nil, err
	}
	if scenario.Year != 0 {
		ledger := results.LedgerFor(scenario.Year)
		if ledger == nil {
			return nil, fmt.Errorf("%w: %s", calculation.ErrUnsupportedRegime, domain.Regime{Contract: scenario.Contract, Year: scenario.Year})
		}
		results.Ledgers = []*domain.Ledger{ledger}
	}
	log.WithField("contract", scenario.Contract).Debugf("calculated %d ledger(s) for %s", len(results.Ledgers), scenario.Name)
	return results, nil
}
