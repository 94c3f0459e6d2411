package main

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/kalkulator/internal/compare"
	"github.com/rgehrsitz/kalkulator/internal/config"
	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/spf13/cobra"
)

func newCompareCmd(opts *globalOptions) *cobra.Command {
	var (
		params       parameterFlags
		year         int
		baseName     string
		format       string
		inputFile    string
		alternatives []string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare every contract type for one tax year",
		Long: "Computes the same gross salary under every contract type for one year and ranks them.\n" +
			"With --input, named scenarios from a scenario file are compared against --base instead.",
		Example: "  kalkulator compare --gross 9000 --costs 250\n" +
			"  kalkulator compare -i scenarios.yaml --base etat -f csv",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			taxYear, err := parseYear(year)
			if err != nil {
				return err
			}
			if taxYear == 0 {
				taxYear = domain.Year2022
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var compSet *compare.ComparisonSet
			if inputFile != "" {
				cfg, err := config.NewInputParser().LoadFromFile(inputFile)
				if err != nil {
					return err
				}
				ratesFile := opts.ratesFile
				if ratesFile == "" {
					ratesFile = cfg.RatesFile
				}
				engine, err := opts.newEngineWithRates(ratesFile)
				if err != nil {
					return err
				}
				if baseName == "" {
					baseName = cfg.Scenarios[0].Name
				}
				compSet, err = compare.NewCompareEngine(engine).CompareScenarios(ctx, cfg, taxYear, baseName, alternatives)
				if err != nil {
					return err
				}
			} else {
				p, err := params.parameters()
				if err != nil {
					return err
				}
				options := compare.CompareOptions{Year: taxYear}
				if baseName != "" {
					if options.BaseContract, err = domain.ParseContractType(baseName); err != nil {
						return err
					}
				}
				engine, err := opts.newEngine()
				if err != nil {
					return err
				}
				compSet, err = compare.NewCompareEngine(engine).Compare(ctx, p, options)
				if err != nil {
					return err
				}
			}

			out, err := formatComparison(compSet, format)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	params.register(cmd)
	cmd.Flags().IntVarP(&year, "year", "y", 2022, "Tax year to compare")
	cmd.Flags().StringVarP(&baseName, "base", "b", "", "Base contract (or base scenario name with --input)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Scenario file")
	cmd.Flags().StringSliceVar(&alternatives, "scenarios", nil, "Alternative scenario names (default: every other scenario)")
	return cmd
}

func formatComparison(compSet *compare.ComparisonSet, format string) (string, error) {
	switch format {
	case "table", "console":
		return (&compare.TableFormatter{}).Format(compSet), nil
	case "compact":
		return (&compare.TableFormatter{}).FormatCompact(compSet) + "\n", nil
	case "csv":
		return (&compare.CSVFormatter{}).Format(compSet)
	case "json":
		out, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
		return out + "\n", err
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
