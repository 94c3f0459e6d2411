package main

import (
	"fmt"

	"github.com/rgehrsitz/kalkulator/internal/breakeven"
	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newBreakEvenCmd(opts *globalOptions) *cobra.Command {
	var (
		params       parameterFlags
		year         int
		baseName     string
		contractName string
		target       string
		format       string
	)

	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Find the gross salary that pays a given net salary",
		Long: "Without --target, computes --base at --gross and finds, for every other contract of the year,\n" +
			"the monthly gross salary paying the same yearly net salary. With --target, finds the gross\n" +
			"salary of --type paying that yearly net salary.",
		Example: "  kalkulator breakeven --gross 9000 --costs 250\n" +
			"  kalkulator breakeven --type B2B_FLAT --target 80000 --costs 250",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			taxYear, err := domain.ParseTaxYear(year)
			if err != nil {
				return err
			}
			engine, err := opts.newEngine()
			if err != nil {
				return err
			}
			solver := breakeven.NewDefaultSolver(engine)

			var result interface{}
			var table string
			tf := &breakeven.TableFormatter{}

			if target != "" {
				targetNet, err := decimal.NewFromString(target)
				if err != nil {
					return fmt.Errorf("invalid --target %q: %w", target, err)
				}
				contract, err := domain.ParseContractType(contractName)
				if err != nil {
					return err
				}
				if params.gross == "" {
					params.gross = "0"
				}
				p, err := params.parameters()
				if err != nil {
					return err
				}
				res, err := solver.Solve(cmd.Context(), breakeven.Request{
					Regime:     domain.Regime{Contract: contract, Year: taxYear},
					Parameters: p,
					TargetNet:  targetNet,
				})
				if err != nil {
					return err
				}
				result, table = res, tf.Format(res)
			} else {
				base, err := domain.ParseContractType(baseName)
				if err != nil {
					return err
				}
				p, err := params.parameters()
				if err != nil {
					return err
				}
				match, err := solver.MatchContracts(cmd.Context(), domain.Regime{Contract: base, Year: taxYear}, p)
				if err != nil {
					return err
				}
				result, table = match, tf.FormatMatch(match)
			}

			switch format {
			case "table":
				fmt.Fprint(cmd.OutOrStdout(), table)
			case "json":
				out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}
			return nil
		},
	}

	params.register(cmd)
	cmd.Flags().IntVarP(&year, "year", "y", 2022, "Tax year")
	cmd.Flags().StringVarP(&baseName, "base", "b", "CONTRACT_OF_EMPLOYMENT", "Base contract matched by the other contracts")
	cmd.Flags().StringVarP(&contractName, "type", "t", "B2B_SCALE", "Contract solved for --target")
	cmd.Flags().StringVar(&target, "target", "", "Yearly net salary to reach")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	return cmd
}
