package main

import (
	"fmt"

	"github.com/rgehrsitz/kalkulator/internal/compare"
	"github.com/rgehrsitz/kalkulator/internal/config"
	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/rgehrsitz/kalkulator/internal/transform"
	"github.com/spf13/cobra"
)

func newWhatIfCmd(opts *globalOptions) *cobra.Command {
	var (
		params       parameterFlags
		contractName string
		year         int
		format       string
		inputFile    string
		scenarioName string
		specs        []string
	)

	cmd := &cobra.Command{
		Use:   "whatif",
		Short: "Compare a scenario with a modified copy of itself",
		Long: "Applies transforms to a base scenario and compares the result with the base.\n" +
			"Available transforms: " + fmt.Sprint(transform.NewTransformRegistry().List()),
		Example: "  kalkulator whatif --gross 9000 -T set_contract:contract=B2B_FLAT -T set_costs:amount=250\n" +
			"  kalkulator whatif -i scenarios.yaml --scenario etat -T raise_gross:percent=10",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(specs) == 0 {
				return fmt.Errorf("at least one --transform is required")
			}
			transforms, err := transform.NewTransformRegistry().ParseTransformSpecs(specs)
			if err != nil {
				return err
			}
			taxYear, err := domain.ParseTaxYear(year)
			if err != nil {
				return err
			}

			var base domain.Scenario
			ratesFile := opts.ratesFile
			if inputFile != "" {
				cfg, err := config.NewInputParser().LoadFromFile(inputFile)
				if err != nil {
					return err
				}
				if ratesFile == "" {
					ratesFile = cfg.RatesFile
				}
				base = cfg.Scenarios[0]
				if scenarioName != "" {
					found := false
					for _, s := range cfg.Scenarios {
						if s.Name == scenarioName {
							base, found = s, true
							break
						}
					}
					if !found {
						return fmt.Errorf("scenario %q not found in %s", scenarioName, inputFile)
					}
				}
			} else {
				contract, err := domain.ParseContractType(contractName)
				if err != nil {
					return err
				}
				p, err := params.parameters()
				if err != nil {
					return err
				}
				base = domain.Scenario{Name: "base", Contract: contract, Parameters: p}
			}

			modified, err := transform.ApplyTransforms(&base, transforms)
			if err != nil {
				return err
			}
			if err := config.ValidateParameters(modified.Parameters); err != nil {
				return err
			}
			modified.Name = "what-if"

			engine, err := opts.newEngineWithRates(ratesFile)
			if err != nil {
				return err
			}
			whatIf := &domain.Configuration{Scenarios: []domain.Scenario{base, *modified}}
			compSet, err := compare.NewCompareEngine(engine).CompareScenarios(cmd.Context(), whatIf, taxYear, base.Name, nil)
			if err != nil {
				return err
			}

			out, err := formatComparison(compSet, format)
			if err != nil {
				return err
			}
			if format == "table" || format == "console" {
				fmt.Fprintf(cmd.OutOrStdout(), "What-if: %s\n\n", transform.Describe(transforms))
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	params.register(cmd)
	cmd.Flags().StringVarP(&contractName, "type", "t", "CONTRACT_OF_EMPLOYMENT", "Base contract type")
	cmd.Flags().IntVarP(&year, "year", "y", 2022, "Tax year for scenarios without one")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Scenario file")
	cmd.Flags().StringVar(&scenarioName, "scenario", "", "Base scenario name (default: first scenario)")
	cmd.Flags().StringArrayVarP(&specs, "transform", "T", nil, "Transform spec name:key=value,... (repeatable)")
	return cmd
}
