package main

import (
	"fmt"

	"github.com/rgehrsitz/kalkulator/internal/config"
	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			cfg, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if cfg.RatesFile != "" {
				if _, err := parser.LoadRateTables(cfg.RatesFile); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scenario file %s is valid (%d scenarios)\n", args[0], len(cfg.Scenarios))
			return nil
		},
	}
}

func newRatesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rates [CONTRACT:YEAR...]",
		Short: "Print rate tables as YAML",
		Long: "Prints the rate tables in effect (built-in, or with --rates overrides applied) in the\n" +
			"format accepted by --rates. Without arguments every table is printed.",
		Example: "  kalkulator rates\n  kalkulator rates B2B_SCALE:2022 employment:2021",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.newEngine()
			if err != nil {
				return err
			}
			registry := engine.Registry

			regimes := registry.Regimes()
			if len(args) > 0 {
				regimes = regimes[:0]
				for _, arg := range args {
					regime, err := registry.ParseRegime(arg)
					if err != nil {
						return err
					}
					regimes = append(regimes, regime)
				}
			}

			tables := make([]domain.RateTable, 0, len(regimes))
			for _, regime := range regimes {
				rt, ok := registry.RateTable(regime)
				if !ok {
					return fmt.Errorf("no rate table for %s", regime)
				}
				tables = append(tables, rt)
			}
			return config.WriteRateTables(cmd.OutOrStdout(), tables)
		},
	}
}
