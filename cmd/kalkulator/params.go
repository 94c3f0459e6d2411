package main

import (
	"fmt"

	"github.com/rgehrsitz/kalkulator/internal/config"
	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// parameterFlags are the salary parameters accepted on the command line
type parameterFlags struct {
	gross    string
	costs    string
	taxRate  string
	smallZUS bool
	ppk      bool
	under26  bool
	ipbox    bool
	isIT     bool
	isMedic  bool
}

func (p *parameterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&p.gross, "gross", "g", "", "Monthly gross salary (or invoice amount)")
	flags.StringVar(&p.costs, "costs", "0", "Monthly business costs")
	flags.StringVar(&p.taxRate, "tax-rate", "", "Revenue tax rate (0.17, 0.15, 0.125, 0.10, 0.085, 0.055, 0.03, 0.02)")
	flags.BoolVar(&p.smallZUS, "small-zus", false, "Use the reduced (small) ZUS contribution")
	flags.BoolVar(&p.ppk, "ppk", false, "Participate in PPK")
	flags.BoolVar(&p.under26, "under26", false, "Taxpayer is under 26 (employment income tax exemption)")
	flags.BoolVar(&p.ipbox, "ipbox", false, "Apply the IP-Box rate (flat tax)")
	flags.BoolVar(&p.isIT, "it", false, "IT services (preferential revenue tax rate)")
	flags.BoolVar(&p.isMedic, "medic", false, "Medical services (preferential revenue tax rate)")
}

// parameters parses and validates the flags
func (p *parameterFlags) parameters() (domain.Parameters, error) {
	if p.gross == "" {
		return domain.Parameters{}, fmt.Errorf("--gross is required")
	}
	gross, err := decimal.NewFromString(p.gross)
	if err != nil {
		return domain.Parameters{}, fmt.Errorf("invalid --gross %q: %w", p.gross, err)
	}
	costs, err := decimal.NewFromString(p.costs)
	if err != nil {
		return domain.Parameters{}, fmt.Errorf("invalid --costs %q: %w", p.costs, err)
	}
	taxRate := decimal.Zero
	if p.taxRate != "" {
		if taxRate, err = decimal.NewFromString(p.taxRate); err != nil {
			return domain.Parameters{}, fmt.Errorf("invalid --tax-rate %q: %w", p.taxRate, err)
		}
	}

	params := domain.Parameters{
		GrossSalary: gross,
		Costs:       costs,
		TaxRate:     taxRate,
		SmallZUS:    p.smallZUS,
		PPK:         p.ppk,
		Under26:     p.under26,
		IPBox:       p.ipbox,
		IsIT:        p.isIT,
		IsMedic:     p.isMedic,
	}
	if err := config.ValidateParameters(params); err != nil {
		return domain.Parameters{}, err
	}
	return params, nil
}

// parseYear validates an optional --year flag; zero means every year
func parseYear(year int) (domain.TaxYear, error) {
	if year == 0 {
		return 0, nil
	}
	return domain.ParseTaxYear(year)
}
