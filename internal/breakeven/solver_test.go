package breakeven

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/kalkulator/internal/calculation"
	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func params(gross, costs string) domain.Parameters {
	return domain.Parameters{
		GrossSalary: decimal.RequireFromString(gross),
		Costs:       decimal.RequireFromString(costs),
	}
}

func TestNewDefaultSolver(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	solver := NewDefaultSolver(engine)

	assert.Same(t, engine, solver.CalcEngine)
	assert.Equal(t, DefaultSolverOptions().MaxIterations, solver.Options.MaxIterations)
	assert.True(t, solver.Options.Tolerance.Equal(decimal.NewFromInt(1)))
}

func TestSolve_RecoversKnownGross(t *testing.T) {
	tests := []struct {
		name   string
		regime domain.Regime
		costs  string
		target string
	}{
		{"employment 2021", domain.Regime{Contract: domain.ContractEmployment, Year: domain.Year2021}, "0", "76506.00"},
		{"employment 2022", domain.Regime{Contract: domain.ContractEmployment, Year: domain.Year2022}, "0", "76464.24"},
		{"scale 2021", domain.Regime{Contract: domain.ContractB2BScale, Year: domain.Year2021}, "250", "76402.91"},
		{"scale 2022", domain.Regime{Contract: domain.ContractB2BScale, Year: domain.Year2022}, "250", "76244.98"},
		{"flat 2022", domain.Regime{Contract: domain.ContractB2BFlat, Year: domain.Year2022}, "250", "71123.04"},
	}

	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := solver.Solve(context.Background(), Request{
				Regime:     tt.regime,
				Parameters: params("0", tt.costs),
				TargetNet:  decimal.RequireFromString(tt.target),
			})
			require.NoError(t, err)
			assert.True(t, result.Success, result.ConvergenceInfo)
			assert.InDelta(t, 9000, result.GrossSalary.InexactFloat64(), 1)
			assert.True(t, result.NetDiff.Abs().LessThanOrEqual(decimal.NewFromInt(1)))
			assert.Positive(t, result.Iterations)
		})
	}
}

func TestSolve_LowerBound(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	result, err := solver.Solve(context.Background(), Request{
		Regime:     domain.Regime{Contract: domain.ContractEmployment, Year: domain.Year2022},
		Parameters: params("0", "0"),
		TargetNet:  decimal.Zero,
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.GrossSalary.IsZero())
	assert.Equal(t, 0, result.Iterations)
}

func TestSolve_Errors(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	employment := domain.Regime{Contract: domain.ContractEmployment, Year: domain.Year2022}

	tests := []struct {
		name string
		req  Request
		msg  string
	}{
		{"negative target", Request{Regime: employment, TargetNet: decimal.NewFromInt(-1)}, "cannot be negative"},
		{"inverted bounds", Request{Regime: employment, TargetNet: decimal.NewFromInt(1000), MinGross: decimal.NewFromInt(5000), MaxGross: decimal.NewFromInt(4000)}, "must be below"},
		{"unreachable", Request{Regime: employment, TargetNet: decimal.NewFromInt(1_000_000), MaxGross: decimal.NewFromInt(10000)}, "not reachable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := solver.Solve(context.Background(), tt.req)
			require.Error(t, err)
			var beErr *BreakEvenError
			assert.ErrorAs(t, err, &beErr)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	t.Run("unsupported regime", func(t *testing.T) {
		_, err := solver.Solve(context.Background(), Request{
			Regime:    domain.Regime{Contract: domain.ContractB2BFlat, Year: 2023},
			TargetNet: decimal.NewFromInt(1000),
		})
		assert.True(t, errors.Is(err, calculation.ErrUnsupportedRegime))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := solver.Solve(ctx, Request{Regime: employment, TargetNet: decimal.NewFromInt(50000)})
		assert.Error(t, err)
	})
}

func TestMatchContracts(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	base := domain.Regime{Contract: domain.ContractEmployment, Year: domain.Year2022}

	match, err := solver.MatchContracts(context.Background(), base, params("9000", "250"))
	require.NoError(t, err)
	assert.Equal(t, "76464.24", match.Base.TotalNetSalary.StringFixed(2))
	require.Len(t, match.Matches, 3)

	contracts := []domain.ContractType{domain.ContractB2BScale, domain.ContractB2BFlat, domain.ContractB2BRevenue}
	for i, m := range match.Matches {
		assert.Equal(t, contracts[i], m.Request.Regime.Contract)
		assert.Equal(t, domain.Year2022, m.Request.Regime.Year)
		assert.True(t, m.GrossSalary.IsPositive())
	}

	// B2B scale 2022 at 9000 nets 76244.98, slightly below the employment total
	assert.True(t, match.Matches[0].GrossSalary.GreaterThan(decimal.NewFromInt(9000)))
}

func TestFormatters(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	match, err := solver.MatchContracts(context.Background(),
		domain.Regime{Contract: domain.ContractEmployment, Year: domain.Year2022}, params("9000", "250"))
	require.NoError(t, err)

	tf := &TableFormatter{}
	out := tf.FormatMatch(match)
	assert.Contains(t, out, "EQUIVALENT GROSS SALARY 2022")
	assert.Contains(t, out, "76464.24")
	assert.Contains(t, out, "B2B_FLAT")

	single := tf.Format(&match.Matches[0])
	assert.Contains(t, single, "BREAK-EVEN GROSS SALARY")
	assert.Contains(t, single, "B2B_SCALE/2022")

	js, err := (&JSONFormatter{}).Format(match)
	require.NoError(t, err)
	assert.Contains(t, js, `"matches"`)
	assert.Contains(t, js, `"gross_salary"`)
}
