package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/kalkulator/internal/calculation"
	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	two  = decimal.NewFromInt(2)
	cent = decimal.New(1, -2)
)

// Solver finds gross salaries that produce a given net salary
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve binary searches the monthly gross salary, in whole grosze, whose
// yearly net salary is within the tolerance of the target. Net salary is not
// strictly monotonic where a health premium tier changes; in that case the
// closest gross from below is returned with Success false.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	if req.MaxGross.IsZero() {
		req.MaxGross = s.Options.MaxGross
	}

	lo, hi := req.MinGross, req.MaxGross
	hiLedger, err := s.evaluate(ctx, req, hi)
	if err != nil {
		return nil, err
	}
	if hiLedger.TotalNetSalary.LessThan(req.TargetNet) {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message: fmt.Sprintf("target net %s is not reachable below a gross salary of %s",
				req.TargetNet.StringFixed(2), hi.StringFixed(2)),
		}
	}
	loLedger, err := s.evaluate(ctx, req, lo)
	if err != nil {
		return nil, err
	}
	if loLedger.TotalNetSalary.GreaterThanOrEqual(req.TargetNet) {
		result := s.result(req, lo, loLedger, 0, "target met at the lower bound")
		result.Success = result.NetDiff.LessThanOrEqual(req.Tolerance)
		return result, nil
	}

	best, bestLedger := lo, loLedger
	for iterations := 1; iterations <= req.MaxIterations; iterations++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two).RoundBank(2)
		ledger, err := s.evaluate(ctx, req, mid)
		if err != nil {
			return nil, err
		}

		diff := ledger.TotalNetSalary.Sub(req.TargetNet)
		if diff.Abs().LessThanOrEqual(req.Tolerance) {
			return s.result(req, mid, ledger, iterations,
				fmt.Sprintf("converged to target net within %s zł", req.Tolerance.StringFixed(2))), nil
		}
		if diff.IsNegative() {
			lo = mid
			best, bestLedger = mid, ledger
		} else {
			hi = mid
		}

		if hi.Sub(lo).LessThanOrEqual(cent) {
			result := s.result(req, best, bestLedger, iterations, "gross salary bracketed to 0.01 zł")
			result.Success = false
			return result, nil
		}
	}

	result := s.result(req, best, bestLedger, req.MaxIterations,
		fmt.Sprintf("max iterations (%d) reached", req.MaxIterations))
	result.Success = false
	return result, nil
}

// MatchContracts computes base at params and solves, for every other contract
// of the same year, the gross salary paying the same yearly net salary
func (s *Solver) MatchContracts(ctx context.Context, base domain.Regime, params domain.Parameters) (*MatchResult, error) {
	baseLedger, err := s.CalcEngine.Calculate(ctx, base, params)
	if err != nil {
		return nil, err
	}

	match := &MatchResult{Base: baseLedger}
	for _, contract := range domain.AllContracts() {
		if contract == base.Contract {
			continue
		}
		result, err := s.Solve(ctx, Request{
			Regime:     domain.Regime{Contract: contract, Year: base.Year},
			Parameters: params,
			TargetNet:  baseLedger.TotalNetSalary,
		})
		if err != nil {
			return nil, &BreakEvenError{
				Operation: "match_contracts",
				Message:   fmt.Sprintf("failed to solve %s", contract),
				Cause:     err,
			}
		}
		match.Matches = append(match.Matches, *result)
	}
	return match, nil
}

func (s *Solver) evaluate(ctx context.Context, req Request, gross decimal.Decimal) (*domain.Ledger, error) {
	params := req.Parameters
	params.GrossSalary = gross
	ledger, err := s.CalcEngine.Calculate(ctx, req.Regime, params)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("failed to calculate %s at %s", req.Regime, gross.StringFixed(2)),
			Cause:     err,
		}
	}
	return ledger, nil
}

func (s *Solver) result(req Request, gross decimal.Decimal, ledger *domain.Ledger, iterations int, info string) *Result {
	return &Result{
		Request:         req,
		Success:         true,
		Iterations:      iterations,
		ConvergenceInfo: info,
		GrossSalary:     gross,
		Ledger:          ledger,
		NetDiff:         ledger.TotalNetSalary.Sub(req.TargetNet),
	}
}
