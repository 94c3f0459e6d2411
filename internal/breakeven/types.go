package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
)

// Request asks for the monthly gross salary at which a regime yields
// TargetNet of total net salary over the year
type Request struct {
	Regime     domain.Regime     `json:"regime"`
	Parameters domain.Parameters `json:"parameters"` // GrossSalary is ignored
	TargetNet  decimal.Decimal   `json:"target_net"`

	// Search bounds for the monthly gross salary; zero values use the solver defaults
	MinGross decimal.Decimal `json:"min_gross,omitempty"`
	MaxGross decimal.Decimal `json:"max_gross,omitempty"`

	MaxIterations int             `json:"-"`
	Tolerance     decimal.Decimal `json:"-"` // on the yearly net salary
}

// Validate checks that the request can be searched
func (r *Request) Validate() error {
	if r.TargetNet.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "target net salary cannot be negative",
		}
	}
	if r.MinGross.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "min gross salary cannot be negative",
		}
	}
	if !r.MaxGross.IsZero() && r.MinGross.GreaterThanOrEqual(r.MaxGross) {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "min gross salary must be below max gross salary",
		}
	}
	return nil
}

// Result is the outcome of one search
type Result struct {
	Request         Request `json:"request"`
	Success         bool    `json:"success"`
	Iterations      int     `json:"iterations"`
	ConvergenceInfo string  `json:"convergence_info"`

	GrossSalary decimal.Decimal `json:"gross_salary"`
	Ledger      *domain.Ledger  `json:"ledger"`
	// NetDiff is the achieved yearly net minus the target
	NetDiff decimal.Decimal `json:"net_diff"`
}

// MatchResult holds, for one base regime and gross salary, the gross salary
// every other contract of the year needs to pay the same yearly net
type MatchResult struct {
	Base    *domain.Ledger `json:"base"`
	Matches []Result       `json:"matches"`
}

// SolverOptions configures the search
type SolverOptions struct {
	Tolerance     decimal.Decimal // yearly net salary
	MaxIterations int
	MaxGross      decimal.Decimal // default upper bound for the monthly gross salary
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 60,
		MaxGross:      decimal.NewFromInt(1_000_000),
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
