package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/samber/lo"
)

// ScenarioTransform is a composable what-if change to a salary scenario,
// such as a raise or a move from employment to B2B.
type ScenarioTransform interface {
	// Apply returns a modified copy of base; base itself is never changed.
	Apply(base *domain.Scenario) (*domain.Scenario, error)

	// Name returns a short identifier, e.g. "raise_gross".
	Name() string

	// Description returns a human-readable description of the change.
	Description() string

	// Validate checks the transform against base without applying it.
	Validate(base *domain.Scenario) error
}

// ApplyTransforms applies transforms in order, each receiving the output of
// the previous one. The name of the result records the applied transforms.
func ApplyTransforms(base *domain.Scenario, transforms []ScenarioTransform) (*domain.Scenario, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}

	current := copyScenario(base)
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}
	return current, nil
}

// Describe joins the descriptions of transforms
func Describe(transforms []ScenarioTransform) string {
	return strings.Join(lo.Map(transforms, func(t ScenarioTransform, _ int) string {
		return t.Description()
	}), "; ")
}

// Scenario holds only values, so a shallow copy shares nothing with s
func copyScenario(s *domain.Scenario) *domain.Scenario {
	c := *s
	return &c
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
