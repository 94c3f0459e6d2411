package config

import (
	"strings"

	"github.com/rgehrsitz/kalkulator/internal/domain"
)

// ValidationError is a problem with one input field
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors collects every problem found in one input
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// ToMap returns field -> message, the shape used in API error details
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

func (v *ValidationErrors) add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// errOrNil keeps a nil ValidationErrors from becoming a non-nil error
func (v ValidationErrors) errOrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// ValidateParameters checks the ranges of a parameter bag. Field names are the
// JSON wire names.
func ValidateParameters(p domain.Parameters) error {
	var errs ValidationErrors
	if p.GrossSalary.IsNegative() {
		errs.add("grossSalary", "must be greater than or equal to 0")
	}
	if p.Costs.IsNegative() {
		errs.add("costs", "must be greater than or equal to 0")
	}
	if p.TaxRate.IsNegative() {
		errs.add("taxRate", "must be greater than or equal to 0")
	} else if !p.TaxRate.IsZero() && !domain.IsRevenueTaxRate(p.TaxRate) {
		errs.add("taxRate", "must be one of 0.17, 0.15, 0.125, 0.10, 0.085, 0.055, 0.03, 0.02")
	}
	return errs.errOrNil()
}
