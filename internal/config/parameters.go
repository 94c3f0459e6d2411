package config

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrMalformedBody is returned when a parameter bag is not a JSON object
var ErrMalformedBody = errors.New("malformed parameter body")

// DecodeParameters reads a JSON parameter bag as posted by the web form.
// Numbers may be JSON numbers or numeric strings; flags must be JSON booleans.
// Type and range problems are reported together as ValidationErrors.
func DecodeParameters(data []byte) (domain.Parameters, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Parameters{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if raw == nil {
		return domain.Parameters{}, fmt.Errorf("%w: expected a JSON object", ErrMalformedBody)
	}

	var p domain.Parameters
	var errs ValidationErrors

	if _, ok := raw["grossSalary"]; !ok {
		errs.add("grossSalary", "is required")
	}
	decodeNumber(raw, "grossSalary", &p.GrossSalary, &errs)
	decodeNumber(raw, "costs", &p.Costs, &errs)
	decodeNumber(raw, "taxRate", &p.TaxRate, &errs)

	decodeFlag(raw, "zus", &p.SmallZUS, &errs)
	decodeFlag(raw, "ppk", &p.PPK, &errs)
	decodeFlag(raw, "under26", &p.Under26, &errs)
	decodeFlag(raw, "ipbox", &p.IPBox, &errs)
	decodeFlag(raw, "is_it", &p.IsIT, &errs)
	decodeFlag(raw, "is_medic", &p.IsMedic, &errs)

	if len(errs) > 0 {
		return domain.Parameters{}, errs
	}
	if err := ValidateParameters(p); err != nil {
		return domain.Parameters{}, err
	}
	return p, nil
}

func decodeNumber(raw map[string]json.RawMessage, field string, dst *decimal.Decimal, errs *ValidationErrors) {
	value, ok := raw[field]
	if !ok {
		return
	}
	if err := json.Unmarshal(value, dst); err != nil {
		errs.add(field, "must be a number")
	}
}

func decodeFlag(raw map[string]json.RawMessage, field string, dst *bool, errs *ValidationErrors) {
	value, ok := raw[field]
	if !ok {
		return
	}
	if err := json.Unmarshal(value, dst); err != nil {
		errs.add(field, "must be a boolean")
	}
}
