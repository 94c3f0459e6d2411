package config

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeParameters(t *testing.T) {
	body := `{"grossSalary": "9000", "costs": 250, "zus": true, "under26": false, "taxRate": 0.12, "is_it": true}`

	p, err := DecodeParameters([]byte(body))
	require.Error(t, err, "0.12 is not a selectable revenue rate")

	body = `{"grossSalary": "9000", "costs": 250, "zus": true, "taxRate": 0.17, "is_it": true}`
	p, err = DecodeParameters([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, "9000", p.GrossSalary.String())
	assert.Equal(t, "250", p.Costs.String())
	assert.Equal(t, "0.17", p.TaxRate.String())
	assert.True(t, p.SmallZUS)
	assert.True(t, p.IsIT)
	assert.False(t, p.IsMedic)
	assert.False(t, p.Under26)
}

func TestDecodeParameters_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields map[string]string
	}{
		{
			name:   "missing gross salary",
			body:   `{"costs": 100}`,
			fields: map[string]string{"grossSalary": "is required"},
		},
		{
			name:   "non-numeric salary",
			body:   `{"grossSalary": "abc"}`,
			fields: map[string]string{"grossSalary": "must be a number"},
		},
		{
			name: "wrong flag types",
			body: `{"grossSalary": 1000, "zus": "yes", "ipbox": 1}`,
			fields: map[string]string{
				"zus":   "must be a boolean",
				"ipbox": "must be a boolean",
			},
		},
		{
			name: "negative values",
			body: `{"grossSalary": -1, "costs": -5}`,
			fields: map[string]string{
				"grossSalary": "must be greater than or equal to 0",
				"costs":       "must be greater than or equal to 0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeParameters([]byte(tt.body))
			require.Error(t, err)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.fields, verrs.ToMap())
		})
	}
}

func TestDecodeParameters_Malformed(t *testing.T) {
	for _, body := range []string{``, `{`, `[1, 2]`, `null`, `"9000"`} {
		_, err := DecodeParameters([]byte(body))
		assert.ErrorIs(t, err, ErrMalformedBody, "body %q", body)
	}
}

func TestValidateParameters(t *testing.T) {
	valid := domain.Parameters{GrossSalary: decimal.NewFromInt(5000)}
	assert.NoError(t, ValidateParameters(valid))

	for _, rate := range domain.RevenueTaxRates() {
		p := valid
		p.TaxRate = rate
		assert.NoError(t, ValidateParameters(p), "rate %s", rate)
	}

	p := valid
	p.TaxRate = decimal.RequireFromString("0.2")
	err := ValidateParameters(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "taxRate")
}
