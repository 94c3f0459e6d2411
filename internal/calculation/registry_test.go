package calculation

import (
	"testing"

	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()

	regimes := registry.Regimes()
	require.Len(t, regimes, 8)
	assert.Equal(t, domain.Regime{Contract: domain.ContractEmployment, Year: domain.Year2021}, regimes[0])
	assert.Equal(t, domain.Regime{Contract: domain.ContractB2BRevenue, Year: domain.Year2022}, regimes[7])

	for _, regime := range regimes {
		rt, ok := registry.RateTable(regime)
		require.True(t, ok, regime.String())
		assert.NoError(t, ValidateRateTable(rt), regime.String())
	}
}

func TestRegistry_Create(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		regime   domain.Regime
		expected Calculator
	}{
		{domain.Regime{Contract: domain.ContractEmployment, Year: domain.Year2022}, &EmploymentCalculator{}},
		{domain.Regime{Contract: domain.ContractB2BScale, Year: domain.Year2021}, &ScaleCalculator{}},
		{domain.Regime{Contract: domain.ContractB2BFlat, Year: domain.Year2022}, &FlatCalculator{}},
		{domain.Regime{Contract: domain.ContractB2BRevenue, Year: domain.Year2021}, &RevenueCalculator{}},
	}

	for _, tt := range tests {
		t.Run(tt.regime.String(), func(t *testing.T) {
			calc, err := registry.Create(tt.regime, gross("9000"))
			require.NoError(t, err)
			assert.IsType(t, tt.expected, calc)
			assert.Equal(t, tt.regime, calc.Regime())
		})
	}

	_, err := registry.Create(domain.Regime{Contract: domain.ContractB2BFlat, Year: 2023}, gross("9000"))
	assert.ErrorIs(t, err, ErrUnsupportedRegime)

	_, err = registry.Create(domain.Regime{Contract: "UMOWA_ZLECENIE", Year: domain.Year2022}, gross("9000"))
	assert.ErrorIs(t, err, ErrUnsupportedRegime)
}

func TestRegistry_SetRateTable(t *testing.T) {
	registry := NewRegistry()

	custom := flatRates2022()
	custom.IncomeTax.Rate = dec("0.20")
	require.NoError(t, registry.SetRateTable(custom))

	rt, ok := registry.RateTable(custom.Regime())
	require.True(t, ok)
	assert.True(t, rt.IncomeTax.Rate.Equal(dec("0.20")))

	// built-in tables are unaffected by the override
	builtin, ok := BuiltinRateTable(custom.Regime())
	require.True(t, ok)
	assert.True(t, builtin.IncomeTax.Rate.Equal(dec("0.19")))

	broken := employmentRates2022()
	broken.IncomeTax.Brackets[2].PreviousLevelTax = dec("20400")
	err := registry.SetRateTable(broken)
	assert.ErrorIs(t, err, ErrInvalidBracketTable)
}

func TestRegistry_ParseRegime(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		spec     string
		expected domain.Regime
		wantErr  bool
	}{
		{"B2B_SCALE:2022", domain.Regime{Contract: domain.ContractB2BScale, Year: domain.Year2022}, false},
		{"employment:2021", domain.Regime{Contract: domain.ContractEmployment, Year: domain.Year2021}, false},
		{"b2b-line: 2021", domain.Regime{Contract: domain.ContractB2BFlat, Year: domain.Year2021}, false},
		{"B2B_SCALE", domain.Regime{}, true},
		{"B2B_SCALE:twenty", domain.Regime{}, true},
		{"B2B_SCALE:2020", domain.Regime{}, true},
		{"UZ:2022", domain.Regime{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			regime, err := registry.ParseRegime(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, regime)
		})
	}
}
