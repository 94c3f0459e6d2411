package compare

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testComparisonSet() *ComparisonSet {
	base := result("CONTRACT_OF_EMPLOYMENT", 76464, 12000, 8000, 6000)
	base.Regime = domain.Regime{Contract: domain.ContractEmployment, Year: domain.Year2022}
	alt := result("B2B_SCALE", 76245, 11348, 7000, 5000)
	alt.Regime = domain.Regime{Contract: domain.ContractB2BScale, Year: domain.Year2022}
	alt = NewMetricsCalculator().CalculateComparison(alt, base)

	compSet := &ComparisonSet{
		Year:               domain.Year2022,
		Parameters:         domain.Parameters{GrossSalary: decimal.NewFromInt(9000)},
		BaseScenarioName:   base.ScenarioName,
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{alt},
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(testComparisonSet())

	assert.Contains(t, out, "CONTRACT COMPARISON 2022")
	assert.Contains(t, out, "Gross Salary: 9000.00 zł")
	assert.Contains(t, out, "CONTRACT_OF_EMPLOYMENT (base)")
	assert.Contains(t, out, "B2B_SCALE")
	assert.Contains(t, out, "Net Salary:  -219.00 zł")
	assert.Contains(t, out, "Income Tax:  -1000.00 zł")
	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.Contains(t, out, "Lowest Tax: B2B_SCALE saves 1000.00 zł of income tax")
	assert.NotContains(t, out, "Rates:")
}

func TestTableFormatter_Format_BaseMarkerAlwaysShown(t *testing.T) {
	tests := []struct {
		name     string
		baseName string
		want     string
	}{
		{"default base contract", "CONTRACT_OF_EMPLOYMENT", "CONTRACT_OF_EMPLOYMENT (base)"},
		{"short name", "etat", "etat (base)"},
		{"name longer than the column", strings.Repeat("x", 60), strings.Repeat("x", 38) + "... (base)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compSet := testComparisonSet()
			compSet.BaseResult.ScenarioName = tt.baseName
			out := (&TableFormatter{}).Format(compSet)
			assert.Contains(t, out, tt.want)

			// rows and rules share one width
			lines := strings.Split(out, "\n")
			assert.Equal(t, len(lines[1]), len(strings.TrimRight(lines[5], " ")))
		})
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	compSet := testComparisonSet()
	compSet.AlternativeResults = nil
	compSet.Recommendations = nil

	out := (&TableFormatter{}).Format(compSet)
	assert.NotContains(t, out, "COMPARISON TO BASE")
	assert.NotContains(t, out, "RECOMMENDATIONS")
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	out := (&TableFormatter{}).FormatCompact(testComparisonSet())
	assert.Equal(t, "Base: CONTRACT_OF_EMPLOYMENT | B2B_SCALE: -219 zł", out)
}

func TestTableFormatter_Truncate(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "short", tf.truncate("short", 10))
	assert.Equal(t, "a very ...", tf.truncate("a very long scenario name", 10))
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(testComparisonSet())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Scenario,Type,Contract,Year,"))
	assert.Equal(t, "CONTRACT_OF_EMPLOYMENT,base,CONTRACT_OF_EMPLOYMENT,2022,76464.00,0.00,12000.00,8000.00,6000.00,0.00,0.00,0.00", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "B2B_SCALE,alternative,B2B_SCALE,2022,76245.00,"))
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(testComparisonSet())
		require.NoError(t, err)

		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, "CONTRACT_OF_EMPLOYMENT", doc["baseScenarioName"])
		assert.Len(t, doc["alternativeResults"], 1)
		assert.Equal(t, pretty, strings.Contains(out, "\n  "))
		assert.NotEmpty(t, doc["id"])
		assert.NotEmpty(t, doc["generatedAt"])
	}
}

func TestJSONFormatter_Format_Ranking(t *testing.T) {
	out, err := (&JSONFormatter{}).Format(testComparisonSet())
	require.NoError(t, err)

	var report struct {
		ID      string      `json:"id"`
		Ranking []RankEntry `json:"ranking"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.ID, 36)
	assert.Equal(t, []RankEntry{
		{Rank: 1, ScenarioName: "CONTRACT_OF_EMPLOYMENT", NetPerYear: "76464.00", GapToBest: "0.00"},
		{Rank: 2, ScenarioName: "B2B_SCALE", NetPerYear: "76245.00", GapToBest: "219.00"},
	}, report.Ranking)
}

func TestJSONFormatter_Format_NilSet(t *testing.T) {
	_, err := (&JSONFormatter{}).Format(nil)
	assert.Error(t, err)
}
