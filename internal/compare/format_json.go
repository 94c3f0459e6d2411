package compare

import (
	"fmt"
	"sort"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ComparisonReport is the JSON document written by JSONFormatter. The
// comparison set fields are inlined next to the report metadata.
type ComparisonReport struct {
	ID          uuid.UUID `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`
	*ComparisonSet
	Ranking []RankEntry `json:"ranking"`
}

// RankEntry places one contract in the comparison by yearly net salary
type RankEntry struct {
	Rank         int    `json:"rank"`
	ScenarioName string `json:"scenarioName"`
	NetPerYear   string `json:"netPerYear"`
	GapToBest    string `json:"gapToBest"`
}

// NewComparisonReport ranks the set and stamps it with a fresh report id
func NewComparisonReport(compSet *ComparisonSet) ComparisonReport {
	all := compSet.All()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].TotalNetSalary.GreaterThan(all[j].TotalNetSalary)
	})

	ranking := make([]RankEntry, 0, len(all))
	for i, r := range all {
		ranking = append(ranking, RankEntry{
			Rank:         i + 1,
			ScenarioName: r.ScenarioName,
			NetPerYear:   r.TotalNetSalary.StringFixed(2),
			GapToBest:    all[0].TotalNetSalary.Sub(r.TotalNetSalary).StringFixed(2),
		})
	}

	return ComparisonReport{
		ID:            uuid.New(),
		GeneratedAt:   time.Now().UTC(),
		ComparisonSet: compSet,
		Ranking:       ranking,
	}
}

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format renders the comparison report
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	if compSet == nil {
		return "", fmt.Errorf("format comparison: empty comparison set")
	}

	report := NewComparisonReport(compSet)
	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v interface{}) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}

	data, err := marshal(report)
	if err != nil {
		return "", fmt.Errorf("format comparison %s: %w", report.ID, err)
	}
	return string(data), nil
}
