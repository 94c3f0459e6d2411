package tui

import (
	"github.com/rgehrsitz/kalkulator/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneScenarios Scene = iota
	SceneLedger
)

func (s Scene) String() string {
	switch s {
	case SceneScenarios:
		return "Scenarios"
	case SceneLedger:
		return "Ledger"
	default:
		return "Unknown"
	}
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals the scenario file has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// CalculationCompleteMsg carries both years of one scenario
type CalculationCompleteMsg struct {
	ScenarioName string
	Year         domain.TaxYear // year to show first; zero shows the oldest
	Results      *domain.YearComparison
	Err          error
}
