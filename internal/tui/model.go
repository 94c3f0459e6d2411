package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/kalkulator/internal/calculation"
	"github.com/rgehrsitz/kalkulator/internal/config"
	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/rgehrsitz/kalkulator/internal/output"
)

// Model represents the entire application state
type Model struct {
	currentScene Scene

	// Terminal dimensions
	width  int
	height int

	configPath string
	config     *domain.Configuration
	calcEngine *calculation.CalculationEngine

	// Scenario list cursor
	cursor int

	// Ledger view
	selectedScenario string
	results          *domain.YearComparison
	yearIndex        int
	ledgerTable      table.Model

	err            error
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(configPath string, engine *calculation.CalculationEngine) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	t := table.New(
		table.WithColumns(ledgerColumns()),
		table.WithFocused(true),
		table.WithHeight(calculation.MonthsInYear+1),
	)
	t.SetStyles(tableStyles())

	return Model{
		currentScene:   SceneScenarios,
		configPath:     configPath,
		calcEngine:     engine,
		ledgerTable:    t,
		width:          100,
		height:         30,
		loading:        configPath != "",
		loadingMessage: "Loading scenarios...",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.configPath == "" {
		return nil
	}
	return loadConfigCmd(m.configPath)
}

// loadConfigCmd returns a command that loads the scenario file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// calculateScenarioCmd returns a command that computes both years of a scenario
func calculateScenarioCmd(engine *calculation.CalculationEngine, scenario domain.Scenario) tea.Cmd {
	return func() tea.Msg {
		results, err := engine.CalculateYears(context.Background(), scenario.Contract, scenario.Parameters)
		return CalculationCompleteMsg{
			ScenarioName: scenario.Name,
			Year:         scenario.Year,
			Results:      results,
			Err:          err,
		}
	}
}

func ledgerColumns() []table.Column {
	widths := []int{12, 12, 10, 10, 10, 10, 12}
	labels := []string{"Miesiąc", "Brutto", "Koszty", "Dochód", "Zdrowotna", "Podatek", "Netto"}
	cols := make([]table.Column, len(labels))
	for i, label := range labels {
		cols[i] = table.Column{Title: label, Width: widths[i]}
	}
	return cols
}

func ledgerRows(ledger *domain.Ledger) []table.Row {
	rows := make([]table.Row, 0, len(ledger.Rows))
	for _, r := range ledger.Rows {
		rows = append(rows, table.Row{
			output.FormatMonth(r.Month),
			r.GrossSalary.StringFixed(2),
			r.Costs.StringFixed(2),
			r.Income.StringFixed(2),
			r.HealthPremium.StringFixed(2),
			r.IncomeTax.StringFixed(2),
			r.NetSalary.StringFixed(2),
		})
	}
	return rows
}

// currentLedger returns the ledger of the selected year, or nil
func (m Model) currentLedger() *domain.Ledger {
	if m.results == nil || m.yearIndex < 0 || m.yearIndex >= len(m.results.Ledgers) {
		return nil
	}
	return m.results.Ledgers[m.yearIndex]
}

// showYear points the table at the ledger of yearIndex
func (m Model) showYear(index int) Model {
	m.yearIndex = index
	if ledger := m.currentLedger(); ledger != nil {
		m.ledgerTable.SetRows(ledgerRows(ledger))
		m.ledgerTable.GotoTop()
	}
	return m
}
