package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/kalkulator/internal/calculation"
	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *domain.Configuration {
	return &domain.Configuration{
		Scenarios: []domain.Scenario{
			{Name: "etat", Contract: domain.ContractEmployment, Parameters: domain.Parameters{GrossSalary: decimal.NewFromInt(9000)}},
			{Name: "skala", Contract: domain.ContractB2BScale, Year: domain.Year2022, Parameters: domain.Parameters{
				GrossSalary: decimal.NewFromInt(9000),
				Costs:       decimal.NewFromInt(250),
			}},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func loadedModel(t *testing.T) Model {
	m := NewModel("", calculation.NewCalculationEngine())
	m, _ = update(t, m, ConfigLoadedMsg{Config: testConfig()})
	return m
}

func TestNewModel(t *testing.T) {
	m := NewModel("scenarios.yaml", nil)
	assert.NotNil(t, m.calcEngine)
	assert.True(t, m.loading)
	assert.NotNil(t, m.Init())

	empty := NewModel("", nil)
	assert.False(t, empty.loading)
	assert.Nil(t, empty.Init())
}

func TestUpdate_ScenarioNavigation(t *testing.T) {
	m := loadedModel(t)
	assert.Equal(t, SceneScenarios, m.currentScene)
	assert.Contains(t, m.View(), "> etat")

	m, _ = update(t, m, key("down"))
	assert.Equal(t, 1, m.cursor)
	m, _ = update(t, m, key("down"))
	assert.Equal(t, 1, m.cursor, "cursor stays on the last scenario")
	m, _ = update(t, m, key("k"))
	assert.Equal(t, 0, m.cursor)
}

func TestUpdate_CalculateAndSwitchYear(t *testing.T) {
	m := loadedModel(t)
	m, _ = update(t, m, key("down"))

	m, cmd := update(t, m, key("enter"))
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	msg := cmd()
	done, ok := msg.(CalculationCompleteMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Equal(t, "skala", done.ScenarioName)

	m, _ = update(t, m, msg)
	assert.False(t, m.loading)
	assert.Equal(t, SceneLedger, m.currentScene)
	require.NotNil(t, m.currentLedger())
	assert.Equal(t, domain.Year2022, m.currentLedger().Regime.Year, "scenario year is shown first")
	assert.Len(t, m.ledgerTable.Rows(), 12)
	assert.Equal(t, "2022-01-31", m.ledgerTable.Rows()[0][0])

	view := m.View()
	assert.Contains(t, view, "Netto 2021")
	assert.Contains(t, view, "76402.91 zł")
	assert.Contains(t, view, "76244.98 zł")

	m, _ = update(t, m, key("tab"))
	assert.Equal(t, domain.Year2021, m.currentLedger().Regime.Year)
	assert.Equal(t, "2021-01-31", m.ledgerTable.Rows()[0][0])

	m, _ = update(t, m, key("esc"))
	assert.Equal(t, SceneScenarios, m.currentScene)
}

func TestUpdate_Errors(t *testing.T) {
	m := loadedModel(t)
	m, _ = update(t, m, ErrorMsg{Err: errors.New("boom")})
	assert.Contains(t, m.View(), "Error: boom")

	m, _ = update(t, m, key("esc"))
	assert.Nil(t, m.err)

	m, _ = update(t, m, CalculationCompleteMsg{Err: errors.New("failed")})
	assert.Equal(t, SceneScenarios, m.currentScene)
	assert.EqualError(t, m.err, "failed")
}

func TestUpdate_Quit(t *testing.T) {
	m := loadedModel(t)
	_, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_WindowSize(t *testing.T) {
	m := loadedModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}
