package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.loading = false
		m.config = msg.Config
		m.cursor = 0
		return m, nil

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.selectedScenario = msg.ScenarioName
		m.results = msg.Results
		m.currentScene = SceneLedger
		index := 0
		for i, ledger := range msg.Results.Ledgers {
			if ledger.Regime.Year == msg.Year {
				index = i
			}
		}
		return m.showYear(index), nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}

	if m.err != nil {
		if msg.String() == "esc" {
			m.err = nil
		}
		return m, nil
	}

	switch m.currentScene {
	case SceneScenarios:
		return m.updateScenarios(msg)
	case SceneLedger:
		return m.updateLedger(msg)
	}
	return m, nil
}

func (m Model) updateScenarios(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.config == nil || len(m.config.Scenarios) == 0 {
		return m, nil
	}
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.config.Scenarios)-1 {
			m.cursor++
		}
	case "enter":
		m.loading = true
		m.loadingMessage = "Calculating " + m.config.Scenarios[m.cursor].Name + "..."
		return m, calculateScenarioCmd(m.calcEngine, m.config.Scenarios[m.cursor])
	}
	return m, nil
}

func (m Model) updateLedger(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.results != nil && len(m.results.Ledgers) > 0 {
			return m.showYear((m.yearIndex + 1) % len(m.results.Ledgers)), nil
		}
		return m, nil
	case "shift+tab":
		if m.results != nil && len(m.results.Ledgers) > 0 {
			n := len(m.results.Ledgers)
			return m.showYear((m.yearIndex + n - 1) % n), nil
		}
		return m, nil
	case "esc", "backspace":
		m.currentScene = SceneScenarios
		return m, nil
	}

	var cmd tea.Cmd
	m.ledgerTable, cmd = m.ledgerTable.Update(msg)
	return m, cmd
}
