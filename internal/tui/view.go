package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/kalkulator/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.loading:
		content = SubtitleStyle.Render(m.loadingMessage)
	case m.err != nil:
		content = ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" + StatusBarStyle.Render("esc: dismiss • q: quit")
	case m.currentScene == SceneLedger:
		content = m.renderLedger()
	default:
		content = m.renderScenarios()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Kalkulator wynagrodzeń 2021 / 2022")
	breadcrumb := m.currentScene.String()
	if m.currentScene == SceneLedger && m.selectedScenario != "" {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.selectedScenario)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb), "")
}

func (m Model) renderStatusBar() string {
	var keys string
	switch m.currentScene {
	case SceneLedger:
		keys = "tab: switch year • ↑/↓: scroll • esc: back • q: quit"
	default:
		keys = "↑/↓: select • enter: calculate • q: quit"
	}
	return "\n" + StatusBarStyle.Render(keys)
}

func (m Model) renderScenarios() string {
	if m.config == nil || len(m.config.Scenarios) == 0 {
		return SubtitleStyle.Render("No scenarios loaded")
	}

	var sb strings.Builder
	for i, s := range m.config.Scenarios {
		line := fmt.Sprintf("%s  %s  %s", s.Name, s.Contract, FormatCurrency(s.Parameters.GrossSalary))
		if i == m.cursor {
			sb.WriteString(SelectedItemStyle.Render("> " + line))
		} else {
			sb.WriteString(UnselectedItemStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) renderLedger() string {
	if m.results == nil {
		return ""
	}

	tabs := make([]string, 0, len(m.results.Ledgers))
	for i, ledger := range m.results.Ledgers {
		label := fmt.Sprintf("%d", ledger.Regime.Year)
		if i == m.yearIndex {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(label))
		}
	}

	var summary strings.Builder
	for _, ledger := range m.results.Ledgers {
		summary.WriteString(MetricLabelStyle.Render(fmt.Sprintf("Netto %d: ", ledger.Regime.Year)))
		summary.WriteString(MetricValueStyle.Render(FormatCurrency(ledger.TotalNetSalary)))
		summary.WriteString("   ")
	}
	if len(m.results.Ledgers) > 1 {
		change := m.results.Change
		summary.WriteString("\n")
		summary.WriteString(MetricLabelStyle.Render("Zmiana: "))
		summary.WriteString(ChangeStyle(change.Direction).Render(
			fmt.Sprintf("%s (%s)", output.DescribeChange(change), FormatCurrency(change.Difference))))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...),
		m.ledgerTable.View(),
		"",
		summary.String(),
	)
}
