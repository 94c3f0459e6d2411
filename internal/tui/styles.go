package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/kalkulator/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorSuccess = lipgloss.Color("#04B575")
	ColorDanger  = lipgloss.Color("#FF5F87")
	ColorMuted   = lipgloss.Color("#626262")
	ColorBorder  = lipgloss.Color("#383838")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	SelectedItemStyle   = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	UnselectedItemStyle = lipgloss.NewStyle()

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	MetricLabelStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle    = lipgloss.NewStyle().Bold(true)
	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)

	StatusBarStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorStyle     = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
)

// tableStyles returns the ledger table styles
func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(ColorPrimary).
		Bold(false)
	return s
}

// ChangeStyle colors a year-over-year change by direction
func ChangeStyle(direction domain.Direction) lipgloss.Style {
	switch direction {
	case domain.DirectionHigher:
		return MetricPositiveStyle
	case domain.DirectionLower:
		return MetricNegativeStyle
	default:
		return MetricValueStyle
	}
}

// FormatCurrency formats an amount in PLN
func FormatCurrency(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " zł"
}
