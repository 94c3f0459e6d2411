package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/kalkulator/internal/calculation"
	"github.com/rgehrsitz/kalkulator/internal/config"
	"github.com/rgehrsitz/kalkulator/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: kalkulator-tui <scenario-file>")
		os.Exit(1)
	}
	configPath := os.Args[1]

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Error: Scenario file not found: %s\n", configPath)
		os.Exit(1)
	}

	// The scenario file may carry its own rate table overrides
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	registry, err := parser.NewRegistry(cfg.RatesFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewModel(configPath, calculation.NewCalculationEngineWithRegistry(registry))

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
