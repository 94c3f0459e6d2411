package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rgehrsitz/kalkulator/internal/calculation"
	"github.com/rgehrsitz/kalkulator/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario and rate table files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads scenarios from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}

	if config.RatesFile != "" && !filepath.IsAbs(config.RatesFile) {
		config.RatesFile = filepath.Join(filepath.Dir(filename), config.RatesFile)
	}
	return config, nil
}

// Parse decodes and validates scenario file contents
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// ValidateConfiguration validates the scenarios and normalizes contract aliases
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("at least one scenario is required")
	}
	for i := range config.Scenarios {
		if err := ip.validateScenario(i, &config.Scenarios[i]); err != nil {
			return err
		}
	}
	return nil
}

func (ip *InputParser) validateScenario(index int, scenario *domain.Scenario) error {
	if scenario.Name == "" {
		scenario.Name = fmt.Sprintf("scenario %d", index+1)
	}
	contract, err := domain.ParseContractType(string(scenario.Contract))
	if err != nil {
		return fmt.Errorf("scenario %d (%s): %w", index, scenario.Name, err)
	}
	scenario.Contract = contract

	if scenario.Year != 0 {
		if _, err := domain.ParseTaxYear(int(scenario.Year)); err != nil {
			return fmt.Errorf("scenario %d (%s): %w", index, scenario.Name, err)
		}
	}
	if err := ValidateParameters(scenario.Parameters); err != nil {
		return fmt.Errorf("scenario %d (%s): %w", index, scenario.Name, err)
	}
	return nil
}

// LoadRateTables loads rate table overrides and validates every table
func (ip *InputParser) LoadRateTables(filename string) ([]domain.RateTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rates file %s: %w", filename, err)
	}

	var file domain.RateTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rates YAML: %w", err)
	}
	if len(file.RateTables) == 0 {
		return nil, fmt.Errorf("rates file %s contains no rate_tables", filename)
	}

	for i := range file.RateTables {
		rt := &file.RateTables[i]
		contract, err := domain.ParseContractType(string(rt.Contract))
		if err != nil {
			return nil, fmt.Errorf("rate table %d: %w", i, err)
		}
		rt.Contract = contract
		if err := calculation.ValidateRateTable(*rt); err != nil {
			return nil, fmt.Errorf("rate table %d: %w", i, err)
		}
	}
	return file.RateTables, nil
}

// NewRegistry returns the built-in registry with the tables of ratesFile
// applied on top. An empty ratesFile leaves the built-in tables in place.
func (ip *InputParser) NewRegistry(ratesFile string) (*calculation.Registry, error) {
	registry := calculation.NewRegistry()
	if ratesFile == "" {
		return registry, nil
	}
	tables, err := ip.LoadRateTables(ratesFile)
	if err != nil {
		return nil, err
	}
	for _, rt := range tables {
		if err := registry.SetRateTable(rt); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// WriteRateTables writes tables in the rates file format
func WriteRateTables(w io.Writer, tables []domain.RateTable) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(domain.RateTableFile{RateTables: tables}); err != nil {
		return fmt.Errorf("failed to encode rate tables: %w", err)
	}
	return enc.Close()
}
