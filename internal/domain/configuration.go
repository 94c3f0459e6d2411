package domain

// Configuration is the content of a scenario file
type Configuration struct {
	// RatesFile optionally points to rate table overrides, relative to the scenario file
	RatesFile string     `yaml:"rates_file,omitempty" json:"rates_file,omitempty"`
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// Scenario is one named salary calculation
type Scenario struct {
	Name     string       `yaml:"name" json:"name"`
	Contract ContractType `yaml:"contract" json:"contract"`
	// Year limits the scenario to one tax year; zero means every supported year
	Year       TaxYear    `yaml:"year,omitempty" json:"year,omitempty"`
	Parameters Parameters `yaml:"parameters" json:"parameters"`
}

// RateTableFile is the content of a rate table override file
type RateTableFile struct {
	RateTables []RateTable `yaml:"rate_tables" json:"rate_tables"`
}
