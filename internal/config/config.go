package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/michelgermain/gnucash-expenses/internal/gnucash"
	"github.com/michelgermain/gnucash-expenses/internal/report"
)

// DefaultFile is read from the working directory when no --config is given.
const DefaultFile = "gnucash-expenses.yaml"

// Config represents the gnucash-expenses.yaml configuration.
type Config struct {
	Accounts  []string      `yaml:"accounts"`
	Separator string        `yaml:"separator"`
	Symbols   SymbolsConfig `yaml:"symbols"`
	Title     string        `yaml:"title"`
}

// SymbolsConfig sets the currency prefixes used in reports.
type SymbolsConfig struct {
	Foreign     string            `yaml:"foreign"`
	Local       string            `yaml:"local"`
	Commodities map[string]string `yaml:"commodities,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	sym := report.DefaultSymbols()
	return &Config{
		Accounts:  []string{"Assets", "Bank", "Liabilities"},
		Separator: gnucash.DefaultSeparator,
		Symbols: SymbolsConfig{
			Foreign:     sym.Foreign,
			Local:       sym.Local,
			Commodities: sym.Commodities,
		},
		Title: "Expense Report",
	}
}

// Load reads a config file from disk. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Separator == "" {
		return nil, fmt.Errorf("parsing config: separator must not be empty")
	}
	return cfg, nil
}

// LoadOrDefault reads path if set. With an empty path it reads DefaultFile
// when that exists and otherwise returns the defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg, err := Load(DefaultFile)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ReportOptions converts the configuration into report service options.
func (c *Config) ReportOptions() report.Options {
	return report.Options{
		Accounts:  c.Accounts,
		Separator: c.Separator,
		Symbols: report.Symbols{
			Foreign:     c.Symbols.Foreign,
			Local:       c.Symbols.Local,
			Commodities: c.Symbols.Commodities,
		},
		Title: c.Title,
	}
}
