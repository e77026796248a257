package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/forrestang/RenkoDiscovery-sub000/indicators"
	"github.com/forrestang/RenkoDiscovery-sub000/renko"
	"github.com/forrestang/RenkoDiscovery-sub000/signal"
)

// Config represents the complete scanner configuration
type Config struct {
	Scan    ScanConfig    `json:"scan" yaml:"scan"`
	Bricks  BrickConfig   `json:"bricks" yaml:"bricks"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// MAConfig describes one moving average
type MAConfig struct {
	Type   string `json:"type" yaml:"type"` // "sma" or "ema"
	Period int    `json:"period" yaml:"period"`
}

// Indicator resolves the config into an indicator configuration.
func (m MAConfig) Indicator() (indicators.Config, error) {
	t, err := indicators.ParseType(m.Type)
	if err != nil {
		return indicators.Config{}, err
	}
	cfg := indicators.Config{Type: t, Period: m.Period}
	if err := cfg.Validate(); err != nil {
		return indicators.Config{}, err
	}
	return cfg, nil
}

// ScanConfig contains detector parameters
type ScanConfig struct {
	Fast           MAConfig `json:"fast" yaml:"fast"`
	Medium         MAConfig `json:"medium" yaml:"medium"`
	Slow           MAConfig `json:"slow" yaml:"slow"`
	PricePrecision int      `json:"price_precision" yaml:"price_precision"`
}

// Params resolves the scan section into detector parameters.
func (s ScanConfig) Params() (signal.Params, error) {
	fast, err := s.Fast.Indicator()
	if err != nil {
		return signal.Params{}, fmt.Errorf("scan.fast: %w", err)
	}
	medium, err := s.Medium.Indicator()
	if err != nil {
		return signal.Params{}, fmt.Errorf("scan.medium: %w", err)
	}
	slow, err := s.Slow.Indicator()
	if err != nil {
		return signal.Params{}, fmt.Errorf("scan.slow: %w", err)
	}
	return signal.Params{
		Fast:           fast,
		Medium:         medium,
		Slow:           slow,
		PricePrecision: s.PricePrecision,
	}, nil
}

// BrickConfig contains brick construction parameters
type BrickConfig struct {
	Sizing       string  `json:"sizing" yaml:"sizing"` // "fixed" or "atr"
	BrickSize    float64 `json:"brick_size,omitempty" yaml:"brick_size,omitempty"`
	ReversalMult float64 `json:"reversal_mult,omitempty" yaml:"reversal_mult,omitempty"`
	ATRPeriod    int     `json:"atr_period,omitempty" yaml:"atr_period,omitempty"`
	ATRMult      float64 `json:"atr_mult,omitempty" yaml:"atr_mult,omitempty"`
}

// Builder resolves the bricks section into a builder configuration.
func (b BrickConfig) Builder() renko.BuilderConfig {
	return renko.BuilderConfig{
		Sizing:       renko.Sizing(b.Sizing),
		BrickSize:    b.BrickSize,
		ReversalMult: b.ReversalMult,
		ATRPeriod:    b.ATRPeriod,
		ATRMult:      b.ATRMult,
	}
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	RunsFile    string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	SignalsFile string `json:"signals_file,omitempty" yaml:"signals_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	// Determine format by extension
	if (len(path) > 5 && path[len(path)-5:] == ".yaml") || (len(path) > 4 && path[len(path)-4:] == ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := c.Scan.Params(); err != nil {
		return err
	}
	if c.Scan.PricePrecision < 0 {
		return fmt.Errorf("scan.price_precision must not be negative")
	}
	if err := c.Bricks.Builder().Validate(); err != nil {
		return fmt.Errorf("bricks: %w", err)
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" && c.Journal.Type != "none" {
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	if c.Journal.Type == "csv" && (c.Journal.RunsFile == "" || c.Journal.SignalsFile == "") {
		return fmt.Errorf("journal runs_file and signals_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Fast:           MAConfig{Type: "ema", Period: 10},
			Medium:         MAConfig{Type: "ema", Period: 20},
			Slow:           MAConfig{Type: "ema", Period: 30},
			PricePrecision: signal.DefaultPricePrecision,
		},
		Bricks: BrickConfig{
			Sizing:       "fixed",
			BrickSize:    0.001,
			ReversalMult: 1,
		},
		Journal: JournalConfig{
			Type:        "csv",
			RunsFile:    "./runs.csv",
			SignalsFile: "./signals.csv",
		},
	}
}
