// Package config holds the journal configuration: file-based (YAML or JSON)
// with environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmkov/vpjournal/gate"
	"github.com/dmkov/vpjournal/market"
)

// Config is the complete journal configuration.
type Config struct {
	DB      DBConfig      `json:"db" yaml:"db"`
	Import  ImportConfig  `json:"import" yaml:"import"`
	Quality QualityConfig `json:"quality" yaml:"quality"`
}

// DBConfig locates the embedded store.
type DBConfig struct {
	Path string `json:"path" yaml:"path" env:"VPJ_DB_PATH"`
}

// ImportConfig drives statement reconciliation.
type ImportConfig struct {
	Owner      string  `json:"owner" yaml:"owner" env:"VPJ_OWNER"`
	Instrument string  `json:"instrument" yaml:"instrument" env:"VPJ_INSTRUMENT"`
	TickSize   float64 `json:"tick_size,omitempty" yaml:"tick_size,omitempty" env:"VPJ_TICK_SIZE"`
	TickValue  float64 `json:"tick_value,omitempty" yaml:"tick_value,omitempty" env:"VPJ_TICK_VALUE"`
	DryRun     bool    `json:"dry_run" yaml:"dry_run" env:"VPJ_DRY_RUN"`
	UpdateMode bool    `json:"update_mode" yaml:"update_mode" env:"VPJ_UPDATE_MODE"`
}

// QualityConfig drives gate evaluation.
type QualityConfig struct {
	Mode      string  `json:"mode" yaml:"mode" env:"VPJ_GATE_MODE"`
	RMultiple float64 `json:"r_multiple" yaml:"r_multiple" env:"VPJ_R_MULTIPLE"`
}

// Ticks resolves the effective tick size and value: explicit values win,
// otherwise instrument metadata.
func (c *Config) Ticks() (size, value float64) {
	if c.Import.TickSize > 0 && c.Import.TickValue > 0 {
		return c.Import.TickSize, c.Import.TickValue
	}
	meta := market.Instruments[strings.ToUpper(c.Import.Instrument)]
	return meta.TickSize, meta.TickValue
}

// LoadFromFile loads configuration from a file (YAML first, JSON fallback),
// then applies environment overrides.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load returns defaults plus environment overrides when no file is given.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFromFile(path)
	}

	cfg := Default()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration (YAML for .yaml/.yml, JSON otherwise).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
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

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DB.Path == "" {
		return fmt.Errorf("db.path is required")
	}
	if c.Import.Owner == "" {
		return fmt.Errorf("import.owner is required")
	}
	if c.Import.Instrument == "" {
		return fmt.Errorf("import.instrument is required")
	}
	if _, ok := market.Instruments[strings.ToUpper(c.Import.Instrument)]; !ok {
		if c.Import.TickSize <= 0 || c.Import.TickValue <= 0 {
			return fmt.Errorf("unknown instrument %q: set tick_size and tick_value explicitly", c.Import.Instrument)
		}
	}
	if c.Import.TickSize < 0 || c.Import.TickValue < 0 {
		return fmt.Errorf("tick_size and tick_value must not be negative")
	}
	if _, err := gate.ParseMode(c.Quality.Mode); err != nil {
		return fmt.Errorf("quality.mode: %w", err)
	}
	if c.Quality.RMultiple < 0 {
		return fmt.Errorf("quality.r_multiple must not be negative")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		DB: DBConfig{
			Path: "./vpjournal.db",
		},
		Import: ImportConfig{
			Owner:      "local",
			Instrument: "ES",
		},
		Quality: QualityConfig{
			Mode:      string(gate.Fade),
			RMultiple: 2,
		},
	}
}
