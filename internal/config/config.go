/*
PURPOSE:
  Defines the configuration structure and loading logic for sca-analyzer.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Results directory defaults to "results".
  - Chart generation can be switched off.
  - Switch capacity and network name are fixed per deployment but tunable.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Needs to support Environment variables overrides (SCA_...), optionally from a .env file.
  - Output file names live here so every writer agrees on them.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3, github.com/joho/godotenv

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing default config files fall back to defaults.
  - Validate() reports every invalid field at once.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Precedence: defaults < config file < .env/environment < CLI flags.

USAGE:
  cfg, err := config.Load("sca_analyzer.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update DefaultConfig().

RELATED FILES:
  - internal/cli/root.go
  - internal/config/validate.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFiles are searched in order when no config path is given.
var DefaultFiles = []string{"sca_analyzer.yaml", "analyzer.yaml"}

// EnvFile is loaded (if present) before environment overrides are applied.
var EnvFile = ".env"

// Outputs names the artifacts written into the results directory.
// An empty name disables that artifact.
type Outputs struct {
	Report     string `yaml:"report"`
	CSV        string `yaml:"csv"`
	JSON       string `yaml:"json"`
	Chart      string `yaml:"chart"`
	Prometheus string `yaml:"prometheus"`
	SQLite     string `yaml:"sqlite"`
}

// Config represents the full configuration for sca-analyzer.
type Config struct {
	ResultsDir    string `yaml:"results_dir"`
	Pattern       string `yaml:"pattern"`
	NameSeparator string `yaml:"name_separator"`

	// Network is the top-level network name tried before the bare role keys.
	Network      string  `yaml:"network"`
	CapacityTbps float64 `yaml:"capacity_tbps"`
	// LookupPolicy is "zero-is-missing" or "presence-wins".
	LookupPolicy string `yaml:"lookup_policy"`

	Charts     bool `yaml:"charts"`
	Diagnose   bool `yaml:"diagnose"`
	Prometheus bool `yaml:"prometheus"`
	SQLite     bool `yaml:"sqlite"`

	Outputs Outputs `yaml:"outputs"`

	LogFormat string `yaml:"log_format"`
	LogLevel  string `yaml:"log_level"`
	Verbose   bool   `yaml:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ResultsDir:    "results",
		Pattern:       "*.sca",
		NameSeparator: "-",
		Network:       "BasicTomahawk6Test",
		CapacityTbps:  102.4,
		LookupPolicy:  "zero-is-missing",
		Charts:        true,
		Outputs: Outputs{
			Report:     "analysis_report.txt",
			CSV:        "simulation_metrics.csv",
			JSON:       "simulation_metrics.json",
			Chart:      "performance_analysis.png",
			Prometheus: "simulation_metrics.prom",
			SQLite:     "simulation_metrics.sqlite3",
		},
		LogFormat: "text",
		LogLevel:  "info",
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
// Environment overrides are applied in every case.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				break
			}
		}
	}

	if path != "" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv loads EnvFile when it exists and applies SCA_* overrides.
func ApplyEnv(cfg *Config) error {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", EnvFile, err)
	}

	if v, ok := os.LookupEnv("SCA_RESULTS_DIR"); ok {
		cfg.ResultsDir = v
	}
	if v, ok := os.LookupEnv("SCA_NETWORK"); ok {
		cfg.Network = v
	}
	if v, ok := os.LookupEnv("SCA_CAPACITY_TBPS"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid SCA_CAPACITY_TBPS %q: %w", v, err)
		}
		cfg.CapacityTbps = f
	}
	if v, ok := os.LookupEnv("SCA_LOOKUP_POLICY"); ok {
		cfg.LookupPolicy = v
	}
	if v, ok := os.LookupEnv("SCA_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("SCA_LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}

	return nil
}
