package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/daryltucker/sca-analyzer/internal/metrics"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors and inconsistencies.
// Returns nil if valid, or an error describing every problem found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.ResultsDir == "" {
		errs = append(errs, ValidationError{Field: "results_dir", Message: "must not be empty"})
	}

	if cfg.Pattern == "" {
		errs = append(errs, ValidationError{Field: "pattern", Message: "must not be empty"})
	} else if _, err := filepath.Match(cfg.Pattern, ""); err != nil {
		errs = append(errs, ValidationError{Field: "pattern", Message: err.Error()})
	}

	if cfg.NameSeparator == "" {
		errs = append(errs, ValidationError{Field: "name_separator", Message: "must not be empty"})
	}

	if cfg.CapacityTbps <= 0 {
		errs = append(errs, ValidationError{
			Field:   "capacity_tbps",
			Message: fmt.Sprintf("must be positive (got %v)", cfg.CapacityTbps),
		})
	}

	if _, err := metrics.ParseLookupPolicy(cfg.LookupPolicy); err != nil {
		errs = append(errs, ValidationError{Field: "lookup_policy", Message: err.Error()})
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{
			Field:   "log_format",
			Message: fmt.Sprintf("must be one of: text, json (got %q)", cfg.LogFormat),
		})
	}

	outputs := map[string]string{
		"outputs.report": cfg.Outputs.Report,
		"outputs.csv":    cfg.Outputs.CSV,
	}
	if cfg.Charts {
		outputs["outputs.chart"] = cfg.Outputs.Chart
	}
	if cfg.Prometheus {
		outputs["outputs.prometheus"] = cfg.Outputs.Prometheus
	}
	if cfg.SQLite {
		outputs["outputs.sqlite"] = cfg.Outputs.SQLite
	}
	for field, name := range outputs {
		if name == "" {
			errs = append(errs, ValidationError{Field: field, Message: "must not be empty"})
		} else if filepath.Base(name) != name {
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("must be a file name, not a path (got %q)", name)})
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
