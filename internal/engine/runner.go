/*
PURPOSE:
  High-level runner that orchestrates the analysis.
  Discovers result files -> parses them -> derives metrics -> writes outputs.

REQUIREMENTS:
  User-specified:
  - Analyze every *.sca file of the results directory.
  - Write report, CSV and chart next to the results.
  - Chart failures never abort the run.
  - Interruption leaves no partial output files.

  Implementation-discovered:
  - Configuration name is the file stem cut at the first separator; files are
    processed in lexical order so the last file of a configuration wins.
  - JSON, Prometheus and SQLite exports ride along in the same batch.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/parser, internal/metrics, internal/output

ERROR HANDLING:
  - Per-file parse errors are logged; the configuration gets an empty record (resilience).
  - Chart errors are logged at WARN.
  - Missing directory and interruption return sentinel errors for the CLI.

IMPLEMENTATION RULES:
  - Check the context between files and before committing outputs.
  - Stage every artifact first, commit at the very end.

USAGE:
  engine.Run(ctx, cfg, os.Stdout)

SELF-HEALING INSTRUCTIONS:
  - If outputs appear half-written, check that new writers go through output.Batch.

RELATED FILES:
  - internal/output/batch.go
  - internal/metrics/calculator.go

MAINTENANCE:
  - Update when adding new output artifacts.
*/

package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/daryltucker/sca-analyzer/internal/config"
	"github.com/daryltucker/sca-analyzer/internal/metrics"
	"github.com/daryltucker/sca-analyzer/internal/model"
	"github.com/daryltucker/sca-analyzer/internal/output"
	"github.com/daryltucker/sca-analyzer/internal/parser"
)

var (
	// ErrResultsDirNotFound is returned when the results directory does not exist.
	ErrResultsDirNotFound = errors.New("results directory not found")
	// ErrInterrupted is returned when the run context is cancelled.
	ErrInterrupted = errors.New("analysis interrupted")
)

// renderChart is swapped in tests to simulate a plotting failure.
var renderChart = output.RenderChart

// ResultFile is a discovered result file and its configuration name.
type ResultFile struct {
	Path          string
	Configuration string
}

// Discover lists the files of dir matching pattern in lexical order.
func Discover(dir, pattern, sep string) ([]ResultFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrResultsDirNotFound, dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrResultsDirNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	// Only the pattern is a glob; dir is taken literally.
	files := make([]ResultFile, 0, len(entries))
	for _, e := range entries {
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if !ok {
			continue
		}

		path := filepath.Join(dir, e.Name())
		if fi, err := os.Stat(path); err == nil && fi.IsDir() {
			continue
		}
		files = append(files, ResultFile{Path: path, Configuration: ConfigName(path, sep)})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// ConfigName derives the configuration name from a result file path:
// the base name without its last extension, up to the first sep.
func ConfigName(path, sep string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	name, _, _ := strings.Cut(stem, sep)
	return name
}

// LoadResults parses every file into a record keyed by configuration name.
// Later files overwrite earlier files of the same configuration.
func LoadResults(ctx context.Context, files []ResultFile, diagnose bool) (map[string]model.RawRecord, error) {
	output.Logger.Info("Found scalar result files", "count", len(files))

	results := make(map[string]model.RawRecord, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInterrupted, err)
		}

		output.Logger.Info("Parsing result file", "file", filepath.Base(f.Path), "configuration", f.Configuration)

		raw, issues, err := parser.ParseFile(f.Path, parser.Options{Diagnose: diagnose})
		if err != nil {
			output.Logger.Error("Error parsing file", "file", f.Path, "error", err)
			raw = model.NewRawRecord()
		}
		for _, issue := range issues {
			output.Logger.Warn("Malformed line", "file", f.Path, "line", issue.Line, "reason", issue.Reason, "text", issue.Text)
		}

		if _, dup := results[f.Configuration]; dup {
			output.Logger.Debug("Configuration overwritten by later file", "configuration", f.Configuration, "file", f.Path)
		}
		results[f.Configuration] = raw
	}
	return results, nil
}

// Run executes the full analysis of cfg.ResultsDir.
// The per-configuration summary is printed to stdout.
func Run(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	log := output.Logger
	log.Info("Starting simulation analysis", "dir", cfg.ResultsDir)

	// 1. Discovery Phase
	files, err := Discover(cfg.ResultsDir, cfg.Pattern, cfg.NameSeparator)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Warn("No .sca files found", "dir", cfg.ResultsDir)
		log.Warn("No simulation results found to analyze.")
		return nil
	}

	// 2. Parsing Phase
	raw, err := LoadResults(ctx, files, cfg.Diagnose)
	if err != nil {
		return err
	}

	// 3. Metrics Phase
	policy, err := metrics.ParseLookupPolicy(cfg.LookupPolicy)
	if err != nil {
		return err
	}
	calc := &metrics.Calculator{
		CapacityTbps: cfg.CapacityTbps,
		Network:      cfg.Network,
		Policy:       policy,
		Out:          stdout,
	}
	results := calc.Calculate(raw)

	summary, err := metrics.Summarize(results)
	if err != nil {
		return err
	}

	// 4. Output Phase
	info := output.ReportInfo{
		Generated: time.Now(),
		RunID:     xid.New().String(),
		Source:    cfg.ResultsDir,
	}
	log.Debug("Run identified", "run_id", info.RunID)

	batch := output.NewBatch()
	// atexit handlers are never released, so every Run adds one. Cleanup of a
	// finished batch is a no-op.
	atexit.Register(batch.Cleanup)
	defer batch.Cleanup()

	if err := stageOutputs(ctx, batch, cfg, info, summary, results); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInterrupted, err)
	}

	written, err := batch.Commit()
	if err != nil {
		return err
	}

	for _, path := range written {
		log.Info("Output written", "path", path)
	}
	log.Info("Analysis complete", "dir", cfg.ResultsDir, "configurations", summary.Configurations, "run_id", info.RunID)
	return nil
}

type stage struct {
	name  string
	write func(io.Writer) error
}

func stageOutputs(ctx context.Context, batch *output.Batch, cfg *config.Config, info output.ReportInfo, summary model.Summary, results map[string]model.MetricsRecord) error {
	path := func(name string) string { return filepath.Join(cfg.ResultsDir, name) }

	if cfg.Charts {
		var buf bytes.Buffer
		if err := renderChart(&buf, results); err != nil {
			output.Logger.Warn("Could not generate charts", "error", err)
		} else if err := batch.Stage(path(cfg.Outputs.Chart), func(w io.Writer) error {
			_, err := buf.WriteTo(w)
			return err
		}); err != nil {
			output.Logger.Warn("Could not generate charts", "error", err)
		}
	}

	stages := []stage{
		{cfg.Outputs.Report, func(w io.Writer) error { return output.WriteReport(w, info, summary, results) }},
		{cfg.Outputs.CSV, func(w io.Writer) error { return output.WriteCSV(w, results) }},
		{cfg.Outputs.JSON, func(w io.Writer) error { return output.WriteJSON(w, info.RunID, results) }},
	}
	if cfg.Prometheus {
		stages = append(stages, stage{cfg.Outputs.Prometheus, func(w io.Writer) error { return output.WritePrometheus(w, info.RunID, results) }})
	}

	for _, s := range stages {
		if s.name == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrInterrupted, err)
		}
		if err := batch.Stage(path(s.name), s.write); err != nil {
			return err
		}
	}

	if cfg.SQLite {
		if err := batch.StageFile(path(cfg.Outputs.SQLite), func(tmp string) error {
			return output.WriteSQLite(tmp, info, results)
		}); err != nil {
			return err
		}
	}

	return nil
}
