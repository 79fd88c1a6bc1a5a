/*
PURPOSE:
  Defines the root Cobra command for the sca-analyzer CLI.
  Handles global flags, signal handling and command initialization.

REQUIREMENTS:
  User-specified:
  - `sca-analyzer [dir]` analyzes a results directory (default "results").
  - Support global flags like --config and --verbose.
  - Exit code 1 on missing directory, interruption or any fatal error.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - SIGINT/SIGTERM cancel the command context instead of killing the process,
    so staged outputs are cleaned up.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/sca-analyzer/main.go
  - Calls: Child commands (analyze, list, inspect)
  - Modifies: Global logger (output.Logger) once configuration is known.

ERROR HANDLING:
  - Returns error to main.go for exit code handling.
  - ReportError prints the user-facing message; verbose adds the error chain.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Root runs the same analysis as `analyze` so the bare command works.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to init().

RELATED FILES:
  - cmd/sca-analyzer/main.go
  - internal/cli/analyze.go

MAINTENANCE:
  - Update when adding global configuration options.
*/

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/daryltucker/sca-analyzer/internal/config"
	"github.com/daryltucker/sca-analyzer/internal/engine"
	"github.com/daryltucker/sca-analyzer/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "sca-analyzer [dir]",
		Short: "Analyze simulator scalar result files",
		Long: `Parses the scalar (.sca) result files of a network simulation run, derives
throughput and packet loss metrics per configuration, and writes a text report,
CSV/JSON exports and comparison charts next to the results.

Running without a subcommand is the same as 'sca-analyzer analyze'.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runAnalyze,
	}
)

// Execute executes the root command.
// The command context is cancelled on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// ReportError prints err for the user.
func ReportError(w io.Writer, err error) {
	switch {
	case errors.Is(err, engine.ErrInterrupted):
		fmt.Fprintln(w, "\nAnalysis interrupted by user.")
	case errors.Is(err, engine.ErrResultsDirNotFound):
		fmt.Fprintf(w, "Error: %v\n", err)
	default:
		fmt.Fprintf(w, "Error during analysis: %v\n", err)
	}

	if verbose {
		fmt.Fprintln(w, "Error chain:")
		writeChain(w, err, 1)
	}
}

func writeChain(w io.Writer, err error, depth int) {
	fmt.Fprintf(w, "%s%T: %v\n", strings.Repeat("  ", depth), err, err)
	switch x := err.(type) {
	case interface{ Unwrap() error }:
		if inner := x.Unwrap(); inner != nil {
			writeChain(w, inner, depth+1)
		}
	case interface{ Unwrap() []error }:
		for _, inner := range x.Unwrap() {
			writeChain(w, inner, depth+1)
		}
	}
}

// loadConfig loads the config file, validates it and configures the logger.
// apply runs between loading and validation so flags take precedence.
func loadConfig(cmd *cobra.Command, apply func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	cfg.Verbose = verbose
	if apply != nil {
		apply(cfg)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	output.SetLogger(output.NewLogger(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel, cfg.Verbose))
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./sca_analyzer.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging and print the full error chain on failure")
	addAnalyzeFlags(rootCmd)
}
