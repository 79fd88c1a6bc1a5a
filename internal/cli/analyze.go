/*
PURPOSE:
  Defines the 'analyze' subcommand (also the root command's action).
  Executes the full analysis of a results directory.

REQUIREMENTS:
  User-specified:
  - Results directory as positional argument or --dir (default "results").
  - --no-charts skips chart generation.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config, only for flags the user actually set.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails or engine run fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Engine.Run.

USAGE:
  sca-analyzer analyze --dir my_results --no-charts

SELF-HEALING INSTRUCTIONS:
  - Check flag names match Config struct fields generally.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/sca-analyzer/internal/config"
	"github.com/daryltucker/sca-analyzer/internal/engine"
)

var (
	dirOverride string
	noCharts    bool
	diagnose    bool
	prometheus  bool
	sqlite      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [dir]",
	Short: "Analyze a results directory",
	Long: `Analyzes every scalar result file of a results directory.
The process follows a strict protocol:
1. Discovery: Finds all *.sca files; the configuration name is the file name
   up to the first '-'. Files are read in name order, the last one wins.
2. Metrics: Derives packet loss, throughput and switch utilization, and prints
   a summary per configuration.
3. Outputs: Writes the report, CSV, JSON and chart (plus optional Prometheus
   textfile and SQLite database) into the results directory.

Outputs are written together at the end of the run; an interrupted run leaves
no partial files.`,
	Example: `  # Analyze ./results
  sca-analyzer

  # Analyze a custom directory
  sca-analyzer analyze --dir my_results

  # Skip chart generation
  sca-analyzer analyze my_results --no-charts

  # Also export Prometheus textfile and SQLite database, reporting malformed lines
  sca-analyzer analyze --prometheus --sqlite --diagnose`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	// 1. Load Config + 2. Overrides
	cfg, err := loadConfig(cmd, func(cfg *config.Config) {
		flags := cmd.Flags()
		if flags.Changed("dir") {
			cfg.ResultsDir = dirOverride
		}
		if len(args) > 0 {
			cfg.ResultsDir = args[0]
		}
		if noCharts {
			cfg.Charts = false
		}
		if flags.Changed("diagnose") {
			cfg.Diagnose = diagnose
		}
		if flags.Changed("prometheus") {
			cfg.Prometheus = prometheus
		}
		if flags.Changed("sqlite") {
			cfg.SQLite = sqlite
		}
	})
	if err != nil {
		return err
	}

	// 3. Execution
	return engine.Run(cmd.Context(), cfg, cmd.OutOrStdout())
}

func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&dirOverride, "dir", "d", "results", "Directory containing simulation results")
	cmd.Flags().BoolVar(&noCharts, "no-charts", false, "Skip chart generation")
	cmd.Flags().BoolVar(&diagnose, "diagnose", false, "Log malformed lines of the result files")
	cmd.Flags().BoolVar(&prometheus, "prometheus", false, "Also write a Prometheus textfile-collector export")
	cmd.Flags().BoolVar(&sqlite, "sqlite", false, "Also write a SQLite database of the run")
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	addAnalyzeFlags(analyzeCmd)
}
