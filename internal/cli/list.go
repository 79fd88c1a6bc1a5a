/*
PURPOSE:
  Defines the 'list' subcommand.
  Shows which result files would be analyzed and under which configuration name.

REQUIREMENTS:
  User-specified:
  - List discovered result files.

  Implementation-discovered:
  - Useful validation step before full run: shows which files collide on a
    configuration name (the last one wins).

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Discover()

ERROR HANDLING:
  - Returns error if the directory is missing.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  sca-analyzer list results/

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/runner.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/daryltucker/sca-analyzer/internal/config"
	"github.com/daryltucker/sca-analyzer/internal/engine"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List result files and their configuration names",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, func(cfg *config.Config) {
			if len(args) > 0 {
				cfg.ResultsDir = args[0]
			}
		})
		if err != nil {
			return err
		}

		files, err := engine.Discover(cfg.ResultsDir, cfg.Pattern, cfg.NameSeparator)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(files) == 0 {
			fmt.Fprintf(w, "No %s files found in %s\n", cfg.Pattern, cfg.ResultsDir)
			return nil
		}

		r := lipgloss.NewRenderer(w)
		width := 0
		for _, f := range files {
			width = max(width, lipgloss.Width(filepath.Base(f.Path)))
		}
		fileCol := r.NewStyle().Width(width + 2)
		faint := r.NewStyle().Faint(true)

		// Later files replace earlier ones of the same configuration.
		last := make(map[string]string, len(files))
		for _, f := range files {
			last[f.Configuration] = f.Path
		}

		fmt.Fprintf(w, "Found %d scalar result files in %s:\n", len(files), cfg.ResultsDir)
		for _, f := range files {
			line := fileCol.Render(filepath.Base(f.Path)) + f.Configuration
			if last[f.Configuration] != f.Path {
				line += " " + faint.Render("(superseded)")
			}
			fmt.Fprintln(w, "  "+line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
