package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/daryltucker/sca-analyzer/internal/parser"
)

var inspectFormat string

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print the parsed contents of one result file",
	Long: `Parses a single scalar result file and prints its config entries, scalars,
parameters and attributes. Malformed lines are listed on stderr with --diagnose.`,
	Example: `  sca-analyzer inspect results/Baseline-0.sca
  sca-analyzer inspect results/Baseline-0.sca --format json --diagnose`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd, nil); err != nil {
			return err
		}

		raw, issues, err := parser.ParseFile(args[0], parser.Options{Diagnose: diagnose})
		if err != nil {
			return err
		}
		for _, issue := range issues {
			fmt.Fprintln(cmd.ErrOrStderr(), issue)
		}

		w := cmd.OutOrStdout()
		switch inspectFormat {
		case "yaml":
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(raw); err != nil {
				return err
			}
			return enc.Close()
		case "json":
			data, err := json.MarshalIndent(raw, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(data))
			return err
		default:
			return fmt.Errorf("unknown format %q (want yaml or json)", inspectFormat)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "yaml", "Output format: yaml or json")
	inspectCmd.Flags().BoolVar(&diagnose, "diagnose", false, "List malformed lines on stderr")
}
