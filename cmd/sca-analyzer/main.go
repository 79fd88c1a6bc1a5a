/*
PURPOSE:
  Entry point for the sca-analyzer application.
  Initializes the CLI root command and executes it.

REQUIREMENTS:
  User-specified:
  - Must serve as the single binary entry point.
  - Exit code 1 on missing input directory, user interruption or any fatal error.

  Implementation-discovered:
  - Uses cobra for CLI command management.
  - Exits through atexit so registered cleanups (staged outputs) always run.

ARCHITECTURE INTEGRATION:
  - Calls: internal/cli.Execute()
  - Depends on: internal/cli package

ERROR HANDLING:
  - Explicit error check on Execute(); exit code 1 on failure.

IMPLEMENTATION RULES:
  - Critical: Keep main() minimal. All logic belongs in internal/ packages.
  - Do not put business logic here.
  - Do not use global variables for state here.

USAGE:
  go build -o sca-analyzer ./cmd/sca-analyzer
  ./sca-analyzer [dir] [flags]

SELF-HEALING INSTRUCTIONS:
  - If CLI fails to start, check internal/cli/root.go definition.
  - If imports fail, run `go mod tidy`.

RELATED FILES:
  - internal/cli/root.go - The actual root command definition.

MAINTENANCE:
  - Update when changing the CLI framework or high-level signal handling.
*/

package main

import (
	"os"

	"github.com/tebeka/atexit"

	"github.com/daryltucker/sca-analyzer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		cli.ReportError(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
