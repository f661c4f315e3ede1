// Command hydractl runs the monitor's derivation functions offline against
// project record files, and replays the legacy SQLite database onto the
// source topic.
//
// Usage:
//
//	hydractl render-order -f projects.json --region NCR
//	hydractl slider --start 2021-06-01 --date 2021-07-01
//	hydractl imagery --lat 14.5764 --lng 121.0851
//	hydractl validate -f projects.json
//	hydractl normalize -f raw.json -o normalized.json
//	hydractl import --db flood_projects.db
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hydractl",
	Short: "Offline tools for the flood-control project monitor",
	Long: `hydractl exposes the monitor's severity grouping, timeline slider, and
imagery URL logic on the command line, validates project record files, and
imports the legacy project database onto the raw record topic.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(
		newRenderOrderCmd(),
		newSliderCmd(),
		newImageryCmd(),
		newValidateCmd(),
		newNormalizeCmd(),
		newImportCmd(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
