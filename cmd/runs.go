package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cran/SNPfiltR/core"
	"github.com/cran/SNPfiltR/internal/contract"
)

// runsCmd lists recorded runs or one run's sweep.
var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "Show recorded analysis runs.",
	Long: `List recorded filter and explore runs, newest first.

Passing a run ID prints that run's recorded threshold sweep instead.

Examples:
  # Recent runs
  snpfiltr runs

  # More history, machine readable
  snpfiltr runs --limit 100 --output csv

  # One run's sweep
  snpfiltr runs 1743502395000000000`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// The positional argument is a run ID, not a VCF path.
		return sharedSetup(cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		var runID int64
		if len(args) == 1 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				contract.LogFatal("Invalid run ID", fmt.Errorf("%q is not a run ID", args[0]))
			}
			runID = id
		}
		if err := core.ExecuteRuns(cfg, runID); err != nil {
			contract.LogFatal("Cannot list runs", err)
		}
	},
}
