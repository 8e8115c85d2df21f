package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cran/SNPfiltR/core"
	"github.com/cran/SNPfiltR/internal/contract"
)

// exportCmd exports recorded runs to Parquet.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet files.",
	Long: `Export recorded runs and their threshold sweeps to Parquet files for
analysis in external tooling (DuckDB, pandas, Spark).

Two files are written: one row per run, and one row per sweep
observation keyed by run ID.

Examples:
  # Default file names in the working directory
  snpfiltr export

  # Explicit destinations
  snpfiltr export --runs-out runs.parquet --sweep-out sweeps.parquet`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		runsOut := viper.GetString("runs-out")
		sweepOut := viper.GetString("sweep-out")
		if err := core.ExecuteExport(cfg, runsOut, sweepOut); err != nil {
			contract.LogFatal("Cannot export runs", err)
		}
	},
}
