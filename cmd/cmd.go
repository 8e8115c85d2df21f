// Package cmd defines the command-line interface for snpfiltr.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cran/SNPfiltR/internal/contract"
	"github.com/cran/SNPfiltR/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for missingness columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("plot-dir", contract.DefaultPlotDir, "Directory for diagnostic charts")
	rootCmd.PersistentFlags().String("plot-format", string(schema.PNGPlot), "Chart format: png or svg or pdf")
	rootCmd.PersistentFlags().Bool("no-plots", false, "Skip rendering diagnostic charts")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Run-store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultRunsLimit, "Number of runs to display or export")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in diagnostics (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of filterCmd to Viper
	filterCmd.Flags().StringP("cutoff", "c", "", "Completeness cutoff in [0,1]; e.g. 0.85 keeps SNPs genotyped in at least 85% of samples")
	filterCmd.Flags().String("filtered-out", "", "Optional path to write the filtered VCF (.vcf or .vcf.gz)")
	if err := viper.BindPFlags(filterCmd.Flags()); err != nil {
		contract.LogFatal("Error binding filter flags", err)
	}

	// Bind all flags of exportCmd to Viper
	exportCmd.Flags().String("runs-out", "snpfiltr_runs.parquet", "Output path for the runs Parquet file")
	exportCmd.Flags().String("sweep-out", "snpfiltr_sweeps.parquet", "Output path for the sweep Parquet file")
	if err := viper.BindPFlags(exportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding export flags", err)
	}

	// Bind all flags of migrateCmd to Viper
	migrateCmd.Flags().Int("target-version", -1, "Target schema version (-1 = latest, 0 = rollback all)")
	if err := viper.BindPFlags(migrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding migrate flags", err)
	}
}
