package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cran/SNPfiltR/core"
	"github.com/cran/SNPfiltR/internal/contract"
	"github.com/cran/SNPfiltR/schema"
)

// filterCmd applies a completeness cutoff to a VCF.
var filterCmd = &cobra.Command{
	Use:   "filter <vcf-path>",
	Short: "Filter SNPs below a completeness cutoff.",
	Long: `Filter SNPs from a VCF by per-site missingness.

A SNP genotyped in fewer than cutoff of the samples is removed; exact
ties are kept. Before filtering, the full grid of candidate completeness
levels is swept and charted so the chosen cutoff can be judged against
its alternatives.

Examples:
  # Keep SNPs genotyped in at least 85% of samples
  snpfiltr filter data.vcf --cutoff 0.85

  # Also write the surviving records to a new VCF
  snpfiltr filter data.vcf.gz --cutoff 0.9 --filtered-out filtered.vcf.gz

  # Export the sweep for tracking
  snpfiltr filter data.vcf -c 0.85 --output csv --output-file sweep.csv`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := vcfSetup(cmd, args); err != nil {
			return err
		}
		if !cfg.CutoffSet {
			return &schema.InvalidCutoffError{Value: "", Reason: "--cutoff is required"}
		}
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFilter(cfg); err != nil {
			contract.LogFatal("Cannot run filter analysis", err)
		}
	},
}
