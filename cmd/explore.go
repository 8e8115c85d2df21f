package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cran/SNPfiltR/core"
	"github.com/cran/SNPfiltR/internal/contract"
)

// exploreCmd sweeps the grid without filtering.
var exploreCmd = &cobra.Command{
	Use:   "explore <vcf-path>",
	Short: "Sweep completeness levels without filtering.",
	Long: `Explore per-SNP missingness before choosing a cutoff.

Sweeps the grid of candidate completeness levels, reports how many SNPs
survive each level and how much missingness the survivors carry, and
charts the per-sample missingness distribution at each level.

When no SNP is fully genotyped the sweep is replaced by a per-sample
missingness table, since pruning bad samples must come first.

Examples:
  # Inspect the tradeoff curve
  snpfiltr explore data.vcf

  # Machine-readable sweep for a pipeline
  snpfiltr explore data.vcf --output json --no-plots`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := vcfSetup(cmd, args); err != nil {
			return err
		}
		if cfg.CutoffSet {
			return fmt.Errorf("explore takes no cutoff; use 'snpfiltr filter' to apply one")
		}
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExplore(cfg); err != nil {
			contract.LogFatal("Cannot run explore analysis", err)
		}
	},
}
