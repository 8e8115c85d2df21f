package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cran/SNPfiltR/internal/contract"
	"github.com/cran/SNPfiltR/schema"
)

// gridCmd prints the fixed sweep grid.
var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Show the candidate completeness levels.",
	Long: `Display the fixed grid of candidate completeness levels that filter
and explore sweep over.

Each level is the fraction of samples a SNP must be genotyped in to
survive at that level. The grid is part of the tool's contract and
cannot be reconfigured.`,
	Run: func(_ *cobra.Command, _ []string) {
		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"Level", "Max missingness allowed"})

		var data [][]string
		for _, lv := range schema.ThresholdGrid {
			data = append(data, []string{
				schema.FormatThreshold(lv),
				schema.FormatThreshold(schema.Round2(1 - lv)),
			})
		}
		if err := table.Bulk(data); err != nil {
			contract.LogFatal("Cannot build grid table", err)
		}
		if err := table.Render(); err != nil {
			contract.LogFatal("Cannot render grid table", err)
		}
		fmt.Printf("%d levels, swept in ascending order\n", len(schema.ThresholdGrid))
	},
}
