package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cran/SNPfiltR/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the snpfiltr MCP server",
	Long:  `Launch an MCP server that allows AI agents to explore missingness and filter VCFs via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Stdio carries the protocol, so diagnostics must stay quiet.
		return sharedSetup(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(context.Background(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
