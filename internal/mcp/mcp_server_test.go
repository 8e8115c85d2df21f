package mcp_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cran/SNPfiltR/internal/contract"
	mcp_internal "github.com/cran/SNPfiltR/internal/mcp"
)

const testVCF = `##fileformat=VCFv4.2
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	ind1	ind2
chr1	100	rs1	A	G	50	PASS	.	GT	0/0	0/1
chr1	200	rs2	C	T	50	PASS	.	GT	./.	1/1
chr1	300	rs3	G	A	50	PASS	.	GT	1/0	./.
chr1	400	rs4	T	C	50	PASS	.	GT	./.	./.
`

func writeTestVCF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.vcf")
	require.NoError(t, os.WriteFile(path, []byte(testVCF), 0o644))
	return path
}

func TestMCPServerHandlers(t *testing.T) {
	baseCfg := &contract.Config{}
	s := mcp_internal.NewMCPServer(baseCfg)
	ctx := context.Background()

	t.Run("explore_missingness missing vcf_path", func(t *testing.T) {
		tool := s.GetTool("explore_missingness")
		require.NotNil(t, tool, "Tool explore_missingness should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "explore_missingness",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "vcf_path")
	})

	t.Run("explore_missingness returns sweep", func(t *testing.T) {
		tool := s.GetTool("explore_missingness")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "explore_missingness",
				Arguments: map[string]any{
					"vcf_path": writeTestVCF(t),
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"summary"`)
		assert.Contains(t, text, `"snps_retained"`)
	})

	t.Run("apply_filter invalid cutoff", func(t *testing.T) {
		tool := s.GetTool("apply_filter")
		require.NotNil(t, tool, "Tool apply_filter should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "apply_filter",
				Arguments: map[string]any{
					"vcf_path": writeTestVCF(t),
					"cutoff":   1.5,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "outside [0,1]")
	})

	t.Run("apply_filter writes filtered VCF", func(t *testing.T) {
		tool := s.GetTool("apply_filter")
		require.NotNil(t, tool)

		outPath := filepath.Join(t.TempDir(), "filtered.vcf")
		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "apply_filter",
				Arguments: map[string]any{
					"vcf_path":     writeTestVCF(t),
					"cutoff":       0.5,
					"filtered_out": outPath,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)

		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"sites_kept": 3`)
		assert.Contains(t, text, `"removed_pct": 25`)

		content, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "rs1")
		assert.NotContains(t, string(content), "rs4")
	})
}
