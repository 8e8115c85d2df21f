// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cran/SNPfiltR/internal/contract"
)

// NewMCPServer initializes and configures the snpfiltr MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"SNP Missingness Filter Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: explore_missingness ---
	s.AddTool(mcp.NewTool("explore_missingness",
		mcp.WithDescription("Sweep candidate completeness levels over a VCF and report how many SNPs survive each level, without filtering."),
		mcp.WithString("vcf_path", mcp.Description("Path to the VCF file (.vcf or .vcf.gz)."), mcp.Required()),
	), h.handleExploreMissingness)

	// --- 2. Tool: apply_filter ---
	s.AddTool(mcp.NewTool("apply_filter",
		mcp.WithDescription("Filter SNPs from a VCF by per-site completeness: sites missing in more than 1-cutoff of samples are removed."),
		mcp.WithString("vcf_path", mcp.Description("Path to the VCF file (.vcf or .vcf.gz)."), mcp.Required()),
		mcp.WithNumber("cutoff", mcp.Description("Completeness cutoff in [0,1]; e.g. 0.85 keeps sites genotyped in at least 85% of samples."), mcp.Required()),
		mcp.WithString("filtered_out", mcp.Description("Optional path to write the filtered VCF.")),
	), h.handleApplyFilter)

	return s
}

// StartMCPServer starts the snpfiltr MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
