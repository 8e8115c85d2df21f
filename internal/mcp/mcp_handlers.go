package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cran/SNPfiltR/core"
	"github.com/cran/SNPfiltR/internal/contract"
	"github.com/cran/SNPfiltR/internal/vcf"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handleExploreMissingness(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.VCFPath = request.GetString("vcf_path", "")

	if err := contract.RequireVCFPath(cfg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid vcf_path: %v", err)), nil
	}

	file, err := vcf.ParseFile(cfg.VCFPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("could not parse VCF: %v", err)), nil
	}

	// No reporter or plotter: the MCP result is the JSON payload alone.
	result, err := core.RunExplore(file.Matrix, nil, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleApplyFilter(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.VCFPath = request.GetString("vcf_path", "")
	cutoff := request.GetFloat("cutoff", -1)
	filteredOut := request.GetString("filtered_out", "")

	if err := contract.RequireVCFPath(cfg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid vcf_path: %v", err)), nil
	}

	file, err := vcf.ParseFile(cfg.VCFPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("could not parse VCF: %v", err)), nil
	}

	outcome, err := core.RunFilter(file.Matrix, cutoff, nil, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("filter failed: %v", err)), nil
	}

	if filteredOut != "" {
		if err := vcf.WriteFiltered(file, outcome.KeptIndices, filteredOut); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("could not write filtered VCF: %v", err)), nil
		}
	}

	payload := struct {
		Stats       core.FilterStats `json:"stats"`
		Summary     any              `json:"summary,omitempty"`
		SampleMiss  any              `json:"sample_missingness,omitempty"`
		Degenerate  bool             `json:"degenerate"`
		FilteredOut string           `json:"filtered_out,omitempty"`
	}{
		Stats:       outcome.Stats,
		Degenerate:  outcome.Degenerate,
		FilteredOut: filteredOut,
	}
	if outcome.Summary != nil {
		payload.Summary = outcome.Summary
	}
	if outcome.SampleMiss != nil {
		payload.SampleMiss = outcome.SampleMiss
	}

	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
