// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/cran/SNPfiltR/internal/contract"
	"github.com/cran/SNPfiltR/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for
// the command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummary prints the threshold sweep using the configured output format.
func (ow *OutWriter) WriteSummary(rows []schema.SummaryRow, cfg *contract.Config, duration time.Duration) error {
	return PrintSummaryRows(rows, cfg, duration)
}

// WriteSampleDistribution prints the per-sample missingness distribution by
// threshold level using the configured output format.
func (ow *OutWriter) WriteSampleDistribution(obs []schema.LevelSample, cfg *contract.Config) error {
	return PrintSampleDistribution(obs, cfg)
}

// WriteSampleMiss prints the per-sample missingness table emitted when no
// site is fully genotyped.
func (ow *OutWriter) WriteSampleMiss(rows []schema.SampleMiss, cfg *contract.Config) error {
	return PrintSampleMiss(rows, cfg)
}

// WriteRuns prints recorded run history using the configured output format.
func (ow *OutWriter) WriteRuns(recs []schema.RunRecord, cfg *contract.Config) error {
	return PrintRunRecords(recs, cfg)
}

// GetMaxTableIDWidth calculates the maximum width for sample and site IDs in
// table output based on terminal width.
func GetMaxTableIDWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric columns with borders and padding.
	available := termWidth - 50
	if available < 12 {
		return 12
	}
	if available > 60 {
		return 60
	}
	return available
}
