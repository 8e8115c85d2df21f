// Package contract has configuration, validation and shared interfaces
// that bind the snpfiltr commands to their collaborators.
package contract

import "github.com/cran/SNPfiltR/schema"

// RunStore persists analysis runs and their threshold sweeps.
type RunStore interface {
	// RecordRun stores one invocation and its summary rows (nil for
	// degenerate runs, which have no sweep).
	RecordRun(rec schema.RunRecord, summary []schema.SummaryRow) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// GetSummary returns the sweep recorded for a run, if any.
	GetSummary(runID int64) ([]schema.SummaryRow, error)

	// Close releases the underlying connection.
	Close() error
}
