// Package core computes per-site and per-sample missingness, sweeps the
// candidate threshold grid, and applies completeness cutoffs to genotype
// matrices.
package core

import "github.com/cran/SNPfiltR/schema"

// Reporter receives human-readable progress and diagnostic messages.
// Messages are observable side effects, not part of the return contract.
type Reporter interface {
	Infof(emoji, format string, args ...any)
	Warnf(emoji, format string, args ...any)
}

// Plotter renders the diagnostic charts. A nil Plotter disables rendering.
type Plotter interface {
	// SummaryScatter draws the retained-count and missing-fraction scatter
	// plots across the threshold grid. A non-nil cutoff adds a vertical
	// marker at that completeness level.
	SummaryScatter(rows []schema.SummaryRow, cutoff *float64) error

	// SampleStrip draws the per-sample missingness distribution faceted by
	// completeness level.
	SampleStrip(obs []schema.LevelSample) error
}

// nopReporter swallows all messages; used when callers pass nil.
type nopReporter struct{}

func (nopReporter) Infof(string, string, ...any) {}
func (nopReporter) Warnf(string, string, ...any) {}

func orNop(rep Reporter) Reporter {
	if rep == nil {
		return nopReporter{}
	}
	return rep
}
