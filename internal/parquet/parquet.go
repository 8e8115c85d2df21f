// Package parquet exports recorded runs and their threshold sweeps to
// Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/cran/SNPfiltR/schema"
)

// AnalysisRun represents one recorded invocation.
// This struct maps to the snpfiltr_runs database table.
type AnalysisRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// RunTime is when the run executed (stored as TIMESTAMP with nanosecond precision)
	RunTime time.Time `parquet:"run_time,snappy"`

	// Mode is "filter" or "explore"
	Mode string `parquet:"mode,snappy"`

	// VCFPath is the input file the run analyzed
	VCFPath string `parquet:"vcf_path,snappy"`

	// NumSites is the number of variant sites in the input
	NumSites int32 `parquet:"num_sites,snappy"`

	// NumSamples is the number of samples in the input
	NumSamples int32 `parquet:"num_samples,snappy"`

	// Cutoff is the completeness cutoff applied (nullable, explore runs have none)
	Cutoff *float64 `parquet:"cutoff,optional,snappy"`

	// SitesKept is the number of sites surviving the cutoff (nullable)
	SitesKept *int32 `parquet:"sites_kept,optional,snappy"`

	// RemovedPct is the removed percentage rounded to two decimals (nullable)
	RemovedPct *float64 `parquet:"removed_pct,optional,snappy"`

	// Degenerate marks runs where no site was fully genotyped
	Degenerate bool `parquet:"degenerate,snappy"`
}

// SweepRow represents one threshold sweep observation of a run.
// This struct maps to the snpfiltr_run_summary database table.
type SweepRow struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// Threshold is the candidate completeness level
	Threshold float64 `parquet:"threshold,snappy"`

	// SNPsRetained is the number of sites surviving the level
	SNPsRetained int32 `parquet:"snps_retained,snappy"`

	// MissingFrac is the mean missingness of the surviving sites
	MissingFrac float64 `parquet:"missingness_fraction,snappy"`
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the AnalysisRun struct tags
	writer := parquet.NewGenericWriter[AnalysisRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteSweepRowsParquet writes a slice of SweepRow structs to a Parquet file.
func WriteSweepRowsParquet(data []SweepRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the SweepRow struct tags
	writer := parquet.NewGenericWriter[SweepRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchAnalysisRuns generates sample AnalysisRun data for demonstration.
func MockFetchAnalysisRuns() []AnalysisRun {
	now := time.Now()
	cutoff1 := 0.85
	kept1 := int32(1043)
	removed1 := 12.47

	cutoff2 := 0.5
	kept2 := int32(2310)
	removed2 := 3.02

	// Note: the third run is an explore run, so cutoff, sites_kept and
	// removed_pct are nil to demonstrate nullable fields
	return []AnalysisRun{
		{
			RunID:      1743502395000000001,
			RunTime:    now.Add(-2 * time.Hour),
			Mode:       string(schema.FilterMode),
			VCFPath:    "data/populations.vcf.gz",
			NumSites:   1192,
			NumSamples: 29,
			Cutoff:     &cutoff1,
			SitesKept:  &kept1,
			RemovedPct: &removed1,
		},
		{
			RunID:      1743502395000000002,
			RunTime:    now.Add(-24 * time.Hour),
			Mode:       string(schema.FilterMode),
			VCFPath:    "data/populations.vcf.gz",
			NumSites:   2382,
			NumSamples: 29,
			Cutoff:     &cutoff2,
			SitesKept:  &kept2,
			RemovedPct: &removed2,
		},
		{
			RunID:      1743502395000000003,
			RunTime:    now.Add(-10 * time.Minute),
			Mode:       string(schema.ExploreMode),
			VCFPath:    "data/low_coverage.vcf",
			NumSites:   845,
			NumSamples: 12,
			Degenerate: true,
		},
	}
}

// MockFetchSweepRows generates sample SweepRow data for demonstration,
// one row per grid level for a single run.
func MockFetchSweepRows() []SweepRow {
	retained := []int32{1180, 1150, 1120, 1105, 1088, 1069, 1043, 1001, 932, 811, 540}
	rows := make([]SweepRow, len(schema.ThresholdGrid))
	for i, threshold := range schema.ThresholdGrid {
		rows[i] = SweepRow{
			RunID:        1743502395000000001,
			Threshold:    threshold,
			SNPsRetained: retained[i],
			MissingFrac:  0.35 * (1 - threshold),
		}
	}
	return rows
}

// ConvertRunRecords converts schema.RunRecord to AnalysisRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		var kept *int32
		if record.SitesKept != nil {
			v := int32(*record.SitesKept)
			kept = &v
		}
		result[i] = AnalysisRun{
			RunID:      record.RunID,
			RunTime:    record.RunTime,
			Mode:       string(record.Mode),
			VCFPath:    record.VCFPath,
			NumSites:   int32(record.NumSites),
			NumSamples: int32(record.NumSamples),
			Cutoff:     record.Cutoff,
			SitesKept:  kept,
			RemovedPct: record.RemovedPct,
			Degenerate: record.Degenerate,
		}
	}
	return result
}

// ConvertSummaryRows converts one run's schema.SummaryRow sweep to SweepRow
// for Parquet export.
func ConvertSummaryRows(runID int64, rows []schema.SummaryRow) []SweepRow {
	result := make([]SweepRow, len(rows))
	for i, row := range rows {
		result[i] = SweepRow{
			RunID:        runID,
			Threshold:    row.Threshold,
			SNPsRetained: int32(row.SNPsRetained),
			MissingFrac:  row.MissingFrac,
		}
	}
	return result
}
