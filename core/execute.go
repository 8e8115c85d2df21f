package core

import (
	"fmt"
	"time"

	"github.com/cran/SNPfiltR/internal/contract"
	"github.com/cran/SNPfiltR/internal/outwriter"
	"github.com/cran/SNPfiltR/internal/parquet"
	"github.com/cran/SNPfiltR/internal/plot"
	"github.com/cran/SNPfiltR/internal/runstore"
	"github.com/cran/SNPfiltR/internal/vcf"
	"github.com/cran/SNPfiltR/schema"
)

// ExecuteFilter runs the cutoff-filtering analysis end to end: parse the
// VCF, sweep the grid, render the diagnostic charts, filter, print the
// sweep table, optionally write the filtered VCF, and record the run.
// It serves as the main entry point for the 'filter' command.
func ExecuteFilter(cfg *contract.Config) error {
	start := time.Now()
	rep := contract.NewConsoleReporter(cfg)

	file, err := vcf.ParseFile(cfg.VCFPath)
	if err != nil {
		return err
	}

	outcome, err := RunFilter(file.Matrix, cfg.Cutoff, rep, plotterFor(cfg))
	if err != nil {
		return err
	}

	ow := outwriter.NewOutWriter()
	if outcome.Degenerate {
		if err := ow.WriteSampleMiss(outcome.SampleMiss, cfg); err != nil {
			return err
		}
	} else if outcome.Summary != nil {
		if err := ow.WriteSummary(outcome.Summary, cfg, time.Since(start)); err != nil {
			return err
		}
	}

	if cfg.FilteredOut != "" {
		if err := vcf.WriteFiltered(file, outcome.KeptIndices, cfg.FilteredOut); err != nil {
			return err
		}
		rep.Infof("💾", "wrote %d SNPs to %s", outcome.Stats.SitesKept, cfg.FilteredOut)
	}

	return recordFilterRun(cfg, file.Matrix, outcome, rep)
}

// ExecuteExplore runs the exploratory analysis end to end: parse the VCF,
// build the per-sample distribution and sweep, render the charts, and print
// the tables. It serves as the main entry point for the 'explore' command.
func ExecuteExplore(cfg *contract.Config) error {
	start := time.Now()
	rep := contract.NewConsoleReporter(cfg)

	file, err := vcf.ParseFile(cfg.VCFPath)
	if err != nil {
		return err
	}

	result, err := RunExplore(file.Matrix, rep, plotterFor(cfg))
	if err != nil {
		return err
	}

	ow := outwriter.NewOutWriter()
	if result.Degenerate {
		if err := ow.WriteSampleMiss(result.SampleMiss, cfg); err != nil {
			return err
		}
	} else {
		if err := ow.WriteSampleDistribution(result.BySample, cfg); err != nil {
			return err
		}
		if err := ow.WriteSummary(result.Summary, cfg, time.Since(start)); err != nil {
			return err
		}
	}

	return recordExploreRun(cfg, file.Matrix, result, rep)
}

// plotterFor returns the chart writer, or nil when charts are disabled.
func plotterFor(cfg *contract.Config) Plotter {
	if cfg.NoPlots {
		return nil
	}
	return plot.NewFilePlotter(cfg)
}

// recordFilterRun persists a filter invocation to the run store. Store
// failures degrade to a warning so the analysis result is never lost to a
// bookkeeping problem.
func recordFilterRun(cfg *contract.Config, m *schema.Matrix, outcome *FilterOutcome, rep *contract.ConsoleReporter) error {
	store, err := runstore.NewStore(cfg.StoreBackend, cfg.StoreDBConnect)
	if err != nil {
		rep.Warnf("⚠️", "run store unavailable: %v", err)
		return nil
	}
	defer func() { _ = store.Close() }()

	cutoff := cfg.Cutoff
	kept := outcome.Stats.SitesKept
	pct := outcome.Stats.RemovedPct
	rec := schema.RunRecord{
		RunID:      runstore.NewRunID(),
		RunTime:    time.Now().UTC(),
		Mode:       schema.FilterMode,
		VCFPath:    cfg.VCFPath,
		NumSites:   m.Sites(),
		NumSamples: m.Samples(),
		Cutoff:     &cutoff,
		SitesKept:  &kept,
		RemovedPct: &pct,
		Degenerate: outcome.Degenerate,
	}
	if err := store.RecordRun(rec, outcome.Summary); err != nil {
		rep.Warnf("⚠️", "could not record run: %v", err)
	}
	return nil
}

// recordExploreRun persists an explore invocation to the run store.
func recordExploreRun(cfg *contract.Config, m *schema.Matrix, result *schema.ExploreResult, rep *contract.ConsoleReporter) error {
	store, err := runstore.NewStore(cfg.StoreBackend, cfg.StoreDBConnect)
	if err != nil {
		rep.Warnf("⚠️", "run store unavailable: %v", err)
		return nil
	}
	defer func() { _ = store.Close() }()

	rec := schema.RunRecord{
		RunID:      runstore.NewRunID(),
		RunTime:    time.Now().UTC(),
		Mode:       schema.ExploreMode,
		VCFPath:    cfg.VCFPath,
		NumSites:   m.Sites(),
		NumSamples: m.Samples(),
		Degenerate: result.Degenerate,
	}
	if err := store.RecordRun(rec, result.Summary); err != nil {
		rep.Warnf("⚠️", "could not record run: %v", err)
	}
	return nil
}

// ExecuteRuns lists recorded runs, or one run's sweep when runID is set.
// It serves as the main entry point for the 'runs' command.
func ExecuteRuns(cfg *contract.Config, runID int64) error {
	store, err := runstore.NewStore(cfg.StoreBackend, cfg.StoreDBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ow := outwriter.NewOutWriter()
	if runID > 0 {
		summary, err := store.GetSummary(runID)
		if err != nil {
			return err
		}
		if len(summary) == 0 {
			return fmt.Errorf("no sweep recorded for run %d", runID)
		}
		return ow.WriteSummary(summary, cfg, 0)
	}

	recs, err := store.ListRuns(cfg.RunsLimit)
	if err != nil {
		return err
	}
	return ow.WriteRuns(recs, cfg)
}

// ExecuteExport exports recorded runs and their sweeps to Parquet files.
// It serves as the main entry point for the 'export' command.
func ExecuteExport(cfg *contract.Config, runsOut, sweepOut string) error {
	store, err := runstore.NewStore(cfg.StoreBackend, cfg.StoreDBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	recs, err := store.ListRuns(contract.MaxRunsLimit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("no runs recorded, nothing to export")
	}

	if err := parquet.WriteAnalysisRunsParquet(parquet.ConvertRunRecords(recs), runsOut); err != nil {
		return err
	}

	var sweeps []parquet.SweepRow
	for _, rec := range recs {
		summary, err := store.GetSummary(rec.RunID)
		if err != nil {
			return err
		}
		sweeps = append(sweeps, parquet.ConvertSummaryRows(rec.RunID, summary)...)
	}
	if err := parquet.WriteSweepRowsParquet(sweeps, sweepOut); err != nil {
		return err
	}

	rep := contract.NewConsoleReporter(cfg)
	rep.Infof("💾", "exported %d runs to %s and %d sweep rows to %s",
		len(recs), runsOut, len(sweeps), sweepOut)
	return nil
}
