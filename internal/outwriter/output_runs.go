package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/cran/SNPfiltR/internal/contract"
	"github.com/cran/SNPfiltR/schema"
)

// runTimeFormat renders run timestamps in table and CSV output.
const runTimeFormat = time.DateTime

// PrintRunRecords outputs recorded run history, dispatching based on the
// output format configured.
func PrintRunRecords(recs []schema.RunRecord, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, recs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeRunsCSV(recs, cfg, fmtFloat, intFmt)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsTable(recs, cfg, fmtFloat, intFmt, w)
		}, "Wrote table")
	}
}

// writeRunsCSV emits run history rows.
func writeRunsCSV(recs []schema.RunRecord, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"run_id", "run_time", "mode", "vcf_path",
		"num_sites", "num_samples", "cutoff", "sites_kept", "removed_pct", "degenerate",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, r := range recs {
				rec := []string{
					strconv.FormatInt(r.RunID, 10),
					r.RunTime.Format(runTimeFormat),
					string(r.Mode),
					r.VCFPath,
					fmt.Sprintf(intFmt, r.NumSites),
					fmt.Sprintf(intFmt, r.NumSamples),
					formatOptFloat(r.Cutoff, schema.FormatThreshold),
					formatOptInt(r.SitesKept, intFmt),
					formatOptFloat(r.RemovedPct, fmtFloat),
					strconv.FormatBool(r.Degenerate),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeRunsTable renders the run history as a table, newest first as the
// store returns them.
func writeRunsTable(recs []schema.RunRecord, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Run", "Time", "Mode", "VCF", "Sites", "Samples", "Cutoff", "Kept", "Removed %"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := GetMaxTableIDWidth(cfg)
	var data [][]string
	for _, r := range recs {
		mode := string(r.Mode)
		if r.Degenerate {
			mode += "*"
		}
		data = append(data, []string{
			strconv.FormatInt(r.RunID, 10),
			r.RunTime.Format(runTimeFormat),
			mode,
			contract.TruncateID(r.VCFPath, maxWidth),
			fmt.Sprintf(intFmt, r.NumSites),
			fmt.Sprintf(intFmt, r.NumSamples),
			formatOptFloat(r.Cutoff, schema.FormatThreshold),
			formatOptInt(r.SitesKept, intFmt),
			formatOptFloat(r.RemovedPct, fmtFloat),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d runs (* = degenerate input, no sweep recorded)\n", len(recs)); err != nil {
		return err
	}
	return nil
}

// formatOptFloat renders an optional float, "-" when absent.
func formatOptFloat(v *float64, format func(float64) string) string {
	if v == nil {
		return "-"
	}
	return format(*v)
}

// formatOptInt renders an optional int, "-" when absent.
func formatOptInt(v *int, intFmt string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(intFmt, *v)
}
