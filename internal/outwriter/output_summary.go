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

// PrintSummaryRows outputs the threshold sweep, dispatching based on the
// output format configured.
func PrintSummaryRows(rows []schema.SummaryRow, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeSummaryJSON(rows, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeSummaryCSV(rows, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(rows, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeSummaryJSON handles opening the file and calling the JSON writer.
func writeSummaryJSON(rows []schema.SummaryRow, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		type jsonSummaryRow struct {
			Label string `json:"label"`
			schema.SummaryRow
		}
		output := make([]jsonSummaryRow, len(rows))
		for i, r := range rows {
			output[i] = jsonSummaryRow{
				Label:      contract.GetPlainLabel(r.MissingFrac),
				SummaryRow: r,
			}
		}
		return writeJSON(w, output)
	}, "Wrote JSON")
}

// writeSummaryCSV handles opening the file and calling the CSV writer.
func writeSummaryCSV(rows []schema.SummaryRow, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"threshold", "snps_retained", "missingness_fraction", "label"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, r := range rows {
				rec := []string{
					schema.FormatThreshold(r.Threshold),
					fmt.Sprintf(intFmt, r.SNPsRetained),
					fmtFloat(r.MissingFrac),
					contract.GetPlainLabel(r.MissingFrac),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeSummaryTable generates and writes the human-readable table.
func writeSummaryTable(rows []schema.SummaryRow, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Level", "SNPs Retained", "Missingness", "Label"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			schema.FormatThreshold(r.Threshold),
			fmt.Sprintf(intFmt, r.SNPsRetained),
			fmtFloat(r.MissingFrac),
			contract.GetColorLabel(r.MissingFrac),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Swept %s completeness levels\n", strconv.Itoa(len(rows))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}
