package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/cran/SNPfiltR/internal/contract"
	"github.com/cran/SNPfiltR/schema"
)

// levelSummary is the five-number summary of per-sample missingness within
// one completeness level, plus the mean.
type levelSummary struct {
	Threshold float64 `json:"threshold"`
	Samples   int     `json:"samples"`
	Min       float64 `json:"min"`
	Q1        float64 `json:"q1"`
	Median    float64 `json:"median"`
	Q3        float64 `json:"q3"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
}

// PrintSampleDistribution outputs the per-sample missingness distribution by
// level, dispatching based on the output format configured. Text and JSON
// show the five-number summaries; CSV emits the raw long-form table so it
// can be re-plotted elsewhere.
func PrintSampleDistribution(obs []schema.LevelSample, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeDistributionJSON(obs, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeDistributionCSV(obs, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDistributionTable(obs, fmtFloat, intFmt, w)
		}, "Wrote table")
	}
	return nil
}

// summarizeLevels reduces the long-form observations into one five-number
// summary per threshold level, in grid order.
func summarizeLevels(obs []schema.LevelSample) ([]levelSummary, error) {
	byLevel := make(map[float64][]float64)
	for _, o := range obs {
		byLevel[o.Threshold] = append(byLevel[o.Threshold], o.MissingFrac)
	}

	levels := make([]float64, 0, len(byLevel))
	for lv := range byLevel {
		levels = append(levels, lv)
	}
	sort.Float64s(levels)

	out := make([]levelSummary, 0, len(levels))
	for _, lv := range levels {
		vals := byLevel[lv]
		q, err := stats.Quartile(vals)
		if err != nil {
			return nil, fmt.Errorf("quartiles for level %v: %w", lv, err)
		}
		lo, err := stats.Min(vals)
		if err != nil {
			return nil, err
		}
		hi, err := stats.Max(vals)
		if err != nil {
			return nil, err
		}
		mean, err := stats.Mean(vals)
		if err != nil {
			return nil, err
		}
		out = append(out, levelSummary{
			Threshold: lv,
			Samples:   len(vals),
			Min:       lo,
			Q1:        q.Q1,
			Median:    q.Q2,
			Q3:        q.Q3,
			Max:       hi,
			Mean:      mean,
		})
	}
	return out, nil
}

// writeDistributionJSON emits the per-level five-number summaries.
func writeDistributionJSON(obs []schema.LevelSample, cfg *contract.Config) error {
	summaries, err := summarizeLevels(obs)
	if err != nil {
		return err
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, summaries)
	}, "Wrote JSON")
}

// writeDistributionCSV emits the raw long-form observations.
func writeDistributionCSV(obs []schema.LevelSample, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"threshold", "sample_id", "missingness_fraction"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, o := range obs {
				rec := []string{
					schema.FormatThreshold(o.Threshold),
					o.SampleID,
					fmtFloat(o.MissingFrac),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeDistributionTable renders the per-level summaries as a table.
func writeDistributionTable(obs []schema.LevelSample, fmtFloat func(float64) string, intFmt string, writer io.Writer) error {
	summaries, err := summarizeLevels(obs)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Level", "Samples", "Min", "Q1", "Median", "Q3", "Max", "Mean"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, s := range summaries {
		data = append(data, []string{
			schema.FormatThreshold(s.Threshold),
			fmt.Sprintf(intFmt, s.Samples),
			fmtFloat(s.Min),
			fmtFloat(s.Q1),
			fmtFloat(s.Median),
			fmtFloat(s.Q3),
			fmtFloat(s.Max),
			fmtFloat(s.Mean),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// PrintSampleMiss outputs the per-sample missingness table, dispatching
// based on the output format configured.
func PrintSampleMiss(rows []schema.SampleMiss, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		header := []string{"sample_id", "missingness", "label"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, r := range rows {
					rec := []string{r.SampleID, fmtFloat(r.Missingness), contract.GetPlainLabel(r.Missingness)}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSampleMissTable(rows, cfg, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeSampleMissTable renders the per-sample table, worst samples first.
func writeSampleMissTable(rows []schema.SampleMiss, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	sorted := make([]schema.SampleMiss, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Missingness > sorted[j].Missingness
	})

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Sample", "Missingness", "Label"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := GetMaxTableIDWidth(cfg)
	var data [][]string
	for _, r := range sorted {
		data = append(data, []string{
			contract.TruncateID(r.SampleID, maxWidth),
			fmtFloat(r.Missingness),
			contract.GetColorLabel(r.Missingness),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
