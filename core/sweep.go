package core

import (
	"math"

	"github.com/cran/SNPfiltR/schema"
	"gonum.org/v1/gonum/stat"
)

// SweepThresholds builds one SummaryRow per grid level: the number of sites
// meeting that completeness level and the overall missingness carried by
// that subset. Always returns exactly len(schema.ThresholdGrid) rows.
func SweepThresholds(miss []float64) []schema.SummaryRow {
	rows := make([]schema.SummaryRow, 0, len(schema.ThresholdGrid))
	for _, level := range schema.ThresholdGrid {
		var retained []float64
		for _, v := range miss {
			if completeAt(v, level) {
				retained = append(retained, v)
			}
		}
		frac := 0.0
		if len(retained) > 0 {
			// Rows share a common denominator N, so the subset's overall
			// missing fraction is the mean of its per-site fractions.
			frac = stat.Mean(retained, nil)
		}
		rows = append(rows, schema.SummaryRow{
			Threshold:    level,
			SNPsRetained: len(retained),
			MissingFrac:  frac,
		})
	}
	return rows
}

// PerSampleByLevel builds the long-form exploratory table: for each grid
// level, each sample's missing fraction within the subset of sites that
// meet the level. Levels that retain no sites contribute no observations.
func PerSampleByLevel(m *schema.Matrix, miss []float64) []schema.LevelSample {
	d := m.Genotypes()
	if d == nil {
		return nil
	}
	sampleIDs := m.SampleIDs()
	_, cols := d.Dims()

	var out []schema.LevelSample
	for _, level := range schema.ThresholdGrid {
		var keep []int
		for i, v := range miss {
			if completeAt(v, level) {
				keep = append(keep, i)
			}
		}
		if len(keep) == 0 {
			continue
		}
		for j := range cols {
			absent := 0
			for _, i := range keep {
				if math.IsNaN(d.At(i, j)) {
					absent++
				}
			}
			out = append(out, schema.LevelSample{
				Threshold:   level,
				SampleID:    sampleIDs[j],
				MissingFrac: float64(absent) / float64(len(keep)),
			})
		}
	}
	return out
}
