package core

import "github.com/cran/SNPfiltR/schema"

// FilterStats summarizes one cutoff application.
type FilterStats struct {
	SitesTotal   int     `json:"sites_total"`
	SitesKept    int     `json:"sites_kept"`
	SitesRemoved int     `json:"sites_removed"`
	RemovedPct   float64 `json:"removed_pct"` // round(100 * removed / total, 2)
}

// KeepIndices returns the ascending site indices whose missingness does not
// exceed 1-cutoff. Exact ties are kept.
func KeepIndices(miss []float64, cutoff float64) []int {
	keep := make([]int, 0, len(miss))
	for i, v := range miss {
		if completeAt(v, cutoff) {
			keep = append(keep, i)
		}
	}
	return keep
}

// ApplyCutoff returns a new matrix restricted to sites whose missingness
// does not exceed 1-cutoff. A site is removed only if it strictly exceeds
// the allowed missingness; exact ties are kept. The input is never mutated.
func ApplyCutoff(m *schema.Matrix, miss []float64, cutoff float64) (*schema.Matrix, FilterStats) {
	keep := KeepIndices(miss, cutoff)

	stats := FilterStats{
		SitesTotal:   len(miss),
		SitesKept:    len(keep),
		SitesRemoved: len(miss) - len(keep),
	}
	if stats.SitesTotal > 0 {
		stats.RemovedPct = schema.Round2(100 * float64(stats.SitesRemoved) / float64(stats.SitesTotal))
	}
	return m.SubsetSites(keep), stats
}
