package core

import (
	"math"

	"github.com/cran/SNPfiltR/schema"
)

// SiteMissingness computes the fraction of missing genotype calls per site
// (matrix row). Every element of the result lies in [0,1].
func SiteMissingness(g schema.GenotypeContainer) []float64 {
	d := g.Genotypes()
	if d == nil {
		return nil
	}
	rows, cols := d.Dims()
	miss := make([]float64, rows)
	for i := range rows {
		absent := 0
		for j := range cols {
			if math.IsNaN(d.At(i, j)) {
				absent++
			}
		}
		miss[i] = float64(absent) / float64(cols)
	}
	return miss
}

// SampleMissingness computes the fraction of missing genotype calls per
// sample (matrix column). Used when no site is fully genotyped and the
// user must prune samples before sites can be filtered.
func SampleMissingness(g schema.GenotypeContainer) []float64 {
	d := g.Genotypes()
	if d == nil {
		return nil
	}
	rows, cols := d.Dims()
	miss := make([]float64, cols)
	for j := range cols {
		absent := 0
		for i := range rows {
			if math.IsNaN(d.At(i, j)) {
				absent++
			}
		}
		miss[j] = float64(absent) / float64(rows)
	}
	return miss
}

// completeAt reports whether a site with the given missingness meets a
// completeness level. The comparison is inclusive: miss == 1-level retains.
func completeAt(miss, level float64) bool {
	return miss <= 1-level+schema.FloatTol
}

// anyFullyGenotyped reports whether at least one site has zero missingness,
// i.e. would survive the strictest 100% completeness threshold.
func anyFullyGenotyped(miss []float64) bool {
	for _, m := range miss {
		if m <= schema.FloatTol {
			return true
		}
	}
	return false
}
