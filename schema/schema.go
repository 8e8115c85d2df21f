// Package schema has the genotype-matrix model, result types and global
// constants for all parts of snpfiltr.
package schema

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"
)

// GenotypeContainer is the capability contract for genotype-matrix input.
// Any type that can expose a dosage matrix plus site and sample identity is
// a recognized container; everything else is rejected with InvalidInputError.
type GenotypeContainer interface {
	// Genotypes returns the sites x samples dosage matrix.
	// Missing calls are NaN entries.
	Genotypes() *mat.Dense

	// SiteIDs returns one identifier per matrix row (e.g. "chr1:4532").
	SiteIDs() []string

	// SampleIDs returns one identifier per matrix column.
	SampleIDs() []string
}

// Matrix is the standard genotype-matrix container: a dense dosage matrix
// with S sites as rows and N samples as columns. Missing genotype calls are
// stored as NaN. A Matrix is immutable once built; subsetting returns a new
// Matrix and never mutates the receiver.
type Matrix struct {
	dosage    *mat.Dense
	siteIDs   []string
	sampleIDs []string
}

var _ GenotypeContainer = (*Matrix)(nil) // Compile-time check

// NewMatrix builds a Matrix from a dosage matrix and its row/column identity.
// The identifier slices must match the matrix dimensions.
func NewMatrix(dosage *mat.Dense, siteIDs, sampleIDs []string) (*Matrix, error) {
	if dosage == nil {
		return nil, &InvalidInputError{Reason: "nil dosage matrix"}
	}
	rows, cols := dosage.Dims()
	if rows == 0 || cols == 0 {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("empty dosage matrix (%d x %d)", rows, cols)}
	}
	if len(siteIDs) != rows {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("%d site IDs for %d sites", len(siteIDs), rows)}
	}
	if len(sampleIDs) != cols {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("%d sample IDs for %d samples", len(sampleIDs), cols)}
	}
	return &Matrix{dosage: dosage, siteIDs: siteIDs, sampleIDs: sampleIDs}, nil
}

// Genotypes returns the underlying dosage matrix. Callers must not mutate
// it. A fully filtered Matrix has zero sites and returns nil here.
func (m *Matrix) Genotypes() *mat.Dense { return m.dosage }

// SiteIDs returns the per-row site identifiers.
func (m *Matrix) SiteIDs() []string { return m.siteIDs }

// SampleIDs returns the per-column sample identifiers.
func (m *Matrix) SampleIDs() []string { return m.sampleIDs }

// Sites returns S, the number of variant sites (rows).
func (m *Matrix) Sites() int { return len(m.siteIDs) }

// Samples returns N, the number of samples (columns).
func (m *Matrix) Samples() int { return len(m.sampleIDs) }

// SubsetSites returns a new Matrix restricted to the given row indices,
// in order. The receiver is left untouched. A filter that removes every
// site yields a Matrix with zero sites and a nil dosage matrix, since a
// zero-row Dense is not representable.
func (m *Matrix) SubsetSites(keep []int) *Matrix {
	_, cols := m.dosage.Dims()
	ids := make([]string, 0, len(keep))
	for _, row := range keep {
		ids = append(ids, m.siteIDs[row])
	}
	if len(keep) == 0 {
		return &Matrix{dosage: nil, siteIDs: ids, sampleIDs: m.sampleIDs}
	}
	out := mat.NewDense(len(keep), cols, nil)
	for i, row := range keep {
		out.SetRow(i, m.dosage.RawRowView(row))
	}
	return &Matrix{dosage: out, siteIDs: ids, sampleIDs: m.sampleIDs}
}

// AsContainer performs the capability check on arbitrary input and returns
// the container on success. It is the single gate through which all input
// enters the filter.
func AsContainer(v any) (GenotypeContainer, error) {
	if v == nil {
		return nil, &InvalidInputError{Reason: "nil input"}
	}
	gc, ok := v.(GenotypeContainer)
	if !ok {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("unrecognized container type %T", v)}
	}
	g := gc.Genotypes()
	if g == nil {
		return nil, &InvalidInputError{Reason: "container has no genotype matrix"}
	}
	rows, cols := g.Dims()
	if rows == 0 || cols == 0 {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("empty genotype matrix (%d x %d)", rows, cols)}
	}
	return gc, nil
}

// SummaryRow is one line of the threshold sweep: how many SNPs survive a
// candidate completeness level and how much missingness the survivors carry.
type SummaryRow struct {
	Threshold    float64 `json:"threshold"`
	SNPsRetained int     `json:"snps_retained"`
	MissingFrac  float64 `json:"missingness_fraction"`
}

// LevelSample is one long-form observation for the exploratory distribution
// view: a single sample's missing fraction within the subset of sites that
// meet a completeness level.
type LevelSample struct {
	Threshold   float64 `json:"threshold"`
	SampleID    string  `json:"sample_id"`
	MissingFrac float64 `json:"missingness_fraction"`
}

// SampleMiss reports one sample's overall missingness. Returned instead of
// the sweep when no site is fully genotyped and filtering cannot proceed
// until samples are pruned.
type SampleMiss struct {
	SampleID    string  `json:"sample_id"`
	Missingness float64 `json:"missingness"`
}

// ExploreResult is the exploratory output: either the threshold sweep or, in the
// degenerate case, the per-sample missingness table.
type ExploreResult struct {
	Summary    []SummaryRow  `json:"summary,omitempty"`
	BySample   []LevelSample `json:"by_sample,omitempty"`
	SampleMiss []SampleMiss  `json:"sample_missingness,omitempty"`
	Degenerate bool          `json:"degenerate"`
}

// RunRecord captures one recorded invocation for the run store and for
// Parquet export. Cutoff, SitesKept and RemovedPct are nil for explore runs.
type RunRecord struct {
	RunID      int64        `json:"run_id"`
	RunTime    time.Time    `json:"run_time"`
	Mode       AnalysisMode `json:"mode"`
	VCFPath    string       `json:"vcf_path"`
	NumSites   int          `json:"num_sites"`
	NumSamples int          `json:"num_samples"`
	Cutoff     *float64     `json:"cutoff,omitempty"`
	SitesKept  *int         `json:"sites_kept,omitempty"`
	RemovedPct *float64     `json:"removed_pct,omitempty"`
	Degenerate bool         `json:"degenerate"`
}
