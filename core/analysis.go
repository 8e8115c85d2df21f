package core

import (
	"fmt"

	"github.com/cran/SNPfiltR/schema"
)

// FilterOutcome is the cutoff-filtering result: the filtered matrix plus everything
// needed for reporting and persistence.
type FilterOutcome struct {
	Filtered *schema.Matrix
	Stats    FilterStats

	// KeptIndices are the retained site rows in input order, for callers
	// that subset a parallel structure such as raw VCF records.
	KeptIndices []int

	Summary    []schema.SummaryRow // nil when the degenerate branch fired
	Degenerate bool

	// SampleMiss is the per-sample missingness table, populated only on the
	// degenerate branch so callers can show which samples drive the gaps.
	SampleMiss []schema.SampleMiss
}

// RunFilter applies a completeness cutoff to arbitrary genotype input.
// Input that is not a recognized container fails with InvalidInputError;
// a cutoff outside [0,1] fails with InvalidCutoffError. When no site is
// fully genotyped the sweep and plots are skipped and the matrix is
// filtered directly with a diagnostic message.
func RunFilter(input any, cutoff float64, rep Reporter, pl Plotter) (*FilterOutcome, error) {
	rep = orNop(rep)

	gc, err := schema.AsContainer(input)
	if err != nil {
		return nil, err
	}
	if cutoff < 0 || cutoff > 1 {
		return nil, &schema.InvalidCutoffError{
			Value:  fmt.Sprintf("%v", cutoff),
			Reason: fmt.Sprintf("%v is outside [0,1]", cutoff),
		}
	}

	m, err := asMatrix(gc)
	if err != nil {
		return nil, err
	}

	rep.Infof("🧬", "assessing per-SNP missingness across %d sites and %d samples", m.Sites(), m.Samples())
	miss := SiteMissingness(m)

	if !anyFullyGenotyped(miss) {
		rep.Warnf("⚠️", "no SNPs are fully genotyped across all samples; skipping visualization and filtering directly")
		rep.Warnf("⚠️", "review per-sample missingness to find the samples driving the gaps")
		filtered, stats := ApplyCutoff(m, miss, cutoff)
		rep.Infof("🔪", "%.2f%% of SNPs fell below a completeness cutoff of %s and were removed",
			stats.RemovedPct, schema.FormatThreshold(cutoff))
		return &FilterOutcome{
			Filtered:    filtered,
			Stats:       stats,
			KeptIndices: KeepIndices(miss, cutoff),
			Degenerate:  true,
			SampleMiss:  sampleMissTable(m),
		}, nil
	}

	summary := SweepThresholds(miss)
	if pl != nil {
		marker := cutoff
		if err := pl.SummaryScatter(summary, &marker); err != nil {
			rep.Warnf("⚠️", "could not render diagnostic plots: %v", err)
		}
	}

	filtered, stats := ApplyCutoff(m, miss, cutoff)
	rep.Infof("🔪", "%.2f%% of SNPs fell below a completeness cutoff of %s and were removed",
		stats.RemovedPct, schema.FormatThreshold(cutoff))

	return &FilterOutcome{
		Filtered:    filtered,
		Stats:       stats,
		KeptIndices: KeepIndices(miss, cutoff),
		Summary:     summary,
	}, nil
}

// RunExplore computes the exploratory diagnostics without filtering.
// When no site reaches 100% completeness it returns the per-sample
// missingness table instead; sites cannot be usefully filtered until
// high-missingness samples are pruned externally.
func RunExplore(input any, rep Reporter, pl Plotter) (*schema.ExploreResult, error) {
	rep = orNop(rep)

	gc, err := schema.AsContainer(input)
	if err != nil {
		return nil, err
	}
	m, err := asMatrix(gc)
	if err != nil {
		return nil, err
	}

	rep.Infof("🧬", "assessing per-SNP missingness across %d sites and %d samples", m.Sites(), m.Samples())
	miss := SiteMissingness(m)

	if !anyFullyGenotyped(miss) {
		rep.Warnf("⚠️", "no SNPs are fully genotyped across all samples; returning per-sample missingness instead")
		rep.Warnf("⚠️", "prune high-missingness samples before choosing a SNP completeness cutoff")
		return &schema.ExploreResult{SampleMiss: sampleMissTable(m), Degenerate: true}, nil
	}

	bySample := PerSampleByLevel(m, miss)
	summary := SweepThresholds(miss)

	if pl != nil {
		if err := pl.SampleStrip(bySample); err != nil {
			rep.Warnf("⚠️", "could not render distribution plot: %v", err)
		}
		if err := pl.SummaryScatter(summary, nil); err != nil {
			rep.Warnf("⚠️", "could not render diagnostic plots: %v", err)
		}
	}

	return &schema.ExploreResult{Summary: summary, BySample: bySample}, nil
}

// sampleMissTable pairs each sample ID with its overall missing fraction.
func sampleMissTable(m *schema.Matrix) []schema.SampleMiss {
	sampleMiss := SampleMissingness(m)
	ids := m.SampleIDs()
	table := make([]schema.SampleMiss, len(ids))
	for j, id := range ids {
		table[j] = schema.SampleMiss{SampleID: id, Missingness: sampleMiss[j]}
	}
	return table
}

// asMatrix normalizes any recognized container into the standard Matrix so
// that subsetting is available.
func asMatrix(gc schema.GenotypeContainer) (*schema.Matrix, error) {
	if m, ok := gc.(*schema.Matrix); ok {
		return m, nil
	}
	return schema.NewMatrix(gc.Genotypes(), gc.SiteIDs(), gc.SampleIDs())
}
