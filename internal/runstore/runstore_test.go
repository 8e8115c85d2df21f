package runstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cran/SNPfiltR/schema"
)

func newTestStore(t *testing.T) *StoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*StoreImpl)
}

func filterRecord(id int64, at time.Time) (schema.RunRecord, []schema.SummaryRow) {
	cutoff := 0.85
	kept := 120
	pct := 14.29
	rec := schema.RunRecord{
		RunID:      id,
		RunTime:    at,
		Mode:       schema.FilterMode,
		VCFPath:    "data/birds.vcf",
		NumSites:   140,
		NumSamples: 20,
		Cutoff:     &cutoff,
		SitesKept:  &kept,
		RemovedPct: &pct,
	}
	summary := []schema.SummaryRow{
		{Threshold: 0.3, SNPsRetained: 140, MissingFrac: 0.12},
		{Threshold: 0.85, SNPsRetained: 120, MissingFrac: 0.05},
		{Threshold: 1.0, SNPsRetained: 60, MissingFrac: 0},
	}
	return rec, summary
}

func TestRecordAndListRuns(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	rec1, summary1 := filterRecord(1, base)
	require.NoError(t, store.RecordRun(rec1, summary1))

	rec2 := schema.RunRecord{
		RunID:      2,
		RunTime:    base.Add(time.Hour),
		Mode:       schema.ExploreMode,
		VCFPath:    "data/birds.vcf",
		NumSites:   140,
		NumSamples: 20,
		Degenerate: true,
	}
	require.NoError(t, store.RecordRun(rec2, nil))

	recs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// Newest first
	assert.Equal(t, int64(2), recs[0].RunID)
	assert.Equal(t, schema.ExploreMode, recs[0].Mode)
	assert.True(t, recs[0].Degenerate)
	assert.Nil(t, recs[0].Cutoff)
	assert.Nil(t, recs[0].SitesKept)

	assert.Equal(t, int64(1), recs[1].RunID)
	assert.Equal(t, base, recs[1].RunTime)
	require.NotNil(t, recs[1].Cutoff)
	assert.Equal(t, 0.85, *recs[1].Cutoff)
	require.NotNil(t, recs[1].SitesKept)
	assert.Equal(t, 120, *recs[1].SitesKept)
	require.NotNil(t, recs[1].RemovedPct)
	assert.Equal(t, 14.29, *recs[1].RemovedPct)
}

func TestListRunsLimit(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	for i := range 5 {
		rec, summary := filterRecord(int64(i+1), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.RecordRun(rec, summary))
	}

	recs, err := store.ListRuns(3)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, int64(5), recs[0].RunID)
}

func TestGetSummary(t *testing.T) {
	store := newTestStore(t)

	rec, summary := filterRecord(7, time.Now().UTC())
	require.NoError(t, store.RecordRun(rec, summary))

	got, err := store.GetSummary(7)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, summary, got)

	t.Run("unknown run has no rows", func(t *testing.T) {
		got, err := store.GetSummary(999)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestDuplicateRunID(t *testing.T) {
	store := newTestStore(t)

	rec, summary := filterRecord(3, time.Now().UTC())
	require.NoError(t, store.RecordRun(rec, summary))
	assert.Error(t, store.RecordRun(rec, summary), "run IDs are primary keys")
}

func TestNoneBackend(t *testing.T) {
	store, err := NewStore(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	rec, summary := filterRecord(1, time.Now().UTC())
	assert.NoError(t, store.RecordRun(rec, summary))

	recs, err := store.ListRuns(10)
	require.NoError(t, err)
	assert.Empty(t, recs)

	rows, err := store.GetSummary(1)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestUnsupportedBackend(t *testing.T) {
	_, err := NewStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestNewRunID(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.NotEqual(t, a, b)
	assert.Positive(t, a)
}
