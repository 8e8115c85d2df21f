package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cran/SNPfiltR/internal/contract"
	"github.com/cran/SNPfiltR/schema"
)

func testConfig(output schema.OutputMode, outputFile string) *contract.Config {
	return &contract.Config{
		Output:     output,
		OutputFile: outputFile,
		Precision:  2,
		Width:      100,
	}
}

func sampleSummary() []schema.SummaryRow {
	return []schema.SummaryRow{
		{Threshold: 0.3, SNPsRetained: 90, MissingFrac: 0.21},
		{Threshold: 0.5, SNPsRetained: 80, MissingFrac: 0.15},
		{Threshold: 1.0, SNPsRetained: 30, MissingFrac: 0},
	}
}

func TestPrintSummaryRowsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.txt")
	cfg := testConfig(schema.TextOut, path)

	require.NoError(t, PrintSummaryRows(sampleSummary(), cfg, 5*time.Millisecond))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "0.3")
	assert.Contains(t, text, "90")
	assert.Contains(t, text, "Swept 3 completeness levels")
	assert.Contains(t, text, "Analysis completed in")
}

func TestPrintSummaryRowsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	cfg := testConfig(schema.CSVOut, path)

	require.NoError(t, PrintSummaryRows(sampleSummary(), cfg, 0))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")

	require.Len(t, lines, 4)
	assert.Equal(t, "threshold,snps_retained,missingness_fraction,label", lines[0])
	assert.Equal(t, "0.3,90,0.21,Low", lines[1])
	assert.Equal(t, "1,30,0.00,Low", lines[3])
}

func TestPrintSummaryRowsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	cfg := testConfig(schema.JSONOut, path)

	require.NoError(t, PrintSummaryRows(sampleSummary(), cfg, 0))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(content, &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, 0.3, decoded[0]["threshold"])
	assert.Equal(t, float64(90), decoded[0]["snps_retained"])
	assert.Equal(t, "Low", decoded[0]["label"])
}

func TestSummarizeLevels(t *testing.T) {
	obs := []schema.LevelSample{
		{Threshold: 0.5, SampleID: "a", MissingFrac: 0.1},
		{Threshold: 0.5, SampleID: "b", MissingFrac: 0.2},
		{Threshold: 0.5, SampleID: "c", MissingFrac: 0.3},
		{Threshold: 0.5, SampleID: "d", MissingFrac: 0.4},
		{Threshold: 1.0, SampleID: "a", MissingFrac: 0},
		{Threshold: 1.0, SampleID: "b", MissingFrac: 0},
	}

	summaries, err := summarizeLevels(obs)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	first := summaries[0]
	assert.Equal(t, 0.5, first.Threshold)
	assert.Equal(t, 4, first.Samples)
	assert.Equal(t, 0.1, first.Min)
	assert.Equal(t, 0.4, first.Max)
	assert.InDelta(t, 0.25, first.Median, 1e-12)
	assert.InDelta(t, 0.25, first.Mean, 1e-12)

	second := summaries[1]
	assert.Equal(t, 1.0, second.Threshold)
	assert.Zero(t, second.Max)
}

func TestPrintSampleDistributionCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dist.csv")
	cfg := testConfig(schema.CSVOut, path)

	obs := []schema.LevelSample{
		{Threshold: 0.5, SampleID: "ind1", MissingFrac: 0.25},
		{Threshold: 0.5, SampleID: "ind2", MissingFrac: 0.5},
	}
	require.NoError(t, PrintSampleDistribution(obs, cfg))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "threshold,sample_id,missingness_fraction", lines[0])
	assert.Equal(t, "0.5,ind1,0.25", lines[1])
}

func TestPrintSampleMiss(t *testing.T) {
	rows := []schema.SampleMiss{
		{SampleID: "ind1", Missingness: 0.2},
		{SampleID: "ind2", Missingness: 0.9},
	}

	t.Run("table sorts worst first", func(t *testing.T) {
		var buf bytes.Buffer
		fmtFloat, _ := createFormatters(2)
		require.NoError(t, writeSampleMissTable(rows, testConfig(schema.TextOut, ""), fmtFloat, &buf))

		text := buf.String()
		assert.Less(t, strings.Index(text, "ind2"), strings.Index(text, "ind1"))
		assert.Contains(t, text, "Severe")
	})

	t.Run("csv keeps input order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "samples.csv")
		require.NoError(t, PrintSampleMiss(rows, testConfig(schema.CSVOut, path)))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "ind1,0.20,Low", lines[1])
		assert.Equal(t, "ind2,0.90,Severe", lines[2])
	})
}

func TestPrintRunRecords(t *testing.T) {
	cutoff := 0.85
	kept := 120
	removed := 14.29
	recs := []schema.RunRecord{
		{
			RunID:      42,
			RunTime:    time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
			Mode:       schema.FilterMode,
			VCFPath:    "data/birds.vcf.gz",
			NumSites:   140,
			NumSamples: 20,
			Cutoff:     &cutoff,
			SitesKept:  &kept,
			RemovedPct: &removed,
		},
		{
			RunID:      43,
			RunTime:    time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
			Mode:       schema.ExploreMode,
			VCFPath:    "data/birds.vcf.gz",
			NumSites:   140,
			NumSamples: 20,
			Degenerate: true,
		},
	}

	t.Run("csv", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "runs.csv")
		require.NoError(t, PrintRunRecords(recs, testConfig(schema.CSVOut, path)))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[1], "42,2026-03-14 09:30:00,filter")
		assert.Contains(t, lines[1], "0.85,120,14.29,false")
		assert.Contains(t, lines[2], "-,-,-,true")
	})

	t.Run("table marks degenerate runs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "runs.txt")
		require.NoError(t, PrintRunRecords(recs, testConfig(schema.TextOut, path)))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "explore*")
		assert.Contains(t, string(content), "Showing 2 runs")
	})
}

func TestGetMaxTableIDWidth(t *testing.T) {
	t.Run("width override", func(t *testing.T) {
		assert.Equal(t, 60, GetMaxTableIDWidth(&contract.Config{Width: 200}))
		assert.Equal(t, 30, GetMaxTableIDWidth(&contract.Config{Width: 80}))
		assert.Equal(t, 12, GetMaxTableIDWidth(&contract.Config{Width: 40}))
	})
}

func TestFormatOptHelpers(t *testing.T) {
	v := 0.5
	n := 7
	assert.Equal(t, "0.5", formatOptFloat(&v, schema.FormatThreshold))
	assert.Equal(t, "-", formatOptFloat(nil, schema.FormatThreshold))
	assert.Equal(t, "7", formatOptInt(&n, "%d"))
	assert.Equal(t, "-", formatOptInt(nil, "%d"))
}
