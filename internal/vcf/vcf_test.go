package vcf

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cran/SNPfiltR/schema"
)

const sampleVCF = `##fileformat=VCFv4.2
##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">
##FORMAT=<ID=DP,Number=1,Type=Integer,Description="Read Depth">
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	ind1	ind2
chr1	100	rs1	A	G	50	PASS	.	GT:DP	0/0:12	0/1:8
chr1	200	.	C	T	50	PASS	.	GT:DP	./.:0	1/1:20
chr2	300	rs3	G	A	50	PASS	.	GT	1|0	.
chr2	400	rs4	T	C	50	PASS	.	GT:DP	./.:0	./.:0
`

func TestParse(t *testing.T) {
	file, err := Parse(strings.NewReader(sampleVCF))
	require.NoError(t, err)

	m := file.Matrix
	assert.Equal(t, 4, m.Sites())
	assert.Equal(t, 2, m.Samples())
	assert.Equal(t, []string{"rs1", "chr1:200", "rs3", "rs4"}, m.SiteIDs())
	assert.Equal(t, []string{"ind1", "ind2"}, m.SampleIDs())

	g := m.Genotypes()
	assert.Equal(t, 0.0, g.At(0, 0))
	assert.Equal(t, 1.0, g.At(0, 1))
	assert.True(t, math.IsNaN(g.At(1, 0)))
	assert.Equal(t, 2.0, g.At(1, 1))
	assert.Equal(t, 1.0, g.At(2, 0), "phased calls parse like unphased")
	assert.True(t, math.IsNaN(g.At(2, 1)), "bare dot is a missing call")
	assert.True(t, math.IsNaN(g.At(3, 0)))

	// Raw lines survive for round-tripping.
	require.Len(t, file.RecordLines, 4)
	assert.Len(t, file.HeaderLines, 4)
	assert.True(t, strings.HasPrefix(file.RecordLines[0], "chr1\t100\trs1"))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty stream", ""},
		{"no sample columns", "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\n"},
		{"record before header", "chr1\t1\t.\tA\tG\t.\t.\t.\tGT\t0/0\n"},
		{
			"no records",
			"##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tind1\n",
		},
		{
			"column count mismatch",
			"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tind1\tind2\n" +
				"chr1\t1\t.\tA\tG\t.\t.\t.\tGT\t0/0\n",
		},
		{
			"missing GT in FORMAT",
			"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tind1\n" +
				"chr1\t1\t.\tA\tG\t.\t.\t.\tDP\t12\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			var invalid *schema.InvalidInputError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestParseGT(t *testing.T) {
	tests := []struct {
		gt   string
		want float64
	}{
		{"0/0", 0},
		{"0/1", 1},
		{"1/0", 1},
		{"1/1", 2},
		{"0|1", 1},
		{"1|1", 2},
		{"2/1", 2}, // multiallelic ALT alleles still count as non-ref
		{"0", 0},   // haploid call
		{"1", 1},
	}
	for _, tt := range tests {
		t.Run(tt.gt, func(t *testing.T) {
			assert.Equal(t, tt.want, parseGT(tt.gt))
		})
	}

	for _, missing := range []string{".", "./.", ".|.", "0/.", "./1", ""} {
		t.Run("missing "+missing, func(t *testing.T) {
			assert.True(t, math.IsNaN(parseGT(missing)))
		})
	}
}

func TestParseFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.vcf.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sampleVCF))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	file, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, file.Matrix.Sites())
	assert.Equal(t, 2, file.Matrix.Samples())
}

func TestWriteFiltered(t *testing.T) {
	file, err := Parse(strings.NewReader(sampleVCF))
	require.NoError(t, err)

	t.Run("plain round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "filtered.vcf")
		require.NoError(t, WriteFiltered(file, []int{0, 2}, path))

		out, err := ParseFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"rs1", "rs3"}, out.Matrix.SiteIDs())
		assert.Equal(t, file.HeaderLines, out.HeaderLines)
	})

	t.Run("gzip round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "filtered.vcf.gz")
		require.NoError(t, WriteFiltered(file, []int{1}, path))

		out, err := ParseFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"chr1:200"}, out.Matrix.SiteIDs())
	})

	t.Run("out of range index", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.vcf")
		assert.Error(t, WriteFiltered(file, []int{9}, path))
	})
}
