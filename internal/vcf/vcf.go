// Package vcf reads and writes Variant Call Format text files. Parsing keeps
// the raw record lines alongside the genotype matrix so a filtered file can
// be written back without reconstructing fields.
package vcf

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"gonum.org/v1/gonum/mat"

	"github.com/cran/SNPfiltR/schema"
)

// maxLineBytes bounds a single VCF record. Deep multi-sample records can run
// long, so the scanner buffer is raised well past the bufio default.
const maxLineBytes = 16 * 1024 * 1024

// File is a parsed VCF: the meta/header lines, one raw line per record, and
// the genotype dosage matrix derived from the GT fields.
type File struct {
	// HeaderLines are the ## meta lines plus the #CHROM header, in order.
	HeaderLines []string

	// RecordLines are the raw data lines, index-aligned with Matrix sites.
	RecordLines []string

	Matrix *schema.Matrix
}

// ParseFile reads a VCF from disk. Files ending in .gz are decompressed
// transparently.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open VCF: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}
	return Parse(r)
}

// Parse reads a VCF from an open stream.
func Parse(r io.Reader) (*File, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	file := &File{}
	var sampleIDs []string
	var siteIDs []string
	var dosages []float64
	sawHeader := false

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "##"):
			file.HeaderLines = append(file.HeaderLines, line)
		case strings.HasPrefix(line, "#CHROM"):
			ids, err := parseColumnHeader(line)
			if err != nil {
				return nil, err
			}
			sampleIDs = ids
			sawHeader = true
			file.HeaderLines = append(file.HeaderLines, line)
		default:
			if !sawHeader {
				return nil, &schema.InvalidInputError{Reason: "VCF record appears before #CHROM header line"}
			}
			id, row, err := parseRecord(line, len(sampleIDs))
			if err != nil {
				return nil, err
			}
			siteIDs = append(siteIDs, id)
			dosages = append(dosages, row...)
			file.RecordLines = append(file.RecordLines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read VCF: %w", err)
	}
	if !sawHeader {
		return nil, &schema.InvalidInputError{Reason: "missing #CHROM header line"}
	}
	if len(siteIDs) == 0 {
		return nil, &schema.InvalidInputError{Reason: "VCF contains no variant records"}
	}

	dense := mat.NewDense(len(siteIDs), len(sampleIDs), dosages)
	m, err := schema.NewMatrix(dense, siteIDs, sampleIDs)
	if err != nil {
		return nil, err
	}
	file.Matrix = m
	return file, nil
}

// parseColumnHeader extracts sample names from the #CHROM line.
func parseColumnHeader(line string) ([]string, error) {
	fields := strings.Split(line, "\t")
	// Fixed columns: CHROM POS ID REF ALT QUAL FILTER INFO FORMAT.
	if len(fields) < 10 {
		return nil, &schema.InvalidInputError{Reason: "VCF has no sample columns"}
	}
	return fields[9:], nil
}

// parseRecord converts one data line into a site ID and a dosage row.
// Genotypes count ALT alleles (0, 1, 2 for diploids); any missing allele
// marks the whole call missing.
func parseRecord(line string, numSamples int) (string, []float64, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 9+numSamples {
		return "", nil, &schema.InvalidInputError{
			Reason: fmt.Sprintf("record has %d columns, expected %d", len(fields), 9+numSamples),
		}
	}

	id := fields[2]
	if id == "." || id == "" {
		id = fields[0] + ":" + fields[1]
	}

	gtIdx := gtFieldIndex(fields[8])
	if gtIdx < 0 {
		return "", nil, &schema.InvalidInputError{
			Reason: fmt.Sprintf("record %s has no GT field in FORMAT %q", id, fields[8]),
		}
	}

	row := make([]float64, numSamples)
	for j := range numSamples {
		call := fields[9+j]
		parts := strings.SplitN(call, ":", gtIdx+2)
		if gtIdx >= len(parts) {
			row[j] = math.NaN()
			continue
		}
		row[j] = parseGT(parts[gtIdx])
	}
	return id, row, nil
}

// gtFieldIndex returns the position of GT within a FORMAT string, or -1.
func gtFieldIndex(format string) int {
	for i, key := range strings.Split(format, ":") {
		if key == "GT" {
			return i
		}
	}
	return -1
}

// parseGT converts a GT value like "0/1" or "1|1" into an ALT dosage.
// "./.", ".", and partially missing calls map to NaN.
func parseGT(gt string) float64 {
	if gt == "" || gt == "." {
		return math.NaN()
	}
	alleles := strings.FieldsFunc(gt, func(r rune) bool {
		return r == '/' || r == '|'
	})
	if len(alleles) == 0 {
		return math.NaN()
	}
	dosage := 0.0
	for _, a := range alleles {
		if a == "." || a == "" {
			return math.NaN()
		}
		if a != "0" {
			dosage++
		}
	}
	return dosage
}
