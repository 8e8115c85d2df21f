package vcf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// WriteFiltered writes the header plus the kept record lines to path. The
// keep indices refer to positions in f.RecordLines and must be ascending.
// Paths ending in .gz are compressed.
func WriteFiltered(f *File, keep []int, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create filtered VCF: %w", err)
	}
	defer func() { _ = out.Close() }()

	var w io.Writer = out
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(out)
		defer func() { _ = gz.Close() }()
		w = gz
	}

	bw := bufio.NewWriter(w)
	for _, line := range f.HeaderLines {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("write filtered VCF: %w", err)
		}
	}
	for _, i := range keep {
		if i < 0 || i >= len(f.RecordLines) {
			return fmt.Errorf("keep index %d out of range for %d records", i, len(f.RecordLines))
		}
		if _, err := bw.WriteString(f.RecordLines[i] + "\n"); err != nil {
			return fmt.Errorf("write filtered VCF: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush filtered VCF: %w", err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("close gzip stream: %w", err)
		}
	}
	return out.Close()
}
