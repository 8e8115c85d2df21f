// Package plot renders the diagnostic charts as image files: the threshold
// sweep scatters and the per-sample missingness strip.
package plot

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cran/SNPfiltR/internal/contract"
	"github.com/cran/SNPfiltR/schema"
)

// Chart file names, extension appended per the configured format.
const (
	retainedChart = "snps_retained_by_level"
	missingChart  = "missingness_by_level"
	stripChart    = "sample_missingness_strip"
)

const chartSize = 5 * vg.Inch

// FilePlotter writes charts into a directory. It satisfies the Plotter
// contract of the analysis entry points.
type FilePlotter struct {
	dir    string
	format schema.PlotFormat
}

// NewFilePlotter builds a plotter that writes into cfg.PlotDir, creating the
// directory on first use.
func NewFilePlotter(cfg *contract.Config) *FilePlotter {
	return &FilePlotter{dir: cfg.PlotDir, format: cfg.PlotFormat}
}

// SummaryScatter renders the two sweep charts: SNPs retained per candidate
// level and mean missingness per candidate level. A non-nil cutoff draws a
// vertical marker on both charts.
func (fp *FilePlotter) SummaryScatter(rows []schema.SummaryRow, cutoff *float64) error {
	if err := fp.ensureDir(); err != nil {
		return err
	}

	retained := make(plotter.XYs, len(rows))
	missing := make(plotter.XYs, len(rows))
	for i, r := range rows {
		retained[i].X = r.Threshold
		retained[i].Y = float64(r.SNPsRetained)
		missing[i].X = r.Threshold
		missing[i].Y = r.MissingFrac
	}

	if err := fp.saveScatter(retainedChart, "SNPs retained by completeness level",
		"Completeness level", "SNPs retained", retained, cutoff); err != nil {
		return err
	}
	return fp.saveScatter(missingChart, "Missingness by completeness level",
		"Completeness level", "Mean missingness of retained SNPs", missing, cutoff)
}

// SampleStrip renders per-sample missingness at each candidate level as a
// jittered strip so sample outliers stand out.
func (fp *FilePlotter) SampleStrip(obs []schema.LevelSample) error {
	if err := fp.ensureDir(); err != nil {
		return err
	}

	// Fixed seed keeps the jitter reproducible across runs.
	rng := rand.New(rand.NewPCG(7, 13))
	pts := make(plotter.XYs, len(obs))
	for i, o := range obs {
		pts[i].X = o.Threshold + (rng.Float64()-0.5)*0.02
		pts[i].Y = o.MissingFrac
	}

	return fp.saveScatter(stripChart, "Per-sample missingness by completeness level",
		"Completeness level", "Sample missingness within retained SNPs", pts, nil)
}

// saveScatter draws one scatter chart and writes it to disk.
func (fp *FilePlotter) saveScatter(name, title, xLabel, yLabel string, pts plotter.XYs, cutoff *float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("build scatter %s: %w", name, err)
	}
	p.Add(scatter, plotter.NewGrid())

	if cutoff != nil {
		marker, err := cutoffMarker(*cutoff, pts)
		if err != nil {
			return fmt.Errorf("build cutoff marker: %w", err)
		}
		p.Add(marker)
		p.Legend.Add(fmt.Sprintf("cutoff %s", schema.FormatThreshold(*cutoff)), marker)
	}

	path := fp.chartPath(name)
	if err := p.Save(chartSize, chartSize, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}

// cutoffMarker builds a vertical line at x spanning the data's y range.
func cutoffMarker(x float64, pts plotter.XYs) (*plotter.Line, error) {
	yMin, yMax := 0.0, 1.0
	if len(pts) > 0 {
		yMin, yMax = pts[0].Y, pts[0].Y
		for _, p := range pts {
			if p.Y < yMin {
				yMin = p.Y
			}
			if p.Y > yMax {
				yMax = p.Y
			}
		}
	}
	return plotter.NewLine(plotter.XYs{{X: x, Y: yMin}, {X: x, Y: yMax}})
}

// chartPath joins the plot directory, chart name, and format extension.
func (fp *FilePlotter) chartPath(name string) string {
	return filepath.Join(fp.dir, name+"."+string(fp.format))
}

func (fp *FilePlotter) ensureDir() error {
	if err := os.MkdirAll(fp.dir, 0o755); err != nil {
		return fmt.Errorf("create plot directory %s: %w", fp.dir, err)
	}
	return nil
}
