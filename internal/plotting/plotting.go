// Package plotting renders filled histograms to PNG files using
// gonum/plot. The step outline mirrors the conventional HEP histogram
// style: a horizontal segment per bin joined by verticals at the edges.
package plotting

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/hepworks/trijet.report/internal/histogram"
	"github.com/hepworks/trijet.report/internal/security"
)

// File names of the standard report plots.
const (
	PtPlotFile   = "pt_trijet.png"
	DiscPlotFile = "disc_trijet.png"
	MassPlotFile = "mass_trijet.png"
)

// stepOutline converts bin counts into the XY polyline of a step-style
// histogram: up the left edge of each occupied region, across the bin,
// down at the end.
func stepOutline(h *histogram.Histogram) plotter.XYs {
	w := h.BinWidth()
	pts := make(plotter.XYs, 0, 2*len(h.Counts)+2)
	pts = append(pts, plotter.XY{X: h.Lo, Y: 0})
	for i, c := range h.Counts {
		left := h.Lo + float64(i)*w
		pts = append(pts,
			plotter.XY{X: left, Y: c},
			plotter.XY{X: left + w, Y: c},
		)
	}
	pts = append(pts, plotter.XY{X: h.Hi, Y: 0})
	return pts
}

// SavePNG renders one histogram as a step plot to the given file.
func SavePNG(h *histogram.Histogram, title, xLabel, file string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Events"

	line, err := plotter.NewLine(stepOutline(h))
	if err != nil {
		return fmt.Errorf("build step line: %w", err)
	}
	line.Color = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}
	line.Width = vg.Points(2)
	p.Add(line, plotter.NewGrid())

	if err := p.Save(10*vg.Inch, 8*vg.Inch, file); err != nil {
		return fmt.Errorf("save plot %s: %w", file, err)
	}
	return nil
}

// Report bundles the three standard histograms of a run.
type Report struct {
	Pt   *histogram.Histogram
	Disc *histogram.Histogram
	Mass *histogram.Histogram
}

// SaveAll writes the standard report plots into dir, creating it if
// needed. Returns the number of plots written.
func (r *Report) SaveAll(dir string) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output dir: %w", err)
	}

	count := 0
	type job struct {
		h      *histogram.Histogram
		title  string
		xLabel string
		file   string
	}
	jobs := []job{
		{r.Pt, "Trijet pT Distribution", "Trijet pT [GeV]", PtPlotFile},
		{r.Disc, "Maximum b-tag Discriminant Distribution", "Maximum b-tag discriminant", DiscPlotFile},
		{r.Mass, "Trijet Mass Distribution", "Trijet mass [GeV]", MassPlotFile},
	}
	for _, j := range jobs {
		if j.h == nil {
			continue
		}
		if err := SavePNG(j.h, j.title, j.xLabel, filepath.Join(dir, j.file)); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// FormatTimestamp generates a timestamp string for directory naming.
func FormatTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// MakeOutputDir builds a timestamped plot directory path under baseDir,
// keyed by dataset name: plots/<dataset>/<timestamp>. The dataset name
// is sanitized because it may come from a user-supplied file.
func MakeOutputDir(baseDir, dataset string) string {
	return filepath.Join(baseDir, security.SanitizeName(dataset), FormatTimestamp(time.Now()))
}
