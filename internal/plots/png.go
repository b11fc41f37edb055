package plots

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Samples per curve in generated charts.
const Samples = 161

// NewPlot builds the gonum plot for r.
func NewPlot(r Ramp) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = r.Title
	p.X.Label.Text = r.XLabel
	p.Y.Label.Text = r.YLabel

	xs, ys := r.Sample(Samples)
	for j, s := range r.Series {
		pts := make(plotter.XYs, len(xs))
		for i, x := range xs {
			pts[i] = plotter.XY{X: x, Y: ys[j][i]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", r.Name, s.Name, err)
		}
		line.Width = vg.Points(1.5)
		line.Color = plotutil.Color(j)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}
	p.Legend.Top = true
	p.Legend.Left = false
	p.Add(plotter.NewGrid())
	return p, nil
}

// WritePNGs saves one PNG per ramp in dir and returns the paths.
func WritePNGs(dir string, ramps []Ramp) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	paths := make([]string, 0, len(ramps))
	for _, r := range ramps {
		p, err := NewPlot(r)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, r.Name+".png")
		if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
			return paths, fmt.Errorf("failed to save %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
