package report

import (
	"fmt"
	"image/color"
	"path/filepath"
	"sort"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/geolumen/ntl-cli/internal/model"
)

// WritePlots renders the time-series figures into dir: lit area by year,
// annual growth, and the threshold sensitivity curves.
func WritePlots(dir string, res *model.AnalysisResult) error {
	if err := litAreaPlot(filepath.Join(dir, "lit_area.png"), res.Metrics); err != nil {
		return err
	}
	if err := growthPlot(filepath.Join(dir, "annual_growth.png"), res.Metrics); err != nil {
		return err
	}
	if err := sensitivityPlot(filepath.Join(dir, "threshold_sensitivity.png"), res.Sensitivity); err != nil {
		return err
	}
	return nil
}

func litAreaPlot(path string, metrics []model.YearMetrics) error {
	if len(metrics) == 0 {
		return nil
	}
	p := plot.New()
	p.Title.Text = "Lit Area by Year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Area (km2)"

	pts := make(plotter.XYs, 0, len(metrics))
	for _, m := range metrics {
		pts = append(pts, plotter.XY{X: float64(m.Year), Y: m.LitAreaKm2})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return eris.Wrap(err, "report: lit area line")
	}
	line.Width = vg.Points(1.5)
	p.Add(line)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}

func growthPlot(path string, metrics []model.YearMetrics) error {
	pts := make(plotter.XYs, 0, len(metrics))
	for _, m := range metrics {
		if m.AnnualGrowthPct != nil {
			pts = append(pts, plotter.XY{X: float64(m.Year), Y: *m.AnnualGrowthPct})
		}
	}
	if len(pts) == 0 {
		return nil
	}
	p := plot.New()
	p.Title.Text = "Annual Growth of Lit Area"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Growth (%)"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return eris.Wrap(err, "report: growth line")
	}
	line.Width = vg.Points(1.5)
	p.Add(line)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}

func sensitivityPlot(path string, rows []model.SensitivityRow) error {
	if len(rows) == 0 {
		return nil
	}
	byThreshold := make(map[float64]plotter.XYs)
	for _, r := range rows {
		byThreshold[r.Threshold] = append(byThreshold[r.Threshold],
			plotter.XY{X: float64(r.Year), Y: r.LitAreaKm2})
	}
	thresholds := make([]float64, 0, len(byThreshold))
	for t := range byThreshold {
		thresholds = append(thresholds, t)
	}
	sort.Float64s(thresholds)

	p := plot.New()
	p.Title.Text = "Lit Area by Threshold"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Area (km2)"

	colors := palette(len(thresholds))
	for i, t := range thresholds {
		pts := byThreshold[t]
		sort.Slice(pts, func(a, b int) bool { return pts[a].X < pts[b].X })
		line, err := plotter.NewLine(pts)
		if err != nil {
			return eris.Wrap(err, "report: sensitivity line")
		}
		line.Color = colors[i]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("t=%g", t), line)
	}
	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}

func palette(n int) []color.Color {
	base := []color.Color{
		color.RGBA{R: 31, G: 119, B: 180, A: 255},
		color.RGBA{R: 255, G: 127, B: 14, A: 255},
		color.RGBA{R: 44, G: 160, B: 44, A: 255},
		color.RGBA{R: 214, G: 39, B: 40, A: 255},
		color.RGBA{R: 148, G: 103, B: 189, A: 255},
		color.RGBA{R: 140, G: 86, B: 75, A: 255},
	}
	out := make([]color.Color, n)
	for i := 0; i < n; i++ {
		out[i] = base[i%len(base)]
	}
	return out
}
