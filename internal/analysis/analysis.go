// Package analysis drives the per-year pipeline: composite the monthly
// rasters, classify urban extent, measure its shape and spatial structure,
// and derive the year-over-year series.
package analysis

import (
	"context"
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/geolumen/ntl-cli/internal/boundary"
	"github.com/geolumen/ntl-cli/internal/classify"
	"github.com/geolumen/ntl-cli/internal/grid"
	"github.com/geolumen/ntl-cli/internal/model"
	"github.com/geolumen/ntl-cli/internal/morpho"
	"github.com/geolumen/ntl-cli/internal/raster"
	"github.com/geolumen/ntl-cli/internal/spatial"
)

// Params configures an analysis run.
type Params struct {
	Threshold             float64
	SensitivityThresholds []float64
	RingWidthsM           []float64
	Sectors               int
	PixelSizeM            float64
	Concurrency           int
	Area                  *boundary.Area
}

// YearOutput bundles everything the pipeline derives from one year.
type YearOutput struct {
	Metrics     model.YearMetrics
	DNStats     model.DNStats
	Rings       []model.RingStat
	Sectors     []model.SectorStat
	Sensitivity []model.SensitivityRow
	Centroid    *morpho.Centroid
	Mask        *grid.Mask
	Composite   *grid.Grid
}

// Run processes every year in byYear concurrently and assembles the
// combined result, including growth rates and centroid displacements that
// need to see the whole series. The per-year outputs are returned alongside
// so callers can export masks and composites.
func Run(ctx context.Context, byYear map[int][]string, p Params) (*model.AnalysisResult, []*YearOutput, error) {
	years := raster.Years(byYear)
	outputs := make([]*YearOutput, len(years))

	g, gctx := errgroup.WithContext(ctx)
	if p.Concurrency > 0 {
		g.SetLimit(p.Concurrency)
	}
	for i, year := range years {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			log := zap.L().With(zap.Int("year", year))
			log.Info("processing year", zap.Int("rasters", len(byYear[year])))
			out, err := ProcessYear(year, byYear[year], p)
			if err != nil {
				return err
			}
			outputs[i] = out
			log.Info("year done",
				zap.Float64("lit_area_km2", out.Metrics.LitAreaKm2),
				zap.Int("lit_pixels", out.Metrics.PixelCount))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return Assemble(years, outputs, p), outputs, nil
}

// ProcessYear composites one year's rasters and measures its urban extent.
func ProcessYear(year int, paths []string, p Params) (*YearOutput, error) {
	months := make([]*grid.Grid, 0, len(paths))
	for _, path := range paths {
		g, err := raster.ReadASC(path)
		if err != nil {
			return nil, err
		}
		months = append(months, g)
	}
	composite, err := grid.MedianComposite(months)
	if err != nil {
		return nil, eris.Wrapf(err, "analysis: year %d", year)
	}
	if p.Area != nil {
		composite = p.Area.Clip(composite)
	}
	return measureYear(year, composite, p), nil
}

func measureYear(year int, composite *grid.Grid, p Params) *YearOutput {
	mask := classify.Classify(composite, p.Threshold)
	out := &YearOutput{
		Mask:      mask,
		Composite: composite,
		DNStats:   dnStats(year, composite),
		Metrics: model.YearMetrics{
			Year:        year,
			LitAreaKm2:  morpho.LitArea(mask, p.PixelSizeM),
			Compactness: morpho.Compactness(mask),
			PixelCount:  mask.Count(),
		},
	}
	if c, ok := morpho.MaskCentroid(mask); ok {
		out.Centroid = &c
		out.Metrics.CentroidRow = &c.Row
		out.Metrics.CentroidCol = &c.Col
		out.Rings = spatial.RingPartition(year, mask, c, p.RingWidthsM, p.PixelSizeM)
		out.Sectors = spatial.SectorPartition(year, mask, c, p.Sectors, p.PixelSizeM)
	}
	for _, t := range p.SensitivityThresholds {
		m := classify.Classify(composite, t)
		out.Sensitivity = append(out.Sensitivity, model.SensitivityRow{
			Year:        year,
			Threshold:   t,
			LitAreaKm2:  morpho.LitArea(m, p.PixelSizeM),
			Compactness: morpho.Compactness(m),
			PixelCount:  m.Count(),
		})
	}
	return out
}

// Assemble stitches per-year outputs into the combined result, filling the
// series-level fields.
func Assemble(years []int, outputs []*YearOutput, p Params) *model.AnalysisResult {
	res := &model.AnalysisResult{Years: years}
	centroids := make(map[int]*morpho.Centroid, len(outputs))
	for i, out := range outputs {
		m := out.Metrics
		if i > 0 {
			prev := outputs[i-1].Metrics.LitAreaKm2
			if prev > 0 {
				pct := 100 * (m.LitAreaKm2 - prev) / prev
				m.AnnualGrowthPct = &pct
			}
		}
		res.Metrics = append(res.Metrics, m)
		res.DNStats = append(res.DNStats, out.DNStats)
		res.Rings = append(res.Rings, out.Rings...)
		res.Sectors = append(res.Sectors, out.Sectors...)
		res.Sensitivity = append(res.Sensitivity, out.Sensitivity...)
		centroids[years[i]] = out.Centroid
	}
	res.Displacements = spatial.CentroidDisplacement(centroids, p.PixelSizeM)
	return res
}

// dnStats summarizes the observed (nonzero, finite) radiances of a
// composite. A fully dark composite reports zeros.
func dnStats(year int, g *grid.Grid) model.DNStats {
	var vals []float64
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if v := g.At(r, c); v != 0 && !math.IsNaN(v) {
				vals = append(vals, v)
			}
		}
	}
	out := model.DNStats{Year: year}
	if len(vals) == 0 {
		return out
	}
	sort.Float64s(vals)
	out.MinDN = vals[0]
	out.MaxDN = vals[len(vals)-1]
	out.MeanDN = stat.Mean(vals, nil)
	if n := len(vals); n%2 == 1 {
		out.MedianDN = vals[n/2]
	} else {
		out.MedianDN = (vals[n/2-1] + vals[n/2]) / 2
	}
	return out
}
