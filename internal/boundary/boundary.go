// Package boundary loads a study-area polygon from a shapefile and clips
// intensity grids to it.
package boundary

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"

	"github.com/geolumen/ntl-cli/internal/grid"
)

// Area is a set of outer polygon rings in the raster's coordinate system.
type Area struct {
	rings [][]float64
}

// Load reads every polygon record from a shapefile and keeps the outer
// rings. Shapefile outer rings wind clockwise; counterclockwise rings are
// holes and are skipped.
func Load(path string) (*Area, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	area := &Area{}
	var holes int
	for reader.Next() {
		_, shape := reader.Shape()
		p, ok := shape.(*shp.Polygon)
		if !ok || p.NumParts == 0 || len(p.Points) == 0 {
			continue
		}
		for i := int32(0); i < p.NumParts; i++ {
			start := p.Parts[i]
			end := int32(len(p.Points))
			if i+1 < p.NumParts {
				end = p.Parts[i+1]
			}
			flat := make([]float64, 0, (end-start)*2)
			for j := start; j < end; j++ {
				flat = append(flat, p.Points[j].X, p.Points[j].Y)
			}
			if signedArea(flat) > 0 {
				holes++
				continue
			}
			area.rings = append(area.rings, flat)
		}
	}
	if len(area.rings) == 0 {
		return nil, eris.Errorf("boundary: no polygon rings in %s", path)
	}
	if holes > 0 {
		zap.L().Debug("boundary: skipped interior rings",
			zap.String("file", path), zap.Int("holes", holes))
	}
	return area, nil
}

// Contains reports whether a point falls inside any outer ring.
func (a *Area) Contains(x, y float64) bool {
	pt := geom.Coord{x, y}
	for _, ring := range a.rings {
		if xy.IsPointInRing(geom.XY, pt, ring) {
			return true
		}
	}
	return false
}

// Clip zeroes every cell whose center falls outside the area and returns
// the clipped copy.
func (a *Area) Clip(g *grid.Grid) *grid.Grid {
	out := g.Clone()
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			x, y := g.CellCenter(r, c)
			if !a.Contains(x, y) {
				out.Set(r, c, 0)
			}
		}
	}
	return out
}

// signedArea is the shoelace sum of a flat XY ring; positive means
// counterclockwise.
func signedArea(flat []float64) float64 {
	n := len(flat) / 2
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += flat[i*2]*flat[j*2+1] - flat[j*2]*flat[i*2+1]
	}
	return sum / 2
}
