// Package spatial partitions urban masks around their centroid into
// concentric rings and angular sectors, and tracks centroid movement
// between years.
package spatial

import (
	"fmt"
	"math"
	"sort"

	"github.com/geolumen/ntl-cli/internal/grid"
	"github.com/geolumen/ntl-cli/internal/model"
	"github.com/geolumen/ntl-cli/internal/morpho"
)

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Bearing converts a pixel-space offset to a compass bearing in degrees.
// Rows grow southward, so north is negative delta-row; 0 is north, 90 east,
// clockwise.
func Bearing(deltaRow, deltaCol float64) float64 {
	deg := math.Atan2(deltaCol, -deltaRow) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// CompassLabel maps a bearing to the nearest of the 16 compass points.
func CompassLabel(bearingDeg float64) string {
	i := int((math.Mod(bearingDeg, 360)+11.25)/22.5) % 16
	return compassPoints[i]
}

// sectorLabel names sector i of n equal wedges by its starting compass point.
func sectorLabel(i, n int) string {
	return compassPoints[(i*16/n)%16]
}

// RingBoundaries turns per-ring widths into cumulative outer radii.
func RingBoundaries(widthsM []float64) []float64 {
	out := make([]float64, len(widthsM))
	sum := 0.0
	for i, w := range widthsM {
		sum += w
		out[i] = sum
	}
	return out
}

// RingPartition bins lit pixels by centroid distance into concentric rings.
// The first ring is the core within the first boundary; later rings are the
// bands between consecutive boundaries. Pixels beyond the last boundary are
// left out of every ring, so ring percentages need not sum to 100.
func RingPartition(year int, m *grid.Mask, centroid morpho.Centroid, widthsM []float64, pixelSizeM float64) []model.RingStat {
	bounds := RingBoundaries(widthsM)
	counts := make([]int, len(bounds))
	total := 0
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			if !m.At(r, c) {
				continue
			}
			total++
			d := pixelDistM(float64(r)-centroid.Row, float64(c)-centroid.Col, pixelSizeM)
			for i, b := range bounds {
				if d < b {
					counts[i]++
					break
				}
			}
		}
	}

	areaPerPixel := (pixelSizeM / 1000) * (pixelSizeM / 1000)
	stats := make([]model.RingStat, len(bounds))
	for i := range bounds {
		inner := 0.0
		if i > 0 {
			inner = bounds[i-1]
		}
		name := "Core"
		if i > 0 {
			name = fmt.Sprintf("Ring %d", i+1)
		}
		stats[i] = model.RingStat{
			Year:           year,
			Ring:           name,
			InnerM:         inner,
			OuterM:         bounds[i],
			AreaKm2:        float64(counts[i]) * areaPerPixel,
			PercentOfTotal: percent(counts[i], total),
		}
	}
	return stats
}

// SectorPartition bins lit pixels by bearing from the centroid into n equal
// wedges starting at due north.
func SectorPartition(year int, m *grid.Mask, centroid morpho.Centroid, sectors int, pixelSizeM float64) []model.SectorStat {
	width := 360.0 / float64(sectors)
	counts := make([]int, sectors)
	total := 0
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			if !m.At(r, c) {
				continue
			}
			total++
			b := Bearing(float64(r)-centroid.Row, float64(c)-centroid.Col)
			i := int(b / width)
			if i >= sectors {
				i = sectors - 1
			}
			counts[i]++
		}
	}

	areaPerPixel := (pixelSizeM / 1000) * (pixelSizeM / 1000)
	stats := make([]model.SectorStat, sectors)
	for i := 0; i < sectors; i++ {
		stats[i] = model.SectorStat{
			Year:           year,
			Sector:         i,
			Direction:      sectorLabel(i, sectors),
			AngleMin:       float64(i) * width,
			AngleMax:       float64(i+1) * width,
			AreaKm2:        float64(counts[i]) * areaPerPixel,
			PercentOfTotal: percent(counts[i], total),
		}
	}
	return stats
}

// CentroidDisplacement walks the years in order and reports how far and in
// which direction the centroid moved between consecutive years that have
// one. Years without a centroid are skipped, not bridged.
func CentroidDisplacement(centroids map[int]*morpho.Centroid, pixelSizeM float64) []model.Displacement {
	years := make([]int, 0, len(centroids))
	for y := range centroids {
		years = append(years, y)
	}
	sort.Ints(years)

	var out []model.Displacement
	for i := 0; i+1 < len(years); i++ {
		from, to := centroids[years[i]], centroids[years[i+1]]
		if from == nil || to == nil {
			continue
		}
		dr := to.Row - from.Row
		dc := to.Col - from.Col
		bearing := Bearing(dr, dc)
		out = append(out, model.Displacement{
			YearFrom:       years[i],
			YearTo:         years[i+1],
			DisplacementM:  pixelDistM(dr, dc, pixelSizeM),
			BearingDegrees: bearing,
			Direction:      CompassLabel(bearing),
		})
	}
	return out
}

func pixelDistM(dr, dc, pixelSizeM float64) float64 {
	return math.Hypot(dr, dc) * pixelSizeM
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
