package grid

import (
	"math"

	"go.uber.org/zap"
)

// DownsampleFactor returns the integer block size that maps a fine raster
// onto a coarse one, rounding the resolution ratio to the nearest integer.
func DownsampleFactor(coarseCellM, fineCellM float64) int {
	return int(math.Round(coarseCellM / fineCellM))
}

// BlockAverage collapses factor×factor tiles to their mean, ignoring NaN
// cells. Tiles with no finite cells become NaN. Trailing rows and columns
// that do not fill a whole tile are dropped.
func BlockAverage(g *Grid, factor int) *Grid {
	outRows := g.rows / factor
	outCols := g.cols / factor
	out := New(outRows, outCols, g.cellSizeM*float64(factor))
	out.originX = g.originX
	out.originY = g.originY + float64(g.rows-outRows*factor)*g.cellSizeM
	for r := 0; r < outRows; r++ {
		for c := 0; c < outCols; c++ {
			sum, n := 0.0, 0
			for dr := 0; dr < factor; dr++ {
				for dc := 0; dc < factor; dc++ {
					v := g.At(r*factor+dr, c*factor+dc)
					if !math.IsNaN(v) {
						sum += v
						n++
					}
				}
			}
			if n == 0 {
				out.Set(r, c, math.NaN())
			} else {
				out.Set(r, c, sum/float64(n))
			}
		}
	}
	return out
}

// Align resamples a fine raster to a coarse raster's resolution by block
// averaging. When the resolution ratio rounds to 1 or less the fine grid is
// already at (or below) the target resolution and is returned unchanged.
func Align(fine *Grid, coarseCellM float64) *Grid {
	factor := DownsampleFactor(coarseCellM, fine.cellSizeM)
	if factor <= 1 {
		zap.L().Warn("grid: downsample factor <= 1, skipping resample",
			zap.Float64("fine_cell_m", fine.cellSizeM),
			zap.Float64("coarse_cell_m", coarseCellM))
		return fine
	}
	return BlockAverage(fine, factor)
}
