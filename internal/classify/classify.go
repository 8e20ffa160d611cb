// Package classify turns intensity grids into binary urban masks:
// a threshold test followed by a morphological opening that strips
// isolated noise pixels.
package classify

import "github.com/geolumen/ntl-cli/internal/grid"

// KernelSize is the side of the square structuring element used by Open.
const KernelSize = 3

// Threshold marks every pixel with intensity at or above t.
func Threshold(g *grid.Grid, t float64) *grid.Mask {
	m := grid.NewMask(g.Rows(), g.Cols())
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			m.Set(r, c, g.At(r, c) >= t)
		}
	}
	return m
}

// Classify thresholds the grid and applies a 3x3 opening.
func Classify(g *grid.Grid, t float64) *grid.Mask {
	return Open(Threshold(g, t))
}

// Open performs a binary morphological opening with a full 3x3 kernel:
// erosion then dilation. Pixels outside the mask count as unlit, so lit
// regions touching the border erode inward like interior ones.
func Open(m *grid.Mask) *grid.Mask {
	return dilate(erode(m))
}

func erode(m *grid.Mask) *grid.Mask {
	out := grid.NewMask(m.Rows(), m.Cols())
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			out.Set(r, c, allNeighborsLit(m, r, c))
		}
	}
	return out
}

func dilate(m *grid.Mask) *grid.Mask {
	out := grid.NewMask(m.Rows(), m.Cols())
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			out.Set(r, c, anyNeighborLit(m, r, c))
		}
	}
	return out
}

func allNeighborsLit(m *grid.Mask, r, c int) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			rr, cc := r+dr, c+dc
			if rr < 0 || rr >= m.Rows() || cc < 0 || cc >= m.Cols() {
				return false
			}
			if !m.At(rr, cc) {
				return false
			}
		}
	}
	return true
}

func anyNeighborLit(m *grid.Mask, r, c int) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			rr, cc := r+dr, c+dc
			if rr < 0 || rr >= m.Rows() || cc < 0 || cc >= m.Cols() {
				continue
			}
			if m.At(rr, cc) {
				return true
			}
		}
	}
	return false
}
