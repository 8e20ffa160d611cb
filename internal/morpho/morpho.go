// Package morpho measures the shape of binary urban masks: lit area,
// connected components, boundary perimeter, compactness and centroid.
package morpho

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/geolumen/ntl-cli/internal/grid"
)

// LitArea converts a lit-pixel count to square kilometers.
func LitArea(m *grid.Mask, pixelSizeM float64) float64 {
	side := pixelSizeM / 1000
	return float64(m.Count()) * side * side
}

type pixel struct{ r, c int }

// Component is one 8-connected lit region, pixels in row-major order.
type Component struct {
	pixels []pixel
}

// Size returns the pixel count of the component.
func (c *Component) Size() int { return len(c.pixels) }

// eight-neighborhood offsets, clockwise from north
var moore = [8][2]int{
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1},
}

// Components labels the mask's 8-connected lit regions. Regions appear in
// the order their first pixel is met scanning row-major.
func Components(m *grid.Mask) []*Component {
	var comps []*Component
	seen := make([]bool, m.Rows()*m.Cols())
	idx := func(r, c int) int { return r*m.Cols() + c }
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			if !m.At(r, c) || seen[idx(r, c)] {
				continue
			}
			comp := &Component{}
			queue := []pixel{{r, c}}
			seen[idx(r, c)] = true
			for len(queue) > 0 {
				p := queue[0]
				queue = queue[1:]
				comp.pixels = append(comp.pixels, p)
				for _, d := range moore {
					rr, cc := p.r+d[0], p.c+d[1]
					if rr < 0 || rr >= m.Rows() || cc < 0 || cc >= m.Cols() {
						continue
					}
					if m.At(rr, cc) && !seen[idx(rr, cc)] {
						seen[idx(rr, cc)] = true
						queue = append(queue, pixel{rr, cc})
					}
				}
			}
			comps = append(comps, comp)
		}
	}
	return comps
}

// Largest returns the component with the most pixels, the earliest one in
// scan order winning ties. Nil when the mask is empty.
func Largest(m *grid.Mask) *Component {
	var best *Component
	for _, comp := range Components(m) {
		if best == nil || comp.Size() > best.Size() {
			best = comp
		}
	}
	return best
}

// Perimeter traces the outer boundary of the component with Moore-neighbor
// tracing and sums the step lengths in pixel units: 1 for orthogonal moves,
// sqrt(2) for diagonal ones. A single pixel has no boundary path and
// yields zero.
func (comp *Component) Perimeter(m *grid.Mask) float64 {
	if len(comp.pixels) <= 1 {
		return 0
	}
	start := comp.pixels[0]

	// first move out of the start pixel; the scan entered it from the west
	firstTo, firstBacktrack, ok := nextBoundary(m, start, 6)
	if !ok {
		return 0
	}

	perim := stepLen(start, firstTo)
	cur, backtrack := firstTo, firstBacktrack
	maxSteps := 4 * m.Rows() * m.Cols()
	for step := 0; step < maxSteps; step++ {
		to, back, ok := nextBoundary(m, cur, backtrack)
		if !ok {
			break
		}
		if cur == start && to == firstTo {
			break
		}
		perim += stepLen(cur, to)
		cur, backtrack = to, back
	}
	return perim
}

// nextBoundary scans the Moore neighborhood of p clockwise, starting just
// after the backtrack direction, and returns the first lit neighbor along
// with the direction of the unlit pixel checked right before it.
func nextBoundary(m *grid.Mask, p pixel, backtrackDir int) (next pixel, newBacktrack int, ok bool) {
	prev := backtrackDir
	for i := 1; i <= 8; i++ {
		dir := (backtrackDir + i) % 8
		rr, cc := p.r+moore[dir][0], p.c+moore[dir][1]
		if rr >= 0 && rr < m.Rows() && cc >= 0 && cc < m.Cols() && m.At(rr, cc) {
			// backtrack for the next pixel points from it to the last
			// unlit neighbor we passed
			np := pixel{rr, cc}
			pr, pc := p.r+moore[prev][0], p.c+moore[prev][1]
			return np, dirBetween(np, pixel{pr, pc}), true
		}
		prev = dir
	}
	return pixel{}, 0, false
}

func dirBetween(from, to pixel) int {
	for i, d := range moore {
		if from.r+d[0] == to.r && from.c+d[1] == to.c {
			return i
		}
	}
	return 6
}

func stepLen(a, b pixel) float64 {
	if a.r != b.r && a.c != b.c {
		return math.Sqrt2
	}
	return 1
}

// Compactness is the isoperimetric ratio 4*pi*A/P^2 of the largest
// connected component, clamped to [0, 1]. An empty mask scores zero; a
// component with no measurable perimeter scores one.
func Compactness(m *grid.Mask) float64 {
	comp := Largest(m)
	if comp == nil {
		return 0
	}
	perim := comp.Perimeter(m)
	if perim == 0 {
		return 1
	}
	c := 4 * math.Pi * float64(comp.Size()) / (perim * perim)
	if c > 1 {
		return 1
	}
	return c
}

// Centroid is the unweighted mean pixel position of a mask.
type Centroid struct {
	Row float64
	Col float64
}

// MaskCentroid returns the mean lit-pixel position. The second return is
// false when the mask has no lit pixels.
func MaskCentroid(m *grid.Mask) (Centroid, bool) {
	var rows, cols []float64
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			if m.At(r, c) {
				rows = append(rows, float64(r))
				cols = append(cols, float64(c))
			}
		}
	}
	if len(rows) == 0 {
		return Centroid{}, false
	}
	return Centroid{
		Row: stat.Mean(rows, nil),
		Col: stat.Mean(cols, nil),
	}, true
}
