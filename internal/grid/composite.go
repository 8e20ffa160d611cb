package grid

import (
	"sort"

	"github.com/rotisserie/eris"
)

// MedianComposite collapses monthly rasters for one year into a single
// annual grid by per-pixel median of the non-missing observations. Zero is
// the missing sentinel; pixels missing in every input stay zero. All inputs
// must share the shape of the first.
func MedianComposite(months []*Grid) (*Grid, error) {
	if len(months) == 0 {
		return nil, eris.New("grid: median composite needs at least one input")
	}
	first := months[0]
	for i, m := range months[1:] {
		if !first.SameShape(m) {
			return nil, eris.Wrapf(ErrShapeMismatch,
				"composite input %d is %dx%d, want %dx%d",
				i+1, m.Rows(), m.Cols(), first.Rows(), first.Cols())
		}
	}

	out := New(first.rows, first.cols, first.cellSizeM)
	out.originX, out.originY = first.originX, first.originY
	vals := make([]float64, 0, len(months))
	for i := range out.data {
		vals = vals[:0]
		for _, m := range months {
			if v := m.data[i]; !IsMissing(v) {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			continue
		}
		out.data[i] = median(vals)
	}
	return out, nil
}

// median mutates vals by sorting. Even counts average the two middle values.
func median(vals []float64) float64 {
	sort.Float64s(vals)
	n := len(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return (vals[n/2-1] + vals[n/2]) / 2
}
