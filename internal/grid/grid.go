// Package grid provides the in-memory raster types the analysis operates on:
// a float64 intensity grid and a binary mask, plus compositing and
// resampling over them. Grids are row-major with row 0 at the north edge.
package grid

import (
	"math"

	"github.com/rotisserie/eris"
)

// ErrShapeMismatch is returned when grids expected to share dimensions do not.
var ErrShapeMismatch = eris.New("grid: shape mismatch")

// Grid is a 2-D intensity raster. Zero is the conventional no-data sentinel
// for compositing; NaN marks cells produced from all-missing source tiles.
type Grid struct {
	rows, cols int
	cellSizeM  float64
	originX    float64
	originY    float64
	data       []float64
}

// New allocates a zero-filled grid.
func New(rows, cols int, cellSizeM float64) *Grid {
	return &Grid{
		rows:      rows,
		cols:      cols,
		cellSizeM: cellSizeM,
		data:      make([]float64, rows*cols),
	}
}

// FromRows builds a grid from row slices. All rows must share one length.
func FromRows(rows [][]float64, cellSizeM float64) (*Grid, error) {
	if len(rows) == 0 {
		return nil, eris.New("grid: no rows")
	}
	g := New(len(rows), len(rows[0]), cellSizeM)
	for r, row := range rows {
		if len(row) != g.cols {
			return nil, eris.Wrapf(ErrShapeMismatch, "row %d has %d cols, want %d", r, len(row), g.cols)
		}
		copy(g.data[r*g.cols:(r+1)*g.cols], row)
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// CellSize returns the pixel size in meters.
func (g *Grid) CellSize() float64 { return g.cellSizeM }

// SetOrigin records the world coordinates of the lower-left corner.
func (g *Grid) SetOrigin(x, y float64) { g.originX, g.originY = x, y }

// Origin returns the world coordinates of the lower-left corner.
func (g *Grid) Origin() (x, y float64) { return g.originX, g.originY }

// At returns the value at (row, col).
func (g *Grid) At(r, c int) float64 { return g.data[r*g.cols+c] }

// Set stores a value at (row, col).
func (g *Grid) Set(r, c int, v float64) { g.data[r*g.cols+c] = v }

// SameShape reports whether two grids have identical dimensions.
func (g *Grid) SameShape(o *Grid) bool {
	return g.rows == o.rows && g.cols == o.cols
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := New(g.rows, g.cols, g.cellSizeM)
	c.originX, c.originY = g.originX, g.originY
	copy(c.data, g.data)
	return c
}

// Crop returns a top-left aligned view copy limited to rows×cols.
func (g *Grid) Crop(rows, cols int) *Grid {
	if rows > g.rows {
		rows = g.rows
	}
	if cols > g.cols {
		cols = g.cols
	}
	out := New(rows, cols, g.cellSizeM)
	out.originX, out.originY = g.originX, g.originY
	for r := 0; r < rows; r++ {
		copy(out.data[r*cols:(r+1)*cols], g.data[r*g.cols:r*g.cols+cols])
	}
	return out
}

// CellCenter returns the world coordinates of the center of cell (row, col).
// Row 0 is the northernmost row, so its centers carry the largest y.
func (g *Grid) CellCenter(r, c int) (x, y float64) {
	x = g.originX + (float64(c)+0.5)*g.cellSizeM
	y = g.originY + (float64(g.rows-1-r)+0.5)*g.cellSizeM
	return x, y
}

// Mask is a binary raster derived from a Grid; true means "lit/urban".
type Mask struct {
	rows, cols int
	data       []uint8
}

// NewMask allocates an all-false mask.
func NewMask(rows, cols int) *Mask {
	return &Mask{rows: rows, cols: cols, data: make([]uint8, rows*cols)}
}

// Rows returns the number of rows.
func (m *Mask) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Mask) Cols() int { return m.cols }

// At reports whether the pixel at (row, col) is lit.
func (m *Mask) At(r, c int) bool { return m.data[r*m.cols+c] != 0 }

// Set marks the pixel at (row, col).
func (m *Mask) Set(r, c int, lit bool) {
	if lit {
		m.data[r*m.cols+c] = 1
	} else {
		m.data[r*m.cols+c] = 0
	}
}

// Count returns the number of lit pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.data {
		if v != 0 {
			n++
		}
	}
	return n
}

// SameShape reports whether two masks have identical dimensions.
func (m *Mask) SameShape(o *Mask) bool {
	return m.rows == o.rows && m.cols == o.cols
}

// Clone returns a deep copy.
func (m *Mask) Clone() *Mask {
	c := NewMask(m.rows, m.cols)
	copy(c.data, m.data)
	return c
}

// Crop returns a top-left aligned copy limited to rows×cols.
func (m *Mask) Crop(rows, cols int) *Mask {
	if rows > m.rows {
		rows = m.rows
	}
	if cols > m.cols {
		cols = m.cols
	}
	out := NewMask(rows, cols)
	for r := 0; r < rows; r++ {
		copy(out.data[r*cols:(r+1)*cols], m.data[r*m.cols:r*m.cols+cols])
	}
	return out
}

// Equal reports whether two masks have the same shape and pixels.
func (m *Mask) Equal(o *Mask) bool {
	if !m.SameShape(o) {
		return false
	}
	for i, v := range m.data {
		if v != o.data[i] {
			return false
		}
	}
	return true
}

// CommonExtent returns the top-left aligned shared dimensions of two rasters.
func CommonExtent(rowsA, colsA, rowsB, colsB int) (rows, cols int) {
	rows = rowsA
	if rowsB < rows {
		rows = rowsB
	}
	cols = colsA
	if colsB < cols {
		cols = colsB
	}
	return rows, cols
}

// IsMissing reports whether a cell value is the no-data sentinel.
func IsMissing(v float64) bool {
	return v == 0 || math.IsNaN(v)
}
