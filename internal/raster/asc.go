// Package raster reads and writes intensity grids as ESRI ASCII rasters
// and discovers yearly inputs on disk.
package raster

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/geolumen/ntl-cli/internal/grid"
)

const defaultNoData = -9999.0

// ReadASC parses an ESRI ASCII raster. NODATA cells become zero, the
// missing sentinel the compositor expects.
func ReadASC(path string) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "raster: open %s", path)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", eris.Wrapf(err, "raster: read %s", path)
			}
			return "", eris.Errorf("raster: %s: unexpected end of file", path)
		}
		return sc.Text(), nil
	}

	header := map[string]float64{}
	noData := defaultNoData
	var firstValue string
	for {
		tok, err := next()
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(tok)
		switch key {
		case "ncols", "nrows", "xllcorner", "yllcorner", "cellsize", "nodata_value":
			val, err := next()
			if err != nil {
				return nil, err
			}
			v, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, eris.Wrapf(err, "raster: %s: bad %s", path, key)
			}
			if key == "nodata_value" {
				noData = v
			} else {
				header[key] = v
			}
			continue
		}
		firstValue = tok
		break
	}

	for _, k := range []string{"ncols", "nrows", "cellsize"} {
		if _, ok := header[k]; !ok {
			return nil, eris.Errorf("raster: %s: missing header %s", path, k)
		}
	}
	rows, cols := int(header["nrows"]), int(header["ncols"])
	if rows <= 0 || cols <= 0 {
		return nil, eris.Errorf("raster: %s: invalid dimensions %dx%d", path, rows, cols)
	}

	g := grid.New(rows, cols, header["cellsize"])
	g.SetOrigin(header["xllcorner"], header["yllcorner"])

	tok := firstValue
	for i := 0; i < rows*cols; i++ {
		if i > 0 {
			var err error
			tok, err = next()
			if err != nil {
				return nil, err
			}
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, eris.Wrapf(err, "raster: %s: bad cell value %q", path, tok)
		}
		if v == noData {
			v = 0
		}
		g.Set(i/cols, i%cols, v)
	}
	return g, nil
}

// WriteASC writes a grid as an ESRI ASCII raster. NaN cells are written as
// the NODATA value.
func WriteASC(path string, g *grid.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "raster: create %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	x, y := g.Origin()
	fmt.Fprintf(w, "ncols %d\n", g.Cols())
	fmt.Fprintf(w, "nrows %d\n", g.Rows())
	fmt.Fprintf(w, "xllcorner %g\n", x)
	fmt.Fprintf(w, "yllcorner %g\n", y)
	fmt.Fprintf(w, "cellsize %g\n", g.CellSize())
	fmt.Fprintf(w, "NODATA_value %g\n", defaultNoData)
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if c > 0 {
				w.WriteByte(' ')
			}
			v := g.At(r, c)
			if math.IsNaN(v) {
				fmt.Fprintf(w, "%g", defaultNoData)
			} else {
				fmt.Fprintf(w, "%g", v)
			}
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return eris.Wrapf(err, "raster: write %s", path)
	}
	return nil
}

// WriteMaskASC writes a binary mask as a 0/1 ESRI ASCII raster.
func WriteMaskASC(path string, m *grid.Mask, cellSizeM float64) error {
	g := grid.New(m.Rows(), m.Cols(), cellSizeM)
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			if m.At(r, c) {
				g.Set(r, c, 1)
			}
		}
	}
	return WriteASC(path, g)
}
