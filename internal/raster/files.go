package raster

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var yearRe = regexp.MustCompile(`(19|20)\d{2}`)

// YearFromName extracts the first four-digit year from a file name.
func YearFromName(name string) (int, bool) {
	m := yearRe.FindString(filepath.Base(name))
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return y, true
}

// ScanDir groups the .asc rasters in dir by the year embedded in their file
// names. Files without a recognizable year are logged and skipped. Paths
// within a year are sorted for stable composites.
func ScanDir(dir string) (map[int][]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "raster: scan %s", dir)
	}
	byYear := make(map[int][]string)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".asc") {
			continue
		}
		year, ok := YearFromName(e.Name())
		if !ok {
			zap.L().Warn("raster: no year in file name, skipping",
				zap.String("file", e.Name()))
			continue
		}
		byYear[year] = append(byYear[year], filepath.Join(dir, e.Name()))
	}
	if len(byYear) == 0 {
		return nil, eris.Errorf("raster: no dated .asc rasters in %s", dir)
	}
	for _, paths := range byYear {
		sort.Strings(paths)
	}
	return byYear, nil
}

// Years returns the sorted keys of a per-year path map.
func Years(byYear map[int][]string) []int {
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
