// Package fetch downloads nighttime-lights rasters listed in a YAML
// manifest, with per-host rate limiting and retries.
package fetch

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Source is one downloadable raster.
type Source struct {
	URL  string `yaml:"url"`
	File string `yaml:"file,omitempty"`
}

// Manifest lists the rasters to mirror locally.
type Manifest struct {
	UserAgent  string   `yaml:"user_agent,omitempty"`
	RatePerSec float64  `yaml:"rate_per_sec,omitempty"`
	Burst      int      `yaml:"burst,omitempty"`
	MaxRetries int      `yaml:"max_retries,omitempty"`
	Sources    []Source `yaml:"sources"`
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch: read manifest %s", path)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, eris.Wrapf(err, "fetch: parse manifest %s", path)
	}
	if len(m.Sources) == 0 {
		return nil, eris.Errorf("fetch: manifest %s lists no sources", path)
	}
	for i := range m.Sources {
		s := &m.Sources[i]
		if s.URL == "" {
			return nil, eris.Errorf("fetch: manifest %s: source %d has no url", path, i)
		}
		if s.File == "" {
			s.File = filepath.Base(s.URL)
		}
	}
	return &m, nil
}
