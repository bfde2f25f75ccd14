// Package config loads the collection run configuration: defaults first,
// then an optional YAML file overlay. CLI flags override on top of the
// loaded values in cmd/cookietrail.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/driftlab/cookietrail/errs"
	"github.com/driftlab/cookietrail/format"
)

// Request count bounds, matching the tool's CLI contract.
const (
	MinRequests     = 10
	MaxRequests     = 200
	DefaultRequests = 50
)

// Config describes one collection-and-analysis run.
type Config struct {
	// URL is the target to sample. When authenticating it is the form URL to
	// POST the payload to.
	URL string `yaml:"url"`
	// PayloadFile holds "field,value" lines POSTed as a form before each GET.
	PayloadFile string `yaml:"payload_file"`
	// Requests is the number of request cycles, within [10, 200].
	Requests int `yaml:"requests"`
	// Throttle inserts a 0.5s delay between cycles.
	Throttle bool `yaml:"throttle"`
	// OutputDir overrides the derived <domain>_<timestamp> directory.
	OutputDir string `yaml:"output_dir"`
	// Workers bounds the parallel per-stream analysis fan-out.
	Workers int `yaml:"workers"`
	// Compression selects the snapshot codec: none, zstd, s2 or lz4.
	Compression string `yaml:"compression"`
	// Charts toggles PNG rendering per stream.
	Charts bool `yaml:"charts"`
	// Snapshots toggles binary trace snapshot retention per stream.
	Snapshots bool `yaml:"snapshots"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Requests:    DefaultRequests,
		Workers:     runtime.NumCPU(),
		Compression: "zstd",
		Charts:      true,
		Snapshots:   true,
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path skips the overlay; a missing file at an explicit path is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration and resolves derived values. An
// out-of-range request count falls back to the default with a warning
// instead of failing the run.
func (c *Config) Validate() error {
	if c.URL == "" {
		return errs.ErrMissingURL
	}
	if c.Requests < MinRequests || c.Requests > MaxRequests {
		slog.Warn("request count out of range, using default",
			"requests", c.Requests, "min", MinRequests, "max", MaxRequests,
			"default", DefaultRequests)
		c.Requests = DefaultRequests
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if _, ok := format.ParseCompression(c.Compression); !ok {
		return fmt.Errorf("%w: %q", errs.ErrUnknownCompression, c.Compression)
	}

	return nil
}

// CompressionType returns the parsed snapshot codec. Validate must have
// succeeded first.
func (c *Config) CompressionType() format.CompressionType {
	typ, _ := format.ParseCompression(c.Compression)

	return typ
}
