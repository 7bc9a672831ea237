// Package config holds the resolved run configuration: CLI inputs validated
// and normalized into an immutable struct that the pipeline consumes.
package config

import (
	"fmt"
	"os"
	"strings"

	"picks/pkg/imgutil"
)

// Format is the output image format.
type Format string

const (
	FormatJPG  Format = "jpg"
	FormatWebP Format = "webp"
)

// Ext returns the output file extension, with leading dot.
func (f Format) Ext() string {
	if f == FormatWebP {
		return ".webp"
	}
	return ".jpg"
}

// Defaults and bounds for user-tunable settings.
const (
	DefaultMaxDimension = 2400
	DefaultQuality      = 87 // JPEG default
	WebPDefaultQuality  = 82 // substituted when --format webp and quality untouched
	DefaultWorkers      = 1
	MaxWorkers          = 16
)

// Config holds all settings for one optimization run. Populate the exported
// fields from CLI flags, then call Resolve once; after that the struct is
// treated as immutable and passed by value into the pipeline.
type Config struct {
	SourceRoot string
	DestRoot   string

	MaxDimension int
	Quality      int
	Format       Format
	KeepNames    bool
	Workers      int
	DryRun       bool
	SkipExisting bool
	Include      string // raw comma-separated extension filter, "" = all
	PreserveDirs bool
	Verbose      bool

	// Derived by Resolve.
	AllowedExts map[string]imgutil.Kind
	FilterEmpty bool // user filter had no overlap with the supported set
}

// Resolve validates ranges and flag combinations, applies the WebP quality
// substitution, and computes the allowed extension set. Any returned error is
// a configuration error: the run must terminate before planning begins.
func (c *Config) Resolve() error {
	if c.Workers < 1 || c.Workers > MaxWorkers {
		return fmt.Errorf("number of processes must be between 1 and %d (got %d)", MaxWorkers, c.Workers)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100 (got %d)", c.Quality)
	}
	if c.MaxDimension < 1 {
		return fmt.Errorf("max size must be positive (got %d)", c.MaxDimension)
	}

	switch c.Format {
	case FormatJPG, FormatWebP:
	default:
		return fmt.Errorf("format must be %q or %q (got %q)", FormatJPG, FormatWebP, c.Format)
	}

	// Sequential names cannot be reliably mapped back to source files, so
	// existence checks only make sense with original names.
	if c.SkipExisting && !c.KeepNames {
		return fmt.Errorf("--skip-existing only works with --keep-names")
	}

	info, err := os.Stat(c.SourceRoot)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("source folder %q does not exist or is not a directory", c.SourceRoot)
	}
	if _, err := os.Stat(c.DestRoot); err != nil {
		return fmt.Errorf("destination %q does not exist", c.DestRoot)
	}

	if c.Format == FormatWebP && c.Quality == DefaultQuality {
		c.Quality = WebPDefaultQuality
	}

	c.AllowedExts, c.FilterEmpty = resolveExtensions(c.Include)
	return nil
}

// resolveExtensions intersects the user filter with the supported extension
// set. An empty intersection is flagged, not an error: the caller may warn
// and legitimately process zero files.
func resolveExtensions(include string) (map[string]imgutil.Kind, bool) {
	if strings.TrimSpace(include) == "" {
		return imgutil.ExtKinds, false
	}

	allowed := make(map[string]imgutil.Kind)
	for _, raw := range strings.Split(include, ",") {
		ext := strings.ToLower(strings.TrimSpace(raw))
		if ext == "" {
			continue
		}
		ext = "." + strings.TrimPrefix(ext, ".")
		if kind, ok := imgutil.ExtKinds[ext]; ok {
			allowed[ext] = kind
		}
	}
	return allowed, len(allowed) == 0
}
