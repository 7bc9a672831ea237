package config

import (
	"strings"
	"testing"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		SourceRoot:   t.TempDir(),
		DestRoot:     t.TempDir(),
		MaxDimension: DefaultMaxDimension,
		Quality:      DefaultQuality,
		Format:       FormatJPG,
		Workers:      DefaultWorkers,
	}
}

func TestResolveAcceptsDefaults(t *testing.T) {
	cfg := validConfig(t)
	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(cfg.AllowedExts) != 7 {
		t.Fatalf("expected full supported set, got %d extensions", len(cfg.AllowedExts))
	}
}

func TestResolveRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"workers too low", func(c *Config) { c.Workers = 0 }, "processes"},
		{"workers too high", func(c *Config) { c.Workers = 17 }, "processes"},
		{"quality too low", func(c *Config) { c.Quality = 0 }, "quality"},
		{"quality too high", func(c *Config) { c.Quality = 101 }, "quality"},
		{"max size zero", func(c *Config) { c.MaxDimension = 0 }, "max size"},
		{"bad format", func(c *Config) { c.Format = "gif" }, "format"},
		{"skip-existing without keep-names", func(c *Config) { c.SkipExisting = true }, "keep-names"},
		{"missing source", func(c *Config) { c.SourceRoot = "/nonexistent/picks-src" }, "source"},
		{"missing destination", func(c *Config) { c.DestRoot = "/nonexistent/picks-dst" }, "destination"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(t)
			tc.mutate(&cfg)
			err := cfg.Resolve()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestResolveWebPQualitySubstitution(t *testing.T) {
	cfg := validConfig(t)
	cfg.Format = FormatWebP
	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Quality != WebPDefaultQuality {
		t.Fatalf("quality = %d, want %d", cfg.Quality, WebPDefaultQuality)
	}

	cfg = validConfig(t)
	cfg.Format = FormatWebP
	cfg.Quality = 60
	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Quality != 60 {
		t.Fatalf("explicit quality overridden: got %d", cfg.Quality)
	}
}

func TestResolveIncludeFilter(t *testing.T) {
	cfg := validConfig(t)
	cfg.Include = "JPG, .png"
	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.FilterEmpty {
		t.Fatal("filter unexpectedly empty")
	}
	if _, ok := cfg.AllowedExts[".jpg"]; !ok {
		t.Fatal("expected .jpg in allowed set")
	}
	if _, ok := cfg.AllowedExts[".png"]; !ok {
		t.Fatal("expected .png in allowed set")
	}
	// The intersection is extension-level: filtering on jpg does not pull
	// in jpeg.
	if _, ok := cfg.AllowedExts[".jpeg"]; ok {
		t.Fatal(".jpeg should not be allowed by a jpg filter")
	}
}

func TestResolveIncludeFilterNoOverlap(t *testing.T) {
	cfg := validConfig(t)
	cfg.Include = "gif,svg"
	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !cfg.FilterEmpty {
		t.Fatal("expected FilterEmpty for unsupported-only filter")
	}
	if len(cfg.AllowedExts) != 0 {
		t.Fatalf("expected empty allowed set, got %d", len(cfg.AllowedExts))
	}
}

func TestFormatExt(t *testing.T) {
	if FormatJPG.Ext() != ".jpg" || FormatWebP.Ext() != ".webp" {
		t.Fatal("unexpected format extensions")
	}
}
