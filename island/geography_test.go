package island

import (
	"errors"
	"testing"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
)

func TestParseGeography(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"single plains", "WWW\nWLW\nWWW", false},
		{"indented", "\n    WWWW\n    WLHW\n    WDLW\n    WWWW\n", false},
		{"uneven rows", "WWW\nWLLW\nWWW", true},
		{"land on border", "WWW\nWLL\nWWW", true},
		{"unknown code", "WWW\nWXW\nWWW", true},
		{"lowercase code", "WWW\nWlW\nWWW", true},
		{"empty", "  \n ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGeography(tt.text)
			if tt.wantErr {
				if !errors.Is(err, ErrGeography) || !errors.Is(err, components.ErrInvalidArgument) {
					t.Errorf("error = %v, want ErrGeography", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestGeographyAccessors(t *testing.T) {
	geo, err := ParseGeography("WWWW\nWLHW\nWDLW\nWWWW")
	if err != nil {
		t.Fatal(err)
	}
	if geo.Rows() != 4 || geo.Cols() != 4 {
		t.Errorf("size = %dx%d, want 4x4", geo.Rows(), geo.Cols())
	}
	if h, ok := geo.At(components.Coord{Row: 2, Col: 3}); !ok || h != components.Hills {
		t.Errorf("At(2,3) = %v, %v; want hills", h, ok)
	}
	if _, ok := geo.At(components.Coord{Row: 0, Col: 1}); ok {
		t.Error("At(0,1) is on the map")
	}
	if got := geo.String(); got != "WWWW\nWLHW\nWDLW\nWWWW" {
		t.Errorf("String = %q", got)
	}
}

func TestDefaultGeographyIsValid(t *testing.T) {
	geo, err := ParseGeography(config.Default().Geography)
	if err != nil {
		t.Fatalf("default map rejected: %v", err)
	}
	if geo.Rows() != 13 || geo.Cols() != 21 {
		t.Errorf("size = %dx%d, want 13x21", geo.Rows(), geo.Cols())
	}
}

func TestGenerateGeography(t *testing.T) {
	cfg := config.Default().Generator

	a, err := GenerateGeography(cfg, 42)
	if err != nil {
		t.Fatalf("GenerateGeography: %v", err)
	}
	if a.Rows() != cfg.Rows || a.Cols() != cfg.Cols {
		t.Errorf("size = %dx%d, want %dx%d", a.Rows(), a.Cols(), cfg.Rows, cfg.Cols)
	}
	// The rendered map must satisfy the same rules as a hand-written one.
	if _, err := ParseGeography(a.String()); err != nil {
		t.Errorf("generated map does not parse: %v", err)
	}

	b, err := GenerateGeography(cfg, 42)
	if err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("same seed produced different maps")
	}

	cfg.Seed = 7
	c, err := GenerateGeography(cfg, 42)
	if err != nil {
		t.Fatal(err)
	}
	d, err := GenerateGeography(cfg, 99)
	if err != nil {
		t.Fatal(err)
	}
	if c.String() != d.String() {
		t.Error("configured seed did not override the fallback")
	}
}

func TestGenerateGeographyRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.GeneratorConfig)
	}{
		{"too small", func(c *config.GeneratorConfig) { c.Rows = 2 }},
		{"no octaves", func(c *config.GeneratorConfig) { c.Octaves = 0 }},
		{"zero scale", func(c *config.GeneratorConfig) { c.Scale = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default().Generator
			tt.modify(&cfg)
			if _, err := GenerateGeography(cfg, 1); !errors.Is(err, ErrGeography) {
				t.Errorf("error = %v, want ErrGeography", err)
			}
		})
	}
}
