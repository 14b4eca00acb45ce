package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/mondrian/pkg/errors"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
width = 1200
height = 900
vertical_lines = 6
color_density = 0.5
palette = "modern"
seed = 42
vary_thickness = true
add_background = false
formats = ["svg", "png"]
scale = 3

[custom_palette]
colors = ["#112233", "#445566"]
weights = [3.0, 1.0]
background = "#FAFAFA"
`)
	opts, err := ParseConfig(data, "test.toml")
	if err != nil {
		t.Fatalf("ParseConfig error: %v", err)
	}

	if opts.Width != 1200 || opts.Height != 900 {
		t.Errorf("size = %vx%v, want 1200x900", opts.Width, opts.Height)
	}
	if opts.VerticalLines != 6 {
		t.Errorf("VerticalLines = %d, want 6", opts.VerticalLines)
	}
	if opts.HorizontalLines != 5 {
		t.Errorf("HorizontalLines should keep default 5, got %d", opts.HorizontalLines)
	}
	if opts.Seed != 42 || !opts.VaryThickness || opts.AddBackground {
		t.Errorf("seed/vary/background = %d/%v/%v", opts.Seed, opts.VaryThickness, opts.AddBackground)
	}
	if !opts.GroupElements {
		t.Error("GroupElements should keep default true")
	}
	if len(opts.Formats) != 2 || opts.Scale != 3 {
		t.Errorf("formats/scale = %v/%v", opts.Formats, opts.Scale)
	}
	if opts.CustomPalette == nil || len(opts.CustomPalette.Colors) != 2 || opts.CustomPalette.Background != "#FAFAFA" {
		t.Fatalf("CustomPalette = %+v", opts.CustomPalette)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("decoded options should validate: %v", err)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `width = `},
		{"unknown key", `widht = 100`},
		{"wrong type", `width = "wide"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data), "bad.toml")
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mondrian.toml")
	if err := os.WriteFile(path, []byte("seed = 9\npalette = \"pastel\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	opts, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if opts.Seed != 9 || opts.Palette != "pastel" {
		t.Errorf("seed/palette = %d/%s", opts.Seed, opts.Palette)
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestEncodeConfigRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 123
	opts.Palette = "grayscale"
	opts.Formats = []string{"json"}

	data, err := EncodeConfig(opts)
	if err != nil {
		t.Fatalf("EncodeConfig error: %v", err)
	}
	got, err := ParseConfig(data, "encoded")
	if err != nil {
		t.Fatalf("ParseConfig error: %v\n%s", err, data)
	}
	if got.Config != opts.Config {
		t.Errorf("Config = %+v, want %+v", got.Config, opts.Config)
	}
	if len(got.Formats) != 1 || got.Formats[0] != "json" {
		t.Errorf("Formats = %v", got.Formats)
	}
}
