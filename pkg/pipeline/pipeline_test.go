package pipeline

import (
	"testing"

	"github.com/matzehuels/mondrian/pkg/core/generator"
	"github.com/matzehuels/mondrian/pkg/core/palette"
	"github.com/matzehuels/mondrian/pkg/errors"
)

func TestDefaultOptionsValid(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("DefaultOptions should validate: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
}

func TestSetGenerateDefaults(t *testing.T) {
	opts := Options{}
	opts.SetGenerateDefaults()

	if opts.Width != generator.DefaultWidth {
		t.Errorf("Width should be %f, got %f", generator.DefaultWidth, opts.Width)
	}
	if opts.Height != generator.DefaultHeight {
		t.Errorf("Height should be %f, got %f", generator.DefaultHeight, opts.Height)
	}
	if opts.Palette != string(palette.Default) {
		t.Errorf("Palette should be %s, got %s", palette.Default, opts.Palette)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Scale != 2 {
		t.Errorf("Scale should be 2, got %v", opts.Scale)
	}
}

func TestValidateForGenerate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		code   errors.Code
	}{
		{"defaults", func(o *Options) {}, ""},
		{"zero lines", func(o *Options) { o.VerticalLines = 0; o.HorizontalLines = 0 }, ""},
		{"palette case", func(o *Options) { o.Palette = "Pastel" }, ""},
		{"negative width", func(o *Options) { o.Width = -1 }, errors.ErrCodeInvalidInput},
		{"huge height", func(o *Options) { o.Height = 1e6 }, errors.ErrCodeInvalidInput},
		{"negative lines", func(o *Options) { o.VerticalLines = -1 }, ""},
		{"negative density", func(o *Options) { o.ColorDensity = -0.5 }, ""},
		{"too many lines", func(o *Options) { o.HorizontalLines = errors.MaxLines + 1 }, errors.ErrCodeInvalidInput},
		{"density above one", func(o *Options) { o.ColorDensity = 1.5 }, errors.ErrCodeInvalidInput},
		{"margin too wide", func(o *Options) { o.Margin = 0.5 }, errors.ErrCodeInvalidInput},
		{"unknown palette", func(o *Options) { o.Palette = "sepia" }, ""},
		{"custom palette overrides name", func(o *Options) {
			o.Palette = "sepia"
			o.CustomPalette = &palette.Palette{Colors: []string{"#112233"}}
		}, ""},
		{"custom palette bad color", func(o *Options) {
			o.CustomPalette = &palette.Palette{Colors: []string{"blue"}}
		}, errors.ErrCodeInvalidPalette},
		{"custom palette empty", func(o *Options) {
			o.CustomPalette = &palette.Palette{}
		}, errors.ErrCodeInvalidPalette},
		{"custom palette weight mismatch", func(o *Options) {
			o.CustomPalette = &palette.Palette{Colors: []string{"#112233"}, Weights: []float64{1, 2}}
		}, errors.ErrCodeInvalidPalette},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.ValidateForGenerate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateForGenerateClampsToGracefulValues(t *testing.T) {
	opts := DefaultOptions()
	opts.Palette = "sepia"
	opts.VerticalLines = -3
	opts.HorizontalLines = -1
	opts.ColorDensity = -0.5
	if err := opts.ValidateForGenerate(); err != nil {
		t.Fatalf("ValidateForGenerate error: %v", err)
	}
	if opts.Palette != string(palette.Default) {
		t.Errorf("Palette = %q, want %q", opts.Palette, palette.Default)
	}
	if opts.VerticalLines != 0 || opts.HorizontalLines != 0 {
		t.Errorf("lines = %d/%d, want 0/0", opts.VerticalLines, opts.HorizontalLines)
	}
	if opts.ColorDensity != 0 {
		t.Errorf("ColorDensity = %v, want 0", opts.ColorDensity)
	}
}

func TestValidateForRender(t *testing.T) {
	opts := DefaultOptions()
	opts.Formats = []string{"SVG", "png", "svg", " json "}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("ValidateForRender error: %v", err)
	}
	want := []string{"svg", "png", "json"}
	if len(opts.Formats) != len(want) {
		t.Fatalf("Formats = %v, want %v", opts.Formats, want)
	}
	for i := range want {
		if opts.Formats[i] != want[i] {
			t.Errorf("Formats[%d] = %s, want %s", i, opts.Formats[i], want[i])
		}
	}

	opts = DefaultOptions()
	opts.Formats = []string{"gif"}
	if err := opts.ValidateForRender(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("gif should fail with INVALID_FORMAT, got %v", err)
	}

	opts = DefaultOptions()
	opts.Scale = MaxScale + 1
	if err := opts.ValidateForRender(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("oversize scale should fail, got %v", err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := DefaultOptions()
	opts.Formats = []string{"png", "PNG"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	formats := append([]string(nil), opts.Formats...)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if len(opts.Formats) != len(formats) || opts.Formats[0] != formats[0] {
		t.Errorf("Formats changed on second call: %v -> %v", formats, opts.Formats)
	}
}

func TestCacheable(t *testing.T) {
	opts := DefaultOptions()
	if opts.Cacheable() {
		t.Error("unseeded options should not be cacheable")
	}
	opts.Seed = 7
	if !opts.Cacheable() {
		t.Error("seeded options should be cacheable")
	}
	opts.Refresh = true
	if opts.Cacheable() {
		t.Error("refresh should bypass the cache")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := DefaultOptions()
	opts.Scale = 3
	opts.NoLabels = true

	png := opts.ArtifactKeyOpts("png", "mondrian dev")
	if png.Scale != 3 || png.NoLabels {
		t.Errorf("png key opts = %+v", png)
	}
	svg := opts.ArtifactKeyOpts("svg", "mondrian dev")
	if svg.Scale != 0 || !svg.NoLabels {
		t.Errorf("svg key opts = %+v", svg)
	}
	js := opts.ArtifactKeyOpts("json", "mondrian dev")
	if js.Generator != "mondrian dev" {
		t.Errorf("json key opts = %+v", js)
	}
}
