package generator

import (
	"github.com/matzehuels/mondrian/pkg/core/palette"
)

// Default values, shared by the CLI, the API and configuration files.
const (
	DefaultWidth           = 800.0
	DefaultHeight          = 600.0
	DefaultVerticalLines   = 4
	DefaultHorizontalLines = 5
	DefaultLineThickness   = 3.0
	DefaultMargin          = 0.05
	DefaultColorDensity    = 0.3
	DefaultDistribution    = 0.6
	DefaultBalance         = 0.5
	DefaultRandomness      = 0.15
	DefaultMinRectSize     = 20.0
)

// Config holds every parameter of a generation run. Ranges in the comments
// are advisory; the algorithm degrades gracefully outside them.
type Config struct {
	Width           float64 `json:"width" toml:"width"`
	Height          float64 `json:"height" toml:"height"`
	VerticalLines   int     `json:"vertical_lines" toml:"vertical_lines"`     // 1-20
	HorizontalLines int     `json:"horizontal_lines" toml:"horizontal_lines"` // 1-20
	LineThickness   float64 `json:"line_thickness" toml:"line_thickness"`     // 0.5-20
	Margin          float64 `json:"margin" toml:"margin"`                     // 0-0.3
	ColorDensity    float64 `json:"color_density" toml:"color_density"`       // 0-1
	Palette         string  `json:"palette" toml:"palette"`
	Distribution    float64 `json:"distribution" toml:"distribution"` // 0 random, 1 structured
	Balance         float64 `json:"balance" toml:"balance"`           // 0 random, 1 strategic
	Randomness      float64 `json:"randomness" toml:"randomness"`     // 0-0.5
	Seed            int64   `json:"seed" toml:"seed"`                 // 0 for a fresh seed
	MinRectSize     float64 `json:"min_rect_size" toml:"min_rect_size"`
	AddBackground   bool    `json:"add_background" toml:"add_background"`
	GroupElements   bool    `json:"group_elements" toml:"group_elements"`
	VaryThickness   bool    `json:"vary_thickness" toml:"vary_thickness"`

	// CustomPalette replaces the named palette when set.
	CustomPalette *palette.Palette `json:"custom_palette,omitempty" toml:"custom_palette"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		VerticalLines:   DefaultVerticalLines,
		HorizontalLines: DefaultHorizontalLines,
		LineThickness:   DefaultLineThickness,
		Margin:          DefaultMargin,
		ColorDensity:    DefaultColorDensity,
		Palette:         string(palette.Default),
		Distribution:    DefaultDistribution,
		Balance:         DefaultBalance,
		Randomness:      DefaultRandomness,
		MinRectSize:     DefaultMinRectSize,
		AddBackground:   true,
		GroupElements:   true,
	}
}

// ResolvePalette returns the palette the run paints with.
func (c Config) ResolvePalette() palette.Palette {
	if c.CustomPalette != nil {
		p := c.CustomPalette.Clone()
		if p.Name == "" {
			p.Name = palette.Custom
		}
		return p
	}
	return palette.Resolve(c.Palette)
}

// CanvasArea returns Width*Height.
func (c Config) CanvasArea() float64 {
	return c.Width * c.Height
}
