package palette

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Name identifies one of the built-in palettes.
type Name string

const (
	Classic   Name = "classic"
	Modern    Name = "modern"
	Grayscale Name = "grayscale"
	Primary   Name = "primary"
	Pastel    Name = "pastel"

	// Custom marks a palette that was not taken from the built-in set.
	Custom Name = "custom"
)

// Default is the palette used when a name does not resolve.
const Default = Classic

const (
	// FallbackColor is used when a color is required but the palette is empty.
	FallbackColor = "#FF0000"

	// White is preferred for small cells under strategic coloring.
	White = "#FFFFFF"

	// LineColor is the stroke color of grid lines.
	LineColor = "#000000"
)

// Palette is an ordered list of colors with relative weights and a
// background color.
type Palette struct {
	Name       Name      `json:"name" toml:"name"`
	Colors     []string  `json:"colors" toml:"colors"`
	Weights    []float64 `json:"weights" toml:"weights"`
	Background string    `json:"background" toml:"background"`
}

// Names returns the built-in palette names in display order.
func Names() []Name {
	return []Name{Classic, Modern, Grayscale, Primary, Pastel}
}

// Parse converts s to a built-in Name. Matching ignores case and surrounding
// whitespace.
func Parse(s string) (Name, bool) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := Lookup(n); !ok {
		return "", false
	}
	return n, true
}

// Lookup returns the built-in palette for n.
func Lookup(n Name) (Palette, bool) {
	switch n {
	case Classic:
		return Palette{
			Name:       Classic,
			Colors:     []string{"#FF0000", "#FFFF00", "#0000FF", "#000000"},
			Weights:    []float64{30, 30, 30, 10},
			Background: "#FFFFFF",
		}, true
	case Modern:
		return Palette{
			Name:       Modern,
			Colors:     []string{"#FF6B6B", "#4ECDC4", "#FFD166", "#06D6A0", "#118AB2"},
			Weights:    []float64{20, 20, 20, 20, 20},
			Background: "#F8F9FA",
		}, true
	case Grayscale:
		return Palette{
			Name:       Grayscale,
			Colors:     []string{"#333333", "#666666", "#999999", "#CCCCCC", "#000000"},
			Weights:    []float64{25, 25, 25, 15, 10},
			Background: "#FFFFFF",
		}, true
	case Primary:
		return Palette{
			Name:       Primary,
			Colors:     []string{"#FF0000", "#FFFF00", "#0000FF", "#FFFFFF", "#000000"},
			Weights:    []float64{25, 25, 25, 15, 10},
			Background: "#FAFAFA",
		}, true
	case Pastel:
		return Palette{
			Name:       Pastel,
			Colors:     []string{"#FFB3BA", "#FFDFBA", "#FFFFBA", "#BAFFC9", "#BAE1FF"},
			Weights:    []float64{20, 20, 20, 20, 20},
			Background: "#FFFFFF",
		}, true
	default:
		return Palette{}, false
	}
}

// Resolve returns the built-in palette called name, or the [Default] palette
// when the name is unknown.
func Resolve(name string) Palette {
	if n, ok := Parse(name); ok {
		p, _ := Lookup(n)
		return p
	}
	p, _ := Lookup(Default)
	return p
}

// Normalized returns the effective selection probabilities for p.Colors.
// Negative weights count as zero. When the weight count does not match the
// color count, or the weights do not sum to a positive value, every color
// gets 1/len(Colors).
func (p Palette) Normalized() []float64 {
	n := len(p.Colors)
	if n == 0 {
		return nil
	}
	out := make([]float64, n)
	var total float64
	if len(p.Weights) == n {
		for i, w := range p.Weights {
			out[i] = max(w, 0)
			total += out[i]
		}
	}
	if total <= 0 {
		for i := range out {
			out[i] = 1 / float64(n)
		}
		return out
	}
	for i := range out {
		out[i] /= total
	}
	return out
}

// First returns the first palette color, or [FallbackColor] if p is empty.
func (p Palette) First() string {
	if len(p.Colors) == 0 {
		return FallbackColor
	}
	return p.Colors[0]
}

// Index returns the position of color in p.Colors, or -1. Hex colors compare
// case-insensitively.
func (p Palette) Index(color string) int {
	return slices.IndexFunc(p.Colors, func(c string) bool { return strings.EqualFold(c, color) })
}

// Contains reports whether color is part of p.
func (p Palette) Contains(color string) bool {
	return p.Index(color) >= 0
}

// BackgroundColor returns p.Background, defaulting to white.
func (p Palette) BackgroundColor() string {
	if p.Background == "" {
		return White
	}
	return p.Background
}

// Validate checks that every color of p, including the background, is a hex
// color that go-colorful can parse.
func (p Palette) Validate() error {
	for i, c := range p.Colors {
		if _, err := colorful.Hex(c); err != nil {
			return fmt.Errorf("color %d: invalid hex color %q", i, c)
		}
	}
	if p.Background != "" {
		if _, err := colorful.Hex(p.Background); err != nil {
			return fmt.Errorf("background: invalid hex color %q", p.Background)
		}
	}
	for i, w := range p.Weights {
		if w < 0 {
			return fmt.Errorf("weight %d: must not be negative (got %g)", i, w)
		}
	}
	return nil
}

// Clone returns a deep copy of p.
func (p Palette) Clone() Palette {
	p.Colors = append([]string(nil), p.Colors...)
	p.Weights = append([]float64(nil), p.Weights...)
	return p
}
