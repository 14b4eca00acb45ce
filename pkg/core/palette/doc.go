// Package palette defines the weighted color palettes used to fill cells of a
// Mondrian composition.
//
// # Named Palettes
//
// The set of palettes is closed: each [Name] constant maps to exactly one
// [Palette] through an exhaustive switch in [Lookup]. Unknown names are not an
// error for the generator; [Resolve] falls back to [Default] (classic).
//
//   - classic:   red, yellow, blue, black on white
//   - modern:    five flat accent colors on an off-white ground
//   - grayscale: four grays and black on white
//   - primary:   the classic primaries plus white and black
//   - pastel:    five pastel tints on white
//
// # Weights
//
// Weights are relative. [Palette.Normalized] divides them by their sum and
// degrades to uniform weights when the sum is not positive or the number of
// weights does not match the number of colors:
//
//	p := palette.Resolve("classic")
//	w := p.Normalized() // [0.3 0.3 0.3 0.1]
//
// # Custom Palettes
//
// Palettes can also be built directly (for example from a configuration
// file). [Palette.Validate] checks that every color is a well-formed hex
// color; the generator itself accepts any palette, including an empty one, in
// which case [FallbackColor] is used wherever a color is needed.
package palette
