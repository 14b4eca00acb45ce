// Package pipeline provides the generate → render pipeline for Mondrian.
//
// This package wires the generation core to the output sinks and the cache,
// and is used by both the CLI and the HTTP API. By centralizing this logic,
// both entry points validate, cache and log the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Generate: Run the composition algorithm for a configuration
//  2. Render: Turn the composition into SVG, PNG, PDF or JSON
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Seed = 42
//	opts.Formats = []string{"svg", "png"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Options can also be read from a TOML file with [LoadFile].
//
// # Caching
//
// Seeded runs are looked up by their configuration-derived composition ID
// before generating. Every composition, seeded or not, is stored under its
// ID afterwards, together with its rendered artifacts.
package pipeline

import (
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mondrian/pkg/cache"
	"github.com/matzehuels/mondrian/pkg/core/composition"
	"github.com/matzehuels/mondrian/pkg/core/generator"
	"github.com/matzehuels/mondrian/pkg/core/palette"
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultFormat is the output format used when none is requested.
	DefaultFormat = string(sink.FormatSVG)

	// MaxScale bounds the PNG scale factor.
	MaxScale = 10.0

	// MaxLineThickness bounds the stroke width accepted at the boundary.
	MaxLineThickness = 100.0

	// MaxMargin bounds the margin fraction; beyond it the usable span vanishes.
	MaxMargin = 0.45
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline. The generator
// configuration is embedded, so its keys appear at the top level in JSON and
// TOML.
type Options struct {
	generator.Config

	// Render options
	Formats  []string `json:"formats,omitempty" toml:"formats"`
	Scale    float64  `json:"scale,omitempty" toml:"scale"`
	NoLabels bool     `json:"no_labels,omitempty" toml:"no_labels"`

	// Refresh bypasses cache lookups; results are still stored.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns options holding every default. Decode JSON or TOML
// into it so that absent keys keep their defaults.
func DefaultOptions() Options {
	return Options{
		Config:  generator.DefaultConfig(),
		Formats: []string{DefaultFormat},
		Scale:   sink.DefaultScale,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Composition is the generated primitive list.
	Composition composition.Composition

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Primitives   int
	RectCount    int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool // Whether the composition came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetGenerateDefaults fills fields whose zero value is never meaningful.
func (o *Options) SetGenerateDefaults() {
	if o.Width == 0 {
		o.Width = generator.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = generator.DefaultHeight
	}
	if o.Palette == "" {
		o.Palette = string(palette.Default)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForGenerate sets defaults and rejects configurations the boundary
// does not accept. Negative line counts and color density clamp to zero, and
// an unknown palette name falls back to [palette.Default]. Only upper bounds
// and non-finite values are errors.
func (o *Options) ValidateForGenerate() error {
	o.SetGenerateDefaults()
	o.VerticalLines = max(o.VerticalLines, 0)
	o.HorizontalLines = max(o.HorizontalLines, 0)
	if o.ColorDensity < 0 {
		o.ColorDensity = 0
	}

	checks := []error{
		errors.ValidateDimension("width", o.Width),
		errors.ValidateDimension("height", o.Height),
		errors.ValidateLineCount("vertical_lines", o.VerticalLines),
		errors.ValidateLineCount("horizontal_lines", o.HorizontalLines),
		errors.ValidateRange("line_thickness", o.LineThickness, 0, MaxLineThickness),
		errors.ValidateRange("margin", o.Margin, 0, MaxMargin),
		errors.ValidateRange("color_density", o.ColorDensity, 0, 1),
		errors.ValidateRange("distribution", o.Distribution, 0, 1),
		errors.ValidateRange("balance", o.Balance, 0, 1),
		errors.ValidateRange("randomness", o.Randomness, 0, 1),
		errors.ValidateRange("min_rect_size", o.MinRectSize, 0, errors.MaxDimension),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}

	if o.CustomPalette != nil {
		return ValidatePalette(*o.CustomPalette)
	}
	if _, ok := palette.Parse(o.Palette); !ok {
		o.Logger.Warn("unknown palette, using default", "palette", o.Palette, "default", palette.Default, "available", paletteList())
		o.Palette = string(palette.Default)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Scale == 0 {
		o.Scale = sink.DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets defaults, normalizes format names and removes
// duplicates.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if math.IsNaN(o.Scale) || o.Scale <= 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g], got %g", MaxScale, o.Scale)
	}

	seen := make(map[string]bool, len(o.Formats))
	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		parsed, err := sink.ParseFormat(f)
		if err != nil {
			return err
		}
		if !seen[string(parsed)] {
			seen[string(parsed)] = true
			formats = append(formats, string(parsed))
		}
	}
	o.Formats = formats
	return nil
}

// ValidatePalette checks a user-supplied palette.
func ValidatePalette(p palette.Palette) error {
	if len(p.Colors) == 0 {
		return errors.New(errors.ErrCodeInvalidPalette, "custom palette needs at least one color")
	}
	for _, c := range p.Colors {
		if err := errors.ValidateHexColor(c); err != nil {
			return err
		}
	}
	if p.Background != "" {
		if err := errors.ValidateHexColor(p.Background); err != nil {
			return err
		}
	}
	if len(p.Weights) > 0 && len(p.Weights) != len(p.Colors) {
		return errors.New(errors.ErrCodeInvalidPalette, "custom palette has %d weights for %d colors", len(p.Weights), len(p.Colors))
	}
	if err := p.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPalette, err, "invalid custom palette")
	}
	return nil
}

// Cacheable reports whether a cached composition may answer these options.
func (o *Options) Cacheable() bool {
	return o.Seed != 0 && !o.Refresh
}

// SinkOptions returns the sink settings for these options.
func (o *Options) SinkOptions(generatorName string) sink.Options {
	return sink.Options{Scale: o.Scale, NoLabels: o.NoLabels, Generator: generatorName}
}

// ArtifactKeyOpts returns cache key options for artifact rendering. Only
// settings that affect the given format are included.
func (o *Options) ArtifactKeyOpts(format, generatorName string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch sink.Format(format) {
	case sink.FormatPNG:
		k.Scale = o.Scale
	case sink.FormatSVG, sink.FormatPDF:
		k.NoLabels = o.NoLabels
	case sink.FormatJSON:
		k.Generator = generatorName
	}
	return k
}

func paletteList() string {
	names := palette.Names()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return strings.Join(out, ", ")
}
