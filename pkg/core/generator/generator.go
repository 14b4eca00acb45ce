package generator

import (
	"encoding/json"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/matzehuels/mondrian/pkg/core/compose"
	"github.com/matzehuels/mondrian/pkg/core/composition"
	"github.com/matzehuels/mondrian/pkg/core/grid"
	"github.com/matzehuels/mondrian/pkg/core/palette"
)

// GenerativeEffect produces a composition from a configuration.
type GenerativeEffect interface {
	Generate(cfg Config) composition.Composition
}

const (
	thicknessMin = 0.7
	thicknessMax = 1.3
)

// namespace scopes composition IDs derived from configurations.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/mondrian"))

// Option configures a [Mondrian] effect.
type Option func(*Mondrian)

// WithSeedSource replaces the entropy used when a configuration has seed 0.
// The source must not return 0.
func WithSeedSource(fn func() int64) Option {
	return func(m *Mondrian) { m.seedSource = fn }
}

// Mondrian is the Neo-Plasticist grid effect.
type Mondrian struct {
	seedSource func() int64
}

// New returns a Mondrian effect.
func New(opts ...Option) *Mondrian {
	m := &Mondrian{seedSource: entropySeed}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var _ GenerativeEffect = (*Mondrian)(nil)

// Generate runs the algorithm for cfg. Primitives are ordered background,
// vertical lines, horizontal lines, blocks.
func (m *Mondrian) Generate(cfg Config) composition.Composition {
	if cfg.Seed == 0 {
		cfg.Seed = m.seedSource()
	}
	rng := NewRand(cfg.Seed)
	pal := cfg.ResolvePalette()

	v := grid.DistributeLines(rng, grid.LineParams{
		Count:        cfg.VerticalLines,
		Dimension:    cfg.Width,
		Orientation:  grid.Vertical,
		Margin:       cfg.Margin,
		Distribution: cfg.Distribution,
		Randomness:   cfg.Randomness,
	})
	h := grid.DistributeLines(rng, grid.LineParams{
		Count:        cfg.HorizontalLines,
		Dimension:    cfg.Height,
		Orientation:  grid.Horizontal,
		Margin:       cfg.Margin,
		Distribution: cfg.Distribution,
		Randomness:   cfg.Randomness,
	})

	prims := make([]composition.Primitive, 0, 1+len(v)+len(h))
	if cfg.AddBackground {
		prims = append(prims, composition.Background(cfg.Width, cfg.Height, pal.BackgroundColor()))
	}
	for i, x := range v {
		prims = append(prims, composition.VerticalLine(i+1, x, cfg.Height, thickness(rng, cfg), palette.LineColor))
	}
	for i, y := range h {
		prims = append(prims, composition.HorizontalLine(i+1, y, cfg.Width, thickness(rng, cfg), palette.LineColor))
	}

	cells := grid.Partition(v, h, cfg.Width, cfg.Height, cfg.MinRectSize)
	selected := compose.Select(rng, cells, cfg.ColorDensity, cfg.Balance)
	assigned := compose.Assign(rng, selected, pal, cfg.Balance, cfg.CanvasArea())
	for k, a := range assigned {
		r := composition.Rect{X: a.Cell.X, Y: a.Cell.Y, Width: a.Cell.Width, Height: a.Cell.Height}
		prims = append(prims, composition.Block(k+1, r, composition.Cell{I: a.Cell.I, J: a.Cell.J}, a.Color))
	}

	return composition.Composition{
		ID:         CompositionID(cfg),
		Label:      composition.DocumentLabel(cfg.Width, cfg.Height),
		Width:      cfg.Width,
		Height:     cfg.Height,
		Palette:    string(pal.Name),
		Seed:       cfg.Seed,
		Group:      cfg.GroupElements,
		RectCount:  len(assigned),
		Primitives: prims,
	}
}

// thickness returns the stroke width of the next line. A draw is taken only
// when variation is enabled.
func thickness(rng *rand.Rand, cfg Config) float64 {
	if !cfg.VaryThickness {
		return cfg.LineThickness
	}
	return cfg.LineThickness * (thicknessMin + (thicknessMax-thicknessMin)*rng.Float64())
}

// NewRand returns the random stream for seed.
func NewRand(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0xdeadbeef))
}

// CompositionID derives a stable UUID from cfg. Equal configurations, seed
// included, always map to the same ID.
func CompositionID(cfg Config) string {
	data, err := json.Marshal(cfg)
	if err != nil {
		return uuid.NewString()
	}
	return uuid.NewSHA1(namespace, data).String()
}

func entropySeed() int64 {
	for {
		if s := rand.Int64(); s != 0 {
			return s
		}
	}
}
