package compose

import (
	"math/rand/v2"

	"github.com/matzehuels/mondrian/pkg/core/grid"
	"github.com/matzehuels/mondrian/pkg/core/palette"
)

const (
	strategicColoring = 0.8

	// LargeCellFraction is the share of the canvas above which a cell counts
	// as large under strategic coloring.
	LargeCellFraction = 0.1

	// SkipProbability is the chance that a small cell is left uncolored under
	// strategic coloring.
	SkipProbability = 0.6
)

// Assignment pairs a selected cell with its fill color.
type Assignment struct {
	Cell  grid.Cell `json:"cell"`
	Color string    `json:"color"`
}

// Assign chooses a color for each selected cell, in order. Cells skipped by
// strategic coloring produce no assignment, so the result is never longer
// than cells.
func Assign(rng *rand.Rand, cells []grid.Cell, p palette.Palette, balance, canvasArea float64) []Assignment {
	c := colorer{rng: rng, palette: p, weights: p.Normalized()}
	strategic := balance > strategicColoring

	out := make([]Assignment, 0, len(cells))
	for _, cell := range cells {
		var (
			color string
			ok    = true
		)
		if strategic {
			color, ok = c.strategic(cell, canvasArea)
		} else {
			color = c.weighted()
		}
		if ok {
			out = append(out, Assignment{Cell: cell, Color: color})
		}
	}
	return out
}

type colorer struct {
	rng     *rand.Rand
	palette palette.Palette
	weights []float64
}

func (c colorer) strategic(cell grid.Cell, canvasArea float64) (string, bool) {
	switch {
	case cell.IsCorner():
		return c.palette.First(), true
	case cell.Area > canvasArea*LargeCellFraction:
		return c.weighted(), true
	}

	if c.rng.Float64() < SkipProbability {
		return "", false
	}
	if i := c.palette.Index(palette.White); i >= 0 {
		return c.palette.Colors[i], true
	}
	return c.uniform(), true
}

func (c colorer) weighted() string {
	if len(c.palette.Colors) == 0 {
		return palette.FallbackColor
	}
	return c.palette.Colors[pickWeighted(c.rng, c.weights)]
}

func (c colorer) uniform() string {
	if len(c.palette.Colors) == 0 {
		return palette.FallbackColor
	}
	return c.palette.Colors[c.rng.IntN(len(c.palette.Colors))]
}
