package compose

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/mondrian/pkg/core/grid"
)

// Policy is the strategy [Select] uses for a given balance.
type Policy int

const (
	Weighted Policy = iota
	Strategic
	Random
)

func (p Policy) String() string {
	switch p {
	case Strategic:
		return "strategic"
	case Random:
		return "random"
	default:
		return "weighted"
	}
}

const (
	strategicSelection = 0.7
	randomSelection    = 0.3
)

// PolicyFor returns the selection policy used at the given balance.
func PolicyFor(balance float64) Policy {
	switch {
	case balance > strategicSelection:
		return Strategic
	case balance < randomSelection:
		return Random
	default:
		return Weighted
	}
}

// SelectCount returns how many of total cells are colored at density.
func SelectCount(total int, density float64) int {
	if total <= 0 || density <= 0 {
		return 0
	}
	n := max(1, int(math.Floor(float64(total)*density)))
	return min(n, total)
}

// Select chooses the cells to color. The returned cells are distinct and
// drawn from cells; their order is the order of selection.
func Select(rng *rand.Rand, cells []grid.Cell, density, balance float64) []grid.Cell {
	n := SelectCount(len(cells), density)
	if n == 0 {
		return []grid.Cell{}
	}

	ranked := slices.Clone(cells)
	slices.SortStableFunc(ranked, func(a, b grid.Cell) int {
		return cmp.Compare(b.Area, a.Area)
	})

	switch PolicyFor(balance) {
	case Strategic:
		return ranked[:n]
	case Random:
		return sampleUniform(rng, ranked, n)
	default:
		return sampleByArea(rng, ranked, n, balance)
	}
}

// sampleUniform draws n distinct cells with a partial Fisher-Yates shuffle
// over an index slice.
func sampleUniform(rng *rand.Rand, cells []grid.Cell, n int) []grid.Cell {
	idx := make([]int, len(cells))
	for i := range idx {
		idx[i] = i
	}
	out := make([]grid.Cell, 0, n)
	for k := range n {
		j := k + rng.IntN(len(idx)-k)
		idx[k], idx[j] = idx[j], idx[k]
		out = append(out, cells[idx[k]])
	}
	return out
}

// sampleByArea draws n cells one at a time with weight area^exp from the
// cells not yet drawn. Drawn cells are swap-removed from the pool.
func sampleByArea(rng *rand.Rand, cells []grid.Cell, n int, exp float64) []grid.Cell {
	pool := make([]int, len(cells))
	for i := range pool {
		pool[i] = i
	}
	weights := make([]float64, 0, len(cells))
	out := make([]grid.Cell, 0, n)

	for range n {
		if len(pool) == 0 {
			break
		}
		weights = weights[:0]
		for _, i := range pool {
			weights = append(weights, math.Pow(cells[i].Area, exp))
		}
		k := pickWeighted(rng, weights)
		out = append(out, cells[pool[k]])

		last := len(pool) - 1
		pool[k] = pool[last]
		pool = pool[:last]
	}
	return out
}
