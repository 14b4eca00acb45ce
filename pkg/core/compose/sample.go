package compose

import "math/rand/v2"

// pickWeighted returns an index into weights chosen with probability
// proportional to its weight. It uses a single draw from rng. Non-positive
// weights are never chosen unless all weights are non-positive, in which case
// the choice is uniform. It returns -1 for an empty slice.
func pickWeighted(rng *rand.Rand, weights []float64) int {
	if len(weights) == 0 {
		return -1
	}
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return rng.IntN(len(weights))
	}

	r := rng.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if r < w {
			return i
		}
		r -= w
		last = i
	}
	// Float rounding can leave r marginally above the final weight.
	return last
}
