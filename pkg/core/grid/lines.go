package grid

import (
	"math/rand/v2"
	"slices"
)

// Orientation selects the axis a set of lines divides.
type Orientation int

const (
	// Vertical lines run top to bottom and are positioned along the x axis.
	Vertical Orientation = iota
	// Horizontal lines run left to right and are positioned along the y axis.
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

const (
	// SnapTolerance is the fraction of the usable span within which a base
	// position snaps to a favorite ratio.
	SnapTolerance = 0.1

	// EdgeInset keeps lines this many units inside the margins.
	EdgeInset = 5.0

	// structuredThreshold is the distribution above which favorites apply.
	structuredThreshold = 0.5
)

var (
	verticalFavorites   = []float64{0.25, 0.333, 0.5, 0.618, 0.667, 0.75}
	horizontalFavorites = []float64{0.2, 0.333, 0.4, 0.5, 0.6, 0.667, 0.8}
)

// Favorites returns the preferred fractional positions for lines of the given
// orientation. The order is significant: snapping takes the first match.
func Favorites(o Orientation) []float64 {
	if o == Horizontal {
		return slices.Clone(horizontalFavorites)
	}
	return slices.Clone(verticalFavorites)
}

// LineParams configures a single call to [DistributeLines].
type LineParams struct {
	Count        int
	Dimension    float64 // axis length
	Orientation  Orientation
	Margin       float64 // fraction of Dimension kept free on each side
	Distribution float64 // 1 = structured, 0 = random
	Randomness   float64 // maximum jitter as a fraction of the line spacing
}

// DistributeLines returns Count positions along one axis, sorted ascending.
//
// Exactly one value is drawn from rng per line, whatever the parameters, so
// a seeded run consumes the stream identically across configurations.
func DistributeLines(rng *rand.Rand, p LineParams) []float64 {
	if p.Count <= 0 {
		return []float64{}
	}

	margin := p.Dimension * p.Margin
	usable := p.Dimension - 2*margin
	step := usable / float64(p.Count+1)
	jitter := p.Randomness * (1 - p.Distribution)

	var favorites []float64
	if p.Distribution > structuredThreshold {
		favorites = Favorites(p.Orientation)
	}

	lo, hi := margin+EdgeInset, p.Dimension-margin-EdgeInset
	lines := make([]float64, 0, p.Count)
	for k := range p.Count {
		base := margin + float64(k+1)*step
		base = snap(base, p.Dimension, usable, favorites)

		offset := uniform(rng, -jitter, jitter) * step
		lines = append(lines, max(lo, min(hi, base+offset)))
	}

	slices.Sort(lines)
	return lines
}

// snap replaces base with the first favorite position within tolerance.
func snap(base, dimension, usable float64, favorites []float64) float64 {
	for _, fav := range favorites {
		pos := dimension * fav
		if abs(base-pos) < usable*SnapTolerance {
			return pos
		}
	}
	return base
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
