package grid

// Cell is one rectangle of the partitioned canvas.
type Cell struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Area   float64 `json:"area"`
	I      int     `json:"i"` // column index
	J      int     `json:"j"` // row index
}

// IsCorner reports whether c is the top-left cell of the grid.
func (c Cell) IsCorner() bool { return c.I == 0 && c.J == 0 }

// Partition splits a width x height canvas along the given vertical (x) and
// horizontal (y) coordinates. Cells are produced column by column, top to
// bottom within a column. Cells with a non-positive edge, or an edge shorter
// than minSize, are dropped; the surviving cells keep their original indices.
func Partition(vLines, hLines []float64, width, height, minSize float64) []Cell {
	xs := withEdges(vLines, width)
	ys := withEdges(hLines, height)

	cells := make([]Cell, 0, (len(xs)-1)*(len(ys)-1))
	for i := 0; i < len(xs)-1; i++ {
		w := xs[i+1] - xs[i]
		if w <= 0 || w < minSize {
			continue
		}
		for j := 0; j < len(ys)-1; j++ {
			h := ys[j+1] - ys[j]
			if h <= 0 || h < minSize {
				continue
			}
			cells = append(cells, Cell{
				X: xs[i], Y: ys[j],
				Width: w, Height: h,
				Area: w * h,
				I:    i, J: j,
			})
		}
	}
	return cells
}

func withEdges(lines []float64, extent float64) []float64 {
	out := make([]float64, 0, len(lines)+2)
	out = append(out, 0)
	out = append(out, lines...)
	return append(out, extent)
}
