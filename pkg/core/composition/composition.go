// Package composition holds the drawing primitives a generator emits and a
// rendering sink consumes.
//
// A [Composition] is a plain value: an ordered list of [Primitive]s (at most
// one background, then grid lines, then colored blocks) together with the
// canvas size and the labels a document-oriented sink may attach. Styles are
// structured records; serializing them is left to the sinks.
package composition

import "fmt"

// Kind distinguishes the primitive variants.
type Kind string

const (
	KindBackground Kind = "background"
	KindLine       Kind = "line"
	KindBlock      Kind = "block"
)

// Axis is the orientation of a line primitive.
type Axis string

const (
	AxisVertical   Axis = "vertical"
	AxisHorizontal Axis = "horizontal"
)

// LineCapSquare is the line cap used for grid lines.
const LineCapSquare = "square"

const (
	// GroupLabel names the group wrapping all primitives when grouping is on.
	GroupLabel = "Mondrian Composition"

	// BackgroundLabel labels the background primitive.
	BackgroundLabel = "Background"
)

// Style is the paint applied to a primitive. An empty Fill or Stroke means
// none.
type Style struct {
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	LineCap     string  `json:"line_cap,omitempty"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Segment is a straight line between two points.
type Segment struct {
	Axis       Axis    `json:"axis"`
	Coordinate float64 `json:"coordinate"`
	X1         float64 `json:"x1"`
	Y1         float64 `json:"y1"`
	X2         float64 `json:"x2"`
	Y2         float64 `json:"y2"`
}

// Cell locates a block in the grid.
type Cell struct {
	I int `json:"i"`
	J int `json:"j"`
}

// Primitive is a single drawable element. Exactly one of Rect and Line is set.
type Primitive struct {
	Kind  Kind     `json:"kind"`
	Label string   `json:"label"`
	Rect  *Rect    `json:"rect,omitempty"`
	Line  *Segment `json:"line,omitempty"`
	Cell  *Cell    `json:"cell,omitempty"`
	Style Style    `json:"style"`
}

// Background returns a fill-only rectangle covering a width x height canvas.
func Background(width, height float64, color string) Primitive {
	return Primitive{
		Kind:  KindBackground,
		Label: BackgroundLabel,
		Rect:  &Rect{Width: width, Height: height},
		Style: Style{Fill: color},
	}
}

// VerticalLine returns a full-height line at x. n is its 1-based position
// among the vertical lines.
func VerticalLine(n int, x, height, thickness float64, color string) Primitive {
	return Primitive{
		Kind:  KindLine,
		Label: fmt.Sprintf("Vertical Line %d", n),
		Line:  &Segment{Axis: AxisVertical, Coordinate: x, X1: x, Y1: 0, X2: x, Y2: height},
		Style: Style{Stroke: color, StrokeWidth: thickness, LineCap: LineCapSquare},
	}
}

// HorizontalLine returns a full-width line at y. n is its 1-based position
// among the horizontal lines.
func HorizontalLine(n int, y, width, thickness float64, color string) Primitive {
	return Primitive{
		Kind:  KindLine,
		Label: fmt.Sprintf("Horizontal Line %d", n),
		Line:  &Segment{Axis: AxisHorizontal, Coordinate: y, X1: 0, Y1: y, X2: width, Y2: y},
		Style: Style{Stroke: color, StrokeWidth: thickness, LineCap: LineCapSquare},
	}
}

// Block returns the n-th colored rectangle (1-based).
func Block(n int, r Rect, cell Cell, color string) Primitive {
	return Primitive{
		Kind:  KindBlock,
		Label: fmt.Sprintf("Color Block %d", n),
		Rect:  &r,
		Cell:  &cell,
		Style: Style{Fill: color},
	}
}

// Composition is the complete output of one generation run.
type Composition struct {
	ID         string      `json:"id,omitempty"`
	Label      string      `json:"label"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Palette    string      `json:"palette"`
	Seed       int64       `json:"seed"`
	Group      bool        `json:"group"`
	RectCount  int         `json:"rect_count"`
	Primitives []Primitive `json:"primitives"`
}

// DocumentLabel returns the label of a width x height composition.
func DocumentLabel(width, height float64) string {
	return fmt.Sprintf("Mondrian %gx%g", width, height)
}

// Filter returns the primitives of the given kind, in order.
func (c Composition) Filter(k Kind) []Primitive {
	var out []Primitive
	for _, p := range c.Primitives {
		if p.Kind == k {
			out = append(out, p)
		}
	}
	return out
}

// Lines returns the line primitives along axis a.
func (c Composition) Lines(a Axis) []Primitive {
	var out []Primitive
	for _, p := range c.Primitives {
		if p.Kind == KindLine && p.Line != nil && p.Line.Axis == a {
			out = append(out, p)
		}
	}
	return out
}

// Summary returns the user-facing report for the composition.
func (c Composition) Summary() string {
	return fmt.Sprintf("Generated Mondrian with %d colored rectangles", c.RectCount)
}
