package composition

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestConstructors(t *testing.T) {
	bg := Background(800, 600, "#FFFFFF")
	if bg.Kind != KindBackground || bg.Rect == nil || bg.Rect.Width != 800 || bg.Rect.Height != 600 {
		t.Errorf("Background() = %+v", bg)
	}
	if bg.Style.Stroke != "" {
		t.Errorf("background should have no stroke, got %q", bg.Style.Stroke)
	}

	v := VerticalLine(2, 400, 600, 3, "#000000")
	if v.Label != "Vertical Line 2" {
		t.Errorf("label = %q", v.Label)
	}
	if v.Line.X1 != 400 || v.Line.X2 != 400 || v.Line.Y1 != 0 || v.Line.Y2 != 600 {
		t.Errorf("vertical segment = %+v", *v.Line)
	}
	if v.Style.LineCap != LineCapSquare || v.Style.StrokeWidth != 3 {
		t.Errorf("vertical style = %+v", v.Style)
	}

	h := HorizontalLine(1, 300, 800, 2.5, "#000000")
	if h.Line.Axis != AxisHorizontal || h.Line.Y1 != 300 || h.Line.X2 != 800 {
		t.Errorf("horizontal segment = %+v", *h.Line)
	}

	b := Block(5, Rect{X: 1, Y: 2, Width: 3, Height: 4}, Cell{I: 1, J: 2}, "#0000FF")
	if b.Label != "Color Block 5" || b.Style.Fill != "#0000FF" || b.Cell.J != 2 {
		t.Errorf("Block() = %+v", b)
	}
}

func TestFilterAndLines(t *testing.T) {
	c := Composition{Primitives: []Primitive{
		Background(10, 10, "#FFFFFF"),
		VerticalLine(1, 5, 10, 1, "#000000"),
		HorizontalLine(1, 5, 10, 1, "#000000"),
		HorizontalLine(2, 7, 10, 1, "#000000"),
		Block(1, Rect{Width: 5, Height: 5}, Cell{}, "#FF0000"),
	}}

	if got := len(c.Filter(KindLine)); got != 3 {
		t.Errorf("Filter(line) = %d, want 3", got)
	}
	if got := len(c.Lines(AxisHorizontal)); got != 2 {
		t.Errorf("Lines(horizontal) = %d, want 2", got)
	}
	if got := len(c.Filter(KindBlock)); got != 1 {
		t.Errorf("Filter(block) = %d, want 1", got)
	}
}

func TestDocumentLabel(t *testing.T) {
	if got := DocumentLabel(800, 600); got != "Mondrian 800x600" {
		t.Errorf("DocumentLabel() = %q", got)
	}
	if got := DocumentLabel(812.5, 600); got != "Mondrian 812.5x600" {
		t.Errorf("DocumentLabel() = %q", got)
	}
}

func TestSummary(t *testing.T) {
	c := Composition{RectCount: 7}
	if got := c.Summary(); got != "Generated Mondrian with 7 colored rectangles" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestJSONOmitsUnusedGeometry(t *testing.T) {
	data, err := json.Marshal(VerticalLine(1, 5, 10, 1, "#000000"))
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if strings.Contains(s, `"rect"`) || strings.Contains(s, `"cell"`) {
		t.Errorf("line JSON should omit rect and cell: %s", s)
	}
	if !strings.Contains(s, `"line_cap":"square"`) {
		t.Errorf("line JSON missing line cap: %s", s)
	}
}
