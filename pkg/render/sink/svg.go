package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/mondrian/pkg/core/composition"
)

const inkscapeNS = "http://www.inkscape.org/namespaces/inkscape"

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels bool
	layer  bool
}

// WithoutLabels omits the label attributes on groups and primitives.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithoutLayer omits the document layer wrapping the drawing.
func WithoutLayer() SVGOption { return func(r *svgRenderer) { r.layer = false } }

// RenderSVG renders c as a standalone SVG document. Primitives are written
// in order, so later primitives paint over earlier ones. When c.Group is set
// they share one labelled group.
func RenderSVG(c composition.Composition, opts ...SVGOption) []byte {
	r := svgRenderer{labels: true, layer: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:inkscape="%s" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		inkscapeNS, num(c.Width), num(c.Height), num(c.Width), num(c.Height))
	fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(c.Label))

	indent := "  "
	if r.layer {
		fmt.Fprintf(&buf, "%s<g inkscape:groupmode=\"layer\"%s>\n", indent, r.label(c.Label))
		indent += "  "
	}
	if c.Group {
		fmt.Fprintf(&buf, "%s<g%s>\n", indent, r.label(composition.GroupLabel))
		indent += "  "
	}

	for _, p := range c.Primitives {
		r.renderPrimitive(&buf, indent, p)
	}

	if c.Group {
		indent = indent[2:]
		fmt.Fprintf(&buf, "%s</g>\n", indent)
	}
	if r.layer {
		indent = indent[2:]
		fmt.Fprintf(&buf, "%s</g>\n", indent)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderPrimitive(buf *bytes.Buffer, indent string, p composition.Primitive) {
	switch {
	case p.Line != nil:
		l := p.Line
		fmt.Fprintf(buf, `%s<line x1="%s" y1="%s" x2="%s" y2="%s" %s%s/>`+"\n",
			indent, num(l.X1), num(l.Y1), num(l.X2), num(l.Y2), styleAttrs(p.Style), r.label(p.Label))
	case p.Rect != nil:
		rc := p.Rect
		fmt.Fprintf(buf, `%s<rect x="%s" y="%s" width="%s" height="%s" %s%s/>`+"\n",
			indent, num(rc.X), num(rc.Y), num(rc.Width), num(rc.Height), styleAttrs(p.Style), r.label(p.Label))
	}
}

func (r svgRenderer) label(s string) string {
	if !r.labels || s == "" {
		return ""
	}
	return fmt.Sprintf(` inkscape:label="%s"`, escapeXML(s))
}

func styleAttrs(s composition.Style) string {
	fill, stroke := s.Fill, s.Stroke
	if fill == "" {
		fill = "none"
	}
	if stroke == "" {
		stroke = "none"
	}
	out := fmt.Sprintf(`fill="%s" stroke="%s"`, escapeXML(fill), escapeXML(stroke))
	if s.Stroke != "" && s.StrokeWidth > 0 {
		out += fmt.Sprintf(` stroke-width="%s"`, num(s.StrokeWidth))
	}
	if s.LineCap != "" {
		out += fmt.Sprintf(` stroke-linecap="%s"`, escapeXML(s.LineCap))
	}
	return out
}

// num formats v with the fewest digits that parse back to v exactly.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
