package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/mondrian/pkg/core/composition"
)

// DefaultScale is the PNG scale factor used when none is given.
const DefaultScale = 2.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
// Non-positive values keep the default.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderPNG rasterizes c natively. Areas not covered by a primitive stay
// transparent.
func RenderPNG(c composition.Composition, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}

	w := int(math.Ceil(c.Width * r.scale))
	h := int(math.Ceil(c.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("png: invalid canvas %gx%g at scale %g", c.Width, c.Height, r.scale)
	}

	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)
	for _, p := range c.Primitives {
		if err := r.draw(dc, p); err != nil {
			return nil, fmt.Errorf("png: %s: %w", p.Label, err)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (r pngRenderer) draw(dc *gg.Context, p composition.Primitive) error {
	switch {
	case p.Line != nil:
		if p.Style.Stroke == "" || p.Style.StrokeWidth <= 0 {
			return nil
		}
		col, err := colorful.Hex(p.Style.Stroke)
		if err != nil {
			return err
		}
		dc.SetColor(col)
		// gg strokes in device space, so the width is scaled by hand.
		dc.SetLineWidth(p.Style.StrokeWidth * r.scale)
		if p.Style.LineCap == composition.LineCapSquare {
			dc.SetLineCapSquare()
		} else {
			dc.SetLineCapButt()
		}
		dc.DrawLine(p.Line.X1, p.Line.Y1, p.Line.X2, p.Line.Y2)
		dc.Stroke()
	case p.Rect != nil:
		if p.Style.Fill == "" {
			return nil
		}
		col, err := colorful.Hex(p.Style.Fill)
		if err != nil {
			return err
		}
		dc.SetColor(col)
		dc.DrawRectangle(p.Rect.X, p.Rect.Y, p.Rect.Width, p.Rect.Height)
		dc.Fill()
	}
	return nil
}
