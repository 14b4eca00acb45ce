package sink

import (
	"context"
	"slices"
	"strings"

	"github.com/matzehuels/mondrian/pkg/core/composition"
	"github.com/matzehuels/mondrian/pkg/errors"
)

// Format names an output format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

var formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// Formats returns every supported format, in preference order.
func Formats() []Format { return slices.Clone(formats) }

// FormatNames returns [Formats] as strings.
func FormatNames() []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}

// ParseFormat normalizes s and checks that it names a supported format.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if err := errors.ValidateFormat(s, FormatNames()); err != nil {
		return "", err
	}
	return Format(s), nil
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string { return "." + string(f) }

// ContentType returns the media type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// Sink turns a composition into the bytes of one output format.
type Sink interface {
	Format() Format
	Render(ctx context.Context, c composition.Composition) ([]byte, error)
}

// Options carries the settings shared by every sink; each sink reads the
// fields that apply to it.
type Options struct {
	Scale     float64 // PNG scale factor
	NoLabels  bool    // SVG/PDF: omit labels
	Generator string  // JSON: producing program
}

// New returns the sink for f.
func New(f Format, opts Options) (Sink, error) {
	var svgOpts []SVGOption
	if opts.NoLabels {
		svgOpts = append(svgOpts, WithoutLabels())
	}

	switch f {
	case FormatSVG:
		return sinkFunc{f, func(_ context.Context, c composition.Composition) ([]byte, error) {
			return RenderSVG(c, svgOpts...), nil
		}}, nil
	case FormatPNG:
		return sinkFunc{f, func(_ context.Context, c composition.Composition) ([]byte, error) {
			return RenderPNG(c, WithScale(opts.Scale))
		}}, nil
	case FormatPDF:
		return sinkFunc{f, func(ctx context.Context, c composition.Composition) ([]byte, error) {
			return RenderPDF(ctx, c, WithPDFSVGOptions(svgOpts...))
		}}, nil
	case FormatJSON:
		return sinkFunc{f, func(_ context.Context, c composition.Composition) ([]byte, error) {
			return RenderJSON(c, WithJSONGenerator(opts.Generator))
		}}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", f)
	}
}

type sinkFunc struct {
	format Format
	render func(context.Context, composition.Composition) ([]byte, error)
}

func (s sinkFunc) Format() Format { return s.format }

func (s sinkFunc) Render(ctx context.Context, c composition.Composition) ([]byte, error) {
	return s.render(ctx, c)
}
