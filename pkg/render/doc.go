// Package render holds the shared format conversion used by the output
// sinks.
//
// # Format Conversion
//
// [ToPDF] converts any SVG document to PDF using the external rsvg-convert
// tool (from librsvg):
//
//	svg := sink.RenderSVG(c)
//	pdf, err := render.ToPDF(ctx, svg)
//
// Use [Available] to check for the tool before offering PDF output.
//
// # Sinks
//
// The [sink] subpackage turns a composition into SVG, PNG, PDF or JSON bytes.
//
// [sink]: github.com/matzehuels/mondrian/pkg/render/sink
package render
