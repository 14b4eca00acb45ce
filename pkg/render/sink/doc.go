// Package sink provides output format renderers for Mondrian compositions.
//
// # Overview
//
// A "sink" transforms a [composition.Composition] into a final output format.
// This package provides renderers for:
//
//   - SVG: Layered vector document with labelled primitives
//   - PNG: Native raster output (fogleman/gg)
//   - PDF: Print-ready output (requires rsvg-convert)
//   - JSON: Primitive export for external tools
//
// Primitives are painted in composition order: background, lines, blocks.
//
// # SVG Output
//
// [RenderSVG] wraps the drawing in a layer labelled with the document label
// ("Mondrian 800x600"). When the composition asks for grouping, every
// primitive sits in one group labelled "Mondrian Composition". Labels are
// written as inkscape:label attributes so editors show them in their layer
// panels.
//
//	svg := sink.RenderSVG(c)
//	svg := sink.RenderSVG(c, sink.WithoutLabels(), sink.WithoutLayer())
//
// # PNG Output
//
// [RenderPNG] rasterizes without external tools. Grouping and labels do not
// apply.
//
//	png, err := sink.RenderPNG(c, sink.WithScale(2))
//
// # PDF Output
//
// [RenderPDF] generates SVG, then converts it via [render.ToPDF]. This
// requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// # Choosing a Sink at Runtime
//
// [New] returns a [Sink] for a [Format], which is how the pipeline and the
// HTTP API select renderers:
//
//	s, err := sink.New(sink.FormatPNG, sink.Options{Scale: 2})
//	data, err := s.Render(ctx, c)
//
// [render.ToPDF]: github.com/matzehuels/mondrian/pkg/render.ToPDF
package sink
