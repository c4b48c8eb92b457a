// Package render turns positioned mind maps into viewable output.
//
// # Overview
//
// Renderers consume a [mindmap.Layout] and contain no layout logic: every
// coordinate, box size and wrapped line comes from the engine. This package
// provides:
//
//   - Sinks for SVG and JSON (in [sink] subpackage)
//   - Graphviz node-link output (in [nodelink] subpackage)
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := sink.RenderSVG(l)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [mindmap.Layout]: github.com/matzehuels/mindmap/pkg/mindmap.Layout
// [sink]: github.com/matzehuels/mindmap/pkg/render/sink
// [nodelink]: github.com/matzehuels/mindmap/pkg/render/nodelink
package render
