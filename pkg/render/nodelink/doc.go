// Package nodelink renders mind maps as Graphviz node-link diagrams.
//
// # Overview
//
// This package is an alternative to the native SVG sink. It exports the
// positioned tree as DOT so that it can be inspected, edited, or rendered
// with the Graphviz toolchain.
//
// # Usage
//
// Convert a layout to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: labels also show id, depth and direction
//   - Free: drop pinned positions and let dot rank the tree
//
// # Pinned Positions
//
// By default every node carries pos="x,y!" with fixedsize boxes, and the
// graph asks for the neato engine, which honors pins. The rendered picture
// therefore matches the engine's coordinates rather than Graphviz's own
// ranking.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
