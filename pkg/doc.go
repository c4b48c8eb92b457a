// Package pkg provides the core libraries for mindmap layout.
//
// # Overview
//
// Mindmap turns a hierarchy of topics into a positioned mind map: every
// topic becomes a wrapped, sized box, first-level branches are spread left
// and right of a central root (or stacked above or below it), and the
// result is exported as plain coordinates that any renderer can draw.
//
// # Architecture
//
// The data flow through mindmap:
//
//	JSON / YAML document
//	         ↓
//	    [io] package (decode to a generic tree)
//	         ↓
//	    [tree] package (arena tree, directions, collapse state)
//	         ↓
//	    [layout] package (wrap + size, spacing, positions)
//	         ↓
//	    [mindmap] package (engine + exported Layout)
//	         ↓
//	    [render/sink], [render/nodelink] (SVG, JSON, DOT, PNG, PDF)
//
// # Quick Start
//
//	m, _ := text.NewFontMeasurer()
//	e := mindmap.New(m, mindmap.WithOptions(layout.DefaultOptions()))
//	_ = e.Load(doc)
//	e.Toggle(3) // collapse node 3
//	l, _ := e.Layout()
//	svg, _ := sink.RenderSVG(l, sink.WithTheme(sink.DarkTheme))
//
// # Main Packages
//
// [tree] - Arena tree built from decoded input. IDs are assigned depth-first,
// branches carry a palette color and a left/right direction.
//
// [text] - Width measurement behind the [text.Measurer] interface, a caching
// meter and greedy word wrapping.
//
// [layout] - Sizing, depth-adaptive spacing and placement for horizontal and
// vertical modes.
//
// [mindmap] - The stateful engine (data, options, collapse set) and the
// renderer-facing [mindmap.Layout].
//
// [render/sink] - Native SVG and JSON output.
//
// [render/nodelink] - Graphviz DOT export with pinned positions.
//
// [pipeline] - Cached layout → render orchestration shared by the CLI and
// the HTTP API.
//
// [server] - HTTP API for one-off layouts and stored maps.
//
// [store] - Map persistence (memory, MongoDB).
//
// [cache] - Layout and artifact caches (file, Redis, null).
//
// [config] - TOML configuration file.
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/tree
// [text]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/text
// [text.Measurer]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/text#Measurer
// [layout]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/layout
// [mindmap]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/mindmap
// [mindmap.Layout]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/mindmap#Layout
// [io]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/io
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/server
// [store]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/store
// [cache]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/mindmap/pkg/config
package pkg
