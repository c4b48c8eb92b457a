// Package sink renders a positioned mind map as SVG or JSON.
//
// # SVG Output
//
// [RenderSVG] draws rounded boxes for every node in the layout, curved
// connectors from each parent to its children, and the wrapped lines of
// each topic. Nodes with a safe http, https or mailto link become anchors.
// Collapsed nodes carry a small "+" badge on their outer edge.
//
//	svg, err := sink.RenderSVG(l,
//	    sink.WithTheme(sink.DarkTheme),
//	    sink.WithMargin(40),
//	)
//
// The engine's coordinate system is centered on the root; the SVG viewBox
// is derived from the layout bounds plus the margin. svgo works in integer
// user units, so every coordinate is rounded to the nearest pixel.
//
// # JSON Output
//
// [RenderJSON] writes the layout itself, indented by default, for external
// renderers.
package sink
