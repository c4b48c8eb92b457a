package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/render"
)

// pointsPerInch converts engine pixels (treated as points) to Graphviz inches.
const pointsPerInch = 72.0

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the node id, depth and direction in labels.
	// When false, only the wrapped topic lines are shown.
	Detailed bool

	// Free drops the pinned positions so Graphviz lays the tree out
	// itself with dot. Useful for comparing against the engine.
	Free bool
}

// ToDOT converts a positioned mind map to Graphviz DOT format.
//
// By default every node is pinned at its engine coordinates (pos="x,y!")
// with a fixed box size, so rendering with neato reproduces the engine
// layout exactly. Graphviz's y axis points up; coordinates are flipped.
func ToDOT(l *mindmap.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Free {
		if l.Mode.IsVertical() {
			buf.WriteString("  rankdir=TB;\n")
		} else {
			buf.WriteString("  rankdir=LR;\n")
		}
	} else {
		buf.WriteString("  layout=neato;\n")
		buf.WriteString("  overlap=true;\n")
		buf.WriteString("  splines=true;\n")
	}
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("\n")

	for i := range l.Nodes {
		n := &l.Nodes[i]
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID, strings.Join(fmtAttrs(n, opts), ", "))
	}

	buf.WriteString("\n")
	placed := make(map[int]bool, len(l.Nodes))
	for i := range l.Nodes {
		placed[l.Nodes[i].ID] = true
	}
	for i := range l.Nodes {
		n := &l.Nodes[i]
		if placed[n.Parent] {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", n.Parent, n.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *mindmap.Node, detailed bool) string {
	label := strings.Join(n.Lines, "\n")
	if !detailed {
		return label
	}
	parts := []string{fmt.Sprintf("id: %d", n.ID), fmt.Sprintf("depth: %d", n.Depth)}
	if n.Direction != "" {
		parts = append(parts, fmt.Sprintf("dir: %s", n.Direction))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *mindmap.Node, opts Options) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed)),
		fmt.Sprintf("fontsize=%g", n.FontSize),
	}
	if !opts.Free {
		attrs = append(attrs,
			fmt.Sprintf("pos=\"%s,%s!\"", inches(n.X), inches(-n.Y)),
			fmt.Sprintf("width=%s", inches(n.Width)),
			fmt.Sprintf("height=%s", inches(n.Height)),
			"fixedsize=true",
		)
	}
	if n.HasLink {
		attrs = append(attrs, fmt.Sprintf("URL=%q", n.URL))
	}
	if n.Collapsed {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

func inches(px float64) string {
	v := px / pointsPerInch
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz. Pinned graphs are
// laid out with neato, free graphs with dot.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	if strings.Contains(dot, "layout=neato") {
		gv.SetLayout(graphviz.NEATO)
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([-0-9.]+)\s+([-0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
