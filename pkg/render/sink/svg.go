package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/tree"
)

const (
	defaultMargin     = 40.0
	defaultLineHeight = 1.3
	defaultIconSpace  = 20.0
	cornerRadius      = 8
	badgeRadius       = 7
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme      Theme
	margin     float64
	lineHeight float64
	iconSpace  float64
	links      bool
}

// WithTheme selects the color theme.
func WithTheme(t Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithMargin sets the blank border around the drawing, in pixels.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithLineHeight sets the line height multiplier used to space wrapped
// lines. It should match the layout options.
func WithLineHeight(h float64) SVGOption { return func(r *svgRenderer) { r.lineHeight = h } }

// WithIconSpace sets the width reserved for the link icon. It should match
// the layout options.
func WithIconSpace(w float64) SVGOption { return func(r *svgRenderer) { r.iconSpace = w } }

// WithoutLinks renders linked nodes as plain text.
func WithoutLinks() SVGOption { return func(r *svgRenderer) { r.links = false } }

// RenderSVG draws l as a standalone SVG document.
func RenderSVG(l *mindmap.Layout, opts ...SVGOption) ([]byte, error) {
	if l == nil || len(l.Nodes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "layout has no nodes")
	}
	r := svgRenderer{
		theme:      LightTheme,
		margin:     defaultMargin,
		lineHeight: defaultLineHeight,
		iconSpace:  defaultIconSpace,
		links:      true,
	}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)

	minX, minY := l.Bounds.MinX-r.margin, l.Bounds.MinY-r.margin
	w, h := l.Bounds.Width+2*r.margin, l.Bounds.Height+2*r.margin
	canvas.Startview(px(w), px(h), px(minX), px(minY), px(w), px(h))
	canvas.Rect(px(minX), px(minY), px(w), px(h), "fill:"+r.theme.Background)

	byID := make(map[int]*mindmap.Node, len(l.Nodes))
	for i := range l.Nodes {
		byID[l.Nodes[i].ID] = &l.Nodes[i]
	}

	canvas.Gid("edges")
	for i := range l.Nodes {
		n := &l.Nodes[i]
		if p, ok := byID[n.Parent]; ok {
			canvas.Path(connector(p, n, l.Mode), fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", r.theme.Edge))
		}
	}
	canvas.Gend()

	canvas.Gid("nodes")
	for i := range l.Nodes {
		r.node(canvas, &l.Nodes[i], l.Mode)
	}
	canvas.Gend()

	canvas.End()
	return buf.Bytes(), nil
}

func (r *svgRenderer) node(canvas *svg.SVG, n *mindmap.Node, mode tree.Mode) {
	canvas.Group(fmt.Sprintf(`id="node-%d"`, n.ID), fmt.Sprintf(`class="node depth-%d"`, n.Depth))
	defer canvas.Gend()

	x, y := n.X-n.Width/2, n.Y-n.Height/2
	canvas.Roundrect(px(x), px(y), px(n.Width), px(n.Height), cornerRadius, cornerRadius,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", r.theme.fill(n.ColorIndex), r.theme.Edge))

	linked := r.links && n.HasLink && errors.ValidateURL(n.URL) == nil
	if linked {
		canvas.Link(html.EscapeString(n.URL), html.EscapeString(n.Topic))
	}
	r.lines(canvas, n)
	if linked {
		r.icon(canvas, n)
		canvas.LinkEnd()
	}

	if n.Collapsed {
		bx, by := badgePosition(n, mode)
		canvas.Circle(px(bx), px(by), badgeRadius, fmt.Sprintf("fill:%s;stroke:%s", r.theme.Background, r.theme.Edge))
		canvas.Text(px(bx), px(by)+4, "+", fmt.Sprintf("fill:%s;font-size:12px;text-anchor:middle", r.theme.Text))
	}
}

// lines writes the wrapped topic lines centered in the box. Linked nodes
// shift the text left to leave room for the icon.
func (r *svgRenderer) lines(canvas *svg.SVG, n *mindmap.Node) {
	cx := n.X
	if n.HasLink {
		cx -= r.iconSpace / 2
	}
	step := n.FontSize * r.lineHeight
	top := n.Y - step*float64(len(n.Lines))/2
	style := fmt.Sprintf("fill:%s;font-family:sans-serif;font-size:%gpx;text-anchor:middle;dominant-baseline:central", r.theme.Text, n.FontSize)
	for i, line := range n.Lines {
		canvas.Text(px(cx), px(top+step*(float64(i)+0.5)), line, style)
	}
}

// icon draws a small arrow in the reserved space at the box's right edge.
func (r *svgRenderer) icon(canvas *svg.SVG, n *mindmap.Node) {
	cx := n.X + n.Width/2 - r.iconSpace/2 - 4
	canvas.Text(px(cx), px(n.Y), "↗", fmt.Sprintf("fill:%s;font-size:%gpx;text-anchor:middle;dominant-baseline:central", r.theme.Text, n.FontSize))
}

// connector returns a cubic Bézier path from the parent's outer edge to the
// child's near edge.
func connector(p, c *mindmap.Node, mode tree.Mode) string {
	if mode.IsVertical() {
		sign := 1.0
		if c.Y < p.Y {
			sign = -1
		}
		x1, y1 := p.X, p.Y+sign*p.Height/2
		x2, y2 := c.X, c.Y-sign*c.Height/2
		my := (y1 + y2) / 2
		return fmt.Sprintf("M%d,%d C%d,%d %d,%d %d,%d", px(x1), px(y1), px(x1), px(my), px(x2), px(my), px(x2), px(y2))
	}
	sign := 1.0
	if c.X < p.X {
		sign = -1
	}
	x1, y1 := p.X+sign*p.Width/2, p.Y
	x2, y2 := c.X-sign*c.Width/2, c.Y
	mx := (x1 + x2) / 2
	return fmt.Sprintf("M%d,%d C%d,%d %d,%d %d,%d", px(x1), px(y1), px(mx), px(y1), px(mx), px(y2), px(x2), px(y2))
}

// badgePosition places the collapse badge on the edge facing the hidden
// children.
func badgePosition(n *mindmap.Node, mode tree.Mode) (float64, float64) {
	switch {
	case mode == tree.ModeDown:
		return n.X, n.Y + n.Height/2
	case mode == tree.ModeUp:
		return n.X, n.Y - n.Height/2
	case n.Direction == tree.DirectionLeft:
		return n.X - n.Width/2, n.Y
	default:
		return n.X + n.Width/2, n.Y
	}
}

func px(v float64) int { return int(math.Round(v)) }
