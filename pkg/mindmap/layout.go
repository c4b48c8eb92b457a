package mindmap

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// =============================================================================
// Layout - Serialization Format
// =============================================================================

// Layout is a positioned mind map as consumed by renderers.
// Coordinates are box centers; the root sits at (0, 0).
type Layout struct {
	Mode       tree.Mode         `json:"mode" bson:"mode"`
	CenterEdge layout.CenterEdge `json:"centerEdge" bson:"center_edge"`
	Spacing    layout.Spacing    `json:"spacing" bson:"spacing"`
	Bounds     Bounds            `json:"bounds" bson:"bounds"`
	Nodes      []Node            `json:"nodes" bson:"nodes"`
}

// Bounds is the bounding box of all emitted node boxes.
type Bounds struct {
	MinX   float64 `json:"minX" bson:"min_x"`
	MinY   float64 `json:"minY" bson:"min_y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Node is one placed topic.
type Node struct {
	ID          int            `json:"id" bson:"id"`
	Parent      int            `json:"parent" bson:"parent"`
	Depth       int            `json:"depth" bson:"depth"`
	ColorIndex  int            `json:"colorIndex" bson:"color_index"`
	Direction   tree.Direction `json:"direction,omitempty" bson:"direction,omitempty"`
	X           float64        `json:"x" bson:"x"`
	Y           float64        `json:"y" bson:"y"`
	Width       float64        `json:"width" bson:"width"`
	Height      float64        `json:"height" bson:"height"`
	Lines       []string       `json:"lines" bson:"lines"`
	HasLink     bool           `json:"hasLink" bson:"has_link"`
	Topic       string         `json:"topic" bson:"topic"`
	URL         string         `json:"url,omitempty" bson:"url,omitempty"`
	Collapsed   bool           `json:"collapsed,omitempty" bson:"collapsed,omitempty"`
	HasChildren bool           `json:"hasChildren" bson:"has_children"`
	FontSize    float64        `json:"fontSize" bson:"font_size"`
}

// IsRoot reports whether n is the root.
func (n *Node) IsRoot() bool { return n.Parent < 0 }

// Node returns the node with the given id, or nil if it was not placed.
func (l *Layout) Node(id int) *Node {
	for i := range l.Nodes {
		if l.Nodes[i].ID == id {
			return &l.Nodes[i]
		}
	}
	return nil
}

// Export converts a positioned tree into a Layout, in id order, skipping
// nodes that were not placed.
func Export(t *tree.Tree, ctx *layout.Context) *Layout {
	r := t.Bounds()
	l := &Layout{
		Mode:       ctx.Options.Mode,
		CenterEdge: ctx.Options.CenterEdge,
		Spacing:    ctx.Spacing,
		Bounds:     Bounds{MinX: r.MinX, MinY: r.MinY, Width: r.Width(), Height: r.Height()},
		Nodes:      make([]Node, 0, t.Len()),
	}
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if !n.Placed {
			continue
		}
		l.Nodes = append(l.Nodes, Node{
			ID:          n.ID,
			Parent:      n.Parent,
			Depth:       n.Depth,
			ColorIndex:  n.ColorIndex,
			Direction:   n.Direction,
			X:           n.X,
			Y:           n.Y,
			Width:       n.Width,
			Height:      n.Height,
			Lines:       n.Lines,
			HasLink:     n.HasLink(),
			Topic:       n.Topic,
			URL:         n.URL,
			Collapsed:   ctx.Collapsed.Has(n.ID) && !n.IsLeaf(),
			HasChildren: !n.IsLeaf(),
			FontSize:    ctx.Options.Profiles.For(layout.TierFor(n.Depth)).FontSize,
		})
	}
	return l
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l *Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("unmarshal layout: %w", err)
	}
	if len(l.Nodes) == 0 {
		return nil, fmt.Errorf("layout must contain at least the root node")
	}
	return &l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l *Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
