package tree

import "math"

// NoColor is the color index carried by the root, which has no palette color.
const NoColor = -1

// Direction is the side (left/right) or flow (down/up) a node renders toward.
type Direction string

const (
	DirectionNone  Direction = ""
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionDown  Direction = "down"
	DirectionUp    Direction = "up"
)

// Mode selects how directions are assigned and which layout family runs.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeLeft  Mode = "left"
	ModeRight Mode = "right"
	ModeDown  Mode = "down"
	ModeUp    Mode = "up"
)

// Modes lists every recognized layout mode.
var Modes = []Mode{ModeAuto, ModeLeft, ModeRight, ModeDown, ModeUp}

// ParseMode returns the mode named by s and whether s was recognized.
// Unrecognized values yield ModeAuto.
func ParseMode(s string) (Mode, bool) {
	for _, m := range Modes {
		if string(m) == s {
			return m, true
		}
	}
	return ModeAuto, false
}

// IsVertical reports whether the mode uses the top-down/bottom-up family.
func (m Mode) IsVertical() bool { return m == ModeDown || m == ModeUp }

// Node is a single topic in the arena.
//
// Fields below the blank line are computed by later passes and are only
// meaningful after the corresponding pass has run.
type Node struct {
	ID         int
	Parent     int // arena index of the parent, -1 for the root
	Depth      int
	Topic      string
	URL        string
	Pin        Direction // explicit direction from the input
	ColorIndex int
	Children   []int

	Direction Direction
	Lines     []string
	Width     float64
	Height    float64
	X, Y      float64 // box center
	Placed    bool
}

// HasLink reports whether the node carries a URL.
func (n *Node) HasLink() bool { return n.URL != "" }

// IsLeaf reports whether the node has no children in the data.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Tree is an arena of nodes. Nodes[0] is the root and Nodes[i].ID == i.
//
// Tree is not safe for concurrent use.
type Tree struct {
	Nodes []Node
}

// Root returns the root node.
func (t *Tree) Root() *Node { return &t.Nodes[0] }

// Node returns the node with the given id, or nil if it does not exist.
func (t *Tree) Node(id int) *Node {
	if id < 0 || id >= len(t.Nodes) {
		return nil
	}
	return &t.Nodes[id]
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.Nodes) }

// MaxDepth returns the depth of the deepest node.
func (t *Tree) MaxDepth() int {
	depth := 0
	for i := range t.Nodes {
		depth = max(depth, t.Nodes[i].Depth)
	}
	return depth
}

// Ancestors returns the ids on the path from id's parent up to the root.
func (t *Tree) Ancestors(id int) []int {
	var out []int
	for n := t.Node(id); n != nil && n.Parent >= 0; n = t.Node(n.Parent) {
		out = append(out, n.Parent)
	}
	return out
}

// Hidden reports whether id lies inside a collapsed subtree, i.e. one of its
// ancestors is collapsed. A collapsed node itself is still visible.
func (t *Tree) Hidden(id int, collapsed *CollapseSet) bool {
	for _, a := range t.Ancestors(id) {
		if collapsed.Has(a) {
			return true
		}
	}
	return false
}

// VisibleChildren returns the children that take part in layout: none when
// the node is collapsed.
func (t *Tree) VisibleChildren(id int, collapsed *CollapseSet) []int {
	if collapsed.Has(id) {
		return nil
	}
	return t.Nodes[id].Children
}

// Walk visits the visible nodes in depth-first pre-order (i.e. id order),
// skipping the descendants of collapsed nodes.
func (t *Tree) Walk(collapsed *CollapseSet, fn func(n *Node)) {
	stack := []int{0}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(&t.Nodes[id])
		kids := t.VisibleChildren(id, collapsed)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Bounds returns the bounding rectangle of all placed node boxes.
// The zero Rect is returned when nothing has been placed.
func (t *Tree) Bounds() Rect {
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	placed := false
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if !n.Placed {
			continue
		}
		placed = true
		r.MinX = min(r.MinX, n.X-n.Width/2)
		r.MaxX = max(r.MaxX, n.X+n.Width/2)
		r.MinY = min(r.MinY, n.Y-n.Height/2)
		r.MaxY = max(r.MaxY, n.Y+n.Height/2)
	}
	if !placed {
		return Rect{}
	}
	return r
}
