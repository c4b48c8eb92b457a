package layout

import "github.com/matzehuels/mindmap/pkg/tree"

// Position assigns box-center coordinates to every visible node of a sized
// tree, with the root at (0, 0). Nodes inside collapsed subtrees are left
// unplaced.
func Position(t *tree.Tree, ctx *Context) {
	root := t.Root()
	root.X, root.Y, root.Placed = 0, 0, true

	kids := t.VisibleChildren(root.ID, ctx.Collapsed)
	if ctx.Options.Mode.IsVertical() {
		fp := Footprints(t, ctx.Collapsed, true, ctx.Spacing.Column)
		sign := 1.0
		if ctx.Options.Mode == tree.ModeUp {
			sign = -1
		}
		p := placer{t: t, collapsed: ctx.Collapsed, fp: fp, gap: ctx.Spacing.Row}
		p.row(kids, root.Y+sign*(root.Height/2+ctx.Spacing.Row), sign, root.X)
		return
	}

	fp := Footprints(t, ctx.Collapsed, false, ctx.Spacing.Sibling)
	var left, right []int
	for _, id := range kids {
		if t.Nodes[id].Direction == tree.DirectionLeft {
			left = append(left, id)
		} else {
			right = append(right, id)
		}
	}

	edge := root.Width / 2
	if ctx.Options.CenterEdge == CenterEdgeVertical {
		edge = 0
	}
	p := placer{t: t, collapsed: ctx.Collapsed, fp: fp, gap: ctx.Spacing.Sub}
	p.column(right, root.X+edge+ctx.Spacing.Branch, 1, root.Y)
	p.column(left, root.X-edge-ctx.Spacing.Branch, -1, root.Y)
}

// Footprints returns the space each subtree reserves along the stacking
// axis, indexed by node id: the node's own extent (height, or width when
// vertical) plus gap, or the sum of its visible children's footprints if
// that is larger. Collapsed nodes count as childless.
func Footprints(t *tree.Tree, collapsed *tree.CollapseSet, vertical bool, gap float64) []float64 {
	fp := make([]float64, t.Len())
	// Children always have larger ids than their parent.
	for id := t.Len() - 1; id >= 0; id-- {
		n := &t.Nodes[id]
		own := n.Height
		if vertical {
			own = n.Width
		}
		own += gap

		var sum float64
		for _, c := range t.VisibleChildren(id, collapsed) {
			sum += fp[c]
		}
		fp[id] = max(sum, own)
	}
	return fp
}

type placer struct {
	t         *tree.Tree
	collapsed *tree.CollapseSet
	fp        []float64
	gap       float64 // between a parent's far edge and its children
}

// column stacks ids top to bottom, centered on centerY, with their near
// edges at anchorX. sign is +1 for rightward and -1 for leftward growth.
func (p *placer) column(ids []int, anchorX, sign, centerY float64) {
	var total float64
	for _, id := range ids {
		total += p.fp[id]
	}
	cursor := centerY - total/2
	for _, id := range ids {
		n := &p.t.Nodes[id]
		n.X = anchorX + sign*n.Width/2
		n.Y = cursor + p.fp[id]/2
		n.Placed = true
		cursor += p.fp[id]

		if kids := p.t.VisibleChildren(id, p.collapsed); len(kids) > 0 {
			p.column(kids, n.X+sign*(n.Width/2+p.gap), sign, n.Y)
		}
	}
}

// row lays ids out left to right, centered on centerX, with their near
// edges at anchorY. sign is +1 for downward and -1 for upward growth.
func (p *placer) row(ids []int, anchorY, sign, centerX float64) {
	var total float64
	for _, id := range ids {
		total += p.fp[id]
	}
	cursor := centerX - total/2
	for _, id := range ids {
		n := &p.t.Nodes[id]
		n.X = cursor + p.fp[id]/2
		n.Y = anchorY + sign*n.Height/2
		n.Placed = true
		cursor += p.fp[id]

		if kids := p.t.VisibleChildren(id, p.collapsed); len(kids) > 0 {
			p.row(kids, n.Y+sign*(n.Height/2+p.gap), sign, n.X)
		}
	}
}
