package layout

import (
	"math"

	"github.com/matzehuels/mindmap/pkg/text"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// Size wraps and sizes every visible node of t. The first measurement
// error aborts the pass.
func Size(t *tree.Tree, ctx *Context) error {
	var err error
	t.Walk(ctx.Collapsed, func(n *tree.Node) {
		if err == nil {
			err = SizeNode(n, ctx)
		}
	})
	return err
}

// SizeNode sets Lines, Width and Height of n from its tier profile.
//
//	budget = maxWidth − 2·paddingX − icon
//	width  = ceil(min(maxWidth, widest line + 2·paddingX + icon))
//	height = ceil(lines · fontSize · lineHeight + 2·paddingY)
//
// where icon is IconSpace for linked nodes and 0 otherwise.
func SizeNode(n *tree.Node, ctx *Context) error {
	p := ctx.Options.Profiles.For(TierFor(n.Depth))

	var icon float64
	if n.HasLink() {
		icon = ctx.Options.IconSpace
	}
	budget := p.MaxWidth - 2*p.PaddingX - icon

	lines, err := text.Wrap(ctx.Meter, n.Topic, p.FontSize, budget)
	if err != nil {
		return err
	}
	widest, err := text.Widest(ctx.Meter, lines, p.FontSize)
	if err != nil {
		return err
	}

	n.Lines = lines
	n.Width = math.Ceil(math.Min(p.MaxWidth, widest+2*p.PaddingX+icon))
	n.Height = math.Ceil(float64(len(lines))*p.FontSize*ctx.Options.LineHeight + 2*p.PaddingY)
	return nil
}
