package layout

import (
	"github.com/matzehuels/mindmap/pkg/text"
	"github.com/matzehuels/mindmap/pkg/tree"
)

// Context carries everything a layout pass reads. Spacing is filled in by
// [Apply] once the tree's depth is known.
type Context struct {
	Options   Options
	Spacing   Spacing
	Collapsed *tree.CollapseSet
	Meter     *text.Meter
}

// NewContext returns a Context with normalized options. Normalization
// warnings are returned for the caller to log.
func NewContext(opts Options, meter *text.Meter, collapsed *tree.CollapseSet) (*Context, []string) {
	warnings := opts.Normalize()
	return &Context{Options: opts, Collapsed: collapsed, Meter: meter}, warnings
}

// Run builds a tree from decoded input and lays it out.
func Run(data any, ctx *Context) (*tree.Tree, error) {
	t, err := tree.Build(data, ctx.Options.BuildOptions())
	if err != nil {
		return nil, err
	}
	if err := Apply(t, ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Apply lays out a freshly built tree: directions, sizes, spacing and
// positions, in that order.
func Apply(t *tree.Tree, ctx *Context) error {
	tree.AssignDirections(t, ctx.Options.Mode)
	if err := Size(t, ctx); err != nil {
		return err
	}
	// Spacing uses the full tree's depth so collapsing does not move branches.
	ctx.Spacing = Adapt(ctx.Options.Gaps, ctx.Options.Spacing, ctx.Options.Mode, t.MaxDepth())
	Position(t, ctx)
	return nil
}
