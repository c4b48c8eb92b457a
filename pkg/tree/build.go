package tree

import (
	"github.com/matzehuels/mindmap/pkg/errors"
)

const (
	// DefaultPaletteSize is the number of palette colors branches cycle through.
	DefaultPaletteSize = 10

	// DefaultMaxDepth bounds nesting so recursive passes cannot exhaust the stack.
	DefaultMaxDepth = 256
)

// Input keys recognized on every node object.
const (
	keyTopic     = "topic"
	keyURL       = "url"
	keyDirection = "direction"
	keyChildren  = "children"
)

// BuildOptions configures [Build]. Zero values select the defaults.
type BuildOptions struct {
	PaletteSize int
	MaxDepth    int
}

func (o BuildOptions) withDefaults() BuildOptions {
	if o.PaletteSize <= 0 {
		o.PaletteSize = DefaultPaletteSize
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	return o
}

// Build converts decoded JSON into a Tree.
//
// The root must be an object (map[string]any); anything else yields a
// VALIDATION_ERROR and no tree. Missing or mistyped optional fields are
// normalized: topic and url default to "", a non-list children value is
// treated as empty, non-object entries inside children are skipped and a
// direction other than "left"/"right" is ignored.
//
// IDs are assigned depth-first in child order starting at 0. Branches get
// ColorIndex = ordinal mod PaletteSize; deeper nodes inherit their branch's
// index and the root carries NoColor.
func Build(data any, opts BuildOptions) (*Tree, error) {
	opts = opts.withDefaults()

	root, ok := data.(map[string]any)
	if !ok {
		return nil, errors.Validation("root must be an object, got %s", typeName(data))
	}

	b := builder{opts: opts, tree: &Tree{}}
	if err := b.add(root, -1, 0, NoColor); err != nil {
		return nil, err
	}
	return b.tree, nil
}

type builder struct {
	opts BuildOptions
	tree *Tree
}

func (b *builder) add(obj map[string]any, parent, depth, color int) error {
	if depth > b.opts.MaxDepth {
		return errors.Validation("tree exceeds maximum depth %d", b.opts.MaxDepth)
	}

	id := len(b.tree.Nodes)
	b.tree.Nodes = append(b.tree.Nodes, Node{
		ID:         id,
		Parent:     parent,
		Depth:      depth,
		Topic:      stringField(obj, keyTopic),
		URL:        stringField(obj, keyURL),
		Pin:        pinField(obj),
		ColorIndex: color,
	})

	kids, _ := obj[keyChildren].([]any)
	ordinal := 0
	for _, raw := range kids {
		child, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		childColor := color
		if depth == 0 {
			childColor = ordinal % b.opts.PaletteSize
		}
		ordinal++

		childID := len(b.tree.Nodes)
		if err := b.add(child, id, depth+1, childColor); err != nil {
			return err
		}
		b.tree.Nodes[id].Children = append(b.tree.Nodes[id].Children, childID)
	}
	return nil
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func pinField(obj map[string]any) Direction {
	switch Direction(stringField(obj, keyDirection)) {
	case DirectionLeft:
		return DirectionLeft
	case DirectionRight:
		return DirectionRight
	}
	return DirectionNone
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64, uint64:
		return "number"
	}
	return "non-object"
}
