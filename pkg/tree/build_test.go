package tree

import (
	"testing"

	"github.com/matzehuels/mindmap/pkg/errors"
)

func obj(topic string, kids ...any) map[string]any {
	m := map[string]any{"topic": topic}
	if len(kids) > 0 {
		m["children"] = kids
	}
	return m
}

func TestBuildScenario(t *testing.T) {
	tr, err := Build(obj("Root", obj("A"), obj("B"), obj("C")), BuildOptions{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []struct {
		topic string
		depth int
		color int
	}{
		{"Root", 0, NoColor},
		{"A", 1, 0},
		{"B", 1, 1},
		{"C", 1, 2},
	}
	if tr.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", tr.Len(), len(want))
	}
	for id, w := range want {
		n := tr.Node(id)
		if n.ID != id || n.Topic != w.topic || n.Depth != w.depth || n.ColorIndex != w.color {
			t.Errorf("node %d = {id %d, %q, depth %d, color %d}, want {%q, %d, %d}",
				id, n.ID, n.Topic, n.Depth, n.ColorIndex, w.topic, w.depth, w.color)
		}
	}
	if got := tr.Root().Children; len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("root children = %v, want [1 2 3]", got)
	}
}

func TestBuildDepthFirstIDs(t *testing.T) {
	data := obj("r",
		obj("a", obj("a1", obj("a1x")), obj("a2")),
		obj("b", obj("b1")),
	)
	tr, err := Build(data, BuildOptions{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	order := []string{"r", "a", "a1", "a1x", "a2", "b", "b1"}
	for id, topic := range order {
		if got := tr.Node(id).Topic; got != topic {
			t.Errorf("Node(%d).Topic = %q, want %q", id, got, topic)
		}
	}
	if p := tr.Node(3).Parent; p != 2 {
		t.Errorf("Node(3).Parent = %d, want 2", p)
	}
	if p := tr.Root().Parent; p != -1 {
		t.Errorf("Root().Parent = %d, want -1", p)
	}
}

func TestBuildColorInheritance(t *testing.T) {
	kids := make([]any, 0, 12)
	for i := 0; i < 12; i++ {
		kids = append(kids, obj("branch", obj("leaf", obj("deep"))))
	}
	tr, err := Build(obj("root", kids...), BuildOptions{PaletteSize: 5})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for ordinal, id := range tr.Root().Children {
		branch := tr.Node(id)
		if branch.ColorIndex != ordinal%5 {
			t.Errorf("branch %d ColorIndex = %d, want %d", ordinal, branch.ColorIndex, ordinal%5)
		}
		leaf := tr.Node(branch.Children[0])
		deep := tr.Node(leaf.Children[0])
		if leaf.ColorIndex != branch.ColorIndex || deep.ColorIndex != branch.ColorIndex {
			t.Errorf("descendants of branch %d have colors %d/%d, want %d",
				ordinal, leaf.ColorIndex, deep.ColorIndex, branch.ColorIndex)
		}
	}
}

func TestBuildNormalizesMissingFields(t *testing.T) {
	tests := []struct {
		name     string
		data     map[string]any
		topic    string
		url      string
		pin      Direction
		children int
	}{
		{"empty object", map[string]any{}, "", "", DirectionNone, 0},
		{"non-string topic", map[string]any{"topic": 42.0}, "", "", DirectionNone, 0},
		{"children not a list", map[string]any{"topic": "x", "children": "nope"}, "x", "", DirectionNone, 0},
		{"non-object child skipped", map[string]any{"children": []any{"str", 1.0, map[string]any{}}}, "", "", DirectionNone, 1},
		{"url kept", map[string]any{"url": "https://example.com"}, "", "https://example.com", DirectionNone, 0},
		{"left pin", map[string]any{"direction": "left"}, "", "", DirectionLeft, 0},
		{"unknown pin ignored", map[string]any{"direction": "sideways"}, "", "", DirectionNone, 0},
		{"down is not a pin", map[string]any{"direction": "down"}, "", "", DirectionNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Build(tt.data, BuildOptions{})
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			root := tr.Root()
			if root.Topic != tt.topic || root.URL != tt.url || root.Pin != tt.pin || len(root.Children) != tt.children {
				t.Errorf("root = {%q, %q, %q, %d children}, want {%q, %q, %q, %d}",
					root.Topic, root.URL, root.Pin, len(root.Children), tt.topic, tt.url, tt.pin, tt.children)
			}
		})
	}
}

func TestBuildRejectsNonObjectRoot(t *testing.T) {
	tests := []struct {
		name string
		data any
	}{
		{"nil", nil},
		{"array", []any{obj("x")}},
		{"string", "topic"},
		{"number", 3.0},
		{"bool", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Build(tt.data, BuildOptions{})
			if err == nil {
				t.Fatal("Build() error = nil, want validation error")
			}
			if !errors.IsValidation(err) {
				t.Errorf("Build() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeValidation)
			}
			if tr != nil {
				t.Error("Build() returned a partial tree")
			}
		})
	}
}

func TestBuildMaxDepth(t *testing.T) {
	deep := obj("leaf")
	for i := 0; i < 10; i++ {
		deep = obj("level", deep)
	}

	if _, err := Build(deep, BuildOptions{MaxDepth: 10}); err != nil {
		t.Errorf("Build() at limit error = %v", err)
	}
	_, err := Build(deep, BuildOptions{MaxDepth: 9})
	if !errors.IsValidation(err) {
		t.Errorf("Build() over limit error = %v, want validation error", err)
	}
}

func TestTreeMaxDepthAndAncestors(t *testing.T) {
	tr, _ := Build(obj("r", obj("a", obj("b", obj("c"))), obj("d")), BuildOptions{})

	if got := tr.MaxDepth(); got != 3 {
		t.Errorf("MaxDepth() = %d, want 3", got)
	}
	got := tr.Ancestors(3)
	if len(got) != 3 || got[0] != 2 || got[1] != 1 || got[2] != 0 {
		t.Errorf("Ancestors(3) = %v, want [2 1 0]", got)
	}
	if tr.Node(99) != nil || tr.Node(-1) != nil {
		t.Error("Node() should return nil for unknown ids")
	}
}
