package tree

import "testing"

func sides(t *Tree) []Direction {
	out := make([]Direction, 0, len(t.Root().Children))
	for _, id := range t.Root().Children {
		out = append(out, t.Node(id).Direction)
	}
	return out
}

func TestAssignDirectionsAutoScenario(t *testing.T) {
	tr, _ := Build(obj("Root", obj("A"), obj("B"), obj("C")), BuildOptions{})
	AssignDirections(tr, ModeAuto)

	want := []Direction{DirectionRight, DirectionLeft, DirectionRight}
	got := sides(tr)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("branch %d direction = %q, want %q", i, got[i], want[i])
		}
	}
	if tr.Root().Direction != DirectionNone {
		t.Errorf("root direction = %q, want none", tr.Root().Direction)
	}
}

func TestAssignDirectionsAutoAlternates(t *testing.T) {
	tr, _ := Build(obj("r", obj("1"), obj("2"), obj("3"), obj("4"), obj("5")), BuildOptions{})
	AssignDirections(tr, ModeAuto)

	want := []Direction{DirectionRight, DirectionLeft, DirectionRight, DirectionLeft, DirectionRight}
	got := sides(tr)
	var left, right int
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("branch %d direction = %q, want %q", i, got[i], want[i])
		}
		if got[i] == DirectionLeft {
			left++
		} else {
			right++
		}
	}
	if right != 3 || left != 2 {
		t.Errorf("right/left = %d/%d, want 3/2", right, left)
	}
}

func TestAssignDirectionsAutoPins(t *testing.T) {
	pinned := func(topic, dir string) map[string]any {
		return map[string]any{"topic": topic, "direction": dir}
	}
	tests := []struct {
		name string
		kids []any
		want []Direction
	}{
		{
			name: "pins count toward balance",
			kids: []any{pinned("a", "right"), pinned("b", "right"), obj("c"), obj("d")},
			want: []Direction{DirectionRight, DirectionRight, DirectionLeft, DirectionLeft},
		},
		{
			name: "left pin first",
			kids: []any{pinned("a", "left"), obj("b"), obj("c")},
			want: []Direction{DirectionLeft, DirectionRight, DirectionRight},
		},
		{
			name: "pins honored even when unbalanced",
			kids: []any{pinned("a", "left"), pinned("b", "left"), pinned("c", "left")},
			want: []Direction{DirectionLeft, DirectionLeft, DirectionLeft},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _ := Build(obj("r", tt.kids...), BuildOptions{})
			AssignDirections(tr, ModeAuto)
			got := sides(tr)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("branch %d direction = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAssignDirectionsForcedModes(t *testing.T) {
	data := obj("r",
		map[string]any{"topic": "pinned", "direction": "left", "children": []any{obj("x")}},
		obj("b", obj("y", obj("z"))),
	)
	tests := []struct {
		mode Mode
		want Direction
	}{
		{ModeLeft, DirectionLeft},
		{ModeRight, DirectionRight},
		{ModeDown, DirectionDown},
		{ModeUp, DirectionUp},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			tr, _ := Build(data, BuildOptions{})
			AssignDirections(tr, tt.mode)
			for id := 1; id < tr.Len(); id++ {
				if got := tr.Node(id).Direction; got != tt.want {
					t.Errorf("Node(%d).Direction = %q, want %q", id, got, tt.want)
				}
			}
		})
	}
}

func TestAssignDirectionsPropagates(t *testing.T) {
	data := obj("r",
		obj("a", map[string]any{"topic": "wants left", "direction": "left"}),
		obj("b", obj("b1", obj("b2"))),
	)
	tr, _ := Build(data, BuildOptions{})
	AssignDirections(tr, ModeAuto)

	for id := 1; id < tr.Len(); id++ {
		n := tr.Node(id)
		branch := n
		for branch.Depth > 1 {
			branch = tr.Node(branch.Parent)
		}
		if n.Direction != branch.Direction {
			t.Errorf("Node(%d).Direction = %q, want branch direction %q", id, n.Direction, branch.Direction)
		}
	}
	if got := tr.Node(2).Direction; got != DirectionRight {
		t.Errorf("descendant pin should be ignored, got %q", got)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in     string
		want   Mode
		wantOK bool
	}{
		{"auto", ModeAuto, true},
		{"left", ModeLeft, true},
		{"down", ModeDown, true},
		{"radial", ModeAuto, false},
		{"", ModeAuto, false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseMode(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
	if !ModeUp.IsVertical() || ModeAuto.IsVertical() {
		t.Error("IsVertical() misclassifies modes")
	}
}
