package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/mindmap/pkg/config"
	"github.com/matzehuels/mindmap/pkg/io"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/text"
	"github.com/matzehuels/mindmap/pkg/tree"
)

func node(topic string, children ...map[string]any) map[string]any {
	kids := make([]any, len(children))
	for i, c := range children {
		kids[i] = c
	}
	return map[string]any{"topic": topic, "children": kids}
}

// sample has ids R=0, A=1, a=2, b=3, B=4.
func sample() map[string]any {
	return node("R", node("A", node("a"), node("b")), node("B"))
}

func TestParseIDs(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"  ", nil, false},
		{"3", []int{3}, false},
		{"1, 4,2", []int{1, 4, 2}, false},
		{"1,x", nil, true},
		{"-1", nil, true},
	}
	for _, tt := range tests {
		got, err := parseIDs(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIDs(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseIDs(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); !reflect.DeepEqual(got, []string{"svg"}) {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", got)
	}
	if got := parseFormats("svg, dot ,json"); !reflect.DeepEqual(got, []string{"svg", "dot", "json"}) {
		t.Errorf("parseFormats() = %v, want [svg dot json]", got)
	}
}

func TestOutputPath(t *testing.T) {
	if got := outputPath("", "maps/plan.yaml", ".layout.json"); got != "maps/plan.layout.json" {
		t.Errorf("outputPath() = %q, want maps/plan.layout.json", got)
	}
	if got := outputPath("out.json", "maps/plan.yaml", ".layout.json"); got != "out.json" {
		t.Errorf("outputPath() = %q, want out.json", got)
	}
}

func TestRenderPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{
			name:    "single format verbatim",
			output:  "out/map.image",
			formats: []string{"svg"},
			want:    map[string]string{"svg": "out/map.image"},
		},
		{
			name:    "derived from input",
			formats: []string{"svg", "json", "dot-svg"},
			want: map[string]string{
				"svg":     "plan.svg",
				"json":    "plan.layout.json",
				"dot-svg": "plan.dot.svg",
			},
		},
		{
			name:    "output base strips known extension",
			output:  "out/map.svg",
			formats: []string{"svg", "dot"},
			want:    map[string]string{"svg": "out/map.svg", "dot": "out/map.dot"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderPaths("plan.json", tt.output, tt.formats)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("renderPaths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayoutFlagsApply(t *testing.T) {
	base := layout.DefaultOptions()

	f := layoutFlags{measurer: pipeline.MeasurerCell}
	opts, err := f.apply(base)
	if err != nil {
		t.Fatalf("apply() error: %v", err)
	}
	if opts.Layout.Mode != base.Mode || opts.Layout.Spacing != base.Spacing {
		t.Errorf("empty flags changed options: %+v", opts.Layout)
	}
	if opts.Measurer != pipeline.MeasurerCell {
		t.Errorf("Measurer = %q, want %q", opts.Measurer, pipeline.MeasurerCell)
	}

	f = layoutFlags{mode: "down", centerEdge: "vertical", spacing: 1.5, collapse: "2,1"}
	opts, err = f.apply(base)
	if err != nil {
		t.Fatalf("apply() error: %v", err)
	}
	if opts.Layout.Mode != tree.ModeDown {
		t.Errorf("Mode = %q, want down", opts.Layout.Mode)
	}
	if opts.Layout.CenterEdge != layout.CenterEdge("vertical") {
		t.Errorf("CenterEdge = %q, want vertical", opts.Layout.CenterEdge)
	}
	if opts.Layout.Spacing != 1.5 {
		t.Errorf("Spacing = %v, want 1.5", opts.Layout.Spacing)
	}
	if !reflect.DeepEqual(opts.Collapsed, []int{2, 1}) {
		t.Errorf("Collapsed = %v, want [2 1]", opts.Collapsed)
	}

	f = layoutFlags{collapse: "x"}
	if _, err := f.apply(base); err == nil {
		t.Error("apply() with bad collapse ids should fail")
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestExplorer(t *testing.T) exploreModel {
	t.Helper()
	e := mindmap.New(text.CellMeasurer{})
	if err := e.Load(sample()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	m, err := newExploreModel(e, "sample")
	if err != nil {
		t.Fatalf("newExploreModel: %v", err)
	}
	return m
}

func update(m exploreModel, k string) (exploreModel, tea.Cmd) {
	next, cmd := m.Update(key(k))
	return next.(exploreModel), cmd
}

func TestExploreToggle(t *testing.T) {
	m := newTestExplorer(t)
	if len(m.layout.Nodes) != 5 {
		t.Fatalf("placed %d nodes, want 5", len(m.layout.Nodes))
	}

	m, _ = update(m, "down")
	if id := m.layout.Nodes[m.cursor].ID; id != 1 {
		t.Fatalf("cursor on %d, want 1", id)
	}

	m, _ = update(m, "enter")
	if len(m.layout.Nodes) != 3 {
		t.Errorf("after collapse placed %d nodes, want 3", len(m.layout.Nodes))
	}
	if !m.engine.Collapse().Has(1) {
		t.Error("node 1 should be collapsed")
	}
	if id := m.layout.Nodes[m.cursor].ID; id != 1 {
		t.Errorf("cursor moved to %d, want it to stay on 1", id)
	}
	if !strings.Contains(m.View(), "+ A") {
		t.Error("View() should mark the collapsed node")
	}

	m, _ = update(m, "c")
	if len(m.layout.Nodes) != 5 {
		t.Errorf("after clear placed %d nodes, want 5", len(m.layout.Nodes))
	}
}

func TestExploreLeafToggleIgnored(t *testing.T) {
	m := newTestExplorer(t)
	m, _ = update(m, "j")
	m, _ = update(m, "j") // a, a leaf
	m, _ = update(m, "enter")
	if m.engine.Collapse().Len() != 0 {
		t.Errorf("toggling a leaf collapsed %v", m.engine.Collapse().IDs())
	}
}

func TestExploreCycleMode(t *testing.T) {
	m := newTestExplorer(t)
	before := m.engine.Options().Mode
	m, _ = update(m, "m")
	if m.engine.Options().Mode == before {
		t.Errorf("mode still %q after cycling", before)
	}
	if m.layout.Mode != m.engine.Options().Mode {
		t.Errorf("layout mode %q, engine mode %q", m.layout.Mode, m.engine.Options().Mode)
	}
}

func TestExploreQuit(t *testing.T) {
	m := newTestExplorer(t)
	if _, cmd := update(m, "q"); cmd == nil {
		t.Error("q should return a quit command")
	}
}

func TestConvertCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	in := filepath.Join(dir, "plan.json")
	out := filepath.Join(dir, "plan.yaml")
	if err := os.WriteFile(in, []byte(`{"topic":"R","children":[{"topic":"A"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, LogInfo)
	cmd := c.convertCommand()
	if err := cmd.RunE(cmd, []string{in, out}); err != nil {
		t.Fatalf("convert: %v", err)
	}

	got, err := io.ReadFile(out)
	if err != nil {
		t.Fatalf("read converted: %v", err)
	}
	root, ok := got.(map[string]any)
	if !ok || root["topic"] != "R" {
		t.Errorf("converted document = %v", got)
	}
}

func TestConvertCommandRejectsInvalid(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	in := filepath.Join(dir, "list.json")
	if err := os.WriteFile(in, []byte(`[1,2]`), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, LogInfo)
	cmd := c.convertCommand()
	if err := cmd.RunE(cmd, []string{in, filepath.Join(dir, "list.yaml")}); err == nil {
		t.Error("convert of a non-object root should fail")
	}
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	c := New(os.Stderr, LogInfo)
	c.configPath = path
	cmd := c.configInitCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := config.Load(path); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
	if err := cmd.RunE(cmd, nil); err == nil {
		t.Error("second init without --force should fail")
	}
}
