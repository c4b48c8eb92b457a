package mindmap

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/text"
	"github.com/matzehuels/mindmap/pkg/tree"
)

const scenarioJSON = `{"topic":"Root","children":[{"topic":"A"},{"topic":"B"},{"topic":"C"}]}`

func TestEngineLayoutBeforeLoad(t *testing.T) {
	e := New(text.CellMeasurer{})
	if _, err := e.Layout(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Layout() error = %v, want INVALID_INPUT", err)
	}
}

func TestEngineScenario(t *testing.T) {
	e := New(text.CellMeasurer{})
	if err := e.LoadJSON([]byte(scenarioJSON)); err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	l, err := e.Layout()
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	want := map[int]tree.Direction{1: tree.DirectionRight, 2: tree.DirectionLeft, 3: tree.DirectionRight}
	if len(l.Nodes) != 4 {
		t.Fatalf("len(Nodes) = %d, want 4", len(l.Nodes))
	}
	for id, dir := range want {
		n := l.Node(id)
		if n == nil || n.Direction != dir {
			t.Errorf("Node(%d) = %+v, want direction %q", id, n, dir)
		}
	}
	if root := l.Node(0); !root.IsRoot() || root.X != 0 || root.Y != 0 || root.ColorIndex != tree.NoColor {
		t.Errorf("root = %+v, want at origin with NoColor", root)
	}
	if l.Bounds.Width <= 0 || l.Bounds.Height <= 0 {
		t.Errorf("Bounds = %+v, want positive extent", l.Bounds)
	}
	if e.Tree() == nil {
		t.Error("Tree() = nil after Layout")
	}
}

func TestEngineLoadRejectsNonObject(t *testing.T) {
	e := New(text.CellMeasurer{})
	if err := e.LoadJSON([]byte(scenarioJSON)); err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	e.Toggle(1)

	if err := e.LoadJSON([]byte(`[1, 2, 3]`)); !errors.IsValidation(err) {
		t.Errorf("LoadJSON(array) error = %v, want VALIDATION_ERROR", err)
	}
	if err := e.LoadJSON([]byte(`{not json`)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("LoadJSON(garbage) error = %v, want INVALID_FORMAT", err)
	}

	// Failed loads keep previous data and collapse state.
	if !e.Collapse().Has(1) {
		t.Error("collapse state lost after failed load")
	}
	if _, err := e.Layout(); err != nil {
		t.Errorf("Layout() error = %v after failed load", err)
	}
}

func TestEngineCollapsePersistsAcrossPasses(t *testing.T) {
	e := New(text.CellMeasurer{})
	data := `{"topic":"Root","children":[{"topic":"A","children":[{"topic":"a1"},{"topic":"a2"}]},{"topic":"B"}]}`
	if err := e.LoadJSON([]byte(data)); err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}

	if !e.Toggle(1) {
		t.Fatal("Toggle(1) = false, want true")
	}
	for range 2 {
		l, err := e.Layout()
		if err != nil {
			t.Fatalf("Layout() error = %v", err)
		}
		if l.Node(2) != nil || l.Node(3) != nil {
			t.Error("descendants of collapsed node were emitted")
		}
		if a := l.Node(1); a == nil || !a.Collapsed || !a.HasChildren {
			t.Errorf("Node(1) = %+v, want collapsed with children", a)
		}
	}

	// Option changes keep the collapse set.
	e.SetOptions(layout.Options{Mode: tree.ModeDown})
	if l, _ := e.Layout(); l.Node(2) != nil {
		t.Error("SetOptions() cleared the collapse set")
	}

	// A fresh load clears it.
	if err := e.LoadJSON([]byte(data)); err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	if e.Collapse().Len() != 0 {
		t.Errorf("Collapse().Len() = %d after Load, want 0", e.Collapse().Len())
	}
	if l, _ := e.Layout(); len(l.Nodes) != 5 {
		t.Errorf("len(Nodes) = %d, want 5", len(l.Nodes))
	}
}

func TestEngineToggleUnknownIDIsHarmless(t *testing.T) {
	e := New(text.CellMeasurer{})
	if err := e.LoadJSON([]byte(scenarioJSON)); err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	e.Toggle(99)
	l, err := e.Layout()
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(l.Nodes) != 4 {
		t.Errorf("len(Nodes) = %d, want 4", len(l.Nodes))
	}
}

func TestEngineSetCollapsed(t *testing.T) {
	e := New(text.CellMeasurer{})
	e.Toggle(4)
	e.SetCollapsed([]int{2, 1})
	if got := e.Collapse().IDs(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("IDs() = %v, want [1 2]", got)
	}
}

func TestEngineMeasurementError(t *testing.T) {
	e := New(text.MeasureFunc(func(string, float64) float64 { return math.NaN() }))
	if err := e.LoadJSON([]byte(scenarioJSON)); err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	if _, err := e.Layout(); !errors.IsMeasurement(err) {
		t.Errorf("Layout() error = %v, want MEASUREMENT_ERROR", err)
	}
}

func TestEngineLogsOptionWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})

	e := New(text.CellMeasurer{}, WithLogger(logger), WithOptions(layout.Options{Mode: "sideways"}))
	if e.Options().Mode != tree.ModeAuto {
		t.Errorf("Options().Mode = %q, want auto", e.Options().Mode)
	}
	if !strings.Contains(buf.String(), "sideways") {
		t.Errorf("log output = %q, want warning about the mode", buf.String())
	}
}

func TestEngineDeterministic(t *testing.T) {
	data := []byte(`{"topic":"Plan the launch","children":[
		{"topic":"Marketing","url":"https://example.com","children":[{"topic":"Blog post"},{"topic":"Newsletter"}]},
		{"topic":"Engineering","direction":"left","children":[{"topic":"Freeze"}]},
		{"topic":"Support"}
	]}`)

	layoutOnce := func() []byte {
		e := New(text.CellMeasurer{})
		if err := e.LoadJSON(data); err != nil {
			t.Fatalf("LoadJSON() error = %v", err)
		}
		e.Toggle(2)
		l, err := e.Layout()
		if err != nil {
			t.Fatalf("Layout() error = %v", err)
		}
		out, err := MarshalLayout(l)
		if err != nil {
			t.Fatalf("MarshalLayout() error = %v", err)
		}
		return out
	}

	if a, b := layoutOnce(), layoutOnce(); !bytes.Equal(a, b) {
		t.Errorf("layouts differ:\n%s\n---\n%s", a, b)
	}
}
