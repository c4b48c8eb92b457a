package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/text"
	"github.com/matzehuels/mindmap/pkg/tree"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{999, "999 B"},
		{12345, "12.3 kB"},
		{1400000, "1.4 MB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.n); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	e := mindmap.New(text.CellMeasurer{})
	if err := e.Load(sample()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	e.Toggle(1)
	l, err := e.Layout()
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	s := summarize(l, true)
	if s.placed != 3 || s.collapsed != 1 {
		t.Errorf("summarize() placed=%d collapsed=%d, want 3 and 1", s.placed, s.collapsed)
	}
	// A goes right and B left in auto mode.
	if s.left != 1 || s.right != 1 {
		t.Errorf("summarize() left=%d right=%d, want 1 and 1", s.left, s.right)
	}
	got := s.String()
	for _, want := range []string{"auto", "3 nodes", "1 collapsed", "1 left / 1 right"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}

func TestSummaryVerticalOmitsSides(t *testing.T) {
	s := layoutSummary{mode: tree.ModeDown, placed: 4, width: 300, height: 120}
	if got, want := s.String(), "down · 4 nodes · 300×120"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPrintLayoutSummaryMarksCache(t *testing.T) {
	buf := captureStdout(t)
	printLayoutSummary(layoutSummary{mode: tree.ModeAuto, placed: 1, cached: true})
	if !strings.Contains(buf.String(), "cached") {
		t.Errorf("output %q should mark a cached layout", buf.String())
	}
}

func TestPrintArtifact(t *testing.T) {
	buf := captureStdout(t)
	printArtifact("out/plan.svg", 2048)
	out := buf.String()
	for _, want := range []string{"out/plan.svg", "svg", "2.0 kB"} {
		if !strings.Contains(out, want) {
			t.Errorf("printArtifact() output %q missing %q", out, want)
		}
	}
}
