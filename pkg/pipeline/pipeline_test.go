package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/text"
	"github.com/matzehuels/mindmap/pkg/tree"
)

func testDoc() map[string]any {
	return map[string]any{
		"topic": "Root",
		"children": []any{
			map[string]any{"topic": "A", "children": []any{map[string]any{"topic": "A1"}}},
			map[string]any{"topic": "B", "url": "https://example.com"},
			map[string]any{"topic": "C"},
		},
	}
}

func newTestRunner(t *testing.T) (*Runner, *cache.FileCache) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := NewRunner(fc, nil, nil)
	r.UseMeasurer(MeasurerCell, text.MeasureFunc(func(s string, size float64) float64 {
		return float64(len([]rune(s))) * size * 0.5
	}))
	t.Cleanup(func() { _ = r.Close() })
	return r, fc
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"dot-svg", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateTheme(t *testing.T) {
	tests := []struct {
		theme   string
		wantErr bool
	}{
		{"light", false},
		{"dark", false},
		{"solarized", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateTheme(tt.theme)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTheme(%q) error = %v, wantErr %v", tt.theme, err, tt.wantErr)
		}
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Measurer != DefaultMeasurer {
		t.Errorf("Measurer should be %s, got %s", DefaultMeasurer, opts.Measurer)
	}
	if opts.Layout.Mode != tree.ModeAuto {
		t.Errorf("Mode should be auto, got %s", opts.Layout.Mode)
	}
	if len(opts.Warnings()) != 0 {
		t.Errorf("zero options should not warn, got %v", opts.Warnings())
	}

	bad := Options{Layout: layout.Options{Mode: "sideways"}}
	bad.SetLayoutDefaults()
	if len(bad.Warnings()) == 0 {
		t.Error("unknown mode should produce a warning")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Theme != DefaultTheme {
		t.Errorf("Theme should be %s, got %s", DefaultTheme, opts.Theme)
	}
	if opts.Scale != 2.0 {
		t.Errorf("Scale should be 2, got %v", opts.Scale)
	}
}

func TestLayoutKeyOptsSortsCollapsed(t *testing.T) {
	a := Options{Collapsed: []int{3, 1, 3}}
	b := Options{Collapsed: []int{1, 3}}
	a.SetLayoutDefaults()
	b.SetLayoutDefaults()

	keyer := cache.NewDefaultKeyer()
	if ka, kb := keyer.LayoutKey("h", a.LayoutKeyOpts()), keyer.LayoutKey("h", b.LayoutKeyOpts()); ka != kb {
		t.Errorf("collapse order changed the key: %s != %s", ka, kb)
	}
	if a.Collapsed[0] != 3 {
		t.Error("LayoutKeyOpts() mutated Options.Collapsed")
	}
}

func TestRunnerExecute(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Measurer: MeasurerCell, Formats: []string{"svg", "json", "dot"}}

	first, err := r.Execute(ctx, testDoc(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run hit the cache: %+v", first.CacheInfo)
	}
	if first.Stats.PlacedCount != 5 {
		t.Errorf("PlacedCount = %d, want 5", first.Stats.PlacedCount)
	}
	for _, f := range opts.Formats {
		if len(first.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if !strings.Contains(string(first.Artifacts["svg"]), "<svg") {
		t.Error("svg artifact is not SVG")
	}

	second, err := r.Execute(ctx, testDoc(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run missed the cache: %+v", second.CacheInfo)
	}
	if second.InputHash != first.InputHash {
		t.Errorf("InputHash = %s, want %s", second.InputHash, first.InputHash)
	}
	if string(second.Artifacts["json"]) != string(first.Artifacts["json"]) {
		t.Error("cached json artifact differs")
	}
}

func TestRunnerCollapseChangesKey(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx := context.Background()

	expanded, hit, err := r.LayoutWithCacheInfo(ctx, testDoc(), Options{Measurer: MeasurerCell})
	if err != nil || hit {
		t.Fatalf("LayoutWithCacheInfo() = hit %v, err %v", hit, err)
	}
	collapsed, hit, err := r.LayoutWithCacheInfo(ctx, testDoc(), Options{Measurer: MeasurerCell, Collapsed: []int{1}})
	if err != nil {
		t.Fatalf("LayoutWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("collapsed layout served from the expanded entry")
	}
	if len(expanded.Nodes) != 5 || len(collapsed.Nodes) != 4 {
		t.Errorf("placed = %d/%d, want 5/4", len(expanded.Nodes), len(collapsed.Nodes))
	}
	if n := collapsed.Node(1); n == nil || !n.Collapsed {
		t.Error("node 1 should be marked collapsed")
	}
}

func TestRunnerRefresh(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Measurer: MeasurerCell}

	if _, err := r.Layout(ctx, testDoc(), opts); err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	opts.Refresh = true
	if _, hit, err := r.LayoutWithCacheInfo(ctx, testDoc(), opts); err != nil || hit {
		t.Errorf("Refresh layout = hit %v, err %v; want miss", hit, err)
	}
}

func TestRunnerErrors(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.Layout(ctx, []any{"not", "an", "object"}, Options{Measurer: MeasurerCell}); !errors.IsValidation(err) {
		t.Errorf("Layout(array) error = %v, want VALIDATION_ERROR", err)
	}
	if _, err := r.Layout(ctx, testDoc(), Options{Measurer: "ruler"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Layout(bad measurer) error = %v, want INVALID_INPUT", err)
	}
	if _, err := r.Execute(ctx, testDoc(), Options{Measurer: MeasurerCell, Formats: []string{"gif"}}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Execute(gif) error = %v, want INVALID_INPUT", err)
	}

	r.UseMeasurer(MeasurerCell, text.MeasureFunc(func(string, float64) float64 { return -1 }))
	if _, err := r.Layout(ctx, testDoc(), Options{Measurer: MeasurerCell}); !errors.IsMeasurement(err) {
		t.Errorf("Layout(negative widths) error = %v, want MEASUREMENT_ERROR", err)
	}
}

type recordingHooks struct {
	observability.NoopLayoutHooks
	layouts []string
	renders []string
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, mode string, _ int, _ time.Duration, _ error) {
	h.layouts = append(h.layouts, mode)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, format string, _ int, _ time.Duration, _ error) {
	h.renders = append(h.renders, format)
}

func TestRunnerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetLayoutHooks(hooks)
	t.Cleanup(observability.Reset)

	r := NewRunner(nil, nil, nil)
	r.UseMeasurer(MeasurerCell, text.CellMeasurer{Ratio: 0.5})
	opts := Options{Measurer: MeasurerCell, Layout: layout.Options{Mode: tree.ModeDown}, Formats: []string{"json", "dot"}}
	if _, err := r.Execute(context.Background(), testDoc(), opts); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if len(hooks.layouts) != 1 || hooks.layouts[0] != "down" {
		t.Errorf("layout hooks = %v, want [down]", hooks.layouts)
	}
	if strings.Join(hooks.renders, ",") != "json,dot" {
		t.Errorf("render hooks = %v, want [json dot]", hooks.renders)
	}
}
