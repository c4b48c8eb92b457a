// Package pipeline provides the layout → render pipeline for mind maps.
//
// This package implements the complete pipeline that is shared by the CLI
// and the HTTP server. By centralizing this logic, both entry points cache,
// log and validate the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Build the tree, wrap and size every topic, position the boxes
//  2. Render: Generate output in various formats (SVG, JSON, DOT, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
// Both stages are cached: a layout is keyed by the hash of the input
// document, the normalized options, the collapsed ids and the measurer; an
// artifact by the hash of the layout it renders.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, data, pipeline.Options{
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	l, err := runner.Layout(ctx, data, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/render/sink"
)

// Format constants for output formats.
const (
	FormatSVG    = "svg"
	FormatPNG    = "png"
	FormatPDF    = "pdf"
	FormatJSON   = "json"
	FormatDOT    = "dot"
	FormatDOTSVG = "dot-svg" // Graphviz-rendered node-link SVG
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:    true,
	FormatPNG:    true,
	FormatPDF:    true,
	FormatJSON:   true,
	FormatDOT:    true,
	FormatDOTSVG: true,
}

// Measurer names.
const (
	MeasurerFont = "font" // Go Regular glyph advances
	MeasurerCell = "cell" // terminal cell widths
)

// DefaultMeasurer is used when Options.Measurer is empty.
const DefaultMeasurer = MeasurerFont

// DefaultTheme is the SVG theme used when Options.Theme is empty.
const DefaultTheme = "light"

// Cache TTLs.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Layout    layout.Options `json:"layout"`
	Collapsed []int          `json:"collapsed,omitempty"`
	Measurer  string         `json:"measurer,omitempty"`
	Refresh   bool           `json:"refresh,omitempty"` // bypass cached layouts and artifacts

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Theme    string   `json:"theme,omitempty"`
	NoLinks  bool     `json:"no_links,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // DOT labels include id, depth and direction
	Scale    float64  `json:"scale,omitempty"`    // PNG scale factor

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	warnings []string
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// InputHash is the content hash of the input document.
	InputHash string

	// Layout is the positioned mind map.
	Layout *mindmap.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Warnings lists options that were replaced by their defaults.
	Warnings []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PlacedCount int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json, dot, dot-svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTheme checks that a theme name is known.
func ValidateTheme(theme string) error {
	if _, ok := sink.Themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %q (must be one of: light, dark)", theme)
	}
	return nil
}

// ValidateMeasurer checks that a measurer name is known.
func ValidateMeasurer(name string) error {
	if name != MeasurerFont && name != MeasurerCell {
		return fmt.Errorf("invalid measurer: %q (must be one of: font, cell)", name)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults normalizes the layout options and sets defaults for
// layout computation. Replaced option values are recorded as warnings.
func (o *Options) SetLayoutDefaults() {
	if o.Measurer == "" {
		o.Measurer = DefaultMeasurer
	}
	if w := o.Layout.Normalize(); len(w) > 0 {
		o.warnings = append(o.warnings, w...)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return ValidateMeasurer(o.Measurer)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Scale <= 0 {
		o.Scale = 2.0
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateTheme(o.Theme)
}

// Warnings returns the option values replaced during normalization.
func (o *Options) Warnings() []string { return o.warnings }

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	ids := slices.Clone(o.Collapsed)
	slices.Sort(ids)
	return cache.LayoutKeyOpts{
		Options:   o.Layout,
		Collapsed: slices.Compact(ids),
		Measurer:  o.Measurer,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format: format,
		Theme:  o.Theme,
		Links:  !o.NoLinks,
	}
	switch format {
	case FormatDOT, FormatDOTSVG:
		opts.Theme = ""
		if o.Detailed {
			opts.Theme = "detailed"
		}
	case FormatPNG:
		opts.Theme = fmt.Sprintf("%s@%gx", o.Theme, o.Scale)
	}
	return opts
}
