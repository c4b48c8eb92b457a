package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/mindmap/pkg/tree"
)

// =============================================================================
// Tiers and Profiles
// =============================================================================

// Tier selects the style profile for a node from its depth.
type Tier int

const (
	TierRoot   Tier = iota // depth 0
	TierBranch             // depth 1
	TierLeaf               // depth 2 and deeper
)

// TierFor returns the tier for a node at depth.
func TierFor(depth int) Tier {
	switch {
	case depth <= 0:
		return TierRoot
	case depth == 1:
		return TierBranch
	default:
		return TierLeaf
	}
}

func (t Tier) String() string {
	switch t {
	case TierRoot:
		return "root"
	case TierBranch:
		return "branch"
	default:
		return "leaf"
	}
}

// Profile is the typography and box constraints of one tier, in pixels.
type Profile struct {
	FontSize float64 `toml:"font_size" json:"font_size"`
	PaddingX float64 `toml:"padding_x" json:"padding_x"`
	PaddingY float64 `toml:"padding_y" json:"padding_y"`
	MaxWidth float64 `toml:"max_width" json:"max_width"`
}

// Profiles holds one Profile per tier.
type Profiles struct {
	Root   Profile `toml:"root" json:"root"`
	Branch Profile `toml:"branch" json:"branch"`
	Leaf   Profile `toml:"leaf" json:"leaf"`
}

// For returns the profile of tier t.
func (p *Profiles) For(t Tier) Profile {
	switch t {
	case TierRoot:
		return p.Root
	case TierBranch:
		return p.Branch
	default:
		return p.Leaf
	}
}

// Gaps are the base spacing constants before adaptation.
type Gaps struct {
	Branch  float64 `toml:"branch" json:"branch"`   // root to depth-1 nodes
	Sub     float64 `toml:"sub" json:"sub"`         // parent to child below depth 1
	Sibling float64 `toml:"sibling" json:"sibling"` // between stacked subtrees (horizontal)
	Row     float64 `toml:"row" json:"row"`         // between levels (vertical)
	Column  float64 `toml:"column" json:"column"`   // between adjacent subtrees (vertical)
}

// CenterEdge selects what depth-1 nodes are measured from in horizontal modes.
type CenterEdge string

const (
	// CenterEdgeSide anchors branches at the root's side walls.
	CenterEdgeSide CenterEdge = "side"
	// CenterEdgeVertical anchors branches at the root's center line, so branch
	// distance does not depend on the root's width.
	CenterEdgeVertical CenterEdge = "vertical"
)

// =============================================================================
// Options
// =============================================================================

// Default option values.
const (
	DefaultMode       = tree.ModeAuto
	DefaultCenterEdge = CenterEdgeSide
	DefaultSpacing    = 1.0
	DefaultLineHeight = 1.3
	DefaultIconSpace  = 20.0
)

// DefaultProfiles are the built-in per-tier profiles.
var DefaultProfiles = Profiles{
	Root:   Profile{FontSize: 20, PaddingX: 20, PaddingY: 12, MaxWidth: 240},
	Branch: Profile{FontSize: 16, PaddingX: 16, PaddingY: 8, MaxWidth: 200},
	Leaf:   Profile{FontSize: 14, PaddingX: 12, PaddingY: 6, MaxWidth: 180},
}

// DefaultGaps are the built-in base gaps.
var DefaultGaps = Gaps{Branch: 80, Sub: 40, Sibling: 16, Row: 60, Column: 24}

// Options configures a layout pass. It can be decoded from TOML (config
// files) or JSON (HTTP requests); zero fields mean "use the default".
type Options struct {
	Mode        tree.Mode  `toml:"mode" json:"mode,omitempty"`
	CenterEdge  CenterEdge `toml:"center_edge" json:"center_edge,omitempty"`
	Spacing     float64    `toml:"spacing" json:"spacing,omitempty"`
	Profiles    Profiles   `toml:"profiles" json:"profiles"`
	Gaps        Gaps       `toml:"gaps" json:"gaps"`
	LineHeight  float64    `toml:"line_height" json:"line_height,omitempty"`
	IconSpace   float64    `toml:"icon_space" json:"icon_space,omitempty"`
	PaletteSize int        `toml:"palette_size" json:"palette_size,omitempty"`
	MaxDepth    int        `toml:"max_depth" json:"max_depth,omitempty"`
}

// DefaultOptions returns the built-in configuration.
func DefaultOptions() Options {
	return Options{
		Mode:        DefaultMode,
		CenterEdge:  DefaultCenterEdge,
		Spacing:     DefaultSpacing,
		Profiles:    DefaultProfiles,
		Gaps:        DefaultGaps,
		LineHeight:  DefaultLineHeight,
		IconSpace:   DefaultIconSpace,
		PaletteSize: tree.DefaultPaletteSize,
		MaxDepth:    tree.DefaultMaxDepth,
	}
}

// Normalize replaces unset values with defaults and unrecognized or invalid
// values with defaults plus a warning. It never fails; callers decide
// whether to log the returned warnings.
func (o *Options) Normalize() []string {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if o.Mode == "" {
		o.Mode = DefaultMode
	} else if m, ok := tree.ParseMode(string(o.Mode)); !ok {
		warn("unknown layout mode %q, using %q", o.Mode, m)
		o.Mode = m
	}

	switch o.CenterEdge {
	case CenterEdgeSide, CenterEdgeVertical:
	case "":
		o.CenterEdge = DefaultCenterEdge
	default:
		warn("unknown center edge %q, using %q", o.CenterEdge, DefaultCenterEdge)
		o.CenterEdge = DefaultCenterEdge
	}

	positive(&o.Spacing, DefaultSpacing, "spacing", warn)
	positive(&o.LineHeight, DefaultLineHeight, "line_height", warn)
	positive(&o.IconSpace, DefaultIconSpace, "icon_space", warn)

	normalizeProfile(&o.Profiles.Root, DefaultProfiles.Root, "root", warn)
	normalizeProfile(&o.Profiles.Branch, DefaultProfiles.Branch, "branch", warn)
	normalizeProfile(&o.Profiles.Leaf, DefaultProfiles.Leaf, "leaf", warn)

	positive(&o.Gaps.Branch, DefaultGaps.Branch, "gaps.branch", warn)
	positive(&o.Gaps.Sub, DefaultGaps.Sub, "gaps.sub", warn)
	positive(&o.Gaps.Sibling, DefaultGaps.Sibling, "gaps.sibling", warn)
	positive(&o.Gaps.Row, DefaultGaps.Row, "gaps.row", warn)
	positive(&o.Gaps.Column, DefaultGaps.Column, "gaps.column", warn)

	if o.PaletteSize < 0 {
		warn("palette_size %d is negative, using %d", o.PaletteSize, tree.DefaultPaletteSize)
	}
	if o.PaletteSize <= 0 {
		o.PaletteSize = tree.DefaultPaletteSize
	}
	if o.MaxDepth < 0 {
		warn("max_depth %d is negative, using %d", o.MaxDepth, tree.DefaultMaxDepth)
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = tree.DefaultMaxDepth
	}
	return warnings
}

func normalizeProfile(p *Profile, def Profile, name string, warn func(string, ...any)) {
	if *p == (Profile{}) {
		*p = def
		return
	}
	positive(&p.FontSize, def.FontSize, "profiles."+name+".font_size", warn)
	positive(&p.MaxWidth, def.MaxWidth, "profiles."+name+".max_width", warn)
	// Zero padding is allowed on a profile that sets other fields.
	if math.IsNaN(p.PaddingX) || math.IsInf(p.PaddingX, 0) || p.PaddingX < 0 {
		warn("profiles.%s.padding_x %v is invalid, using %v", name, p.PaddingX, def.PaddingX)
		p.PaddingX = def.PaddingX
	}
	if math.IsNaN(p.PaddingY) || math.IsInf(p.PaddingY, 0) || p.PaddingY < 0 {
		warn("profiles.%s.padding_y %v is invalid, using %v", name, p.PaddingY, def.PaddingY)
		p.PaddingY = def.PaddingY
	}
}

// positive replaces *v with def when it is unset (zero, silently) or not a
// finite positive number (with a warning).
func positive(v *float64, def float64, name string, warn func(string, ...any)) {
	switch {
	case *v == 0:
		*v = def
	case math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0:
		warn("%s %v is invalid, using %v", name, *v, def)
		*v = def
	}
}

// BuildOptions returns the tree construction options carried by o.
func (o *Options) BuildOptions() tree.BuildOptions {
	return tree.BuildOptions{PaletteSize: o.PaletteSize, MaxDepth: o.MaxDepth}
}
