package layout

import (
	"math"

	"github.com/matzehuels/mindmap/pkg/tree"
)

// Spacing holds the effective gaps of one layout pass.
type Spacing struct {
	Branch  float64 `json:"branch"`
	Sub     float64 `json:"sub"`
	Sibling float64 `json:"sibling"`
	Row     float64 `json:"row"`
	Column  float64 `json:"column"`
}

// Depth factor bounds for horizontal layouts.
const (
	minDepthFactor    = 0.45
	depthFactorNumer  = 2.5
	shallowDepthLimit = 2
)

// DepthFactor returns how much branch and sub gaps shrink for a tree whose
// deepest node sits at maxDepth: 1 up to depth 2, then 2.5/maxDepth floored
// at 0.45.
func DepthFactor(maxDepth int) float64 {
	if maxDepth <= shallowDepthLimit {
		return 1
	}
	return math.Max(minDepthFactor, depthFactorNumer/float64(maxDepth))
}

// Adapt derives the effective gaps from base gaps. Every gap is scaled by
// multiplier and rounded to whole pixels; in horizontal modes Branch and Sub
// are additionally scaled by DepthFactor(maxDepth).
func Adapt(g Gaps, multiplier float64, mode tree.Mode, maxDepth int) Spacing {
	factor := 1.0
	if !mode.IsVertical() {
		factor = DepthFactor(maxDepth)
	}
	return Spacing{
		Branch:  math.Round(g.Branch * multiplier * factor),
		Sub:     math.Round(g.Sub * multiplier * factor),
		Sibling: math.Round(g.Sibling * multiplier),
		Row:     math.Round(g.Row * multiplier),
		Column:  math.Round(g.Column * multiplier),
	}
}
