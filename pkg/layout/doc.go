// Package layout sizes and positions a mind-map tree.
//
// A layout pass runs four stages over a freshly built [tree.Tree]:
//
//  1. Directions: [tree.AssignDirections] for the configured mode
//  2. Sizing: [Size] wraps every visible topic and derives its box
//  3. Spacing: [Adapt] scales the base gaps by the spacing multiplier and,
//     in horizontal modes, shrinks branch gaps for deep trees
//  4. Positioning: [Position] places box centers around the root at (0, 0)
//
// [Run] performs all four starting from decoded input. Every stage reads
// its configuration from an explicit [Context]; nothing is kept between
// passes except the caller-owned collapse set, so a pass is a pure function
// of (input, options, collapse set, measurer).
//
// # Layout Families
//
// Horizontal modes (auto, left, right) stack subtrees vertically. Each
// subtree reserves a footprint of max(Σ child footprints, height+siblingGap),
// or just height+siblingGap when it is collapsed or childless. Branches sit
// one branch gap beyond the root (its side wall, or its center when
// CenterEdge is "vertical"); deeper levels sit one sub gap beyond their
// parent's far edge.
//
// Vertical modes (down, up) mirror this on swapped axes: footprints are
// width+columnGap and every level advances by the row gap, downward (+Y)
// or upward (−Y).
//
// Nodes inside a collapsed subtree are never sized or placed; their Placed
// flag stays false.
package layout
