// Package tree provides the node arena that every mind map layout pass works on.
//
// # Overview
//
// A mind map is a strict tree: one root topic, branches (the root's direct
// children) and arbitrarily nested sub-topics. This package turns decoded
// JSON into that tree, decides which side (or flow direction) each branch
// renders toward, and tracks which subtrees the user has collapsed.
//
// Nodes live in a flat arena ([Tree.Nodes]). A node's ID is its index in the
// arena and children/parents are referenced by index, so upward traversal
// never needs a live back-pointer:
//
//	t, err := tree.Build(data, tree.BuildOptions{})
//	if err != nil {
//	    return err // errors.IsValidation(err) for non-object roots
//	}
//	tree.AssignDirections(t, tree.ModeAuto)
//
// # Identifiers
//
// IDs are assigned by a depth-first, pre-order counter starting at 0. They
// are a pure function of the node's structural position, which is what lets a
// [CollapseSet] built against one layout pass stay meaningful for the next.
//
// # Directions
//
// [AssignDirections] implements the five layout modes. In [ModeAuto] branches
// without an explicit pin are balanced by count: each goes to the side with
// strictly fewer branches so far, and right wins ties. Subtrees always inherit
// their branch's direction.
package tree
