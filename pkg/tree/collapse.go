package tree

import (
	"maps"
	"slices"
)

// CollapseSet is the set of node ids whose subtrees are hidden.
//
// The set is independent of any particular Tree: ids that do not exist in the
// current tree are simply never consulted. A nil *CollapseSet behaves as an
// empty set for reads.
type CollapseSet struct {
	ids map[int]struct{}
}

// NewCollapseSet returns a set containing ids.
func NewCollapseSet(ids ...int) *CollapseSet {
	s := &CollapseSet{ids: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Add marks id as collapsed.
func (s *CollapseSet) Add(id int) {
	if s.ids == nil {
		s.ids = make(map[int]struct{})
	}
	s.ids[id] = struct{}{}
}

// Remove expands id. Removing an id that is not collapsed is a no-op.
func (s *CollapseSet) Remove(id int) { delete(s.ids, id) }

// Has reports whether id is collapsed.
func (s *CollapseSet) Has(id int) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[id]
	return ok
}

// Toggle flips id and reports whether it is collapsed afterwards.
func (s *CollapseSet) Toggle(id int) bool {
	if s.Has(id) {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return true
}

// Clear empties the set.
func (s *CollapseSet) Clear() { clear(s.ids) }

// Len returns the number of collapsed ids.
func (s *CollapseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns the collapsed ids in ascending order.
func (s *CollapseSet) IDs() []int {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.ids))
}

// Clone returns an independent copy of the set.
func (s *CollapseSet) Clone() *CollapseSet {
	return NewCollapseSet(s.IDs()...)
}
