// Package sparse provides a sparse integer set with O(1) insert, membership
// test, and clear.
//
// The determinizer uses it to deduplicate NFA states while computing epsilon
// closures and move sets: the universe (the NFA state count) is known up
// front, insertion order is preserved for iteration, and Clear is constant
// time so one set can be reused across every BFS step.
package sparse

// Set is a set of uint32 values below a fixed capacity. It keeps a dense
// insertion-ordered slice for iteration and a sparse index for membership
// tests. Values >= capacity must not be inserted.
type Set struct {
	sparse []uint32
	dense  []uint32
}

// New creates a set able to hold values in [0, capacity).
func New(capacity int) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set and reports whether it was newly added.
func (s *Set) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *Set) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Len returns the number of elements.
func (s *Set) Len() int { return len(s.dense) }

// IsEmpty reports whether the set has no elements.
func (s *Set) IsEmpty() bool { return len(s.dense) == 0 }

// Clear removes all elements in O(1).
func (s *Set) Clear() { s.dense = s.dense[:0] }

// Values returns the elements in insertion order. The slice aliases internal
// storage and is valid until the next mutation.
func (s *Set) Values() []uint32 { return s.dense }
