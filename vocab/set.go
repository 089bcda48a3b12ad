package vocab

import "slices"

// Set is an unordered set of vocabulary ids.
type Set map[int32]struct{}

// NewSet returns a set holding ids.
func NewSet(ids ...int32) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Len returns the number of members.
func (s Set) Len() int { return len(s) }

// Contains reports membership of id.
func (s Set) Contains(id int32) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members in ascending order. This is the stable sequence
// batch computations align their rows with.
func (s Set) IDs() []int32 {
	ids := make([]int32, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Intersect returns the members present in both s and other.
func (s Set) Intersect(other Set) Set {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(Set, len(small))
	for id := range small {
		if _, ok := large[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold the same members.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if _, ok := other[id]; !ok {
			return false
		}
	}
	return true
}
