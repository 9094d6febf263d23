// Package collections provides the small ordered collection types used by
// the screens: an insertion-ordered set and slice-to-map indexing.
package collections

// OrderedSet is an insertion-ordered, duplicate-free sequence.
// The zero value is an empty set ready to use.
type OrderedSet[T comparable] struct {
	items []T
	index map[T]int
}

// NewOrderedSet builds a set from values, dropping later duplicates.
func NewOrderedSet[T comparable](values ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add appends v if it is not already present. Reports whether v was added.
func (s *OrderedSet[T]) Add(v T) bool {
	if s.index == nil {
		s.index = make(map[T]int)
	}
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = len(s.items)
	s.items = append(s.items, v)
	return true
}

// Delete removes v, preserving the order of the remaining items.
// Reports whether v was present.
func (s *OrderedSet[T]) Delete(v T) bool {
	i, ok := s.index[v]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, v)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
	return true
}

// Contains reports whether v is in the set.
func (s *OrderedSet[T]) Contains(v T) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[v]
	return ok
}

// Len returns the number of items.
func (s *OrderedSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Values returns a copy of the items in insertion order.
func (s *OrderedSet[T]) Values() []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Without returns a new set with v removed. The receiver is unchanged.
func (s *OrderedSet[T]) Without(v T) *OrderedSet[T] {
	out := NewOrderedSet(s.Values()...)
	out.Delete(v)
	return out
}

// IndexBy builds a key to value mapping from items. Later items win on
// duplicate keys.
func IndexBy[K comparable, V any](items []V, key func(V) K) map[K]V {
	out := make(map[K]V, len(items))
	for _, item := range items {
		out[key(item)] = item
	}
	return out
}
