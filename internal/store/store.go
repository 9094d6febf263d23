package store

import "sync"

// Source is the read-only view of a store handed to screens.
type Source[T any] interface {
	// Snapshot returns the current value.
	Snapshot() T

	// Subscribe registers fn to be called with every new value and
	// returns a function that removes the subscription. Calling the
	// returned function more than once is a no-op.
	Subscribe(fn func(T)) (unsubscribe func())
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Store holds a snapshot of type T and notifies subscribers on change.
type Store[T any] struct {
	mu     sync.RWMutex
	value  T
	subs   []subscriber[T]
	nextID int
}

// New creates a store holding initial.
func New[T any](initial T) *Store[T] {
	return &Store[T]{value: initial}
}

// Snapshot returns the current value.
func (s *Store[T]) Snapshot() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies subscribers.
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	subs := s.copySubs()
	s.mu.Unlock()

	notify(subs, v)
}

// Update replaces the value with fn(current) atomically with respect to
// other writers and notifies subscribers with the result.
func (s *Store[T]) Update(fn func(T) T) {
	s.mu.Lock()
	v := fn(s.value)
	s.value = v
	subs := s.copySubs()
	s.mu.Unlock()

	notify(subs, v)
}

// Subscribe implements Source.
func (s *Store[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Subscribers returns the number of registered subscribers.
func (s *Store[T]) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

func (s *Store[T]) copySubs() []subscriber[T] {
	subs := make([]subscriber[T], len(s.subs))
	copy(subs, s.subs)
	return subs
}

func notify[T any](subs []subscriber[T], v T) {
	for _, sub := range subs {
		sub.fn(v)
	}
}
