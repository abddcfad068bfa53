// Package store keeps simulation records addressable by stable ids.
package store

import (
	"fmt"
	"iter"

	"github.com/EngoEngine/ecs"
)

// ID is a unique identifier for a stored record. Ids are never reused
// and are unique across every store in the process.
type ID uint64

// NextID allocates a fresh id from the shared ecs counter
func NextID() ID {
	return ID(ecs.NewBasic().ID())
}

type slot[T any] struct {
	id    ID
	value T
}

// Store holds values of T in insertion order, indexed by ID.
// It is not safe for concurrent use.
type Store[T any] struct {
	slots   []slot[T]
	index   map[ID]int
	factory func() T
}

// New creates an empty store. factory builds the value for Create; nil
// means the zero value.
func New[T any](factory func() T) *Store[T] {
	if factory == nil {
		factory = func() T {
			var zero T
			return zero
		}
	}
	return &Store[T]{
		index:   make(map[ID]int),
		factory: factory,
	}
}

// Create inserts a default value and returns its id
func (s *Store[T]) Create() ID {
	return s.Insert(s.factory())
}

// Insert stores value under a new id
func (s *Store[T]) Insert(value T) ID {
	id := NextID()
	s.index[id] = len(s.slots)
	s.slots = append(s.slots, slot[T]{id: id, value: value})
	return id
}

// CreateWith inserts a default value, lets fn initialise it in place and
// returns the new id.
func (s *Store[T]) CreateWith(fn func(*T, ID)) ID {
	id := s.Create()
	fn(&s.slots[s.index[id]].value, id)
	return id
}

// Contains reports whether id is live
func (s *Store[T]) Contains(id ID) bool {
	_, ok := s.index[id]
	return ok
}

// Get returns a copy of the value stored under id.
// It panics if id does not exist.
func (s *Store[T]) Get(id ID) T {
	return s.slots[s.mustIndex(id)].value
}

// With calls fn with a pointer to the value stored under id.
// It panics if id does not exist.
func (s *Store[T]) With(id ID, fn func(*T)) {
	fn(&s.slots[s.mustIndex(id)].value)
}

// Update replaces the value stored under id.
// It panics if id does not exist.
func (s *Store[T]) Update(id ID, value T) {
	s.slots[s.mustIndex(id)].value = value
}

// ForEach visits every live value in insertion order. fn may modify the
// value but must not create or remove records.
func (s *Store[T]) ForEach(fn func(*T, ID)) {
	for i := range s.slots {
		fn(&s.slots[i].value, s.slots[i].id)
	}
}

// All iterates ids and values in insertion order
func (s *Store[T]) All() iter.Seq2[ID, *T] {
	return func(yield func(ID, *T) bool) {
		for i := range s.slots {
			if !yield(s.slots[i].id, &s.slots[i].value) {
				return
			}
		}
	}
}

// Values iterates values in insertion order
func (s *Store[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := range s.slots {
			if !yield(&s.slots[i].value) {
				return
			}
		}
	}
}

// FilterIDs returns the ids of every value matching pred
func (s *Store[T]) FilterIDs(pred func(*T) bool) []ID {
	var ids []ID
	for i := range s.slots {
		if pred(&s.slots[i].value) {
			ids = append(ids, s.slots[i].id)
		}
	}
	return ids
}

// GarbageCollect removes every record whose id is in ids. Unknown ids
// are ignored.
func (s *Store[T]) GarbageCollect(ids map[ID]struct{}) {
	if len(ids) == 0 {
		return
	}
	s.compact(func(sl *slot[T]) bool {
		_, drop := ids[sl.id]
		return drop
	})
}

// GarbageCollectFilter removes every record whose value matches pred
func (s *Store[T]) GarbageCollectFilter(pred func(*T) bool) {
	s.compact(func(sl *slot[T]) bool {
		return pred(&sl.value)
	})
}

// Len returns the number of live records
func (s *Store[T]) Len() int {
	return len(s.slots)
}

func (s *Store[T]) compact(drop func(*slot[T]) bool) {
	kept := s.slots[:0]
	for i := range s.slots {
		if drop(&s.slots[i]) {
			delete(s.index, s.slots[i].id)
			continue
		}
		kept = append(kept, s.slots[i])
	}
	// release dropped values for the collector
	clear(s.slots[len(kept):])
	s.slots = kept
	for i := range s.slots {
		s.index[s.slots[i].id] = i
	}
}

func (s *Store[T]) mustIndex(id ID) int {
	i, ok := s.index[id]
	if !ok {
		panic(fmt.Sprintf("Entity with id %d does not exist", id))
	}
	return i
}

// FilterMap collects fn's results for every value where fn reports true
func FilterMap[T, U any](s *Store[T], fn func(*T, ID) (U, bool)) []U {
	var out []U
	for i := range s.slots {
		if u, ok := fn(&s.slots[i].value, s.slots[i].id); ok {
			out = append(out, u)
		}
	}
	return out
}

// Set builds an id set for GarbageCollect
func Set(ids ...ID) map[ID]struct{} {
	set := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
