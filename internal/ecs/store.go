package ecs

// Store is a typed component side table keyed by Entity.
// Uses the sparse set pattern: a dense slice for iteration and an index map
// for lookup. Iteration order is insertion order until a removal swaps the
// last element into the freed slot.
type Store[T any] struct {
	index    map[Entity]int
	entities []Entity
	values   []T
}

// NewStore creates a component store and, when an arena is given, registers
// it so despawned entities are dropped automatically.
func NewStore[T any](arena *Arena) *Store[T] {
	s := &Store[T]{
		index:    make(map[Entity]int),
		entities: make([]Entity, 0, 64),
		values:   make([]T, 0, 64),
	}
	if arena != nil {
		arena.OnDespawn(func(e Entity) { s.Remove(e) })
	}
	return s
}

// Set inserts or replaces the component for e.
func (s *Store[T]) Set(e Entity, v T) {
	if i, ok := s.index[e]; ok {
		s.values[i] = v
		return
	}
	s.index[e] = len(s.entities)
	s.entities = append(s.entities, e)
	s.values = append(s.values, v)
}

// Get returns a copy of the component for e.
func (s *Store[T]) Get(e Entity) (T, bool) {
	i, ok := s.index[e]
	if !ok {
		var zero T
		return zero, false
	}
	return s.values[i], true
}

// Ptr returns a pointer to the component for in-place mutation, or nil.
// The pointer is invalidated by the next Set of a new entity or Remove.
func (s *Store[T]) Ptr(e Entity) *T {
	i, ok := s.index[e]
	if !ok {
		return nil
	}
	return &s.values[i]
}

// Has reports whether e has this component.
func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.index[e]
	return ok
}

// Remove deletes the component for e (no-op if absent).
func (s *Store[T]) Remove(e Entity) {
	i, ok := s.index[e]
	if !ok {
		return
	}
	last := len(s.entities) - 1
	if i != last {
		moved := s.entities[last]
		s.entities[i] = moved
		s.values[i] = s.values[last]
		s.index[moved] = i
	}
	s.entities = s.entities[:last]
	var zero T
	s.values[last] = zero
	s.values = s.values[:last]
	delete(s.index, e)
}

// Len returns the number of entities with this component.
func (s *Store[T]) Len() int {
	return len(s.entities)
}

// Entities returns a snapshot of the entities holding this component.
// The copy stays valid while the store is mutated, so systems can spawn and
// despawn during iteration.
func (s *Store[T]) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Clear removes every component.
func (s *Store[T]) Clear() {
	clear(s.index)
	s.entities = s.entities[:0]
	s.values = s.values[:0]
}
