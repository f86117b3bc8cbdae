package ecs

// storage is the untyped face of a component store, enough for the world to
// clean up after a destroyed entity.
type storage interface {
	discard(id entityID)
}

// store is a sparse-set component store: dense slices for iteration, a
// sparse index for O(1) lookup by entity slot.
type store[T any] struct {
	dense    []T
	entities []entityID
	sparse   []int
}

func (s *store[T]) index(id entityID) (int, bool) {
	if id == 0 || int(id) > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.entities) || s.entities[idx] != id {
		return 0, false
	}
	return idx, true
}

func (s *store[T]) get(id entityID) (*T, bool) {
	idx, ok := s.index(id)
	if !ok {
		return nil, false
	}
	return &s.dense[idx], true
}

func (s *store[T]) set(id entityID, v T) {
	if idx, ok := s.index(id); ok {
		s.dense[idx] = v
		return
	}
	for int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	s.dense = append(s.dense, v)
	s.entities = append(s.entities, id)
	s.sparse[id-1] = len(s.entities) - 1
}

func (s *store[T]) discard(id entityID) {
	idx, ok := s.index(id)
	if !ok {
		return
	}
	last := len(s.entities) - 1
	lastID := s.entities[last]

	s.dense[idx] = s.dense[last]
	s.entities[idx] = lastID
	s.sparse[lastID-1] = idx

	s.dense = s.dense[:last]
	s.entities = s.entities[:last]
	s.sparse[id-1] = -1
}
