package ecs

import "github.com/milk9111/charkit/ecs/component"

func storeFor[T any](w *World, h component.Handle[T]) *store[T] {
	if s, ok := w.stores[h.ID()]; ok {
		return s.(*store[T])
	}
	s := &store[T]{}
	w.stores[h.ID()] = s
	return s
}

// Add attaches a component to an entity, replacing any existing value.
func Add[T any](w *World, e Entity, h component.Handle[T], v T) error {
	if !h.Valid() {
		return ErrInvalidHandle
	}
	if !w.Alive(e) {
		return ErrEntityNotAlive
	}
	storeFor(w, h).set(e.id(), v)
	return nil
}

// Get returns a pointer to the entity's component, valid until the next
// structural change of the store.
func Get[T any](w *World, e Entity, h component.Handle[T]) (*T, bool) {
	if !h.Valid() || !w.Alive(e) {
		return nil, false
	}
	return storeFor(w, h).get(e.id())
}

// Has reports whether the entity carries the component.
func Has[T any](w *World, e Entity, h component.Handle[T]) bool {
	_, ok := Get(w, e, h)
	return ok
}

// Remove detaches the component from the entity if present.
func Remove[T any](w *World, e Entity, h component.Handle[T]) bool {
	if !h.Valid() || !w.Alive(e) {
		return false
	}
	s := storeFor(w, h)
	if _, ok := s.index(e.id()); !ok {
		return false
	}
	s.discard(e.id())
	return true
}

// Each visits every entity carrying the component. Adding or removing the
// visited component type during iteration is not supported.
func Each[T any](w *World, h component.Handle[T], fn func(Entity, *T)) {
	if !h.Valid() {
		return
	}
	s := storeFor(w, h)
	for i := range s.entities {
		id := s.entities[i]
		e := makeEntity(id, w.entities.gens[id-1])
		fn(e, &s.dense[i])
	}
}
