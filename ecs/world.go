// Package ecs is a small generational-handle entity component system. Typed
// access goes through the generic free functions (Add, Get, Each) keyed by
// component.Handle values.
package ecs

import (
	"errors"

	"github.com/milk9111/charkit/ecs/component"
)

var (
	ErrEntityNotAlive = errors.New("ecs: entity not alive")
	ErrInvalidHandle  = errors.New("ecs: invalid component handle")
)

// System updates a world each frame.
type System interface {
	Update(w *World, dt float64)
}

// World owns entities, component stores, and system order.
type World struct {
	entities entityStore
	stores   map[component.ID]storage
	systems  []System
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{stores: make(map[component.ID]storage)}
}

// Create allocates a new entity.
func (w *World) Create() Entity {
	return w.entities.create()
}

// Destroy removes an entity and all of its components. Returns false if the
// handle was already dead.
func (w *World) Destroy(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.discard(e.id())
	}
	return true
}

// Alive reports whether a handle still refers to a live entity.
func (w *World) Alive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns the live entities in slot order.
func (w *World) Entities() []Entity {
	var out []Entity
	w.entities.each(func(e Entity) {
		out = append(out, e)
	})
	return out
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once with the frame's delta time.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		s.Update(w, dt)
	}
}
