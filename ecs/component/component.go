// Package component defines the typed component handles the ECS world is
// keyed by, plus the component types of the sandbox game.
package component

import "sync/atomic"

// ID identifies a component type across the process.
type ID uint32

var nextID atomic.Uint32

// Handle is the typed key for one component type. Handles are allocated once
// at package init and passed to the generic world accessors.
type Handle[T any] struct {
	id ID
}

// NewHandle allocates a fresh component handle.
func NewHandle[T any]() Handle[T] {
	return Handle[T]{id: ID(nextID.Add(1))}
}

// ID returns the handle's process-wide component id.
func (h Handle[T]) ID() ID {
	return h.id
}

// Valid reports whether the handle was allocated through NewHandle.
func (h Handle[T]) Valid() bool {
	return h.id != 0
}
