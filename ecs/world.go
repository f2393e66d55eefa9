package ecs

import (
	"errors"

	"github.com/milk9111/animrig/anim"
)

var ErrEntityNotAlive = errors.New("ecs: entity not alive")

// World owns entities and their identity components.
type World struct {
	entities entityStore
	events   EventQueue

	idTypes  SparseSet[anim.IDType]
	names    SparseSet[string]
	animData SparseSet[*anim.AnimData]
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{}
}

// CreateEntity allocates a new entity of the given ID type.
func (w *World) CreateEntity(t anim.IDType, name string) Entity {
	e := w.entities.create()
	w.idTypes.Set(e.id(), t)
	w.names.Set(e.id(), name)
	return e
}

// DestroyEntity unbinds the entity from its animation and marks it dead.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.IsAlive(e) {
		return false
	}
	w.UnassignAnimation(e)
	w.idTypes.Remove(e.id())
	w.names.Remove(e.id())
	w.animData.Remove(e.id())
	w.entities.destroy(e)
	w.events.Push(Event{Type: EventEntityDestroyed, Entity: e})
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities in id order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.alive()
}

// Name returns the entity's name without type prefix.
func (w *World) Name(e Entity) string {
	if !w.IsAlive(e) {
		return ""
	}
	name, _ := w.names.Get(e.id())
	return name
}

// Rename changes the entity's name. Bindings are not touched; the output
// fallback follows on the next assign.
func (w *World) Rename(e Entity, name string) error {
	if !w.IsAlive(e) {
		return ErrEntityNotAlive
	}
	w.names.Set(e.id(), name)
	return nil
}

// IDType returns the entity's ID type.
func (w *World) IDType(e Entity) anim.IDType {
	if !w.IsAlive(e) {
		return 0
	}
	t, _ := w.idTypes.Get(e.id())
	return t
}

// AnimData returns the entity's binding record, or nil.
func (w *World) AnimData(e Entity) *anim.AnimData {
	if !w.IsAlive(e) {
		return nil
	}
	adt, _ := w.animData.Get(e.id())
	return adt
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
