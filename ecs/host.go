package ecs

import (
	"log"

	"github.com/milk9111/animrig/anim"
)

// hostID exposes an entity as an animatable ID.
type hostID struct {
	w *World
	e Entity
}

// ID returns the anim.ID view of e, or nil if e is not alive.
func (w *World) ID(e Entity) anim.ID {
	if !w.IsAlive(e) {
		return nil
	}
	return hostID{w: w, e: e}
}

func (h hostID) IDType() anim.IDType {
	return h.w.IDType(h.e)
}

func (h hostID) IDName() string {
	return h.IDType().String() + h.w.Name(h.e)
}

func (h hostID) AnimData() *anim.AnimData {
	return h.w.AnimData(h.e)
}

func (h hostID) EnsureAnimData() *anim.AnimData {
	if !h.w.IsAlive(h.e) || !h.IDType().CanHaveAnimData() {
		return nil
	}
	if adt, ok := h.w.animData.Get(h.e.id()); ok {
		return adt
	}
	adt := &anim.AnimData{}
	h.w.animData.Set(h.e.id(), adt)
	return adt
}

// AssignAnimation binds e to a and queues EventAnimationAssigned.
func (w *World) AssignAnimation(e Entity, a *anim.Animation) bool {
	id := w.ID(e)
	if id == nil || a == nil {
		return false
	}
	if prev := w.AnimData(e); prev != nil && prev.Animation != nil {
		w.events.Push(bindingEvent(EventAnimationUnassigned, e, prev.Animation, prev.OutputStableIndex))
	}
	if !anim.AssignAnimation(a, id) {
		log.Printf("ecs: entity=%s %s cannot be bound to %s", e, id.IDName(), a)
		return false
	}
	adt := w.AnimData(e)
	w.events.Push(bindingEvent(EventAnimationAssigned, e, a, adt.OutputStableIndex))
	return true
}

// UnassignAnimation unbinds e from its animation, if any.
func (w *World) UnassignAnimation(e Entity) {
	adt := w.AnimData(e)
	if adt == nil || adt.Animation == nil {
		return
	}
	a := adt.Animation
	anim.UnassignAnimation(w.ID(e))
	w.events.Push(bindingEvent(EventAnimationUnassigned, e, a, adt.OutputStableIndex))
}
