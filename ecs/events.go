package ecs

import (
	"github.com/google/uuid"

	"github.com/milk9111/animrig/anim"
)

// EventType names a world event.
type EventType string

const (
	EventAnimationAssigned   EventType = "animation_assigned"
	EventAnimationUnassigned EventType = "animation_unassigned"
	EventEntityDestroyed     EventType = "entity_destroyed"
)

// Event is a world notification. AnimationID is set for binding events and
// stays valid after the animation itself is dropped.
type Event struct {
	Type        EventType
	Entity      Entity
	Animation   *anim.Animation
	AnimationID uuid.UUID
	StableIndex int32
}

func bindingEvent(t EventType, e Entity, a *anim.Animation, stableIndex int32) Event {
	return Event{Type: t, Entity: e, Animation: a, AnimationID: a.UUID, StableIndex: stableIndex}
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
