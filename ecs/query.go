package ecs

import (
	"github.com/google/uuid"

	"github.com/milk9111/animrig/anim"
)

// BoundTo returns the live entities currently bound to a, in id order.
func BoundTo(w *World, a *anim.Animation) []Entity {
	if w == nil || a == nil {
		return nil
	}
	return ByAnimation(w)[a.UUID]
}

// ByAnimation groups the bound live entities by animation UUID, each group in
// id order.
func ByAnimation(w *World) map[uuid.UUID][]Entity {
	groups := make(map[uuid.UUID][]Entity)
	for _, e := range w.Entities() {
		if adt := w.AnimData(e); adt != nil && adt.Animation != nil {
			id := adt.Animation.UUID
			groups[id] = append(groups[id], e)
		}
	}
	return groups
}

// ResolveOutput returns the output e is bound to, resolved through its
// animation by stable index. It returns nil when e is unbound or the output
// was removed.
func ResolveOutput(w *World, e Entity) *anim.Output {
	adt := w.AnimData(e)
	if adt == nil || adt.Animation == nil {
		return nil
	}
	return adt.Animation.OutputForStableIndex(adt.OutputStableIndex)
}
