package anim

// AssignAnimation binds id to a, unbinding it from any previous animation
// first. The output id was last bound to is reused when its stable index or
// fallback still matches; otherwise a new output is created. An output
// created for an ID that is then rejected is removed again.
func AssignAnimation(a *Animation, id ID) bool {
	UnassignAnimation(id)

	out := a.FindSuitableOutputFor(id)
	created := out == nil
	if created {
		out = a.OutputAdd()
	}
	if !a.AssignID(out, id) {
		if created {
			a.OutputRemove(out)
		}
		return false
	}
	return true
}

// UnassignAnimation unbinds id from its animation, if it has one.
func UnassignAnimation(id ID) {
	adt := id.AnimData()
	if adt == nil || adt.Animation == nil {
		return
	}
	adt.Animation.UnassignID(id)
}
