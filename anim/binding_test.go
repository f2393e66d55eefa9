package anim

import (
	"testing"

	"github.com/milk9111/animrig/fcurve"
)

func TestOutputAssignIDPinsType(t *testing.T) {
	a := New("Action")
	out := a.OutputAdd()
	cube := newTestID(IDObject, "Cube")
	mesh := newTestID(IDMesh, "Cube")
	lamp := newTestID(IDObject, "Lamp")

	if !out.IsSuitableFor(mesh) {
		t.Fatalf("unconstrained output should suit any type")
	}
	if !out.AssignID(cube) {
		t.Fatalf("first AssignID should succeed")
	}
	if out.IDType != IDObject {
		t.Fatalf("expected pinned type %v, got %v", IDObject, out.IDType)
	}
	if out.Fallback != "Cube" {
		t.Fatalf("expected fallback without prefix, got %q", out.Fallback)
	}
	if out.AssignID(mesh) {
		t.Fatalf("AssignID should fail for a different type")
	}
	if out.Fallback != "Cube" {
		t.Fatalf("failed AssignID must not change fallback, got %q", out.Fallback)
	}
	if !out.AssignID(lamp) {
		t.Fatalf("AssignID of same type should succeed")
	}
	if out.IDType != IDObject || out.Fallback != "Lamp" {
		t.Fatalf("unexpected output after rebind: %+v", out)
	}
}

func TestOutputAssignIDRejectsTypeWithoutAnimData(t *testing.T) {
	out := New("Action").OutputAdd()
	if out.AssignID(newTestID(IDText, "Notes")) {
		t.Fatalf("text IDs cannot carry animation")
	}
	if out.IDType != 0 || out.Fallback != "" {
		t.Fatalf("rejected AssignID mutated output: %+v", out)
	}
}

func TestAssignAnimationUseCount(t *testing.T) {
	a := New("Action")
	b := New("Other")
	cube := newTestID(IDObject, "Cube")

	if !AssignAnimation(a, cube) {
		t.Fatalf("AssignAnimation should succeed")
	}
	if a.Users() != 1 || cube.AnimData().Animation != a {
		t.Fatalf("expected binding to a with 1 user, got users=%d", a.Users())
	}

	if !AssignAnimation(b, cube) {
		t.Fatalf("rebinding to another animation should succeed")
	}
	if a.Users() != 0 || b.Users() != 1 {
		t.Fatalf("expected users a=0 b=1, got a=%d b=%d", a.Users(), b.Users())
	}

	UnassignAnimation(cube)
	if b.Users() != 0 || cube.AnimData().Animation != nil {
		t.Fatalf("unassign should clear the binding")
	}
	UnassignAnimation(cube)
	if b.Users() != 0 {
		t.Fatalf("unassigning an unbound ID must be a no-op")
	}
}

func TestAssignAnimationRejectedLeavesNoOutput(t *testing.T) {
	a := New("Action")
	txt := newTestID(IDText, "Notes")
	if AssignAnimation(a, txt) {
		t.Fatalf("AssignAnimation should fail for text IDs")
	}
	if len(a.Outputs()) != 0 || a.Users() != 0 {
		t.Fatalf("failed bind left state behind: outputs=%d users=%d", len(a.Outputs()), a.Users())
	}
}

func TestAssignIDWithoutAnimDataLeavesOutput(t *testing.T) {
	a := New("Action")
	out := a.OutputAdd()
	if !a.AssignID(out, newTestID(IDCamera, "Cam")) {
		t.Fatalf("first bind should succeed")
	}

	stubborn := newTestID(IDCamera, "Other")
	stubborn.refuseAnimData = true
	if a.AssignID(out, stubborn) {
		t.Fatalf("bind should fail when the ID cannot store a binding")
	}
	if out.IDType != IDCamera || out.Fallback != "Cam" {
		t.Fatalf("failed bind mutated output: %+v", out)
	}
	if a.Users() != 1 {
		t.Fatalf("expected 1 user, got %d", a.Users())
	}

	fresh := a.OutputAdd()
	if a.AssignID(fresh, stubborn) {
		t.Fatalf("bind should fail when the ID cannot store a binding")
	}
	if fresh.IDType != 0 || fresh.Fallback != "" {
		t.Fatalf("failed bind pinned a fresh output: %+v", fresh)
	}
}

func TestAssignIDTwicePanics(t *testing.T) {
	a := New("Action")
	cube := newTestID(IDObject, "Cube")
	AssignAnimation(a, cube)
	mustPanic(t, "AssignID", func() { a.AssignID(a.OutputAdd(), cube) })
	mustPanic(t, "UnassignID", func() { New("Other").UnassignID(cube) })
}

func TestFindSuitableOutputFor(t *testing.T) {
	a := New("Action")
	cube := newTestID(IDObject, "Cube")
	if a.FindSuitableOutputFor(cube) != nil {
		t.Fatalf("unbound ID should have no suitable output")
	}

	AssignAnimation(a, cube)
	out := a.Output(0)

	for i := 0; i < 3; i++ {
		if got := a.FindSuitableOutputFor(cube); got != out {
			t.Fatalf("call %d: expected output %d, got %v", i, out.StableIndex, got)
		}
	}

	t.Run("fallback_after_index_lost", func(t *testing.T) {
		cube.adt.OutputStableIndex = 999
		if got := a.FindSuitableOutputFor(cube); got != out {
			t.Fatalf("expected fallback match, got %v", got)
		}
	})

	t.Run("type_mismatch", func(t *testing.T) {
		mesh := newTestID(IDMesh, "Cube")
		mesh.adt = &AnimData{OutputStableIndex: out.StableIndex, OutputFallback: "Cube"}
		if got := a.FindSuitableOutputFor(mesh); got != nil {
			t.Fatalf("expected nil for incompatible type, got %v", got)
		}
	})

	t.Run("never_bound_output_not_matched", func(t *testing.T) {
		b := New("Other")
		b.OutputAdd()
		fresh := newTestID(IDObject, "Fresh")
		fresh.EnsureAnimData()
		if got := b.FindSuitableOutputFor(fresh); got != nil {
			t.Fatalf("expected nil, got output %d", got.StableIndex)
		}
	})
}

func TestBindKeyRebindScenario(t *testing.T) {
	a := New("Action")
	e := newTestID(IDObject, "Cube")

	if !AssignAnimation(a, e) {
		t.Fatalf("bind should succeed")
	}
	if len(a.Outputs()) != 1 {
		t.Fatalf("expected one output, got %d", len(a.Outputs()))
	}
	o1 := a.Output(0)
	if o1.StableIndex != 1 || o1.IDType != IDObject {
		t.Fatalf("unexpected output: %+v", o1)
	}

	strip := a.LayerAdd("Base").StripAdd(StripTypeKeyframe).MustKeyframe()
	fcu := strip.KeyframeInsert(o1, ".location", 0, fcurve.Vec2{X: 1, Y: 2}, fcurve.DefaultKeyframeSettings(), 0)
	if fcu == nil {
		t.Fatalf("KeyframeInsert should succeed")
	}
	found := strip.FCurveFind(o1, ".location", 0)
	if found != fcu || len(found.Keys) != 1 || found.Keys[0].Co != (fcurve.Vec2{X: 1, Y: 2}) {
		t.Fatalf("expected curve with key (1, 2), got %+v", found)
	}

	UnassignAnimation(e)
	if got := a.FindSuitableOutputFor(e); got != o1 {
		t.Fatalf("expected O1 to be found after unbind, got %v", got)
	}
	if !AssignAnimation(a, e) {
		t.Fatalf("rebind should succeed")
	}
	if len(a.Outputs()) != 1 || e.AnimData().OutputStableIndex != o1.StableIndex {
		t.Fatalf("rebind should reuse O1, outputs=%d index=%d", len(a.Outputs()), e.AnimData().OutputStableIndex)
	}
}

func TestRenamedIDFollowsStableIndex(t *testing.T) {
	a := New("Action")
	e := newTestID(IDObject, "Cube")
	AssignAnimation(a, e)
	out := a.Output(0)

	UnassignAnimation(e)
	e.name = "OBRenamed"
	AssignAnimation(a, e)

	if len(a.Outputs()) != 1 {
		t.Fatalf("rename should not create a new output")
	}
	if out.Fallback != "Renamed" || e.AnimData().OutputFallback != "Renamed" {
		t.Fatalf("expected fallback to follow rename, got %q / %q", out.Fallback, e.AnimData().OutputFallback)
	}
}
