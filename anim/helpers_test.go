package anim

type testID struct {
	typ  IDType
	name string
	adt  *AnimData

	// refuseAnimData makes EnsureAnimData fail even for animatable types.
	refuseAnimData bool
}

func newTestID(typ IDType, name string) *testID {
	return &testID{typ: typ, name: typ.String() + name}
}

func (t *testID) IDType() IDType { return t.typ }
func (t *testID) IDName() string { return t.name }
func (t *testID) AnimData() *AnimData { return t.adt }

func (t *testID) EnsureAnimData() *AnimData {
	if !t.typ.CanHaveAnimData() || t.refuseAnimData {
		return nil
	}
	if t.adt == nil {
		t.adt = &AnimData{}
	}
	return t.adt
}

func mustPanic(t interface{ Fatalf(string, ...any) }, name string, fn func()) {
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}
