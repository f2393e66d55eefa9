package anim

import (
	"sync"
	"testing"
)

func layerNames(a *Animation) []string {
	out := make([]string, 0, len(a.Layers()))
	for _, l := range a.Layers() {
		out = append(out, l.Name)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLayerAddRemovePreservesOrder(t *testing.T) {
	cases := []struct {
		name       string
		add        []string
		remove     []int
		wantNames  []string
		wantActive int
	}{
		{"add_only", []string{"a", "b", "c"}, nil, []string{"a", "b", "c"}, 2},
		{"remove_middle", []string{"a", "b", "c"}, []int{1}, []string{"a", "c"}, 1},
		{"remove_first", []string{"a", "b", "c"}, []int{0}, []string{"b", "c"}, 1},
		{"remove_last_active", []string{"a", "b", "c"}, []int{2}, []string{"a", "b"}, 1},
		{"remove_all", []string{"a", "b"}, []int{0, 1}, []string{}, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := New("Action")
			layers := make([]*Layer, 0, len(c.add))
			for _, n := range c.add {
				layers = append(layers, a.LayerAdd(n))
			}
			for _, i := range c.remove {
				if !a.LayerRemove(layers[i]) {
					t.Fatalf("LayerRemove(%q) should succeed", layers[i].Name)
				}
			}
			if got := layerNames(a); !equalStrings(got, c.wantNames) {
				t.Fatalf("expected layers %v, got %v", c.wantNames, got)
			}
			if len(a.Layers()) != len(c.add)-len(c.remove) {
				t.Fatalf("expected %d layers, got %d", len(c.add)-len(c.remove), len(a.Layers()))
			}
			if a.ActiveLayerIndex() != c.wantActive {
				t.Fatalf("expected active index %d, got %d", c.wantActive, a.ActiveLayerIndex())
			}
		})
	}
}

func TestLayerRemoveActiveIndexFollowsLayer(t *testing.T) {
	a := New("Action")
	first := a.LayerAdd("first")
	a.LayerAdd("second")
	third := a.LayerAdd("third")

	if !a.SetActiveLayer(third) {
		t.Fatalf("SetActiveLayer should succeed")
	}
	a.LayerRemove(first)
	if a.ActiveLayer() != third {
		t.Fatalf("expected active layer to stay %q, got %v", third.Name, a.ActiveLayer())
	}
}

func TestLayerRemoveForeignLayer(t *testing.T) {
	a := New("Action")
	a.LayerAdd("kept")
	other := New("Other").LayerAdd("foreign")

	if a.LayerRemove(other) {
		t.Fatalf("LayerRemove should fail for a layer of another animation")
	}
	if len(a.Layers()) != 1 {
		t.Fatalf("expected layer count to stay 1, got %d", len(a.Layers()))
	}
	if a.LayerRemove(nil) {
		t.Fatalf("LayerRemove(nil) should fail")
	}
}

func TestLayerAddDefaults(t *testing.T) {
	a := New("Action")
	long := ""
	for i := 0; i < 100; i++ {
		long += "é"
	}
	l := a.LayerAdd(long)
	if len(l.Name) > MaxNameLen-1 {
		t.Fatalf("expected name truncated to %d bytes, got %d", MaxNameLen-1, len(l.Name))
	}
	if l.Influence != 1.0 || l.MixMode != MixReplace {
		t.Fatalf("unexpected layer defaults: %+v", l)
	}
	if a.ActiveLayer() != l {
		t.Fatalf("new layer should be active")
	}
}

func TestOutputAddStableIndices(t *testing.T) {
	a := New("Action")
	const n = 10
	prev := int32(0)
	seen := make(map[int32]bool, n)
	for i := 0; i < n; i++ {
		out := a.OutputAdd()
		if out.StableIndex <= prev {
			t.Fatalf("stable index %d not greater than previous %d", out.StableIndex, prev)
		}
		if seen[out.StableIndex] {
			t.Fatalf("stable index %d repeated", out.StableIndex)
		}
		seen[out.StableIndex] = true
		prev = out.StableIndex
	}
	if len(a.Outputs()) != n {
		t.Fatalf("expected %d outputs, got %d", n, len(a.Outputs()))
	}
}

func TestOutputRemoveNeverReusesIndex(t *testing.T) {
	a := New("Action")
	first := a.OutputAdd()
	second := a.OutputAdd()

	if !a.OutputRemove(second) {
		t.Fatalf("OutputRemove should succeed")
	}
	if a.OutputRemove(second) {
		t.Fatalf("second OutputRemove should fail")
	}
	if a.OutputForStableIndex(second.StableIndex) != nil {
		t.Fatalf("removed output still resolvable")
	}
	third := a.OutputAdd()
	if third.StableIndex == second.StableIndex || third.StableIndex <= second.StableIndex {
		t.Fatalf("stable index reused: %d", third.StableIndex)
	}
	if a.OutputForStableIndex(first.StableIndex) != first {
		t.Fatalf("first output lost")
	}
}

func TestOutputStableIndexConcurrentReaders(t *testing.T) {
	a := New("Action")
	const n = 50

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		var last int32
		for {
			select {
			case <-stop:
				return
			default:
			}
			cur := a.LastStableIndex()
			if cur < last {
				t.Errorf("stable index counter went backwards: %d < %d", cur, last)
				return
			}
			last = cur
		}
	}()

	for i := 0; i < n; i++ {
		a.OutputAdd()
	}
	close(stop)
	wg.Wait()

	if a.LastStableIndex() != n {
		t.Fatalf("expected last stable index %d, got %d", n, a.LastStableIndex())
	}
}

func TestOutputLookup(t *testing.T) {
	a := New("Action")
	out := a.OutputAdd()
	out.Fallback = "Cube"

	if a.OutputForStableIndex(out.StableIndex) != out {
		t.Fatalf("lookup by stable index failed")
	}
	if a.OutputForStableIndex(999) != nil {
		t.Fatalf("expected nil for unknown stable index")
	}
	if a.OutputForFallback("Cube") != out {
		t.Fatalf("lookup by fallback failed")
	}
	if a.OutputForFallback("Sphere") != nil {
		t.Fatalf("expected nil for unknown fallback")
	}
}
