package anim

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"
)

// Animation owns an ordered stack of layers and the outputs they animate.
//
// Structural changes (layers, strips, outputs, channels, curves) need a single
// writer; callers serialize them. Only stable index allocation is atomic, so
// concurrent readers of StableIndex values never see a repeated index.
type Animation struct {
	Name string
	UUID uuid.UUID

	layers      []*Layer
	activeLayer int

	outputs         []*Output
	outputsByIndex  map[int32]*Output
	lastStableIndex atomic.Int32

	users int
}

// New creates an empty animation data-block.
func New(name string) *Animation {
	return &Animation{
		Name:           boundedName(name),
		UUID:           uuid.New(),
		activeLayer:    -1,
		outputsByIndex: make(map[int32]*Output),
	}
}

func (a *Animation) String() string {
	if a == nil {
		return "<nil animation>"
	}
	return fmt.Sprintf("%s (%s)", a.Name, a.UUID)
}

// Users returns the number of IDs bound to this animation.
func (a *Animation) Users() int {
	if a == nil {
		return 0
	}
	return a.users
}

// Layers returns the layers in blend order. The slice must not be modified.
func (a *Animation) Layers() []*Layer {
	if a == nil {
		return nil
	}
	return a.layers
}

// Layer returns the layer at index.
func (a *Animation) Layer(index int) *Layer {
	return a.layers[index]
}

// ActiveLayerIndex returns the index of the active layer, or -1.
func (a *Animation) ActiveLayerIndex() int {
	if a == nil {
		return -1
	}
	return a.activeLayer
}

// ActiveLayer returns the active layer, or nil when there are no layers.
func (a *Animation) ActiveLayer() *Layer {
	if a == nil || a.activeLayer < 0 || a.activeLayer >= len(a.layers) {
		return nil
	}
	return a.layers[a.activeLayer]
}

// SetActiveLayer makes layer the active one. It reports false if layer is not
// part of this animation.
func (a *Animation) SetActiveLayer(layer *Layer) bool {
	idx := a.FindLayerIndex(layer)
	if idx < 0 {
		return false
	}
	a.activeLayer = idx
	return true
}

// LayerAdd appends a new layer and makes it active.
func (a *Animation) LayerAdd(name string) *Layer {
	layer := newLayer(name)
	a.layers = append(a.layers, layer)
	a.activeLayer = len(a.layers) - 1
	return layer
}

// LayerRemove removes layer and frees its strips. It reports false, changing
// nothing, when layer is not part of this animation.
func (a *Animation) LayerRemove(layer *Layer) bool {
	idx := a.FindLayerIndex(layer)
	if idx < 0 {
		return false
	}

	a.layers = slices.Delete(a.layers, idx, idx+1)

	switch {
	case len(a.layers) == 0:
		a.activeLayer = -1
	case a.activeLayer > idx:
		a.activeLayer--
	case a.activeLayer >= len(a.layers):
		a.activeLayer = len(a.layers) - 1
	}

	layer.free()
	return true
}

// FindLayerIndex returns the index of layer by identity, or -1.
func (a *Animation) FindLayerIndex(layer *Layer) int {
	if a == nil || layer == nil {
		return -1
	}
	for i, l := range a.layers {
		if l == layer {
			return i
		}
	}
	return -1
}

// Outputs returns all outputs. Their order carries no meaning.
func (a *Animation) Outputs() []*Output {
	if a == nil {
		return nil
	}
	return a.outputs
}

// Output returns the output at index.
func (a *Animation) Output(index int) *Output {
	return a.outputs[index]
}

// OutputAdd allocates an output with the next stable index.
func (a *Animation) OutputAdd() *Output {
	out := &Output{StableIndex: a.lastStableIndex.Add(1)}
	a.outputs = append(a.outputs, out)
	if a.outputsByIndex == nil {
		a.outputsByIndex = make(map[int32]*Output)
	}
	a.outputsByIndex[out.StableIndex] = out
	return out
}

// OutputRemove removes out from the animation. Channels keyed by its stable
// index are left in place; the index is never handed out again.
func (a *Animation) OutputRemove(out *Output) bool {
	if a == nil || out == nil {
		return false
	}
	idx := -1
	for i, o := range a.outputs {
		if o == out {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	a.outputs = slices.Delete(a.outputs, idx, idx+1)
	delete(a.outputsByIndex, out.StableIndex)
	return true
}

// LastStableIndex returns the most recently allocated stable index.
func (a *Animation) LastStableIndex() int32 {
	if a == nil {
		return 0
	}
	return a.lastStableIndex.Load()
}

// OutputForStableIndex returns the output with the given stable index, or nil.
func (a *Animation) OutputForStableIndex(stableIndex int32) *Output {
	if a == nil {
		return nil
	}
	return a.outputsByIndex[stableIndex]
}

// OutputForFallback returns the first output whose fallback equals name, or nil.
func (a *Animation) OutputForFallback(name string) *Output {
	if a == nil {
		return nil
	}
	for _, out := range a.outputs {
		if out.Fallback == name {
			return out
		}
	}
	return nil
}

// FindSuitableOutputFor resolves the output id was last bound to, first by
// stable index and then by fallback name. The ID does not need to be bound to
// this animation.
func (a *Animation) FindSuitableOutputFor(id ID) *Output {
	if a == nil || id == nil {
		return nil
	}
	adt := id.AnimData()
	if adt == nil {
		return nil
	}

	if out := a.OutputForStableIndex(adt.OutputStableIndex); out != nil && out.IsSuitableFor(id) {
		return out
	}

	// Outputs that were never bound have an empty fallback and must not match
	// an ID that never had one either.
	if adt.OutputFallback == "" {
		return nil
	}
	if out := a.OutputForFallback(adt.OutputFallback); out != nil && out.IsSuitableFor(id) {
		return out
	}
	return nil
}

// AssignID binds id to out. The ID must not be bound to any animation. It
// reports false, leaving the ID untouched, when out rejects the ID.
func (a *Animation) AssignID(out *Output, id ID) bool {
	if adt := id.AnimData(); adt != nil && adt.Animation != nil {
		panic(fmt.Sprintf("anim: %s is already bound to %s; unassign it first", id.IDName(), adt.Animation))
	}

	prevType, prevFallback := out.IDType, out.Fallback
	if !out.AssignID(id) {
		return false
	}

	adt := id.EnsureAnimData()
	if adt == nil {
		out.IDType, out.Fallback = prevType, prevFallback
		return false
	}
	adt.OutputStableIndex = out.StableIndex
	adt.OutputFallback = out.Fallback
	adt.Animation = a
	a.users++
	return true
}

// UnassignID drops the binding between id and this animation. The stable index
// and fallback stay on the record so a later bind finds the same output.
func (a *Animation) UnassignID(id ID) {
	adt := id.AnimData()
	if adt == nil || adt.Animation != a {
		panic(fmt.Sprintf("anim: %s is not bound to %s", id.IDName(), a))
	}
	a.users--
	adt.Animation = nil
}
