package anim

import (
	"fmt"
	"slices"
)

// MixMode selects how a layer combines with the layers below it.
type MixMode int

const (
	MixReplace MixMode = iota
	MixOffset
	MixAdd
	MixSubtract
	MixMultiply
)

// LayerFlag holds per-layer state bits.
type LayerFlag uint8

const (
	LayerMuted LayerFlag = 1 << iota
	LayerLocked
)

// Layer is one blending track: an ordered list of strips.
type Layer struct {
	Name      string
	Influence float64
	MixMode   MixMode
	Flags     LayerFlag

	strips []*Strip
}

func newLayer(name string) *Layer {
	return &Layer{
		Name:      boundedName(name),
		Influence: 1.0,
		MixMode:   MixReplace,
	}
}

// Strips returns the strips in order. The slice must not be modified.
func (l *Layer) Strips() []*Strip {
	if l == nil {
		return nil
	}
	return l.strips
}

// Strip returns the strip at index.
func (l *Layer) Strip(index int) *Strip {
	return l.strips[index]
}

// StripAdd appends a new strip of the given type with an infinite frame range.
// Unknown types are a programming error.
func (l *Layer) StripAdd(t StripType) *Strip {
	strip, err := newStrip(t)
	if err != nil {
		panic(fmt.Sprintf("anim: add strip to layer %q: %v", l.Name, err))
	}
	l.strips = append(l.strips, strip)
	return strip
}

// StripRemove removes strip and frees its data. It reports false, changing
// nothing, when strip is not part of this layer.
func (l *Layer) StripRemove(strip *Strip) bool {
	idx := l.FindStripIndex(strip)
	if idx < 0 {
		return false
	}
	l.strips = slices.Delete(l.strips, idx, idx+1)
	strip.free()
	return true
}

// FindStripIndex returns the index of strip by identity, or -1.
func (l *Layer) FindStripIndex(strip *Strip) int {
	if l == nil || strip == nil {
		return -1
	}
	for i, s := range l.strips {
		if s == strip {
			return i
		}
	}
	return -1
}

func (l *Layer) free() {
	for _, s := range l.strips {
		s.free()
	}
	l.strips = nil
}
