package fcurve

import "math"

// Flag holds per-curve state bits.
type Flag uint32

const (
	FlagVisible Flag = 1 << iota
	FlagSelected
	FlagActive
	FlagProtected
	FlagMuted
	FlagDisabled
	FlagIntValues
	FlagDiscreteValues
)

// AutoSmoothing selects how automatic handles are smoothed.
type AutoSmoothing int

const (
	SmoothNone AutoSmoothing = iota
	SmoothContinuousAcceleration
)

// DefaultAutoSmoothing is used for curves created without an explicit preference.
const DefaultAutoSmoothing = SmoothContinuousAcceleration

// Vec2 is a (time, value) pair.
type Vec2 struct {
	X float64
	Y float64
}

// BezTriple is a single key with its two handles.
type BezTriple struct {
	Left    Vec2
	Co      Vec2
	Right   Vec2
	Ipo     Interpolation
	KeyType KeyType
	H1      HandleType
	H2      HandleType
	Select  bool
}

// ModifierType identifies a curve modifier.
type ModifierType int

const (
	ModifierGenerator ModifierType = iota + 1
	ModifierFnGenerator
	ModifierNoise
	ModifierCycles
	ModifierLimits
	ModifierStepped
)

// Modifier is the part of a curve modifier that affects keyability.
type Modifier struct {
	Type     ModifierType
	Additive bool
	Muted    bool
}

// FCurve is an animated property channel identified by RNA path and array index.
type FCurve struct {
	RNAPath       string
	ArrayIndex    int
	Flag          Flag
	AutoSmoothing AutoSmoothing
	Keys          []BezTriple
	// Samples holds baked points. A sampled curve has no editable keys.
	Samples   []Vec2
	Modifiers []Modifier
}

// New creates a curve for path and index with no keys.
func New(rnaPath string, arrayIndex int) *FCurve {
	return &FCurve{
		RNAPath:       rnaPath,
		ArrayIndex:    arrayIndex,
		AutoSmoothing: DefaultAutoSmoothing,
	}
}

// Has reports whether all bits of f are set.
func (c *FCurve) Has(f Flag) bool {
	if c == nil {
		return false
	}
	return c.Flag&f == f
}

// KeysUsable reports whether keys on this curve have a visible effect.
func (c *FCurve) KeysUsable() bool {
	if c == nil || len(c.Samples) > 0 {
		return false
	}
	for _, m := range c.Modifiers {
		if m.Muted {
			continue
		}
		switch m.Type {
		case ModifierGenerator, ModifierFnGenerator:
			if !m.Additive {
				return false
			}
		}
	}
	return true
}

// IsProtected reports whether the curve is locked against editing.
func (c *FCurve) IsProtected() bool {
	return c.Has(FlagProtected)
}

// IsKeyframable reports whether new keys may currently be inserted.
func (c *FCurve) IsKeyframable() bool {
	return c.KeysUsable() && !c.IsProtected()
}

// keyframeThreshold is the frame distance within which two keys are the same key.
const keyframeThreshold = 0.01

// KeyIndex binary searches the sorted keys for frame. It returns the insertion
// index and whether a key already exists there.
func (c *FCurve) KeyIndex(frame float64) (int, bool) {
	if c == nil || len(c.Keys) == 0 {
		return 0, false
	}
	first := c.Keys[0].Co.X
	if math.Abs(first-frame) < keyframeThreshold {
		return 0, true
	}
	if frame < first {
		return 0, false
	}
	last := c.Keys[len(c.Keys)-1].Co.X
	if math.Abs(last-frame) < keyframeThreshold {
		return len(c.Keys) - 1, true
	}
	if frame > last {
		return len(c.Keys), false
	}

	lo, hi := 0, len(c.Keys)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		x := c.Keys[mid].Co.X
		if math.Abs(x-frame) < keyframeThreshold {
			return mid, true
		}
		if frame > x {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return lo, false
}
