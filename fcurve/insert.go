package fcurve

import "math"

// KeyType tags a key for display and filtering.
type KeyType int

const (
	KeyTypeKeyframe KeyType = iota
	KeyTypeExtreme
	KeyTypeBreakdown
	KeyTypeJitter
	KeyTypeMovingHold
)

// Interpolation is the mode used from a key to the next.
type Interpolation int

const (
	InterpBezier Interpolation = iota
	InterpLinear
	InterpConstant
)

// HandleType controls how a key's handles are computed.
type HandleType int

const (
	HandleFree HandleType = iota
	HandleAuto
	HandleVector
	HandleAligned
	HandleAutoClamped
)

// KeyframeSettings configures newly inserted keys.
type KeyframeSettings struct {
	KeyType       KeyType
	Interpolation Interpolation
	Handle        HandleType
}

// DefaultKeyframeSettings returns the settings used when nothing is configured.
func DefaultKeyframeSettings() KeyframeSettings {
	return KeyframeSettings{
		KeyType:       KeyTypeKeyframe,
		Interpolation: InterpBezier,
		Handle:        HandleAutoClamped,
	}
}

// InsertKeyFlags adjust how InsertVert treats existing keys.
type InsertKeyFlags uint32

const (
	// InsertReplace only updates an existing key, never adds one.
	InsertReplace InsertKeyFlags = 1 << iota
	// InsertNeeded skips the insert when an existing key already holds the value.
	InsertNeeded
	// InsertOverwriteFull replaces the whole existing key, not only its value.
	InsertOverwriteFull
)

// InsertVert adds or updates a key at pos. It returns the index of the key, or
// -1 when the key was rejected.
func (c *FCurve) InsertVert(pos Vec2, settings KeyframeSettings, flags InsertKeyFlags) int {
	if c == nil {
		return -1
	}
	if math.IsNaN(pos.X) || math.IsInf(pos.X, 0) || math.IsNaN(pos.Y) || math.IsInf(pos.Y, 0) {
		return -1
	}

	ipo := settings.Interpolation
	if c.Has(FlagIntValues) || c.Has(FlagDiscreteValues) {
		pos.Y = math.Round(pos.Y)
	}
	if c.Has(FlagDiscreteValues) {
		ipo = InterpConstant
	}

	bezt := BezTriple{
		Left:    Vec2{X: pos.X - 1, Y: pos.Y},
		Co:      pos,
		Right:   Vec2{X: pos.X + 1, Y: pos.Y},
		Ipo:     ipo,
		KeyType: settings.KeyType,
		H1:      settings.Handle,
		H2:      settings.Handle,
		Select:  true,
	}

	idx, exists := c.KeyIndex(pos.X)
	if exists {
		existing := &c.Keys[idx]
		if flags&InsertNeeded != 0 && existing.Co.Y == pos.Y {
			return idx
		}
		if flags&InsertOverwriteFull != 0 {
			*existing = bezt
			return idx
		}
		dy := pos.Y - existing.Co.Y
		existing.Co.Y = pos.Y
		existing.Left.Y += dy
		existing.Right.Y += dy
		existing.Select = true
		return idx
	}
	if flags&InsertReplace != 0 {
		return -1
	}

	c.Keys = append(c.Keys, BezTriple{})
	copy(c.Keys[idx+1:], c.Keys[idx:])
	c.Keys[idx] = bezt
	return idx
}
