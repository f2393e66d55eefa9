package anim

import (
	"fmt"
	"math"

	"github.com/milk9111/animrig/common"
)

// StripType selects the variant of a strip. It is fixed at creation.
type StripType int

const (
	StripTypeKeyframe StripType = iota + 1
)

func (t StripType) String() string {
	switch t {
	case StripTypeKeyframe:
		return "keyframe"
	}
	return fmt.Sprintf("StripType(%d)", int(t))
}

// ParseStripType maps a name to a strip type.
func ParseStripType(name string) (StripType, error) {
	switch name {
	case "keyframe", "":
		return StripTypeKeyframe, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStripType, name)
}

// StripData is the variant specific part of a strip.
type StripData interface {
	StripType() StripType
	free()
}

// Strip is a time bounded piece of animation on a layer.
type Strip struct {
	// FrameStart may be -Inf and FrameEnd may be +Inf. FrameStart <= FrameEnd.
	FrameStart float64
	FrameEnd   float64

	data StripData
}

func newStrip(t StripType) (*Strip, error) {
	s := &Strip{
		FrameStart: math.Inf(-1),
		FrameEnd:   math.Inf(1),
	}
	switch t {
	case StripTypeKeyframe:
		s.data = newKeyframeStrip()
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStripType, int(t))
	}
	return s, nil
}

// Type returns the variant of this strip.
func (s *Strip) Type() StripType {
	return s.data.StripType()
}

// Data returns the variant payload for type switches.
func (s *Strip) Data() StripData {
	return s.data
}

// AsKeyframe returns the keyframe data of a keyframe strip.
func (s *Strip) AsKeyframe() (*KeyframeStrip, bool) {
	if s == nil {
		return nil, false
	}
	ks, ok := s.data.(*KeyframeStrip)
	return ks, ok
}

// MustKeyframe is AsKeyframe for callers that already know the strip type.
func (s *Strip) MustKeyframe() *KeyframeStrip {
	ks, ok := s.AsKeyframe()
	if !ok {
		panic(fmt.Errorf("%w: have %s, want %s", ErrStripTypeMismatch, s.Type(), StripTypeKeyframe))
	}
	return ks
}

// ContainsFrame reports whether frame lies in [FrameStart, FrameEnd].
func (s *Strip) ContainsFrame(frame float64) bool {
	return s.FrameStart <= frame && frame <= s.FrameEnd
}

// IsLastFrame reports whether frame is FrameEnd, allowing 4 ULPs of error.
func (s *Strip) IsLastFrame(frame float64) bool {
	const maxULPs = 4
	return common.CompareRelativeULP(s.FrameEnd, frame, epsilon, maxULPs)
}

// epsilon is the float64 machine epsilon.
const epsilon = 2.220446049250313e-16

// Resize sets the frame range. Only the start may be -Inf and only the end
// may be +Inf. On error the strip is unchanged.
func (s *Strip) Resize(start, end float64) error {
	switch {
	case math.IsNaN(start) || math.IsNaN(end):
		return fmt.Errorf("%w: NaN bound", ErrInvalidStripRange)
	case start > end:
		return fmt.Errorf("%w: start %v after end %v", ErrInvalidStripRange, start, end)
	case math.IsInf(start, 1):
		return fmt.Errorf("%w: start cannot be +Inf", ErrInvalidStripRange)
	case math.IsInf(end, -1):
		return fmt.Errorf("%w: end cannot be -Inf", ErrInvalidStripRange)
	case math.IsInf(start, -1) && math.IsInf(end, 1):
		return fmt.Errorf("%w: both bounds infinite", ErrInvalidStripRange)
	}
	s.FrameStart = start
	s.FrameEnd = end
	return nil
}

func (s *Strip) free() {
	if s.data != nil {
		s.data.free()
	}
}
