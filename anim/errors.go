package anim

import "errors"

var (
	ErrInvalidStripRange = errors.New("anim: invalid strip frame range")
	ErrStripTypeMismatch = errors.New("anim: strip is not of the requested type")
	ErrUnknownStripType  = errors.New("anim: unknown strip type")
)
