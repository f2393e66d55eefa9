package common

import (
	"math"
	"unicode/utf8"
)

// CompareRelativeULP reports whether a and b are equal within maxDiff absolute
// difference, or within maxULPs units in the last place.
func CompareRelativeULP(a, b, maxDiff float64, maxULPs int64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	if math.Abs(a-b) <= maxDiff {
		return true
	}
	if math.Signbit(a) != math.Signbit(b) {
		return false
	}
	ua := int64(math.Float64bits(a))
	ub := int64(math.Float64bits(b))
	d := ua - ub
	if d < 0 {
		d = -d
	}
	return d <= maxULPs
}

// TruncateUTF8 shortens s to at most maxBytes bytes without splitting a rune.
func TruncateUTF8(s string, maxBytes int) string {
	if maxBytes <= 0 {
		return ""
	}
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
