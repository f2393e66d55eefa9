package anim

import "github.com/milk9111/animrig/common"

// MaxNameLen is the storage size of layer names and output fallbacks,
// including the terminator, so names hold at most MaxNameLen-1 bytes.
const MaxNameLen = 64

// Output is a bindable animation target, independent of any live ID.
//
// Outputs are created by Animation.OutputAdd only.
type Output struct {
	// StableIndex is unique within the owning Animation and never reused.
	StableIndex int32
	// IDType is pinned on the first successful bind. Zero accepts any type.
	IDType IDType
	// Fallback is the name of the last bound ID, used when the stable index
	// no longer resolves.
	Fallback string
}

// IsSuitableFor reports whether id may be bound to this output.
func (o *Output) IsSuitableFor(id ID) bool {
	if o == nil || id == nil {
		return false
	}
	return o.IDType == 0 || o.IDType == id.IDType()
}

// AssignID checks that id can be bound to this output and records its type
// and name. The ID's binding record is left to the caller.
func (o *Output) AssignID(id ID) bool {
	if o == nil || id == nil {
		return false
	}
	if !id.IDType().CanHaveAnimData() {
		return false
	}
	if !o.IsSuitableFor(id) {
		return false
	}
	if o.IDType == 0 {
		o.IDType = id.IDType()
	}
	o.Fallback = boundedName(idNameWithoutPrefix(id.IDName()))
	return true
}

func boundedName(name string) string {
	return common.TruncateUTF8(name, MaxNameLen-1)
}
