package anim

// IDType is the category tag of a host data-block. Zero means unconstrained.
type IDType int16

const (
	IDObject IDType = iota + 1
	IDMesh
	IDCamera
	IDLight
	IDMaterial
	IDScene
	IDWorld
	IDArmature
	IDText
	IDImage
	IDLibrary
)

var idTypeCodes = map[IDType]string{
	IDObject:   "OB",
	IDMesh:     "ME",
	IDCamera:   "CA",
	IDLight:    "LA",
	IDMaterial: "MA",
	IDScene:    "SC",
	IDWorld:    "WO",
	IDArmature: "AR",
	IDText:     "TX",
	IDImage:    "IM",
	IDLibrary:  "LI",
}

// String returns the two-letter code used as a name prefix.
func (t IDType) String() string {
	if code, ok := idTypeCodes[t]; ok {
		return code
	}
	return "??"
}

// CanHaveAnimData reports whether IDs of this type can carry an animation binding.
func (t IDType) CanHaveAnimData() bool {
	switch t {
	case IDText, IDImage, IDLibrary:
		return false
	case 0:
		return false
	}
	_, ok := idTypeCodes[t]
	return ok
}

// ParseIDType looks up a type by its two-letter code.
func ParseIDType(code string) (IDType, bool) {
	for t, c := range idTypeCodes {
		if c == code {
			return t, true
		}
	}
	return 0, false
}

// AnimData is the binding record a host keeps for its animation.
type AnimData struct {
	// Animation is a non-owning back reference, nil when unbound.
	Animation         *Animation
	OutputStableIndex int32
	OutputFallback    string
}

// ID is an animatable host data-block.
type ID interface {
	IDType() IDType
	// IDName is the full name, including the two-letter type prefix.
	IDName() string
	// AnimData returns the binding record, or nil if there is none yet.
	AnimData() *AnimData
	// EnsureAnimData returns the binding record, creating it if needed. It
	// returns nil when the ID cannot carry one.
	EnsureAnimData() *AnimData
}

// idNameWithoutPrefix strips the type code from a full ID name.
func idNameWithoutPrefix(name string) string {
	if len(name) < 2 {
		return ""
	}
	return name[2:]
}
