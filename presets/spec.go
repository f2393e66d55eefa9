package presets

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/animrig/fcurve"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("presets: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("presets: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// AnimationSpec describes an animation and the entities it drives.
type AnimationSpec struct {
	Name     string       `yaml:"name"`
	Entities []EntitySpec `yaml:"entities"`
	Layers   []LayerSpec  `yaml:"layers"`
}

func LoadAnimationSpec(name string) (*AnimationSpec, error) {
	spec, err := LoadSpec[AnimationSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type EntitySpec struct {
	Name string `yaml:"name"`
	// Type is the two-letter ID code, e.g. OB or CA.
	Type string `yaml:"type"`
}

type LayerSpec struct {
	Name      string      `yaml:"name"`
	Influence *float64    `yaml:"influence"`
	MixMode   string      `yaml:"mix_mode"`
	Muted     bool        `yaml:"muted"`
	Strips    []StripSpec `yaml:"strips"`
}

type StripSpec struct {
	Type       string        `yaml:"type"`
	FrameStart *float64      `yaml:"frame_start"`
	FrameEnd   *float64      `yaml:"frame_end"`
	Channels   []ChannelSpec `yaml:"channels"`
}

type ChannelSpec struct {
	Entity string      `yaml:"entity"`
	Curves []CurveSpec `yaml:"curves"`
}

type CurveSpec struct {
	Path          string    `yaml:"path"`
	Index         int       `yaml:"index"`
	Interpolation string    `yaml:"interpolation"`
	Keys          []KeySpec `yaml:"keys"`
}

// KeySpec is a [frame, value] pair.
type KeySpec struct {
	Frame float64
	Value float64
}

func (k *KeySpec) UnmarshalYAML(value *yaml.Node) error {
	var pair []float64
	if err := value.Decode(&pair); err != nil {
		return fmt.Errorf("key must be [frame, value]: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("key must be [frame, value], got %d numbers", len(pair))
	}
	k.Frame = pair[0]
	k.Value = pair[1]
	return nil
}

// PreferencesSpec holds the user defaults applied while building presets.
type PreferencesSpec struct {
	Keyframe      KeyframeSpec   `yaml:"keyframe"`
	AutoSmoothing string         `yaml:"auto_smoothing"`
	Strip         StripRangeSpec `yaml:"strip"`
}

type KeyframeSpec struct {
	KeyType       string `yaml:"key_type"`
	Interpolation string `yaml:"interpolation"`
	Handle        string `yaml:"handle"`
}

// StripRangeSpec is the frame range given to strips that leave theirs unset.
type StripRangeSpec struct {
	FrameStart *float64 `yaml:"frame_start"`
	FrameEnd   *float64 `yaml:"frame_end"`
}

// Preferences are resolved PreferencesSpec values.
type Preferences struct {
	Keyframe      fcurve.KeyframeSettings
	AutoSmoothing fcurve.AutoSmoothing
	Strip         StripRange
}

// StripRange is a default strip frame range. Infinite bounds are left open.
type StripRange struct {
	FrameStart float64
	FrameEnd   float64
}

// Unbounded reports whether the range covers every frame.
func (r StripRange) Unbounded() bool {
	return math.IsInf(r.FrameStart, -1) && math.IsInf(r.FrameEnd, 1)
}

// DefaultPreferences returns the preferences used when no file is loaded.
func DefaultPreferences() Preferences {
	return Preferences{
		Keyframe:      fcurve.DefaultKeyframeSettings(),
		AutoSmoothing: fcurve.DefaultAutoSmoothing,
		Strip:         StripRange{FrameStart: math.Inf(-1), FrameEnd: math.Inf(1)},
	}
}

func LoadPreferences(name string) (Preferences, error) {
	spec, err := LoadSpec[PreferencesSpec](name)
	if err != nil {
		return Preferences{}, err
	}
	prefs, err := spec.Resolve()
	if err != nil {
		return Preferences{}, fmt.Errorf("presets: %s: %w", name, err)
	}
	return prefs, nil
}

// Resolve converts names to values; empty fields keep their defaults.
func (s PreferencesSpec) Resolve() (Preferences, error) {
	prefs := DefaultPreferences()
	var err error
	if s.Keyframe.KeyType != "" {
		if prefs.Keyframe.KeyType, err = lookup(keyTypes, "key_type", s.Keyframe.KeyType); err != nil {
			return prefs, err
		}
	}
	if s.Keyframe.Interpolation != "" {
		if prefs.Keyframe.Interpolation, err = lookup(interpolations, "interpolation", s.Keyframe.Interpolation); err != nil {
			return prefs, err
		}
	}
	if s.Keyframe.Handle != "" {
		if prefs.Keyframe.Handle, err = lookup(handles, "handle", s.Keyframe.Handle); err != nil {
			return prefs, err
		}
	}
	if s.AutoSmoothing != "" {
		if prefs.AutoSmoothing, err = lookup(smoothings, "auto_smoothing", s.AutoSmoothing); err != nil {
			return prefs, err
		}
	}
	if s.Strip.FrameStart != nil {
		prefs.Strip.FrameStart = *s.Strip.FrameStart
	}
	if s.Strip.FrameEnd != nil {
		prefs.Strip.FrameEnd = *s.Strip.FrameEnd
	}
	if r := prefs.Strip; math.IsNaN(r.FrameStart) || math.IsNaN(r.FrameEnd) || r.FrameStart > r.FrameEnd {
		return prefs, fmt.Errorf("invalid strip range [%v, %v]", r.FrameStart, r.FrameEnd)
	}
	return prefs, nil
}

var keyTypes = map[string]fcurve.KeyType{
	"keyframe":    fcurve.KeyTypeKeyframe,
	"extreme":     fcurve.KeyTypeExtreme,
	"breakdown":   fcurve.KeyTypeBreakdown,
	"jitter":      fcurve.KeyTypeJitter,
	"moving_hold": fcurve.KeyTypeMovingHold,
}

var interpolations = map[string]fcurve.Interpolation{
	"bezier":   fcurve.InterpBezier,
	"linear":   fcurve.InterpLinear,
	"constant": fcurve.InterpConstant,
}

var handles = map[string]fcurve.HandleType{
	"free":         fcurve.HandleFree,
	"auto":         fcurve.HandleAuto,
	"vector":       fcurve.HandleVector,
	"aligned":      fcurve.HandleAligned,
	"auto_clamped": fcurve.HandleAutoClamped,
}

var smoothings = map[string]fcurve.AutoSmoothing{
	"none":                    fcurve.SmoothNone,
	"continuous_acceleration": fcurve.SmoothContinuousAcceleration,
}

func lookup[T any](table map[string]T, field, name string) (T, error) {
	v, ok := table[strings.ToLower(name)]
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown %s %q", field, name)
	}
	return v, nil
}
