package presets

import (
	"fmt"

	"github.com/milk9111/animrig/anim"
	"github.com/milk9111/animrig/ecs"
	"github.com/milk9111/animrig/fcurve"
)

var mixModes = map[string]anim.MixMode{
	"replace":  anim.MixReplace,
	"offset":   anim.MixOffset,
	"add":      anim.MixAdd,
	"subtract": anim.MixSubtract,
	"multiply": anim.MixMultiply,
}

// Built is the result of Build.
type Built struct {
	Animation *anim.Animation
	Entities  map[string]ecs.Entity
}

// Build creates the preset's entities in w, binds them to a new animation and
// fills its layers. On error every entity it created is unbound and destroyed
// again.
func Build(spec *AnimationSpec, w *ecs.World, prefs Preferences) (built *Built, err error) {
	if spec == nil || w == nil {
		return nil, fmt.Errorf("presets: build: nil spec or world")
	}

	a := anim.New(spec.Name)
	var created []ecs.Entity
	defer func() {
		if err == nil {
			return
		}
		for _, e := range created {
			w.DestroyEntity(e)
		}
		built = nil
	}()

	ents := make(map[string]ecs.Entity, len(spec.Entities))
	for _, es := range spec.Entities {
		t, ok := anim.ParseIDType(es.Type)
		if !ok {
			return nil, fmt.Errorf("presets: entity %q: unknown ID type %q", es.Name, es.Type)
		}
		if _, dup := ents[es.Name]; dup {
			return nil, fmt.Errorf("presets: duplicate entity %q", es.Name)
		}
		e := w.CreateEntity(t, es.Name)
		created = append(created, e)
		if !w.AssignAnimation(e, a) {
			return nil, fmt.Errorf("presets: entity %q of type %s cannot be animated", es.Name, es.Type)
		}
		ents[es.Name] = e
	}

	for _, ls := range spec.Layers {
		if err := buildLayer(a, ls, w, ents, prefs); err != nil {
			return nil, fmt.Errorf("presets: layer %q: %w", ls.Name, err)
		}
	}
	return &Built{Animation: a, Entities: ents}, nil
}

func buildLayer(a *anim.Animation, ls LayerSpec, w *ecs.World, ents map[string]ecs.Entity, prefs Preferences) error {
	layer := a.LayerAdd(ls.Name)
	if ls.Influence != nil {
		layer.Influence = *ls.Influence
	}
	if ls.MixMode != "" {
		mode, err := lookup(mixModes, "mix_mode", ls.MixMode)
		if err != nil {
			return err
		}
		layer.MixMode = mode
	}
	if ls.Muted {
		layer.Flags |= anim.LayerMuted
	}

	for i, ss := range ls.Strips {
		st, err := anim.ParseStripType(ss.Type)
		if err != nil {
			return fmt.Errorf("strip %d: %w", i, err)
		}
		strip := layer.StripAdd(st)
		r := prefs.Strip
		if ss.FrameStart != nil {
			r.FrameStart = *ss.FrameStart
		}
		if ss.FrameEnd != nil {
			r.FrameEnd = *ss.FrameEnd
		}
		if ss.FrameStart != nil || ss.FrameEnd != nil || !r.Unbounded() {
			if err := strip.Resize(r.FrameStart, r.FrameEnd); err != nil {
				return fmt.Errorf("strip %d: %w", i, err)
			}
		}

		ks, ok := strip.AsKeyframe()
		if !ok {
			continue
		}
		ks.NewCurveSmoothing = prefs.AutoSmoothing
		if err := fillChannels(ks, ss.Channels, w, ents, prefs); err != nil {
			return fmt.Errorf("strip %d: %w", i, err)
		}
	}
	return nil
}

func fillChannels(ks *anim.KeyframeStrip, channels []ChannelSpec, w *ecs.World, ents map[string]ecs.Entity, prefs Preferences) error {
	for _, cs := range channels {
		e, ok := ents[cs.Entity]
		if !ok {
			return fmt.Errorf("channels reference unknown entity %q", cs.Entity)
		}
		out := ecs.ResolveOutput(w, e)
		if out == nil {
			return fmt.Errorf("entity %q has no output", cs.Entity)
		}

		for _, curve := range cs.Curves {
			settings := prefs.Keyframe
			if curve.Interpolation != "" {
				ipo, err := lookup(interpolations, "interpolation", curve.Interpolation)
				if err != nil {
					return err
				}
				settings.Interpolation = ipo
			}
			if len(curve.Keys) == 0 {
				ks.FCurveFindOrCreate(out, curve.Path, curve.Index)
				continue
			}
			for _, key := range curve.Keys {
				pos := fcurve.Vec2{X: key.Frame, Y: key.Value}
				if ks.KeyframeInsert(out, curve.Path, curve.Index, pos, settings, 0) == nil {
					return fmt.Errorf("%s %s[%d]: key at frame %v rejected", cs.Entity, curve.Path, curve.Index, key.Frame)
				}
			}
		}
	}
	return nil
}
