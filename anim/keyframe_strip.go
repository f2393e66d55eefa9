package anim

import (
	"fmt"
	"log"

	"github.com/milk9111/animrig/fcurve"
)

// ChannelsForOutput holds the curves of one output within one keyframe strip.
type ChannelsForOutput struct {
	// OutputStableIndex refers to the output by value; it is resolved through
	// the owning Animation, never held as a pointer.
	OutputStableIndex int32

	fcurves []*fcurve.FCurve
}

// FCurves returns the curves in creation order. The slice must not be modified.
func (c *ChannelsForOutput) FCurves() []*fcurve.FCurve {
	if c == nil {
		return nil
	}
	return c.fcurves
}

// FCurve returns the curve at index.
func (c *ChannelsForOutput) FCurve(index int) *fcurve.FCurve {
	return c.fcurves[index]
}

// KeyframeStrip is the strip variant that stores keyed curves per output.
type KeyframeStrip struct {
	// NewCurveSmoothing is the auto smoothing given to curves created here.
	NewCurveSmoothing fcurve.AutoSmoothing

	channels        []*ChannelsForOutput
	channelsByIndex map[int32]*ChannelsForOutput
}

func newKeyframeStrip() *KeyframeStrip {
	return &KeyframeStrip{
		NewCurveSmoothing: fcurve.DefaultAutoSmoothing,
		channelsByIndex:   make(map[int32]*ChannelsForOutput),
	}
}

func (k *KeyframeStrip) StripType() StripType { return StripTypeKeyframe }

func (k *KeyframeStrip) free() {
	k.channels = nil
	k.channelsByIndex = nil
}

// ChannelsForOutput returns all channel groups. Order carries no meaning.
func (k *KeyframeStrip) ChannelsForOutput() []*ChannelsForOutput {
	if k == nil {
		return nil
	}
	return k.channels
}

// ChansForOut returns the channels for the output with stableIndex, or nil.
func (k *KeyframeStrip) ChansForOut(stableIndex int32) *ChannelsForOutput {
	if k == nil {
		return nil
	}
	return k.channelsByIndex[stableIndex]
}

// ChansForOutput returns the channels for out, or nil.
func (k *KeyframeStrip) ChansForOutput(out *Output) *ChannelsForOutput {
	return k.ChansForOut(out.StableIndex)
}

// ChansForOutAdd registers a channel group for out. The output must not have
// one in this strip yet.
func (k *KeyframeStrip) ChansForOutAdd(out *Output) *ChannelsForOutput {
	if k.ChansForOutput(out) != nil {
		panic(fmt.Sprintf("anim: output %d already has channels in this strip", out.StableIndex))
	}
	channels := &ChannelsForOutput{OutputStableIndex: out.StableIndex}
	k.channels = append(k.channels, channels)
	if k.channelsByIndex == nil {
		k.channelsByIndex = make(map[int32]*ChannelsForOutput)
	}
	k.channelsByIndex[out.StableIndex] = channels
	return channels
}

// FCurveFind returns the curve animating rnaPath[arrayIndex] for out, or nil.
func (k *KeyframeStrip) FCurveFind(out *Output, rnaPath string, arrayIndex int) *fcurve.FCurve {
	channels := k.ChansForOutput(out)
	if channels == nil {
		return nil
	}
	for _, fcu := range channels.fcurves {
		if fcu.ArrayIndex != arrayIndex {
			continue
		}
		// First byte before the full compare.
		if len(rnaPath) > 0 && len(fcu.RNAPath) > 0 && fcu.RNAPath[0] != rnaPath[0] {
			continue
		}
		if fcu.RNAPath == rnaPath {
			return fcu
		}
	}
	return nil
}

// FCurveFindOrCreate returns the curve for rnaPath[arrayIndex], creating it
// and the output's channel group when missing. The first curve of an output
// is made active.
func (k *KeyframeStrip) FCurveFindOrCreate(out *Output, rnaPath string, arrayIndex int) *fcurve.FCurve {
	if fcu := k.FCurveFind(out, rnaPath, arrayIndex); fcu != nil {
		return fcu
	}

	fcu := fcurve.New(rnaPath, arrayIndex)
	fcu.Flag = fcurve.FlagVisible | fcurve.FlagSelected
	fcu.AutoSmoothing = k.NewCurveSmoothing

	channels := k.ChansForOutput(out)
	if channels == nil {
		channels = k.ChansForOutAdd(out)
	}
	if len(channels.fcurves) == 0 {
		fcu.Flag |= fcurve.FlagActive
	}
	channels.fcurves = append(channels.fcurves, fcu)
	return fcu
}

// KeyframeInsert keys rnaPath[arrayIndex] of out at timeValue. It returns nil
// and logs why when the curve refuses the key; a curve or channel group
// created for the rejected key is dropped again.
func (k *KeyframeStrip) KeyframeInsert(
	out *Output,
	rnaPath string,
	arrayIndex int,
	timeValue fcurve.Vec2,
	settings fcurve.KeyframeSettings,
	flags fcurve.InsertKeyFlags,
) *fcurve.FCurve {
	hadChannels := k.ChansForOutput(out) != nil
	fcu := k.FCurveFind(out, rnaPath, arrayIndex)
	created := fcu == nil
	if created {
		fcu = k.FCurveFindOrCreate(out, rnaPath, arrayIndex)
	}

	if !fcu.IsKeyframable() {
		log.Printf("anim: FCurve %s[%d] for output %q doesn't allow inserting keys", rnaPath, arrayIndex, out.Fallback)
		if created {
			k.dropCurve(out, fcu, hadChannels)
		}
		return nil
	}

	if idx := fcu.InsertVert(timeValue, settings, flags); idx < 0 {
		log.Printf("anim: could not insert key into FCurve %s[%d] for output %q", rnaPath, arrayIndex, out.Fallback)
		if created {
			k.dropCurve(out, fcu, hadChannels)
		}
		return nil
	}
	return fcu
}

// dropCurve undoes FCurveFindOrCreate for a curve that was just appended.
func (k *KeyframeStrip) dropCurve(out *Output, fcu *fcurve.FCurve, keepChannels bool) {
	channels := k.ChansForOutput(out)
	if channels == nil {
		return
	}
	if n := len(channels.fcurves); n > 0 && channels.fcurves[n-1] == fcu {
		channels.fcurves[n-1] = nil
		channels.fcurves = channels.fcurves[:n-1]
	}
	if keepChannels {
		return
	}
	if n := len(k.channels); n > 0 && k.channels[n-1] == channels {
		k.channels[n-1] = nil
		k.channels = k.channels[:n-1]
	}
	delete(k.channelsByIndex, out.StableIndex)
}
