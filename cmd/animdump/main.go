package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/milk9111/animrig/anim"
	"github.com/milk9111/animrig/ecs"
	"github.com/milk9111/animrig/presets"
)

func main() {
	presetName := flag.String("preset", "walk_cycle", "preset name in presets/ (basename, .yaml optional)")
	prefsName := flag.String("prefs", "preferences", "preferences preset name")
	dir := flag.String("dir", presets.Dir, "directory checked for presets before the embedded copies")
	watch := flag.Bool("watch", false, "rebuild whenever a preset in -dir changes")
	flag.Parse()

	presets.Dir = *dir

	if err := run(os.Stdout, *presetName, *prefsName); err != nil {
		log.Fatal(err)
	}
	if !*watch {
		return
	}

	w, err := presets.NewWatcher(*dir, *presetName, *prefsName)
	if err != nil {
		log.Fatalf("watch %s: %v", *dir, err)
	}
	defer w.Close()

	seen := newModTimes(*presetName, *prefsName)
	log.Printf("watching %s for changes", *dir)
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return
			}
			if !seen.changed(name) {
				continue
			}
			log.Printf("reloading after change to %s", name)
			if err := run(os.Stdout, *presetName, *prefsName); err != nil {
				log.Printf("reload failed: %v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}

// modTimes remembers the on-disk mod time of each preset last loaded, so
// events that leave a file untouched do not trigger a rebuild.
type modTimes map[string]time.Time

func newModTimes(names ...string) modTimes {
	m := make(modTimes, len(names))
	for _, name := range names {
		m.changed(name)
	}
	return m
}

// changed records the current mod time of name and reports whether it differs
// from the last one seen. Removing a file that was on disk counts as a change.
func (m modTimes) changed(name string) bool {
	key := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	mt, ok := presets.ModTime(name)
	if !ok {
		_, had := m[key]
		delete(m, key)
		return had
	}
	if prev, ok := m[key]; ok && prev.Equal(mt) {
		return false
	}
	m[key] = mt
	return true
}

func run(out io.Writer, presetName, prefsName string) error {
	prefs, err := presets.LoadPreferences(prefsName)
	if err != nil {
		return err
	}
	spec, err := presets.LoadAnimationSpec(presetName)
	if err != nil {
		return err
	}
	w := ecs.NewWorld()
	built, err := presets.Build(spec, w, prefs)
	if err != nil {
		return err
	}
	dump(out, w, built.Animation)
	return nil
}

func dump(out io.Writer, w *ecs.World, a *anim.Animation) {
	fmt.Fprintf(out, "animation %s users=%d\n", a, a.Users())

	for _, e := range ecs.BoundTo(w, a) {
		adt := w.AnimData(e)
		fmt.Fprintf(out, "  entity %s %s%s -> output %d (%q)\n",
			e, w.IDType(e), w.Name(e), adt.OutputStableIndex, adt.OutputFallback)
	}

	for li, layer := range a.Layers() {
		active := ""
		if li == a.ActiveLayerIndex() {
			active = " (active)"
		}
		fmt.Fprintf(out, "  layer %d %q influence=%.2f mix=%d%s\n", li, layer.Name, layer.Influence, layer.MixMode, active)

		for si, strip := range layer.Strips() {
			fmt.Fprintf(out, "    strip %d %s [%g, %g]\n", si, strip.Type(), strip.FrameStart, strip.FrameEnd)
			ks, ok := strip.AsKeyframe()
			if !ok {
				continue
			}
			for _, chans := range ks.ChannelsForOutput() {
				name := "<removed>"
				if o := a.OutputForStableIndex(chans.OutputStableIndex); o != nil {
					name = o.Fallback
				}
				fmt.Fprintf(out, "      output %d %q\n", chans.OutputStableIndex, name)
				for _, fcu := range chans.FCurves() {
					fmt.Fprintf(out, "        %s[%d] keys=%d\n", fcu.RNAPath, fcu.ArrayIndex, len(fcu.Keys))
				}
			}
		}
	}
}
