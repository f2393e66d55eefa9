package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/animrig/presets"
)

func TestRunDumpsEmbeddedPreset(t *testing.T) {
	var buf bytes.Buffer
	if err := run(&buf, "walk_cycle", "preferences"); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"animation WalkCycle",
		"users=2",
		`layer 1 "Additive"`,
		"(active)",
		"strip 0 keyframe [1, 24]",
		"location[2] keys=5",
		`output 2 "MainCamera"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunMissingPreset(t *testing.T) {
	var buf bytes.Buffer
	if err := run(&buf, "nope", "preferences"); err == nil {
		t.Fatalf("expected error for missing preset")
	}
}

func TestModTimesSkipsUntouchedPresets(t *testing.T) {
	dir := t.TempDir()
	prev := presets.Dir
	presets.Dir = dir
	t.Cleanup(func() { presets.Dir = prev })

	path := filepath.Join(dir, "walk_cycle.yaml")
	if err := os.WriteFile(path, []byte("name: Walk\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	seen := newModTimes("walk_cycle", "preferences")

	if seen.changed("walk_cycle.yaml") {
		t.Fatalf("untouched preset reported as changed")
	}
	if seen.changed("preferences.yaml") {
		t.Fatalf("embedded-only preset reported as changed")
	}

	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if !seen.changed("walk_cycle.yaml") {
		t.Fatalf("touched preset not reported")
	}
	if seen.changed("walk_cycle.yaml") {
		t.Fatalf("second check without a change reported a change")
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !seen.changed("walk_cycle.yaml") {
		t.Fatalf("removed preset not reported")
	}
}
