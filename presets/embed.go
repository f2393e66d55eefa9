package presets

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var PresetsFS embed.FS

// Dir is the on-disk directory checked before the embedded presets.
var Dir = "presets"

// Load reads a preset, preferring the copy on disk.
func Load(name string) ([]byte, error) {
	clean := cleanPresetPath(name)
	if data, err := os.ReadFile(diskPresetPath(clean)); err == nil {
		return data, nil
	}
	return PresetsFS.ReadFile(clean)
}

// ModTime returns the modification time of the on-disk copy of a preset.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPresetPath(cleanPresetPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPresetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		s = after
	}
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

func diskPresetPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
