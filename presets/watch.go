package presets

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports preset files changed in one directory. Events carries the
// preset name with its extension, e.g. "walk_cycle.yaml", ready for Load.
type Watcher struct {
	Events chan string
	Errors chan error

	fsw     *fsnotify.Watcher
	dir     string
	only    map[string]bool
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches dir. When names are given only those presets are
// reported; names are matched the way Load resolves them.
func NewWatcher(dir string, names ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		fsw:     fsw,
		dir:     dir,
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	if len(names) > 0 {
		w.only = make(map[string]bool, len(names))
		for _, name := range names {
			w.only[cleanPresetPath(name)] = true
		}
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fsw.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// presetName maps a file event to the preset it touches, or "".
func (w *Watcher) presetName(path string) string {
	if !isPresetFile(path) || filepath.Dir(path) != filepath.Clean(w.dir) {
		return ""
	}
	name := filepath.Base(path)
	if w.only != nil && !w.only[name] {
		return ""
	}
	return name
}

func (w *Watcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			name := w.presetName(event.Name)
			if name == "" {
				continue
			}
			now := time.Now()
			if t, ok := last[name]; ok && now.Sub(t) < watchDebounce {
				continue
			}
			last[name] = now
			select {
			case w.Events <- name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isPresetFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
