package corpus

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind describes the type of file change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // page or manifest written or created
	ChangeRemoved                    // page or manifest deleted or renamed away
)

func (k ChangeKind) String() string {
	if k == ChangeRemoved {
		return "removed"
	}
	return "modified"
}

// Change is a debounced change to one corpus file.
type Change struct {
	Kind ChangeKind
	File string
}

// Watcher monitors a corpus directory for page and manifest changes.
type Watcher struct {
	Dir      string
	Changes  <-chan Change // Read-only external channel
	Debounce time.Duration

	changes chan Change // Internal write channel
	stop    chan struct{}
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for dir. Call Start to begin receiving
// changes and Stop to release it.
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	return &Watcher{
		Dir:      dir,
		Changes:  ch,
		Debounce: 100 * time.Millisecond,
		changes:  ch,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start begins watching the directory.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel. Changes not yet read
// are discarded, so Stop never waits on the consumer.
func (w *Watcher) Stop() {
	close(w.stop)
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Editors write files in bursts; coalesce per file.
	pending := make(map[string]pendingChange)
	ticker := time.NewTicker(w.Debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				for file, p := range pending {
					if !w.emit(Change{Kind: p.kind, File: file}) {
						return
					}
				}
				return
			}
			if !isCorpusFile(event.Name) {
				continue
			}
			switch {
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				pending[event.Name] = pendingChange{kind: ChangeRemoved, at: time.Now()}
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				pending[event.Name] = pendingChange{kind: ChangeModified, at: time.Now()}
			}

		case now := <-ticker.C:
			for file, p := range pending {
				if now.Sub(p.at) >= w.Debounce {
					if !w.emit(Change{Kind: p.kind, File: file}) {
						return
					}
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next event re-syncs.
		}
	}
}

// emit delivers c unless the watcher is stopping. It reports whether the
// loop should keep running.
func (w *Watcher) emit(c Change) bool {
	select {
	case w.changes <- c:
		return true
	case <-w.stop:
		return false
	}
}

type pendingChange struct {
	kind ChangeKind
	at   time.Time
}

func isCorpusFile(name string) bool {
	base := filepath.Base(name)
	return IsPageFile(base) || strings.EqualFold(filepath.Ext(base), ".toml")
}
