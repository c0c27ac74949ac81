package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/offday/internal/logger"
)

// DefaultDebounce is how long a file must stay quiet before a change is reported.
const DefaultDebounce = 100 * time.Millisecond

// ChangeKind describes the type of file change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // written, created or renamed into place
	ChangeRemoved                    // gone when the debounce expired
)

func (k ChangeKind) String() string {
	if k == ChangeRemoved {
		return "removed"
	}
	return "modified"
}

// Change is a debounced event for the watched catalog file.
type Change struct {
	Kind ChangeKind
	File string
}

// Watcher reports changes to a single catalog file. The parent directory is watched
// so editors that save by renaming a temp file over the original are still seen.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Changes  <-chan Change

	changes chan Change
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for path. Call Start to begin receiving changes.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	return &Watcher{
		Path:     abs,
		Debounce: DefaultDebounce,
		Changes:  ch,
		changes:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start begins watching the file's directory.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

// Run calls fn for every change until ctx is cancelled or fn returns an error. The
// watcher is stopped before Run returns.
func (w *Watcher) Run(ctx context.Context, fn func(Change) error) error {
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case change := <-w.Changes:
			if err := fn(change); err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) loop() {
	defer close(w.done)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	var pending time.Time
	ticker := time.NewTicker(debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emit()
				}
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= debounce {
				w.emit()
				pending = time.Time{}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("File watch error", "path", w.Path, "error", err)
		}
	}
}

func (w *Watcher) emit() {
	change := Change{Kind: ChangeModified, File: w.Path}
	if _, err := os.Stat(w.Path); os.IsNotExist(err) {
		change.Kind = ChangeRemoved
	}

	select {
	case w.changes <- change:
	default:
		// A queued change already tells the consumer to re-read the file.
		logger.Debug("Dropping change, consumer is behind", "path", w.Path)
	}
}
