package revision

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/talldan/revdiff/internal/core/logging"
	"github.com/talldan/revdiff/pkg/timing"
)

const watchDebounce = 250 * time.Millisecond

// Watcher watches the revisions directory and signals, debounced, when
// its contents change on disk. Consumers reload the revision history on
// each signal.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce *timing.Debouncer
	events   chan struct{}
	done     chan struct{}
	closer   sync.Once
}

// NewWatcher starts watching dir. Close releases the underlying watcher.
func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		events:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	w.debounce = timing.NewDebouncer(watchDebounce, w.signal)

	go w.run()
	return w, nil
}

// Events returns the debounced change-signal channel. It never closes;
// consumers stop reading after Close.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops watching and releases resources. Redundant calls are no-ops.
func (w *Watcher) Close() error {
	var err error
	w.closer.Do(func() {
		close(w.done)
		w.debounce.Stop()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	logger := logging.Component("revwatch")

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				logger.Debug().Str("file", event.Name).Msg("revision file changed")
				w.debounce.Call()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn().Err(err).Msg("watch error")
		}
	}
}

// signal delivers a coalesced change notification without blocking.
func (w *Watcher) signal() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}
