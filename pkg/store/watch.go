package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventLayoutChanged indicates one of the layout documents changed and
	// running surfaces should reload their snapshot.
	EventLayoutChanged EventType = iota

	// EventStoreInvalidated signals a storage change that could not be
	// classified; callers should refresh their full view.
	EventStoreInvalidated
)

// Event is emitted by KV.Watch when underlying storage changes.
type Event struct {
	Type EventType
	Key  string
}

// watchSettle is how long writes must go quiet before queued notifications
// flush. Saving a layout touches several files back to back; consumers want
// one reload, not one per file.
const watchSettle = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. Callers should drain
// the returned channel to avoid blocking the watcher. The channel is closed
// once ctx is done or the watcher encounters an unrecoverable error.
func (s *kvStore) Watch(ctx context.Context) (<-chan Event, error) {
	if s.basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}

	w := &dirWatcher{
		fsw:   fsw,
		store: s,
		out:   make(chan Event, 64),
		seen:  make(map[string]struct{}),
	}
	if err := w.watchTree(s.basePath); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	go w.run(ctx)
	return w.out, nil
}

// dirWatcher follows every shard directory under the store base path and
// coalesces bursts of writes into single notifications.
type dirWatcher struct {
	fsw   *fsnotify.Watcher
	store *kvStore
	out   chan Event
	seen  map[string]struct{}

	pending map[Event]struct{}
	settle  *time.Timer
}

// watchTree registers base and every directory already below it.
func (w *dirWatcher) watchTree(base string) error {
	return filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("store: enumerate directories: %w", err)
		}
		if !d.IsDir() {
			return nil
		}
		return w.track(path)
	})
}

// track adds dir to the fsnotify set exactly once.
func (w *dirWatcher) track(dir string) error {
	dir = filepath.Clean(dir)
	if _, ok := w.seen[dir]; ok {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("store: watch %s: %w", dir, err)
	}
	w.seen[dir] = struct{}{}
	return nil
}

// run owns all watcher state, so coalescing needs no locks. Queued events
// flush once writes have settled for watchSettle.
func (w *dirWatcher) run(ctx context.Context) {
	defer close(w.out)
	defer func() { _ = w.fsw.Close() }()

	w.pending = make(map[Event]struct{})
	w.settle = time.NewTimer(watchSettle)
	if !w.settle.Stop() {
		select {
		case <-w.settle.C:
		default:
		}
	}
	defer w.settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.settle.C:
			w.flush()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watcher errors cannot be classified, so degrade to a full
			// refresh and keep running.
			w.queue(Event{Type: EventStoreInvalidated})
		case evt, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.observe(evt)
		}
	}
}

// observe classifies one filesystem event and queues the notification.
func (w *dirWatcher) observe(evt fsnotify.Event) {
	if evt.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
			// A new directory means new sharded keys may land under it.
			if err := w.track(evt.Name); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			w.queue(Event{Type: EventStoreInvalidated})
			return
		}
	}

	switch key := w.store.keyForPath(evt.Name); key {
	case KeyBubbles, KeySelected:
		w.queue(Event{Type: EventLayoutChanged, Key: key})
	default:
		w.queue(Event{Type: EventStoreInvalidated, Key: key})
	}
}

// queue records an event for the next flush. The settle timer starts on the
// first queued event of a burst and is not extended by later ones.
func (w *dirWatcher) queue(ev Event) {
	if len(w.pending) == 0 {
		w.settle.Reset(watchSettle)
	}
	w.pending[ev] = struct{}{}
}

// flush delivers queued events without blocking. A consumer that is not
// draining loses the notification; its next reload catches up.
func (w *dirWatcher) flush() {
	for ev := range w.pending {
		select {
		case w.out <- ev:
		default:
		}
	}
	clear(w.pending)
}

// keyForPath derives the logical key from a diskv path. Temp files diskv
// writes through do not map back to a key and come out empty.
func (s *kvStore) keyForPath(path string) string {
	rel, err := filepath.Rel(s.basePath, path)
	if err != nil {
		return ""
	}
	if rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	return strings.Join(parts, "-")
}
