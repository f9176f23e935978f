// Package watcher monitors the on-disk dataset file backing an offline
// browse session and reports coalesced change notifications. fsnotify is
// used when available, with a stat-polling fallback for filesystems that
// do not deliver events reliably.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces rapid write bursts (editors, atomic saves)
// into one notification.
const DefaultDebounce = 200 * time.Millisecond

// DefaultPollInterval is the stat interval for fallback mode.
const DefaultPollInterval = 2 * time.Second

// ForcePollEnvVar forces polling mode when set truthy, for network mounts
// where fsnotify reports nothing.
const ForcePollEnvVar = "GUILDVIEW_FORCE_POLL"

// Common errors.
var (
	ErrFileRemoved    = errors.New("watched file was removed")
	ErrPermission     = errors.New("permission denied")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the notification coalescing window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithPollInterval sets the stat interval for fallback mode.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) {
		w.pollInterval = d
	}
}

// WithOnChange sets the callback invoked after a coalesced change.
func WithOnChange(fn func()) Option {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

// WithOnError sets the callback invoked on watch errors.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// WithForcePoll forces polling mode even if fsnotify is available.
func WithForcePoll(force bool) Option {
	return func(w *Watcher) {
		w.forcePoll = force
	}
}

// Watcher monitors one file for changes.
type Watcher struct {
	path         string
	debounce     time.Duration
	pollInterval time.Duration
	onChange     func()
	onError      func(error)
	forcePoll    bool

	fsWatcher   *fsnotify.Watcher
	debouncer   *debouncer
	useFallback bool
	lastMtime   time.Time
	lastSize    int64

	ctx      context.Context
	cancel   context.CancelFunc
	started  bool
	mu       sync.RWMutex
	changeCh chan struct{}
}

// New creates a watcher for the given path. Start must be called before
// any notification is delivered.
func New(path string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:         absPath,
		debounce:     DefaultDebounce,
		pollInterval: DefaultPollInterval,
		onChange:     func() {},
		onError:      func(error) {},
		changeCh:     make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(w)
	}

	w.debouncer = newDebouncer(w.debounce)

	return w, nil
}

// Start begins watching. The file not existing yet is fine; its creation
// counts as the first change.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}

	w.ctx, w.cancel = context.WithCancel(context.Background())

	forcePoll := w.forcePoll || envBool(ForcePollEnvVar)
	w.useFallback = forcePoll

	info, err := os.Stat(w.path)
	if err != nil {
		if os.IsPermission(err) {
			return ErrPermission
		}
		w.lastMtime = time.Time{}
		w.lastSize = 0
	} else {
		w.lastMtime = info.ModTime()
		w.lastSize = info.Size()
	}

	if !forcePoll {
		fsw, err := fsnotify.NewWatcher()
		if err == nil {
			// Watch the containing directory; atomic rename-into-place
			// saves never fire events on the file itself.
			dir := filepath.Dir(w.path)
			if err := fsw.Add(dir); err != nil {
				fsw.Close()
				w.useFallback = true
			} else {
				w.fsWatcher = fsw
				go w.watchFsnotify()
			}
		} else {
			w.useFallback = true
		}
	}

	if w.useFallback {
		go w.watchPolling()
	}

	w.started = true
	return nil
}

// Stop stops watching. The change channel is intentionally left open:
// closing it would race with notifyChange, and Stop only runs at
// program shutdown.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}

	if w.cancel != nil {
		w.cancel()
	}

	if w.fsWatcher != nil {
		w.fsWatcher.Close()
		w.fsWatcher = nil
	}

	w.debouncer.cancel()
	w.started = false
}

// IsPolling reports whether the watcher runs in polling mode.
func (w *Watcher) IsPolling() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.useFallback
}

// IsStarted reports whether the watcher is running.
func (w *Watcher) IsStarted() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.started
}

// Changed returns a channel receiving one token per coalesced change, as
// an alternative to the OnChange callback.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changeCh
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

func envBool(name string) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return false
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// watchFsnotify consumes fsnotify events for the watched file.
func (w *Watcher) watchFsnotify() {
	targetFile := filepath.Base(w.path)

	// Capture channel references so Stop clearing fsWatcher cannot race.
	w.mu.RLock()
	if w.fsWatcher == nil {
		w.mu.RUnlock()
		return
	}
	events := w.fsWatcher.Events
	errs := w.fsWatcher.Errors
	w.mu.RUnlock()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != targetFile {
				continue
			}

			switch {
			case event.Op&fsnotify.Remove != 0:
				w.onError(ErrFileRemoved)

			case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				w.debouncer.trigger(w.notifyChange)
			}

		case err, ok := <-errs:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

// watchPolling stats the file on an interval and compares mtime and size.
func (w *Watcher) watchPolling() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			info, err := os.Stat(w.path)
			if err != nil {
				if os.IsNotExist(err) {
					w.mu.RLock()
					hadFile := !w.lastMtime.IsZero()
					w.mu.RUnlock()
					if hadFile {
						w.onError(ErrFileRemoved)
					}
				} else if os.IsPermission(err) {
					w.onError(ErrPermission)
				} else {
					w.onError(err)
				}
				continue
			}

			w.mu.Lock()
			changed := info.ModTime().After(w.lastMtime) || info.Size() != w.lastSize
			if changed {
				w.lastMtime = info.ModTime()
				w.lastSize = info.Size()
			}
			w.mu.Unlock()

			if changed {
				w.debouncer.trigger(w.notifyChange)
			}
		}
	}
}

// notifyChange invokes the callback and signals the change channel.
func (w *Watcher) notifyChange() {
	w.mu.RLock()
	started := w.started
	w.mu.RUnlock()

	// Best-effort guard against callbacks after Stop; the remaining race
	// window is harmless since reload callbacks are idempotent.
	if !started {
		return
	}

	w.onChange()

	select {
	case w.changeCh <- struct{}{}:
	default:
	}
}
