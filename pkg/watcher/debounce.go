package watcher

import (
	"sync"
	"time"
)

// debouncer coalesces a burst of triggers into one callback, fired after
// the window elapses without a new trigger. A zero window fires inline.
type debouncer struct {
	window time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window}
}

// trigger schedules fn after the window, resetting any pending schedule.
// The latest fn wins.
func (d *debouncer) trigger(fn func()) {
	if d.window <= 0 {
		fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

// cancel drops any pending callback.
func (d *debouncer) cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
