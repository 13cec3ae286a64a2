// Package watcher reloads the token file when it changes on disk.
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is the default debounce window. Editors often
// write a file in several steps; one reload per burst is enough.
const DefaultDebounceDuration = 250 * time.Millisecond

// Debouncer coalesces rapid Trigger calls into one invocation of its
// callback, run once the duration has passed without another Trigger.
type Debouncer struct {
	duration time.Duration
	fn       func()

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewDebouncer returns a debouncer for fn. A zero duration means
// DefaultDebounceDuration.
func NewDebouncer(duration time.Duration, fn func()) *Debouncer {
	if duration == 0 {
		duration = DefaultDebounceDuration
	}
	return &Debouncer{duration: duration, fn: fn}
}

// Trigger (re)starts the debounce window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		// A timer that already fired may lose the race with a newer
		// Trigger; only the latest one runs.
		current := seq == d.seq
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		if current {
			d.fn()
		}
	})
}

// Cancel drops any pending invocation.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Duration returns the debounce window.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
