// Package debounce provides the per-key trailing-edge timer used to coalesce
// bursts: cache snapshot writes after store mutations and realtime-triggered
// reloads both go through it.
package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces Trigger calls per key: the function fires once, a fixed
// window after the most recent trigger for that key. Safe for concurrent use.
type Debouncer struct {
	window time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

func New(window time.Duration) *Debouncer {
	if window <= 0 {
		window = time.Second
	}
	return &Debouncer{window: window, timers: make(map[string]*time.Timer)}
}

// Trigger schedules fn to run after the window elapses with no further
// trigger for key. A trigger inside the window replaces the pending fn and
// restarts the timer.
func (d *Debouncer) Trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		if d.closed {
			d.mu.Unlock()
			return
		}
		delete(d.timers, key)
		d.mu.Unlock()
		fn()
	})
}

// Stop cancels all pending timers. Functions that have not started running
// by the time Stop acquires the lock never fire.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	for k, t := range d.timers {
		t.Stop()
		delete(d.timers, k)
	}
}
