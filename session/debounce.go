package session

import (
	"sync"
	"time"
)

// Debouncer delays a trigger until input settles. At most one trigger is
// pending: scheduling a new one supersedes the previous, and a superseded or
// canceled trigger never runs, even if its timer already fired.
type Debouncer struct {
	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	pending func()
}

// Schedule runs trigger after delay unless something newer is scheduled
// first. The returned func cancels this trigger; it is a no-op once the
// trigger ran or was superseded.
func (d *Debouncer) Schedule(trigger func(), delay time.Duration) (cancel func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen
	d.pending = trigger
	d.timer = time.AfterFunc(delay, func() { d.fire(gen) })

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.gen == gen {
			d.stopLocked()
		}
	}
}

// Flush runs the pending trigger immediately on the calling goroutine.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	trigger := d.pending
	d.stopLocked()
	d.gen++
	d.mu.Unlock()

	if trigger == nil {
		return false
	}
	trigger()
	return true
}

// Pending reports whether a trigger is waiting.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Stop cancels the pending trigger.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	trigger := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	trigger()
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}
