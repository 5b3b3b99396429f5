package search

import (
	"sync"
	"time"
)

// DefaultDebounce is how long input must stay unchanged before it is committed.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer delays committing a changing string until it has been stable for
// the configured delay. At most one commit is pending at any time.
type Debouncer struct {
	delay  time.Duration
	commit func(string)

	mu         sync.Mutex
	timer      *time.Timer
	gen        uint64
	pending    string
	hasPending bool
	stopped    bool
}

// NewDebouncer returns a Debouncer that calls commit on its own goroutine.
// A non-positive delay falls back to DefaultDebounce.
func NewDebouncer(delay time.Duration, commit func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, commit: commit}
}

// Trigger replaces the pending value and restarts the timer.
func (d *Debouncer) Trigger(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.resetLocked()
	d.pending = value
	d.hasPending = true
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush commits the pending value immediately on the calling goroutine.
// It reports whether anything was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.stopped || !d.hasPending {
		d.mu.Unlock()
		return false
	}
	value := d.pending
	d.resetLocked()
	d.mu.Unlock()

	d.commit(value)
	return true
}

// Cancel drops the pending value without committing it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
}

// Stop cancels any pending commit and ignores later triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
	d.stopped = true
}

// Pending returns the value waiting to be committed.
func (d *Debouncer) Pending() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending, d.hasPending
}

// resetLocked invalidates the current timer. Bumping gen also covers a
// callback that already fired and is blocked on mu.
func (d *Debouncer) resetLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = ""
	d.hasPending = false
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.hasPending || d.stopped {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.timer = nil
	d.pending = ""
	d.hasPending = false
	d.mu.Unlock()

	d.commit(value)
}
