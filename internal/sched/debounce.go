// Package sched provides keyed debounce timers: repeated triggers under the
// same key collapse into a single delayed invocation after a quiet period.
package sched

import (
	"strings"
	"sync"
	"time"

	"github.com/slatepad/slate/internal/dispatch"
	"github.com/slatepad/slate/internal/log"
)

// entry is one live timer. The generation guards against a timer that
// fires while a reschedule holds the lock: only the current generation may
// deliver.
type entry struct {
	timer *time.Timer
	gen   uint64
}

// Debouncer coalesces triggers keyed by (document id, purpose) strings.
// At most one live timer exists per key. Timers expire on the runtime's
// timer goroutine, but callbacks are handed to the dispatch bridge so they
// always run on the owning loop.
type Debouncer struct {
	bridge *dispatch.Bridge

	mu      sync.Mutex
	gen     uint64
	pending map[string]entry
}

// New creates a debouncer delivering callbacks through bridge. A nil
// bridge runs callbacks directly on the timer goroutine; only tests
// should do that.
func New(bridge *dispatch.Bridge) *Debouncer {
	return &Debouncer{
		bridge:  bridge,
		pending: make(map[string]entry),
	}
}

// Schedule installs fn to run after delay of quiescence under key. Any
// timer already pending for key is cancelled first; a burst of Schedule
// calls inside delay therefore yields exactly one invocation.
func (d *Debouncer) Schedule(key string, delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.pending[key] = entry{
		gen: gen,
		timer: time.AfterFunc(delay, func() {
			d.fire(key, gen, fn)
		}),
	}
}

// Cancel removes a pending timer for key without firing it.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
		delete(d.pending, key)
	}
}

// CancelPrefix cancels every pending timer whose key starts with prefix.
// Used at document teardown to clear all of that document's purposes.
func (d *Debouncer) CancelPrefix(prefix string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, prev := range d.pending {
		if strings.HasPrefix(key, prefix) {
			prev.timer.Stop()
			delete(d.pending, key)
		}
	}
}

// CancelAll clears all pending timers without firing them.
func (d *Debouncer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, prev := range d.pending {
		prev.timer.Stop()
		delete(d.pending, key)
	}
}

// Pending returns the number of live timers.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Has reports whether a timer is pending for key.
func (d *Debouncer) Has(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[key]
	return ok
}

func (d *Debouncer) fire(key string, gen uint64, fn func()) {
	d.mu.Lock()
	cur, ok := d.pending[key]
	if !ok || cur.gen != gen {
		// Rescheduled or cancelled between expiry and delivery.
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	log.Debug(log.CatSched, "debounce fired", "key", key)
	if d.bridge != nil {
		d.bridge.Post(fn)
		return
	}
	fn()
}
