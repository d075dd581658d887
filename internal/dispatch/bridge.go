// Package dispatch provides the handoff queue between worker goroutines
// and the single goroutine that owns all document state.
//
// Workers never touch documents. They compute a result, Post a callback,
// and terminate; the owning loop drains the queue on a fixed cadence and
// runs every callback synchronously. The queue is the only structure in
// the system mutated from more than one goroutine.
package dispatch

import (
	"sync"

	"github.com/slatepad/slate/internal/log"
)

// Bridge is an unbounded multi-producer, single-consumer FIFO of callbacks.
type Bridge struct {
	mu    sync.Mutex
	queue []func()
}

// NewBridge creates an empty bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Post enqueues a callback for the owning loop. Safe to call from any
// goroutine; never blocks. Callbacks posted from one goroutine are drained
// in the order posted.
func (b *Bridge) Post(fn func()) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	b.queue = append(b.queue, fn)
	b.mu.Unlock()
}

// Drain pops and invokes every currently queued callback in FIFO order.
// Must be called only from the owning loop. A panicking callback is logged
// and does not stop the drain. Callbacks posted while draining run on the
// next drain. Returns the number of callbacks invoked.
func (b *Bridge) Drain() int {
	b.mu.Lock()
	batch := b.queue
	b.queue = nil
	b.mu.Unlock()

	for _, fn := range batch {
		b.invoke(fn)
	}
	return len(batch)
}

// Len returns the number of queued callbacks.
func (b *Bridge) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

func (b *Bridge) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatDispatch, "dispatched callback panicked", "panic", r)
		}
	}()
	fn()
}
