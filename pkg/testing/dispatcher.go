package testing

import (
	"sync"
	"testing"
	"time"
)

// DefaultWaitTimeout bounds WaitFor.
const DefaultWaitTimeout = 2 * time.Second

// ManualDispatcher queues callbacks instead of running them, standing in for
// a UI thread. Tests run the queue explicitly with Flush.
// All methods are safe for concurrent use.
type ManualDispatcher struct {
	mu     sync.Mutex
	queue  []func()
	notify chan struct{}
}

// NewManualDispatcher returns an empty dispatcher.
func NewManualDispatcher() *ManualDispatcher {
	return &ManualDispatcher{notify: make(chan struct{}, 1)}
}

// Dispatch enqueues callback.
func (d *ManualDispatcher) Dispatch(callback func()) {
	if callback == nil {
		return
	}
	d.mu.Lock()
	d.queue = append(d.queue, callback)
	d.mu.Unlock()

	select {
	case d.notify <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued callbacks.
func (d *ManualDispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Flush runs queued callbacks on the calling goroutine, including ones
// enqueued while flushing, and returns how many ran.
func (d *ManualDispatcher) Flush() int {
	ran := 0
	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return ran
		}
		cb := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()

		cb()
		ran++
	}
}

// WaitFor blocks until at least n callbacks are queued, failing t after
// DefaultWaitTimeout.
func (d *ManualDispatcher) WaitFor(t testing.TB, n int) {
	t.Helper()
	deadline := time.NewTimer(DefaultWaitTimeout)
	defer deadline.Stop()
	for d.Pending() < n {
		select {
		case <-d.notify:
		case <-deadline.C:
			t.Fatalf("timed out waiting for %d dispatched callbacks, have %d", n, d.Pending())
			return
		}
	}
}
