package clock

import (
	"sync"
	"time"
)

// Waker is the wake-at primitive behind boundary scheduling: one pending
// callback at a time, where scheduling always cancels the previous wake
// first. This keeps reload/refresh paths idempotent - a stale boundary
// timer can never fire twice.
type Waker struct {
	mu    sync.Mutex
	timer *time.Timer
}

// WakeAfter cancels any pending wake and schedules fn after the delay.
func (w *Waker) WakeAfter(d time.Duration, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(d, fn)
}

// Cancel stops a pending wake, if any.
func (w *Waker) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
