package form

import (
	"sync"
	"time"
)

// Notifier coalesces rapid section updates into a single trailing-edge
// callback.  Every Notify within the window replaces the pending payload and
// restarts the timer, so N updates in quick succession produce exactly one
// callback carrying the latest payload.  Stop cancels a pending timer
// without firing, which keeps a closing draft session from calling into a
// manager that is tearing down.
type Notifier struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(map[string]any)
	timer   *time.Timer
	pending map[string]any
	stopped bool
}

// NewNotifier builds a Notifier firing fn after delay of quiet time.
func NewNotifier(delay time.Duration, fn func(map[string]any)) *Notifier {
	return &Notifier{delay: delay, fn: fn}
}

// Notify records data as the latest pending payload and (re)starts the
// trailing-edge timer.  Last write within the window wins.
func (n *Notifier) Notify(data map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.stopped {
		return
	}
	n.pending = data
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.delay, n.fire)
}

func (n *Notifier) fire() {
	n.mu.Lock()
	data := n.pending
	n.pending = nil
	n.timer = nil
	stopped := n.stopped
	n.mu.Unlock()
	// Invoke outside the lock so the callback may call Notify again.
	if data != nil && !stopped {
		n.fn(data)
	}
}

// Flush fires any pending payload immediately, cancelling the timer.  The
// submission path uses it so a submit never races a half-scheduled write.
func (n *Notifier) Flush() {
	n.mu.Lock()
	data := n.pending
	n.pending = nil
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	stopped := n.stopped
	n.mu.Unlock()
	if data != nil && !stopped {
		n.fn(data)
	}
}

// Stop cancels any pending timer and discards the pending payload.  Further
// Notify calls become no-ops.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopped = true
	n.pending = nil
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
