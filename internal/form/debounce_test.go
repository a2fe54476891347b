package form

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// collector records callback invocations under a lock.
type collector struct {
	mu    sync.Mutex
	calls []map[string]any
}

func (c *collector) add(d map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, d)
}

func (c *collector) snapshot() []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]map[string]any, len(c.calls))
	copy(out, c.calls)
	return out
}

func TestNotifierCoalescesToLatest(t *testing.T) {
	var c collector
	n := NewNotifier(30*time.Millisecond, c.add)

	// Five rapid updates inside one window must collapse to a single
	// callback carrying the fifth payload.
	for i := 1; i <= 5; i++ {
		n.Notify(map[string]any{"title": i})
	}

	time.Sleep(120 * time.Millisecond)
	calls := c.snapshot()
	assert.Len(t, calls, 1)
	assert.Equal(t, 5, calls[0]["title"])
}

func TestNotifierFiresAgainAfterQuiet(t *testing.T) {
	var c collector
	n := NewNotifier(20*time.Millisecond, c.add)

	n.Notify(map[string]any{"title": "first"})
	time.Sleep(80 * time.Millisecond)
	n.Notify(map[string]any{"title": "second"})
	time.Sleep(80 * time.Millisecond)

	calls := c.snapshot()
	assert.Len(t, calls, 2)
	assert.Equal(t, "first", calls[0]["title"])
	assert.Equal(t, "second", calls[1]["title"])
}

func TestNotifierStopCancelsPending(t *testing.T) {
	var c collector
	n := NewNotifier(20*time.Millisecond, c.add)

	n.Notify(map[string]any{"title": "never"})
	n.Stop()
	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, c.snapshot())

	// Notify after Stop is a no-op.
	n.Notify(map[string]any{"title": "still never"})
	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, c.snapshot())
}

func TestNotifierFlushFiresImmediately(t *testing.T) {
	var c collector
	n := NewNotifier(10*time.Second, c.add)

	n.Notify(map[string]any{"title": "now"})
	n.Flush()

	calls := c.snapshot()
	assert.Len(t, calls, 1)
	assert.Equal(t, "now", calls[0]["title"])

	// Nothing pending: Flush is a no-op.
	n.Flush()
	assert.Len(t, c.snapshot(), 1)
}
