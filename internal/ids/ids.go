// Package ids defines the strongly-typed 64-bit handles used throughout the
// graph core, plus the atomic counters that mint them. Zero is the invalid
// sentinel for every handle type.
package ids

import "sync/atomic"

// NodeID identifies a node within a graph.
type NodeID uint64

// PortID identifies a port on a node.
type PortID uint64

// ConnectionID identifies a connection within a graph.
type ConnectionID uint64

// GraphID identifies a graph.
type GraphID uint64

func (id NodeID) IsValid() bool       { return id != 0 }
func (id PortID) IsValid() bool       { return id != 0 }
func (id ConnectionID) IsValid() bool { return id != 0 }
func (id GraphID) IsValid() bool      { return id != 0 }

// Counter is a monotonic id source safe for concurrent use.
// Next hands out consecutive values; AdvanceTo only ever moves the counter
// forward, so restoring a persisted graph can never cause future collisions.
type Counter struct {
	next atomic.Uint64
}

// NewCounter returns a counter whose first Next() call yields start.
func NewCounter(start uint64) *Counter {
	c := &Counter{}
	c.next.Store(start)
	return c
}

// Next returns the current value and advances the counter.
func (c *Counter) Next() uint64 {
	return c.next.Add(1) - 1
}

// AdvanceTo raises the counter so the next Next() returns at least value.
// It never moves the counter backwards.
func (c *Counter) AdvanceTo(value uint64) {
	for {
		current := c.next.Load()
		if current >= value {
			return
		}
		if c.next.CompareAndSwap(current, value) {
			return
		}
	}
}

// Peek returns the value the next Next() call would produce.
func (c *Counter) Peek() uint64 {
	return c.next.Load()
}
