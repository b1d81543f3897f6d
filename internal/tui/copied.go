package tui

import (
	"sync"
	"time"
)

// copiedReset is posted to the event loop when a swatch's "copied" flag is due to clear.
type copiedReset struct {
	index int
	gen   uint64
}

type copiedMark struct {
	hex string
	gen uint64
}

// copiedTracker owns the transient per-swatch "copied" flags, keyed by
// swatch position.
//
// Mark sets a flag and schedules its reset. A second Mark for the same swatch
// before the reset fires stops the pending timer and bumps the generation,
// so a reset that was already in flight is ignored by Reset. A flag only
// shows while the swatch still holds the colour that was copied.
//
// Mark, Reset, Copied and Close run on the event loop. Only the timer
// callback runs elsewhere, and it only calls post.
type copiedTracker struct {
	delay time.Duration
	post  func(copiedReset)

	mu      sync.Mutex
	flags   map[int]copiedMark
	timers  map[int]*time.Timer
	counter uint64
}

func newCopiedTracker(delay time.Duration, post func(copiedReset)) *copiedTracker {
	return &copiedTracker{
		delay:  delay,
		post:   post,
		flags:  make(map[int]copiedMark),
		timers: make(map[int]*time.Timer),
	}
}

// Mark flags swatch index, which holds hex, as copied and (re)schedules its reset.
func (c *copiedTracker) Mark(index int, hex string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[index]; ok {
		t.Stop()
	}
	c.counter++
	gen := c.counter
	c.flags[index] = copiedMark{hex: hex, gen: gen}
	c.timers[index] = time.AfterFunc(c.delay, func() {
		c.post(copiedReset{index: index, gen: gen})
	})
}

// Reset clears the flag for r.index if r belongs to the latest Mark. It
// reports whether anything changed.
func (c *copiedTracker) Reset(r copiedReset) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.flags[r.index]; !ok || m.gen != r.gen {
		return false
	}
	delete(c.flags, r.index)
	delete(c.timers, r.index)
	return true
}

// Copied reports whether swatch index is flagged and still holds hex.
func (c *copiedTracker) Copied(index int, hex string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.flags[index]
	return ok && m.hex == hex
}

// Close stops every pending timer.
func (c *copiedTracker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, t := range c.timers {
		t.Stop()
		delete(c.timers, i)
	}
}
