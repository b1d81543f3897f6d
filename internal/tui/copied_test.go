package tui

import (
	"testing"
	"time"
)

func TestCopiedTrackerResetFires(t *testing.T) {
	posted := make(chan copiedReset, 1)
	c := newCopiedTracker(10*time.Millisecond, func(r copiedReset) { posted <- r })
	defer c.Close()

	c.Mark(0, "#ff0000")
	if !c.Copied(0, "#ff0000") {
		t.Fatal("Copied() = false right after Mark")
	}

	select {
	case r := <-posted:
		if !c.Reset(r) {
			t.Error("Reset() = false for the current generation")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reset never posted")
	}
	if c.Copied(0, "#ff0000") {
		t.Error("Copied() = true after reset")
	}
}

func TestCopiedTrackerRemarkInvalidatesOldReset(t *testing.T) {
	c := newCopiedTracker(time.Hour, func(copiedReset) {})
	defer c.Close()

	c.Mark(1, "#00ff00")
	stale := copiedReset{index: 1, gen: c.flags[1].gen}
	c.Mark(1, "#00ff00")

	if c.Reset(stale) {
		t.Error("Reset() accepted a stale generation")
	}
	if !c.Copied(1, "#00ff00") {
		t.Error("flag cleared by a stale reset")
	}

	current := copiedReset{index: 1, gen: c.flags[1].gen}
	if !c.Reset(current) {
		t.Error("Reset() rejected the current generation")
	}
}

func TestCopiedTrackerFlagsArePerSwatch(t *testing.T) {
	c := newCopiedTracker(time.Hour, func(copiedReset) {})
	defer c.Close()

	// two swatches with the same colour
	c.Mark(0, "#111111")
	if c.Copied(1, "#111111") {
		t.Error("Copied(1) = true after marking swatch 0 only")
	}

	c.Mark(1, "#111111")
	c.Reset(copiedReset{index: 0, gen: c.flags[0].gen})
	if c.Copied(0, "#111111") {
		t.Error("swatch 0 still flagged")
	}
	if !c.Copied(1, "#111111") {
		t.Error("swatch 1 lost its flag when swatch 0 reset")
	}
}

func TestCopiedTrackerIgnoresReplacedColour(t *testing.T) {
	c := newCopiedTracker(time.Hour, func(copiedReset) {})
	defer c.Close()

	c.Mark(0, "#111111")
	if c.Copied(0, "#222222") {
		t.Error("Copied() = true for a swatch whose colour changed")
	}
}
