// Package palette implements the palette state machine.
//
// A Palette is an ordered list of entries, displayed left to right. It is
// changed only by applying Actions, and every transition returns a new slice
// so snapshots handed to a renderer never change under it.
package palette

import (
	"slices"

	"github.com/jmylchreest/swatches/internal/colour"
	"github.com/jmylchreest/swatches/internal/fragment"
)

const (
	// DefaultMaxColors is the largest palette the range control allows.
	DefaultMaxColors = 6
	// MinColors is the smallest palette. A palette is never empty.
	MinColors = 1
	// LimitMaxColors caps any configured maximum.
	LimitMaxColors = 16
)

// Entry is one swatch.
type Entry struct {
	Hex    string `json:"hex"`
	Locked bool   `json:"locked"`
}

// Palette is an ordered list of entries.
type Palette []Entry

// FromHexes returns an unlocked palette for hexes.
func FromHexes(hexes []string) Palette {
	p := make(Palette, len(hexes))
	for i, h := range hexes {
		p[i] = Entry{Hex: h}
	}
	return p
}

// Hexes returns the colours in display order.
func (p Palette) Hexes() []string {
	out := make([]string, len(p))
	for i, e := range p {
		out[i] = e.Hex
	}
	return out
}

// Clone returns a copy that shares no memory with p.
func (p Palette) Clone() Palette {
	return slices.Clone(p)
}

// Equal reports whether p and other hold the same entries in the same order.
func (p Palette) Equal(other Palette) bool {
	return slices.Equal(p, other)
}

// Index returns the position of the first entry with hex, or -1.
func (p Palette) Index(hex string) int {
	hex = normalizeOrKeep(hex)
	return slices.IndexFunc(p, func(e Entry) bool { return e.Hex == hex })
}

// Locked returns the number of locked entries.
func (p Palette) Locked() int {
	n := 0
	for _, e := range p {
		if e.Locked {
			n++
		}
	}
	return n
}

// Fragment returns the URL fragment for p, without its '#'.
func (p Palette) Fragment() string {
	return fragment.Encode(p.Hexes())
}

// normalizeOrKeep lets callers pass "#ABC123" or "#abc" when looking entries up.
func normalizeOrKeep(hex string) string {
	if norm, err := colour.Normalize(hex); err == nil {
		return norm
	}
	return hex
}
