// Package generator provides random colour sources for palette entries.
//
// Every generator returns a valid, normalised "#rrggbb" string on each call.
// Generators are not safe for concurrent use; the palette controller calls
// them from a single goroutine.
package generator

import (
	"fmt"
	mathrand "math/rand/v2"
	"slices"
)

// Generator produces a new random colour on every call.
type Generator interface {
	Random() string
}

// Func adapts an ordinary function to the Generator interface.
type Func func() string

// Random calls f.
func (f Func) Random() string { return f() }

// Kind names a generator implementation.
type Kind string

const (
	// KindUniform draws each hex digit uniformly, like chroma.random().
	KindUniform Kind = "uniform"
	// KindHappy draws bright, saturated colours from a restricted HCL space.
	KindHappy Kind = "happy"
	// KindWarm draws dark, muted colours from a restricted HCL space.
	KindWarm Kind = "warm"
	// KindPrompt serves colours suggested by a language model for a prompt.
	KindPrompt Kind = "prompt"
	// KindPlugin serves colours from an external plugin process.
	KindPlugin Kind = "plugin"
)

// ValidKinds returns every known generator kind.
func ValidKinds() []Kind {
	return []Kind{KindUniform, KindHappy, KindWarm, KindPrompt, KindPlugin}
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	kind := Kind(s)
	if slices.Contains(ValidKinds(), kind) {
		return kind, nil
	}
	return "", fmt.Errorf("invalid generator: %s (valid: uniform, happy, warm, prompt, plugin)", s)
}

// New builds one of the local generators. Prompt and plugin generators need
// external resources and are built by NewPrompt and the plugin package.
func New(kind Kind, rng *mathrand.Rand) (Generator, error) {
	switch kind {
	case KindUniform, "":
		return NewUniform(rng), nil
	case KindHappy:
		return NewHappy(rng), nil
	case KindWarm:
		return NewWarm(rng), nil
	default:
		return nil, fmt.Errorf("generator %q cannot be built locally", kind)
	}
}

// Sequence replays a fixed list of colours and then defers to Fallback.
// It is the building block for pooled generators and handy in tests.
type Sequence struct {
	colours  []string
	next     int
	Fallback Generator
}

// NewSequence returns a Sequence over colours.
func NewSequence(fallback Generator, colours ...string) *Sequence {
	return &Sequence{colours: colours, Fallback: fallback}
}

// Random returns the next queued colour, or a fallback colour once the queue
// is drained.
func (s *Sequence) Random() string {
	if s.next < len(s.colours) {
		c := s.colours[s.next]
		s.next++
		return c
	}
	if s.Fallback == nil {
		panic("generator: sequence exhausted with no fallback")
	}
	return s.Fallback.Random()
}

// Remaining returns how many queued colours are left.
func (s *Sequence) Remaining() int {
	return len(s.colours) - s.next
}
