package palette

import (
	"fmt"

	"github.com/jmylchreest/swatches/internal/colour"
	"github.com/jmylchreest/swatches/internal/generator"
)

// Action is a palette intent. The set of actions is closed.
type Action interface {
	action()
	fmt.Stringer
}

// ToggleLock flips the lock on the first entry with Hex.
type ToggleLock struct{ Hex string }

// UpdateOne regenerates the first entry with Hex, if that entry is unlocked.
//
// Only the targeted entry changes. Other unlocked entries keep their colour.
type UpdateOne struct{ Hex string }

// RegenerateUnlocked replaces every unlocked entry with a new colour.
type RegenerateUnlocked struct{}

// Grow appends Count new unlocked entries. Count must be positive.
type Grow struct{ Count int }

// Shrink truncates the palette to at most Count entries. Count must not be negative.
type Shrink struct{ Count int }

func (ToggleLock) action()         {}
func (UpdateOne) action()          {}
func (RegenerateUnlocked) action() {}
func (Grow) action()               {}
func (Shrink) action()             {}

func (a ToggleLock) String() string       { return "toggle-lock " + a.Hex }
func (a UpdateOne) String() string        { return "update-one " + a.Hex }
func (RegenerateUnlocked) String() string { return "regenerate-unlocked" }
func (a Grow) String() string             { return fmt.Sprintf("grow %d", a.Count) }
func (a Shrink) String() string           { return fmt.Sprintf("shrink %d", a.Count) }

// Apply returns the palette that results from applying a to p.
//
// p is never modified. gen supplies every new colour. An unknown or nil
// action, a non-positive Grow, or a negative Shrink is a caller bug and
// panics. Grow does not clamp to any maximum; use Resize to stay in range.
func Apply(p Palette, a Action, gen generator.Generator) Palette {
	switch a := a.(type) {
	case ToggleLock:
		out := p.Clone()
		if i := out.Index(a.Hex); i >= 0 {
			out[i].Locked = !out[i].Locked
		}
		return out

	case UpdateOne:
		out := p.Clone()
		if i := out.Index(a.Hex); i >= 0 && !out[i].Locked {
			out[i] = fresh(gen)
		}
		return out

	case RegenerateUnlocked:
		out := p.Clone()
		for i := range out {
			if !out[i].Locked {
				out[i] = fresh(gen)
			}
		}
		return out

	case Grow:
		if a.Count <= 0 {
			panic(fmt.Sprintf("palette: grow count must be positive, got %d", a.Count))
		}
		out := make(Palette, len(p), len(p)+a.Count)
		copy(out, p)
		for range a.Count {
			out = append(out, fresh(gen))
		}
		return out

	case Shrink:
		if a.Count < 0 {
			panic(fmt.Sprintf("palette: shrink count must not be negative, got %d", a.Count))
		}
		return p[:min(len(p), a.Count)].Clone()

	default:
		panic(fmt.Sprintf("palette: unknown action %T", a))
	}
}

// fresh draws one unlocked entry from gen. Generators must return valid
// colours; anything else panics.
func fresh(gen generator.Generator) Entry {
	hex, err := colour.Normalize(gen.Random())
	if err != nil {
		panic(fmt.Sprintf("palette: generator returned %v", err))
	}
	return Entry{Hex: hex}
}

// Resize returns the action that moves a palette of length current to the
// requested size, clamped to [MinColors, maxColors]. It returns nil when no
// change is needed.
func Resize(current, requested, maxColors int) Action {
	target := max(MinColors, min(requested, maxColors))
	switch {
	case target > current:
		return Grow{Count: target - current}
	case target < current:
		return Shrink{Count: target}
	default:
		return nil
	}
}
