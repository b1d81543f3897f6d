package palette

import (
	"fmt"
	"testing"

	"github.com/jmylchreest/swatches/internal/colour"
	"github.com/jmylchreest/swatches/internal/generator"
	"github.com/jmylchreest/swatches/internal/seed"
)

// counter hands out #000001, #000002, ... so new entries are predictable.
func counter() generator.Generator {
	n := 0
	return generator.Func(func() string {
		n++
		return fmt.Sprintf("#%06x", n)
	})
}

// noGen fails the test if Apply asks for a colour.
func noGen(t *testing.T) generator.Generator {
	return generator.Func(func() string {
		t.Helper()
		t.Fatal("generator called unexpectedly")
		return ""
	})
}

func samplePalette() Palette {
	return Palette{
		{Hex: "#ff0000", Locked: true},
		{Hex: "#00ff00"},
		{Hex: "#0000ff"},
	}
}

func TestApplyToggleLock(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want Palette
	}{
		{
			name: "unlocks locked entry",
			hex:  "#ff0000",
			want: Palette{{Hex: "#ff0000"}, {Hex: "#00ff00"}, {Hex: "#0000ff"}},
		},
		{
			name: "locks unlocked entry",
			hex:  "#00ff00",
			want: Palette{{Hex: "#ff0000", Locked: true}, {Hex: "#00ff00", Locked: true}, {Hex: "#0000ff"}},
		},
		{
			name: "matches any case",
			hex:  "#0000FF",
			want: Palette{{Hex: "#ff0000", Locked: true}, {Hex: "#00ff00"}, {Hex: "#0000ff", Locked: true}},
		},
		{
			name: "missing hex is a no-op",
			hex:  "#abc123",
			want: samplePalette(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := samplePalette()
			got := Apply(in, ToggleLock{Hex: tt.hex}, noGen(t))
			if !got.Equal(tt.want) {
				t.Errorf("Apply(ToggleLock) = %v, want %v", got, tt.want)
			}
			if !in.Equal(samplePalette()) {
				t.Errorf("input modified: %v", in)
			}
		})
	}
}

func TestApplyToggleLockFirstMatchOnly(t *testing.T) {
	in := Palette{{Hex: "#111111"}, {Hex: "#111111"}}
	got := Apply(in, ToggleLock{Hex: "#111111"}, noGen(t))
	want := Palette{{Hex: "#111111", Locked: true}, {Hex: "#111111"}}
	if !got.Equal(want) {
		t.Errorf("Apply(ToggleLock) = %v, want %v", got, want)
	}
}

func TestApplyUpdateOne(t *testing.T) {
	t.Run("replaces unlocked target only", func(t *testing.T) {
		got := Apply(samplePalette(), UpdateOne{Hex: "#00ff00"}, counter())
		want := Palette{{Hex: "#ff0000", Locked: true}, {Hex: "#000001"}, {Hex: "#0000ff"}}
		if !got.Equal(want) {
			t.Errorf("Apply(UpdateOne) = %v, want %v", got, want)
		}
	})

	t.Run("locked target unchanged", func(t *testing.T) {
		got := Apply(samplePalette(), UpdateOne{Hex: "#ff0000"}, noGen(t))
		if !got.Equal(samplePalette()) {
			t.Errorf("Apply(UpdateOne) = %v, want unchanged", got)
		}
	})

	t.Run("missing target unchanged", func(t *testing.T) {
		got := Apply(samplePalette(), UpdateOne{Hex: "#123456"}, noGen(t))
		if !got.Equal(samplePalette()) {
			t.Errorf("Apply(UpdateOne) = %v, want unchanged", got)
		}
	})
}

func TestApplyRegenerateUnlocked(t *testing.T) {
	got := Apply(samplePalette(), RegenerateUnlocked{}, counter())
	want := Palette{{Hex: "#ff0000", Locked: true}, {Hex: "#000001"}, {Hex: "#000002"}}
	if !got.Equal(want) {
		t.Errorf("Apply(RegenerateUnlocked) = %v, want %v", got, want)
	}
}

func TestApplyRegenerateAllLockedIsNoop(t *testing.T) {
	in := Palette{{Hex: "#ff0000", Locked: true}, {Hex: "#00ff00", Locked: true}}
	got := Apply(in, RegenerateUnlocked{}, noGen(t))
	if !got.Equal(in) {
		t.Errorf("Apply(RegenerateUnlocked) = %v, want %v", got, in)
	}
}

func TestApplyGrow(t *testing.T) {
	got := Apply(samplePalette(), Grow{Count: 2}, counter())
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	if !got[:3].Equal(samplePalette()) {
		t.Errorf("prefix changed: %v", got[:3])
	}
	for i, e := range got[3:] {
		if e.Locked {
			t.Errorf("new entry %d is locked", i)
		}
		if !colour.Valid(e.Hex) {
			t.Errorf("new entry %d = %q is not a colour", i, e.Hex)
		}
	}
}

func TestApplyNormalisesGeneratedColours(t *testing.T) {
	gen := generator.Func(func() string { return "#ABC" })
	got := Apply(samplePalette(), Grow{Count: 1}, gen)
	if got[3].Hex != "#aabbcc" {
		t.Errorf("new entry = %q, want #aabbcc", got[3].Hex)
	}

	defer func() {
		if recover() == nil {
			t.Error("Apply() with an invalid generated colour did not panic")
		}
	}()
	Apply(samplePalette(), Grow{Count: 1}, generator.Func(func() string { return "nope" }))
}

func TestApplyGrowDoesNotClamp(t *testing.T) {
	in := FromHexes([]string{"#111111", "#222222", "#333333", "#444444", "#555555", "#666666"})
	got := Apply(in, Grow{Count: 1}, counter())
	if len(got) != 7 {
		t.Errorf("len = %d, want 7", len(got))
	}
}

func TestApplyShrink(t *testing.T) {
	five := FromHexes([]string{"#111111", "#222222", "#333333", "#444444", "#555555"})
	five[4].Locked = true

	tests := []struct {
		count int
		want  int
	}{
		{count: 2, want: 2},
		{count: 5, want: 5},
		{count: 9, want: 5},
		{count: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.count), func(t *testing.T) {
			got := Apply(five, Shrink{Count: tt.count}, noGen(t))
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
			if !got.Equal(five[:tt.want]) {
				t.Errorf("Apply(Shrink) = %v, want prefix %v", got, five[:tt.want])
			}
		})
	}
}

func TestApplyPanicsOnContractViolation(t *testing.T) {
	tests := []struct {
		name   string
		action Action
	}{
		{name: "nil action", action: nil},
		{name: "zero grow", action: Grow{Count: 0}},
		{name: "negative shrink", action: Shrink{Count: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Apply(%v) did not panic", tt.action)
				}
			}()
			Apply(samplePalette(), tt.action, counter())
		})
	}
}

func TestResize(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		requested int
		want      Action
	}{
		{name: "grow", current: 3, requested: 5, want: Grow{Count: 2}},
		{name: "shrink", current: 5, requested: 2, want: Shrink{Count: 2}},
		{name: "same", current: 4, requested: 4, want: nil},
		{name: "clamp high", current: 5, requested: 10, want: Grow{Count: 1}},
		{name: "clamp low", current: 3, requested: 0, want: Shrink{Count: 1}},
		{name: "already max", current: 6, requested: 7, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resize(tt.current, tt.requested, 6)
			if got != tt.want {
				t.Errorf("Resize(%d, %d) = %v, want %v", tt.current, tt.requested, got, tt.want)
			}
		})
	}
}

func TestEndToEnd(t *testing.T) {
	p := FromHexes([]string{"#ff0000", "#00ff00", "#0000ff"})
	p = Apply(p, ToggleLock{Hex: "#ff0000"}, noGen(t))
	p = Apply(p, RegenerateUnlocked{}, generator.NewUniform(seed.NewRand(3)))

	if p[0] != (Entry{Hex: "#ff0000", Locked: true}) {
		t.Errorf("locked entry changed: %v", p[0])
	}
	for _, e := range p[1:] {
		if !colour.Valid(e.Hex) || e.Locked {
			t.Errorf("regenerated entry = %+v", e)
		}
	}
	frag := p.Fragment()
	if frag[:7] != "ff0000-" || len(frag) != len("ff0000-aaaaaa-bbbbbb") {
		t.Errorf("Fragment() = %q", frag)
	}
}
