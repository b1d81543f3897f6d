package fragment

import (
	"fmt"
	"slices"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		limit int
		want  []string
	}{
		{name: "empty", raw: "", limit: 6, want: nil},
		{name: "bare hash", raw: "#", limit: 6, want: nil},
		{name: "all invalid", raw: "#zzzzzz", limit: 6, want: nil},
		{name: "three colours", raw: "#ff0000-00ff00-0000ff", limit: 6, want: []string{"#ff0000", "#00ff00", "#0000ff"}},
		{name: "without hash", raw: "ff0000-00ff00", limit: 6, want: []string{"#ff0000", "#00ff00"}},
		{name: "drops invalid segments", raw: "#ff0000--nothex-00ff00-12345", limit: 6, want: []string{"#ff0000", "#00ff00"}},
		{name: "normalises case and short form", raw: "#ABCDEF-fff", limit: 6, want: []string{"#abcdef", "#ffffff"}},
		{name: "no limit", raw: "#111111-222222-333333", limit: 0, want: []string{"#111111", "#222222", "#333333"}},
		{name: "duplicates kept", raw: "#111111-111111", limit: 6, want: []string{"#111111", "#111111"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.raw, tt.limit)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Decode(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDecodeTruncates(t *testing.T) {
	segs := make([]string, 8)
	for i := range segs {
		segs[i] = fmt.Sprintf("%02x%02x%02x", i, i, i)
	}
	raw := "#" + strings.Join(segs, "-")

	for _, limit := range []int{5, 6} {
		got := Decode(raw, limit)
		if len(got) != limit {
			t.Fatalf("Decode() with limit %d returned %d colours", limit, len(got))
		}
		for i, h := range got {
			if h != "#"+segs[i] {
				t.Errorf("Decode()[%d] = %q, want %q", i, h, "#"+segs[i])
			}
		}
	}
}

func TestEncode(t *testing.T) {
	got := Encode([]string{"#ff0000", "#00ff00", "#0000ff"})
	if got != "ff0000-00ff00-0000ff" {
		t.Errorf("Encode() = %q", got)
	}
	if got := Encode(nil); got != "" {
		t.Errorf("Encode(nil) = %q, want empty", got)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"#ff0000",
		"#ff0000-00ff00-0000ff",
		"#010203-a0b0c0-ffffff-000000-123456-fedcba",
	}
	for _, in := range inputs {
		hexes := Decode(in, 6)
		if got := "#" + Encode(hexes); got != in {
			t.Errorf("round trip %q = %q", in, got)
		}
	}
}

func TestFromInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "https://example.com/#ff0000-00ff00", want: "ff0000-00ff00"},
		{in: "https://example.com/palette", want: ""},
		{in: "#ff0000", want: "ff0000"},
		{in: "  ff0000-00ff00 ", want: "ff0000-00ff00"},
	}
	for _, tt := range tests {
		got, err := FromInput(tt.in)
		if err != nil {
			t.Fatalf("FromInput(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("FromInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
