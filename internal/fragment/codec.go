// Package fragment encodes palettes as URL fragments and stores them.
//
// The wire form is "#h1-h2-...-hN" where each segment is a six digit hex
// colour without its leading '#'. Hex digits never contain '-', so no
// escaping is needed.
package fragment

import (
	"net/url"
	"strings"

	"github.com/jmylchreest/swatches/internal/colour"
)

// Separator joins colours in a fragment.
const Separator = "-"

// Decode parses a raw fragment into normalised "#rrggbb" colours.
//
// A single leading '#' is stripped if present. Segments that are not valid
// colours are dropped silently, and at most limit colours are returned
// (limit <= 0 means no limit). The result may be empty; callers decide what
// an empty palette falls back to.
func Decode(raw string, limit int) []string {
	raw = strings.TrimPrefix(raw, "#")
	if raw == "" {
		return nil
	}

	var hexes []string
	for _, seg := range strings.Split(raw, Separator) {
		hex, err := colour.Normalize("#" + seg)
		if err != nil {
			continue
		}
		hexes = append(hexes, hex)
	}

	if limit > 0 && len(hexes) > limit {
		hexes = hexes[:limit]
	}
	return hexes
}

// Encode joins colours into fragment form, without the leading '#'.
func Encode(hexes []string) string {
	parts := make([]string, len(hexes))
	for i, h := range hexes {
		parts[i] = strings.TrimPrefix(h, "#")
	}
	return strings.Join(parts, Separator)
}

// FromInput accepts a full share URL, a "#..." fragment or a bare fragment
// and returns the fragment without its '#'.
func FromInput(input string) (string, error) {
	input = strings.TrimSpace(input)
	if strings.Contains(input, "://") {
		u, err := url.Parse(input)
		if err != nil {
			return "", err
		}
		return u.Fragment, nil
	}
	return strings.TrimPrefix(input, "#"), nil
}
