// Package colour provides colour parsing, validation and analysis helpers.
package colour

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned when a string is not a #rgb or #rrggbb colour.
var ErrInvalidHex = errors.New("invalid hex colour")

// hexPattern matches the short and long html hex forms. go-colorful's parser is
// scanf based and tolerates trailing garbage, so the shape is checked first.
var hexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// RGB represents a color in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Color returns the RGB value as an opaque color.Color.
func (rgb RGB) Color() color.Color {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// Parse parses a #rgb or #rrggbb string.
func Parse(s string) (colorful.Color, error) {
	if !hexPattern.MatchString(s) {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidHex, s, err)
	}
	return c, nil
}

// Valid reports whether s parses as a colour.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Normalize returns s in lowercase #rrggbb form.
// The short form is expanded, so "#ABC" becomes "#aabbcc".
func Normalize(s string) (string, error) {
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	return c.Clamped().Hex(), nil
}

// ParseRGB parses s and returns its 8-bit channels.
func ParseRGB(s string) (RGB, error) {
	c, err := Parse(s)
	if err != nil {
		return RGB{}, err
	}
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// MustRGB is like ParseRGB but panics on invalid input. Only for values
// already known to be valid, such as palette entries.
func MustRGB(s string) RGB {
	rgb, err := ParseRGB(s)
	if err != nil {
		panic(err)
	}
	return rgb
}
