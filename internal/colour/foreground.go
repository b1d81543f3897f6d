package colour

import "image/color"

// LightThreshold is the luminance above which a colour counts as light.
const LightThreshold = 0.5

var (
	// Black is the foreground used on light swatches.
	Black = RGB{R: 0, G: 0, B: 0}
	// White is the foreground used on dark swatches.
	White = RGB{R: 255, G: 255, B: 255}
)

// IsLight reports whether c is light enough to need dark text.
func IsLight(c color.Color) bool {
	return Luminance(c) > LightThreshold
}

// Foreground returns black or white text for a swatch of colour bg.
func Foreground(bg color.Color) RGB {
	if IsLight(bg) {
		return Black
	}
	return White
}

// HexForeground is Foreground for a hex string. Unparseable input is treated
// as black, so it gets white text.
func HexForeground(hex string) RGB {
	rgb, err := ParseRGB(hex)
	if err != nil {
		return White
	}
	return Foreground(rgb.Color())
}

// TextContrast is the contrast ratio between a swatch and its foreground.
func TextContrast(hex string) float64 {
	rgb, err := ParseRGB(hex)
	if err != nil {
		return 1
	}
	return ContrastRatio(rgb.Color(), Foreground(rgb.Color()).Color())
}
