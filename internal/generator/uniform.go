package generator

import (
	"fmt"
	mathrand "math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Uniform picks a colour uniformly from the 24-bit RGB cube.
type Uniform struct {
	rng *mathrand.Rand
}

// NewUniform returns a Uniform generator drawing from rng.
func NewUniform(rng *mathrand.Rand) *Uniform {
	return &Uniform{rng: rng}
}

// Random returns a random "#rrggbb" colour.
func (u *Uniform) Random() string {
	return fmt.Sprintf("#%06x", u.rng.IntN(1<<24))
}

// hclRange bounds the chroma and lightness draws of an HCL generator.
type hclRange struct {
	chromaMin, chromaSpan float64
	lightMin, lightSpan   float64
}

var (
	happyRange = hclRange{chromaMin: 0.5, chromaSpan: 0.3, lightMin: 0.5, lightSpan: 0.3}
	warmRange  = hclRange{chromaMin: 0.1, chromaSpan: 0.3, lightMin: 0.2, lightSpan: 0.3}
)

// maxHCLAttempts bounds the rejection loop. HCL draws outside the RGB gamut
// are retried, and after this many misses the colour is clamped instead.
const maxHCLAttempts = 64

// HCL draws colours from a restricted HCL region with a seeded source.
type HCL struct {
	rng *mathrand.Rand
	r   hclRange
}

// NewHappy returns a generator of bright, saturated colours.
func NewHappy(rng *mathrand.Rand) *HCL {
	return &HCL{rng: rng, r: happyRange}
}

// NewWarm returns a generator of dark, warm colours.
func NewWarm(rng *mathrand.Rand) *HCL {
	return &HCL{rng: rng, r: warmRange}
}

// Random returns a "#rrggbb" colour from the generator's HCL region.
func (g *HCL) Random() string {
	var c colorful.Color
	for range maxHCLAttempts {
		c = colorful.Hcl(
			g.rng.Float64()*360.0,
			g.r.chromaMin+g.rng.Float64()*g.r.chromaSpan,
			g.r.lightMin+g.rng.Float64()*g.r.lightSpan,
		)
		if c.IsValid() {
			return c.Hex()
		}
	}
	return c.Clamped().Hex()
}
