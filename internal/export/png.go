package export

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/swatches/internal/colour"
	"github.com/jmylchreest/swatches/internal/palette"
)

// Swatch tile size in the PNG export.
const (
	SwatchWidth  = 120
	SwatchHeight = 160
	labelMargin  = 10
	lockMarkSize = 6
)

func writePNG(w io.Writer, p palette.Palette) error {
	img := Render(p)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// Render draws p as side by side tiles with the hex printed at the bottom of
// each. Locked swatches get a small square in the top right corner.
func Render(p palette.Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, SwatchWidth*len(p), SwatchHeight))
	face := basicfont.Face7x13

	for i, e := range p {
		rgb := colour.MustRGB(e.Hex)
		fg := colour.Foreground(rgb.Color()).Color()
		tile := image.Rect(i*SwatchWidth, 0, (i+1)*SwatchWidth, SwatchHeight)
		draw.Draw(img, tile, image.NewUniform(rgb.Color()), image.Point{}, draw.Src)

		d := &font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: face}
		textW := d.MeasureString(e.Hex).Ceil()
		x := tile.Min.X + (SwatchWidth-textW)/2
		y := tile.Max.Y - labelMargin - face.Descent
		d.Dot = fixed.P(x, y)
		d.DrawString(e.Hex)

		if e.Locked {
			mark := image.Rect(
				tile.Max.X-labelMargin-lockMarkSize, tile.Min.Y+labelMargin,
				tile.Max.X-labelMargin, tile.Min.Y+labelMargin+lockMarkSize,
			)
			draw.Draw(img, mark, image.NewUniform(fg), image.Point{}, draw.Src)
		}
	}
	return img
}
