package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jmylchreest/swatches/internal/colour"
	"github.com/jmylchreest/swatches/internal/palette"
)

type jsonColour struct {
	Hex        string     `json:"hex"`
	RGB        colour.RGB `json:"rgb"`
	HSL        [3]float64 `json:"hsl"`
	Locked     bool       `json:"locked"`
	Luminance  float64    `json:"luminance"`
	Foreground string     `json:"foreground"`
	Contrast   float64    `json:"contrast"`
}

type jsonPalette struct {
	Name     string       `json:"name"`
	Fragment string       `json:"fragment"`
	URL      string       `json:"url,omitempty"`
	Colours  []jsonColour `json:"colours"`
}

func writeJSON(w io.Writer, p palette.Palette, opts Options) error {
	out := jsonPalette{
		Name:     opts.Name,
		Fragment: p.Fragment(),
		URL:      opts.ShareURL,
		Colours:  make([]jsonColour, len(p)),
	}
	for i, e := range p {
		rgb := colour.MustRGB(e.Hex)
		h, sat, l := colour.ToHSL(rgb)
		out.Colours[i] = jsonColour{
			Hex:        e.Hex,
			RGB:        rgb,
			HSL:        [3]float64{round(h, 1), round(sat, 3), round(l, 3)},
			Locked:     e.Locked,
			Luminance:  colour.Luminance(rgb.Color()),
			Foreground: colour.HexForeground(e.Hex).Hex(),
			Contrast:   round(colour.TextContrast(e.Hex), 2),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func writeCSS(w io.Writer, p palette.Palette, opts Options) error {
	var b strings.Builder
	fmt.Fprintf(&b, "/* %s */\n", opts.Name)
	if opts.ShareURL != "" {
		fmt.Fprintf(&b, "/* %s */\n", opts.ShareURL)
	}
	b.WriteString(":root {\n")
	for i, e := range p {
		fmt.Fprintf(&b, "  --swatch-%d: %s;\n", i+1, e.Hex)
		fmt.Fprintf(&b, "  --swatch-%d-fg: %s;\n", i+1, colour.HexForeground(e.Hex).Hex())
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// writeGPL writes a GIMP palette.
func writeGPL(w io.Writer, p palette.Palette, opts Options) error {
	var b strings.Builder
	b.WriteString("GIMP Palette\n")
	fmt.Fprintf(&b, "Name: %s\n", opts.Name)
	fmt.Fprintf(&b, "Columns: %d\n", len(p))
	b.WriteString("#\n")
	for _, e := range p {
		rgb := colour.MustRGB(e.Hex)
		fmt.Fprintf(&b, "%3d %3d %3d\t%s\n", rgb.R, rgb.G, rgb.B, e.Hex)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
