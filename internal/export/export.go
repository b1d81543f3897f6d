// Package export renders a palette into files other tools can read.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/swatches/internal/palette"
)

// Format names an export encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJSON Format = "json"
	FormatCSS  Format = "css"
	FormatGPL  Format = "gpl"
)

// ValidFormats returns every supported format.
func ValidFormats() []Format {
	return []Format{FormatPNG, FormatJSON, FormatCSS, FormatGPL}
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ValidFormats() {
		if f == valid {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (valid formats: %v)", s, ValidFormats())
}

// FormatFromPath guesses a format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return "", false
	}
	f, err := ParseFormat(path[i+1:])
	return f, err == nil
}

// Options carries the metadata written alongside the colours.
type Options struct {
	// Name labels the palette in formats that carry a title.
	Name string
	// ShareURL is included by formats that can hold a link.
	ShareURL string
}

// Write encodes p to w in format f.
func Write(w io.Writer, f Format, p palette.Palette, opts Options) error {
	if len(p) == 0 {
		return fmt.Errorf("cannot export an empty palette")
	}
	if opts.Name == "" {
		opts.Name = "swatches " + p.Fragment()
	}

	switch f {
	case FormatPNG:
		return writePNG(w, p)
	case FormatJSON:
		return writeJSON(w, p, opts)
	case FormatCSS:
		return writeCSS(w, p, opts)
	case FormatGPL:
		return writeGPL(w, p, opts)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}
