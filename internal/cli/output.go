package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jmylchreest/swatches/internal/colour"
	"github.com/jmylchreest/swatches/internal/export"
	"github.com/jmylchreest/swatches/internal/palette"
)

// Output formats accepted by --format on generate, decode and extract.
const (
	formatText     = "text"
	formatJSON     = "json"
	formatURL      = "url"
	formatFragment = "fragment"
	formatCSS      = "css"
	formatGPL      = "gpl"
)

var outputFormats = []string{formatText, formatJSON, formatURL, formatFragment, formatCSS, formatGPL}

func validateFormat(f string) error {
	for _, valid := range outputFormats {
		if f == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q (valid: %s)", f, strings.Join(outputFormats, ", "))
}

// printPalette writes p to w in format. shareURL is the palette's link.
func printPalette(w io.Writer, format string, p palette.Palette, shareURL string) error {
	opts := export.Options{ShareURL: shareURL}
	switch format {
	case formatText:
		_, err := fmt.Fprintf(w, "%s\n%s\n", renderSwatches(w, p), shareURL)
		return err
	case formatJSON:
		return export.Write(w, export.FormatJSON, p, opts)
	case formatCSS:
		return export.Write(w, export.FormatCSS, p, opts)
	case formatGPL:
		return export.Write(w, export.FormatGPL, p, opts)
	case formatURL:
		_, err := fmt.Fprintln(w, shareURL)
		return err
	case formatFragment:
		_, err := fmt.Fprintln(w, p.Fragment())
		return err
	default:
		return validateFormat(format)
	}
}

// defaultWidth is used when w is not a terminal.
const defaultWidth = 80

// terminalWidth returns w's column count, or defaultWidth when w is not a
// terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// renderSwatches draws p as a row of coloured blocks, wrapped to the
// terminal width. Colour is dropped automatically when w is not a terminal.
func renderSwatches(w io.Writer, p palette.Palette) string {
	r := lipgloss.NewRenderer(w)
	blocks := make([]string, len(p))
	for i, e := range p {
		label := e.Hex
		status := "  open"
		if e.Locked {
			status = "locked"
		}
		style := r.NewStyle().
			Background(lipgloss.Color(e.Hex)).
			Foreground(lipgloss.Color(colour.HexForeground(e.Hex).Hex())).
			Padding(1, 2).
			Align(lipgloss.Center)
		blocks[i] = style.Render(label + "\n" + status)
	}

	width := terminalWidth(w)
	var rows []string
	var row []string
	rowWidth := 0
	for _, b := range blocks {
		bw := lipgloss.Width(b)
		if len(row) > 0 && rowWidth+bw > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, b)
		rowWidth += bw
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// swatchCell is a short coloured block for table output. It is blank when w
// does not support colour.
func swatchCell(w io.Writer, hex string) string {
	return lipgloss.NewRenderer(w).NewStyle().Background(lipgloss.Color(hex)).Render("      ")
}
