package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatches/internal/colour"
	"github.com/jmylchreest/swatches/internal/fragment"
	"github.com/jmylchreest/swatches/internal/palette"
)

// ErrEmptyFragment is returned when a fragment holds no valid colours.
var ErrEmptyFragment = errors.New("fragment holds no valid colours")

func withHash(s string) string {
	if strings.HasPrefix(s, "#") {
		return s
	}
	return "#" + s
}

func (a *app) newDecodeCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "decode <fragment|url>",
		Short: "Show the colours in a share fragment",
		Long: `Show the colours in a share fragment or URL.

Invalid segments are dropped and the result is cut to --max-colors, exactly
as the interactive editor does when it opens a link.`,
		Example: `  swatches decode ff0000-0f0-nothex
  swatches decode 'https://example.com/#ff0000-00ff00' --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := fragment.FromInput(args[0])
			if err != nil {
				return fmt.Errorf("failed to parse input: %w", err)
			}
			hexes := fragment.Decode(raw, a.cfg.MaxColors)
			if len(hexes) == 0 {
				return fmt.Errorf("%q: %w", args[0], ErrEmptyFragment)
			}
			p := palette.FromHexes(hexes)

			if format != formatText {
				if err := validateFormat(format); err != nil {
					return err
				}
				link, err := a.shareURL(args[0], p)
				if err != nil {
					return err
				}
				return printPalette(cmd.OutOrStdout(), format, p, link)
			}

			table := NewTable([]string{"#", "HEX", "RGB", "LUMINANCE", "TEXT", "CONTRAST", "SWATCH"})
			for i, e := range p {
				rgb := colour.MustRGB(e.Hex)
				table.AddRow([]string{
					strconv.Itoa(i + 1),
					e.Hex,
					rgb.String(),
					fmt.Sprintf("%.3f", colour.Luminance(rgb.Color())),
					colour.HexForeground(e.Hex).Hex(),
					fmt.Sprintf("%.2f:1", colour.TextContrast(e.Hex)),
					swatchCell(cmd.OutOrStdout(), e.Hex),
				})
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), table.Render())
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json, url, fragment, css, gpl)")
	return cmd
}

func (a *app) newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <hex>...",
		Short: "Build a share fragment from colours",
		Long: `Build a share fragment from colours given as #rgb, #rrggbb or without '#'.

Unlike decode, encode rejects invalid colours instead of dropping them.`,
		Example: `  swatches encode ff0000 '#0f0' 0000FF`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > a.cfg.MaxColors {
				return fmt.Errorf("%d colours given, max-colors is %d", len(args), a.cfg.MaxColors)
			}
			hexes := make([]string, len(args))
			for i, arg := range args {
				hex, err := colour.Normalize(withHash(arg))
				if err != nil {
					return err
				}
				hexes[i] = hex
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), fragment.Encode(hexes))
			return err
		},
	}
}
