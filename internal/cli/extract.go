package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatches/internal/colour"
	"github.com/jmylchreest/swatches/internal/image"
	"github.com/jmylchreest/swatches/internal/palette"
	"github.com/jmylchreest/swatches/internal/seed"
)

func (a *app) newExtractCmd() *cobra.Command {
	var (
		count  int
		format string
	)
	cmd := &cobra.Command{
		Use:   "extract <image|url>",
		Short: "Start a palette from the dominant colours of an image",
		Long: `Start a palette from the dominant colours of an image.

Pixels are clustered with k-means in CIE L*a*b* space and the clusters are
ordered by how much of the image they cover. JPEG, PNG, GIF and WebP files
are supported, as are HTTP(S) URLs. Open the printed link with
'swatches tui' to keep editing.`,
		Example: `  swatches extract wallpaper.jpg
  swatches extract wallpaper.webp --count 4 --format url`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(*cobra.Command, []string) error {
			return validateFormat(format)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				count = a.cfg.MaxColors
			}
			if count > a.cfg.MaxColors {
				return fmt.Errorf("--count %d exceeds max-colors %d", count, a.cfg.MaxColors)
			}

			img, err := image.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			seedVal, err := seed.Calculate(args[0], a.cfg.SeedConfig())
			if err != nil {
				return err
			}
			clusters, err := colour.NewKMeans(seed.NewRand(seedVal)).Extract(img, count)
			if err != nil {
				return fmt.Errorf("failed to extract colours: %w", err)
			}
			for _, c := range clusters {
				a.logger.Debug("cluster", "hex", c.Hex, "weight", fmt.Sprintf("%.3f", c.Weight))
			}

			p := palette.FromHexes(colour.Hexes(clusters))
			link, err := a.shareURL("", p)
			if err != nil {
				return err
			}
			return printPalette(cmd.OutOrStdout(), format, p, link)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of colours (default: max-colors)")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json, url, fragment, css, gpl)")
	return cmd
}
