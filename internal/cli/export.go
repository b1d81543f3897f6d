package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatches/internal/export"
	"github.com/jmylchreest/swatches/internal/fragment"
	"github.com/jmylchreest/swatches/internal/palette"
)

func (a *app) newExportCmd() *cobra.Command {
	var (
		format string
		output string
		name   string
		locks  []string
	)
	cmd := &cobra.Command{
		Use:   "export <fragment|url>",
		Short: "Write a palette as PNG, JSON, CSS or a GIMP palette",
		Long: `Write a palette as PNG, JSON, CSS or a GIMP palette.

The format defaults to the output file's extension. Without -o the result
is written to stdout. Fragments carry no lock state, so use --lock to mark
locked swatches in the json output and the png.`,
		Example: `  swatches export ff0000-00ff00-0000ff -o palette.png
  swatches export ff0000-00ff00 --format css
  swatches export ff0000-00ff00 --lock ff0000 -o palette.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveExportFormat(format, output)
			if err != nil {
				return err
			}

			raw, err := fragment.FromInput(args[0])
			if err != nil {
				return fmt.Errorf("failed to parse input: %w", err)
			}
			hexes := fragment.Decode(raw, a.cfg.MaxColors)
			if len(hexes) == 0 {
				return fmt.Errorf("%q: %w", args[0], ErrEmptyFragment)
			}
			p := palette.FromHexes(hexes)
			for _, hex := range locks {
				i := p.Index(withHash(hex))
				if i < 0 {
					a.logger.Warn("colour not in palette, ignoring", "hex", hex)
					continue
				}
				p[i].Locked = true
			}

			link, err := a.shareURL(args[0], p)
			if err != nil {
				return err
			}
			opts := export.Options{Name: name, ShareURL: link}

			if output == "" || output == "-" {
				return export.Write(cmd.OutOrStdout(), f, p, opts)
			}

			file, err := os.Create(output) // #nosec G304 -- user supplied output path
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := export.Write(file, f, p, opts); err != nil {
				_ = file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			a.logger.Info("palette exported", "path", output, "format", f, "colours", len(p))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "png, json, css or gpl (default: from the output extension, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&name, "name", "", "palette name written into json, css and gpl output")
	cmd.Flags().StringSliceVarP(&locks, "lock", "l", nil, "mark these colours as locked (repeatable)")
	return cmd
}

func resolveExportFormat(format, output string) (export.Format, error) {
	if format != "" {
		return export.ParseFormat(format)
	}
	if f, ok := export.FormatFromPath(output); ok {
		return f, nil
	}
	return export.FormatJSON, nil
}
