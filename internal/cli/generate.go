package cli

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatches/internal/palette"
)

type generateOptions struct {
	count      int
	locks      []string
	updates    []string
	regenerate int
	format     string
}

func (a *app) newGenerateCmd() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate [fragment|url]",
		Short: "Apply palette actions without the UI and print the result",
		Long: `Apply palette actions without the UI and print the result.

Actions run in a fixed order: resize (--count), lock (--lock), targeted
updates (--update) and finally whole-palette regeneration (--regenerate).`,
		Example: `  # A fresh five colour palette
  swatches generate --count 5

  # Keep red, reroll the rest twice, print the link
  swatches generate ff0000-00ff00-0000ff --lock ff0000 --regenerate=2 --format url

  # Swap out one colour
  swatches generate ff0000-00ff00 --update 00ff00 --format fragment`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(*cobra.Command, []string) error {
			return validateFormat(opts.format)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.count, "count", "n", 0, "resize the palette to this many colours")
	f.StringSliceVarP(&opts.locks, "lock", "l", nil, "lock these colours (repeatable)")
	f.StringSliceVarP(&opts.updates, "update", "u", nil, "regenerate only these colours (repeatable)")
	f.IntVarP(&opts.regenerate, "regenerate", "r", 0, "regenerate every unlocked colour this many times")
	f.StringVarP(&opts.format, "format", "f", formatText, "output format (text, json, url, fragment, css, gpl)")
	cmd.Flags().Lookup("regenerate").NoOptDefVal = "1"
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, args []string, opts generateOptions) error {
	input := ""
	if len(args) > 0 {
		input = args[0]
	}

	s, err := a.newSession(cmd.Context(), input)
	if err != nil {
		return err
	}
	defer s.close()

	if opts.count > 0 {
		s.ctrl.SetCount(opts.count)
	}
	for _, hex := range opts.locks {
		a.dispatchOn(s.ctrl, hex, func(h string) palette.Action { return palette.ToggleLock{Hex: h} })
	}
	for _, hex := range opts.updates {
		a.dispatchOn(s.ctrl, hex, func(h string) palette.Action { return palette.UpdateOne{Hex: h} })
	}
	for range opts.regenerate {
		s.ctrl.Dispatch(palette.RegenerateUnlocked{})
	}

	return printPalette(cmd.OutOrStdout(), opts.format, s.ctrl.Snapshot(), s.store.String())
}

// dispatchOn dispatches the action for hex when the palette holds it and
// warns otherwise.
func (a *app) dispatchOn(ctrl *palette.Controller, hex string, action func(string) palette.Action) {
	p := ctrl.Snapshot()
	i := p.Index(withHash(hex))
	if i < 0 {
		a.logger.Warn("colour not in palette, ignoring", "hex", hex)
		return
	}
	ctrl.Dispatch(action(p[i].Hex))
}
