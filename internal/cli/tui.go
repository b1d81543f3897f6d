package cli

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatches/internal/tui"
)

func (a *app) newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [fragment|url]",
		Short: "Open the interactive palette editor",
		Long: `Open the interactive palette editor in the terminal.

Keys:
  space         new colours for every unlocked swatch
  left, right   move the selection (1-9 jump to a swatch)
  l, enter      lock or unlock the selected swatch
  c, y          copy the selected hex to the clipboard
  u             replace only the selected swatch
  +, -          add or remove a swatch
  q, esc        quit and print the share URL

Clicking a hex copies it and clicking the lock label toggles it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runTUI,
	}
}

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	input := ""
	if len(args) > 0 {
		input = args[0]
	}

	// Swap to the screen-safe logger before anything can log.
	logger := a.logger
	a.logger = a.tuiLogger()
	defer func() { a.logger = logger }()

	s, err := a.newSession(cmd.Context(), input)
	if err != nil {
		return err
	}
	defer s.close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}

	ui := tui.New(screen, s.ctrl, tui.Options{
		Logger:      a.logger.Named("tui"),
		CopiedReset: a.cfg.CopiedReset,
		Share:       s.store.String,
	})
	if err := ui.Run(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), s.store.String())
	return nil
}
