package tui

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
)

// ErrClipboardUnsupported is returned when the screen cannot set the clipboard.
var ErrClipboardUnsupported = errors.New("clipboard not supported by this terminal")

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// clipboardSetter is implemented by tcell screens that speak OSC 52.
type clipboardSetter interface {
	SetClipboard([]byte)
}

// ScreenClipboard copies through the terminal using OSC 52.
type ScreenClipboard struct {
	screen tcell.Screen
}

// NewScreenClipboard returns a clipboard backed by screen.
func NewScreenClipboard(screen tcell.Screen) *ScreenClipboard {
	return &ScreenClipboard{screen: screen}
}

// WriteText sends text to the terminal clipboard.
func (c *ScreenClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	setter, ok := c.screen.(clipboardSetter)
	if !ok {
		return ErrClipboardUnsupported
	}
	setter.SetClipboard([]byte(text))
	return nil
}

// copyResult is posted to the event loop when a clipboard write finishes.
type copyResult struct {
	index int
	hex   string
	err   error
}
