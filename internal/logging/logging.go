// Package logging builds the application's hclog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Name is the root logger name.
const Name = "swatches"

// Options selects the logger's level and destination.
type Options struct {
	// Output defaults to os.Stderr.
	Output io.Writer
	// Level is a level name from config or the environment, e.g. "warn".
	Level string
	// Verbose forces debug output. Quiet limits output to errors and wins
	// over Verbose.
	Verbose bool
	Quiet   bool
	// JSON switches to hclog's JSON format.
	JSON bool
}

// ParseLevel converts a level name to an hclog level.
func ParseLevel(s string) (hclog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return hclog.Info, nil
	}
	level := hclog.LevelFromString(s)
	if level == hclog.NoLevel {
		return hclog.NoLevel, fmt.Errorf("invalid log level %q (valid: trace, debug, info, warn, error, off)", s)
	}
	return level, nil
}

// New returns a logger for opts.
func New(opts Options) (hclog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	switch {
	case opts.Quiet:
		level = hclog.Error
	case opts.Verbose:
		level = hclog.Debug
	}

	out := opts.Output
	color := hclog.ColorOff
	if out == nil {
		out = os.Stderr
		color = hclog.AutoColor
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       Name,
		Level:      level,
		Output:     out,
		Color:      color,
		JSONFormat: opts.JSON,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
