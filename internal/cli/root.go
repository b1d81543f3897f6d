// Package cli provides the command-line interface for swatches.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/swatches/internal/config"
	"github.com/jmylchreest/swatches/internal/generator"
	"github.com/jmylchreest/swatches/internal/logging"
	"github.com/jmylchreest/swatches/internal/seed"
	"github.com/jmylchreest/swatches/internal/version"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	verbose    bool
	quiet      bool
	configPath string
	logFile    string
	logFormat  string
	maxColors  int
	generator  string
	seed       int64
	prompt     string
	pluginPath string
	pluginArgs map[string]string
	baseURL    string
}

// app is the state resolved once per invocation before a command runs.
type app struct {
	opts   globalOptions
	cfg    config.Config
	logger hclog.Logger
	getenv func(string) string

	// logCloser closes --log-file, if one was opened.
	logCloser io.Closer
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(os.Getenv)
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	root, _ := newApp(getenv)
	return root
}

// newApp builds the command tree and returns it with the state its commands share.
func newApp(getenv func(string) string) (*cobra.Command, *app) {
	a := &app{getenv: getenv, logger: logging.Discard()}

	root := &cobra.Command{
		Use:   "swatches [fragment|url]",
		Short: "A shareable colour palette generator",
		Long: `Swatches generates colour palettes one swatch at a time.

Press space for new colours, lock the ones you like and share the palette
as a URL fragment such as #ff0000-00ff00-0000ff. Running swatches with no
subcommand opens the interactive terminal UI.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.teardown() },
		RunE:              a.runTUI,
	}
	root.SetVersionTemplate(version.String() + "\n")

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.opts.verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&a.opts.quiet, "quiet", "q", false, "suppress non-error output")
	pf.StringVar(&a.opts.configPath, "config", config.DefaultPath(), "config file")
	pf.StringVar(&a.opts.logFile, "log-file", "", "write logs to this file (the TUI discards logs otherwise)")
	pf.StringVar(&a.opts.logFormat, "log-format", "", "log format (text, json)")
	pf.IntVar(&a.opts.maxColors, "max-colors", 0, "largest palette size (1-16)")
	pf.StringVarP(&a.opts.generator, "generator", "g", "", "colour generator (uniform, happy, warm, prompt, plugin)")
	pf.Int64Var(&a.opts.seed, "seed", 0, "fixed seed for reproducible colours")
	pf.StringVarP(&a.opts.prompt, "prompt", "p", "", "describe the palette for the prompt generator")
	pf.StringVar(&a.opts.pluginPath, "plugin-path", "", "generator plugin binary")
	pf.StringToStringVar(&a.opts.pluginArgs, "plugin-arg", nil, "argument passed to the generator plugin (key=value, repeatable)")
	pf.StringVar(&a.opts.baseURL, "base-url", "", "base URL used when printing share links")

	root.AddCommand(
		a.newTUICmd(),
		a.newGenerateCmd(),
		a.newDecodeCmd(),
		a.newEncodeCmd(),
		a.newExportCmd(),
		a.newExtractCmd(),
		newVersionCmd(),
	)
	return root, a
}

// setup resolves configuration (defaults, file, environment, flags) and
// builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(a.getenv); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	a.applyFlags(cmd.Flags(), &cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	logOpts := logging.Options{
		Level:   cfg.LogLevel,
		Verbose: a.opts.verbose,
		Quiet:   a.opts.quiet,
		JSON:    cfg.LogFormat == config.LogFormatJSON,
		Output:  cmd.ErrOrStderr(),
	}
	if a.opts.logFile != "" {
		f, err := os.OpenFile(a.opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		a.logCloser = f
		logOpts.Output = f
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Debug("configuration resolved",
		"config", a.opts.configPath,
		"generator", cfg.Generator,
		"max_colors", cfg.MaxColors,
		"seed_mode", cfg.SeedMode)
	return nil
}

func (a *app) teardown() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
		a.logCloser = nil
	}
}

// applyFlags copies explicitly set flags over cfg.
func (a *app) applyFlags(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("max-colors") {
		cfg.MaxColors = a.opts.maxColors
	}
	if flags.Changed("generator") {
		cfg.Generator = a.opts.generator
	}
	if flags.Changed("seed") {
		s := a.opts.seed
		cfg.Seed = &s
		cfg.SeedMode = string(seed.ModeManual)
	}
	if flags.Changed("prompt") {
		cfg.Prompt = a.opts.prompt
		if !flags.Changed("generator") {
			cfg.Generator = string(generator.KindPrompt)
		}
	}
	if flags.Changed("plugin-path") {
		cfg.PluginPath = a.opts.pluginPath
		if !flags.Changed("generator") {
			cfg.Generator = string(generator.KindPlugin)
		}
	}
	if flags.Changed("plugin-arg") {
		merged := make(map[string]string, len(cfg.PluginArgs)+len(a.opts.pluginArgs))
		for k, v := range cfg.PluginArgs {
			merged[k] = v
		}
		for k, v := range a.opts.pluginArgs {
			merged[k] = v
		}
		cfg.PluginArgs = merged
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.opts.logFormat
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = a.opts.baseURL
	}
}

// tuiLogger is the logger used while the terminal is in raw mode: stderr
// output would corrupt the screen, so only a log file is kept.
func (a *app) tuiLogger() hclog.Logger {
	if a.logCloser != nil {
		return a.logger
	}
	return logging.Discard()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// requestTimeout bounds outbound calls made while building a generator.
const requestTimeout = 30 * time.Second
