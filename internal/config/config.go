// Package config loads swatches settings from a YAML file and the environment.
//
// Precedence, lowest first: built-in defaults, config file, environment,
// command-line flags. Flags are applied by the cli package.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/swatches/internal/generator"
	"github.com/jmylchreest/swatches/internal/palette"
	"github.com/jmylchreest/swatches/internal/seed"
)

// Environment variable names.
const (
	EnvMaxColors = "SWATCHES_MAX_COLORS"
	EnvGenerator = "SWATCHES_GENERATOR"
	EnvSeed      = "SWATCHES_SEED"
	EnvBaseURL   = "SWATCHES_BASE_URL"
	EnvLogLevel  = "SWATCHES_LOG_LEVEL"
	EnvLogFormat = "SWATCHES_LOG_FORMAT"
	EnvPrompt    = "SWATCHES_PROMPT"
	EnvPlugin    = "SWATCHES_PLUGIN_PATH"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// DefaultCopiedReset is how long a swatch shows "copied" after a clipboard write.
const DefaultCopiedReset = 1500 * time.Millisecond

// Config holds all user settings.
type Config struct {
	MaxColors   int           `yaml:"max_colors"`
	Generator   string        `yaml:"generator"`
	SeedMode    string        `yaml:"seed_mode"`
	Seed        *int64        `yaml:"seed,omitempty"`
	BaseURL     string        `yaml:"base_url"`
	CopiedReset time.Duration `yaml:"copied_reset"`
	LogLevel    string        `yaml:"log_level"`
	LogFormat   string        `yaml:"log_format"`
	Prompt      string        `yaml:"prompt"`
	Model       string        `yaml:"model"`
	PluginPath  string        `yaml:"plugin_path"`

	// PluginArgs are passed to the generator plugin. Values are parsed by
	// ParsePluginArgs.
	PluginArgs map[string]string `yaml:"plugin_args"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxColors:   palette.DefaultMaxColors,
		Generator:   string(generator.KindUniform),
		SeedMode:    string(seed.ModeRandom),
		CopiedReset: DefaultCopiedReset,
		LogLevel:    "info",
		LogFormat:   LogFormatText,
		Model:       generator.DefaultModel,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/swatches/config.yaml or its platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "swatches", "config.yaml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user supplied config path
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables looked up with getenv.
// Pass os.Getenv in production.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvMaxColors); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxColors, err)
		}
		c.MaxColors = n
	}
	if v := getenv(EnvSeed); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = &n
		c.SeedMode = string(seed.ModeManual)
	}
	if v := getenv(EnvGenerator); v != "" {
		c.Generator = v
	}
	if v := getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
	if v := getenv(EnvPrompt); v != "" {
		c.Prompt = v
	}
	if v := getenv(EnvPlugin); v != "" {
		c.PluginPath = v
	}
	return nil
}

// Validate checks field ranges and names.
func (c Config) Validate() error {
	if c.MaxColors < palette.MinColors || c.MaxColors > palette.LimitMaxColors {
		return fmt.Errorf("max_colors must be between %d and %d, got %d",
			palette.MinColors, palette.LimitMaxColors, c.MaxColors)
	}

	kind, err := generator.ParseKind(c.Generator)
	if err != nil {
		return err
	}
	if kind == generator.KindPrompt && c.Prompt == "" {
		return fmt.Errorf("generator %q needs a prompt", kind)
	}
	if kind == generator.KindPlugin && c.PluginPath == "" {
		return fmt.Errorf("generator %q needs plugin_path", kind)
	}

	mode, err := seed.ParseMode(c.SeedMode)
	if err != nil {
		return err
	}
	if mode == seed.ModeManual && c.Seed == nil {
		return fmt.Errorf("seed_mode manual needs a seed value")
	}

	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("log_format must be %q or %q, got %q", LogFormatText, LogFormatJSON, c.LogFormat)
	}

	if c.CopiedReset <= 0 {
		return fmt.Errorf("copied_reset must be positive, got %s", c.CopiedReset)
	}
	return nil
}

// SeedConfig returns the seed settings in the form the seed package wants.
func (c Config) SeedConfig() seed.Config {
	return seed.Config{Mode: seed.Mode(c.SeedMode), Value: c.Seed}
}

// ParsePluginArgs converts string arguments to plugin argument values.
// Numbers, booleans and JSON strings are decoded; anything else is passed
// through as a plain string.
func ParsePluginArgs(args map[string]string) map[string]any {
	if len(args) == 0 {
		return nil
	}
	out := make(map[string]any, len(args))
	for k, v := range args {
		var decoded any
		if err := json.Unmarshal([]byte(v), &decoded); err == nil {
			switch decoded.(type) {
			case float64, bool, string:
				out[k] = decoded
				continue
			}
		}
		out[k] = v
	}
	return out
}
