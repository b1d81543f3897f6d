package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmylchreest/swatches/internal/config"
	"github.com/jmylchreest/swatches/internal/fragment"
	"github.com/jmylchreest/swatches/internal/generator"
	"github.com/jmylchreest/swatches/internal/palette"
	"github.com/jmylchreest/swatches/internal/plugin/executor"
	"github.com/jmylchreest/swatches/internal/seed"
)

// EnvGoogleAPIKey holds the Gemini API key used by the prompt generator.
const EnvGoogleAPIKey = "GOOGLE_API_KEY"

// promptPoolSize is how many colours the prompt generator asks for up front.
const promptPoolSize = 32

// session is a controller wired to its generator and share URL.
type session struct {
	ctrl  *palette.Controller
	store *fragment.URL
	close func()
}

// openStore builds the share URL store for input, which may be empty, a
// fragment or a full URL. A full URL replaces the configured base URL.
func (a *app) openStore(input string) (*fragment.URL, error) {
	input = strings.TrimSpace(input)
	if strings.Contains(input, "://") {
		return fragment.NewURL(input)
	}

	store, err := fragment.NewURL(a.cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if input != "" {
		raw, err := fragment.FromInput(input)
		if err != nil {
			return nil, err
		}
		if err := store.Save(raw); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// shareURL returns the link for p. A full URL in input keeps its own base.
func (a *app) shareURL(input string, p palette.Palette) (string, error) {
	store, err := a.openStore(input)
	if err != nil {
		return "", err
	}
	if err := store.Save(p.Fragment()); err != nil {
		return "", err
	}
	return store.String(), nil
}

// newSession opens input, builds the configured generator and loads the
// controller. Call close when done.
func (a *app) newSession(ctx context.Context, input string) (*session, error) {
	store, err := a.openStore(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette: %w", err)
	}
	initial, _ := store.Load()

	var ctrl *palette.Controller
	existing := func() []string {
		if ctrl == nil {
			return nil
		}
		return ctrl.Snapshot().Hexes()
	}

	gen, closeGen, err := a.buildGenerator(ctx, initial, existing)
	if err != nil {
		return nil, err
	}

	ctrl = palette.NewController(gen, store,
		palette.WithMaxColors(a.cfg.MaxColors),
		palette.WithLogger(a.logger.Named("palette")),
	)
	ctrl.Load()
	return &session{ctrl: ctrl, store: store, close: closeGen}, nil
}

// buildGenerator returns the configured colour source. Prompt and plugin
// generators that cannot be reached degrade to the uniform generator with a
// warning rather than failing the command. existing reports the palette's
// current colours to plugins.
func (a *app) buildGenerator(ctx context.Context, initialFragment string, existing func() []string) (generator.Generator, func(), error) {
	noop := func() {}

	seedVal, err := seed.Calculate(initialFragment, a.cfg.SeedConfig())
	if err != nil {
		return nil, noop, err
	}
	rng := seed.NewRand(seedVal)
	fallback := generator.NewUniform(rng)

	kind, err := generator.ParseKind(a.cfg.Generator)
	if err != nil {
		return nil, noop, err
	}
	a.logger.Debug("building generator", "kind", kind, "seed", seedVal)

	switch kind {
	case generator.KindPrompt:
		completer, err := generator.NewGenAICompleter(ctx, a.getenv(EnvGoogleAPIKey), a.cfg.Model)
		if err != nil {
			a.logger.Warn("prompt generator unavailable, using uniform colours", "error", err)
			return fallback, noop, nil
		}
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		return generator.NewPrompt(reqCtx, completer, a.cfg.Prompt, promptPoolSize, fallback, a.logger.Named("prompt")), noop, nil

	case generator.KindPlugin:
		return a.buildPluginGenerator(ctx, seedVal, fallback, existing)

	default:
		g, err := generator.New(kind, rng)
		return g, noop, err
	}
}

func (a *app) buildPluginGenerator(ctx context.Context, seedVal uint64, fallback generator.Generator, existing func() []string) (generator.Generator, func(), error) {
	noop := func() {}
	path := a.cfg.PluginPath

	info, err := executor.Probe(ctx, executor.ExecRunner{}, path)
	if err != nil {
		a.logger.Warn("plugin unavailable, using uniform colours", "path", path, "error", err)
		return fallback, noop, nil
	}

	exec, err := executor.New(path, a.logger)
	if err != nil {
		a.logger.Warn("plugin unavailable, using uniform colours", "path", path, "error", err)
		return fallback, noop, nil
	}
	a.logger.Debug("plugin loaded", "name", info.Name, "version", info.Version, "protocol", info.ProtocolVersion)

	src := executor.NewSource(ctx, exec, fallback, a.logger.Named("plugin"), executor.SourceOptions{
		Seed:     seedVal,
		Args:     config.ParsePluginArgs(a.cfg.PluginArgs),
		Existing: existing,
	})
	closeFn := func() {
		if src.Failed() {
			a.logger.Warn("plugin failed during this session, later colours came from the uniform generator", "plugin", exec.Path())
		}
		exec.Close()
	}
	return src, closeFn, nil
}
