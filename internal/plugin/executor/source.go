package executor

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatches/internal/colour"
	"github.com/jmylchreest/swatches/internal/generator"
	swplugin "github.com/jmylchreest/swatches/pkg/plugin"
)

// DefaultBatch is how many colours a Source requests per plugin call.
const DefaultBatch = 16

// SourceOptions tunes a Source.
type SourceOptions struct {
	Batch   int
	Seed    uint64
	Timeout time.Duration
	Args    map[string]any
	// Existing returns the palette's current colours. It is called before
	// every batch request.
	Existing func() []string
}

// Source is a generator.Generator backed by a plugin. Colours are fetched in
// batches and handed out one per Random call. After the first failed call
// every further colour comes from the fallback generator.
type Source struct {
	ctx      context.Context
	remote   Remote
	fallback generator.Generator
	logger   hclog.Logger
	opts     SourceOptions

	buf     []string
	batches uint64
	failed  bool
}

// NewSource returns a generator that draws from remote.
func NewSource(ctx context.Context, remote Remote, fallback generator.Generator, logger hclog.Logger, opts SourceOptions) *Source {
	if opts.Batch <= 0 || opts.Batch > swplugin.MaxBatch {
		opts.Batch = DefaultBatch
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Source{ctx: ctx, remote: remote, fallback: fallback, logger: logger, opts: opts}
}

// Random returns the next plugin colour, or a fallback colour when the
// plugin has failed or returned nothing usable.
func (s *Source) Random() string {
	if len(s.buf) == 0 && !s.failed {
		s.fill()
	}
	if len(s.buf) == 0 {
		return s.fallback.Random()
	}
	hex := s.buf[0]
	s.buf = s.buf[1:]
	return hex
}

// Failed reports whether the plugin has been abandoned for the fallback.
func (s *Source) Failed() bool { return s.failed }

func (s *Source) fill() {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.Timeout)
	defer cancel()

	req := swplugin.GenerateRequest{Count: s.opts.Batch, PluginArgs: s.opts.Args}
	if s.opts.Existing != nil {
		req.Existing = s.opts.Existing()
	}
	if s.opts.Seed != 0 {
		req.Seed = s.opts.Seed + s.batches
	}
	s.batches++

	raw, err := s.remote.Generate(ctx, req)
	if err != nil {
		s.failed = true
		s.logger.Warn("plugin generate failed, using fallback generator", "error", err)
		return
	}

	for _, h := range raw {
		norm, err := colour.Normalize(h)
		if err != nil {
			s.logger.Debug("discarding invalid plugin colour", "value", h)
			continue
		}
		s.buf = append(s.buf, norm)
	}
	if len(s.buf) == 0 {
		s.failed = true
		s.logger.Warn("plugin returned no valid colours, using fallback generator", "returned", len(raw))
	}
}
