package palette

import (
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatches/internal/fragment"
	"github.com/jmylchreest/swatches/internal/generator"
)

// Controller owns the current palette and mirrors it to a fragment store.
//
// A Controller is not safe for concurrent use. The render layer calls it from
// its event loop only. Sync is one way: the store is written after every
// dispatch and read once by Load, never watched.
type Controller struct {
	gen       generator.Generator
	store     fragment.Store
	logger    hclog.Logger
	maxColors int

	state   Palette
	subs    map[int]func(Palette)
	nextSub int
}

// Option configures a Controller.
type Option func(*Controller)

// WithMaxColors sets the palette size limit used by Load and SetCount.
func WithMaxColors(n int) Option {
	return func(c *Controller) {
		c.maxColors = max(MinColors, min(n, LimitMaxColors))
	}
}

// WithLogger sets the controller's logger.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController returns a controller with an empty palette. Call Load before use.
func NewController(gen generator.Generator, store fragment.Store, opts ...Option) *Controller {
	c := &Controller{
		gen:       gen,
		store:     store,
		logger:    hclog.NewNullLogger(),
		maxColors: DefaultMaxColors,
		subs:      make(map[int]func(Palette)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load initialises the palette from the store.
//
// Invalid segments are dropped and the result is cut to the maximum size. If
// nothing usable remains, the palette starts with one generated colour. The
// loaded palette is written back, so the store always holds normalised form.
func (c *Controller) Load() Palette {
	raw, err := c.store.Load()
	if err != nil {
		c.logger.Warn("failed to read fragment, starting fresh", "error", err)
		raw = ""
	}

	hexes := fragment.Decode(raw, c.maxColors)
	if len(hexes) == 0 {
		if raw != "" {
			c.logger.Debug("fragment held no valid colours", "fragment", raw)
		}
		c.state = Palette{fresh(c.gen)}
	} else {
		c.state = FromHexes(hexes)
	}

	c.save()
	c.notify()
	return c.Snapshot()
}

// Dispatch applies a to the palette, mirrors the result to the store and
// returns a snapshot of the new palette.
func (c *Controller) Dispatch(a Action) Palette {
	next := Apply(c.state, a, c.gen)
	changed := !next.Equal(c.state)
	c.state = next

	c.logger.Debug("palette action", "action", a.String(), "changed", changed, "size", len(next), "locked", next.Locked())
	c.save()
	if changed {
		c.notify()
	}
	return c.Snapshot()
}

// SetCount grows or shrinks the palette towards n, clamped to [1, MaxColors].
// This is the range control's entry point.
func (c *Controller) SetCount(n int) Palette {
	a := Resize(len(c.state), n, c.maxColors)
	if a == nil {
		return c.Snapshot()
	}
	return c.Dispatch(a)
}

// Snapshot returns a copy of the current palette.
func (c *Controller) Snapshot() Palette { return c.state.Clone() }

// Len returns the current palette size.
func (c *Controller) Len() int { return len(c.state) }

// MaxColors returns the configured size limit.
func (c *Controller) MaxColors() int { return c.maxColors }

// Fragment returns the encoded current palette.
func (c *Controller) Fragment() string { return c.state.Fragment() }

// Subscribe registers fn to receive a snapshot after every change. The
// returned function removes the subscription; calling it twice is harmless.
func (c *Controller) Subscribe(fn func(Palette)) (unsubscribe func()) {
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() { delete(c.subs, id) }
}

func (c *Controller) save() {
	if err := c.store.Save(c.state.Fragment()); err != nil {
		c.logger.Error("failed to write fragment", "error", err)
	}
}

func (c *Controller) notify() {
	for _, fn := range c.subs {
		fn(c.Snapshot())
	}
}
