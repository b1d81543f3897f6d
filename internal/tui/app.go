// Package tui is the interactive terminal front end for a palette controller.
//
// The App draws one full-height column per swatch and turns key presses and
// mouse clicks into controller actions. All palette access happens on the
// event loop. Clipboard writes and "copied" timers run elsewhere and report
// back by posting interrupt events to the screen.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatches/internal/palette"
)

// Options configures an App.
type Options struct {
	// Logger receives clipboard failures and debug output. Nil discards.
	Logger hclog.Logger
	// Clipboard defaults to the screen's OSC 52 clipboard.
	Clipboard Clipboard
	// CopiedReset is how long the "copied" flag stays up. Defaults to 1.5s.
	CopiedReset time.Duration
	// Share returns the text shown in the footer. Defaults to "#" + fragment.
	Share func() string
}

// App is the terminal render layer.
type App struct {
	screen    tcell.Screen
	ctrl      *palette.Controller
	logger    hclog.Logger
	clipboard Clipboard
	share     func() string

	bindings *Bindings
	copied   *copiedTracker
	post     func(data any)

	ctx         context.Context
	cancel      context.CancelFunc
	selected    int
	lastButtons tcell.ButtonMask
	dirty       bool
	quit        bool
}

// New returns an App drawing ctrl's palette on screen. The screen is
// initialised by Run.
func New(screen tcell.Screen, ctrl *palette.Controller, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = NewScreenClipboard(screen)
	}
	if opts.CopiedReset <= 0 {
		opts.CopiedReset = 1500 * time.Millisecond
	}
	if opts.Share == nil {
		opts.Share = func() string { return "#" + ctrl.Fragment() }
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		screen:    screen,
		ctrl:      ctrl,
		logger:    opts.Logger,
		clipboard: opts.Clipboard,
		share:     opts.Share,
		bindings:  NewBindings(),
		ctx:       ctx,
		cancel:    cancel,
		dirty:     true,
	}
	a.post = a.postToScreen
	a.copied = newCopiedTracker(opts.CopiedReset, func(r copiedReset) { a.post(r) })
	return a
}

// Run initialises the screen and processes events until the user quits or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise terminal: %w", err)
	}
	defer a.screen.Fini()
	a.screen.EnableMouse()

	defer a.bindKeys()()
	defer a.ctrl.Subscribe(func(palette.Palette) { a.dirty = true })()
	defer a.copied.Close()
	defer a.cancel()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	a.draw()
	for !a.quit {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			a.handleEvent(ev)
			if a.dirty && !a.quit {
				a.draw()
			}
		}
	}
	return nil
}

// bindKeys registers the keyboard interface and returns one disposer for all of it.
func (a *App) bindKeys() (dispose func()) {
	quit := func() { a.quit = true }
	grow := func() { a.ctrl.SetCount(a.ctrl.Len() + 1) }
	shrink := func() { a.ctrl.SetCount(a.ctrl.Len() - 1) }
	lock := func() { a.toggleLock(a.selected) }
	cp := func() { a.copyHex(a.selected) }

	disposers := []func(){
		a.bindings.Bind(RuneOf(' '), a.regenerate),
		a.bindings.Bind(RuneOf('q'), quit),
		a.bindings.Bind(KeyOf(tcell.KeyEscape), quit),
		a.bindings.Bind(KeyOf(tcell.KeyCtrlC), quit),
		a.bindings.Bind(KeyOf(tcell.KeyLeft), func() { a.moveSelection(-1) }),
		a.bindings.Bind(KeyOf(tcell.KeyRight), func() { a.moveSelection(1) }),
		a.bindings.Bind(KeyOf(tcell.KeyTab), func() { a.moveSelection(1) }),
		a.bindings.Bind(RuneOf('l'), lock),
		a.bindings.Bind(KeyOf(tcell.KeyEnter), lock),
		a.bindings.Bind(RuneOf('c'), cp),
		a.bindings.Bind(RuneOf('y'), cp),
		a.bindings.Bind(RuneOf('u'), func() { a.updateOne(a.selected) }),
		a.bindings.Bind(RuneOf('+'), grow),
		a.bindings.Bind(RuneOf('='), grow),
		a.bindings.Bind(RuneOf(']'), grow),
		a.bindings.Bind(RuneOf('-'), shrink),
		a.bindings.Bind(RuneOf('['), shrink),
	}
	for n := 1; n <= 9; n++ {
		idx := n - 1
		disposers = append(disposers, a.bindings.Bind(RuneOf(rune('0'+n)), func() { a.selectIndex(idx) }))
	}

	return func() {
		for _, d := range disposers {
			d()
		}
	}
}

func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.bindings.Handle(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
		a.dirty = true
	case *tcell.EventInterrupt:
		a.handleInterrupt(ev.Data())
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && a.lastButtons&tcell.Button1 == 0
	a.lastButtons = buttons
	if !pressed {
		return
	}

	x, y := ev.Position()
	w, h := a.screen.Size()
	l := newLayout(w, h, a.ctrl.Len(), a.ctrl.MaxColors())

	switch l.hit(x, y) {
	case hitShrink:
		a.ctrl.SetCount(a.ctrl.Len() - 1)
	case hitGrow:
		a.ctrl.SetCount(a.ctrl.Len() + 1)
	case hitHex:
		i := l.indexAt(x)
		a.selectIndex(i)
		a.copyHex(i)
	case hitLock:
		i := l.indexAt(x)
		a.selectIndex(i)
		a.toggleLock(i)
	case hitSwatch:
		a.selectIndex(l.indexAt(x))
	}
}

func (a *App) handleInterrupt(data any) {
	switch d := data.(type) {
	case copyResult:
		if d.err != nil {
			a.logger.Warn("clipboard write failed", "hex", d.hex, "error", d.err)
			return
		}
		a.copied.Mark(d.index, d.hex)
		a.dirty = true
	case copiedReset:
		if a.copied.Reset(d) {
			a.dirty = true
		}
	}
}

func (a *App) regenerate() {
	a.ctrl.Dispatch(palette.RegenerateUnlocked{})
}

func (a *App) toggleLock(i int) {
	if e, ok := a.entry(i); ok {
		a.ctrl.Dispatch(palette.ToggleLock{Hex: e.Hex})
	}
}

func (a *App) updateOne(i int) {
	if e, ok := a.entry(i); ok {
		a.ctrl.Dispatch(palette.UpdateOne{Hex: e.Hex})
	}
}

// copyHex writes the swatch's hex to the clipboard off the event loop.
func (a *App) copyHex(i int) {
	e, ok := a.entry(i)
	if !ok {
		return
	}
	go func(hex string) {
		err := a.clipboard.WriteText(a.ctx, hex)
		a.post(copyResult{index: i, hex: hex, err: err})
	}(e.Hex)
}

func (a *App) entry(i int) (palette.Entry, bool) {
	p := a.ctrl.Snapshot()
	if i < 0 || i >= len(p) {
		return palette.Entry{}, false
	}
	return p[i], true
}

func (a *App) moveSelection(delta int) {
	n := a.ctrl.Len()
	a.selected = ((a.selected+delta)%n + n) % n
	a.dirty = true
}

func (a *App) selectIndex(i int) {
	if i >= 0 && i < a.ctrl.Len() {
		a.selected = i
		a.dirty = true
	}
}

func (a *App) postToScreen(data any) {
	if err := a.screen.PostEvent(tcell.NewEventInterrupt(data)); err != nil {
		a.logger.Debug("dropped ui event", "error", err)
	}
}
