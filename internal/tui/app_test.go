package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/jmylchreest/swatches/internal/fragment"
	"github.com/jmylchreest/swatches/internal/generator"
	"github.com/jmylchreest/swatches/internal/palette"
)

const (
	screenW = 60
	screenH = 20
)

type fakeClipboard struct {
	mu     sync.Mutex
	err    error
	writes []string
}

func (f *fakeClipboard) WriteText(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, text)
	return f.err
}

func (f *fakeClipboard) Writes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.writes...)
}

type harness struct {
	app    *App
	ctrl   *palette.Controller
	store  *fragment.Memory
	screen tcell.SimulationScreen
	clip   *fakeClipboard
	posted chan any
}

func newHarness(t *testing.T, initial string) *harness {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() error = %v", err)
	}
	screen.SetSize(screenW, screenH)
	t.Cleanup(screen.Fini)

	n := 0
	gen := generator.Func(func() string {
		n++
		return fmt.Sprintf("#%06x", n)
	})
	store := fragment.NewMemory(initial)
	ctrl := palette.NewController(gen, store, palette.WithMaxColors(6))
	ctrl.Load()

	clip := &fakeClipboard{}
	app := New(screen, ctrl, Options{Clipboard: clip, CopiedReset: 20 * time.Millisecond})
	posted := make(chan any, 8)
	app.post = func(data any) { posted <- data }

	t.Cleanup(app.bindKeys())
	t.Cleanup(app.copied.Close)

	return &harness{app: app, ctrl: ctrl, store: store, screen: screen, clip: clip, posted: posted}
}

func (h *harness) key(r rune) {
	h.app.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func (h *harness) special(k tcell.Key) {
	h.app.handleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func (h *harness) click(x, y int) {
	h.app.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	h.app.handleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func (h *harness) layout() layout {
	return newLayout(screenW, screenH, h.ctrl.Len(), h.ctrl.MaxColors())
}

// next waits for the next posted event and feeds it back into the loop.
func (h *harness) next(t *testing.T) any {
	t.Helper()
	select {
	case data := <-h.posted:
		h.app.handleEvent(tcell.NewEventInterrupt(data))
		return data
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for posted event")
		return nil
	}
}

func (h *harness) text(x, y, n int) string {
	out := make([]rune, 0, n)
	for i := range n {
		r, _, _, _ := h.screen.GetContent(x+i, y)
		out = append(out, r)
	}
	return string(out)
}

func TestSpaceRegeneratesUnlocked(t *testing.T) {
	h := newHarness(t, "ff0000-00ff00-0000ff")

	h.key('l') // lock the selected first swatch
	h.key(' ')

	got := h.ctrl.Snapshot()
	want := palette.Palette{{Hex: "#ff0000", Locked: true}, {Hex: "#000001"}, {Hex: "#000002"}}
	if !got.Equal(want) {
		t.Errorf("palette = %v, want %v", got, want)
	}
	if frag, _ := h.store.Load(); frag != "ff0000-000001-000002" {
		t.Errorf("fragment = %q", frag)
	}
}

func TestSelectionAndUpdateOne(t *testing.T) {
	h := newHarness(t, "ff0000-00ff00-0000ff")

	h.special(tcell.KeyRight)
	h.key('u')
	h.key('3')
	h.key('l')

	got := h.ctrl.Snapshot()
	want := palette.Palette{{Hex: "#ff0000"}, {Hex: "#000001"}, {Hex: "#0000ff", Locked: true}}
	if !got.Equal(want) {
		t.Errorf("palette = %v, want %v", got, want)
	}

	h.special(tcell.KeyLeft)
	h.special(tcell.KeyLeft)
	h.special(tcell.KeyLeft)
	if h.app.selected != 2 {
		t.Errorf("selected = %d, want wrap to 2", h.app.selected)
	}
}

func TestRangeKeys(t *testing.T) {
	h := newHarness(t, "ff0000-00ff00-0000ff")

	for range 5 {
		h.key('+')
	}
	if h.ctrl.Len() != 6 {
		t.Errorf("Len() = %d, want clamp at 6", h.ctrl.Len())
	}
	for range 9 {
		h.key('-')
	}
	if h.ctrl.Len() != 1 {
		t.Errorf("Len() = %d, want clamp at 1", h.ctrl.Len())
	}
	if h.ctrl.Snapshot()[0].Hex != "#ff0000" {
		t.Errorf("first entry = %v", h.ctrl.Snapshot()[0])
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tcell.Key{tcell.KeyEscape, tcell.KeyCtrlC} {
		h := newHarness(t, "ff0000")
		h.special(k)
		if !h.app.quit {
			t.Errorf("key %v did not quit", k)
		}
	}
	h := newHarness(t, "ff0000")
	h.key('q')
	if !h.app.quit {
		t.Error("q did not quit")
	}
}

func TestClickLockToggles(t *testing.T) {
	h := newHarness(t, "ff0000-00ff00-0000ff")
	l := h.layout()

	h.click(l.centered(1, lockedText), l.lockRow())

	if !h.ctrl.Snapshot()[1].Locked {
		t.Error("swatch 1 not locked after click")
	}
	if h.app.selected != 1 {
		t.Errorf("selected = %d, want 1", h.app.selected)
	}

	// clicks elsewhere on the swatch only select
	h.click(l.centered(2, "x"), l.top())
	if h.ctrl.Snapshot()[2].Locked {
		t.Error("swatch 2 locked by a plain click")
	}
	if h.app.selected != 2 {
		t.Errorf("selected = %d, want 2", h.app.selected)
	}
}

func TestClickCounter(t *testing.T) {
	h := newHarness(t, "ff0000-00ff00-0000ff")
	l := h.layout()

	h.click(l.counterX()+1, 0)
	if h.ctrl.Len() != 2 {
		t.Fatalf("Len() after [-] = %d, want 2", h.ctrl.Len())
	}

	l = h.layout()
	h.click(l.counterX()+len([]rune(l.counterText()))-3, 0)
	if h.ctrl.Len() != 3 {
		t.Errorf("Len() after [+] = %d, want 3", h.ctrl.Len())
	}
}

func TestCopyShowsFlagThenClears(t *testing.T) {
	h := newHarness(t, "ff0000-00ff00-0000ff")
	l := h.layout()

	h.click(l.centered(0, hexSample), l.hexRow())

	if res, ok := h.next(t).(copyResult); !ok || res.hex != "#ff0000" {
		t.Fatalf("posted %v, want copyResult for #ff0000", res)
	}
	if got := h.clip.Writes(); len(got) != 1 || got[0] != "#ff0000" {
		t.Errorf("clipboard writes = %v", got)
	}
	if !h.app.copied.Copied(0, "#ff0000") {
		t.Fatal("copied flag not set")
	}

	h.app.draw()
	if got := h.text(l.centered(0, copiedText), l.copiedRow(), len(copiedText)); got != copiedText {
		t.Errorf("copied row = %q, want %q", got, copiedText)
	}

	if _, ok := h.next(t).(copiedReset); !ok {
		t.Fatal("expected copiedReset")
	}
	if h.app.copied.Copied(0, "#ff0000") {
		t.Error("copied flag not cleared")
	}
}

func TestCopyFlagsOnlyTheClickedSwatch(t *testing.T) {
	h := newHarness(t, "ff0000-ff0000")
	l := h.layout()

	h.click(l.centered(0, hexSample), l.hexRow())
	if res, ok := h.next(t).(copyResult); !ok || res.index != 0 {
		t.Fatalf("posted %v, want copyResult for swatch 0", res)
	}
	h.app.draw()

	if got := h.text(l.centered(0, copiedText), l.copiedRow(), len(copiedText)); got != copiedText {
		t.Errorf("swatch 0 copied row = %q, want %q", got, copiedText)
	}
	if got := h.text(l.centered(1, copiedText), l.copiedRow(), len(copiedText)); got == copiedText {
		t.Errorf("swatch 1 copied row = %q, want it blank", got)
	}
}

func TestCopyFailureLeavesPalette(t *testing.T) {
	h := newHarness(t, "ff0000-00ff00")
	h.clip.err = errors.New("no clipboard")
	before := h.ctrl.Snapshot()

	h.key('c')
	h.next(t)

	if h.app.copied.Copied(0, "#ff0000") {
		t.Error("copied flag set after failed write")
	}
	if !h.ctrl.Snapshot().Equal(before) {
		t.Error("palette changed after clipboard failure")
	}
}

func TestDrawShowsSwatches(t *testing.T) {
	h := newHarness(t, "ff0000-ffffff")
	h.key('l')
	h.app.draw()
	l := h.layout()

	for i, hex := range []string{"#ff0000", "#ffffff"} {
		if got := h.text(l.centered(i, hex), l.hexRow(), len(hex)); got != hex {
			t.Errorf("swatch %d hex = %q, want %q", i, got, hex)
		}
	}
	if got := h.text(l.centered(0, lockedText), l.lockRow(), len(lockedText)); got != lockedText {
		t.Errorf("swatch 0 lock = %q", got)
	}
	if got := h.text(l.centered(1, openText), l.lockRow(), len(openText)); got != openText {
		t.Errorf("swatch 1 lock = %q", got)
	}

	_, _, style, _ := h.screen.GetContent(l.centered(1, "#ffffff"), l.hexRow())
	fg, bg, _ := style.Decompose()
	if bg != tcell.NewRGBColor(255, 255, 255) || fg != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("white swatch colours fg=%v bg=%v, want black on white", fg, bg)
	}

	if got := h.text(1, screenH-1, len("#ff0000-ffffff")); got != "#ff0000-ffffff" {
		t.Errorf("footer = %q", got)
	}
}

func TestBindingsDisposed(t *testing.T) {
	h := newHarness(t, "ff0000")
	b := NewBindings()
	h.app.bindings = b

	dispose := h.app.bindKeys()
	if b.Len() == 0 {
		t.Fatal("no bindings registered")
	}
	dispose()
	if b.Len() != 0 {
		t.Errorf("Len() after dispose = %d, want 0", b.Len())
	}
}
