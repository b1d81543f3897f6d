package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/jmylchreest/swatches/internal/colour"
)

const (
	helpText    = " space: new colours  ←/→: select  l: lock  c: copy  u: update  q: quit"
	lockedText  = "[locked]"
	openText    = "[ open ]"
	copiedText  = "copied!"
	hexSample   = "#000000"
	selectedDot = '•'
)

type hitArea int

const (
	hitNone hitArea = iota
	hitShrink
	hitGrow
	hitSwatch
	hitHex
	hitLock
)

// layout positions the header, swatch columns and footer for one frame.
// Row 0 is the header, the last row is the footer and the rows between are
// swatches.
type layout struct {
	w, h      int
	n         int
	maxColors int
}

func newLayout(w, h, n, maxColors int) layout {
	return layout{w: w, h: h, n: max(n, 1), maxColors: maxColors}
}

func (l layout) top() int    { return 1 }
func (l layout) bottom() int { return l.h - 1 }

func (l layout) hexRow() int    { return l.top() + (l.bottom()-l.top())/2 }
func (l layout) copiedRow() int { return l.hexRow() + 1 }
func (l layout) lockRow() int   { return l.hexRow() + 2 }
func (l layout) markRow() int   { return l.hexRow() - 2 }

// column returns the half open x range of swatch i.
func (l layout) column(i int) (x0, x1 int) {
	return i * l.w / l.n, (i + 1) * l.w / l.n
}

// indexAt returns the swatch under column x.
func (l layout) indexAt(x int) int {
	for i := range l.n {
		if _, x1 := l.column(i); x < x1 {
			return i
		}
	}
	return l.n - 1
}

// counterText is the range control drawn at the right of the header.
func (l layout) counterText() string {
	return fmt.Sprintf("[-] %d/%d [+] ", l.n, l.maxColors)
}

func (l layout) counterX() int {
	return l.w - len([]rune(l.counterText()))
}

// centered returns the x at which s is centred in swatch i.
func (l layout) centered(i int, s string) int {
	x0, x1 := l.column(i)
	return x0 + (x1-x0-len([]rune(s)))/2
}

func (l layout) hit(x, y int) hitArea {
	if y == 0 {
		cx := l.counterX()
		plus := cx + len([]rune(l.counterText())) - 4
		switch {
		case x >= cx && x < cx+3:
			return hitShrink
		case x >= plus && x < plus+3:
			return hitGrow
		}
		return hitNone
	}
	if y < l.top() || y >= l.bottom() {
		return hitNone
	}

	i := l.indexAt(x)
	switch y {
	case l.hexRow():
		if within(x, l.centered(i, hexSample), len(hexSample)) {
			return hitHex
		}
	case l.lockRow():
		if within(x, l.centered(i, lockedText), len(lockedText)) {
			return hitLock
		}
	}
	return hitSwatch
}

func within(x, start, width int) bool {
	return x >= start && x < start+width
}

func (a *App) draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	p := a.ctrl.Snapshot()
	l := newLayout(w, h, len(p), a.ctrl.MaxColors())

	if a.selected >= len(p) {
		a.selected = len(p) - 1
	}

	chrome := tcell.StyleDefault.Reverse(true)
	fillRow(a.screen, 0, w, chrome)
	drawText(a.screen, 0, 0, w, helpText, chrome)
	drawText(a.screen, l.counterX(), 0, w, l.counterText(), chrome.Bold(true))

	for i, e := range p {
		rgb := colour.MustRGB(e.Hex)
		fg := colour.Foreground(rgb.Color())
		style := tcell.StyleDefault.
			Background(tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))).
			Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B)))

		x0, x1 := l.column(i)
		for y := l.top(); y < l.bottom(); y++ {
			for x := x0; x < x1; x++ {
				a.screen.SetContent(x, y, ' ', nil, style)
			}
		}

		if i == a.selected {
			a.screen.SetContent(l.centered(i, "x"), l.markRow(), selectedDot, nil, style)
		}
		drawText(a.screen, l.centered(i, e.Hex), l.hexRow(), x1, e.Hex, style.Bold(true))
		if a.copied.Copied(i, e.Hex) {
			drawText(a.screen, l.centered(i, copiedText), l.copiedRow(), x1, copiedText, style)
		}
		lock := openText
		if e.Locked {
			lock = lockedText
		}
		drawText(a.screen, l.centered(i, lock), l.lockRow(), x1, lock, style)
	}

	fillRow(a.screen, h-1, w, chrome)
	drawText(a.screen, 1, h-1, w, a.share(), chrome)

	a.screen.Show()
	a.dirty = false
}

func fillRow(s tcell.Screen, y, w int, style tcell.Style) {
	for x := range w {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// drawText writes s from x, clipped at limit.
func drawText(s tcell.Screen, x, y, limit int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= limit {
			return
		}
		if x >= 0 {
			s.SetContent(x, y, r, nil, style)
		}
		x++
	}
}
