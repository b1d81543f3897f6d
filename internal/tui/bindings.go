package tui

import "github.com/gdamore/tcell/v2"

// KeySpec identifies a key press. Rune is only set for tcell.KeyRune.
type KeySpec struct {
	Key  tcell.Key
	Rune rune
}

// KeyOf returns the spec for a special key such as tcell.KeyLeft.
func KeyOf(k tcell.Key) KeySpec { return KeySpec{Key: k} }

// RuneOf returns the spec for a printable key.
func RuneOf(r rune) KeySpec { return KeySpec{Key: tcell.KeyRune, Rune: r} }

func specOf(ev *tcell.EventKey) KeySpec {
	if ev.Key() == tcell.KeyRune {
		return RuneOf(ev.Rune())
	}
	return KeyOf(ev.Key())
}

type binding struct {
	id      int
	handler func()
}

// Bindings maps key presses to handlers. Each Bind returns a disposer that
// removes exactly that registration, so a component can release everything
// it bound when it is torn down.
type Bindings struct {
	byKey  map[KeySpec][]binding
	nextID int
}

// NewBindings returns an empty key map.
func NewBindings() *Bindings {
	return &Bindings{byKey: make(map[KeySpec][]binding)}
}

// Bind registers handler for key and returns its disposer.
func (b *Bindings) Bind(key KeySpec, handler func()) (dispose func()) {
	id := b.nextID
	b.nextID++
	b.byKey[key] = append(b.byKey[key], binding{id: id, handler: handler})

	return func() {
		list := b.byKey[key]
		for i, bd := range list {
			if bd.id == id {
				b.byKey[key] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(b.byKey[key]) == 0 {
			delete(b.byKey, key)
		}
	}
}

// Handle runs the handlers bound to ev. It reports whether any ran, in which
// case the key is consumed and has no further effect.
func (b *Bindings) Handle(ev *tcell.EventKey) bool {
	list := b.byKey[specOf(ev)]
	for _, bd := range list {
		bd.handler()
	}
	return len(list) > 0
}

// Len returns the number of live registrations.
func (b *Bindings) Len() int {
	n := 0
	for _, list := range b.byKey {
		n += len(list)
	}
	return n
}
