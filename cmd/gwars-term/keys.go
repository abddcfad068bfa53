package main

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-gridwars/pkg/engine"
)

// holdTimeout is how long a key counts as held after its last press or
// auto-repeat. Terminals report no key releases.
const holdTimeout = 150 * time.Millisecond

var runeBits = map[rune]engine.ControlBit{
	'w': engine.BitUp,
	's': engine.BitDown,
	'a': engine.BitLeft,
	'd': engine.BitRight,
}

var keyBits = map[tcell.Key]engine.ControlBit{
	tcell.KeyUp:    engine.BitShootUp,
	tcell.KeyDown:  engine.BitShootDown,
	tcell.KeyLeft:  engine.BitShootLeft,
	tcell.KeyRight: engine.BitShootRight,
}

var allBits = []engine.ControlBit{
	engine.BitUp, engine.BitDown, engine.BitLeft, engine.BitRight,
	engine.BitShootUp, engine.BitShootDown, engine.BitShootLeft, engine.BitShootRight,
}

// controlBitFor maps a key event to the control it holds
func controlBitFor(ev *tcell.EventKey) (engine.ControlBit, bool) {
	if ev.Key() == tcell.KeyRune {
		bit, ok := runeBits[unicode.ToLower(ev.Rune())]
		return bit, ok
	}
	bit, ok := keyBits[ev.Key()]
	return bit, ok
}

type controlSetter interface {
	ModifyControlBit(bit engine.ControlBit, enabled bool)
}

// heldKeys emulates key release with a timeout per control bit
type heldKeys struct {
	timeout time.Duration
	until   map[engine.ControlBit]time.Time
}

func newHeldKeys(timeout time.Duration) *heldKeys {
	return &heldKeys{timeout: timeout, until: make(map[engine.ControlBit]time.Time)}
}

// press marks bit held until now+timeout
func (h *heldKeys) press(bit engine.ControlBit, now time.Time) {
	h.until[bit] = now.Add(h.timeout)
}

// apply writes every bit's held state at now into w
func (h *heldKeys) apply(w controlSetter, now time.Time) {
	for _, bit := range allBits {
		until, ok := h.until[bit]
		held := ok && now.Before(until)
		if ok && !held {
			delete(h.until, bit)
		}
		w.ModifyControlBit(bit, held)
	}
}

// reset releases every key
func (h *heldKeys) reset() {
	clear(h.until)
}
