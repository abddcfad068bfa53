package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-gridwars/pkg/engine"
)

type bitRecorder struct {
	bits engine.ControlBit
}

func (r *bitRecorder) ModifyControlBit(bit engine.ControlBit, enabled bool) {
	if enabled {
		r.bits |= bit
	} else {
		r.bits &^= bit
	}
}

func TestControlBitFor(t *testing.T) {
	tests := []struct {
		name     string
		event    *tcell.EventKey
		expected engine.ControlBit
		ok       bool
	}{
		{"w_moves_up", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), engine.BitUp, true},
		{"capital_d_moves_right", tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModShift), engine.BitRight, true},
		{"arrow_shoots", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), engine.BitShootLeft, true},
		{"other_rune", tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), 0, false},
		{"other_key", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bit, ok := controlBitFor(tt.event)
			if bit != tt.expected || ok != tt.ok {
				t.Errorf("controlBitFor() = %v, %v, expected %v, %v", bit, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestHeldKeys_Timeout(t *testing.T) {
	h := newHeldKeys(100 * time.Millisecond)
	r := &bitRecorder{}
	start := time.Unix(1000, 0)

	h.press(engine.BitUp, start)
	h.press(engine.BitShootRight, start.Add(50*time.Millisecond))

	h.apply(r, start.Add(80*time.Millisecond))
	if r.bits != engine.BitUp|engine.BitShootRight {
		t.Fatalf("bits = %08b, expected up and shoot right held", r.bits)
	}

	h.apply(r, start.Add(120*time.Millisecond))
	if r.bits != engine.BitShootRight {
		t.Errorf("bits = %08b, expected up released", r.bits)
	}

	// auto-repeat extends the hold
	h.press(engine.BitShootRight, start.Add(140*time.Millisecond))
	h.apply(r, start.Add(200*time.Millisecond))
	if r.bits != engine.BitShootRight {
		t.Errorf("bits = %08b, expected shoot right still held", r.bits)
	}

	h.reset()
	h.apply(r, start.Add(210*time.Millisecond))
	if r.bits != 0 {
		t.Errorf("bits = %08b after reset", r.bits)
	}
}
