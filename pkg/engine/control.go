package engine

import (
	"github.com/opd-ai/go-gridwars/pkg/physics"
)

// ControlBit is one input flag held by the front end
type ControlBit uint8

const (
	BitUp ControlBit = 1 << iota
	BitDown
	BitLeft
	BitRight
	BitShootUp
	BitShootDown
	BitShootLeft
	BitShootRight
)

// ModifyControlBit sets or clears one input flag
func (w *World) ModifyControlBit(bit ControlBit, enabled bool) {
	if enabled {
		w.controls |= bit
	} else {
		w.controls &^= bit
	}
}

// Controls returns the currently held input flags
func (w *World) Controls() ControlBit {
	return w.controls
}

// axis sums the unit directions of the held flags; screen y grows down
func (c ControlBit) axis(up, down, left, right ControlBit) physics.Vector2 {
	var v physics.Vector2
	if c&up != 0 {
		v.Y--
	}
	if c&down != 0 {
		v.Y++
	}
	if c&left != 0 {
		v.X--
	}
	if c&right != 0 {
		v.X++
	}
	return v
}

// Movement returns the unnormalized thrust direction
func (c ControlBit) Movement() physics.Vector2 {
	return c.axis(BitUp, BitDown, BitLeft, BitRight)
}

// Aim returns the unnormalized firing direction
func (c ControlBit) Aim() physics.Vector2 {
	return c.axis(BitShootUp, BitShootDown, BitShootLeft, BitShootRight)
}

// applyControls turns the held flags into player thrust and missiles.
func (w *World) applyControls(dt float32) {
	if w.state != Running {
		return
	}
	cfg := w.Config.Player

	var pos physics.Vector2
	w.bodies.With(w.player, func(b *physics.Body) {
		move := w.controls.Movement()
		if move.IsZero() {
			b.Acceleration = b.Direction.Scale(-cfg.Drag)
		} else {
			b.Acceleration = move.Normalize().Scale(cfg.Acceleration)
		}
		if !b.Direction.IsZero() {
			b.Angle = b.Direction.Angle()
		}
		pos = b.Position
	})

	w.fireCooldown -= dt
	aim := w.controls.Aim()
	if aim.IsZero() || w.fireCooldown > 0 {
		return
	}
	w.SpawnMissile(pos, aim.Normalize().Scale(w.Config.Missile.Speed))
	w.fireCooldown = cfg.FireInterval
}
