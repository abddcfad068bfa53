// Package script runs Lua wave definitions.
package script

import (
	"context"
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/opd-ai/go-gridwars/pkg/enemy"
	"github.com/opd-ai/go-gridwars/pkg/logging"
	"github.com/opd-ai/go-gridwars/pkg/physics"
)

// ErrNoWaveFunction is returned when a script does not define next_wave
var ErrNoWaveFunction = errors.New("script defines no next_wave function")

// waveFunction is the Lua global called for every wave
const waveFunction = "next_wave"

// Waves asks a Lua script for the enemies of each wave. The script
// defines
//
//	function next_wave(n, arena) ... end
//
// where arena has width, height, player_x and player_y, and returns an
// array of {kind = "rombus", x = ..., y = ...} tables.
//
// A Waves wraps a single Lua VM and must be used from one goroutine.
type Waves struct {
	vm     *lua.LState
	logger *logging.Logger
}

// LoadWaves runs the script at path and checks that it defines next_wave
func LoadWaves(path string, logger *logging.Logger) (*Waves, error) {
	w := newWaves(logger)
	if err := w.vm.DoFile(path); err != nil {
		w.Close()
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := w.check(); err != nil {
		w.Close()
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	w.logger.Debug(context.Background(), "loaded wave script", "file", path)
	return w, nil
}

// NewWaves runs a script held in memory
func NewWaves(source string, logger *logging.Logger) (*Waves, error) {
	w := newWaves(logger)
	if err := w.vm.DoString(source); err != nil {
		w.Close()
		return nil, fmt.Errorf("run wave script: %w", err)
	}
	if err := w.check(); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

func newWaves(logger *logging.Logger) *Waves {
	if logger == nil {
		logger = logging.Discard()
	}
	vm := lua.NewState()

	kinds := vm.NewTable()
	for i, k := range enemy.Kinds {
		kinds.RawSetInt(i+1, lua.LString(k.String()))
	}
	vm.SetGlobal("KINDS", kinds)

	return &Waves{vm: vm, logger: logger}
}

func (w *Waves) check() error {
	if _, ok := w.vm.GetGlobal(waveFunction).(*lua.LFunction); !ok {
		return ErrNoWaveFunction
	}
	return nil
}

// NextWave calls next_wave(n, arena) and converts its result
func (w *Waves) NextWave(n int, arena enemy.Arena) ([]enemy.SpawnOrder, error) {
	fn := w.vm.GetGlobal(waveFunction)
	if fn == lua.LNil {
		return nil, ErrNoWaveFunction
	}

	t := w.vm.NewTable()
	t.RawSetString("width", lua.LNumber(arena.Size.X))
	t.RawSetString("height", lua.LNumber(arena.Size.Y))
	t.RawSetString("player_x", lua.LNumber(arena.Player.X))
	t.RawSetString("player_y", lua.LNumber(arena.Player.Y))

	if err := w.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(n), t); err != nil {
		return nil, fmt.Errorf("%s(%d): %w", waveFunction, n, err)
	}

	result := w.vm.Get(-1)
	w.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%s(%d) returned %s, expected a table", waveFunction, n, result.Type())
	}
	return parseOrders(rt)
}

// parseOrders converts the array part of t into spawn orders.
func parseOrders(t *lua.LTable) ([]enemy.SpawnOrder, error) {
	orders := make([]enemy.SpawnOrder, 0, t.Len())
	for i := 1; i <= t.Len(); i++ {
		row, ok := t.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("order %d is not a table", i)
		}
		kind, err := enemy.ParseKind(lua.LVAsString(row.RawGetString("kind")))
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", i, err)
		}
		x, xok := row.RawGetString("x").(lua.LNumber)
		y, yok := row.RawGetString("y").(lua.LNumber)
		if !xok || !yok {
			return nil, fmt.Errorf("order %d: x and y must be numbers", i)
		}
		orders = append(orders, enemy.SpawnOrder{
			Kind:     kind,
			Position: physics.Vec(float32(x), float32(y)),
		})
	}
	return orders, nil
}

// Close shuts down the Lua VM
func (w *Waves) Close() {
	w.vm.Close()
}
