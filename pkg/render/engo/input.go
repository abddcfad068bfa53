// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-gridwars/pkg/engine"
)

// Button names registered with engo
const (
	ButtonUp         = "up"
	ButtonDown       = "down"
	ButtonLeft       = "left"
	ButtonRight      = "right"
	ButtonShootUp    = "shootUp"
	ButtonShootDown  = "shootDown"
	ButtonShootLeft  = "shootLeft"
	ButtonShootRight = "shootRight"
	ButtonRestart    = "restart"
	ButtonMusic      = "music"
	ButtonQuit       = "quit"
)

// controlButtons maps held buttons to simulation control bits
var controlButtons = []struct {
	name string
	bit  engine.ControlBit
}{
	{ButtonUp, engine.BitUp},
	{ButtonDown, engine.BitDown},
	{ButtonLeft, engine.BitLeft},
	{ButtonRight, engine.BitRight},
	{ButtonShootUp, engine.BitShootUp},
	{ButtonShootDown, engine.BitShootDown},
	{ButtonShootLeft, engine.BitShootLeft},
	{ButtonShootRight, engine.BitShootRight},
}

// Buttons reports button state by name
type Buttons interface {
	Down(name string) bool
	JustPressed(name string) bool
}

// engoButtons reads engo.Input
type engoButtons struct{}

func (engoButtons) Down(name string) bool        { return engo.Input.Button(name).Down() }
func (engoButtons) JustPressed(name string) bool { return engo.Input.Button(name).JustPressed() }

// MusicToggler switches background music on and off
type MusicToggler interface {
	ToggleMusic() bool
}

// InputSystem turns keyboard state into world controls every frame
type InputSystem struct {
	world   *engine.World
	buttons Buttons
	music   MusicToggler
	quit    func()
}

// NewInputSystem creates an input system reading engo.Input. music may be
// nil when audio is off.
func NewInputSystem(world *engine.World, music MusicToggler) *InputSystem {
	return &InputSystem{
		world:   world,
		buttons: engoButtons{},
		music:   music,
		quit:    engo.Exit,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Priority runs input ahead of the simulation tick
func (is *InputSystem) Priority() int { return 20 }

// Update copies held buttons into control bits and handles the one-shot
// restart, music and quit keys.
func (is *InputSystem) Update(dt float32) {
	for _, cb := range controlButtons {
		is.world.ModifyControlBit(cb.bit, is.buttons.Down(cb.name))
	}

	if is.buttons.JustPressed(ButtonRestart) && is.world.State() == engine.Lost {
		is.world.Restart()
	}
	if is.buttons.JustPressed(ButtonMusic) && is.music != nil {
		is.music.ToggleMusic()
	}
	if is.buttons.JustPressed(ButtonQuit) {
		is.quit()
	}
}

// SetupInputBindings registers the game's keys: WASD to move, arrows to
// shoot, R to restart, M for music and Escape to quit.
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonUp, engo.KeyW)
	engo.Input.RegisterButton(ButtonDown, engo.KeyS)
	engo.Input.RegisterButton(ButtonLeft, engo.KeyA)
	engo.Input.RegisterButton(ButtonRight, engo.KeyD)

	engo.Input.RegisterButton(ButtonShootUp, engo.KeyArrowUp)
	engo.Input.RegisterButton(ButtonShootDown, engo.KeyArrowDown)
	engo.Input.RegisterButton(ButtonShootLeft, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonShootRight, engo.KeyArrowRight)

	engo.Input.RegisterButton(ButtonRestart, engo.KeyR)
	engo.Input.RegisterButton(ButtonMusic, engo.KeyM)
	engo.Input.RegisterButton(ButtonQuit, engo.KeyEscape)
}
