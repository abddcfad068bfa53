// pkg/render/engo/scene.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-gridwars/pkg/audio"
	"github.com/opd-ai/go-gridwars/pkg/engine"
	"github.com/opd-ai/go-gridwars/pkg/render"
)

// GameScene represents the main game scene in Engo
type GameScene struct {
	world *engine.World
	audio *audio.Player

	// Rendering components
	renderer *LineRenderer
	camera   *CameraSystem
	input    *InputSystem
	sim      *simulationSystem
}

// NewGameScene creates a scene playing world. player may be nil.
func NewGameScene(world *engine.World, player *audio.Player) *GameScene {
	return &GameScene{world: world, audio: player}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	w, _ := u.(*ecs.World)
	common.SetBackground(color.Black)

	renderSystem := &common.RenderSystem{}
	w.AddSystem(renderSystem)

	SetupInputBindings()
	SetupCameraControls()

	scene.renderer = NewLineRenderer(renderSystem, scene.world.Config.Window.Title)
	scene.camera = NewCameraSystem(scene.world)
	scene.input = NewInputSystem(scene.world, scene.musicToggler())
	scene.sim = &simulationSystem{
		world:    scene.world,
		camera:   scene.camera,
		renderer: scene.renderer,
		setTitle: engo.SetTitle,
	}

	w.AddSystem(scene.input)
	w.AddSystem(scene.camera)
	w.AddSystem(scene.sim)
}

// Exit is called when the window closes
func (scene *GameScene) Exit() {
	if scene.audio != nil {
		scene.audio.Close()
	}
}

// musicToggler returns the audio player, or nil so no typed-nil
// interface reaches the input system.
func (scene *GameScene) musicToggler() MusicToggler {
	if scene.audio == nil {
		return nil
	}
	return scene.audio
}

// simulationSystem ticks the world once per engo frame and draws the
// resulting snapshot.
type simulationSystem struct {
	world    *engine.World
	camera   *CameraSystem
	renderer *LineRenderer
	setTitle func(string)
	title    string
}

// Remove satisfies the ecs.System interface
func (s *simulationSystem) Remove(basic ecs.BasicEntity) {}

// Priority runs the tick after input and camera
func (s *simulationSystem) Priority() int { return 10 }

// Update advances the world by dt seconds and redraws it
func (s *simulationSystem) Update(dt float32) {
	s.world.Tick(dt*1000, s.world.Config.Physics.SubStepMs)

	snap := s.world.Snapshot()
	snap.Camera = s.camera.Apply(snap.Camera)
	render.DrawFrame(s.renderer, snap)

	s.updateTitle()
}

// updateTitle pushes the HUD to the window title when it changed.
func (s *simulationSystem) updateTitle() {
	if hud := s.renderer.HUD(); hud != s.title {
		s.title = hud
		s.setTitle(hud)
	}
}
