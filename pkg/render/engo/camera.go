// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-gridwars/pkg/engine"
	"github.com/opd-ai/go-gridwars/pkg/physics"
)

// Zoom buttons
const (
	ButtonZoomIn    = "zoomIn"
	ButtonZoomOut   = "zoomOut"
	ButtonZoomReset = "zoomReset"
)

// CameraSystem keeps the world's viewport in sync with the window and
// adds a zoom about the window center on top of the world camera.
type CameraSystem struct {
	world   *engine.World
	buttons Buttons
	size    func() (float32, float32)

	width, height float32

	zoom    float32
	minZoom float32
	maxZoom float32
}

// NewCameraSystem creates a camera tracking the engo window
func NewCameraSystem(world *engine.World) *CameraSystem {
	return &CameraSystem{
		world:   world,
		buttons: engoButtons{},
		size:    func() (float32, float32) { return engo.GameWidth(), engo.GameHeight() },
		zoom:    1.0,
		minZoom: 0.25,
		maxZoom: 3.0,
	}
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Priority runs the camera ahead of the simulation tick
func (cs *CameraSystem) Priority() int { return 15 }

// Update follows window resizes and zoom keys
func (cs *CameraSystem) Update(dt float32) {
	if w, h := cs.size(); w != cs.width || h != cs.height {
		cs.width, cs.height = w, h
		cs.world.UpdateWindowSize(w, h)
	}

	cs.handleZoomInput()
}

// handleZoomInput processes zoom-related input
func (cs *CameraSystem) handleZoomInput() {
	if engo.Input != nil && engo.Input.Mouse.ScrollY != 0 {
		cs.SetZoom(cs.zoom * (1 + engo.Input.Mouse.ScrollY*0.1))
	}
	if cs.buttons.Down(ButtonZoomIn) {
		cs.SetZoom(cs.zoom * 1.02)
	}
	if cs.buttons.Down(ButtonZoomOut) {
		cs.SetZoom(cs.zoom * 0.98)
	}
	if cs.buttons.JustPressed(ButtonZoomReset) {
		cs.SetZoom(1.0)
	}
}

// Apply returns camera scaled about the window center by the current zoom
func (cs *CameraSystem) Apply(camera physics.Transform) physics.Transform {
	if cs.zoom == 1 {
		return camera
	}
	center := physics.Vec(cs.width/2, cs.height/2)
	return physics.TranslationV(center).
		Mul(physics.Scaling(cs.zoom, cs.zoom)).
		Mul(physics.TranslationV(center.Scale(-1))).
		Mul(camera)
}

// SetZoom sets the camera zoom level
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = min(max(zoom, cs.minZoom), cs.maxZoom)
}

// Zoom returns the current zoom level
func (cs *CameraSystem) Zoom() float32 {
	return cs.zoom
}

// SetupCameraControls registers Z and X to zoom and C to reset
func SetupCameraControls() {
	engo.Input.RegisterButton(ButtonZoomIn, engo.KeyZ)
	engo.Input.RegisterButton(ButtonZoomOut, engo.KeyX)
	engo.Input.RegisterButton(ButtonZoomReset, engo.KeyC)
}
