package engine

import (
	"github.com/EngoEngine/ecs"
)

// Tick phases run in descending priority
const (
	PriorityControl    = 70
	PriorityPhysics    = 60
	PriorityMissiles   = 50
	PriorityEnemies    = 40
	PriorityCollisions = 30
	PriorityWaves      = 20
	PriorityGrid       = 10
)

// phaseSystem adapts one tick phase to an ecs system. The phases work on
// the World's stores rather than on ecs entities, so Remove is a no-op.
type phaseSystem struct {
	name     string
	priority int
	run      func(dt float32)
}

// Update runs the phase
func (s *phaseSystem) Update(dt float32) { s.run(dt) }

// Remove is required by ecs.System
func (s *phaseSystem) Remove(ecs.BasicEntity) {}

// Priority orders the phase within a tick
func (s *phaseSystem) Priority() int { return s.priority }

// Name identifies the phase in diagnostics
func (s *phaseSystem) Name() string { return s.name }

// initSystems registers every tick phase with the ecs scheduler.
func (w *World) initSystems() {
	w.systems = &ecs.World{}
	for _, s := range []*phaseSystem{
		{name: "control", priority: PriorityControl, run: w.applyControls},
		{name: "physics", priority: PriorityPhysics, run: w.integrate},
		{name: "missiles", priority: PriorityMissiles, run: w.updateMissiles},
		{name: "enemies", priority: PriorityEnemies, run: w.updateEnemies},
		{name: "collisions", priority: PriorityCollisions, run: func(float32) { w.ResolveCollisions() }},
		{name: "waves", priority: PriorityWaves, run: w.updateWaves},
		{name: "grid", priority: PriorityGrid, run: w.updateGrid},
	} {
		w.systems.AddSystem(s)
	}
}

// Phases returns the tick phase names in execution order
func (w *World) Phases() []string {
	var names []string
	for _, s := range w.systems.Systems() {
		if p, ok := s.(*phaseSystem); ok {
			names = append(names, p.name)
		}
	}
	return names
}

// integrate advances every body through the physics integrator.
func (w *World) integrate(float32) {
	w.integrator.Step(w.frame.elapsedMs, w.frame.subStepMs, w.bodies.Values())
}

// updateGrid advances the background lattice.
func (w *World) updateGrid(float32) {
	w.grid.Tick(w.frame.elapsedMs)
}
