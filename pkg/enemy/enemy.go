// Package enemy defines the enemy kinds and how each one steers.
package enemy

import (
	"fmt"

	"github.com/opd-ai/go-gridwars/pkg/physics"
	"github.com/opd-ai/go-gridwars/pkg/store"
)

// Kind identifies an enemy type
type Kind int

const (
	Rect Kind = iota
	Rombus
	Wanderer
	SpawningRect
	MiniRect
)

// Kinds lists every enemy kind in declaration order
var Kinds = []Kind{Rect, Rombus, Wanderer, SpawningRect, MiniRect}

// Score returns the points awarded for destroying an enemy of this kind
func (k Kind) Score() uint32 {
	switch k {
	case Rombus:
		return 100
	case Rect:
		return 300
	case Wanderer:
		return 200
	case SpawningRect:
		return 200
	case MiniRect:
		return 50
	default:
		panic(fmt.Sprintf("unknown enemy kind %d", int(k)))
	}
}

// String returns the kind name used in catalogs and scripts
func (k Kind) String() string {
	switch k {
	case Rect:
		return "rect"
	case Rombus:
		return "rombus"
	case Wanderer:
		return "wanderer"
	case SpawningRect:
		return "spawning_rect"
	case MiniRect:
		return "mini_rect"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a kind name back to its Kind
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown enemy kind %q", name)
}

// Enemy links a body in the body store to its kind and hull.
// Hull is shared with the catalog and must not be modified.
type Enemy struct {
	EntityID store.ID
	Kind     Kind
	Hull     []physics.Vector2
}

// SpawnOrder asks for one enemy of Kind at Position
type SpawnOrder struct {
	Kind     Kind
	Position physics.Vector2
}

// Arena is what a wave spawner may look at when placing enemies
type Arena struct {
	Size   physics.Vector2
	Player physics.Vector2
}
