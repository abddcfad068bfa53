package enemy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-gridwars/pkg/physics"
)

// Profile holds the static tuning and geometry of one enemy kind
type Profile struct {
	Accel       float32
	MaxVelocity float32
	Border      physics.BorderBehavior
	Hull        []physics.Vector2
}

// Catalog maps every kind to its profile. It is built once and read-only
// afterwards.
type Catalog struct {
	profiles map[Kind]Profile
}

func square(half float32) []physics.Vector2 {
	return []physics.Vector2{
		physics.Vec(-half, -half),
		physics.Vec(half, -half),
		physics.Vec(half, half),
		physics.Vec(-half, half),
	}
}

// DefaultCatalog returns the built-in profiles
func DefaultCatalog() *Catalog {
	return &Catalog{profiles: map[Kind]Profile{
		Rect: {Accel: 200, MaxVelocity: 100, Border: physics.Bounce, Hull: square(10)},
		Rombus: {Accel: 300, MaxVelocity: 140, Border: physics.Bounce, Hull: []physics.Vector2{
			physics.Vec(0, -12), physics.Vec(12, 0), physics.Vec(0, 12), physics.Vec(-12, 0),
		}},
		Wanderer: {Accel: 400, MaxVelocity: 80, Border: physics.Bounce, Hull: []physics.Vector2{
			physics.Vec(0, -12), physics.Vec(4, -4), physics.Vec(12, 0), physics.Vec(4, 4),
			physics.Vec(0, 12), physics.Vec(-4, 4), physics.Vec(-12, 0), physics.Vec(-4, -4),
		}},
		SpawningRect: {Accel: 150, MaxVelocity: 80, Border: physics.Bounce, Hull: square(14)},
		MiniRect:     {Accel: 300, MaxVelocity: 160, Border: physics.Bounce, Hull: square(6)},
	}}
}

// Profile returns the profile for k. It panics for kinds missing from
// the catalog.
func (c *Catalog) Profile(k Kind) Profile {
	p, ok := c.profiles[k]
	if !ok {
		panic(fmt.Sprintf("no profile for enemy kind %s", k))
	}
	return p
}

type profileEntry struct {
	Kind        string      `yaml:"kind"`
	Accel       *float32    `yaml:"accel"`
	MaxVelocity *float32    `yaml:"max_velocity"`
	Border      string      `yaml:"border"`
	Hull        [][]float32 `yaml:"hull"`
}

type catalogFile struct {
	Enemies []profileEntry `yaml:"enemies"`
}

// LoadCatalog reads enemy profiles from a YAML file. Kinds or fields the
// file leaves out keep their built-in values.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read enemy catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog document over the defaults
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse enemy catalog: %w", err)
	}

	c := DefaultCatalog()
	for i, e := range f.Enemies {
		kind, err := ParseKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("enemy catalog entry %d: %w", i, err)
		}
		p := c.profiles[kind]
		if e.Accel != nil {
			p.Accel = *e.Accel
		}
		if e.MaxVelocity != nil {
			p.MaxVelocity = *e.MaxVelocity
		}
		if e.Border != "" {
			if p.Border, err = parseBorder(e.Border); err != nil {
				return nil, fmt.Errorf("enemy catalog entry %d: %w", i, err)
			}
		}
		if len(e.Hull) > 0 {
			if p.Hull, err = parseHull(e.Hull); err != nil {
				return nil, fmt.Errorf("enemy catalog entry %d (%s): %w", i, kind, err)
			}
		}
		c.profiles[kind] = p
	}
	return c, nil
}

func parseBorder(name string) (physics.BorderBehavior, error) {
	for _, b := range []physics.BorderBehavior{physics.Dismiss, physics.Bounce, physics.BounceSlowdown} {
		if b.String() == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown border behavior %q", name)
}

func parseHull(points [][]float32) ([]physics.Vector2, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("hull needs at least 3 points, got %d", len(points))
	}
	hull := make([]physics.Vector2, len(points))
	for i, p := range points {
		if len(p) != 2 {
			return nil, fmt.Errorf("hull point %d has %d coordinates", i, len(p))
		}
		hull[i] = physics.Vec(p[0], p[1])
	}
	return hull, nil
}
