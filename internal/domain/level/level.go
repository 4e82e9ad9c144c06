package level

import "github.com/younwookim/ridge/internal/domain/physics"

// Level is a loaded level: tile geometry plus the objects placed in it
type Level struct {
	Name      string
	Grid      *Grid
	Spawns    []Spawn
	Platforms []Platform
}

// Spawn places an actor. Kind is free-form ("player", "crate", ...).
type Spawn struct {
	Name string
	Kind string
	X, Y float64
	W, H int
}

// Platform describes a moving solid. It follows Path when that has at least
// two waypoints, otherwise drifts at Velocity, otherwise stays put.
type Platform struct {
	Name   string
	Kind   string // solid archetype, may be empty
	Bounds physics.Rect
	// Path lists the positions of the platform's top-left corner, starting
	// at Bounds.
	Path   []physics.Vec
	Speed  float64 // px/s along the path
	Loop   bool    // back to the start after the last point, else ping-pong
	OneWay bool

	Velocity physics.Vec // px/s, used without a path
}

// PlayerSpawn returns the first spawn of kind "player"
func (l *Level) PlayerSpawn() (Spawn, bool) {
	for _, s := range l.Spawns {
		if s.Kind == "player" {
			return s, true
		}
	}
	return Spawn{}, false
}
