// Package platform moves solids along scripted routes.
package platform

import (
	"github.com/younwookim/ridge/internal/domain/physics"
)

// Driver produces the displacement of a platform for one frame
type Driver interface {
	Step(dt float64) physics.Vec
}

// Platform is a solid moved by a driver every frame
type Platform struct {
	*physics.Solid
	Driver Driver
}

// New wraps a solid; a nil driver keeps it still
func New(s *physics.Solid, d Driver) *Platform {
	return &Platform{Solid: s, Driver: d}
}

// Update advances the driver and moves the solid, pushing and carrying actors
func (p *Platform) Update(dt float64) {
	if p.Driver == nil || p.Dead() {
		return
	}
	p.Move(p.Driver.Step(dt))
}

// Linear moves at a constant velocity forever
type Linear struct {
	Velocity physics.Vec // px/s
}

// Step implements Driver
func (l *Linear) Step(dt float64) physics.Vec {
	return l.Velocity.Scale(dt)
}
