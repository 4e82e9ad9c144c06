package ecs

import (
	"github.com/yohamta/donburi"

	"github.com/younwookim/ridge/internal/domain/physics"
	"github.com/younwookim/ridge/internal/domain/platform"
)

// ActorData is the physics body of an actor entity plus its archetype
type ActorData struct {
	*physics.PlatformingActor
	Name string
	Kind string
	// Controlled actors receive the frame's Intent.
	Controlled bool
	// settled is set once PostInitSetup has run after the actor's first flush.
	settled bool
}

// SolidData is the physics body of a solid entity and its driver
type SolidData struct {
	*platform.Platform
	Name string
	Kind string
}

// Intent is what a controller wants a controlled actor to do this frame
type Intent struct {
	Move     physics.Direction // Left, Right or None
	Jump     bool              // just pressed
	FastFall bool
	Drop     bool // fall through one-way surfaces
}

var (
	Actor = donburi.NewComponentType[ActorData]()
	Solid = donburi.NewComponentType[SolidData]()

	Player         = donburi.NewTag().SetName("Player")
	MovingPlatform = donburi.NewTag().SetName("MovingPlatform")
)
