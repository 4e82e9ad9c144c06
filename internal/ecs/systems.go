package ecs

import (
	"github.com/yohamta/donburi"
	decs "github.com/yohamta/donburi/ecs"

	"github.com/younwookim/ridge/internal/domain/physics"
	"github.com/younwookim/ridge/internal/infrastructure/config"
)

// beginFrame drops every actor's per-frame query caches
func (w *World) beginFrame(e *decs.ECS) {
	actorQuery.Each(e.World, func(entry *donburi.Entry) {
		Actor.Get(entry).BeginFrame()
	})
}

// control turns the frame's intent into velocity changes on controlled actors
func (w *World) control(e *decs.ECS) {
	actorQuery.Each(e.World, func(entry *donburi.Entry) {
		a := Actor.Get(entry)
		if a.Controlled && a.settled && !a.Dead() {
			ApplyIntent(a.PlatformingActor, w.intent, w.cfg.Physics, w.dt)
		}
	})
}

// moveSolids runs before actors so riders see where their platform ended up
func (w *World) moveSolids(e *decs.ECS) {
	solidQuery.Each(e.World, func(entry *donburi.Entry) {
		Solid.Get(entry).Update(w.dt)
	})
}

func (w *World) moveActors(e *decs.ECS) {
	actorQuery.Each(e.World, func(entry *donburi.Entry) {
		a := Actor.Get(entry)
		// Unsettled actors are not in the broadphase yet.
		if a.settled && !a.Dead() {
			a.Update(w.dt)
		}
	})
}

// reap deletes entities whose body died this frame. The broadphase drops
// them at the flush that follows.
func (w *World) reap(e *decs.ECS) {
	var dead []donburi.Entity
	actorQuery.Each(e.World, func(entry *donburi.Entry) {
		if Actor.Get(entry).Dead() {
			dead = append(dead, entry.Entity())
		}
	})
	solidQuery.Each(e.World, func(entry *donburi.Entry) {
		if Solid.Get(entry).Dead() {
			dead = append(dead, entry.Entity())
		}
	})
	for _, id := range dead {
		e.World.Remove(id)
	}
}

// flush applies deferred broadphase changes, then settles actors that just
// became visible so their first frame starts on the ground.
func (w *World) flush(e *decs.ECS) {
	if !w.Space.Pending() {
		return
	}
	w.Space.Flush()
	actorQuery.Each(e.World, func(entry *donburi.Entry) {
		a := Actor.Get(entry)
		if a.settled {
			return
		}
		a.settled = true
		if !a.PostInitSetup() {
			w.Log.Printf("ecs: %s %q did not settle at %v", a.Kind, a.Name, a.Bounds())
		}
	})
}

// ApplyIntent drives a platforming actor from player intent: snap walking on
// the ground, accelerated drift in the air.
func ApplyIntent(a *physics.PlatformingActor, in Intent, cfg *config.PhysicsConfig, dt float64) {
	mv, jp := cfg.Movement, cfg.Jump
	if a.OnGround() {
		a.WalkIn(in.Move, mv.WalkSpeed)
		switch {
		case in.Drop:
			a.DropThrough(jp.DropThroughFrames)
		case in.Jump:
			a.Jump(jp.Speed)
		}
		return
	}

	a.DriftIn(in.Move, mv.AirAccel*dt, mv.MaxSpeed)
	if in.FastFall && a.VerticalSpeed() > 0 {
		a.FastFall()
	}
}
