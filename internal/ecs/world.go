package ecs

import (
	"fmt"
	"log"
	"strings"

	"github.com/yohamta/donburi"
	decs "github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"

	"github.com/younwookim/ridge/internal/domain/level"
	"github.com/younwookim/ridge/internal/domain/physics"
	"github.com/younwookim/ridge/internal/domain/platform"
	"github.com/younwookim/ridge/internal/infrastructure/broadphase"
	"github.com/younwookim/ridge/internal/infrastructure/config"
)

var (
	actorQuery = donburi.NewQuery(filter.Contains(Actor))
	solidQuery = donburi.NewQuery(filter.Contains(Solid))
)

// World owns the donburi world, the broadphase and the level, and runs the
// per-frame physics pass over them.
type World struct {
	ecs   *decs.ECS
	Space *broadphase.Space
	Env   *physics.Env
	Level *level.Level

	cfg    *config.GameConfig
	intent Intent
	dt     float64
	frame  uint64

	Log *log.Logger
}

// NewWorld builds a world for lv and spawns its platforms and actors. The
// spawned actors are settled onto the ground before NewWorld returns.
func NewWorld(cfg *config.GameConfig, lv *level.Level) (*World, error) {
	if cfg == nil || cfg.Physics == nil || cfg.Entities == nil {
		return nil, fmt.Errorf("ecs: incomplete config")
	}
	if lv == nil || lv.Grid == nil {
		return nil, fmt.Errorf("ecs: level has no grid")
	}

	bp := cfg.Physics.Broadphase
	space, err := broadphase.New(broadphase.Config{
		X: bp.X, Y: bp.Y, Width: bp.Width, Height: bp.Height, CellSize: bp.CellSize,
	})
	if err != nil {
		return nil, err
	}

	w := &World{
		ecs:   decs.NewECS(donburi.NewWorld()),
		Space: space,
		Level: lv,
		cfg:   cfg,
		Log:   log.Default(),
	}
	w.Env = &physics.Env{
		Broadphase:       space,
		Level:            lv.Grid,
		MaxMove:          cfg.Physics.Physics.MaxMove,
		SettleIterations: cfg.Physics.Physics.SettleIterations,
		Debug:            cfg.Physics.Debug,
	}

	// Order matters: every system sees the results of the previous one.
	w.ecs.AddSystem(w.beginFrame)
	w.ecs.AddSystem(w.control)
	w.ecs.AddSystem(w.moveSolids)
	w.ecs.AddSystem(w.moveActors)
	w.ecs.AddSystem(w.reap)
	w.ecs.AddSystem(w.flush)

	for _, p := range lv.Platforms {
		if _, err := w.SpawnPlatform(p); err != nil {
			return nil, err
		}
	}
	for _, s := range lv.Spawns {
		if _, err := w.SpawnActor(s); err != nil {
			return nil, err
		}
	}
	w.flush(w.ecs)
	return w, nil
}

// SpawnActor creates an actor from its archetype. It joins the broadphase and
// is settled at the next frame boundary.
func (w *World) SpawnActor(s level.Spawn) (*donburi.Entry, error) {
	arch, ok := w.cfg.Entities.Actors[s.Kind]
	if !ok {
		return nil, fmt.Errorf("ecs: unknown actor kind %q", s.Kind)
	}
	gravity, err := parseGravity(arch.Gravity)
	if err != nil {
		return nil, fmt.Errorf("ecs: actor kind %q: %w", s.Kind, err)
	}

	width, height := arch.Width, arch.Height
	if s.W > 0 && s.H > 0 {
		width, height = s.W, s.H
	}
	layers := physics.LayerMask(arch.Layers)
	if layers == 0 {
		layers = physics.LayerAll
	}

	pcfg := w.cfg.Physics
	a := physics.NewPlatformingActor(w.Env, s.X, s.Y, width, height, layers)
	a.Gravity = gravity
	a.GravityStrength = pcfg.Physics.Gravity
	if arch.GravityScale != 0 {
		a.GravityStrength *= arch.GravityScale
	}
	a.MaxFall = pcfg.Physics.MaxFallSpeed
	a.FastFallStrength = pcfg.Jump.FastFall
	if !arch.Squishable {
		name := s.Name
		a.OnSquish = func(hit physics.SolidCollision, normal physics.Direction) {
			w.Log.Printf("ecs: %s %q pinned by %s", s.Kind, name, hit.Kind)
		}
	}

	entry := w.ecs.World.Entry(w.ecs.World.Create(Actor))
	Actor.SetValue(entry, ActorData{
		PlatformingActor: a,
		Name:             s.Name,
		Kind:             s.Kind,
		Controlled:       arch.Controlled,
	})
	if arch.Controlled {
		entry.AddComponent(Player)
	}
	w.Space.Add(&a.Actor)
	return entry, nil
}

// SpawnPlatform creates a solid, moving along p.Path when it has one or at
// p.Velocity otherwise
func (w *World) SpawnPlatform(p level.Platform) (*donburi.Entry, error) {
	if p.Bounds.Empty() {
		return nil, fmt.Errorf("ecs: platform %q has no size", p.Name)
	}
	layers := physics.LayerAll
	oneWay := p.OneWay
	if arch, ok := w.cfg.Entities.Solids[p.Kind]; ok {
		if arch.Layers != 0 {
			layers = physics.LayerMask(arch.Layers)
		}
		oneWay = oneWay || arch.OneWay
	}

	s := physics.NewSolid(w.Env, float64(p.Bounds.X), float64(p.Bounds.Y), p.Bounds.W, p.Bounds.H, layers)
	if oneWay {
		s.OneWay = physics.Down
	}

	var driver platform.Driver
	if path := platform.NewPath(p.Path, p.Speed, p.Loop); path != nil {
		driver = path
	} else if p.Velocity != (physics.Vec{}) {
		driver = &platform.Linear{Velocity: p.Velocity}
	}

	entry := w.ecs.World.Entry(w.ecs.World.Create(Solid))
	Solid.SetValue(entry, SolidData{Platform: platform.New(s, driver), Name: p.Name, Kind: p.Kind})
	if driver != nil {
		entry.AddComponent(MovingPlatform)
	}
	w.Space.Add(s)
	return entry, nil
}

// Update runs one frame with the given intent for controlled actors
func (w *World) Update(dt float64, in Intent) {
	w.dt = dt
	w.intent = in
	w.ecs.Update()
	w.frame++
}

// Frame returns the number of completed frames
func (w *World) Frame() uint64 { return w.frame }

// ECS exposes the underlying scheduler so renderers can be attached
func (w *World) ECS() *decs.ECS { return w.ecs }

// Player returns the first controlled actor
func (w *World) Player() (*ActorData, bool) {
	entry, ok := Player.First(w.ecs.World)
	if !ok {
		return nil, false
	}
	return Actor.Get(entry), true
}

// Actors returns every live actor in query order
func (w *World) Actors() []*ActorData {
	var out []*ActorData
	actorQuery.Each(w.ecs.World, func(entry *donburi.Entry) {
		out = append(out, Actor.Get(entry))
	})
	return out
}

// Solids returns every solid in query order
func (w *World) Solids() []*SolidData {
	var out []*SolidData
	solidQuery.Each(w.ecs.World, func(entry *donburi.Entry) {
		out = append(out, Solid.Get(entry))
	})
	return out
}

func parseGravity(s string) (physics.Direction, error) {
	switch strings.ToLower(s) {
	case "", "down":
		return physics.Down, nil
	case "up":
		return physics.Up, nil
	case "left":
		return physics.Left, nil
	case "right":
		return physics.Right, nil
	default:
		return physics.None, fmt.Errorf("unknown gravity %q", s)
	}
}
