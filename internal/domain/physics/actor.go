package physics

// Actor is an entity that moves pixel by pixel and is blocked by solids and
// level geometry.
//
// Behaviour that subclasses would override is exposed as optional hooks:
// OnHitSolid (default no-op), OnSquish (default Kill) and Riding (default:
// one pixel below overlaps the solid).
type Actor struct {
	Body
	env *Env

	// Flags are passed to every collision query this actor issues.
	Flags CollisionFlags

	OnHitSolid func(hit SolidCollision, normal Direction)
	OnSquish   func(hit SolidCollision, normal Direction)
	Riding     func(s *Solid) bool
}

// NewActor creates an actor at (x, y) with the given pixel size
func NewActor(env *Env, x, y float64, w, h int, layers LayerMask) *Actor {
	a := &Actor{}
	a.init(env, x, y, w, h, layers)
	return a
}

func (a *Actor) init(env *Env, x, y float64, w, h int, layers LayerMask) {
	a.env = env
	a.Body.init(a, KindActor, x, y, w, h, layers)
}

// Env returns the shared query context
func (a *Actor) Env() *Env { return a.env }

// MoveX moves horizontally by amount. A push move reports a block as Squish,
// otherwise as OnHitSolid. It returns what stopped the move, if anything.
func (a *Actor) MoveX(amount float64, push bool) SolidCollision {
	return a.move(amount, true, push)
}

// MoveY moves vertically by amount. See MoveX.
func (a *Actor) MoveY(amount float64, push bool) SolidCollision {
	return a.move(amount, false, push)
}

func (a *Actor) move(amount float64, horizontal, push bool) SolidCollision {
	limit := a.env.maxMove()
	amount = clampFloat(amount, -limit, limit)
	if amount == 0 {
		return SolidCollision{}
	}

	pos := a.pos
	cur := pos.Y
	if horizontal {
		cur = pos.X
	}
	dest := cur + amount

	// Integer steps come from the continuous positions, so the fractional
	// part carries over to the next call instead of being dropped.
	delta := pixel(dest) - pixel(cur)
	step := sign(delta)
	dir := dirY(step)
	if horizontal {
		dir = dirX(step)
	}

	base := a.Bounds()
	moved := 0
	for moved != delta {
		next := moved + step
		probe := base.Offset(0, next)
		if horizontal {
			probe = base.Offset(next, 0)
		}
		hit := a.CollidesWithAnySolid(probe, dir)
		if hit.Hit() {
			a.setAxis(horizontal, cur+float64(moved))
			if push {
				a.Squish(hit, dir.Opposite())
			} else {
				a.HitSolid(hit, dir.Opposite())
			}
			return hit
		}
		moved = next
	}

	a.setAxis(horizontal, dest)
	return SolidCollision{}
}

func (a *Actor) setAxis(horizontal bool, v float64) {
	p := a.pos
	if horizontal {
		p.X = v
	} else {
		p.Y = v
	}
	a.SetPos(p)
}

// CollidesWithAnySolid reports what blocks bounds travelling in dir: the
// first same-layer solid that says so, else the level. It never mutates.
func (a *Actor) CollidesWithAnySolid(bounds Rect, dir Direction) SolidCollision {
	for _, e := range a.env.inRect(bounds, a.layers) {
		// Only solids block actors, so a never matches itself here.
		s, ok := e.(*Solid)
		if !ok {
			continue
		}
		if s.Collides(bounds, dir, a.Flags) {
			return SolidCollision{Kind: HitSolid, Solid: s}
		}
	}
	if lv := a.env.Level; lv != nil && !a.Flags.Has(FlagIgnoreLevel) {
		if lv.Collides(bounds, dir, a.Flags) {
			return SolidCollision{Kind: HitLevel}
		}
	}
	return SolidCollision{}
}

// CollideCheck probes one pixel in dir from the current bounds
func (a *Actor) CollideCheck(dir Direction) SolidCollision {
	return a.CollidesWithAnySolid(a.Bounds().Shift(dir, 1), dir)
}

// TryPushOutOfCollision nudges the actor one pixel at a time in dir until it
// no longer overlaps anything. It gives up after maxIterations nudges, leaving
// the position untouched and returning false.
func (a *Actor) TryPushOutOfCollision(dir Direction, maxIterations int) bool {
	if maxIterations <= 0 {
		maxIterations = DefaultSettleIterations
	}
	b := a.Bounds()
	n := 0
	for a.CollidesWithAnySolid(b.Shift(dir, n), dir).Hit() {
		if n >= maxIterations {
			return false
		}
		n++
	}
	a.nudge(dir, n)
	return true
}

// TryPushIntoCollision nudges the actor in dir until one more pixel would
// collide, so it ends flush against whatever is there. It gives up after
// maxIterations nudges, leaving the position untouched and returning false.
func (a *Actor) TryPushIntoCollision(dir Direction, maxIterations int) bool {
	if maxIterations <= 0 {
		maxIterations = DefaultSettleIterations
	}
	b := a.Bounds()
	n := 0
	for !a.CollidesWithAnySolid(b.Shift(dir, n+1), dir).Hit() {
		if n >= maxIterations {
			return false
		}
		n++
	}
	a.nudge(dir, n)
	return true
}

func (a *Actor) nudge(dir Direction, n int) {
	if n == 0 {
		return
	}
	a.SetPos(a.pos.Add(dir.Vec().Scale(float64(n))))
}

// IsRiding reports whether the actor stands on s and should be carried by it
func (a *Actor) IsRiding(s *Solid) bool {
	if a.Riding != nil {
		return a.Riding(s)
	}
	probe := a.Bounds().Shift(Down, 1)
	return s.Collides(probe, Down, a.Flags)
}

// HitSolid dispatches a blocked non-push move
func (a *Actor) HitSolid(hit SolidCollision, normal Direction) {
	if a.OnHitSolid != nil {
		a.OnHitSolid(hit, normal)
	}
}

// Squish dispatches a blocked push. Without a hook the actor is killed.
func (a *Actor) Squish(hit SolidCollision, normal Direction) {
	if a.OnSquish != nil {
		a.OnSquish(hit, normal)
		return
	}
	a.Kill()
}
