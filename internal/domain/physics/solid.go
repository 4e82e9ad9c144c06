package physics

// Solid is an obstacle that actors cannot enter. Moving a solid pushes the
// actors in its path and carries the ones riding it; solids themselves are
// never blocked.
type Solid struct {
	Body
	env *Env

	// OneWay, when set, makes the solid block only travel in that direction
	// through its first pixel row (jump-through platforms use Down).
	OneWay Direction
}

// NewSolid creates a solid at (x, y) with the given pixel size
func NewSolid(env *Env, x, y float64, w, h int, layers LayerMask) *Solid {
	s := &Solid{env: env}
	s.Body.init(s, KindSolid, x, y, w, h, layers)
	return s
}

// Collides implements Collider
func (s *Solid) Collides(bounds Rect, dir Direction, flags CollisionFlags) bool {
	if s.dead {
		return false
	}
	own := s.Bounds()
	if s.OneWay != None {
		return OneWayBlocks(own, bounds, dir, s.OneWay, flags)
	}
	return bounds.Overlaps(own)
}

// Move moves the solid by delta, pushing actors in its way and carrying riders.
func (s *Solid) Move(delta Vec) {
	if delta.X == 0 && delta.Y == 0 {
		return
	}

	// Riders are judged once, against the solid's position before the move.
	riders := s.riders()

	// Hidden from queries while moving so pushed and carried actors never
	// collide with this solid's old or new position.
	was := s.Enabled()
	s.SetEnabled(false)
	defer s.SetEnabled(was)

	s.moveAxis(true, delta.X, riders)
	s.moveAxis(false, delta.Y, riders)
}

func (s *Solid) moveAxis(horizontal bool, amount float64, riders []*Actor) {
	if amount == 0 {
		return
	}
	from := s.pos.Y
	if horizontal {
		from = s.pos.X
	}
	to := from + amount
	n := pixel(to) - pixel(from)
	step := sign(n)
	dir := dirY(step)
	if horizontal {
		dir = dirX(step)
	}

	// Riders are carried by the exact amount below, never pushed.
	riding := make(map[*Actor]bool, len(riders))
	for _, r := range riders {
		riding[r] = true
	}
	// Actors squished on this axis are not pushed again by later steps.
	squished := make(map[*Actor]bool)
	base := s.Bounds()
	// One-way solids carry riders but never push.
	if s.OneWay != None {
		n = 0
	}
	for i := 1; i <= abs(n); i++ {
		future := base.Offset(0, i*step)
		if horizontal {
			future = base.Offset(i*step, 0)
		}
		for _, e := range s.env.inRect(future, s.layers) {
			a, ok := e.(*Actor)
			if !ok || a.Dead() || riding[a] || squished[a] {
				continue
			}
			d := GetPushDistance(future, a, dir)
			if d*step <= 0 {
				continue
			}
			if a.move(float64(d), horizontal, true).Hit() {
				squished[a] = true
			}
		}
	}

	p := s.pos
	if horizontal {
		p.X = to
	} else {
		p.Y = to
	}
	s.SetPos(p)

	// Riders go along unconditionally; this solid is disabled so it cannot
	// block them, but other geometry still can. A rider stopped short while
	// the solid ends up overlapping it is crushed.
	now := s.Bounds()
	travel := 1
	if amount < 0 {
		travel = -1
	}
	normal := dirY(-travel)
	if horizontal {
		normal = dirX(-travel)
	}
	for _, r := range riders {
		if r.Dead() {
			continue
		}
		hit := r.move(amount, horizontal, false)
		if hit.Hit() && !r.Dead() && r.Bounds().Overlaps(now) {
			r.Squish(hit, normal)
		}
	}
}

func (s *Solid) riders() []*Actor {
	var out []*Actor
	for _, e := range s.env.inRect(s.Bounds().Inflate(1), s.layers) {
		a, ok := e.(*Actor)
		if !ok || a.Dead() {
			continue
		}
		if a.IsRiding(s) {
			out = append(out, a)
		}
	}
	return out
}

// GetPushDistance returns the signed gap between the solid's future leading
// edge and the actor's trailing edge along dir. A result with the wrong sign
// for dir means the actor is not in the way.
func GetPushDistance(future Rect, a *Actor, dir Direction) int {
	ab := a.Bounds()
	switch dir {
	case Right:
		return future.Right() - ab.Left()
	case Left:
		return future.Left() - ab.Right()
	case Down:
		return future.Bottom() - ab.Top()
	case Up:
		return future.Top() - ab.Bottom()
	default:
		return 0
	}
}
