package physics

// GroundState is the implicit ground/air state of a platforming actor
type GroundState uint8

const (
	Airborne GroundState = iota
	Grounded
)

// String returns the state name
func (s GroundState) String() string {
	if s == Grounded {
		return "Grounded"
	}
	return "Airborne"
}

// frameCache remembers whether a per-frame query result is still valid:
// it is dropped at BeginFrame and whenever the actor changes pixel position.
type frameCache struct {
	valid bool
	gen   uint64
}

func (c *frameCache) ok(gen uint64) bool { return c.valid && c.gen == gen }
func (c *frameCache) set(gen uint64)     { c.valid, c.gen = true, gen }

// PlatformingActor adds walking, jumping, fast-fall, ground/wall detection and
// platform riding on top of PhysicalActor.
type PlatformingActor struct {
	PhysicalActor

	Facing Direction // Left or Right
	// FastFallStrength is the extra gravity applied while fast-falling, px/s².
	FastFallStrength float64

	// OnLand runs on the frame the actor goes from Airborne to Grounded.
	OnLand func()

	onGround    bool
	fastFalling bool
	dropFrames  int

	groundCache frameCache
	grounded    bool
	wallCache   frameCache
	wall        Direction
	rideCache   frameCache
	riding      *Solid
}

// NewPlatformingActor creates a platforming actor facing Right
func NewPlatformingActor(env *Env, x, y float64, w, h int, layers LayerMask) *PlatformingActor {
	p := &PlatformingActor{Facing: Right}
	p.PhysicalActor.init(env, x, y, w, h, layers)
	p.Actor.Riding = p.IsRiding
	return p
}

// PostInitSetup settles a freshly spawned actor: out of any overlap against
// gravity, then down onto the ground along gravity. It reports false when
// either step ran out of iterations; the actor is then left where that step
// started.
func (p *PlatformingActor) PostInitSetup() bool {
	n := p.env.settleIterations()
	out := p.TryPushOutOfCollision(p.Gravity.Opposite(), n)
	in := p.TryPushIntoCollision(p.Gravity, n)
	p.BeginFrame()
	p.onGround = p.GroundCheck()
	return out && in
}

// BeginFrame drops the per-frame caches
func (p *PlatformingActor) BeginFrame() {
	p.groundCache = frameCache{}
	p.wallCache = frameCache{}
	p.rideCache = frameCache{}
	p.wall = None
	p.riding = nil
}

// Update runs one frame: gravity (plus fast-fall), movement, then the
// ground check that drives the Airborne/Grounded transition.
func (p *PlatformingActor) Update(dt float64) {
	if p.dropFrames > 0 {
		p.dropFrames--
		if p.dropFrames == 0 {
			p.Flags &^= FlagDropThrough
		}
	}

	p.integrate(dt)
	if p.fastFalling {
		p.Velocity = p.Velocity.Add(p.Gravity.Vec().Scale(p.FastFallStrength * dt))
	}
	p.step(dt)

	grounded := p.GroundCheck()
	if grounded {
		if p.VerticalSpeed() > 0 {
			p.SetVerticalSpeed(0)
		}
		p.fastFalling = false
		if !p.onGround && p.OnLand != nil {
			p.OnLand()
		}
	}
	p.onGround = grounded
}

// OnGround returns the result of the last frame's ground check
func (p *PlatformingActor) OnGround() bool { return p.onGround }

// State returns the implicit ground/air state
func (p *PlatformingActor) State() GroundState {
	if p.onGround {
		return Grounded
	}
	return Airborne
}

// FastFalling reports whether fast-fall is active
func (p *PlatformingActor) FastFalling() bool { return p.fastFalling }

// GroundCheck reports whether the actor stands on something. While moving
// away from the ground it is false without querying.
func (p *PlatformingActor) GroundCheck() bool {
	if p.VerticalSpeed() < 0 {
		return false
	}
	gen := p.Generation()
	if p.groundCache.ok(gen) {
		return p.grounded
	}
	p.grounded = p.CollideCheck(p.Gravity).Hit()
	p.groundCache.set(gen)
	return p.grounded
}

// WallsCheck probes a strip a quarter of the actor's height on each side,
// one pixel out. It returns the gravity-relative side that is blocked, or
// None. When both sides are blocked it returns Left and logs a warning.
func (p *PlatformingActor) WallsCheck() Direction {
	gen := p.Generation()
	if p.wallCache.ok(gen) {
		return p.wall
	}

	left, right := p.Gravity.Sides()
	hitLeft := p.CollidesWithAnySolid(p.wallStrip(left), left).Hit()
	hitRight := p.CollidesWithAnySolid(p.wallStrip(right), right).Hit()

	switch {
	case hitLeft && hitRight:
		p.env.warnf("walls on both sides at %v, reporting Left", p.Bounds())
		p.wall = Left
	case hitLeft:
		p.wall = Left
	case hitRight:
		p.wall = Right
	default:
		p.wall = None
	}
	p.wallCache.set(gen)
	return p.wall
}

// wallStrip is a band across the middle of the actor, a quarter of its
// extent along gravity, shifted one pixel toward side.
func (p *PlatformingActor) wallStrip(side Direction) Rect {
	b := p.Bounds()
	var strip Rect
	if side.Horizontal() {
		q := max(1, b.H/4)
		strip = Rect{X: b.X, Y: b.Y + (b.H-q)/2, W: b.W, H: q}
	} else {
		q := max(1, b.W/4)
		strip = Rect{X: b.X + (b.W-q)/2, Y: b.Y, W: q, H: b.H}
	}
	return strip.Shift(side, 1)
}

// RidingSolid returns the solid the actor is standing on, or nil
func (p *PlatformingActor) RidingSolid() *Solid {
	gen := p.Generation()
	if p.rideCache.ok(gen) {
		return p.riding
	}
	p.riding = nil
	probe := p.Bounds().Shift(p.Gravity, 1)
	for _, e := range p.env.inRect(probe, p.layers) {
		if s, ok := e.(*Solid); ok && s.Collides(probe, p.Gravity, p.Flags) {
			p.riding = s
			break
		}
	}
	p.rideCache.set(gen)
	return p.riding
}

// IsRiding reports whether s is the solid the actor stands on
func (p *PlatformingActor) IsRiding(s *Solid) bool {
	return s != nil && p.RidingSolid() == s
}

// Jump sets the speed away from the ground and cancels fast-fall
func (p *PlatformingActor) Jump(speed float64) {
	p.SetVerticalSpeed(-speed)
	p.fastFalling = false
}

// FastFall starts fast-falling. Calling it again while active does nothing.
func (p *PlatformingActor) FastFall() {
	if p.fastFalling {
		return
	}
	p.fastFalling = true
}

// DropThrough ignores one-way surfaces for the next frames frames
func (p *PlatformingActor) DropThrough(frames int) {
	if frames <= 0 {
		return
	}
	p.dropFrames = frames
	p.Flags |= FlagDropThrough
}

// WalkIn snaps the horizontal speed to speed in dir (None stops)
func (p *PlatformingActor) WalkIn(dir Direction, speed float64) {
	p.SetHorizontalSpeed(float64(p.sideSign(dir)) * speed)
	p.face(dir)
}

// DriftIn accelerates the horizontal speed by dv toward maxSpeed in dir, or
// toward zero when dir is None.
func (p *PlatformingActor) DriftIn(dir Direction, dv, maxSpeed float64) {
	target := float64(p.sideSign(dir)) * maxSpeed
	p.SetHorizontalSpeed(approach(p.HorizontalSpeed(), target, dv))
	p.face(dir)
}

// sideSign maps Left/Right to -1/+1 in the gravity frame
func (p *PlatformingActor) sideSign(dir Direction) int {
	if !dir.Horizontal() {
		return 0
	}
	return dir.Sign()
}

func (p *PlatformingActor) face(dir Direction) {
	if dir == Left || dir == Right {
		p.Facing = dir
	}
}
