package physics

// DefaultGravity is the gravity strength new physical actors start with, px/s².
const DefaultGravity = 900.0

// PhysicalActor adds velocity integration and a reassignable gravity
// direction to Actor.
type PhysicalActor struct {
	Actor

	Velocity        Vec // px/s
	Gravity         Direction
	GravityStrength float64 // px/s²
	// MaxFall caps the gravity-parallel speed; 0 means uncapped.
	MaxFall float64

	// OnHit runs after the velocity into the hit surface has been cleared.
	OnHit func(hit SolidCollision, normal Direction)
}

// NewPhysicalActor creates a physical actor falling Down at DefaultGravity
func NewPhysicalActor(env *Env, x, y float64, w, h int, layers LayerMask) *PhysicalActor {
	p := &PhysicalActor{}
	p.init(env, x, y, w, h, layers)
	return p
}

func (p *PhysicalActor) init(env *Env, x, y float64, w, h int, layers LayerMask) {
	p.Actor.init(env, x, y, w, h, layers)
	p.Gravity = Down
	p.GravityStrength = DefaultGravity
	p.Actor.OnHitSolid = p.hitSolid
	p.Actor.Riding = p.IsRiding
}

// Update integrates gravity and moves X then Y
func (p *PhysicalActor) Update(dt float64) {
	p.integrate(dt)
	p.step(dt)
}

func (p *PhysicalActor) integrate(dt float64) {
	p.Velocity = p.Velocity.Add(p.Gravity.Vec().Scale(p.GravityStrength * dt))
	if p.MaxFall > 0 && p.VerticalSpeed() > p.MaxFall {
		p.SetVerticalSpeed(p.MaxFall)
	}
}

func (p *PhysicalActor) step(dt float64) {
	p.MoveX(p.Velocity.X*dt, false)
	p.MoveY(p.Velocity.Y*dt, false)
}

// VerticalSpeed is the velocity component along gravity; negative means
// moving away from the ground.
func (p *PhysicalActor) VerticalSpeed() float64 {
	return p.Velocity.Dot(p.Gravity.Vec())
}

// HorizontalSpeed is the velocity component perpendicular to gravity,
// positive toward the gravity-relative right.
func (p *PhysicalActor) HorizontalSpeed() float64 {
	_, right := p.Gravity.Sides()
	return p.Velocity.Dot(right.Vec())
}

// SetVerticalSpeed replaces the gravity-parallel component
func (p *PhysicalActor) SetVerticalSpeed(v float64) {
	p.setSpeeds(p.HorizontalSpeed(), v)
}

// SetHorizontalSpeed replaces the gravity-perpendicular component
func (p *PhysicalActor) SetHorizontalSpeed(h float64) {
	p.setSpeeds(h, p.VerticalSpeed())
}

func (p *PhysicalActor) setSpeeds(h, v float64) {
	_, right := p.Gravity.Sides()
	p.Velocity = right.Vec().Scale(h).Add(p.Gravity.Vec().Scale(v))
}

// IsRiding reports whether one pixel toward gravity overlaps s
func (p *PhysicalActor) IsRiding(s *Solid) bool {
	probe := p.Bounds().Shift(p.Gravity, 1)
	return s.Collides(probe, p.Gravity, p.Flags)
}

func (p *PhysicalActor) hitSolid(hit SolidCollision, normal Direction) {
	n := normal.Vec()
	if p.Velocity.Dot(n) < 0 {
		if normal.Horizontal() {
			p.Velocity.X = 0
		} else {
			p.Velocity.Y = 0
		}
	}
	if p.OnHit != nil {
		p.OnHit(hit, normal)
	}
}
