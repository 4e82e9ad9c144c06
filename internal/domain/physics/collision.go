package physics

// Collider answers whether a rectangle travelling in a direction is blocked.
// Level geometry and solids implement it. Implementations must be pure reads
// of current state.
type Collider interface {
	Collides(bounds Rect, dir Direction, flags CollisionFlags) bool
}

// Broadphase finds candidate entities. Results only contain enabled, live
// entities whose layers interact with mask, in a stable order.
type Broadphase interface {
	// InRect returns entities whose bounds overlap r.
	InRect(r Rect, mask LayerMask) []Entity
	// Active returns every entity registered for this frame.
	Active(mask LayerMask) []Entity
}

// HitKind is the tri-state result of a collision query
type HitKind uint8

const (
	NoHit HitKind = iota
	HitLevel
	HitSolid
)

// String returns the hit kind name
func (k HitKind) String() string {
	switch k {
	case HitLevel:
		return "HitLevel"
	case HitSolid:
		return "HitSolid"
	default:
		return "NoHit"
	}
}

// SolidCollision reports what an actor query hit. Solid is set only for HitSolid.
type SolidCollision struct {
	Kind  HitKind
	Solid *Solid
}

// Hit reports whether anything blocked the query
func (c SolidCollision) Hit() bool {
	return c.Kind != NoHit
}

// OneWayBlocks is the shared rule for surfaces that only block travel in
// direction side, and only through their first pixel row in that direction.
// bounds is the already-shifted probe rectangle; surface is the one-way
// surface. FlagDropThrough disables the surface.
func OneWayBlocks(surface, bounds Rect, dir, side Direction, flags CollisionFlags) bool {
	if flags.Has(FlagDropThrough) || dir != side || !bounds.Overlaps(surface) {
		return false
	}
	switch side {
	case Down:
		return bounds.Bottom()-1 == surface.Top()
	case Up:
		return bounds.Top() == surface.Bottom()-1
	case Right:
		return bounds.Right()-1 == surface.Left()
	case Left:
		return bounds.Left() == surface.Right()-1
	default:
		return false
	}
}
