package physics

// sliceBroadphase is a linear-scan Broadphase for tests
type sliceBroadphase struct {
	entities []Entity
}

func (b *sliceBroadphase) add(es ...Entity) {
	b.entities = append(b.entities, es...)
}

func (b *sliceBroadphase) InRect(r Rect, mask LayerMask) []Entity {
	var out []Entity
	for _, e := range b.Active(mask) {
		if e.Bounds().Overlaps(r) {
			out = append(out, e)
		}
	}
	return out
}

func (b *sliceBroadphase) Active(mask LayerMask) []Entity {
	var out []Entity
	for _, e := range b.entities {
		if e.Enabled() && !e.Dead() && e.Layers().Interacts(mask) {
			out = append(out, e)
		}
	}
	return out
}

// boxLevel is level geometry made of solid rectangles
type boxLevel []Rect

func (l boxLevel) Collides(bounds Rect, dir Direction, flags CollisionFlags) bool {
	for _, r := range l {
		if r.Overlaps(bounds) {
			return true
		}
	}
	return false
}

func newTestEnv(level ...Rect) (*Env, *sliceBroadphase) {
	bp := &sliceBroadphase{}
	env := &Env{Broadphase: bp}
	if len(level) > 0 {
		env.Level = boxLevel(level)
	}
	return env, bp
}
