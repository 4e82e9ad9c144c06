package physics

// Kind tells actors and solids apart without a type switch on the owner.
type Kind uint8

const (
	KindActor Kind = iota + 1
	KindSolid
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindActor:
		return "Actor"
	case KindSolid:
		return "Solid"
	default:
		return "Unknown"
	}
}

// Entity is the base contract shared by actors and solids. Lifecycle belongs
// to the scene; the core only mutates position and the enabled flag.
type Entity interface {
	Pos() Vec
	SetPos(Vec)
	Bounds() Rect
	Layers() LayerMask
	Enabled() bool
	SetEnabled(bool)
	Kill()
	Dead() bool
	Kind() Kind
	// Track attaches the index that must hear about moves and deaths.
	Track(Tracker)
}

// Tracker is notified when a registered entity changes pixel position or dies.
type Tracker interface {
	Moved(e Entity)
	Killed(e Entity)
}

// Body holds the state common to every entity: continuous position, integer
// size, layers and lifecycle flags.
type Body struct {
	pos      Vec
	w, h     int
	layers   LayerMask
	kind     Kind
	disabled bool
	dead     bool
	gen      uint64

	owner   Entity
	tracker Tracker
}

func (b *Body) init(owner Entity, kind Kind, x, y float64, w, h int, layers LayerMask) {
	b.owner = owner
	b.kind = kind
	b.pos = Vec{x, y}
	b.w, b.h = w, h
	b.layers = layers
}

// Pos returns the continuous position, sub-pixel remainder included
func (b *Body) Pos() Vec { return b.pos }

// SetPos places the body. The tracker hears about it only when the pixel
// position changes.
func (b *Body) SetPos(p Vec) {
	before := b.Bounds()
	b.pos = p
	if b.Bounds() == before {
		return
	}
	b.gen++
	if b.tracker != nil {
		b.tracker.Moved(b.owner)
	}
}

// Size returns the integer width and height
func (b *Body) Size() (w, h int) { return b.w, b.h }

// Bounds returns the pixel bounding box
func (b *Body) Bounds() Rect {
	return Rect{X: pixel(b.pos.X), Y: pixel(b.pos.Y), W: b.w, H: b.h}
}

// Layers returns the interaction layer mask
func (b *Body) Layers() LayerMask { return b.layers }

// SetLayers replaces the interaction layer mask
func (b *Body) SetLayers(m LayerMask) { b.layers = m }

// Enabled reports whether broadphase queries should see the body
func (b *Body) Enabled() bool { return !b.disabled }

// SetEnabled toggles broadphase visibility
func (b *Body) SetEnabled(on bool) { b.disabled = !on }

// Dead reports whether Kill was called
func (b *Body) Dead() bool { return b.dead }

// Kind returns whether the body is an actor or a solid
func (b *Body) Kind() Kind { return b.kind }

// Track attaches the tracker notified on moves and death
func (b *Body) Track(t Tracker) { b.tracker = t }

// Generation counts pixel position changes. Per-frame caches compare it to
// know when a cached query went stale.
func (b *Body) Generation() uint64 { return b.gen }

// Kill marks the body dead and asks the tracker to drop it at the next frame
// boundary. Killing twice is a no-op.
func (b *Body) Kill() {
	if b.dead {
		return
	}
	b.dead = true
	if b.tracker != nil {
		b.tracker.Killed(b.owner)
	}
}
