package physics

// LayerMask selects which entity categories interact. Two entities interact
// iff their masks share a bit.
type LayerMask uint64

// LayerAll interacts with everything
const LayerAll LayerMask = ^LayerMask(0)

// Interacts reports whether m and o share at least one layer
func (m LayerMask) Interacts(o LayerMask) bool {
	return m&o != 0
}

// CollisionFlags modify terrain collision policy for a single query. The core
// passes them through untouched; level geometry and solids interpret them.
type CollisionFlags uint32

const (
	FlagNone CollisionFlags = 0
	// FlagDropThrough makes one-way surfaces non-blocking.
	FlagDropThrough CollisionFlags = 1 << 0
	// FlagIgnoreLevel makes level geometry non-blocking; solids still block.
	FlagIgnoreLevel CollisionFlags = 1 << 1
)

// Has reports whether every bit of o is set in f
func (f CollisionFlags) Has(o CollisionFlags) bool {
	return f&o == o
}
