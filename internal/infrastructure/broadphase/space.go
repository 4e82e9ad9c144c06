package broadphase

import (
	"fmt"
	"log"
	"slices"

	"github.com/solarlune/resolv"

	"github.com/younwookim/ridge/internal/domain/physics"
)

const (
	tagActor = "actor"
	tagSolid = "solid"
)

// Config describes the world area covered by cells. Entities outside it still
// work, they are just scanned linearly.
type Config struct {
	X, Y          int // world position of the top-left cell
	Width, Height int // in pixels
	CellSize      int
}

// DefaultConfig covers a 4096x4096 area starting at the origin with 32px cells
func DefaultConfig() Config {
	return Config{Width: 4096, Height: 4096, CellSize: 32}
}

type entry struct {
	e       physics.Entity
	obj     *resolv.Object
	seq     uint64
	outside bool
}

// Space is a uniform-grid physics.Broadphase backed by a resolv.Space.
//
// Add and Remove are deferred until Flush so the set of entities seen by
// queries stays the same for a whole frame. Entities registered here are
// tracked: their moves update the grid and Kill schedules their removal.
type Space struct {
	space  *resolv.Space
	origin physics.Rect

	entries map[physics.Entity]*entry
	outside map[*entry]struct{}
	seq     uint64

	pendingAdd    []physics.Entity
	pendingRemove []physics.Entity
	queued        map[physics.Entity]bool // true: add, false: remove

	Log *log.Logger
}

// New creates an empty space
func New(cfg Config) (*Space, error) {
	if cfg.CellSize <= 0 {
		return nil, fmt.Errorf("broadphase: cell size must be positive, got %d", cfg.CellSize)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("broadphase: area must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	return &Space{
		space:   resolv.NewSpace(cfg.Width, cfg.Height, cfg.CellSize, cfg.CellSize),
		origin:  physics.Rect{X: cfg.X, Y: cfg.Y, W: cfg.Width, H: cfg.Height},
		entries: make(map[physics.Entity]*entry),
		outside: make(map[*entry]struct{}),
		queued:  make(map[physics.Entity]bool),
	}, nil
}

// Add schedules e to join the space at the next Flush
func (s *Space) Add(e physics.Entity) {
	if e == nil {
		assertf(s.Log, "add of nil entity")
		return
	}
	if _, ok := s.entries[e]; ok {
		assertf(s.Log, "add of registered %s at %v", e.Kind(), e.Bounds())
		return
	}
	if add, ok := s.queued[e]; ok && add {
		assertf(s.Log, "double add of %s at %v", e.Kind(), e.Bounds())
		return
	}
	s.queued[e] = true
	s.pendingAdd = append(s.pendingAdd, e)
}

// Remove schedules e to leave the space at the next Flush
func (s *Space) Remove(e physics.Entity) {
	if add, ok := s.queued[e]; ok {
		if !add {
			assertf(s.Log, "double remove of %s at %v", e.Kind(), e.Bounds())
			return
		}
		// Added and removed within the same frame: never becomes visible.
		delete(s.queued, e)
		s.pendingAdd = slices.DeleteFunc(s.pendingAdd, func(p physics.Entity) bool { return p == e })
		return
	}
	if _, ok := s.entries[e]; !ok {
		assertf(s.Log, "remove of unknown entity")
		return
	}
	s.queued[e] = false
	s.pendingRemove = append(s.pendingRemove, e)
}

// Flush applies pending removals, then pending additions. It returns the
// entities that were added, in the order they were requested.
func (s *Space) Flush() []physics.Entity {
	for _, e := range s.pendingRemove {
		en := s.entries[e]
		s.space.Remove(en.obj)
		delete(s.outside, en)
		delete(s.entries, e)
		e.Track(nil)
	}

	added := s.pendingAdd
	for _, e := range added {
		s.seq++
		b := e.Bounds()
		tag := tagActor
		if e.Kind() == physics.KindSolid {
			tag = tagSolid
		}
		en := &entry{e: e, seq: s.seq}
		en.obj = resolv.NewObject(s.localX(b.X), s.localY(b.Y), float64(b.W), float64(b.H), tag)
		en.obj.Data = en
		s.space.Add(en.obj)
		s.entries[e] = en
		s.place(en, b)
		e.Track(s)
	}

	s.pendingAdd = nil
	s.pendingRemove = nil
	clear(s.queued)
	return added
}

// Pending reports whether Flush has work to do
func (s *Space) Pending() bool {
	return len(s.pendingAdd) > 0 || len(s.pendingRemove) > 0
}

// Len returns the number of registered entities, pending ones excluded
func (s *Space) Len() int { return len(s.entries) }

// Moved implements physics.Tracker
func (s *Space) Moved(e physics.Entity) {
	en, ok := s.entries[e]
	if !ok {
		return
	}
	b := e.Bounds()
	en.obj.X, en.obj.Y = s.localX(b.X), s.localY(b.Y)
	en.obj.W, en.obj.H = float64(b.W), float64(b.H)
	en.obj.Update()
	s.place(en, b)
}

// Killed implements physics.Tracker
func (s *Space) Killed(e physics.Entity) {
	if add, ok := s.queued[e]; ok && !add {
		return
	}
	s.Remove(e)
}

// InRect implements physics.Broadphase
func (s *Space) InRect(r physics.Rect, mask physics.LayerMask) []physics.Entity {
	if r.Empty() {
		return nil
	}
	var found []*entry
	seen := make(map[*entry]bool)
	visit := func(en *entry) {
		if seen[en] || !s.visible(en, mask) || !en.e.Bounds().Overlaps(r) {
			return
		}
		seen[en] = true
		found = append(found, en)
	}

	if clipped, ok := s.clip(r); ok {
		cx, cy := s.space.WorldToSpace(s.localX(clipped.Left()), s.localY(clipped.Top()))
		ex, ey := s.space.WorldToSpace(s.localX(clipped.Right()-1), s.localY(clipped.Bottom()-1))
		for iy := cy; iy <= ey; iy++ {
			for ix := cx; ix <= ex; ix++ {
				cell := s.space.Cell(ix, iy)
				if cell == nil {
					continue
				}
				for _, obj := range cell.Objects {
					if en, ok := obj.Data.(*entry); ok {
						visit(en)
					}
				}
			}
		}
	}
	for en := range s.outside {
		visit(en)
	}
	return sorted(found)
}

// Active implements physics.Broadphase
func (s *Space) Active(mask physics.LayerMask) []physics.Entity {
	var found []*entry
	for _, en := range s.entries {
		if s.visible(en, mask) {
			found = append(found, en)
		}
	}
	return sorted(found)
}

func (s *Space) visible(en *entry, mask physics.LayerMask) bool {
	return en.e.Enabled() && !en.e.Dead() && en.e.Layers().Interacts(mask)
}

// place records whether the entity sticks out of the cell area, in which case
// cell lookups cannot find it.
func (s *Space) place(en *entry, b physics.Rect) {
	c, ok := s.clip(b)
	en.outside = !ok || c != b
	if en.outside {
		s.outside[en] = struct{}{}
	} else {
		delete(s.outside, en)
	}
}

func (s *Space) clip(r physics.Rect) (physics.Rect, bool) {
	x0, y0 := max(r.Left(), s.origin.Left()), max(r.Top(), s.origin.Top())
	x1, y1 := min(r.Right(), s.origin.Right()), min(r.Bottom(), s.origin.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return physics.Rect{}, false
	}
	return physics.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}

func (s *Space) localX(x int) float64 { return float64(x - s.origin.X) }
func (s *Space) localY(y int) float64 { return float64(y - s.origin.Y) }

// sorted orders entries by registration so query results are deterministic
func sorted(found []*entry) []physics.Entity {
	slices.SortFunc(found, func(a, b *entry) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		default:
			return 0
		}
	})
	out := make([]physics.Entity, len(found))
	for i, en := range found {
		out[i] = en.e
	}
	return out
}
