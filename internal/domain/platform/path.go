package platform

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/ridge/internal/domain/physics"
)

// segment tweens both axes from one waypoint to the next
type segment struct {
	x, y     *gween.Tween
	to       physics.Vec
	duration float64
}

// Path moves through waypoints at a constant speed. It either loops back to
// the first point or reverses at the ends.
type Path struct {
	segments []*segment
	index    int
	elapsed  float64
	pos      physics.Vec
}

// NewPath builds a path over points (at least two) travelled at speed px/s.
// With loop the last point connects back to the first, otherwise the path
// ping-pongs. It returns nil when there is nothing to move along.
func NewPath(points []physics.Vec, speed float64, loop bool) *Path {
	if len(points) < 2 || speed <= 0 {
		return nil
	}

	route := append([]physics.Vec(nil), points...)
	if loop {
		route = append(route, points[0])
	} else {
		for i := len(points) - 2; i >= 0; i-- {
			route = append(route, points[i])
		}
	}

	p := &Path{pos: points[0]}
	for i := 1; i < len(route); i++ {
		from, to := route[i-1], route[i]
		dist := math.Hypot(to.X-from.X, to.Y-from.Y)
		if dist == 0 {
			continue
		}
		d := dist / speed
		p.segments = append(p.segments, &segment{
			x:        gween.New(float32(from.X), float32(to.X), float32(d), ease.Linear),
			y:        gween.New(float32(from.Y), float32(to.Y), float32(d), ease.Linear),
			to:       to,
			duration: d,
		})
	}
	if len(p.segments) == 0 {
		return nil
	}
	return p
}

// Pos returns where the path currently is
func (p *Path) Pos() physics.Vec { return p.pos }

// Step implements Driver
func (p *Path) Step(dt float64) physics.Vec {
	start := p.pos
	for dt > 0 {
		seg := p.segments[p.index]
		remaining := seg.duration - p.elapsed
		if dt < remaining {
			p.elapsed += dt
			x, _ := seg.x.Update(float32(dt))
			y, _ := seg.y.Update(float32(dt))
			p.pos = physics.Vec{X: float64(x), Y: float64(y)}
			break
		}
		// Segment done: snap to its end and spend the leftover on the next.
		dt -= remaining
		p.pos = seg.to
		seg.x.Reset()
		seg.y.Reset()
		p.elapsed = 0
		p.index = (p.index + 1) % len(p.segments)
	}
	return p.pos.Sub(start)
}
