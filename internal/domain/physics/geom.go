package physics

import "math"

// Vec is a continuous 2D vector
type Vec struct {
	X, Y float64
}

// Add returns v+o
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns v*s
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o
func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

// Rect is an integer pixel rectangle. Right and Bottom are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Left returns the left edge
func (r Rect) Left() int { return r.X }

// Right returns the exclusive right edge
func (r Rect) Right() int { return r.X + r.W }

// Top returns the top edge
func (r Rect) Top() int { return r.Y }

// Bottom returns the exclusive bottom edge
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the rect has no area
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Offset returns r moved by (dx, dy)
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{r.X + dx, r.Y + dy, r.W, r.H}
}

// Shift returns r moved n pixels in direction d
func (r Rect) Shift(d Direction, n int) Rect {
	v := d.Vec()
	return r.Offset(int(v.X)*n, int(v.Y)*n)
}

// Inflate grows r by n pixels on every side
func (r Rect) Inflate(n int) Rect {
	return Rect{r.X - n, r.Y - n, r.W + 2*n, r.H + 2*n}
}

// Overlaps reports whether r and o share at least one pixel
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// pixel converts a continuous coordinate to the pixel containing it.
// Floor keeps negative coordinates on the same grid as positive ones.
func pixel(f float64) int {
	return int(math.Floor(f))
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// approach moves cur toward target by at most step
func approach(cur, target, step float64) float64 {
	if cur < target {
		return math.Min(cur+step, target)
	}
	return math.Max(cur-step, target)
}
