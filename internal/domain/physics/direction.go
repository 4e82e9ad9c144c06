package physics

// Direction is a cardinal direction. The zero value is None.
type Direction uint8

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// String returns the direction name
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "None"
	}
}

// Vec returns the unit vector for the direction (screen space, +Y is down)
func (d Direction) Vec() Vec {
	switch d {
	case Up:
		return Vec{0, -1}
	case Down:
		return Vec{0, 1}
	case Left:
		return Vec{-1, 0}
	case Right:
		return Vec{1, 0}
	default:
		return Vec{}
	}
}

// Opposite returns the reversed direction
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

// Horizontal reports whether d is Left or Right
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// Sign returns +1 for Right/Down, -1 for Left/Up and 0 for None.
func (d Direction) Sign() int {
	switch d {
	case Down, Right:
		return 1
	case Up, Left:
		return -1
	default:
		return 0
	}
}

// Sides returns the directions an entity standing with gravity d would call
// its left and right. Gravity Down gives (Left, Right); the other gravity
// directions are the same frame rotated.
func (d Direction) Sides() (left, right Direction) {
	switch d {
	case Down:
		return Left, Right
	case Up:
		return Right, Left
	case Left:
		return Up, Down
	case Right:
		return Down, Up
	default:
		return None, None
	}
}

// dirX returns Left/Right for the sign of n
func dirX(n int) Direction {
	switch {
	case n > 0:
		return Right
	case n < 0:
		return Left
	default:
		return None
	}
}

// dirY returns Up/Down for the sign of n
func dirY(n int) Direction {
	switch {
	case n > 0:
		return Down
	case n < 0:
		return Up
	default:
		return None
	}
}
