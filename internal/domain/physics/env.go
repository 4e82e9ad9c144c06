package physics

import "log"

const (
	// DefaultMaxMove bounds a single MoveX/MoveY call, in pixels.
	DefaultMaxMove = 256.0
	// DefaultSettleIterations caps TryPushOutOfCollision/TryPushIntoCollision.
	DefaultSettleIterations = 50
)

// Env is the shared read-only context actors and solids query: the
// broadphase for solids and actors, plus the level geometry.
type Env struct {
	Broadphase Broadphase
	Level      Collider // may be nil
	MaxMove    float64  // 0 means DefaultMaxMove
	// SettleIterations caps PostInitSetup, 0 means DefaultSettleIterations.
	SettleIterations int

	// Debug enables diagnostic warnings such as the wall tie-break.
	Debug bool
	Log   *log.Logger
}

func (e *Env) maxMove() float64 {
	if e.MaxMove > 0 {
		return e.MaxMove
	}
	return DefaultMaxMove
}

func (e *Env) settleIterations() int {
	if e.SettleIterations > 0 {
		return e.SettleIterations
	}
	return DefaultSettleIterations
}

func (e *Env) warnf(format string, args ...any) {
	if !e.Debug {
		return
	}
	l := e.Log
	if l == nil {
		l = log.Default()
	}
	l.Printf("physics: "+format, args...)
}

// inRect guards against a missing broadphase
func (e *Env) inRect(r Rect, mask LayerMask) []Entity {
	if e.Broadphase == nil {
		return nil
	}
	return e.Broadphase.InRect(r, mask)
}
