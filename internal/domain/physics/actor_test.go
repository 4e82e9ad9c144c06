package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActor_MoveThroughEmptySpace(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
	}{
		{"quarter pixel", 0.25},
		{"one pixel", 1},
		{"fractional right", 7.5},
		{"fractional left", -13.75},
		{"max right", DefaultMaxMove},
		{"max left", -DefaultMaxMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := newTestEnv()
			a := NewActor(env, 10, 20, 8, 8, LayerAll)

			hitX := a.MoveX(tt.amount, false)
			hitY := a.MoveY(tt.amount, false)

			assert.False(t, hitX.Hit())
			assert.False(t, hitY.Hit())
			assert.InDelta(t, 10+tt.amount, a.Pos().X, 1e-9)
			assert.InDelta(t, 20+tt.amount, a.Pos().Y, 1e-9)
		})
	}
}

func TestActor_SubPixelRemainderCarriesOver(t *testing.T) {
	env, _ := newTestEnv()
	a := NewActor(env, 0, 0, 8, 8, LayerAll)

	for i := 0; i < 3; i++ {
		a.MoveX(0.25, false)
	}
	assert.Equal(t, 0, a.Bounds().X, "three quarter pixels stay on pixel 0")

	a.MoveX(0.25, false)
	assert.Equal(t, 1, a.Bounds().X)

	for i := 0; i < 4; i++ {
		a.MoveX(0.25, false)
	}
	assert.InDelta(t, 2.0, a.Pos().X, 1e-9)
}

func TestActor_MoveIsClampedPerCall(t *testing.T) {
	env, _ := newTestEnv()
	env.MaxMove = 16
	a := NewActor(env, 0, 0, 8, 8, LayerAll)

	a.MoveX(100, false)
	assert.InDelta(t, 16.0, a.Pos().X, 1e-9)

	a.MoveY(-100, false)
	assert.InDelta(t, -16.0, a.Pos().Y, 1e-9)
}

func TestActor_NegativePositionsUseFloor(t *testing.T) {
	env, _ := newTestEnv()
	a := NewActor(env, -0.5, -16.25, 8, 8, LayerAll)

	b := a.Bounds()
	assert.Equal(t, -1, b.X)
	assert.Equal(t, -17, b.Y)
}

func TestActor_StopsFlushAgainstTile(t *testing.T) {
	wall := Rect{X: 64, Y: 0, W: 16, H: 32}

	for _, start := range []float64{0, 10.5, 37.25, 55, 56} {
		env, _ := newTestEnv(wall)
		a := NewActor(env, start, 8, 8, 8, LayerAll)

		hit := a.MoveX(100, false)

		assert.Equal(t, HitLevel, hit.Kind, "start %v", start)
		assert.Nil(t, hit.Solid)
		assert.Equal(t, wall.Left(), a.Bounds().Right(), "start %v", start)
		assert.False(t, a.Bounds().Overlaps(wall))
	}
}

func TestActor_StopsFlushAgainstSolid(t *testing.T) {
	env, bp := newTestEnv()
	s := NewSolid(env, 0, 40, 32, 8, LayerAll)
	a := NewActor(env, 4, 0, 8, 16, LayerAll)
	bp.add(s, a)

	hit := a.MoveY(100, false)

	require.Equal(t, HitSolid, hit.Kind)
	assert.Same(t, s, hit.Solid)
	assert.Equal(t, 40, a.Bounds().Bottom())
}

func TestActor_CollideCheckAfterStop(t *testing.T) {
	env, _ := newTestEnv(Rect{X: 0, Y: 32, W: 64, H: 16})
	a := NewActor(env, 8, 0, 8, 8, LayerAll)

	a.MoveY(50, false)
	require.Equal(t, 32, a.Bounds().Bottom())

	assert.True(t, a.CollideCheck(Down).Hit())

	a.SetPos(a.Pos().Sub(Vec{0, 1}))
	assert.False(t, a.CollideCheck(Down).Hit())
}

func TestActor_LayersMustInteract(t *testing.T) {
	env, bp := newTestEnv()
	s := NewSolid(env, 16, 0, 16, 16, 1<<1)
	a := NewActor(env, 0, 0, 8, 8, 1<<0)
	bp.add(s, a)

	hit := a.MoveX(20, false)

	assert.False(t, hit.Hit())
	assert.InDelta(t, 20.0, a.Pos().X, 1e-9)
}

func TestActor_HitDispatch(t *testing.T) {
	wall := Rect{X: 16, Y: 0, W: 16, H: 16}

	t.Run("move reports OnHitSolid with the normal", func(t *testing.T) {
		env, _ := newTestEnv(wall)
		a := NewActor(env, 0, 0, 8, 8, LayerAll)
		var normals []Direction
		a.OnHitSolid = func(hit SolidCollision, normal Direction) {
			normals = append(normals, normal)
		}

		a.MoveX(20, false)

		assert.Equal(t, []Direction{Left}, normals)
		assert.False(t, a.Dead())
	})

	t.Run("push reports Squish and kills by default", func(t *testing.T) {
		env, _ := newTestEnv(wall)
		a := NewActor(env, 0, 0, 8, 8, LayerAll)
		hitCalled := false
		a.OnHitSolid = func(SolidCollision, Direction) { hitCalled = true }

		a.MoveX(20, true)

		assert.False(t, hitCalled)
		assert.True(t, a.Dead())
	})
}

func TestActor_TryPushOutOfCollision(t *testing.T) {
	floor := Rect{X: 0, Y: 16, W: 32, H: 16}

	t.Run("settles above the overlap", func(t *testing.T) {
		env, _ := newTestEnv(floor)
		a := NewActor(env, 0, 11.5, 8, 10, LayerAll)

		ok := a.TryPushOutOfCollision(Up, DefaultSettleIterations)

		require.True(t, ok)
		assert.Equal(t, 16, a.Bounds().Bottom())
		assert.InDelta(t, 6.5, a.Pos().Y, 1e-9, "fraction is kept")
	})

	t.Run("not overlapping is a no-op", func(t *testing.T) {
		env, _ := newTestEnv(floor)
		a := NewActor(env, 0, 0, 8, 8, LayerAll)

		assert.True(t, a.TryPushOutOfCollision(Up, 0))
		assert.Equal(t, Vec{0, 0}, a.Pos())
	})

	t.Run("gives up and restores", func(t *testing.T) {
		env, _ := newTestEnv(floor)
		a := NewActor(env, 0, 20, 8, 8, LayerAll)

		ok := a.TryPushOutOfCollision(Up, 3)

		assert.False(t, ok)
		assert.Equal(t, Vec{0, 20}, a.Pos())
	})
}

func TestActor_TryPushIntoCollision(t *testing.T) {
	floor := Rect{X: 0, Y: 16, W: 32, H: 16}

	t.Run("lands flush", func(t *testing.T) {
		env, _ := newTestEnv(floor)
		a := NewActor(env, 0, 0, 8, 8, LayerAll)

		ok := a.TryPushIntoCollision(Down, DefaultSettleIterations)

		require.True(t, ok)
		assert.Equal(t, 16, a.Bounds().Bottom())
		assert.False(t, a.Bounds().Overlaps(floor))
	})

	t.Run("nothing below gives up and restores", func(t *testing.T) {
		env, _ := newTestEnv()
		a := NewActor(env, 3, 4, 8, 8, LayerAll)

		ok := a.TryPushIntoCollision(Down, DefaultSettleIterations)

		assert.False(t, ok)
		assert.Equal(t, Vec{3, 4}, a.Pos())
	})
}

func TestActor_FlagsReachTheLevel(t *testing.T) {
	env, _ := newTestEnv(Rect{X: 16, Y: 0, W: 16, H: 16})
	a := NewActor(env, 0, 0, 8, 8, LayerAll)
	a.Flags = FlagIgnoreLevel

	hit := a.MoveX(40, false)

	assert.False(t, hit.Hit())
	assert.InDelta(t, 40.0, a.Pos().X, 1e-9)
}
