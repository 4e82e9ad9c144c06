package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolid_CarriesRiderByExactDelta(t *testing.T) {
	tests := []struct {
		name  string
		delta Vec
	}{
		{"right and up", Vec{5.5, -3}},
		{"left and down", Vec{-2.25, 4.75}},
		{"sub-pixel", Vec{0.4, 0.4}},
		{"vertical only", Vec{0, -6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, bp := newTestEnv()
			s := NewSolid(env, 0, 0, 32, 8, LayerAll)
			rider := NewActor(env, 4, -16, 8, 16, LayerAll)
			bp.add(s, rider)
			require.True(t, rider.IsRiding(s))

			offset := rider.Pos().Sub(s.Pos())
			s.Move(tt.delta)

			assert.InDelta(t, 4+tt.delta.X, rider.Pos().X, 1e-9)
			assert.InDelta(t, -16+tt.delta.Y, rider.Pos().Y, 1e-9)
			got := rider.Pos().Sub(s.Pos())
			assert.InDelta(t, offset.X, got.X, 1e-9)
			assert.InDelta(t, offset.Y, got.Y, 1e-9)
			assert.False(t, rider.Dead())
		})
	}
}

func TestSolid_PushesActorInPath(t *testing.T) {
	env, bp := newTestEnv()
	s := NewSolid(env, 0, 0, 16, 16, LayerAll)
	a := NewActor(env, 20, 0, 8, 16, LayerAll)
	bp.add(s, a)

	s.Move(Vec{10, 0})

	assert.Equal(t, 26, s.Bounds().Right())
	assert.Equal(t, 26, a.Bounds().Left())
	assert.False(t, a.Dead())
}

func TestSolid_SquishesTrappedActorOnce(t *testing.T) {
	wall := Rect{X: 28, Y: 0, W: 16, H: 16}
	env, bp := newTestEnv(wall)
	s := NewSolid(env, 0, 0, 16, 16, LayerAll)
	a := NewActor(env, 20, 0, 8, 16, LayerAll)
	bp.add(s, a)

	squished := 0
	a.OnSquish = func(hit SolidCollision, normal Direction) {
		squished++
		assert.Equal(t, HitLevel, hit.Kind)
		assert.Equal(t, Left, normal)
		a.Kill()
	}

	s.Move(Vec{10, 0})

	assert.Equal(t, 1, squished)
	assert.True(t, a.Dead())
	assert.InDelta(t, 10.0, s.Pos().X, 1e-9, "solids are never blocked")
}

func TestSolid_SurvivingSquishIsNotRepeated(t *testing.T) {
	wall := Rect{X: 28, Y: 0, W: 16, H: 16}
	env, bp := newTestEnv(wall)
	s := NewSolid(env, 0, 0, 16, 16, LayerAll)
	a := NewActor(env, 20, 0, 8, 16, LayerAll)
	bp.add(s, a)

	squished := 0
	a.OnSquish = func(SolidCollision, Direction) { squished++ }

	s.Move(Vec{10, 0})

	assert.Equal(t, 1, squished)
	assert.False(t, a.Dead())
	assert.Equal(t, 20, a.Bounds().Left(), "the actor stays against the wall")
	assert.InDelta(t, 10.0, s.Pos().X, 1e-9)
}

func TestSolid_DefaultSquishKills(t *testing.T) {
	env, bp := newTestEnv(Rect{X: 0, Y: -40, W: 32, H: 8})
	s := NewSolid(env, 0, 0, 32, 8, LayerAll)
	a := NewActor(env, 8, -32, 8, 32, LayerAll)
	bp.add(s, a)

	s.Move(Vec{0, -4})

	assert.True(t, a.Dead())
}

func TestSolid_EnabledRestored(t *testing.T) {
	env, bp := newTestEnv()
	s := NewSolid(env, 0, 0, 16, 16, LayerAll)
	bp.add(s)

	s.Move(Vec{3, 3})
	assert.True(t, s.Enabled())

	s.SetEnabled(false)
	s.Move(Vec{3, 3})
	assert.False(t, s.Enabled(), "a solid disabled by the caller stays disabled")

	s.SetEnabled(true)
	s.Move(Vec{})
	assert.True(t, s.Enabled())
}

func TestSolid_RiderBlockedByOtherGeometry(t *testing.T) {
	env, bp := newTestEnv(Rect{X: 16, Y: -32, W: 8, H: 32})
	s := NewSolid(env, 0, 0, 32, 8, LayerAll)
	rider := NewActor(env, 4, -16, 8, 16, LayerAll)
	bp.add(s, rider)

	s.Move(Vec{10, 0})

	assert.Equal(t, 16, rider.Bounds().Right(), "the rider stops at the wall")
	assert.InDelta(t, 10.0, s.Pos().X, 1e-9)
}

func TestGetPushDistance(t *testing.T) {
	env, _ := newTestEnv()
	a := NewActor(env, 10, 10, 8, 8, LayerAll)

	tests := []struct {
		name   string
		future Rect
		dir    Direction
		want   int
	}{
		{"right overlaps by 2", Rect{X: -4, Y: 10, W: 16, H: 8}, Right, 2},
		{"left overlaps by 3", Rect{X: 15, Y: 10, W: 16, H: 8}, Left, -3},
		{"down overlaps by 1", Rect{X: 10, Y: -5, W: 8, H: 16}, Down, 1},
		{"up overlaps by 4", Rect{X: 10, Y: 14, W: 8, H: 8}, Up, -4},
		{"no direction", Rect{X: 10, Y: 10, W: 8, H: 8}, None, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetPushDistance(tt.future, a, tt.dir))
		})
	}
}

func TestSolid_OneWay(t *testing.T) {
	t.Run("blocks falling onto the top row", func(t *testing.T) {
		env, bp := newTestEnv()
		s := NewSolid(env, 0, 32, 32, 8, LayerAll)
		s.OneWay = Down
		a := NewActor(env, 8, 0, 8, 16, LayerAll)
		bp.add(s, a)

		hit := a.MoveY(40, false)

		assert.Same(t, s, hit.Solid)
		assert.Equal(t, 32, a.Bounds().Bottom())
	})

	t.Run("passes from below and sideways", func(t *testing.T) {
		env, bp := newTestEnv()
		s := NewSolid(env, 0, 32, 32, 8, LayerAll)
		s.OneWay = Down
		a := NewActor(env, 8, 44, 8, 16, LayerAll)
		side := NewActor(env, -20, 30, 8, 8, LayerAll)
		bp.add(s, a, side)

		assert.False(t, a.MoveY(-30, false).Hit())
		assert.False(t, side.MoveX(30, false).Hit())
	})

	t.Run("drop-through flag ignores it", func(t *testing.T) {
		env, bp := newTestEnv()
		s := NewSolid(env, 0, 32, 32, 8, LayerAll)
		s.OneWay = Down
		a := NewActor(env, 8, 0, 8, 16, LayerAll)
		a.Flags = FlagDropThrough
		bp.add(s, a)

		assert.False(t, a.MoveY(40, false).Hit())
	})

	t.Run("carries riders without pushing", func(t *testing.T) {
		env, bp := newTestEnv()
		s := NewSolid(env, 0, 32, 32, 8, LayerAll)
		s.OneWay = Down
		rider := NewActor(env, 0, 16, 8, 16, LayerAll)
		inside := NewActor(env, 16, 30, 8, 8, LayerAll)
		bp.add(s, rider, inside)

		s.Move(Vec{0, -2})

		assert.InDelta(t, 14.0, rider.Pos().Y, 1e-9)
		assert.InDelta(t, 30.0, inside.Pos().Y, 1e-9)
		assert.False(t, inside.Dead())
	})
}
