package ecs

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/ridge/internal/domain/level"
	"github.com/younwookim/ridge/internal/domain/physics"
	"github.com/younwookim/ridge/internal/infrastructure/config"
)

const frame = 1.0 / 60

func testConfig() *config.GameConfig {
	return &config.GameConfig{Physics: config.Default(), Entities: config.DefaultEntities()}
}

func newTestWorld(t *testing.T, lv *level.Level) *World {
	t.Helper()
	w, err := NewWorld(testConfig(), lv)
	require.NoError(t, err)
	return w
}

func openGrid(t *testing.T, tileSize int, rows ...string) *level.Grid {
	t.Helper()
	g, err := level.ParseRows(tileSize, nil, rows...)
	require.NoError(t, err)
	g.OpenBorder = true
	return g
}

func TestNewWorld_Errors(t *testing.T) {
	lv := &level.Level{Grid: level.NewGrid(1, 1, 8)}

	_, err := NewWorld(nil, lv)
	assert.Error(t, err)

	_, err = NewWorld(testConfig(), &level.Level{})
	assert.ErrorContains(t, err, "no grid")

	lv.Spawns = []level.Spawn{{Kind: "dragon"}}
	_, err = NewWorld(testConfig(), lv)
	assert.ErrorContains(t, err, `unknown actor kind "dragon"`)

	cfg := testConfig()
	cfg.Entities.Actors["kite"] = config.ActorConfig{Width: 4, Height: 4, Gravity: "sideways"}
	lv.Spawns = []level.Spawn{{Kind: "kite"}}
	_, err = NewWorld(cfg, lv)
	assert.ErrorContains(t, err, "unknown gravity")
}

func TestNewWorld_SettlesSpawns(t *testing.T) {
	w := newTestWorld(t, &level.Level{
		Grid: openGrid(t, 16,
			"....",
			"....",
			"####",
		),
		Spawns: []level.Spawn{{Name: "hero", Kind: "player", X: 8, Y: 4}},
	})

	p, ok := w.Player()
	require.True(t, ok)
	assert.Equal(t, "hero", p.Name)
	assert.Equal(t, 32, p.Bounds().Bottom())
	assert.True(t, p.OnGround())
	assert.Equal(t, 1, w.Space.Len())
}

// An 8x16 actor resting on a tile at y=16 stays grounded with no vertical
// speed under default gravity.
func TestWorld_ActorOnTile(t *testing.T) {
	w := newTestWorld(t, &level.Level{
		Grid: openGrid(t, 8,
			".",
			".",
			"#",
		),
		Spawns: []level.Spawn{{Kind: "player", X: 0, Y: 0, W: 8, H: 16}},
	})
	p, ok := w.Player()
	require.True(t, ok)

	for range 30 {
		w.Update(frame, Intent{})
		assert.True(t, p.OnGround())
		assert.Equal(t, 0.0, p.VerticalSpeed())
		assert.Equal(t, 16, p.Bounds().Bottom())
	}
	assert.Equal(t, uint64(30), w.Frame())
}

// A 32x8 platform moving right at 60 px/s carries its rider 60 px in a second.
func TestWorld_PlatformCarriesRider(t *testing.T) {
	w := newTestWorld(t, &level.Level{
		Grid: openGrid(t, 8, "."),
		Platforms: []level.Platform{{
			Name:   "belt",
			Bounds: physics.Rect{X: 0, Y: 0, W: 32, H: 8},
			Path:   []physics.Vec{{X: 0, Y: 0}, {X: 6000, Y: 0}},
			Speed:  60,
		}},
		Spawns: []level.Spawn{{Name: "rider", Kind: "crate", X: 0, Y: -16, W: 8, H: 16}},
	})
	actors := w.Actors()
	require.Len(t, actors, 1)
	rider := actors[0]
	require.True(t, rider.OnGround())

	for range 60 {
		w.Update(frame, Intent{})
	}

	assert.InDelta(t, 60.0, rider.Pos().X, 1e-3)
	assert.Equal(t, 0, rider.Bounds().Bottom())
	assert.InDelta(t, 60.0, w.Solids()[0].Pos().X, 1e-3)
}

func TestWorld_ConstantVelocityPlatform(t *testing.T) {
	w := newTestWorld(t, &level.Level{
		Grid: openGrid(t, 8, "."),
		Platforms: []level.Platform{
			{Name: "drift", Bounds: physics.Rect{X: 0, Y: 0, W: 32, H: 8}, Velocity: physics.Vec{X: -30}},
			{Name: "still", Bounds: physics.Rect{X: 100, Y: 0, W: 32, H: 8}},
		},
		Spawns: []level.Spawn{{Name: "rider", Kind: "crate", X: 8, Y: -16, W: 8, H: 16}},
	})
	rider := w.Actors()[0]
	require.True(t, rider.OnGround())

	for range 60 {
		w.Update(frame, Intent{})
	}

	pos := map[string]float64{}
	for _, s := range w.Solids() {
		pos[s.Name] = s.Pos().X
	}
	require.Len(t, pos, 2)
	assert.InDelta(t, -30.0, pos["drift"], 1e-3)
	assert.InDelta(t, 100.0, pos["still"], 1e-9)
	assert.InDelta(t, 8-30.0, rider.Pos().X, 1e-3)
}

func crushLevel(t *testing.T, kind string) *level.Level {
	return &level.Level{
		Grid: openGrid(t, 8,
			"######",
			"......",
		),
		Platforms: []level.Platform{{
			Name:   "press",
			Bounds: physics.Rect{X: 0, Y: 40, W: 32, H: 8},
			Path:   []physics.Vec{{X: 0, Y: 40}, {X: 0, Y: 0}},
			Speed:  120,
		}},
		Spawns: []level.Spawn{{Name: "victim", Kind: kind, X: 8, Y: 24}},
	}
}

func TestWorld_SquishedActorIsRemoved(t *testing.T) {
	w := newTestWorld(t, crushLevel(t, "crate"))
	require.Len(t, w.Actors(), 1)
	require.Equal(t, 2, w.Space.Len())

	for range 30 {
		w.Update(frame, Intent{})
	}

	assert.Empty(t, w.Actors())
	assert.Equal(t, 1, w.Space.Len())
}

func TestWorld_UnsquishableActorIsPinned(t *testing.T) {
	cfg := testConfig()
	cfg.Entities.Actors["anvil"] = config.ActorConfig{Width: 16, Height: 16}
	w, err := NewWorld(cfg, crushLevel(t, "anvil"))
	require.NoError(t, err)
	var buf bytes.Buffer
	w.Log = log.New(&buf, "", 0)

	for range 30 {
		w.Update(frame, Intent{})
	}

	assert.Len(t, w.Actors(), 1)
	pins := strings.Count(buf.String(), `anvil "victim" pinned`)
	assert.Positive(t, pins)
	assert.LessOrEqual(t, pins, 30, "at most one pin per frame")
}

func TestWorld_IntentDrivesPlayer(t *testing.T) {
	w := newTestWorld(t, &level.Level{
		Grid: openGrid(t, 16,
			"........",
			"........",
			"########",
		),
		Spawns: []level.Spawn{{Kind: "player", X: 16, Y: 16}},
	})
	p, ok := w.Player()
	require.True(t, ok)
	require.True(t, p.OnGround())

	for range 10 {
		w.Update(frame, Intent{Move: physics.Right})
	}
	assert.InDelta(t, 16+10*90*frame, p.Pos().X, 1e-6)
	assert.Equal(t, physics.Right, p.Facing)

	w.Update(frame, Intent{Jump: true})
	assert.False(t, p.OnGround())
	assert.Less(t, p.VerticalSpeed(), 0.0)

	for range 120 {
		w.Update(frame, Intent{})
	}
	assert.True(t, p.OnGround())
}

func TestWorld_DropThroughLedge(t *testing.T) {
	w := newTestWorld(t, &level.Level{
		Grid: openGrid(t, 16,
			"....",
			"====",
			"....",
			"....",
			"####",
		),
		Spawns: []level.Spawn{{Kind: "player", X: 16, Y: 0}},
	})
	p, ok := w.Player()
	require.True(t, ok)
	require.Equal(t, 16, p.Bounds().Bottom())

	w.Update(frame, Intent{Drop: true})
	for range 60 {
		w.Update(frame, Intent{})
	}

	assert.True(t, p.OnGround())
	assert.Equal(t, 64, p.Bounds().Bottom())
}

func TestWorld_SpawnDuringPlay(t *testing.T) {
	w := newTestWorld(t, &level.Level{
		Grid: openGrid(t, 16,
			"....",
			"....",
			"####",
		),
	})

	entry, err := w.SpawnActor(level.Spawn{Name: "late", Kind: "crate", X: 16, Y: 0})
	require.NoError(t, err)
	a := Actor.Get(entry)
	assert.Equal(t, 0, w.Space.Len(), "not visible before the frame boundary")

	w.Update(frame, Intent{})

	assert.Equal(t, 1, w.Space.Len())
	assert.Equal(t, 32, a.Bounds().Bottom())
	assert.True(t, a.OnGround())
}

func TestParseGravity(t *testing.T) {
	for in, want := range map[string]physics.Direction{
		"": physics.Down, "down": physics.Down, "Up": physics.Up,
		"left": physics.Left, "RIGHT": physics.Right,
	} {
		got, err := parseGravity(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}
