package system

import (
	"fmt"

	"github.com/younwookim/ridge/internal/domain/level"
	"github.com/younwookim/ridge/internal/domain/physics"
	"github.com/younwookim/ridge/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Level
func LoadStage(cfg *config.StageConfig) (*level.Level, error) {
	legend, err := stageLegend(cfg.TileMapping)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", cfg.ID, err)
	}
	grid, err := level.ParseRows(cfg.TileSize, legend, cfg.Layers.Collision...)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", cfg.ID, err)
	}
	grid.OpenBorder = cfg.OpenBorder

	lv := &level.Level{Name: cfg.Name, Grid: grid}
	if lv.Name == "" {
		lv.Name = cfg.ID
	}
	for _, s := range cfg.Spawns {
		lv.Spawns = append(lv.Spawns, level.Spawn{Name: s.Name, Kind: s.Kind, X: s.X, Y: s.Y})
	}
	for _, p := range cfg.Platforms {
		kind := p.Kind
		if kind == "" {
			kind = "platform"
		}
		pl := level.Platform{
			Name:     p.Name,
			Kind:     kind,
			Bounds:   physics.Rect{X: p.Rect.X, Y: p.Rect.Y, W: p.Rect.W, H: p.Rect.H},
			Speed:    p.Speed,
			Loop:     p.Loop,
			OneWay:   p.OneWay,
			Velocity: physics.Vec{X: p.Velocity.X, Y: p.Velocity.Y},
		}
		for _, pt := range p.Path {
			pl.Path = append(pl.Path, physics.Vec{X: pt.X, Y: pt.Y})
		}
		lv.Platforms = append(lv.Platforms, pl)
	}
	return lv, nil
}

// stageLegend builds a legend from the tile mapping. Characters not in the
// mapping fall back to the default legend.
func stageLegend(mapping map[string]string) (level.Legend, error) {
	legend := make(level.Legend, len(level.DefaultLegend)+len(mapping))
	for r, t := range level.DefaultLegend {
		legend[r] = t
	}
	for char, name := range mapping {
		runes := []rune(char)
		if len(runes) != 1 {
			return nil, fmt.Errorf("tile mapping key %q must be one character", char)
		}
		var t level.TileType
		switch name {
		case "empty":
			t = level.TileEmpty
		case "solid", "wall":
			t = level.TileSolid
		case "oneway":
			t = level.TileOneWay
		default:
			return nil, fmt.Errorf("tile mapping %q: unknown tile type %q", char, name)
		}
		legend[runes[0]] = t
	}
	return legend, nil
}
