// Package tmx loads levels drawn in the Tiled map editor.
//
// A map needs a tile layer named "collision". Every non-empty tile in it is
// solid unless its tileset tile carries a string property type=oneway (or
// type=empty for decoration). A bool property openBorder on the layer makes
// the outside of the map empty. Optional object groups:
//
//   - "spawns": one object per actor; the object's class is the actor kind.
//   - "platforms": rectangles become moving solids. Properties: path (name of
//     a polyline object in the same group), speed (px/s), loop and oneway.
//     Without a path, vx and vy (px/s) move it at a constant velocity.
package tmx

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/lafriks/go-tiled"

	"github.com/younwookim/ridge/internal/domain/level"
	"github.com/younwookim/ridge/internal/domain/physics"
)

const (
	collisionLayer = "collision"
	spawnGroup     = "spawns"
	platformGroup  = "platforms"
)

// Load parses a TMX file from fsys into a level
func Load(fsys fs.FS, tmxPath string) (*level.Level, error) {
	m, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if m.TileWidth != m.TileHeight {
		return nil, fmt.Errorf("load TMX %s: tiles must be square, got %dx%d", tmxPath, m.TileWidth, m.TileHeight)
	}

	grid, err := loadGrid(m)
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	name := strings.TrimSuffix(path.Base(tmxPath), path.Ext(tmxPath))
	lv := &level.Level{Name: name, Grid: grid}

	for _, og := range m.ObjectGroups {
		switch og.Name {
		case spawnGroup:
			for _, o := range og.Objects {
				lv.Spawns = append(lv.Spawns, level.Spawn{
					Name: o.Name,
					Kind: objectClass(o),
					X:    o.X,
					Y:    o.Y,
					W:    int(o.Width),
					H:    int(o.Height),
				})
			}
		case platformGroup:
			platforms, err := loadPlatforms(og)
			if err != nil {
				return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
			}
			lv.Platforms = append(lv.Platforms, platforms...)
		}
	}
	return lv, nil
}

func loadGrid(m *tiled.Map) (*level.Grid, error) {
	var layer *tiled.Layer
	for _, l := range m.Layers {
		if l.Name == collisionLayer {
			layer = l
			break
		}
	}
	if layer == nil {
		return nil, fmt.Errorf("no %q tile layer", collisionLayer)
	}

	grid := level.NewGrid(m.Width, m.Height, m.TileWidth)
	grid.OpenBorder = layer.Properties.GetBool("openBorder")
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			tile := layer.Tiles[y*m.Width+x]
			if tile.IsNil() {
				continue
			}
			kind := "solid"
			if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
				if t := tilesetTile.Properties.GetString("type"); t != "" {
					kind = t
				}
			}
			t, err := tileType(kind)
			if err != nil {
				return nil, fmt.Errorf("tile (%d,%d): %w", x, y, err)
			}
			grid.Set(x, y, t)
		}
	}
	return grid, nil
}

func tileType(kind string) (level.TileType, error) {
	switch strings.ToLower(kind) {
	case "solid":
		return level.TileSolid, nil
	case "oneway":
		return level.TileOneWay, nil
	case "empty":
		return level.TileEmpty, nil
	default:
		return level.TileEmpty, fmt.Errorf("unknown tile type %q", kind)
	}
}

func loadPlatforms(og *tiled.ObjectGroup) ([]level.Platform, error) {
	paths := make(map[string][]physics.Vec)
	for _, o := range og.Objects {
		if len(o.PolyLines) == 0 || o.PolyLines[0].Points == nil {
			continue
		}
		var pts []physics.Vec
		for _, p := range *o.PolyLines[0].Points {
			pts = append(pts, physics.Vec{X: o.X + p.X, Y: o.Y + p.Y})
		}
		paths[o.Name] = pts
	}

	var out []level.Platform
	for _, o := range og.Objects {
		if len(o.PolyLines) > 0 {
			continue
		}
		p := level.Platform{
			Name:   o.Name,
			Kind:   objectClass(o),
			Bounds: physics.Rect{X: int(o.X), Y: int(o.Y), W: int(o.Width), H: int(o.Height)},
			Speed:  o.Properties.GetFloat("speed"),
			Loop:   o.Properties.GetBool("loop"),
			OneWay: o.Properties.GetBool("oneway"),
		}
		if p.Bounds.Empty() {
			return nil, fmt.Errorf("platform %q has no size", o.Name)
		}
		if ref := o.Properties.GetString("path"); ref != "" {
			pts, ok := paths[ref]
			if !ok {
				return nil, fmt.Errorf("platform %q: no polyline named %q", o.Name, ref)
			}
			p.Path = pts
		} else {
			p.Velocity = physics.Vec{X: o.Properties.GetFloat("vx"), Y: o.Properties.GetFloat("vy")}
		}
		out = append(out, p)
	}
	return out, nil
}

func objectClass(o *tiled.Object) string {
	if o.Class != "" {
		return o.Class
	}
	return o.Type //nolint:staticcheck // older maps use type=
}
