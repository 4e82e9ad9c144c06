package level

import (
	"fmt"

	"github.com/younwookim/ridge/internal/domain/physics"
)

// TileType represents the collision type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileSolid
	// TileOneWay blocks only downward travel through its top row.
	TileOneWay
)

// String returns the tile type name
func (t TileType) String() string {
	switch t {
	case TileSolid:
		return "solid"
	case TileOneWay:
		return "oneway"
	default:
		return "empty"
	}
}

// Legend maps level text characters to tile types
type Legend map[rune]TileType

// DefaultLegend is used by ParseRows when no legend is given
var DefaultLegend = Legend{
	'.': TileEmpty,
	' ': TileEmpty,
	'#': TileSolid,
	'=': TileOneWay,
}

// Grid is the static tile geometry of a level. It implements physics.Collider.
type Grid struct {
	Width    int // in tiles
	Height   int // in tiles
	TileSize int // in pixels
	Tiles    [][]TileType

	// OpenBorder makes everything outside the grid empty; by default the
	// outside is solid so actors cannot leave the level.
	OpenBorder bool
}

// NewGrid creates an empty grid
func NewGrid(width, height, tileSize int) *Grid {
	tiles := make([][]TileType, height)
	for y := range tiles {
		tiles[y] = make([]TileType, width)
	}
	return &Grid{Width: width, Height: height, TileSize: tileSize, Tiles: tiles}
}

// ParseRows builds a grid from text rows, one character per tile. Short rows
// are padded with empty tiles.
func ParseRows(tileSize int, legend Legend, rows ...string) (*Grid, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("tile size must be positive, got %d", tileSize)
	}
	if legend == nil {
		legend = DefaultLegend
	}
	width := 0
	for _, row := range rows {
		width = max(width, len([]rune(row)))
	}

	g := NewGrid(width, len(rows), tileSize)
	for y, row := range rows {
		for x, char := range []rune(row) {
			t, ok := legend[char]
			if !ok {
				return nil, fmt.Errorf("row %d col %d: unknown tile %q", y, x, char)
			}
			g.Tiles[y][x] = t
		}
	}
	return g, nil
}

// Tile returns the tile at tile coordinates
func (g *Grid) Tile(tx, ty int) TileType {
	if tx < 0 || tx >= g.Width || ty < 0 || ty >= g.Height {
		if g.OpenBorder {
			return TileEmpty
		}
		return TileSolid
	}
	return g.Tiles[ty][tx]
}

// Set changes the tile at tile coordinates; out of range is ignored
func (g *Grid) Set(tx, ty int, t TileType) {
	if tx < 0 || tx >= g.Width || ty < 0 || ty >= g.Height {
		return
	}
	g.Tiles[ty][tx] = t
}

// TileRect returns the pixel rectangle of a tile
func (g *Grid) TileRect(tx, ty int) physics.Rect {
	return physics.Rect{X: tx * g.TileSize, Y: ty * g.TileSize, W: g.TileSize, H: g.TileSize}
}

// PixelBounds returns the level size in pixels
func (g *Grid) PixelBounds() physics.Rect {
	return physics.Rect{W: g.Width * g.TileSize, H: g.Height * g.TileSize}
}

// Collides implements physics.Collider
func (g *Grid) Collides(bounds physics.Rect, dir physics.Direction, flags physics.CollisionFlags) bool {
	if bounds.Empty() {
		return false
	}
	x0, y0 := floorDiv(bounds.Left(), g.TileSize), floorDiv(bounds.Top(), g.TileSize)
	x1, y1 := floorDiv(bounds.Right()-1, g.TileSize), floorDiv(bounds.Bottom()-1, g.TileSize)

	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			switch g.Tile(tx, ty) {
			case TileSolid:
				return true
			case TileOneWay:
				if physics.OneWayBlocks(g.TileRect(tx, ty), bounds, dir, physics.Down, flags) {
					return true
				}
			}
		}
	}
	return false
}

// floorDiv divides rounding toward negative infinity, so pixel -1 is in tile -1
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
