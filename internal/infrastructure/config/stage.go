package config

// StageConfig is the root config for text stages under stages/*.yaml. Tiled
// maps are loaded by the tmx package instead.
type StageConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	TileSize int    `yaml:"tileSize"`
	// OpenBorder makes the outside of the map empty instead of solid.
	OpenBorder bool `yaml:"openBorder"`

	Layers      LayersConfig      `yaml:"layers"`
	TileMapping map[string]string `yaml:"tileMapping"` // char -> empty|solid|oneway
	Spawns      []SpawnConfig     `yaml:"spawns"`
	Platforms   []PlatformConfig  `yaml:"platforms"`
}

type LayersConfig struct {
	Collision []string `yaml:"collision"`
}

type PositionConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type RectConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type SpawnConfig struct {
	Name string  `yaml:"name"`
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

type PlatformConfig struct {
	Name   string           `yaml:"name"`
	Kind   string           `yaml:"kind"` // solid archetype, default "platform"
	Rect   RectConfig       `yaml:"rect"`
	Path   []PositionConfig `yaml:"path"`
	Speed  float64          `yaml:"speed"`
	Loop   bool             `yaml:"loop"`
	OneWay bool             `yaml:"oneWay"`

	// Velocity moves a platform without a path at a constant rate, px/s.
	Velocity PositionConfig `yaml:"velocity"`
}
