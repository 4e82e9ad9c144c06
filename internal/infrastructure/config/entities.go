package config

// EntitiesConfig is the root config for entities.yaml: actor and solid
// archetypes that level spawns refer to by kind.
type EntitiesConfig struct {
	Actors map[string]ActorConfig `yaml:"actors"`
	Solids map[string]SolidConfig `yaml:"solids"`
}

type ActorConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Layers uint64 `yaml:"layers"` // 0 = all layers
	// Gravity is one of down, up, left, right; empty means down.
	Gravity      string  `yaml:"gravity"`
	GravityScale float64 `yaml:"gravityScale"` // multiplies physics.gravity, 0 = 1
	// Controlled actors read player input.
	Controlled bool `yaml:"controlled"`
	// Squishable actors are removed when crushed; others are only stopped.
	Squishable bool `yaml:"squishable"`
}

type SolidConfig struct {
	Layers uint64 `yaml:"layers"`
	OneWay bool   `yaml:"oneWay"`
}

// DefaultEntities returns the built-in archetypes
func DefaultEntities() *EntitiesConfig {
	return &EntitiesConfig{
		Actors: map[string]ActorConfig{
			"player": {Width: 8, Height: 16, Controlled: true, Squishable: true},
			"crate":  {Width: 16, Height: 16, Squishable: true},
		},
		Solids: map[string]SolidConfig{
			"platform": {},
			"ledge":    {OneWay: true},
		},
	}
}
