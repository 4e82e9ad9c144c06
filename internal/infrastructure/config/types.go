package config

// PhysicsConfig is the root config for physics.yaml
type PhysicsConfig struct {
	Display    DisplayConfig    `yaml:"display"`
	Physics    PhysicsSettings  `yaml:"physics"`
	Movement   MovementConfig   `yaml:"movement"`
	Jump       JumpConfig       `yaml:"jump"`
	Broadphase BroadphaseConfig `yaml:"broadphase"`
	// Debug turns on diagnostic warnings in the physics core.
	Debug bool `yaml:"debug"`
}

type DisplayConfig struct {
	ScreenWidth  int `yaml:"screenWidth"`
	ScreenHeight int `yaml:"screenHeight"`
	Scale        int `yaml:"scale"`
	Framerate    int `yaml:"framerate"`
}

type PhysicsSettings struct {
	Gravity          float64 `yaml:"gravity"`      // px/s²
	MaxFallSpeed     float64 `yaml:"maxFallSpeed"` // px/s, 0 = uncapped
	MaxMove          float64 `yaml:"maxMove"`      // px per MoveX/MoveY call
	SettleIterations int     `yaml:"settleIterations"`
}

type MovementConfig struct {
	WalkSpeed float64 `yaml:"walkSpeed"` // px/s on the ground
	AirAccel  float64 `yaml:"airAccel"`  // px/s² while airborne
	MaxSpeed  float64 `yaml:"maxSpeed"`  // px/s cap while airborne
}

type JumpConfig struct {
	Speed             float64 `yaml:"speed"`    // px/s
	FastFall          float64 `yaml:"fastFall"` // extra px/s²
	DropThroughFrames int     `yaml:"dropThroughFrames"`
}

type BroadphaseConfig struct {
	X        int `yaml:"x"`
	Y        int `yaml:"y"`
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cellSize"`
}

// Default returns the values used for anything physics.yaml leaves out
func Default() *PhysicsConfig {
	return &PhysicsConfig{
		Display: DisplayConfig{
			ScreenWidth:  320,
			ScreenHeight: 240,
			Scale:        3,
			Framerate:    60,
		},
		Physics: PhysicsSettings{
			Gravity:          900,
			MaxFallSpeed:     360,
			MaxMove:          256,
			SettleIterations: 50,
		},
		Movement: MovementConfig{
			WalkSpeed: 90,
			AirAccel:  900,
			MaxSpeed:  90,
		},
		Jump: JumpConfig{
			Speed:             300,
			FastFall:          1200,
			DropThroughFrames: 6,
		},
		Broadphase: BroadphaseConfig{
			X:        -256,
			Y:        -256,
			Width:    4096,
			Height:   4096,
			CellSize: 32,
		},
	}
}
