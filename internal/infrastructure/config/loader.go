package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

const (
	physicsFile  = "physics.yaml"
	entitiesFile = "entities.yaml"
	stagesDir    = "stages"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics  *PhysicsConfig
	Entities *EntitiesConfig
}

// Loader loads configuration from YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// FS returns the filesystem configs are read from
func (l *Loader) FS() fs.FS { return l.fsys }

// BasePath returns the directory the loader was created for. It is only
// meaningful for loaders backed by the OS filesystem.
func (l *Loader) BasePath() string { return l.basePath }

// LoadPhysics loads physics.yaml on top of Default. A missing file yields
// the defaults.
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	cfg := Default()
	if err := l.decode(physicsFile, cfg, true); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", physicsFile, err)
	}
	return cfg, nil
}

// LoadEntities loads entities.yaml on top of DefaultEntities. A missing file
// yields the defaults.
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	cfg := DefaultEntities()
	if err := l.decode(entitiesFile, cfg, true); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadStage loads stages/<name>.yaml
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	var cfg StageConfig
	if err := l.decode(path.Join(stagesDir, name+".yaml"), &cfg, false); err != nil {
		return nil, err
	}
	if cfg.ID == "" {
		cfg.ID = name
	}
	return &cfg, nil
}

// LoadAll loads all base configurations (physics, entities)
func (l *Loader) LoadAll() (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics:  physics,
		Entities: entities,
	}, nil
}

func (l *Loader) decode(name string, out any, optional bool) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// Validate rejects values the physics core cannot run with
func (c *PhysicsConfig) Validate() error {
	switch {
	case c.Display.Framerate <= 0:
		return fmt.Errorf("display.framerate must be positive, got %d", c.Display.Framerate)
	case c.Physics.MaxMove <= 0:
		return fmt.Errorf("physics.maxMove must be positive, got %g", c.Physics.MaxMove)
	case c.Physics.SettleIterations <= 0:
		return fmt.Errorf("physics.settleIterations must be positive, got %d", c.Physics.SettleIterations)
	case c.Broadphase.CellSize <= 0:
		return fmt.Errorf("broadphase.cellSize must be positive, got %d", c.Broadphase.CellSize)
	case c.Broadphase.Width <= 0 || c.Broadphase.Height <= 0:
		return fmt.Errorf("broadphase area must be positive, got %dx%d", c.Broadphase.Width, c.Broadphase.Height)
	}
	return nil
}
