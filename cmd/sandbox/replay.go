package main

import (
	"fmt"

	"github.com/younwookim/ridge/internal/application/replay"
	"github.com/younwookim/ridge/internal/application/scene/sandbox"
	"github.com/younwookim/ridge/internal/ecs"
	"github.com/younwookim/ridge/internal/infrastructure/config"
)

// verifyReplay replays a recording headlessly against the level it names
// and fails if the final state differs from the recorded one.
func verifyReplay(loader *config.Loader, stage, tmxPath, path string) error {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return err
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		return err
	}
	lv, err := sandbox.LoadLevel(loader, stage, tmxPath)
	if err != nil {
		return err
	}
	if data.Stage != lv.Name {
		return fmt.Errorf("replay was recorded on %q, not %q", data.Stage, lv.Name)
	}
	w, err := ecs.NewWorld(cfg, lv)
	if err != nil {
		return err
	}
	return replay.Verify(w, *data)
}
