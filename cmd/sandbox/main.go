package main

import (
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/ridge/internal/application/game"
	"github.com/younwookim/ridge/internal/application/replay"
	"github.com/younwookim/ridge/internal/application/scene/sandbox"
	"github.com/younwookim/ridge/internal/infrastructure/config"
)

func main() {
	stageFlag := flag.String("stage", "demo", "Stage to load from stages/<name>.yaml")
	tmxFlag := flag.String("tmx", "", "Tiled map to load instead of a stage (e.g., -tmx levels/demo.tmx)")
	configFlag := flag.String("config", "", "Read configs from this directory and reload them on change")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded replay")
	verifyFlag := flag.String("verify", "", "Replay a recording without a window and check it reproduces")
	flag.Parse()

	loader, watch := newLoader(*configFlag)

	if *verifyFlag != "" {
		if err := verifyReplay(loader, *stageFlag, *tmxFlag, *verifyFlag); err != nil {
			log.Fatal(err)
		}
		log.Printf("%s: ok", *verifyFlag)
		return
	}

	opts := sandbox.Options{
		Loader:     loader,
		Stage:      *stageFlag,
		TMX:        *tmxFlag,
		RecordPath: *recordFlag,
		WatchDirs:  watch,
	}
	if *recordFlag != "" {
		log.Printf("Recording enabled: %s", *recordFlag)
	}
	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		opts.Replay = data
	}

	s, err := sandbox.New(opts)
	if err != nil {
		log.Fatalf("Failed to start sandbox: %v", err)
	}

	cfg, err := loader.LoadPhysics()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	display := cfg.Display
	g := game.New(s, display.ScreenWidth, display.ScreenHeight, display.Framerate)
	defer g.Close()

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Ridge Sandbox")
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		log.Print(err)
	}
}

// newLoader reads configs from dir when given, else from the embedded copy.
// It also returns the directories worth watching for hot reload.
func newLoader(dir string) (*config.Loader, []string) {
	if dir != "" {
		var watch []string
		for _, d := range []string{dir, filepath.Join(dir, "stages"), filepath.Join(dir, "levels")} {
			if info, err := os.Stat(d); err == nil && info.IsDir() {
				watch = append(watch, d)
			}
		}
		return config.NewLoader(dir), watch
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}
