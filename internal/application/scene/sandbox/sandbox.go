// Package sandbox provides the interactive physics sandbox scene.
package sandbox

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/ridge/internal/application/replay"
	"github.com/younwookim/ridge/internal/application/scene"
	"github.com/younwookim/ridge/internal/application/state"
	"github.com/younwookim/ridge/internal/application/system"
	"github.com/younwookim/ridge/internal/domain/level"
	"github.com/younwookim/ridge/internal/domain/physics"
	"github.com/younwookim/ridge/internal/ecs"
	"github.com/younwookim/ridge/internal/infrastructure/config"
	"github.com/younwookim/ridge/internal/infrastructure/tmx"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorWall     = color.RGBA{80, 80, 100, 255}
	colorOneWay   = color.RGBA{120, 120, 150, 255}
	colorSolid    = color.RGBA{150, 110, 60, 255}
	colorLedge    = color.RGBA{190, 150, 90, 200}
	colorPlayer   = color.RGBA{100, 200, 100, 255}
	colorActor    = color.RGBA{200, 140, 80, 255}
	colorAirborne = color.RGBA{140, 220, 140, 255}
	colorOverlay  = color.RGBA{0, 0, 0, 128}
)

// Options selects what the sandbox loads and how it is driven
type Options struct {
	Loader *config.Loader
	// Stage names stages/<Stage>.yaml. TMX, when set, is a Tiled map path
	// inside the loader's filesystem and wins over Stage.
	Stage string
	TMX   string

	// RecordPath enables input recording; the file is written on exit.
	RecordPath string
	// Replay plays recorded input instead of the keyboard.
	Replay *replay.ReplayData
	// WatchDirs are watched for config and map edits, which reload the world.
	WatchDirs []string
}

// Controls are the sandbox's own keys, separate from player input
type Controls struct {
	Pause   bool
	Step    bool
	Restart bool
	Save    bool
}

// Sandbox runs a level with the platforming physics and draws it
type Sandbox struct {
	opts  Options
	cfg   *config.GameConfig
	level *level.Level
	world *ecs.World

	state  state.SandboxState
	resume state.SandboxState

	input    *system.InputSystem
	recorder *replay.Recorder
	replayer *replay.Replayer
	watcher  *config.Watcher

	// Replaced in tests.
	readInput    func() system.InputState
	readControls func() Controls

	screenW int
	screenH int
}

var _ scene.Scene = (*Sandbox)(nil)

// New loads the configured level and builds its world
func New(opts Options) (*Sandbox, error) {
	if opts.Loader == nil {
		return nil, fmt.Errorf("sandbox: no config loader")
	}
	s := &Sandbox{
		opts:         opts,
		input:        system.NewInputSystem(),
		readControls: keyboardControls,
	}
	s.readInput = s.input.GetInput

	cfg, lv, err := s.load()
	if err != nil {
		return nil, err
	}
	if err := s.reset(cfg, lv); err != nil {
		return nil, err
	}

	if opts.Replay != nil {
		s.replayer = replay.NewReplayer(*opts.Replay)
		s.state = state.StateReplaying
	}
	return s, nil
}

func (s *Sandbox) load() (*config.GameConfig, *level.Level, error) {
	cfg, err := s.opts.Loader.LoadAll()
	if err != nil {
		return nil, nil, err
	}
	lv, err := LoadLevel(s.opts.Loader, s.opts.Stage, s.opts.TMX)
	if err != nil {
		return nil, nil, err
	}
	return cfg, lv, nil
}

// LoadLevel reads a Tiled map when tmxPath is set, else stages/<stage>.yaml
func LoadLevel(loader *config.Loader, stage, tmxPath string) (*level.Level, error) {
	if tmxPath != "" {
		return tmx.Load(loader.FS(), tmxPath)
	}
	stageCfg, err := loader.LoadStage(stage)
	if err != nil {
		return nil, err
	}
	return system.LoadStage(stageCfg)
}

// reset builds a fresh world and restarts recording
func (s *Sandbox) reset(cfg *config.GameConfig, lv *level.Level) error {
	world, err := ecs.NewWorld(cfg, lv)
	if err != nil {
		return err
	}
	s.cfg, s.level, s.world = cfg, lv, world
	s.screenW = cfg.Physics.Display.ScreenWidth
	s.screenH = cfg.Physics.Display.ScreenHeight

	if s.opts.RecordPath != "" {
		s.recorder = replay.NewRecorder(lv.Name, cfg.Physics.Display.Framerate)
	}
	return nil
}

// reload rereads configs and the level. On error the current world stays.
func (s *Sandbox) reload() {
	cfg, lv, err := s.load()
	if err == nil {
		err = s.reset(cfg, lv)
	}
	if err != nil {
		log.Printf("sandbox: reload failed, keeping current world: %v", err)
		return
	}
	if s.replayer != nil {
		s.replayer.Reset()
		s.state = state.StateReplaying
	}
	log.Printf("sandbox: reloaded %s", lv.Name)
}

// World returns the running world
func (s *Sandbox) World() *ecs.World { return s.world }

// State returns the current sandbox state
func (s *Sandbox) State() state.SandboxState { return s.state }

// Update advances the sandbox by one fixed step (implements scene.Scene)
func (s *Sandbox) Update(dt float64) (scene.Scene, error) {
	if s.watcher != nil {
		if changed := s.watcher.Drain(); len(changed) > 0 {
			log.Printf("sandbox: %d file(s) changed, e.g. %s", len(changed), changed[0])
			s.reload()
		}
	}

	c := s.readControls()
	if c.Restart {
		s.reload()
	}
	if c.Save {
		s.saveRecording()
	}

	switch {
	case s.state.Advances():
		if c.Pause {
			s.resume, s.state = s.state, state.StatePaused
			return nil, nil
		}
		s.advance(dt)
	case s.state == state.StatePaused:
		if c.Pause {
			s.state = s.resume
			return nil, nil
		}
		if c.Step {
			s.advance(dt)
		}
	}
	return nil, nil
}

// advance runs one world frame from the keyboard or the replay
func (s *Sandbox) advance(dt float64) {
	var in system.InputState
	if s.replayer != nil {
		var ok bool
		if in, ok = s.replayer.GetInput(); !ok {
			s.state = state.StateReplayDone
			s.checkReplay()
			return
		}
	} else {
		in = s.readInput()
	}

	if s.recorder != nil {
		s.recorder.RecordFrame(in)
	}
	s.world.Update(dt, system.ToIntent(in))
}

func (s *Sandbox) checkReplay() {
	if s.opts.Replay == nil || s.opts.Replay.Final == nil {
		log.Printf("sandbox: replay finished after %d frames", s.world.Frame())
		return
	}
	if err := replay.Diff(*s.opts.Replay.Final, replay.Capture(s.world)); err != nil {
		log.Printf("sandbox: %v", err)
		return
	}
	log.Printf("sandbox: replay matches recording (%d frames)", s.world.Frame())
}

func (s *Sandbox) saveRecording() {
	if s.recorder == nil || !s.recorder.IsRecording() {
		return
	}
	s.recorder.Stop(replay.Capture(s.world))
	if err := s.recorder.Save(s.opts.RecordPath); err != nil {
		log.Printf("Failed to save recording: %v", err)
		return
	}
	log.Printf("Recording saved: %s (%d frames)", s.opts.RecordPath, s.recorder.FrameCount())
}

// OnEnter starts watching for edits
func (s *Sandbox) OnEnter() {
	if len(s.opts.WatchDirs) == 0 || s.watcher != nil {
		return
	}
	w, err := config.NewWatcher(s.opts.WatchDirs...)
	if err != nil {
		log.Printf("sandbox: hot reload disabled: %v", err)
		return
	}
	s.watcher = w
}

// OnExit stops watching and writes the recording
func (s *Sandbox) OnExit() {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			log.Printf("sandbox: closing watcher: %v", err)
		}
		s.watcher = nil
	}
	s.saveRecording()
}

func keyboardControls() Controls {
	return Controls{
		Pause:   inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Step:    inpututil.IsKeyJustPressed(ebiten.KeyN),
		Restart: inpututil.IsKeyJustPressed(ebiten.KeyR),
		Save:    inpututil.IsKeyJustPressed(ebiten.KeyF5),
	}
}

// camera returns the top-left of the view: centered on the player and
// clamped to the level when the level is larger than the screen.
func (s *Sandbox) camera() (int, int) {
	b := s.level.Grid.PixelBounds()
	cx, cy := b.X+b.W/2, b.Y+b.H/2
	if p, ok := s.world.Player(); ok {
		pb := p.Bounds()
		cx, cy = pb.X+pb.W/2, pb.Y+pb.H/2
	}
	return clampCam(cx-s.screenW/2, b.X, b.W, s.screenW), clampCam(cy-s.screenH/2, b.Y, b.H, s.screenH)
}

func clampCam(c, start, size, screen int) int {
	if size <= screen {
		return start - (screen-size)/2
	}
	return max(start, min(c, start+size-screen))
}

// Draw renders the sandbox
func (s *Sandbox) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	camX, camY := s.camera()

	s.drawTiles(screen, camX, camY)
	for _, sd := range s.world.Solids() {
		c := colorSolid
		if sd.OneWay != physics.None {
			c = colorLedge
		}
		drawBox(screen, sd.Bounds(), camX, camY, c)
	}
	for _, a := range s.world.Actors() {
		if a.Dead() {
			continue
		}
		c := colorActor
		if a.Controlled {
			c = colorPlayer
			if !a.OnGround() {
				c = colorAirborne
			}
		}
		drawBox(screen, a.Bounds(), camX, camY, c)
	}

	s.drawHUD(screen)
	if s.state == state.StatePaused {
		ebitenutil.DrawRect(screen, 0, 0, float64(s.screenW), float64(s.screenH), colorOverlay)
		ebitenutil.DebugPrintAt(screen, "PAUSED\n\nESC: resume  N: step", s.screenW/2-60, s.screenH/2-20)
	}
}

func (s *Sandbox) drawTiles(screen *ebiten.Image, camX, camY int) {
	g := s.level.Grid
	ts := g.TileSize
	startX, startY := max(0, camX/ts), max(0, camY/ts)
	endX, endY := min(g.Width-1, (camX+s.screenW)/ts), min(g.Height-1, (camY+s.screenH)/ts)

	for ty := startY; ty <= endY; ty++ {
		for tx := startX; tx <= endX; tx++ {
			var c color.Color
			switch g.Tile(tx, ty) {
			case level.TileSolid:
				c = colorWall
			case level.TileOneWay:
				c = colorOneWay
			default:
				continue
			}
			r := g.TileRect(tx, ty)
			if g.Tile(tx, ty) == level.TileOneWay {
				r.H = max(1, ts/4)
			}
			drawBox(screen, r, camX, camY, c)
		}
	}
}

func drawBox(screen *ebiten.Image, r physics.Rect, camX, camY int, c color.Color) {
	ebitenutil.DrawRect(screen, float64(r.X-camX), float64(r.Y-camY), float64(r.W), float64(r.H), c)
}

func (s *Sandbox) drawHUD(screen *ebiten.Image) {
	text := fmt.Sprintf("%s  frame %d  %s", s.level.Name, s.world.Frame(), s.state)
	if p, ok := s.world.Player(); ok {
		pos := p.Pos()
		text += fmt.Sprintf("\n%s (%.2f, %.2f) v=(%.1f, %.1f)", p.State(), pos.X, pos.Y, p.Velocity.X, p.Velocity.Y)
	}
	if s.recorder != nil && s.recorder.IsRecording() {
		text += fmt.Sprintf("\nREC %d", s.recorder.FrameCount())
	}
	ebitenutil.DebugPrint(screen, text)
	ebitenutil.DebugPrintAt(screen, "A/D: Move | W: Jump | S+W: Drop | ESC: Pause | R: Reload | F5: Save", 4, s.screenH-16)
}
