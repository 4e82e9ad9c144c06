package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/ridge/internal/application/system"
	"github.com/younwookim/ridge/internal/ecs"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != Version {
		return nil, fmt.Errorf("unsupported replay version %q", data.Version)
	}
	return &data, nil
}

// GetInput returns the input for the current frame and advances
func (r *Replayer) GetInput() (system.InputState, bool) {
	if r.frame >= len(r.data.Frames) {
		return system.InputState{}, false
	}
	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.state(), true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Done reports whether every frame has been played
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// Capture records the position of every live actor in w
func Capture(w *ecs.World) Snapshot {
	s := Snapshot{Frame: w.Frame()}
	for _, a := range w.Actors() {
		if a.Dead() {
			continue
		}
		p := a.Pos()
		s.Actors = append(s.Actors, ActorState{Name: a.Name, X: p.X, Y: p.Y})
	}
	return s
}

// Run plays every remaining frame of r into w with a fixed step and returns
// the final state.
func Run(w *ecs.World, r *Replayer, dt float64) Snapshot {
	for {
		in, ok := r.GetInput()
		if !ok {
			break
		}
		w.Update(dt, system.ToIntent(in))
	}
	return Capture(w)
}

// Verify replays data into w and compares the result with data.Final
func Verify(w *ecs.World, data ReplayData) error {
	if data.FPS <= 0 {
		return fmt.Errorf("replay has no fps")
	}
	got := Run(w, NewReplayer(data), 1/float64(data.FPS))
	if data.Final == nil {
		return nil
	}
	if err := Diff(*data.Final, got); err != nil {
		return fmt.Errorf("replay diverged: %w", err)
	}
	return nil
}

// Diff returns an error describing the first difference between a recorded
// snapshot and a replayed one, or nil when they match.
func Diff(want, got Snapshot) error {
	if want.Frame != got.Frame {
		return fmt.Errorf("frame %d, recorded %d", got.Frame, want.Frame)
	}
	if len(want.Actors) != len(got.Actors) {
		return fmt.Errorf("%d actors, recorded %d", len(got.Actors), len(want.Actors))
	}
	for i, w := range want.Actors {
		g := got.Actors[i]
		if w != g {
			return fmt.Errorf("actor %d %q at (%v,%v), recorded %q at (%v,%v)", i, g.Name, g.X, g.Y, w.Name, w.X, w.Y)
		}
	}
	return nil
}
