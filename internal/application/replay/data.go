package replay

import "github.com/younwookim/ridge/internal/application/system"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int  `json:"f"`            // Frame number
	L  bool `json:"l,omitempty"`  // Left
	R  bool `json:"r,omitempty"`  // Right
	D  bool `json:"d,omitempty"`  // Down
	J  bool `json:"j,omitempty"`  // Jump
	JP bool `json:"jp,omitempty"` // JumpPressed
}

func frameInput(f int, in system.InputState) FrameInput {
	return FrameInput{F: f, L: in.Left, R: in.Right, D: in.Down, J: in.Jump, JP: in.JumpPressed}
}

func (fi FrameInput) state() system.InputState {
	return system.InputState{Left: fi.L, Right: fi.R, Down: fi.D, Jump: fi.J, JumpPressed: fi.JP}
}

// ReplayData contains all data needed to replay a session. Final, when
// present, is the world state after the last frame and is used to check
// that a replay reproduces the recording.
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	FPS       int          `json:"fps"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
	Final     *Snapshot    `json:"final,omitempty"`
}

// Snapshot is the observable state of every actor at a frame boundary
type Snapshot struct {
	Frame  uint64       `json:"frame"`
	Actors []ActorState `json:"actors"`
}

// ActorState is one actor's name and exact position
type ActorState struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}
