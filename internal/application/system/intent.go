package system

import (
	"github.com/younwookim/ridge/internal/domain/physics"
	"github.com/younwookim/ridge/internal/ecs"
)

// ToIntent maps raw input to what the player actor should do this frame.
// Down+Jump drops through one-way surfaces instead of jumping; holding Down
// in the air fast-falls.
func ToIntent(in InputState) ecs.Intent {
	var intent ecs.Intent
	switch {
	case in.Left && !in.Right:
		intent.Move = physics.Left
	case in.Right && !in.Left:
		intent.Move = physics.Right
	}

	if in.JumpPressed {
		if in.Down {
			intent.Drop = true
		} else {
			intent.Jump = true
		}
	}
	intent.FastFall = in.Down
	return intent
}
