package component

import "github.com/milk9111/charkit/common"

// Input is the per-frame movement intent for an actor, written by the input
// system for the player and by the script system for NPCs.
type Input struct {
	Move        common.Vec3
	JumpPressed bool

	// Debug actions, player only.
	GodJumpPressed bool
	LaunchPressed  bool
}

var InputComponent = NewHandle[Input]()
