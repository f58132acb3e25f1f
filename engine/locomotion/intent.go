package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Intent is a movement request produced by the input layer and consumed by Controller.Apply.
// It is a closed set: Teleport, Look and Walk.
type Intent interface {
	isIntent()
}

// TeleportSource identifies which input channel produced a Teleport.
type TeleportSource int

const (
	// SourcePointer is a desktop mouse or touch tap on the world.
	SourcePointer TeleportSource = iota
	// SourceController is a VR controller trigger release on a valid reticle hit.
	SourceController
	// SourceLocation is a preset location button.
	SourceLocation
)

func (s TeleportSource) String() string {
	switch s {
	case SourcePointer:
		return "pointer"
	case SourceController:
		return "controller"
	case SourceLocation:
		return "location"
	default:
		return "unknown"
	}
}

// Teleport asks the rig to glide to Target.
type Teleport struct {
	// Target is the floor-resolved destination.
	Target mgl32.Vec3

	// Source is the input channel that produced the request.
	Source TeleportSource

	// Label is the location label for SourceLocation teleports, empty otherwise.
	Label string
}

// Look rotates the view by the given deltas in radians.
type Look struct {
	DeltaYaw   float32
	DeltaPitch float32
}

// Walk replaces the set of held walk directions. A zero mask stops walking.
type Walk struct {
	Directions Direction
}

func (Teleport) isIntent() {}
func (Look) isIntent()     {}
func (Walk) isIntent()     {}
