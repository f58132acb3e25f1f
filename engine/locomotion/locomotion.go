// Package locomotion owns the viewer rig: where the viewpoint stands, where it is heading and
// which single motion mode is driving it. All rig mutation happens through Controller.Apply
// (intents) and Controller.Step (one call per frame tick).
package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mode is the rig's current motion mode. Exactly one mode is active at a time.
type Mode int

const (
	// ModeIdle means the rig is stationary.
	ModeIdle Mode = iota
	// ModeSeeking means the rig is gliding toward RigState.Target.
	ModeSeeking
	// ModeWalking means held direction keys are moving the rig every frame.
	ModeWalking
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeSeeking:
		return "seeking"
	case ModeWalking:
		return "walking"
	default:
		return "unknown"
	}
}

// Direction is a bitmask of held walk directions.
type Direction uint8

// Walk directions relative to the rig's heading. Opposing bits cancel out.
const (
	DirForward Direction = 1 << iota // along the heading
	DirBack                          // against the heading
	DirLeft                          // strafe left
	DirRight                         // strafe right
)

// Has reports whether all bits of d2 are set in d.
func (d Direction) Has(d2 Direction) bool {
	return d&d2 == d2
}

// RigState is a snapshot of the rig.
type RigState struct {
	// Position is where the rig stands (floor level, no eye offset).
	Position mgl32.Vec3

	// Target is the destination of a Seeking glide. Only meaningful while Mode == ModeSeeking.
	Target mgl32.Vec3

	// Yaw is the heading in radians around +Y. Yaw 0 faces -Z.
	Yaw float32

	// Pitch is the vertical look angle in radians; always 0 when pitch look is disabled.
	Pitch float32

	// Mode is the active motion mode.
	Mode Mode

	// Walking holds the currently requested walk directions.
	Walking Direction
}

// NamedLocation is a preset destination backing a navigation button.
type NamedLocation struct {
	// Label is the unique display name and lookup key.
	Label string

	// Position is the rig position to teleport to.
	Position mgl32.Vec3
}

// HeadingBasis returns the horizontal forward and right unit vectors for a yaw angle.
//
// Parameters:
//   - yaw: heading in radians
//
// Returns:
//   - forward: unit vector the rig faces at this yaw, in the XZ plane
//   - right: unit vector to the rig's right, in the XZ plane
func HeadingBasis(yaw float32) (forward, right mgl32.Vec3) {
	s := float32(math.Sin(float64(yaw)))
	c := float32(math.Cos(float64(yaw)))
	forward = mgl32.Vec3{-s, 0, -c}
	right = mgl32.Vec3{c, 0, -s}
	return forward, right
}

// LookDirection returns the unit view direction for a yaw/pitch pair.
//
// Parameters:
//   - yaw: heading in radians
//   - pitch: elevation in radians (positive looks up)
//
// Returns:
//   - mgl32.Vec3: unit look direction
func LookDirection(yaw, pitch float32) mgl32.Vec3 {
	sy := float32(math.Sin(float64(yaw)))
	cy := float32(math.Cos(float64(yaw)))
	sp := float32(math.Sin(float64(pitch)))
	cp := float32(math.Cos(float64(pitch)))
	return mgl32.Vec3{-sy * cp, sp, -cy * cp}
}

// WalkVector returns the unit horizontal direction for a set of held directions at the given yaw,
// or the zero vector when nothing is held or opposing keys cancel out.
//
// Parameters:
//   - dirs: held walk directions
//   - yaw: heading in radians
//
// Returns:
//   - mgl32.Vec3: normalised walk direction or zero
func WalkVector(dirs Direction, yaw float32) mgl32.Vec3 {
	forward, right := HeadingBasis(yaw)
	var sum mgl32.Vec3
	if dirs.Has(DirForward) {
		sum = sum.Add(forward)
	}
	if dirs.Has(DirBack) {
		sum = sum.Sub(forward)
	}
	if dirs.Has(DirRight) {
		sum = sum.Add(right)
	}
	if dirs.Has(DirLeft) {
		sum = sum.Sub(right)
	}
	if sum.LenSqr() < 1e-12 {
		return mgl32.Vec3{}
	}
	return sum.Normalize()
}
