// Package session reports whether an immersive (headset) session is active and, if so, where the
// active hand controller is pointing. The render host owns the real session; the navigation core
// only queries it once per tick.
package session

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-nav/engine/collision"
	"github.com/go-gl/mathgl/mgl32"
)

// ControllerPose is a hand controller's aim ray in rig-local space.
// The rig's position and yaw are applied by World to obtain the world-space ray.
type ControllerPose struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// World transforms the pose from rig-local space into a world-space ray.
//
// Parameters:
//   - rigPosition: the rig's world position
//   - rigYaw: the rig's heading in radians
//
// Returns:
//   - collision.Ray: the aim ray in world space
func (p ControllerPose) World(rigPosition mgl32.Vec3, rigYaw float32) collision.Ray {
	rot := mgl32.Rotate3DY(rigYaw)
	return collision.Ray{
		Origin:    rigPosition.Add(rot.Mul3x1(p.Origin)),
		Direction: rot.Mul3x1(p.Direction),
	}
}

// Session is queried every tick.
type Session interface {
	// Immersive reports whether a headset session is currently presenting.
	Immersive() bool

	// ActiveController returns the pose of the controller that drives the reticle.
	// ok is false outside immersive sessions or when no controller is tracked.
	ActiveController() (pose ControllerPose, ok bool)
}

// Desktop is a Session that is never immersive.
type Desktop struct{}

var _ Session = Desktop{}

func (Desktop) Immersive() bool { return false }

func (Desktop) ActiveController() (ControllerPose, bool) { return ControllerPose{}, false }

// Manual is a Session whose state is pushed by the host, typically from headset connect and
// disconnect callbacks. It is safe for concurrent use.
type Manual struct {
	mu         sync.RWMutex
	immersive  bool
	controller *ControllerPose
}

var _ Session = &Manual{}

// NewManual creates a non-immersive Manual session.
func NewManual() *Manual {
	return &Manual{}
}

// SetImmersive starts or ends the immersive session. Ending it also drops the tracked controller.
func (m *Manual) SetImmersive(immersive bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.immersive = immersive
	if !immersive {
		m.controller = nil
	}
}

// SetController updates the active controller pose.
func (m *Manual) SetController(pose ControllerPose) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.controller = &pose
}

// ClearController marks the controller as untracked.
func (m *Manual) ClearController() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.controller = nil
}

func (m *Manual) Immersive() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.immersive
}

func (m *Manual) ActiveController() (ControllerPose, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.immersive || m.controller == nil {
		return ControllerPose{}, false
	}
	return *m.controller, true
}
