package session

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDesktopNeverImmersive(t *testing.T) {
	var s Session = Desktop{}
	assert.False(t, s.Immersive())
	_, ok := s.ActiveController()
	assert.False(t, ok)
}

func TestManualLifecycle(t *testing.T) {
	m := NewManual()
	assert.False(t, m.Immersive())

	pose := ControllerPose{Origin: mgl32.Vec3{0.2, 1.2, -0.1}, Direction: mgl32.Vec3{0, -1, -1}}
	m.SetController(pose)
	_, ok := m.ActiveController()
	assert.False(t, ok, "no controller outside immersive session")

	m.SetImmersive(true)
	m.SetController(pose)
	got, ok := m.ActiveController()
	assert.True(t, ok)
	assert.Equal(t, pose, got)

	m.ClearController()
	_, ok = m.ActiveController()
	assert.False(t, ok)

	m.SetController(pose)
	m.SetImmersive(false)
	m.SetImmersive(true)
	_, ok = m.ActiveController()
	assert.False(t, ok, "ending the session drops the controller")
}

func TestControllerPoseWorld(t *testing.T) {
	pose := ControllerPose{Origin: mgl32.Vec3{0, 1, 0}, Direction: mgl32.Vec3{0, 0, -1}}

	ray := pose.World(mgl32.Vec3{5, 0, 5}, 0)
	assert.Equal(t, mgl32.Vec3{5, 1, 5}, ray.Origin)
	assert.InDelta(t, -1, ray.Direction.Z(), 1e-6)

	ray = pose.World(mgl32.Vec3{}, math.Pi/2)
	assert.InDelta(t, -1, ray.Direction.X(), 1e-6, "yaw turns the controller with the rig")
	assert.InDelta(t, 0, ray.Direction.Z(), 1e-6)
}
