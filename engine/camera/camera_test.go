package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedViewpoint struct {
	pos, fwd mgl32.Vec3
}

func (f *fixedViewpoint) Eye() (mgl32.Vec3, mgl32.Vec3) { return f.pos, f.fwd }

func TestCameraFollowsViewpoint(t *testing.T) {
	vp := &fixedViewpoint{pos: mgl32.Vec3{0, 1.6, 0}, fwd: mgl32.Vec3{0, 0, -1}}
	c := NewCamera(WithViewpoint(vp), WithViewport(800, 600))

	assert.Equal(t, mgl32.Vec3{0, 1.6, 0}, c.Position())
	assert.InDelta(t, 800.0/600.0, c.Aspect(), 1e-6)

	vp.pos = mgl32.Vec3{3, 2, 1}
	vp.fwd = mgl32.Vec3{2, 0, 0}
	c.Update()
	assert.Equal(t, mgl32.Vec3{3, 2, 1}, c.Position())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, c.Forward(), "forward is normalized")

	// The eye maps to the view-space origin.
	eye := c.ViewMatrix().Mul4x1(vp.pos.Vec4(1))
	assert.InDelta(t, 0, eye.Vec3().Len(), 1e-5)
}

func TestUpdateWithoutViewpoint(t *testing.T) {
	c := NewCamera()
	before := c.ViewMatrix()
	c.Update()
	assert.Equal(t, before, c.ViewMatrix())
	assert.Nil(t, c.Viewpoint())
}

func TestScreenRay(t *testing.T) {
	vp := &fixedViewpoint{pos: mgl32.Vec3{0, 1.6, 0}, fwd: mgl32.Vec3{0, 0, -1}}
	c := NewCamera(WithViewpoint(vp))

	_, ok := c.ScreenRay(10, 10)
	assert.False(t, ok, "no viewport yet")

	c.SetViewport(800, 600)
	w, h := c.Viewport()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	ray, ok := c.ScreenRay(400, 300)
	require.True(t, ok)
	assert.Equal(t, vp.pos, ray.Origin)
	assert.InDelta(t, 0, ray.Direction.X(), 1e-4)
	assert.InDelta(t, 0, ray.Direction.Y(), 1e-4)
	assert.InDelta(t, -1, ray.Direction.Z(), 1e-4)

	ray, ok = c.ScreenRay(400, 590)
	require.True(t, ok)
	assert.Less(t, ray.Direction.Y(), float32(0), "lower half of the screen looks down")

	ray, ok = c.ScreenRay(10, 300)
	require.True(t, ok)
	assert.Less(t, ray.Direction.X(), float32(0), "left half of the screen looks left")
}

func TestSetViewportIgnoresEmpty(t *testing.T) {
	c := NewCamera(WithViewport(640, 480))
	c.SetViewport(0, 0)
	w, h := c.Viewport()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}
