package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-nav/common"
	"github.com/Carmen-Shannon/oxy-nav/engine/collision"
	"github.com/go-gl/mathgl/mgl32"
)

// Viewpoint supplies the camera's eye each frame.
type Viewpoint interface {
	// Eye returns the world-space eye position and the unit look direction.
	Eye() (position, forward mgl32.Vec3)
}

type cameraImpl struct {
	mu *sync.Mutex

	up mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	width  int
	height int

	position mgl32.Vec3
	forward  mgl32.Vec3

	viewMatrix                  mgl32.Mat4
	projectionMatrix            mgl32.Mat4
	viewProjectionMatrix        mgl32.Mat4
	inverseViewProjectionMatrix mgl32.Mat4

	viewpoint Viewpoint
}

// Camera defines the interface for the first-person camera.
// The camera holds perspective settings and computes view/projection matrices
// from an attached Viewpoint each frame via Update().
type Camera interface {
	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// Position returns the eye position used for the current matrices.
	Position() mgl32.Vec3

	// Forward returns the look direction used for the current matrices.
	Forward() mgl32.Vec3

	// Viewport returns the viewport size in pixels.
	//
	// Returns:
	//   - width, height: viewport size, zero until SetViewport is called
	Viewport() (width, height int)

	// ViewMatrix returns the current view matrix (column-major).
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix (column-major).
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the combined view-projection matrix (column-major).
	ViewProjectionMatrix() mgl32.Mat4

	// ScreenRay builds a world-space ray from the eye through a window pixel.
	//
	// Parameters:
	//   - x, y: pixel coordinate, origin at the top-left corner
	//
	// Returns:
	//   - collision.Ray: the pick ray
	//   - bool: false if the viewport is empty or the matrices are degenerate
	ScreenRay(x, y float32) (collision.Ray, bool)

	// Viewpoint returns the attached Viewpoint, or nil.
	Viewpoint() Viewpoint

	// Update reads the eye from the viewpoint and recomputes matrices.
	// Should be called once per frame (typically in the tick callback).
	// If no viewpoint is attached, this method does nothing.
	Update()

	// SetFov sets the vertical field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// SetViewport sets the viewport size and derives the aspect ratio from it.
	// Non-positive sizes are ignored, which happens while a window is minimized.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	SetViewport(width, height int)

	// SetViewpoint attaches a Viewpoint to the camera.
	//
	// Parameters:
	//   - v: the viewpoint to attach
	SetViewpoint(v Viewpoint)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings, looking down -Z from the origin.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:      &sync.Mutex{},
		up:      mgl32.Vec3{0, 1, 0},
		fov:     common.Radians(60),
		aspect:  1.0,
		near:    0.1,
		far:     500.0,
		forward: mgl32.Vec3{0, 0, -1},
	}
	for _, option := range options {
		option(c)
	}
	c.pullViewpoint()
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forward
}

func (c *cameraImpl) Viewport() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) ScreenRay(x, y float32) (collision.Ray, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	nx, ny, ok := common.ScreenToNDC(x, y, c.width, c.height)
	if !ok {
		return collision.Ray{}, false
	}
	near, ok := unproject(c.inverseViewProjectionMatrix, nx, ny, -1)
	if !ok {
		return collision.Ray{}, false
	}
	far, ok := unproject(c.inverseViewProjectionMatrix, nx, ny, 1)
	if !ok {
		return collision.Ray{}, false
	}
	dir := far.Sub(near)
	if dir.LenSqr() == 0 {
		return collision.Ray{}, false
	}
	return collision.Ray{Origin: c.position, Direction: dir.Normalize()}, true
}

func (c *cameraImpl) Viewpoint() Viewpoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewpoint
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.viewpoint == nil {
		return
	}
	c.pullViewpoint()
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetViewport(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	c.width = width
	c.height = height
	c.aspect = float32(width) / float32(height)
	c.updateMatrices()
}

func (c *cameraImpl) SetViewpoint(v Viewpoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewpoint = v
}

// pullViewpoint copies the eye from the viewpoint. Caller must hold the mutex (or own c exclusively).
func (c *cameraImpl) pullViewpoint() {
	if c.viewpoint == nil {
		return
	}
	pos, fwd := c.viewpoint.Eye()
	c.position = pos
	if fwd.LenSqr() > 0 {
		c.forward = fwd.Normalize()
	}
}

// updateMatrices recalculates the view, projection, view-projection and inverse view-projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = mgl32.LookAtV(c.position, c.position.Add(c.forward), c.up)
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseViewProjectionMatrix = c.viewProjectionMatrix.Inv()
}

func unproject(inv mgl32.Mat4, nx, ny, nz float32) (mgl32.Vec3, bool) {
	p := inv.Mul4x1(mgl32.Vec4{nx, ny, nz, 1})
	if p.W() == 0 {
		return mgl32.Vec3{}, false
	}
	return p.Vec3().Mul(1 / p.W()), true
}
