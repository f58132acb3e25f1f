package locomotion

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-nav/engine/collision"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Controller owns the authoritative rig state.
// Apply and Step are expected to run on the tick goroutine; the getters may be called from anywhere.
type Controller interface {
	// Apply folds one intent into the rig state. It never moves the rig; movement happens in Step.
	//
	// Parameters:
	//   - intent: the intent to apply (nil is ignored)
	Apply(intent Intent)

	// Step advances the rig by one frame tick according to the active motion mode.
	Step()

	// State returns a copy of the current rig state.
	//
	// Returns:
	//   - RigState: the rig state
	State() RigState

	// SetPose places the rig directly, dropping any motion in progress.
	//
	// Parameters:
	//   - position: new rig position
	//   - yaw: new heading in radians
	//   - pitch: new pitch in radians (clamped, or forced to 0 when pitch is disabled)
	SetPose(position mgl32.Vec3, yaw, pitch float32)

	// EyePosition returns the viewpoint position for the current frame.
	// In an immersive session the headset supplies its own height, so no offset is added.
	//
	// Parameters:
	//   - immersive: whether an immersive session is active this frame
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	EyePosition(immersive bool) mgl32.Vec3

	// Forward returns the unit view direction for the current yaw and pitch.
	//
	// Returns:
	//   - mgl32.Vec3: the look direction
	Forward() mgl32.Vec3

	// EyeHeight returns the non-immersive viewpoint offset.
	EyeHeight() float32
}

type controllerImpl struct {
	mu sync.RWMutex

	state RigState

	seekSmoothing  float32
	floorSmoothing float32
	arriveEpsilon  float32
	walkSpeed      float32
	eyeHeight      float32
	pitchEnabled   bool
	pitchLimit     float32

	probe collision.Probe
	log   *zap.Logger
}

var _ Controller = &controllerImpl{}

// NewController creates a Controller with the given options.
// Without WithProbe the controller walks on an empty surface set and keeps its height.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Controller: the controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		seekSmoothing:  DefaultSeekSmoothing,
		floorSmoothing: DefaultFloorSmoothing,
		arriveEpsilon:  DefaultArriveEpsilon,
		walkSpeed:      DefaultWalkSpeed,
		eyeHeight:      DefaultEyeHeight,
		pitchEnabled:   true,
		pitchLimit:     DefaultPitchLimit,
		log:            zap.NewNop(),
	}
	for _, opt := range options {
		opt(c)
	}
	if c.probe == nil {
		c.probe = collision.NewProbe(nil)
	}
	c.state.Pitch = c.clampPitch(c.state.Pitch)
	return c
}

func (c *controllerImpl) Apply(intent Intent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch in := intent.(type) {
	case Teleport:
		c.state.Target = in.Target
		c.state.Walking = 0
		c.setMode(ModeSeeking)
		c.log.Debug("teleport",
			zap.Stringer("source", in.Source),
			zap.String("label", in.Label),
			zap.Float32s("target", in.Target[:]),
		)

	case Look:
		c.state.Yaw += in.DeltaYaw
		c.state.Pitch = c.clampPitch(c.state.Pitch + in.DeltaPitch)
		if c.state.Mode == ModeSeeking {
			c.state.Target = c.state.Position
			c.setMode(ModeIdle)
		}

	case Walk:
		c.state.Walking = in.Directions
		if in.Directions != 0 {
			c.state.Target = c.state.Position
			c.setMode(ModeWalking)
		} else if c.state.Mode == ModeWalking {
			c.setMode(ModeIdle)
		}
	}
}

func (c *controllerImpl) Step() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.Mode {
	case ModeSeeking:
		remaining := c.state.Target.Sub(c.state.Position)
		c.state.Position = c.state.Position.Add(remaining.Mul(c.seekSmoothing))
		if c.state.Target.Sub(c.state.Position).Len() < c.arriveEpsilon {
			c.setMode(ModeIdle)
		}

	case ModeWalking:
		step := WalkVector(c.state.Walking, c.state.Yaw).Mul(c.walkSpeed)
		pos := c.state.Position.Add(step)
		floor := c.probe.ResolveFloorHeight(pos.X(), pos.Z(), pos.Y())
		pos[1] += (floor - pos[1]) * c.floorSmoothing
		c.state.Position = pos
		c.state.Target = pos
	}
}

func (c *controllerImpl) State() RigState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *controllerImpl) SetPose(position mgl32.Vec3, yaw, pitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Position = position
	c.state.Target = position
	c.state.Yaw = yaw
	c.state.Pitch = c.clampPitch(pitch)
	c.state.Walking = 0
	c.setMode(ModeIdle)
}

func (c *controllerImpl) EyePosition(immersive bool) mgl32.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if immersive {
		return c.state.Position
	}
	return c.state.Position.Add(mgl32.Vec3{0, c.eyeHeight, 0})
}

func (c *controllerImpl) Forward() mgl32.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return LookDirection(c.state.Yaw, c.state.Pitch)
}

func (c *controllerImpl) EyeHeight() float32 {
	return c.eyeHeight
}

// setMode must be called with mu held.
func (c *controllerImpl) setMode(m Mode) {
	if c.state.Mode == m {
		return
	}
	c.log.Debug("motion mode",
		zap.Stringer("from", c.state.Mode),
		zap.Stringer("to", m),
		zap.Float32s("position", c.state.Position[:]),
	)
	c.state.Mode = m
}

func (c *controllerImpl) clampPitch(p float32) float32 {
	if !c.pitchEnabled {
		return 0
	}
	return mgl32.Clamp(p, -c.pitchLimit, c.pitchLimit)
}
