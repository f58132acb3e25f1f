package locomotion

import (
	"math"

	"github.com/Carmen-Shannon/oxy-nav/engine/collision"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Defaults applied by NewController when the matching With* option is not given.
const (
	DefaultSeekSmoothing  float32 = 0.1
	DefaultFloorSmoothing float32 = 0.2
	DefaultArriveEpsilon  float32 = 0.05
	DefaultWalkSpeed      float32 = 0.1
	DefaultEyeHeight      float32 = 1.6
	DefaultPitchLimit     float32 = math.Pi/2 - 0.1
)

// ControllerBuilderOption is a functional option for configuring a Controller.
// Use the With* functions to create options.
type ControllerBuilderOption func(*controllerImpl)

// WithSeekSmoothing sets the fraction of the remaining distance covered each tick while Seeking.
// Values outside (0, 1] are ignored.
//
// Parameters:
//   - factor: smoothing factor in (0, 1]
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithSeekSmoothing(factor float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if factor > 0 && factor <= 1 {
			c.seekSmoothing = factor
		}
	}
}

// WithFloorSmoothing sets the fraction of the vertical gap to the probed floor closed each walking tick.
// Values outside (0, 1] are ignored.
//
// Parameters:
//   - factor: smoothing factor in (0, 1]
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithFloorSmoothing(factor float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if factor > 0 && factor <= 1 {
			c.floorSmoothing = factor
		}
	}
}

// WithArriveEpsilon sets the remaining distance below which a seek is considered complete.
//
// Parameters:
//   - epsilon: arrival distance in world units
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithArriveEpsilon(epsilon float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if epsilon > 0 {
			c.arriveEpsilon = epsilon
		}
	}
}

// WithWalkSpeed sets the walk displacement per tick.
//
// Parameters:
//   - speed: world units per tick
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithWalkSpeed(speed float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if speed > 0 {
			c.walkSpeed = speed
		}
	}
}

// WithEyeHeight sets the viewpoint offset above the rig used outside immersive sessions.
//
// Parameters:
//   - height: eye height in world units
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithEyeHeight(height float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if height >= 0 {
			c.eyeHeight = height
		}
	}
}

// WithPitch enables or disables vertical look and sets its clamp.
// A non-positive limit keeps the current one.
//
// Parameters:
//   - enabled: whether Look intents may change pitch
//   - limit: maximum absolute pitch in radians
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithPitch(enabled bool, limit float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.pitchEnabled = enabled
		if limit > 0 {
			c.pitchLimit = limit
		}
	}
}

// WithStart places the rig before the first tick.
//
// Parameters:
//   - position: initial rig position
//   - yaw: initial heading in radians
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithStart(position mgl32.Vec3, yaw float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.state.Position = position
		c.state.Target = position
		c.state.Yaw = yaw
	}
}

// WithProbe sets the floor probe used by the walking branch.
//
// Parameters:
//   - probe: the spatial probe
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithProbe(probe collision.Probe) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if probe != nil {
			c.probe = probe
		}
	}
}

// WithLogger sets the logger used for mode transitions.
//
// Parameters:
//   - log: the zap logger
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithLogger(log *zap.Logger) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if log != nil {
			c.log = log
		}
	}
}
