// Package presenter derives per-frame visual hints from the rig: the aim reticle shown at the
// active controller's ray hit in immersive sessions, and the pulsing destination marker shown
// while the rig is seeking.
package presenter

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-nav/engine/collision"
	"github.com/Carmen-Shannon/oxy-nav/engine/locomotion"
	"github.com/Carmen-Shannon/oxy-nav/engine/session"
	"github.com/go-gl/mathgl/mgl32"
)

// Default marker pulse, used when WithPulse is not given.
const (
	DefaultPulseSpeed     float32 = 5
	DefaultPulseAmplitude float32 = 0.2
)

// Reticle is the aim indicator for the active controller.
type Reticle struct {
	Visible  bool
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Surface  string
}

// Marker is the destination indicator for a seek in progress.
type Marker struct {
	Visible  bool
	Position mgl32.Vec3
	Scale    float32
}

// Presenter is updated once per tick after the rig has stepped.
type Presenter interface {
	// Update recomputes the reticle and marker.
	//
	// Parameters:
	//   - state: the rig state after this tick's step
	//   - sess: the session, queried for immersive status and controller pose
	//   - seconds: time since start, drives the marker pulse
	Update(state locomotion.RigState, sess session.Session, seconds float32)

	// Reticle returns the reticle computed by the last Update.
	Reticle() Reticle

	// Marker returns the marker computed by the last Update.
	Marker() Marker
}

// PresenterBuilderOption is a functional option for configuring a Presenter.
// Use the With* functions to create options.
type PresenterBuilderOption func(*presenterImpl)

// WithPulse sets the marker's scale oscillation.
//
// Parameters:
//   - speed: angular speed of the oscillation in radians per second
//   - amplitude: peak deviation from scale 1
//
// Returns:
//   - PresenterBuilderOption: option function to apply
func WithPulse(speed, amplitude float32) PresenterBuilderOption {
	return func(p *presenterImpl) {
		p.pulseSpeed = speed
		p.pulseAmplitude = amplitude
	}
}

type presenterImpl struct {
	mu sync.RWMutex

	set            *collision.Set
	pulseSpeed     float32
	pulseAmplitude float32

	reticle Reticle
	marker  Marker
}

var _ Presenter = &presenterImpl{}

// NewPresenter creates a Presenter that casts reticle rays against set.
//
// Parameters:
//   - set: collision surfaces for the reticle ray
//   - options: functional options
//
// Returns:
//   - Presenter: the presenter
func NewPresenter(set *collision.Set, options ...PresenterBuilderOption) Presenter {
	p := &presenterImpl{
		set:            set,
		pulseSpeed:     DefaultPulseSpeed,
		pulseAmplitude: DefaultPulseAmplitude,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *presenterImpl) Update(state locomotion.RigState, sess session.Session, seconds float32) {
	var reticle Reticle
	if sess != nil && sess.Immersive() {
		if pose, ok := sess.ActiveController(); ok {
			if hit, ok := p.set.Cast(pose.World(state.Position, state.Yaw)); ok {
				reticle = Reticle{
					Visible:  true,
					Position: hit.Point,
					Normal:   hit.Normal,
					Surface:  hit.Surface,
				}
			}
		}
	}

	var marker Marker
	if state.Mode == locomotion.ModeSeeking {
		marker = Marker{
			Visible:  true,
			Position: state.Target,
			Scale:    1 + p.pulseAmplitude*float32(math.Sin(float64(seconds*p.pulseSpeed))),
		}
	}

	p.mu.Lock()
	p.reticle = reticle
	p.marker = marker
	p.mu.Unlock()
}

func (p *presenterImpl) Reticle() Reticle {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.reticle
}

func (p *presenterImpl) Marker() Marker {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.marker
}
