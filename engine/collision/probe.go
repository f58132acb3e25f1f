package collision

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultProbeSlack is how far above the fallback height the downward probe ray starts.
// It must clear any floor step or low ceiling expected between two frames.
const DefaultProbeSlack float32 = 2.0

// ProbeOption is a functional option for configuring a Probe.
type ProbeOption func(*probe)

// WithSlack sets the vertical slack added above the fallback height before probing downward.
// Values <= 0 are ignored.
//
// Parameters:
//   - slack: vertical offset in world units
//
// Returns:
//   - ProbeOption: option function to apply
func WithSlack(slack float32) ProbeOption {
	return func(p *probe) {
		if slack > 0 {
			p.slack = slack
		}
	}
}

// Probe resolves the floor height under a horizontal position.
type Probe interface {
	// ResolveFloorHeight casts a single ray straight down from (x, fallback+slack, z) and returns
	// the height of the nearest hit. When nothing is hit, or the surfaces are not loaded yet,
	// fallback is returned unchanged.
	//
	// Parameters:
	//   - x, z: horizontal world position
	//   - fallback: current height, returned when there is no floor below
	//
	// Returns:
	//   - float32: the resolved floor height
	ResolveFloorHeight(x, z, fallback float32) float32

	// Slack returns the vertical slack used when placing the probe origin.
	Slack() float32
}

type probe struct {
	set   *Set
	slack float32
}

var _ Probe = &probe{}

// NewProbe creates a Probe that queries the given surface set.
//
// Parameters:
//   - set: the surfaces to probe (nil behaves as an empty set)
//   - options: functional options
//
// Returns:
//   - Probe: the probe
func NewProbe(set *Set, options ...ProbeOption) Probe {
	p := &probe{
		set:   set,
		slack: DefaultProbeSlack,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *probe) ResolveFloorHeight(x, z, fallback float32) float32 {
	hit, ok := p.set.Cast(Down(mgl32.Vec3{x, fallback + p.slack, z}))
	if !ok {
		return fallback
	}
	return hit.Point.Y()
}

func (p *probe) Slack() float32 {
	return p.slack
}
