package input

import (
	"github.com/Carmen-Shannon/oxy-nav/engine/collision"
	"github.com/Carmen-Shannon/oxy-nav/engine/locomotion"
	"github.com/Carmen-Shannon/oxy-nav/engine/session"
	"go.uber.org/zap"
)

const (
	// DefaultTapThreshold is the pointer travel in pixels beyond which a press becomes a drag.
	DefaultTapThreshold    float32 = 10
	// DefaultLookSensitivity is the yaw and pitch change in radians per pixel of drag.
	DefaultLookSensitivity float32 = 0.005
)

// ResolverBuilderOption is a functional option for configuring a Resolver.
// Use the With* functions to create options.
type ResolverBuilderOption func(*resolverImpl)

// WithPicker sets the source of screen pick rays, usually the camera.
//
// Parameters:
//   - picker: the picker
//
// Returns:
//   - ResolverBuilderOption: option function to apply
func WithPicker(picker Picker) ResolverBuilderOption {
	return func(r *resolverImpl) {
		r.picker = picker
	}
}

// WithSurfaces sets the collision surfaces tapped pick rays are cast against.
//
// Parameters:
//   - set: the surface set
//
// Returns:
//   - ResolverBuilderOption: option function to apply
func WithSurfaces(set *collision.Set) ResolverBuilderOption {
	return func(r *resolverImpl) {
		r.set = set
	}
}

// WithProbe sets the floor probe applied to pick hits.
//
// Parameters:
//   - probe: the spatial probe
//
// Returns:
//   - ResolverBuilderOption: option function to apply
func WithProbe(probe collision.Probe) ResolverBuilderOption {
	return func(r *resolverImpl) {
		r.probe = probe
	}
}

// WithSession sets the session queried for immersive status.
//
// Parameters:
//   - sess: the session
//
// Returns:
//   - ResolverBuilderOption: option function to apply
func WithSession(sess session.Session) ResolverBuilderOption {
	return func(r *resolverImpl) {
		if sess != nil {
			r.session = sess
		}
	}
}

// WithReticle sets the source of the controller reticle honoured by SelectEnd.
//
// Parameters:
//   - reticle: the reticle source, usually the presenter
//
// Returns:
//   - ResolverBuilderOption: option function to apply
func WithReticle(reticle ReticleSource) ResolverBuilderOption {
	return func(r *resolverImpl) {
		r.reticle = reticle
	}
}

// WithLocations sets the preset locations. Labels are expected to be unique; on duplicates the first wins.
//
// Parameters:
//   - locations: the preset locations in display order
//
// Returns:
//   - ResolverBuilderOption: option function to apply
func WithLocations(locations ...locomotion.NamedLocation) ResolverBuilderOption {
	return func(r *resolverImpl) {
		r.locations = append([]locomotion.NamedLocation(nil), locations...)
		r.byLabel = make(map[string]int, len(locations))
		for i, loc := range r.locations {
			if _, dup := r.byLabel[loc.Label]; !dup {
				r.byLabel[loc.Label] = i
			}
		}
	}
}

// WithTapThreshold sets the press-to-release distance in pixels below which a press is a tap.
//
// Parameters:
//   - pixels: threshold in screen pixels
//
// Returns:
//   - ResolverBuilderOption: option function to apply
func WithTapThreshold(pixels float32) ResolverBuilderOption {
	return func(r *resolverImpl) {
		if pixels > 0 {
			r.tapThreshold = pixels
		}
	}
}

// WithLookSensitivity sets the look rotation in radians per dragged pixel.
//
// Parameters:
//   - radPerPixel: sensitivity
//
// Returns:
//   - ResolverBuilderOption: option function to apply
func WithLookSensitivity(radPerPixel float32) ResolverBuilderOption {
	return func(r *resolverImpl) {
		if radPerPixel > 0 {
			r.lookSensitivity = radPerPixel
		}
	}
}

// WithLogger sets the resolver's logger.
//
// Parameters:
//   - log: the zap logger
//
// Returns:
//   - ResolverBuilderOption: option function to apply
func WithLogger(log *zap.Logger) ResolverBuilderOption {
	return func(r *resolverImpl) {
		if log != nil {
			r.log = log
		}
	}
}
