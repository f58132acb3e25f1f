package viewer

import (
	"github.com/Carmen-Shannon/oxy-nav/engine/collision"
	"github.com/Carmen-Shannon/oxy-nav/engine/config"
	"github.com/Carmen-Shannon/oxy-nav/engine/session"
	"go.uber.org/zap"
)

// ViewerBuilderOption is a functional option for configuring a Viewer.
// Use the With* functions to create options.
type ViewerBuilderOption func(*viewerImpl)

// WithConfig sets the configuration the viewer's components are built from.
// Without it the built-in defaults are used.
//
// Parameters:
//   - cfg: a validated configuration
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithConfig(cfg *config.Config) ViewerBuilderOption {
	return func(v *viewerImpl) {
		if cfg != nil {
			v.cfg = cfg
		}
	}
}

// WithSession sets the session queried for immersive status and controller poses.
//
// Parameters:
//   - sess: the session
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithSession(sess session.Session) ViewerBuilderOption {
	return func(v *viewerImpl) {
		if sess != nil {
			v.session = sess
		}
	}
}

// WithSurfaces sets the collision set the viewer navigates on.
// The loader publishes into it once the world is imported.
//
// Parameters:
//   - set: the surface set
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithSurfaces(set *collision.Set) ViewerBuilderOption {
	return func(v *viewerImpl) {
		if set != nil {
			v.set = set
		}
	}
}

// WithLogger sets the logger shared by the viewer and its components.
//
// Parameters:
//   - log: the zap logger
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithLogger(log *zap.Logger) ViewerBuilderOption {
	return func(v *viewerImpl) {
		if log != nil {
			v.log = log
		}
	}
}
