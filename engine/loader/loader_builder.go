package loader

import (
	"errors"

	"go.uber.org/zap"
)

// ErrUnsupportedFormat is returned for assets that are neither glTF nor GLB.
var ErrUnsupportedFormat = errors.New("unsupported collision asset format")

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithMeshPrefix keeps only meshes whose mesh or node name starts with prefix.
//
// Parameters:
//   - prefix: the name prefix, e.g. "COL_"
//
// Returns:
//   - LoaderBuilderOption: a function that applies the filter to a loader
func WithMeshPrefix(prefix string) LoaderBuilderOption {
	return func(l *loader) {
		l.prefix = prefix
	}
}

// WithWorkers sets how many assets are imported concurrently.
//
// Parameters:
//   - n: worker count, values < 1 are ignored
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithWorld pre-populates the cache, so Load(key) returns world without reading anything.
//
// Parameters:
//   - key: the cache key (usually a path)
//   - world: the geometry to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the cache entry to a loader
func WithWorld(key string, world *ImportedWorld) LoaderBuilderOption {
	return func(l *loader) {
		l.cache[key] = world
	}
}

// WithLogger sets the loader's logger.
//
// Parameters:
//   - log: the zap logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger to a loader
func WithLogger(log *zap.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if log != nil {
			l.log = log
		}
	}
}
