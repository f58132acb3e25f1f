// Package loader imports world geometry from glTF/GLB assets as collision surfaces.
// Only geometry is read: the render step owns materials, textures and animation.
package loader

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-nav/engine/collision"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ImportedWorld is the collision geometry recovered from one asset.
type ImportedWorld struct {
	// Name is the scene name, or the source path when the scene is unnamed.
	Name string

	// Surfaces holds one world-space surface per mesh-bearing node.
	Surfaces []collision.Surface
}

// TriangleCount returns the number of triangles across all surfaces.
func (w *ImportedWorld) TriangleCount() int {
	n := 0
	for _, s := range w.Surfaces {
		n += len(s.Triangles)
	}
	return n
}

type loader struct {
	mu sync.RWMutex

	cache map[string]*ImportedWorld

	backend loaderBackend
	prefix  string
	workers int

	poolOnce sync.Once
	pool     worker.DynamicWorkerPool
	taskID   atomic.Int64

	log *zap.Logger
}

// Loader loads and caches collision geometry.
type Loader interface {
	// Load imports a .gltf or .glb file and caches the result by path.
	//
	// Parameters:
	//   - path: the asset path
	//
	// Returns:
	//   - *ImportedWorld: the imported geometry
	//   - error: if the format is unsupported or the asset is malformed
	Load(path string) (*ImportedWorld, error)

	// LoadReader imports from a stream and caches the result under name.
	//
	// Parameters:
	//   - name: the cache key
	//   - r: the reader providing the asset
	//   - isGLB: true for GLB binary data
	//
	// Returns:
	//   - *ImportedWorld: the imported geometry
	//   - error: if the asset is malformed
	LoadReader(name string, r io.Reader, isGLB bool) (*ImportedWorld, error)

	// LoadFiles imports several assets in parallel and returns their surfaces in path order.
	// The first failure cancels the remaining imports.
	//
	// Parameters:
	//   - ctx: cancels imports that have not started yet
	//   - paths: asset paths
	//
	// Returns:
	//   - []collision.Surface: all surfaces
	//   - error: the first import failure
	LoadFiles(ctx context.Context, paths []string) ([]collision.Surface, error)

	// LoadAsync imports paths on the loader's worker pool and publishes the surfaces into set.
	// On failure the set is left as it was and the error is logged. done, if non-nil, is called
	// from the worker goroutine once the import has finished.
	//
	// Parameters:
	//   - ctx: cancels imports that have not started yet
	//   - paths: asset paths
	//   - set: the surface set to publish into
	//   - done: optional completion callback
	LoadAsync(ctx context.Context, paths []string, set *collision.Set, done func(error))

	// Get returns a cached import, or nil.
	Get(name string) *ImportedWorld
}

var _ Loader = &loader{}

// NewLoader creates a glTF Loader.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Loader: the loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		cache:   make(map[string]*ImportedWorld),
		workers: 2,
		log:     zap.NewNop(),
	}
	for _, option := range options {
		option(l)
	}
	l.backend = newGLTFLoaderBackend(l.prefix)
	return l
}

func (l *loader) Load(path string) (*ImportedWorld, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	if err := checkFormat(path); err != nil {
		return nil, err
	}

	world, err := l.backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if world.Name == "" {
		world.Name = path
	}

	l.mu.Lock()
	l.cache[path] = world
	l.mu.Unlock()

	l.log.Debug("collision asset imported",
		zap.String("path", path),
		zap.Int("surfaces", len(world.Surfaces)),
		zap.Int("triangles", world.TriangleCount()),
	)
	return world, nil
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) (*ImportedWorld, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}

	world, err := l.backend.LoadReader(r, isGLB)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	l.mu.Lock()
	l.cache[name] = world
	l.mu.Unlock()
	return world, nil
}

func (l *loader) LoadFiles(ctx context.Context, paths []string) ([]collision.Surface, error) {
	results := make([][]collision.Surface, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			world, err := l.Load(path)
			if err != nil {
				return err
			}
			results[i] = world.Surfaces
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []collision.Surface
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

func (l *loader) LoadAsync(ctx context.Context, paths []string, set *collision.Set, done func(error)) {
	l.poolOnce.Do(func() {
		l.pool = worker.NewDynamicWorkerPool(l.workers, 16, 1*time.Second)
	})

	l.pool.SubmitTask(worker.Task{
		ID: int(l.taskID.Add(1)),
		Do: func() (any, error) {
			start := time.Now()
			surfaces, err := l.LoadFiles(ctx, paths)
			if err != nil {
				l.log.Error("collision load failed; navigating without floor correction",
					zap.Strings("paths", paths),
					zap.Error(err),
				)
			} else {
				set.Publish(surfaces)
				l.log.Info("collision surfaces ready",
					zap.Int("surfaces", len(surfaces)),
					zap.Int("triangles", set.TriangleCount()),
					zap.Duration("took", time.Since(start)),
				)
			}
			if done != nil {
				done(err)
			}
			return nil, err
		},
	})
}

func (l *loader) Get(name string) *ImportedWorld {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cache[name]
}

// checkFormat rejects extensions no backend understands.
func checkFormat(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf", ".glb":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
