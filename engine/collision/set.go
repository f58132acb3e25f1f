package collision

import (
	"sync/atomic"
)

// Set is the collection of surfaces eligible for navigation ray queries.
// It starts empty and is populated once the world asset finishes loading, possibly from another
// goroutine. Readers always see either the empty set or a complete published slice.
type Set struct {
	surfaces atomic.Pointer[[]Surface]
}

// NewSet creates a Set, optionally pre-populated with surfaces.
//
// Parameters:
//   - surfaces: initial surfaces (may be empty)
//
// Returns:
//   - *Set: the new set
func NewSet(surfaces ...Surface) *Set {
	s := &Set{}
	if len(surfaces) > 0 {
		s.Publish(surfaces)
	}
	return s
}

// Publish replaces the set's surfaces. The slice is copied so later mutation by the caller
// does not leak into running queries.
//
// Parameters:
//   - surfaces: the surfaces to publish
func (s *Set) Publish(surfaces []Surface) {
	cp := make([]Surface, len(surfaces))
	copy(cp, surfaces)
	s.surfaces.Store(&cp)
}

// Surfaces returns the currently published surfaces, or nil before anything was published.
// A nil Set behaves as an empty one.
func (s *Set) Surfaces() []Surface {
	if s == nil {
		return nil
	}
	p := s.surfaces.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Loaded reports whether at least one non-empty surface slice has been published.
func (s *Set) Loaded() bool {
	return len(s.Surfaces()) > 0
}

// TriangleCount returns the total number of triangles across all published surfaces.
func (s *Set) TriangleCount() int {
	n := 0
	for _, surf := range s.Surfaces() {
		n += len(surf.Triangles)
	}
	return n
}

// Cast intersects the ray with the published surfaces. See Cast.
//
// Parameters:
//   - ray: the ray to cast
//
// Returns:
//   - Hit: the nearest intersection
//   - bool: true if anything was hit; always false before the set is populated
func (s *Set) Cast(ray Ray) (Hit, bool) {
	return Cast(ray, s.Surfaces())
}
