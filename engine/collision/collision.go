// Package collision holds the static world geometry used for navigation queries and the single
// ray-cast primitive shared by floor probing, click picking and controller aiming.
package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// castEpsilon rejects near-parallel triangles and self-hits at the ray origin.
const castEpsilon = 1e-7

// Triangle is a single world-space collision triangle.
type Triangle struct {
	A, B, C mgl32.Vec3
}

// Surface is a named group of world-space triangles with a precomputed axis-aligned bounding box.
// Surfaces are immutable once built.
type Surface struct {
	// Name identifies the mesh the triangles were imported from.
	Name string

	// Triangles are the world-space triangles of this surface.
	Triangles []Triangle

	// Min and Max are the bounding box corners of all triangles.
	Min, Max mgl32.Vec3
}

// NewSurface creates a Surface and computes its bounding box from the given triangles.
//
// Parameters:
//   - name: identifier of the surface, usually the source mesh name
//   - triangles: world-space triangles (the slice is retained, not copied)
//
// Returns:
//   - Surface: the surface with bounds populated
func NewSurface(name string, triangles []Triangle) Surface {
	s := Surface{Name: name, Triangles: triangles}
	if len(triangles) == 0 {
		return s
	}
	s.Min = triangles[0].A
	s.Max = triangles[0].A
	for _, t := range triangles {
		for _, v := range [3]mgl32.Vec3{t.A, t.B, t.C} {
			for i := range 3 {
				s.Min[i] = min(s.Min[i], v[i])
				s.Max[i] = max(s.Max[i], v[i])
			}
		}
	}
	return s
}

// Ray is a half-line starting at Origin heading along Direction.
// Direction is expected to be unit length so that Hit.Distance is in world units.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at parameter t along the ray.
//
// Parameters:
//   - t: distance along the ray direction
//
// Returns:
//   - mgl32.Vec3: Origin + Direction*t
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Down returns a ray pointing straight down (-Y) from the given origin.
func Down(origin mgl32.Vec3) Ray {
	return Ray{Origin: origin, Direction: mgl32.Vec3{0, -1, 0}}
}

// Hit describes the nearest intersection of a ray with a surface set.
type Hit struct {
	// Point is the world-space intersection point.
	Point mgl32.Vec3

	// Distance is the ray parameter of the intersection.
	Distance float32

	// Normal is the unit geometric normal of the triangle that was hit.
	Normal mgl32.Vec3

	// Surface is the name of the surface that was hit.
	Surface string
}

// Cast intersects a ray against every surface and returns the nearest hit.
// An empty or nil surface slice never hits. A zero-length direction never hits.
//
// Parameters:
//   - ray: the ray to cast
//   - surfaces: the surfaces to test
//
// Returns:
//   - Hit: the nearest intersection (zero value when there is none)
//   - bool: true if anything was hit
func Cast(ray Ray, surfaces []Surface) (Hit, bool) {
	if len(surfaces) == 0 || ray.Direction.LenSqr() == 0 {
		return Hit{}, false
	}

	var best Hit
	closest := float32(math.MaxFloat32)
	found := false

	for i := range surfaces {
		s := &surfaces[i]
		enter, ok := intersectBounds(ray, s.Min, s.Max)
		if !ok || enter > closest {
			continue
		}
		for _, tri := range s.Triangles {
			t, ok := intersectTriangle(ray, tri)
			if !ok || t >= closest {
				continue
			}
			closest = t
			best = Hit{
				Point:    ray.At(t),
				Distance: t,
				Normal:   triangleNormal(tri),
				Surface:  s.Name,
			}
			found = true
		}
	}

	return best, found
}

// intersectTriangle runs the Möller-Trumbore test and returns the ray parameter of the hit.
func intersectTriangle(ray Ray, tri Triangle) (float32, bool) {
	edge1 := tri.B.Sub(tri.A)
	edge2 := tri.C.Sub(tri.A)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -castEpsilon && a < castEpsilon {
		return 0, false
	}

	f := 1 / a
	s := ray.Origin.Sub(tri.A)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	if t <= castEpsilon {
		return 0, false
	}
	return t, true
}

// intersectBounds runs the slab test against an axis-aligned box and returns the entry distance
// (clamped to zero when the origin is inside the box).
// Axes where the ray is parallel are handled explicitly so a ray lying exactly on a slab
// boundary never produces NaN.
func intersectBounds(ray Ray, bmin, bmax mgl32.Vec3) (float32, bool) {
	tmin := float32(0)
	tmax := float32(math.MaxFloat32)

	for i := range 3 {
		o := ray.Origin[i]
		d := ray.Direction[i]
		if d > -castEpsilon && d < castEpsilon {
			if o < bmin[i] || o > bmax[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (bmin[i] - o) * inv
		t2 := (bmax[i] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

func triangleNormal(tri Triangle) mgl32.Vec3 {
	n := tri.B.Sub(tri.A).Cross(tri.C.Sub(tri.A))
	if n.LenSqr() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}
