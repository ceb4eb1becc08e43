// Package shape implements the closed Sphere/Triangle shape taxonomy: ray
// intersection, surface-interaction synthesis, area, and uniform surface
// sampling, all in object space.
package shape

import "github.com/aeonrender/photon/pkg/core"

// SurfaceInteraction holds everything derived at a ray-shape hit: position,
// shading data, and the partial derivatives a shading frame is built from.
type SurfaceInteraction struct {
	Point           core.Vec3
	Normal          core.Vec3 // shading normal, face-forwarded against the ray
	GeometricNormal core.Vec3 // geometric (flat) normal, face-forwarded
	UV              core.Vec2
	DpDu, DpDv      core.Vec3
	T               float64
}

// FaceForward flips n to lie in the same hemisphere as the ray direction's
// negation, i.e. opposing the incoming ray.
func FaceForward(n, rayDir core.Vec3) core.Vec3 {
	if n.Dot(rayDir) > 0 {
		return n.Negate()
	}
	return n
}

// Shape is the closed variant of intersectable object-space geometry: a
// Sphere or a Triangle. Rather than an open subtyping hierarchy, Shape
// has exactly two implementations and nothing in this repo treats it as
// an extension point.
type Shape interface {
	// Intersect returns the ray parameter t of the closest intersection
	// within [tMin, tMax], or ok=false on a miss.
	Intersect(ray core.Ray, tMin, tMax float64) (t float64, ok bool)
	// SurfaceInteractionAt synthesizes full shading data at a hit found by
	// Intersect. Callers must pass a (ray, t) pair Intersect itself
	// produced; implementations do not re-validate tMin/tMax.
	SurfaceInteractionAt(ray core.Ray, t float64) SurfaceInteraction
	// Bounds returns the object-space axis-aligned bounds, padded to avoid
	// zero-volume results for axis-aligned planar shapes.
	Bounds() core.Bounds3
	// Area returns the object-space surface area.
	Area() float64
	// UniformSample draws a uniform point on the surface from u ∈ [0,1)²,
	// returning the point, its outward normal, and the area-measure PDF
	// (1/Area, constant over the surface).
	UniformSample(u core.Vec2) (point, normal core.Vec3, pdfArea float64)
	// BakeTransform attempts to absorb a world transform into the shape's
	// own object-space data, returning whether it succeeded. Triangles
	// always succeed (their vertices are just re-expressed); spheres defer
	// (report false) since a non-uniform scale would turn them into
	// ellipsoids, which the Sphere shape cannot represent.
	BakeTransform(t core.Transform) bool
}
