package shape

import (
	"math"

	"github.com/aeonrender/photon/pkg/core"
)

// Sphere is an object-space sphere centered at the origin. Non-uniform
// scale transforms cannot be absorbed without turning it into an
// ellipsoid, so BakeTransform always declines.
type Sphere struct {
	Radius float64
}

// NewSphere creates a new object-space Sphere of the given radius.
func NewSphere(radius float64) *Sphere {
	return &Sphere{Radius: radius}
}

// Intersect solves the standard ray-sphere quadratic, accepting the
// smallest positive root within [tMin, tMax].
func (s *Sphere) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	oc := ray.Origin
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return 0, false
		}
	}
	return root, true
}

// SurfaceInteractionAt derives position, UV, and partial derivatives from
// the standard spherical parameterization:
// uv = (atan2(x,z)/2π + 0.5, y/2r + 0.5).
func (s *Sphere) SurfaceInteractionAt(ray core.Ray, t float64) SurfaceInteraction {
	p := ray.At(t)
	outwardNormal := p.Multiply(1.0 / s.Radius)

	phi := math.Atan2(outwardNormal.X, outwardNormal.Z)
	u := phi/(2.0*math.Pi) + 0.5
	v := outwardNormal.Y*0.5 + 0.5

	cosTheta := outwardNormal.Y
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))

	var dpdu, dpdv core.Vec3
	if sinTheta < 1e-6 {
		// Near a pole: the (u,v) parameterization is singular. Fall back
		// to an arbitrary orthonormal frame on the geometric normal.
		frame := core.NewFrame3(outwardNormal)
		dpdu, dpdv = frame.X, frame.Y
	} else {
		dpdu = core.NewVec3(p.Z, 0, -p.X).Multiply(2.0 * math.Pi)
		k := -2.0 * cosTheta / sinTheta
		dpdv = core.NewVec3(p.X*k, 2*s.Radius, p.Z*k)
	}

	shading := FaceForward(outwardNormal, ray.Direction)

	return SurfaceInteraction{
		Point:           p,
		Normal:          shading,
		GeometricNormal: shading,
		UV:              core.NewVec2(u, v),
		DpDu:            dpdu,
		DpDv:            dpdv,
		T:               t,
	}
}

// Bounds returns the sphere's axis-aligned bounding box.
func (s *Sphere) Bounds() core.Bounds3 {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewBounds3(r.Negate(), r)
}

// Area returns the sphere's surface area, 4πr².
func (s *Sphere) Area() float64 {
	return 4.0 * math.Pi * s.Radius * s.Radius
}

// UniformSample draws a uniform point on the sphere's surface.
func (s *Sphere) UniformSample(u core.Vec2) (point, normal core.Vec3, pdfArea float64) {
	normal = core.SquareToUniformSphere(u)
	point = normal.Multiply(s.Radius)
	return point, normal, 1.0 / s.Area()
}

// BakeTransform always declines: absorbing a non-uniform-scale transform
// into a sphere's radius would misrepresent it as an ellipsoid.
func (s *Sphere) BakeTransform(core.Transform) bool {
	return false
}
