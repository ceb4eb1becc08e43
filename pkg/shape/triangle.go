package shape

import (
	"math"

	"github.com/aeonrender/photon/pkg/core"
)

// Triangle is defined in object space by three vertex positions, with
// optional per-vertex normals and UVs.
type Triangle struct {
	P        [3]core.Vec3
	N        [3]core.Vec3 // per-vertex shading normals
	UV       [3]core.Vec2
	hasUV    bool
	geomNorm core.Vec3
	bounds   core.Bounds3
	area     float64
}

// NewTriangle creates a Triangle from three vertex positions, deriving a
// flat geometric normal shared by all three vertices and using barycentric
// coordinates directly as UVs.
func NewTriangle(p0, p1, p2 core.Vec3) *Triangle {
	return NewTriangleFull(p0, p1, p2, nil, nil)
}

// NewTriangleFull creates a Triangle with optional per-vertex normals and
// UVs. A nil normals/uvs slice falls back to the flat geometric normal /
// raw barycentric UV respectively.
func NewTriangleFull(p0, p1, p2 core.Vec3, normals []core.Vec3, uvs []core.Vec2) *Triangle {
	t := &Triangle{P: [3]core.Vec3{p0, p1, p2}}

	edge1 := p1.Subtract(p0)
	edge2 := p2.Subtract(p0)
	geomNorm := edge1.Cross(edge2)
	area := geomNorm.Length() * 0.5
	t.geomNorm = geomNorm.Normalize()
	t.area = area

	if len(normals) == 3 {
		t.N = [3]core.Vec3{normals[0], normals[1], normals[2]}
	} else {
		t.N = [3]core.Vec3{t.geomNorm, t.geomNorm, t.geomNorm}
	}

	if len(uvs) == 3 {
		t.UV = [3]core.Vec2{uvs[0], uvs[1], uvs[2]}
		t.hasUV = true
	} else {
		t.UV = [3]core.Vec2{core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0, 1)}
		t.hasUV = false
	}

	// Bounds are padded by ≈1e-5 so an axis-aligned planar triangle never
	// yields a zero-volume leaf bound.
	t.bounds = core.NewBounds3FromPoints(p0, p1, p2).Expand(1e-5)

	return t
}

// Intersect implements Möller-Trumbore, rejecting near-parallel rays
// within |a| < 1e-7.
func (t *Triangle) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	const epsilon = 1e-7

	edge1 := t.P[1].Subtract(t.P[0])
	edge2 := t.P[2].Subtract(t.P[0])

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.P[0])
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	tHit := f * edge2.Dot(q)
	if tHit < tMin || tHit > tMax {
		return 0, false
	}

	return tHit, true
}

// barycentricAt recomputes the (b0, b1, b2) barycentric weights for a hit
// point found by Intersect.
func (t *Triangle) barycentricAt(ray core.Ray, tHit float64) (b0, b1, b2 float64) {
	edge1 := t.P[1].Subtract(t.P[0])
	edge2 := t.P[2].Subtract(t.P[0])
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	f := 1.0 / a
	s := ray.Origin.Subtract(t.P[0])
	u := f * s.Dot(h)
	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	_ = tHit
	return 1 - u - v, u, v
}

// SurfaceInteractionAt interpolates vertex normals and UVs at the
// barycentric hit point, deriving ∂p/∂u and ∂p/∂v from the UV-gradient
// system, falling back to an orthonormal frame on the geometric normal
// when that system is near-singular.
func (t *Triangle) SurfaceInteractionAt(ray core.Ray, tHit float64) SurfaceInteraction {
	b0, b1, b2 := t.barycentricAt(ray, tHit)
	p := ray.At(tHit)

	shadingNormal := t.N[0].Multiply(b0).Add(t.N[1].Multiply(b1)).Add(t.N[2].Multiply(b2)).Normalize()
	uv := t.UV[0].Multiply(b0).Add(t.UV[1].Multiply(b1)).Add(t.UV[2].Multiply(b2))

	edge1 := t.P[1].Subtract(t.P[0])
	edge2 := t.P[2].Subtract(t.P[0])

	duv1 := t.UV[1].Add(t.UV[0].Multiply(-1))
	duv2 := t.UV[2].Add(t.UV[0].Multiply(-1))
	det := duv1.X*duv2.Y - duv1.Y*duv2.X

	var dpdu, dpdv core.Vec3
	if math.Abs(det) < 1e-9 {
		frame := core.NewFrame3(t.geomNorm)
		dpdu, dpdv = frame.X, frame.Y
	} else {
		invDet := 1.0 / det
		dpdu = edge1.Multiply(duv2.Y).Subtract(edge2.Multiply(duv1.Y)).Multiply(invDet)
		dpdv = edge2.Multiply(duv1.X).Subtract(edge1.Multiply(duv2.X)).Multiply(invDet)
	}

	geomNormal := FaceForward(t.geomNorm, ray.Direction)
	shadingNormal = FaceForward(shadingNormal, ray.Direction)

	return SurfaceInteraction{
		Point:           p,
		Normal:          shadingNormal,
		GeometricNormal: geomNormal,
		UV:              uv,
		DpDu:            dpdu,
		DpDv:            dpdv,
		T:               tHit,
	}
}

// Bounds returns the triangle's padded axis-aligned bounding box.
func (t *Triangle) Bounds() core.Bounds3 {
	return t.bounds
}

// Area returns the triangle's object-space surface area.
func (t *Triangle) Area() float64 {
	return t.area
}

// UniformSample draws a uniform point on the triangle via the
// square-to-barycentric warp.
func (t *Triangle) UniformSample(u core.Vec2) (point, normal core.Vec3, pdfArea float64) {
	b0, b1 := core.SquareToBarycentric(u)
	b2 := 1 - b0 - b1
	point = t.P[0].Multiply(b0).Add(t.P[1].Multiply(b1)).Add(t.P[2].Multiply(b2))
	normal = t.geomNorm
	if t.area <= 0 {
		return point, normal, 0
	}
	return point, normal, 1.0 / t.area
}

// BakeTransform absorbs a world transform into the triangle's object-space
// vertex positions and normals, always succeeding.
func (t *Triangle) BakeTransform(tr core.Transform) bool {
	for i := range t.P {
		t.P[i] = tr.Point(t.P[i])
	}
	for i := range t.N {
		t.N[i] = tr.Normal(t.N[i]).Normalize()
	}

	edge1 := t.P[1].Subtract(t.P[0])
	edge2 := t.P[2].Subtract(t.P[0])
	geomNorm := edge1.Cross(edge2)
	t.area = geomNorm.Length() * 0.5
	t.geomNorm = geomNorm.Normalize()
	t.bounds = core.NewBounds3FromPoints(t.P[0], t.P[1], t.P[2]).Expand(1e-5)

	return true
}
