package shape

import "github.com/aeonrender/photon/pkg/core"

// BuildQuad emits a rectangular surface, defined by one corner and two edge
// vectors, as a pair of Triangle shapes sharing a diagonal. The Shape
// taxonomy is closed to {Sphere, Triangle}, so quads — and the
// boxes/planes built from them — are scene-builder conveniences rather
// than a third Shape variant with its own Hit/bounds implementation.
func BuildQuad(corner, u, v core.Vec3) [2]*Triangle {
	p00 := corner
	p10 := corner.Add(u)
	p01 := corner.Add(v)
	p11 := corner.Add(u).Add(v)

	uv00 := core.NewVec2(0, 0)
	uv10 := core.NewVec2(1, 0)
	uv01 := core.NewVec2(0, 1)
	uv11 := core.NewVec2(1, 1)

	return [2]*Triangle{
		NewTriangleFull(p00, p10, p11, nil, []core.Vec2{uv00, uv10, uv11}),
		NewTriangleFull(p00, p11, p01, nil, []core.Vec2{uv00, uv11, uv01}),
	}
}

// BuildPlane is BuildQuad centered at a point rather than cornered at one.
func BuildPlane(center, u, v core.Vec3) [2]*Triangle {
	corner := center.Subtract(u.Multiply(0.5)).Subtract(v.Multiply(0.5))
	return BuildQuad(corner, u, v)
}

// BuildBox emits the six faces of an axis-aligned box spanning [min, max]
// as twelve Triangle shapes (two per face).
func BuildBox(min, max core.Vec3) []*Triangle {
	dx := core.NewVec3(max.X-min.X, 0, 0)
	dy := core.NewVec3(0, max.Y-min.Y, 0)
	dz := core.NewVec3(0, 0, max.Z-min.Z)

	var triangles []*Triangle
	// +Z face (front)
	triangles = append(triangles, BuildQuad(core.NewVec3(min.X, min.Y, max.Z), dx, dy)[:]...)
	// -Z face (back)
	triangles = append(triangles, BuildQuad(core.NewVec3(max.X, min.Y, min.Z), dx.Negate(), dy)[:]...)
	// +X face (right)
	triangles = append(triangles, BuildQuad(core.NewVec3(max.X, min.Y, max.Z), dz.Negate(), dy)[:]...)
	// -X face (left)
	triangles = append(triangles, BuildQuad(core.NewVec3(min.X, min.Y, min.Z), dz, dy)[:]...)
	// +Y face (top)
	triangles = append(triangles, BuildQuad(core.NewVec3(min.X, max.Y, max.Z), dx, dz.Negate())[:]...)
	// -Y face (bottom)
	triangles = append(triangles, BuildQuad(core.NewVec3(min.X, min.Y, min.Z), dx, dz)[:]...)

	return triangles
}
