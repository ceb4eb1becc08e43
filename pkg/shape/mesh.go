package shape

import "github.com/aeonrender/photon/pkg/core"

// BuildTriangleMesh expands an indexed vertex buffer into individual
// Triangle shapes, one per face. The Shape taxonomy is closed to
// {Sphere, Triangle} — mesh faces become ordinary Triangle primitives
// that the scene's single top-level BVH indexes directly, rather than a
// third Shape variant wrapping its own nested BVH. Normals and UVs are
// per-vertex
// (indexed the same way positions are), matching how PLY and glTF both
// describe attributes; pass nil for either to fall back to a flat
// geometric normal / raw barycentric UV per triangle.
func BuildTriangleMesh(positions []core.Vec3, indices []int, normals []core.Vec3, uvs []core.Vec2) []*Triangle {
	if len(indices)%3 != 0 {
		panic("shape: mesh index count must be a multiple of 3")
	}

	numTriangles := len(indices) / 3
	triangles := make([]*Triangle, numTriangles)

	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := indices[i*3], indices[i*3+1], indices[i*3+2]

		var triNormals []core.Vec3
		if normals != nil {
			triNormals = []core.Vec3{normals[i0], normals[i1], normals[i2]}
		}

		var triUVs []core.Vec2
		if uvs != nil {
			triUVs = []core.Vec2{uvs[i0], uvs[i1], uvs[i2]}
		}

		triangles[i] = NewTriangleFull(positions[i0], positions[i1], positions[i2], triNormals, triUVs)
	}

	return triangles
}
