package scene

import (
	"fmt"

	"github.com/aeonrender/photon/pkg/core"
	"github.com/aeonrender/photon/pkg/loaders"
	"github.com/aeonrender/photon/pkg/shape"
)

// trianglesFromIndexedMesh builds one Triangle per face out of flat
// vertex/normal/uv arrays and a 3-per-face index list, shared by both the
// PLY and glTF mesh import paths since both reduce to this same shape.
func trianglesFromIndexedMesh(vertices, normals []core.Vec3, uvs []core.Vec2, indices []int) ([]shape.Shape, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("mesh index count %d is not a multiple of 3", len(indices))
	}

	tris := make([]shape.Shape, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= len(vertices) || i1 >= len(vertices) || i2 >= len(vertices) {
			return nil, fmt.Errorf("triangle index out of range at face %d", i/3)
		}

		var faceNormals []core.Vec3
		if len(normals) == len(vertices) {
			faceNormals = []core.Vec3{normals[i0], normals[i1], normals[i2]}
		}
		var faceUVs []core.Vec2
		if len(uvs) == len(vertices) {
			faceUVs = []core.Vec2{uvs[i0], uvs[i1], uvs[i2]}
		}

		tris = append(tris, shape.NewTriangleFull(vertices[i0], vertices[i1], vertices[i2], faceNormals, faceUVs))
	}
	return tris, nil
}

// LoadPLYMesh loads a PLY mesh file into a flat list of Triangle shapes in
// object space, ready for a Builder to register as primitives (optionally
// under a WorldToObject transform, since Triangle always bakes).
func LoadPLYMesh(filename string) ([]shape.Shape, error) {
	data, err := loaders.LoadPLY(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load PLY mesh: %w", err)
	}
	uvs := make([]core.Vec2, 0)
	if len(data.TexCoords) == len(data.Vertices) {
		uvs = data.TexCoords
	}
	return trianglesFromIndexedMesh(data.Vertices, data.Normals, uvs, data.Faces)
}

// LoadGLTFMesh loads the primIndex'th flattened mesh primitive out of a
// .gltf/.glb file into a flat list of Triangle shapes, the second mesh
// import path alongside LoadPLYMesh.
func LoadGLTFMesh(filename string, primIndex int) ([]shape.Shape, error) {
	meshes, err := loaders.LoadGLTF(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load glTF mesh: %w", err)
	}
	if primIndex < 0 || primIndex >= len(meshes) {
		return nil, fmt.Errorf("glTF primitive index %d out of range (file has %d)", primIndex, len(meshes))
	}
	md := meshes[primIndex]
	return trianglesFromIndexedMesh(md.Vertices, md.Normals, md.UVs, md.Indices)
}
