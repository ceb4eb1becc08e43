package loaders

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/aeonrender/photon/pkg/core"
)

// MeshData is the flat per-primitive triangle data a glTF/GLB mesh import
// reduces to, matching PLYData's shape so pkg/scene's mesh-to-Triangle
// conversion can treat either source identically.
type MeshData struct {
	Vertices []core.Vec3
	Normals  []core.Vec3 // empty if the primitive carries no NORMAL attribute
	UVs      []core.Vec2 // empty if the primitive carries no TEXCOORD_0 attribute
	Indices  []int       // 3 per triangle
}

// LoadGLTF opens a .gltf or .glb file (format is auto-detected by
// gltf.Open from the file's magic bytes and extension) and flattens every
// mesh primitive it contains into a MeshData, in document order. A scene
// builder wanting a single mesh typically uses index 0; a multi-primitive
// asset yields one MeshData per primitive.
func LoadGLTF(path string) ([]MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open glTF file: %w", err)
	}

	var meshes []MeshData
	for mi, m := range doc.Meshes {
		for pi, prim := range m.Primitives {
			md, err := convertPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			meshes = append(meshes, md)
		}
	}
	return meshes, nil
}

func convertPrimitive(doc *gltf.Document, prim *gltf.Primitive) (MeshData, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return MeshData{}, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return MeshData{}, fmt.Errorf("failed to read positions: %w", err)
	}

	vertices := make([]core.Vec3, len(positions))
	for i, p := range positions {
		vertices[i] = core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2]))
	}

	var normals []core.Vec3
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		raw, err := modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return MeshData{}, fmt.Errorf("failed to read normals: %w", err)
		}
		normals = make([]core.Vec3, len(raw))
		for i, n := range raw {
			normals[i] = core.NewVec3(float64(n[0]), float64(n[1]), float64(n[2]))
		}
	}

	var uvs []core.Vec2
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		raw, err := modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return MeshData{}, fmt.Errorf("failed to read texture coordinates: %w", err)
		}
		uvs = make([]core.Vec2, len(raw))
		for i, uv := range raw {
			uvs[i] = core.NewVec2(float64(uv[0]), float64(uv[1]))
		}
	}

	var indices []int
	if prim.Indices != nil {
		raw, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return MeshData{}, fmt.Errorf("failed to read indices: %w", err)
		}
		indices = make([]int, len(raw))
		for i, idx := range raw {
			indices[i] = int(idx)
		}
	} else {
		indices = make([]int, len(vertices))
		for i := range indices {
			indices[i] = i
		}
	}
	if len(indices)%3 != 0 {
		return MeshData{}, fmt.Errorf("triangle index count %d is not a multiple of 3", len(indices))
	}

	return MeshData{Vertices: vertices, Normals: normals, UVs: uvs, Indices: indices}, nil
}
