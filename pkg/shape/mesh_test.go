package shape

import (
	"testing"

	"github.com/aeonrender/photon/pkg/core"
)

func TestBuildTriangleMeshExpandsFaces(t *testing.T) {
	positions := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(0, 1, 0),
	}
	indices := []int{0, 1, 2, 0, 2, 3}

	tris := BuildTriangleMesh(positions, indices, nil, nil)
	if len(tris) != 2 {
		t.Fatalf("expected 2 triangles, got %d", len(tris))
	}
	if !tris[0].P[0].Equals(positions[0]) {
		t.Errorf("unexpected first vertex: %v", tris[0].P[0])
	}
}

func TestBuildTriangleMeshPanicsOnBadIndexCount(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on non-multiple-of-3 index count")
		}
	}()
	BuildTriangleMesh([]core.Vec3{{}, {}, {}}, []int{0, 1}, nil, nil)
}

func TestBuildBoxHasTwelveTriangles(t *testing.T) {
	tris := BuildBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
	if len(tris) != 12 {
		t.Fatalf("expected 12 triangles, got %d", len(tris))
	}

	var bounds core.Bounds3 = tris[0].Bounds()
	for _, tri := range tris[1:] {
		bounds = bounds.Union(tri.Bounds())
	}
	if bounds.Size().X < 1.9 || bounds.Size().Y < 1.9 || bounds.Size().Z < 1.9 {
		t.Errorf("unexpected box extent: %+v", bounds)
	}
}
