package shape

import (
	"math"
	"testing"

	"github.com/aeonrender/photon/pkg/core"
)

func TestTriangleIntersectHit(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	tHit, ok := tri.Intersect(ray, 0.001, 1000.0)
	if !ok {
		t.Fatalf("expected hit")
	}
	if math.Abs(tHit-2.0) > 1e-9 {
		t.Errorf("expected t=2.0, got %f", tHit)
	}
}

func TestTriangleIntersectMissOutsideEdges(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	)
	ray := core.NewRay(core.NewVec3(5, 5, 2), core.NewVec3(0, 0, -1))

	if _, ok := tri.Intersect(ray, 0.001, 1000.0); ok {
		t.Errorf("expected miss")
	}
}

func TestTriangleIntersectRejectsParallelRay(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(1, 0, 0))

	if _, ok := tri.Intersect(ray, 0.001, 1000.0); ok {
		t.Errorf("expected miss for ray parallel to triangle plane")
	}
}

func TestTriangleSurfaceInteractionInterpolatesVertexNormals(t *testing.T) {
	n0 := core.NewVec3(0, 0, 1)
	n1 := core.NewVec3(0, 0, 1)
	n2 := core.NewVec3(1, 0, 0).Normalize() // deliberately skewed vertex normal

	tri := NewTriangleFull(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
		[]core.Vec3{n0, n1, n2},
		nil,
	)

	// Ray through the centroid-ish region should pick up a blend, not a
	// pure face normal.
	ray := core.NewRay(core.NewVec3(-0.5, -0.8, 2), core.NewVec3(0, 0, -1))
	tHit, ok := tri.Intersect(ray, 0.001, 1000.0)
	if !ok {
		t.Fatalf("expected hit")
	}
	si := tri.SurfaceInteractionAt(ray, tHit)
	if math.Abs(si.Normal.Length()-1.0) > 1e-6 {
		t.Errorf("expected unit shading normal, got length %f", si.Normal.Length())
	}
	if si.Normal.X <= 0 {
		t.Errorf("expected a blend toward the skewed vertex normal, got %v", si.Normal)
	}
}

func TestTriangleAreaMatchesCrossProductFormula(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 2, 0),
	)
	if math.Abs(tri.Area()-2.0) > 1e-9 {
		t.Errorf("expected area 2.0, got %f", tri.Area())
	}
}

func TestTriangleBakeTransformMovesVertices(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	)
	tr := core.Translate(core.NewVec3(5, 0, 0))

	if ok := tri.BakeTransform(tr); !ok {
		t.Fatalf("expected triangle to accept transform baking")
	}
	if !tri.P[0].Equals(core.NewVec3(5, 0, 0)) {
		t.Errorf("expected baked vertex at (5,0,0), got %v", tri.P[0])
	}
}
