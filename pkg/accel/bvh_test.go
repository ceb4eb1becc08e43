package accel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeonrender/photon/pkg/core"
)

// sphereStub is a minimal Primitive used only to exercise BVH construction
// and traversal without depending on pkg/shape.
type sphereStub struct {
	center core.Vec3
	radius float64
}

func (s sphereStub) Bounds() core.Bounds3 {
	r := core.NewVec3(s.radius, s.radius, s.radius)
	return core.NewBounds3(s.center.Subtract(r), s.center.Add(r))
}

func (s sphereStub) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	oc := ray.Origin.Subtract(s.center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.radius*s.radius
	disc := halfB*halfB - a*c
	if disc < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(disc)
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return 0, false
		}
	}
	return root, true
}

func bruteForceHit(prims []Primitive, ray core.Ray, tMin, tMax float64) (Primitive, float64, bool) {
	var best Primitive
	bestT := tMax
	found := false
	for _, p := range prims {
		if t, ok := p.Intersect(ray, tMin, bestT); ok {
			bestT = t
			best = p
			found = true
		}
	}
	return best, bestT, found
}

func randomScene(n int, seed int64) []Primitive {
	r := rand.New(rand.NewSource(seed))
	prims := make([]Primitive, n)
	for i := 0; i < n; i++ {
		center := core.NewVec3(r.Float64()*20-10, r.Float64()*20-10, r.Float64()*20-10)
		prims[i] = sphereStub{center: center, radius: 0.2 + r.Float64()*0.8}
	}
	return prims
}

func TestBVHEmptyAlwaysMisses(t *testing.T) {
	bvh := Build(nil)
	_, _, ok := bvh.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), 0.001, 1e9, nil)
	assert.False(t, ok)
	assert.False(t, bvh.IntersectP(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), 0.001, 1e9))
}

func TestBVHSinglePrimitive(t *testing.T) {
	prims := []Primitive{sphereStub{center: core.NewVec3(0, 0, 0), radius: 1}}
	bvh := Build(prims)

	prim, tHit, ok := bvh.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), 0.001, 1e9, nil)
	require.True(t, ok)
	assert.Equal(t, prims[0], prim)
	assert.InDelta(t, 4.0, tHit, 1e-9)
}

func TestBVHMatchesBruteForceClosestHit(t *testing.T) {
	prims := randomScene(300, 1)
	bvh := Build(prims)

	r := rand.New(rand.NewSource(99))
	for i := 0; i < 500; i++ {
		origin := core.NewVec3(r.Float64()*30-15, r.Float64()*30-15, r.Float64()*30-15)
		dir := core.NewVec3(r.Float64()*2-1, r.Float64()*2-1, r.Float64()*2-1).Normalize()
		ray := core.NewRay(origin, dir)

		wantPrim, wantT, wantOk := bruteForceHit(prims, ray, 0.001, 1e9)
		gotPrim, gotT, gotOk := bvh.Hit(ray, 0.001, 1e9, nil)

		require.Equal(t, wantOk, gotOk, "hit/miss mismatch for ray %v", ray)
		if wantOk {
			assert.InDelta(t, wantT, gotT, 1e-6)
			assert.Equal(t, wantPrim, gotPrim)
		}
	}
}

func TestBVHShadowQueryMatchesBruteForceMonotone(t *testing.T) {
	prims := randomScene(300, 2)
	bvh := Build(prims)

	r := rand.New(rand.NewSource(123))
	for i := 0; i < 500; i++ {
		origin := core.NewVec3(r.Float64()*30-15, r.Float64()*30-15, r.Float64()*30-15)
		dir := core.NewVec3(r.Float64()*2-1, r.Float64()*2-1, r.Float64()*2-1).Normalize()
		ray := core.NewRay(origin, dir)
		tLimit := r.Float64() * 20

		_, _, wantOccluded := bruteForceHit(prims, ray, 0.001, tLimit)
		gotOccluded := bvh.IntersectP(ray, 0.001, tLimit)

		assert.Equal(t, wantOccluded, gotOccluded)
	}
}

func TestBVHLeafThresholdSingleNode(t *testing.T) {
	prims := make([]Primitive, leafThreshold)
	for i := range prims {
		prims[i] = sphereStub{center: core.NewVec3(float64(i)*0.01, 0, 0), radius: 0.1}
	}
	bvh := Build(prims)
	assert.Len(t, bvh.nodes, 1)
}
