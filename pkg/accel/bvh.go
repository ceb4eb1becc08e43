// Package accel implements the Surface-Area-Heuristic bounding volume
// hierarchy the path tracer intersects every ray against: closest-hit
// queries for camera/scatter rays, any-hit queries for shadow rays.
package accel

import (
	"sort"

	"github.com/aeonrender/photon/pkg/core"
)

// Primitive is anything the BVH can bound and intersect. The scene's
// Primitive type (shape + material + light indices) satisfies this; the
// BVH itself doesn't know about materials or lights.
type Primitive interface {
	Bounds() core.Bounds3
	Intersect(ray core.Ray, tMin, tMax float64) (t float64, ok bool)
}

const (
	numBuckets    = 12
	leafThreshold = 4
	stackCapacity = 64
)

// node is a flat BVH node. Leaves store a (offset, count) range into the
// reordered primitive array; interior nodes store the split axis and the
// index of the second child (the first child always immediately follows
// its parent in the array).
type node struct {
	bounds      core.Bounds3
	offset      int32 // primitive offset (leaf) or second-child index (interior)
	count       int32 // primitive count; 0 for interior nodes
	splitAxis   int32
}

// BVH is an immutable, flat-array bounding volume hierarchy built once
// over a primitive set and read-only afterward.
type BVH struct {
	nodes      []node
	primitives []Primitive
}

type primitiveInfo struct {
	index    int
	bounds   core.Bounds3
	centroid core.Vec3
}

// Build constructs a BVH from a slice of primitives using a top-down
// Surface-Area-Heuristic algorithm: 12 buckets, 11 candidate splits, leaf
// threshold of 4 when no split beats the leaf cost. Panics if primitives
// exceeds 2^31-1.
func Build(primitives []Primitive) *BVH {
	if len(primitives) > (1<<31)-1 {
		panic("accel: primitive count exceeds 2^31-1")
	}
	if len(primitives) == 0 {
		return &BVH{}
	}

	infos := make([]primitiveInfo, len(primitives))
	for i, p := range primitives {
		b := p.Bounds()
		infos[i] = primitiveInfo{index: i, bounds: b, centroid: b.Center()}
	}

	ordered := make([]Primitive, 0, len(primitives))
	var nodes []node
	buildRecursive(infos, primitives, &ordered, &nodes)

	return &BVH{nodes: nodes, primitives: ordered}
}

// buildRecursive partitions infos[start:end] (the whole slice passed in at
// each level), appends the resulting primitives to ordered in
// BVH-visit-friendly order, and appends nodes to nodes, returning the
// index of the node it created.
func buildRecursive(infos []primitiveInfo, src []Primitive, ordered *[]Primitive, nodes *[]node) int {
	bounds := core.EmptyBounds3()
	for _, info := range infos {
		bounds = bounds.Union(info.bounds)
	}

	makeLeaf := func() int {
		offset := int32(len(*ordered))
		for _, info := range infos {
			*ordered = append(*ordered, src[info.index])
		}
		*nodes = append(*nodes, node{bounds: bounds, offset: offset, count: int32(len(infos))})
		return len(*nodes) - 1
	}

	if len(infos) == 1 {
		return makeLeaf()
	}

	centroidBounds := core.EmptyBounds3()
	for _, info := range infos {
		centroidBounds = centroidBounds.UnionPoint(info.centroid)
	}
	axis := centroidBounds.LongestAxis()
	axisMin, axisMax := centroidBounds.Axis(axis)

	if axisMax-axisMin < 1e-12 {
		return makeLeaf()
	}

	if len(infos) == 2 {
		return makeInterior(infos, src, ordered, nodes, bounds, axis, splitEqualCounts)
	}

	splitIdx, found := sahSplit(infos, axis, axisMin, axisMax, bounds)
	if !found {
		if len(infos) <= leafThreshold {
			return makeLeaf()
		}
		return makeInterior(infos, src, ordered, nodes, bounds, axis, splitEqualCounts)
	}

	leafCost := float64(len(infos))
	if len(infos) <= leafThreshold && splitIdx.cost >= leafCost {
		return makeLeaf()
	}

	return makeInterior(infos, src, ordered, nodes, bounds, axis, func(infos []primitiveInfo, axis int) int {
		return partitionByBucket(infos, axis, axisMin, axisMax, splitIdx.bucket)
	})
}

// makeInterior reserves a node slot (so the parent index is known before
// recursing), partitions infos into two halves via partitionFn, and
// recurses on each half with the first child immediately following its
// parent in the node array.
func makeInterior(
	infos []primitiveInfo,
	src []Primitive,
	ordered *[]Primitive,
	nodes *[]node,
	bounds core.Bounds3,
	axis int,
	partitionFn func([]primitiveInfo, int) int,
) int {
	mid := partitionFn(infos, axis)
	if mid <= 0 || mid >= len(infos) {
		mid = len(infos) / 2
	}

	selfIdx := len(*nodes)
	*nodes = append(*nodes, node{bounds: bounds, splitAxis: int32(axis)})

	buildRecursive(infos[:mid], src, ordered, nodes)
	secondChild := buildRecursive(infos[mid:], src, ordered, nodes)

	(*nodes)[selfIdx].offset = int32(secondChild)
	(*nodes)[selfIdx].count = 0
	return selfIdx
}

func splitEqualCounts(infos []primitiveInfo, axis int) int {
	sort.Slice(infos, func(i, j int) bool {
		return axisValue(infos[i].centroid, axis) < axisValue(infos[j].centroid, axis)
	})
	return len(infos) / 2
}

type bucketSplit struct {
	bucket int
	cost   float64
}

// sahSplit bins centroids into numBuckets along axis, evaluates the SAH
// cost of each of the numBuckets-1 candidate splits, and returns the
// cheapest.
func sahSplit(infos []primitiveInfo, axis int, axisMin, axisMax float64, bounds core.Bounds3) (bucketSplit, bool) {
	type bucket struct {
		count  int
		bounds core.Bounds3
	}
	var buckets [numBuckets]bucket
	for i := range buckets {
		buckets[i].bounds = core.EmptyBounds3()
	}

	bucketFor := func(c float64) int {
		b := int(float64(numBuckets) * (c - axisMin) / (axisMax - axisMin))
		if b >= numBuckets {
			b = numBuckets - 1
		}
		if b < 0 {
			b = 0
		}
		return b
	}

	for _, info := range infos {
		b := bucketFor(axisValue(info.centroid, axis))
		buckets[b].count++
		buckets[b].bounds = buckets[b].bounds.Union(info.bounds)
	}

	totalArea := bounds.SurfaceArea()
	if totalArea <= 0 {
		return bucketSplit{}, false
	}

	bestCost := -1.0
	bestSplit := 0

	for split := 0; split < numBuckets-1; split++ {
		boundsA := core.EmptyBounds3()
		countA := 0
		for i := 0; i <= split; i++ {
			if buckets[i].count > 0 {
				boundsA = boundsA.Union(buckets[i].bounds)
				countA += buckets[i].count
			}
		}
		boundsB := core.EmptyBounds3()
		countB := 0
		for i := split + 1; i < numBuckets; i++ {
			if buckets[i].count > 0 {
				boundsB = boundsB.Union(buckets[i].bounds)
				countB += buckets[i].count
			}
		}
		if countA == 0 || countB == 0 {
			continue
		}

		cost := 1.0 + (float64(countA)*boundsA.SurfaceArea()+float64(countB)*boundsB.SurfaceArea())/totalArea
		if bestCost < 0 || cost < bestCost {
			bestCost = cost
			bestSplit = split
		}
	}

	if bestCost < 0 {
		return bucketSplit{}, false
	}
	return bucketSplit{bucket: bestSplit, cost: bestCost}, true
}

// partitionByBucket reorders infos in place so that every primitive
// bucketed at or before splitBucket comes first, returning the partition
// index.
func partitionByBucket(infos []primitiveInfo, axis int, axisMin, axisMax float64, splitBucket int) int {
	bucketFor := func(c float64) int {
		b := int(float64(numBuckets) * (c - axisMin) / (axisMax - axisMin))
		if b >= numBuckets {
			b = numBuckets - 1
		}
		if b < 0 {
			b = 0
		}
		return b
	}

	i, j := 0, len(infos)-1
	for i <= j {
		for i <= j && bucketFor(axisValue(infos[i].centroid, axis)) <= splitBucket {
			i++
		}
		for i <= j && bucketFor(axisValue(infos[j].centroid, axis)) > splitBucket {
			j--
		}
		if i < j {
			infos[i], infos[j] = infos[j], infos[i]
			i++
			j--
		}
	}
	return i
}

func axisValue(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
