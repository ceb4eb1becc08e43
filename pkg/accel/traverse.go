package accel

import "github.com/aeonrender/photon/pkg/core"

// Hit finds the closest primitive intersection along ray within
// [tMin, tMax], using iterative traversal with a fixed-capacity explicit
// stack. Returns the hit primitive and its t; ok is false on a miss.
// visited, if non-nil, is incremented once per BVH node test for the
// stats counters.
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64, visited *uint64) (Primitive, float64, bool) {
	if len(b.nodes) == 0 {
		return nil, 0, false
	}

	var stack [stackCapacity]int32
	sp := 0
	stack[sp] = 0
	sp++

	var closestPrim Primitive
	closestT := tMax
	found := false

	for sp > 0 {
		sp--
		idx := stack[sp]
		n := &b.nodes[idx]

		if visited != nil {
			*visited++
		}

		if _, _, hit := n.bounds.Hit(ray, tMin, closestT); !hit {
			continue
		}

		if n.count > 0 {
			// Leaf: linear scan over its primitive range.
			for i := n.offset; i < n.offset+n.count; i++ {
				if t, ok := b.primitives[i].Intersect(ray, tMin, closestT); ok {
					closestT = t
					closestPrim = b.primitives[i]
					found = true
				}
			}
			continue
		}

		// Interior: push far child first so the near child (by ray
		// direction sign along the split axis) pops first. A
		// deterministic left-first order is also correct; this ordering
		// just tends to find closer hits sooner, tightening closestT
		// faster for subsequent slab tests.
		first := idx + 1
		second := n.offset
		if component(ray.Direction, int(n.splitAxis)) < 0 {
			first, second = second, first
		}

		if sp+2 > stackCapacity {
			// Should not happen for any reasonably balanced tree within
			// the stated capacity; drop the farther push rather than
			// overflow.
			stack[sp] = first
			sp++
			continue
		}
		stack[sp] = second
		sp++
		stack[sp] = first
		sp++
	}

	return closestPrim, closestT, found
}

// IntersectP is the shadow-ray any-hit query: does any primitive occlude
// ray within [tMin, tMax)? Stops at the first occluder found.
func (b *BVH) IntersectP(ray core.Ray, tMin, tMax float64) bool {
	if len(b.nodes) == 0 {
		return false
	}

	var stack [stackCapacity]int32
	sp := 0
	stack[sp] = 0
	sp++

	for sp > 0 {
		sp--
		idx := stack[sp]
		n := &b.nodes[idx]

		if _, _, hit := n.bounds.Hit(ray, tMin, tMax); !hit {
			continue
		}

		if n.count > 0 {
			for i := n.offset; i < n.offset+n.count; i++ {
				if _, ok := b.primitives[i].Intersect(ray, tMin, tMax); ok {
					return true
				}
			}
			continue
		}

		if sp+2 > stackCapacity {
			stack[sp] = idx + 1
			sp++
			continue
		}
		stack[sp] = n.offset
		sp++
		stack[sp] = idx + 1
		sp++
	}

	return false
}

func component(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Bounds returns the world-space bounds of the entire hierarchy (the root
// node's bounds), or an empty Bounds3 if the BVH has no primitives.
func (b *BVH) Bounds() core.Bounds3 {
	if len(b.nodes) == 0 {
		return core.Bounds3{}
	}
	return b.nodes[0].bounds
}

// Len returns the number of primitives indexed by the BVH.
func (b *BVH) Len() int {
	return len(b.primitives)
}
