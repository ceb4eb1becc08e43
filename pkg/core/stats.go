package core

import "sync/atomic"

// Stats is the singleton structure of relaxed atomic counters the render
// loop updates from every worker goroutine. Fields are exported so tile
// workers and the integrator can increment them directly; there is no
// locking because every update is a single atomic op and approximate
// cross-counter consistency is acceptable for a diagnostics summary.
type Stats struct {
	// ZeroRadiancePaths counts samples terminated early by a runtime
	// numerical degeneracy (NaN BSDF weight, zero-determinant UV frame,
	// zero-area triangle): such samples contribute zero and the path moves on.
	ZeroRadiancePaths uint64
	// PathsTraced counts every camera path started, regardless of outcome.
	PathsTraced uint64
	// ShadowRaysTraced counts occlusion queries issued by NEE.
	ShadowRaysTraced uint64
	// BVHNodesVisited counts BVH node tests across all primary and shadow rays.
	BVHNodesVisited uint64
	// NullBounces counts scatter events through a null BSDF lobe (medium
	// boundary crossings that don't count against max_depth).
	NullBounces uint64
}

// NewStats returns a zeroed Stats structure.
func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) IncZeroRadiancePaths() { atomic.AddUint64(&s.ZeroRadiancePaths, 1) }
func (s *Stats) IncPathsTraced()       { atomic.AddUint64(&s.PathsTraced, 1) }
func (s *Stats) IncShadowRaysTraced()  { atomic.AddUint64(&s.ShadowRaysTraced, 1) }
func (s *Stats) AddBVHNodesVisited(n uint64) {
	atomic.AddUint64(&s.BVHNodesVisited, n)
}
func (s *Stats) IncNullBounces() { atomic.AddUint64(&s.NullBounces, 1) }

// Snapshot is a point-in-time, non-atomic copy suitable for logging.
type Snapshot struct {
	ZeroRadiancePaths uint64
	PathsTraced       uint64
	ShadowRaysTraced  uint64
	BVHNodesVisited   uint64
	NullBounces       uint64
}

// Snapshot reads all counters. Individual loads are atomic; the set as a
// whole is not a consistent transaction, which is fine for a summary line.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		ZeroRadiancePaths: atomic.LoadUint64(&s.ZeroRadiancePaths),
		PathsTraced:       atomic.LoadUint64(&s.PathsTraced),
		ShadowRaysTraced:  atomic.LoadUint64(&s.ShadowRaysTraced),
		BVHNodesVisited:   atomic.LoadUint64(&s.BVHNodesVisited),
		NullBounces:       atomic.LoadUint64(&s.NullBounces),
	}
}
