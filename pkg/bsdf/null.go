package bsdf

import "github.com/aeonrender/photon/pkg/core"

// NullBSDF passes the ray straight through unperturbed, used for the
// boundary of a participating medium with no index-of-refraction change:
// the path continues as if nothing was hit, and the integrator's
// depth-decrement trick excludes these bounces from the path length
// budget.
type NullBSDF struct{}

func (NullBSDF) Sample(wi core.Vec3, u1 float64, u2 core.Vec2) (Sample, bool) {
	return Sample{Wo: wi.Negate(), Flags: Null, Weight: core.NewVec3(1, 1, 1)}, true
}

func (NullBSDF) Eval(wi, wo core.Vec3) core.Vec3 {
	return core.Vec3{}
}

func (NullBSDF) PDF(wi, wo core.Vec3) float64 {
	return 0
}

func (NullBSDF) Flags() Flags {
	return Null
}
