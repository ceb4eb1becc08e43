package bsdf

import (
	"math"

	"github.com/aeonrender/photon/pkg/core"
)

// Conductor is a perfect mirror tinted by a complex index of refraction
// (Eta, K), evaluated per RGB channel so metals pick up their
// characteristic color (gold, copper) instead of a neutral reflectance.
type Conductor struct {
	Eta, K core.Vec3
}

// frConductorChannel evaluates the Fresnel reflectance of a conducting
// interface for one channel's (eta, k) pair at incident cosine cosThetaI.
func frConductorChannel(cosThetaI, eta, k float64) float64 {
	cos2 := cosThetaI * cosThetaI
	sin2 := 1 - cos2
	eta2 := eta * eta
	k2 := k * k

	t0 := eta2 - k2 - sin2
	a2plusb2 := math.Sqrt(math.Max(0, t0*t0+4*eta2*k2))
	t1 := a2plusb2 + cos2
	a := math.Sqrt(math.Max(0, 0.5*(a2plusb2+t0)))
	t2 := 2 * a * cosThetaI
	rs := (t1 - t2) / (t1 + t2)

	t3 := cos2*a2plusb2 + sin2*sin2
	t4 := t2 * sin2
	rp := rs * (t3 - t4) / (t3 + t4)

	return 0.5 * (rp + rs)
}

func (c Conductor) Sample(wi core.Vec3, u1 float64, u2 core.Vec2) (Sample, bool) {
	cosThetaI := core.AbsCosTheta(wi)
	f := core.NewVec3(
		frConductorChannel(cosThetaI, c.Eta.X, c.K.X),
		frConductorChannel(cosThetaI, c.Eta.Y, c.K.Y),
		frConductorChannel(cosThetaI, c.Eta.Z, c.K.Z),
	)
	wo := core.NewVec3(-wi.X, -wi.Y, wi.Z)
	return Sample{Wo: wo, Flags: DeltaReflection, Weight: f}, true
}

func (c Conductor) Eval(wi, wo core.Vec3) core.Vec3 {
	return core.Vec3{}
}

func (c Conductor) PDF(wi, wo core.Vec3) float64 {
	return 0
}

func (c Conductor) Flags() Flags {
	return DeltaReflection
}
