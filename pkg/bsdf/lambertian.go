package bsdf

import (
	"math"

	"github.com/aeonrender/photon/pkg/core"
)

// Lambertian is a perfectly diffuse reflector: f = albedo/pi, uniform in
// every outgoing direction across the hemisphere of wi.
type Lambertian struct {
	Albedo core.Vec3
}

func (l Lambertian) Sample(wi core.Vec3, u1 float64, u2 core.Vec2) (Sample, bool) {
	wo := core.SquareToCosineHemisphere(u2)
	if wi.Z < 0 {
		wo.Z = -wo.Z
	}
	pdf := core.CosineHemispherePDF(core.AbsCosTheta(wo))
	if pdf <= 0 {
		return Sample{}, false
	}
	// f*|cos|/pdf = (albedo/pi)*cos / (cos/pi) = albedo.
	return Sample{Wo: wo, Flags: DiffuseReflection, Weight: l.Albedo}, true
}

func (l Lambertian) Eval(wi, wo core.Vec3) core.Vec3 {
	if !core.SameHemisphere(wi, wo) {
		return core.Vec3{}
	}
	return l.Albedo.Multiply(1 / math.Pi)
}

func (l Lambertian) PDF(wi, wo core.Vec3) float64 {
	if !core.SameHemisphere(wi, wo) {
		return 0
	}
	return core.CosineHemispherePDF(core.AbsCosTheta(wo))
}

func (l Lambertian) Flags() Flags {
	return DiffuseReflection
}
