package bsdf

import (
	"math"

	"github.com/aeonrender/photon/pkg/core"
)

// Dielectric is a smooth refractive interface (glass, water): a Fresnel
// coin flip between a mirror reflection and a refraction, scaled by eta,
// the interior-over-exterior index of refraction. Tint is a wavelength
// multiplier applied to the transmitted branch (tinted glass).
type Dielectric struct {
	Eta  float64
	Tint core.Vec3
}

// frDielectric evaluates the unpolarized Fresnel reflectance for a smooth
// dielectric interface given the cosine of the incident angle (signed:
// positive means the ray origin side is the side with a lower index) and
// the relative index of refraction eta = etaTransmitted/etaIncident.
func frDielectric(cosThetaI, eta float64) float64 {
	entering := cosThetaI > 0
	if !entering {
		eta = 1 / eta
		cosThetaI = -cosThetaI
	}

	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := sin2ThetaI / (eta * eta)
	if sin2ThetaT >= 1 {
		return 1 // total internal reflection
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)

	rParallel := (eta*cosThetaI - cosThetaT) / (eta*cosThetaI + cosThetaT)
	rPerp := (cosThetaI - eta*cosThetaT) / (cosThetaI + eta*cosThetaT)
	return (rParallel*rParallel + rPerp*rPerp) / 2
}

// refract computes the refracted direction of wi through a surface with
// normal n (on the same side as wi) and relative IOR eta; ok is false on
// total internal reflection.
func refract(wi, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosThetaI := n.Dot(wi)
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := sin2ThetaI / (eta * eta)
	if sin2ThetaT >= 1 {
		return core.Vec3{}, false
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	wt := wi.Negate().Multiply(1 / eta).Add(n.Multiply(cosThetaI/eta - cosThetaT))
	return wt, true
}

func (d Dielectric) Sample(wi core.Vec3, u1 float64, u2 core.Vec2) (Sample, bool) {
	cosThetaI := wi.Z
	entering := cosThetaI > 0
	eta := d.Eta
	if !entering {
		eta = 1 / d.Eta
	}

	f := frDielectric(cosThetaI, d.Eta)

	if u1 < f {
		wo := core.NewVec3(-wi.X, -wi.Y, wi.Z)
		return Sample{Wo: wo, Flags: DeltaReflection, Weight: core.NewVec3(1, 1, 1)}, true
	}

	n := core.NewVec3(0, 0, 1)
	if cosThetaI < 0 {
		n = n.Negate()
	}
	wt, ok := refract(wi, n, eta)
	if !ok {
		// Total internal reflection routed here by numerical edge cases;
		// fall back to the mirror branch rather than returning no sample.
		wo := core.NewVec3(-wi.X, -wi.Y, wi.Z)
		return Sample{Wo: wo, Flags: DeltaReflection, Weight: core.NewVec3(1, 1, 1)}, true
	}

	// Radiance transported across a boundary with differing IOR compresses
	// by 1/eta^2 (non-symmetry of radiative transport under refraction);
	// camera-path integrators apply this factor on the transmitted branch.
	weight := d.Tint.Multiply(1 / (eta * eta))
	return Sample{Wo: wt, Flags: DeltaTransmission, Weight: weight}, true
}

func (d Dielectric) Eval(wi, wo core.Vec3) core.Vec3 {
	return core.Vec3{} // delta lobes contribute nothing to an externally supplied direction
}

func (d Dielectric) PDF(wi, wo core.Vec3) float64 {
	return 0
}

func (d Dielectric) Flags() Flags {
	return DeltaReflection | DeltaTransmission
}
