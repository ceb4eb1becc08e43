package bsdf

import (
	"math"

	"github.com/aeonrender/photon/pkg/core"
)

// RoughPlastic layers a rough dielectric specular coat over a diffuse
// substrate: a Fresnel coin flip picks between a perturbed mirror lobe
// (roughness widens it into a narrow cosine-power lobe around the ideal
// reflection) and a cosine-weighted diffuse lobe, the diffuse branch
// compensated for the fraction of light the coating's internal Fresnel
// reflection traps before it can escape.
type RoughPlastic struct {
	Eta       float64
	Roughness float64 // 0 = mirror-smooth coat, larger = broader specular lobe
	Diffuse   core.Vec3
}

// diffuseFresnelReflectance approximates the hemispherically-averaged
// internal Fresnel reflectance Fdr(eta) used to scale down the diffuse
// term by the fraction of diffusely-scattered light that never escapes
// the coating. Egan-Hilgeman's polynomial below eta=1 (for substrates
// optically thinner than their surrounding medium) and the d'Eon-Irving
// polynomial at and above it are both curve fits to the same Monte Carlo
// integral.
func diffuseFresnelReflectance(eta float64) float64 {
	if eta < 1 {
		return -0.4399 + 0.7099/eta - 0.3319/(eta*eta) + 0.0636/(eta*eta*eta)
	}
	return -1.4399/(eta*eta) + 0.7099/eta + 0.6681 + 0.0636*eta
}

func (r RoughPlastic) Sample(wi core.Vec3, u1 float64, u2 core.Vec2) (Sample, bool) {
	f := frDielectric(wi.Z, r.Eta)

	if u1 < f {
		mirror := core.NewVec3(-wi.X, -wi.Y, wi.Z)
		wo := perturbSpecular(mirror, r.Roughness, u2)
		if !core.SameHemisphere(wi, wo) || core.AbsCosTheta(wo) < 1e-6 {
			return Sample{}, false
		}
		return Sample{Wo: wo, Flags: GlossyReflection, Weight: core.NewVec3(1, 1, 1)}, true
	}

	wo := core.SquareToCosineHemisphere(u2)
	if wi.Z < 0 {
		wo.Z = -wo.Z
	}
	pdf := core.CosineHemispherePDF(core.AbsCosTheta(wo))
	if pdf <= 0 {
		return Sample{}, false
	}
	fdr := diffuseFresnelReflectance(r.Eta)
	compensated := r.Diffuse.Multiply(1.0 / (1.0 - fdr))
	return Sample{Wo: wo, Flags: DiffuseReflection, Weight: compensated}, true
}

// perturbSpecular widens the ideal mirror direction into a narrow
// cosine-power lobe scaled by roughness, reusing the cosine-hemisphere
// warp around the mirror direction's local frame rather than a dedicated
// Phong-lobe warp.
func perturbSpecular(mirror core.Vec3, roughness float64, u core.Vec2) core.Vec3 {
	if roughness <= 0 {
		return mirror
	}
	frame := core.NewFrame3(mirror)
	local := core.SquareToCosineHemisphere(u)
	// Narrow the lobe: blend towards the mirror direction as roughness
	// shrinks, by shrinking the off-axis component.
	narrowed := core.NewVec3(local.X*roughness, local.Y*roughness, math.Sqrt(math.Max(0, 1-roughness*roughness*(local.X*local.X+local.Y*local.Y))))
	return frame.ToWorld(narrowed)
}

func (r RoughPlastic) Eval(wi, wo core.Vec3) core.Vec3 {
	if !core.SameHemisphere(wi, wo) {
		return core.Vec3{}
	}
	fdr := diffuseFresnelReflectance(r.Eta)
	return r.Diffuse.Multiply((1.0 / (1.0 - fdr)) / math.Pi)
}

func (r RoughPlastic) PDF(wi, wo core.Vec3) float64 {
	if !core.SameHemisphere(wi, wo) {
		return 0
	}
	return core.CosineHemispherePDF(core.AbsCosTheta(wo))
}

func (r RoughPlastic) Flags() Flags {
	return GlossyReflection | DiffuseReflection
}
