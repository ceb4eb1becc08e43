// Package bsdf implements the shading-frame-local scattering distributions
// a material evaluates: Lambertian, Dielectric, Conductor, RoughPlastic,
// Null and the tabulated Measured BRDF, plus the BsdfFlags taxonomy the
// integrator uses to decide whether next-event estimation applies to a
// given bounce.
package bsdf

// Flags classifies the lobe a Sample call produced, so the integrator
// knows whether the bounce can be combined with next-event estimation
// (only Smooth lobes can: a Delta lobe has probability zero of landing on
// any specific direction a light sampler would pick) and whether it should
// fall under the depth-decrement trick (Null).
type Flags uint8

const (
	None Flags = 0

	// Null passes the ray straight through with no directional change; a
	// bounce through a Null lobe does not count against the path depth
	// budget.
	Null Flags = 1 << iota

	DiffuseReflection
	GlossyReflection
	DeltaReflection
	DeltaTransmission
)

// Smooth is the mask of lobes next-event estimation may pair with: any
// lobe with a finite solid-angle extent, as opposed to a Dirac delta.
const Smooth = DiffuseReflection | GlossyReflection

// Delta is the mask of lobes that can only be reached by BSDF sampling: a
// light sampler has zero probability of hitting the single direction a
// perfect mirror or smooth dielectric interface scatters into.
const Delta = DeltaReflection | DeltaTransmission

// Has reports whether f contains every bit set in mask.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// HasAny reports whether f shares any bit with mask.
func (f Flags) HasAny(mask Flags) bool {
	return f&mask != 0
}

// IsSmooth reports whether f is a Smooth lobe, eligible for NEE.
func (f Flags) IsSmooth() bool {
	return f.HasAny(Smooth)
}

// IsDelta reports whether f is a Dirac-delta lobe.
func (f Flags) IsDelta() bool {
	return f.HasAny(Delta)
}
