package bsdf

import "github.com/aeonrender/photon/pkg/core"

// Sample is the result of drawing a scattered direction from a BSDF: the
// local-frame outgoing direction, the lobe it came from, and the already
// divided-through Monte Carlo weight f(wi,wo)*|cos(wo)|/pdf(wo). Bundling
// the division here instead of returning f and pdf separately means every
// BSDF implementation, not just the integrator, is responsible for not
// dividing by a near-zero pdf.
type Sample struct {
	Wo     core.Vec3
	Flags  Flags
	Weight core.Vec3
}

// BSDF is a shading-frame-local scattering distribution: wi and wo are
// both expressed in the local frame where Z is the shading normal, with
// wi conventionally pointing back towards the previous vertex (the
// direction light left along) and wo the sampled or queried new direction.
type BSDF interface {
	// Sample draws a scattered direction given a uniform 1D and 2D random
	// sample. ok is false if no valid scattering event exists (e.g. total
	// internal reflection routed to a degenerate configuration).
	Sample(wi core.Vec3, u1 float64, u2 core.Vec2) (Sample, bool)

	// Eval returns f(wi, wo), the BSDF value for an externally supplied
	// direction pair. Delta lobes always evaluate to zero here: a
	// direction sampled independently (e.g. towards a light) has zero
	// probability of landing exactly on a Dirac delta's single direction.
	Eval(wi, wo core.Vec3) core.Vec3

	// PDF returns the solid-angle sampling density Sample would have used
	// for wo given wi, for MIS weighting. Delta lobes return zero.
	PDF(wi, wo core.Vec3) float64

	// Flags returns the set of lobes this BSDF can ever sample.
	Flags() Flags
}
