// Package medium implements the homogeneous participating medium and its
// phase functions: the volumetric scattering layer the path integrator
// consults when a ray travels through fog, smoke, or any other uniform
// scattering volume between surfaces.
package medium

import "github.com/aeonrender/photon/pkg/core"

// Interaction is a scattering event inside a medium: the point, the
// direction back towards the ray origin, and the phase function to sample
// for the next bounce.
type Interaction struct {
	P             core.Vec3
	Wi            core.Vec3
	PhaseFunction PhaseFunction
}

// Medium is the scattering volume interface the integrator samples
// distances from and queries transmittance through.
type Medium interface {
	// Sample attempts to find a scattering event along ray up to tMax,
	// given a uniform random sample u1. ok is false if the distance drawn
	// exceeds tMax (the ray reaches the surface/escape point unscattered).
	// weight is the throughput multiplier to apply regardless of outcome.
	Sample(ray core.Ray, tMax float64, u1 float64) (Interaction, core.Vec3, bool)

	// Transmittance returns the fraction of radiance surviving traversal
	// of the medium along ray up to distance t.
	Transmittance(ray core.Ray, t float64) core.Vec3
}

// Interface pairs the medium on either side of a primitive's surface; the
// integrator swaps between Inside and Outside depending on the sign of
// wo·n at a crossing.
type Interface struct {
	Inside  Medium
	Outside Medium
}

// None is the vacuum medium interface: no medium on either side.
func None() Interface {
	return Interface{}
}

// IsTransition reports whether crossing this interface changes the active
// medium (Inside and Outside differ).
func (i Interface) IsTransition() bool {
	return i.Inside != i.Outside
}
