package medium

import (
	"math"

	"github.com/aeonrender/photon/pkg/core"
)

// PhaseFunctionSample is a drawn scattering direction inside a medium.
type PhaseFunctionSample struct {
	Wo core.Vec3
}

// PhaseFunction governs the distribution of scattered directions at a
// medium interaction, analogous to a BSDF but over the full sphere rather
// than a hemisphere.
type PhaseFunction interface {
	Sample(wi core.Vec3, u core.Vec2) PhaseFunctionSample
	Eval(wi, wo core.Vec3) float64
}

// Isotropic scatters uniformly over the full sphere: eval = 1/(4*pi)
// everywhere, independent of direction.
type Isotropic struct{}

func (Isotropic) Sample(wi core.Vec3, u core.Vec2) PhaseFunctionSample {
	return PhaseFunctionSample{Wo: core.SquareToUniformSphere(u)}
}

func (Isotropic) Eval(wi, wo core.Vec3) float64 {
	return 1.0 / (4.0 * math.Pi)
}

// HenyeyGreenstein is the classic single-parameter anisotropic phase
// function: g>0 favors forward scattering, g<0 favors back-scattering,
// g=0 reduces to isotropic (callers should prefer Isotropic directly in
// that case, as the original notes, since it's cheaper).
type HenyeyGreenstein struct {
	G float64
}

func (h HenyeyGreenstein) hg(cosTheta float64) float64 {
	denom := 1 + h.G*h.G + 2*h.G*cosTheta
	return (1.0 / (4.0 * math.Pi)) * (1 - h.G*h.G) / (denom * math.Sqrt(denom))
}

func (h HenyeyGreenstein) Eval(wi, wo core.Vec3) float64 {
	return h.hg(wi.Dot(wo))
}

func (h HenyeyGreenstein) Sample(wi core.Vec3, u core.Vec2) PhaseFunctionSample {
	var cosTheta float64
	if math.Abs(h.G) < 1e-3 {
		cosTheta = 1 - 2*u.X
	} else {
		sq := (1 - h.G*h.G) / (1 + h.G - 2*h.G*u.X)
		cosTheta = -(1 + h.G*h.G - sq*sq) / (2 * h.G)
	}
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u.Y

	// Build a local frame around -wi (the direction the phase function
	// scatters relative to, matching the medium's incoming-ray
	// convention) and place the sampled direction within it.
	forward := wi.Negate()
	frame := core.NewFrame3(forward)
	local := core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
	return PhaseFunctionSample{Wo: frame.ToWorld(local)}
}
