// Package material implements the world-space shading wrapper around a
// BSDF: the sole place a world-space direction is converted to and from
// the local shading frame a BSDF operates in.
package material

import (
	"github.com/aeonrender/photon/pkg/bsdf"
	"github.com/aeonrender/photon/pkg/core"
)

// Sample is a world-space scattering event: the sampled world direction,
// the lobe flags, and the BSDF's already-divided Monte Carlo weight.
type Sample struct {
	Wo     core.Vec3
	Flags  bsdf.Flags
	Weight core.Vec3
}

// Material is a world-space scattering model at a surface point. Direct
// wraps a single BSDF; Mix blends two by a scalar mask.
type Material interface {
	Sample(wi core.Vec3, shadingFrame core.Frame3, u1 float64, u2 core.Vec2) (Sample, bool)
	Eval(wi, wo core.Vec3, shadingFrame core.Frame3) core.Vec3
	PDF(wi, wo core.Vec3, shadingFrame core.Frame3) float64
}

// ShadingFrame builds the (s, t, n) basis a material converts directions
// through: Gram-Schmidt orthogonalized from the interpolated shading
// normal and the UV-derivative tangent ∂p/∂u, falling back to the
// branchless normal-only construction when the tangent vanishes or is
// degenerate (near-singular UV parameterization, a pole, a flat-shaded
// sphere).
func ShadingFrame(normal, dpdu core.Vec3) core.Frame3 {
	if dpdu.LengthSquared() < 1e-12 {
		return core.NewFrame3(normal)
	}
	return core.NewFrame3FromTangent(normal, dpdu)
}

// Direct wraps a single BSDF and performs the world<->shading-frame change
// of basis on every call; it is the only Material that talks to the BSDF
// interface directly.
type Direct struct {
	BSDF bsdf.BSDF
}

func (d Direct) Sample(wi core.Vec3, frame core.Frame3, u1 float64, u2 core.Vec2) (Sample, bool) {
	localWi := frame.ToLocal(wi)
	s, ok := d.BSDF.Sample(localWi, u1, u2)
	if !ok {
		return Sample{}, false
	}
	return Sample{Wo: frame.ToWorld(s.Wo), Flags: s.Flags, Weight: s.Weight}, true
}

func (d Direct) Eval(wi, wo core.Vec3, frame core.Frame3) core.Vec3 {
	return d.BSDF.Eval(frame.ToLocal(wi), frame.ToLocal(wo))
}

func (d Direct) PDF(wi, wo core.Vec3, frame core.Frame3) float64 {
	return d.BSDF.PDF(frame.ToLocal(wi), frame.ToLocal(wo))
}

// Mix blends two child materials by a scalar mask in [0,1]: 0 picks A
// entirely, 1 picks B entirely, short-circuiting to the pure branch at
// either extreme rather than always paying for a stochastic choice.
type Mix struct {
	A, B Material
	Mask float64
}

func (m Mix) Sample(wi core.Vec3, frame core.Frame3, u1 float64, u2 core.Vec2) (Sample, bool) {
	if m.Mask <= 0 {
		return m.A.Sample(wi, frame, u1, u2)
	}
	if m.Mask >= 1 {
		return m.B.Sample(wi, frame, u1, u2)
	}
	if u1 < m.Mask {
		// Rescale u1 into [0,1) for the chosen branch so its own sampling
		// remains stratified rather than biased towards the low end.
		rescaled := u1 / m.Mask
		return m.B.Sample(wi, frame, rescaled, u2)
	}
	rescaled := (u1 - m.Mask) / (1 - m.Mask)
	return m.A.Sample(wi, frame, rescaled, u2)
}

func (m Mix) Eval(wi, wo core.Vec3, frame core.Frame3) core.Vec3 {
	a := m.A.Eval(wi, wo, frame)
	b := m.B.Eval(wi, wo, frame)
	return a.Multiply(1 - m.Mask).Add(b.Multiply(m.Mask))
}

func (m Mix) PDF(wi, wo core.Vec3, frame core.Frame3) float64 {
	return (1-m.Mask)*m.A.PDF(wi, wo, frame) + m.Mask*m.B.PDF(wi, wo, frame)
}
