package medium

import (
	"math"

	"github.com/aeonrender/photon/pkg/core"
)

// Homogeneous is a medium with spatially-uniform scattering properties:
// an albedo (single-scattering color), an extinction coefficient sigmaT
// per channel, a distance scale, and the phase function governing
// direction change at a scattering event.
type Homogeneous struct {
	PhaseFunction PhaseFunction
	Albedo        core.Vec3
	SigmaT        core.Vec3
	Scale         float64
}

// Transmittance is albedo * exp(-sigma_t * min(t, inf) * |d|): the
// fraction of radiance surviving a segment of length t*|ray.Direction|
// through the medium.
func (h Homogeneous) Transmittance(ray core.Ray, t float64) core.Vec3 {
	if math.IsInf(t, 1) {
		t = math.MaxFloat64
	}
	dirLen := ray.Direction.Length()
	ex := math.Exp(-h.SigmaT.X * t * dirLen)
	ey := math.Exp(-h.SigmaT.Y * t * dirLen)
	ez := math.Exp(-h.SigmaT.Z * t * dirLen)
	return h.Albedo.MultiplyVec(core.NewVec3(ex, ey, ez))
}

// Sample draws a scattering distance along ray: dist = -ln(1-u1)/scale,
// t = dist / (|d| * sigma_t.y). If t falls short of tMax, a scattering
// event is returned at that point along with the transmittance weight up
// to it; otherwise the ray reaches the surface/escape point unscattered.
func (h Homogeneous) Sample(ray core.Ray, tMax float64, u1 float64) (Interaction, core.Vec3, bool) {
	dist := -math.Log(1 - u1) / h.Scale
	dirLen := ray.Direction.Length()
	t := dist / (dirLen * h.SigmaT.Y)

	if t < tMax {
		return Interaction{
			P:             ray.At(t),
			Wi:            ray.Direction.Negate(),
			PhaseFunction: h.PhaseFunction,
		}, h.Transmittance(ray, t), true
	}
	return Interaction{}, h.Transmittance(ray, tMax), false
}
