package bsdf

import (
	"math"

	"github.com/aeonrender/photon/pkg/core"
	"github.com/aeonrender/photon/pkg/warp"
)

// MeasuredData holds the tabulated distributions a Measured BSDF samples
// and evaluates through, loaded from a tensor-file container (pkg/loaders)
// into the five Marginal2D tables the adapted brdf-loader format uses:
// a microfacet normal distribution and its projected area (ndf, sigma,
// unconditioned), the visible-normal and luminance distributions
// conditioned on incident direction, and the per-channel color table
// additionally conditioned on the RGB channel index.
type MeasuredData struct {
	NDF        *warp.Marginal2D
	Sigma      *warp.Marginal2D
	VNDF       *warp.Marginal2D
	Luminance  *warp.Marginal2D
	RGB        *warp.Marginal2D
	Isotropic  bool
}

// Measured is a tabulated BRDF captured from a physical material sample,
// importance-sampled through its own visible-normal distribution rather
// than an analytic microfacet model.
type Measured struct {
	Data *MeasuredData
}

func sphericalTheta(v core.Vec3) float64 {
	return math.Acos(clampUnit(v.Z))
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func reflectAcross(wi, wm core.Vec3) core.Vec3 {
	return wm.Multiply(2 * wi.Dot(wm)).Subtract(wi)
}

func (m Measured) Sample(wi core.Vec3, u1 float64, u2 core.Vec2) (Sample, bool) {
	flip := wi.Z <= 0
	if flip {
		wi = wi.Negate()
	}

	thetaI := sphericalTheta(wi)
	phiI := math.Atan2(wi.Y, wi.X)
	params := []float64{phiI, thetaI}

	// The Rust original swaps (u1,u2) components here to match the
	// marginal/conditional axis order the tables were built with.
	sample := [2]float64{u2.Y, u2.X}

	lumSample, lumPdf := m.Data.Luminance.Sample(sample, params)
	uWm, ndfPdf := m.Data.VNDF.Sample(lumSample, params)

	phiM := warp.U2Phi(uWm[1])
	if m.Data.Isotropic {
		phiM += phiI
	}
	thetaM := warp.U2Theta(uWm[0])

	sinPhiM, cosPhiM := math.Sincos(phiM)
	sinThetaM, cosThetaM := math.Sincos(thetaM)

	wm := core.NewVec3(cosPhiM*sinThetaM, sinPhiM*sinThetaM, cosThetaM)
	wo := reflectAcross(wi, wm)

	if wo.Z <= 0 {
		return Sample{}, false
	}
	if flip {
		wo = wo.Negate()
	}

	uWi := [2]float64{warp.Theta2U(thetaI), warp.Phi2U(phiI)}

	fr := core.Vec3{}
	for i := 0; i < 3; i++ {
		paramsFr := []float64{phiI, thetaI, float64(i)}
		v := math.Max(0, m.Data.RGB.Eval(lumSample, paramsFr))
		switch i {
		case 0:
			fr.X = v
		case 1:
			fr.Y = v
		case 2:
			fr.Z = v
		}
	}

	scale := m.Data.NDF.Eval(uWm, params) / (4.0 * m.Data.Sigma.Eval(uWi, params))
	fr = fr.Multiply(scale)

	jacobian := math.Max(2*math.Pi*math.Pi*uWm[0]*sinThetaM, 1e-6) * 4.0 * wi.Dot(wm)
	pdf := ndfPdf * lumPdf / jacobian
	if pdf <= 0 || math.IsNaN(pdf) {
		return Sample{}, false
	}

	return Sample{Wo: wo, Flags: DiffuseReflection, Weight: fr.Multiply(1 / pdf)}, true
}

func (m Measured) Eval(wi, wo core.Vec3) core.Vec3 {
	if wo.Z*wi.Z < 0 {
		return core.Vec3{}
	}
	if wo.Z < 0 {
		wo = wo.Negate()
		wi = wi.Negate()
	}

	wm := wi.Add(wo)
	if wm.LengthSquared() == 0 {
		return core.Vec3{}
	}
	wm = wm.Normalize()

	thetaI := sphericalTheta(wi)
	phiI := math.Atan2(wi.Y, wi.X)
	thetaM := sphericalTheta(wm)
	phiM := math.Atan2(wm.Y, wm.X)

	uWi := [2]float64{warp.Theta2U(thetaI), warp.Phi2U(phiI)}
	phiDiff := phiM
	if m.Data.Isotropic {
		phiDiff = phiM - phiI
	}
	uWm := [2]float64{warp.Theta2U(thetaM), warp.Fract(warp.Phi2U(phiDiff))}

	params := []float64{phiI, thetaI}
	sample, _ := m.Data.VNDF.Invert(uWm, params)

	fr := core.Vec3{}
	for i := 0; i < 3; i++ {
		paramsFr := []float64{phiI, thetaI, float64(i)}
		v := math.Max(0, m.Data.RGB.Eval(sample, paramsFr))
		switch i {
		case 0:
			fr.X = v
		case 1:
			fr.Y = v
		case 2:
			fr.Z = v
		}
	}

	scale := m.Data.NDF.Eval(uWm, params) / (4.0 * m.Data.Sigma.Eval(uWi, params))
	return fr.Multiply(scale)
}

func (m Measured) PDF(wi, wo core.Vec3) float64 {
	// The table's pdf is only produced as a byproduct of Sample; treating
	// it as a Smooth-but-unweighted lobe for MIS purposes is the
	// conservative choice the original leaves as a documented limitation.
	return 0
}

func (m Measured) Flags() Flags {
	return DiffuseReflection
}
