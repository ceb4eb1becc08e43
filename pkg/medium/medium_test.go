package medium

import (
	"math"
	"math/rand"
	"testing"

	"github.com/aeonrender/photon/pkg/core"
)

func TestHomogeneousTransmittanceDecaysWithDistance(t *testing.T) {
	h := Homogeneous{PhaseFunction: Isotropic{}, Albedo: core.NewVec3(1, 1, 1), SigmaT: core.NewVec3(1, 1, 1), Scale: 1}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	near := h.Transmittance(ray, 1)
	far := h.Transmittance(ray, 5)
	if far.X >= near.X {
		t.Errorf("expected transmittance to decay with distance: near=%v far=%v", near, far)
	}
}

func TestHomogeneousSampleRespectsTMax(t *testing.T) {
	h := Homogeneous{PhaseFunction: Isotropic{}, Albedo: core.NewVec3(1, 1, 1), SigmaT: core.NewVec3(5, 5, 5), Scale: 5}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	_, _, ok := h.Sample(ray, 1e9, 0.99)
	if !ok {
		t.Error("expected a scattering event within a huge tMax")
	}
	_, _, ok = h.Sample(ray, 1e-9, 0.5)
	if ok {
		t.Error("expected no scattering event within a vanishingly small tMax")
	}
}

func TestIsotropicEvalIsConstant(t *testing.T) {
	var iso Isotropic
	f := iso.Eval(core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0))
	want := 1.0 / (4.0 * math.Pi)
	if math.Abs(f-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, f)
	}
}

func TestHenyeyGreensteinReducesToIsotropicAtZeroG(t *testing.T) {
	hg := HenyeyGreenstein{G: 0}
	iso := Isotropic{}
	wi := core.NewVec3(0, 0, 1)
	wo := core.NewVec3(0.3, 0.3, 0.9).Normalize()
	if math.Abs(hg.Eval(wi, wo)-iso.Eval(wi, wo)) > 1e-9 {
		t.Errorf("expected HG(g=0) to match isotropic eval")
	}
}

func TestHenyeyGreensteinSampleStaysOnUnitSphere(t *testing.T) {
	hg := HenyeyGreenstein{G: 0.7}
	r := rand.New(rand.NewSource(5))
	wi := core.NewVec3(0, 0, 1)
	for i := 0; i < 100; i++ {
		s := hg.Sample(wi, core.NewVec2(r.Float64(), r.Float64()))
		if math.Abs(s.Wo.Length()-1) > 1e-6 {
			t.Errorf("expected unit-length sampled direction, got length %f", s.Wo.Length())
		}
	}
}
