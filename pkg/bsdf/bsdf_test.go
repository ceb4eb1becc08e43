package bsdf

import (
	"math"
	"math/rand"
	"testing"

	"github.com/aeonrender/photon/pkg/core"
)

func TestLambertianSampleStaysInHemisphere(t *testing.T) {
	l := Lambertian{Albedo: core.NewVec3(0.8, 0.5, 0.3)}
	wi := core.NewVec3(0.3, 0.2, 0.9).Normalize()
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		s, ok := l.Sample(wi, r.Float64(), core.NewVec2(r.Float64(), r.Float64()))
		if !ok {
			t.Fatal("expected Lambertian sample to succeed")
		}
		if !core.SameHemisphere(wi, s.Wo) {
			t.Fatalf("sampled direction %v not in same hemisphere as wi %v", s.Wo, wi)
		}
		if s.Flags != DiffuseReflection {
			t.Errorf("expected DiffuseReflection flag, got %v", s.Flags)
		}
	}
}

func TestLambertianEvalMatchesAlbedoOverPi(t *testing.T) {
	l := Lambertian{Albedo: core.NewVec3(1, 1, 1)}
	wi := core.NewVec3(0, 0, 1)
	wo := core.NewVec3(0.1, 0.2, 0.97).Normalize()
	f := l.Eval(wi, wo)
	want := 1.0 / math.Pi
	if math.Abs(f.X-want) > 1e-9 {
		t.Errorf("expected %f, got %f", want, f.X)
	}
}

func TestDielectricSampleIsEitherReflectOrTransmit(t *testing.T) {
	d := Dielectric{Eta: 1.5, Tint: core.NewVec3(1, 1, 1)}
	wi := core.NewVec3(0, 0, 1)
	r := rand.New(rand.NewSource(2))
	sawReflect, sawTransmit := false, false
	for i := 0; i < 200; i++ {
		s, ok := d.Sample(wi, r.Float64(), core.NewVec2(r.Float64(), r.Float64()))
		if !ok {
			t.Fatal("expected dielectric sample to succeed")
		}
		if s.Flags == DeltaReflection {
			sawReflect = true
			if s.Wo.Z <= 0 {
				t.Errorf("reflected direction should stay on incident side, got %v", s.Wo)
			}
		} else if s.Flags == DeltaTransmission {
			sawTransmit = true
			if s.Wo.Z >= 0 {
				t.Errorf("transmitted direction should cross to the far side, got %v", s.Wo)
			}
		} else {
			t.Errorf("unexpected flags %v", s.Flags)
		}
	}
	if !sawReflect || !sawTransmit {
		t.Errorf("expected both reflection and transmission branches, got reflect=%v transmit=%v", sawReflect, sawTransmit)
	}
}

func TestDielectricEvalIsZero(t *testing.T) {
	d := Dielectric{Eta: 1.5, Tint: core.NewVec3(1, 1, 1)}
	f := d.Eval(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	if !f.IsZero() {
		t.Errorf("expected zero eval for a delta BSDF, got %v", f)
	}
}

func TestConductorSampleIsMirror(t *testing.T) {
	c := Conductor{Eta: core.NewVec3(0.2, 0.9, 1.1), K: core.NewVec3(3, 2.5, 2.0)}
	wi := core.NewVec3(0.3, 0.1, 0.9).Normalize()
	s, ok := c.Sample(wi, 0.5, core.NewVec2(0.5, 0.5))
	if !ok {
		t.Fatal("expected conductor sample to succeed")
	}
	want := core.NewVec3(-wi.X, -wi.Y, wi.Z)
	if !s.Wo.Equals(want) {
		t.Errorf("expected mirror reflection %v, got %v", want, s.Wo)
	}
	if s.Flags != DeltaReflection {
		t.Errorf("expected DeltaReflection, got %v", s.Flags)
	}
}

func TestRoughPlasticDiffuseFresnelCompensationBranches(t *testing.T) {
	below := diffuseFresnelReflectance(0.8)
	above := diffuseFresnelReflectance(1.5)
	if below <= 0 || below >= 1 {
		t.Errorf("expected Fdr in (0,1) for eta<1, got %f", below)
	}
	if above <= 0 || above >= 1 {
		t.Errorf("expected Fdr in (0,1) for eta>=1, got %f", above)
	}
}

func TestNullBSDFPassesThroughUnperturbed(t *testing.T) {
	var n NullBSDF
	wi := core.NewVec3(0.3, 0.4, 0.866)
	s, ok := n.Sample(wi, 0.5, core.NewVec2(0.1, 0.1))
	if !ok {
		t.Fatal("expected null sample to succeed")
	}
	if !s.Wo.Equals(wi.Negate()) {
		t.Errorf("expected straight pass-through, got %v", s.Wo)
	}
	if s.Flags != Null {
		t.Errorf("expected Null flag, got %v", s.Flags)
	}
}

func TestFlagsSmoothAndDeltaMasks(t *testing.T) {
	if !DiffuseReflection.IsSmooth() {
		t.Error("DiffuseReflection should be Smooth")
	}
	if !DeltaReflection.IsDelta() {
		t.Error("DeltaReflection should be Delta")
	}
	if Null.IsSmooth() || Null.IsDelta() {
		t.Error("Null should be neither Smooth nor Delta")
	}
}
