package light

import (
	"math"
	"testing"

	"github.com/aeonrender/photon/pkg/core"
)

func TestPointLightDirectionAndVisibility(t *testing.T) {
	p := Point{P: core.NewVec3(1, 1, 1), Radiance: core.NewVec3(5, 5, 5)}
	s := p.Sample(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec2(0, 0))
	want := core.NewVec3(1, 1, 1).Normalize()
	if !s.Wi.Equals(want) {
		t.Errorf("expected direction %v, got %v", want, s.Wi)
	}
	if !s.Visibility.End.Equals(p.P) {
		t.Errorf("expected visibility endpoint at light position, got %v", s.Visibility.End)
	}
}

func TestDistantLightHasNoFalloff(t *testing.T) {
	d := NewDistant(core.NewVec3(0, -1, 0), core.NewVec3(2, 2, 2))
	s1 := d.Sample(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), core.NewVec2(0, 0))
	s2 := d.Sample(core.NewVec3(100, 0, 0), core.NewVec3(0, 1, 0), core.NewVec2(0, 0))
	if !s1.Li.Equals(s2.Li) {
		t.Errorf("distant light radiance should not depend on position: %v vs %v", s1.Li, s2.Li)
	}
}

func TestSpotFalloffZeroOutsideWidth(t *testing.T) {
	s := NewSpot(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 30, 25)
	outside := core.NewVec3(math.Sin(math.Pi/2), 0, math.Cos(math.Pi/2))
	f := s.Le(outside)
	if !f.IsZero() {
		t.Errorf("expected zero radiance outside the cone, got %v", f)
	}
	inside := core.NewVec3(0, 0, 1)
	f = s.Le(inside)
	if f.X != 1 {
		t.Errorf("expected full radiance on-axis, got %v", f)
	}
}

func TestEnvironmentIsEnvironment(t *testing.T) {
	e := Environment{Radiance: ConstantTexture{Value: core.NewVec3(1, 1, 1)}}
	if !e.IsEnvironment() {
		t.Error("expected environment light to report IsEnvironment")
	}
	l := e.Le(core.NewVec3(0, 1, 0))
	if !l.Equals(core.NewVec3(1, 1, 1)) {
		t.Errorf("expected constant white, got %v", l)
	}
}

type fixedAreaShape struct {
	point, normal core.Vec3
}

func (f fixedAreaShape) UniformSample(u core.Vec2) (core.Vec3, core.Vec3, float64) {
	return f.point, f.normal, 1.0
}

func TestAreaLightSamplesShapeSurface(t *testing.T) {
	a := Area{Shape: fixedAreaShape{point: core.NewVec3(0, 1, 0), normal: core.NewVec3(0, -1, 0)}, Radiance: core.NewVec3(3, 3, 3)}
	s := a.Sample(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), core.NewVec2(0.5, 0.5))
	if !s.Visibility.End.Equals(core.NewVec3(0, 1, 0)) {
		t.Errorf("expected visibility endpoint at sampled shape point, got %v", s.Visibility.End)
	}
	if s.Li.X != 3 {
		t.Errorf("expected area light radiance, got %v", s.Li)
	}
}
