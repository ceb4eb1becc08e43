package light

import "github.com/aeonrender/photon/pkg/core"

// AreaShape is the subset of shape.Shape an Area light needs to draw a
// point on its emitting surface; kept as a narrow local interface so this
// package doesn't need to import pkg/shape for one method.
type AreaShape interface {
	UniformSample(u core.Vec2) (point, normal core.Vec3, pdfArea float64)
}

// Area wraps a primitive's shape as an emitter: constant outgoing
// radiance over the whole surface, sampled via the shape's own uniform
// surface sample.
type Area struct {
	Shape    AreaShape
	Radiance core.Vec3
}

func (a Area) IsEnvironment() bool { return false }

func (a Area) Le(wi core.Vec3) core.Vec3 { return a.Radiance }

func (a Area) Sample(p, n core.Vec3, u core.Vec2) Sample {
	samplePoint, _, _ := a.Shape.UniformSample(u)
	wi := samplePoint.Subtract(p).Normalize()
	ffWi := wi
	if wi.Dot(n) < 0 {
		ffWi = wi.Negate()
	}
	origin := faceForwardOffset(p, n, ffWi)
	return Sample{
		Wi: ffWi,
		Li: a.Le(ffWi),
		Visibility: Visibility{
			Ray: core.NewRay(origin, ffWi),
			End: samplePoint,
		},
	}
}
