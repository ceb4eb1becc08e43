package light

import (
	"math"

	"github.com/aeonrender/photon/pkg/core"
)

// Point is an idealized point emitter: Le returns the stored radiance, and
// Sample divides it by the squared distance to the shading point.
type Point struct {
	P        core.Vec3
	Radiance core.Vec3
}

func (p Point) IsEnvironment() bool { return false }

func (p Point) Le(wi core.Vec3) core.Vec3 { return p.Radiance }

func (p Point) Sample(point, n core.Vec3, u core.Vec2) Sample {
	wi := p.P.Subtract(point).Normalize()
	distSq := p.P.Subtract(point).LengthSquared()
	origin := faceForwardOffset(point, n, wi)
	return Sample{
		Wi: wi,
		Li: p.Le(wi).Multiply(1 / math.Max(distSq, 1e-12)),
		Visibility: Visibility{
			Ray: core.NewRay(origin, wi),
			End: p.P,
		},
	}
}
