package light

import (
	"math"

	"github.com/aeonrender/photon/pkg/core"
)

// Spot is a point light clipped to a cone, with a smooth quartic falloff
// between cosFalloffStart (full intensity) and cosWidth (zero).
type Spot struct {
	P               core.Vec3
	Radiance        core.Vec3
	CosWidth        float64
	CosFalloffStart float64
	WorldToLight    core.Transform
	HasWorldToLight bool
}

// NewSpot builds a Spot from FOV-style angles in degrees, matching the
// convention the scene builder's cone-angle parameters use.
func NewSpot(p core.Vec3, radiance core.Vec3, widthDeg, falloffStartDeg float64) Spot {
	return Spot{
		P:               p,
		Radiance:        radiance,
		CosWidth:        math.Cos(widthDeg * math.Pi / 180),
		CosFalloffStart: math.Cos(falloffStartDeg * math.Pi / 180),
	}
}

func (s Spot) IsEnvironment() bool { return false }

// Le evaluates the falloff for a direction wi expressed in the light's own
// local frame (the direction the light is pointing down its +Z axis).
func (s Spot) Le(wi core.Vec3) core.Vec3 {
	wl := wi
	if s.HasWorldToLight {
		wl = s.WorldToLight.Vector(wi)
	}
	cosTheta := core.CosTheta(wl)

	var falloff float64
	switch {
	case cosTheta < s.CosWidth:
		falloff = 0
	case cosTheta >= s.CosFalloffStart:
		falloff = 1
	default:
		d := (cosTheta - s.CosWidth) / (s.CosFalloffStart - s.CosWidth)
		falloff = d * d * d * d
	}
	return s.Radiance.Multiply(falloff)
}

func (s Spot) Sample(p, n core.Vec3, u core.Vec2) Sample {
	wi := s.P.Subtract(p).Normalize()
	distSq := s.P.Subtract(p).LengthSquared()
	origin := faceForwardOffset(p, n, wi)
	return Sample{
		Wi: wi,
		Li: s.Le(wi.Negate()).Multiply(1 / math.Max(distSq, 1e-12)),
		Visibility: Visibility{
			Ray: core.NewRay(origin, wi),
			End: s.P,
		},
	}
}
