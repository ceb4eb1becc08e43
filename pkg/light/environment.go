package light

import (
	"math"

	"github.com/aeonrender/photon/pkg/core"
)

// EnvironmentTexture is the minimal collaborator an Environment light
// needs: evaluate a 2D texture at an equirectangular UV coordinate. The
// named-interface-only image/texture loading machinery lives in
// pkg/loaders.
type EnvironmentTexture interface {
	EvalUV(uv core.Vec2) core.Vec3
}

// ConstantTexture is the trivial EnvironmentTexture used for uniform
// environment lighting.
type ConstantTexture struct {
	Value core.Vec3
}

func (c ConstantTexture) EvalUV(uv core.Vec2) core.Vec3 { return c.Value }

// Environment is an infinite light indexed by an equirectangular texture.
// It is reached by rays that escape the scene entirely (IsEnvironment is
// true), unlike every other light variant.
type Environment struct {
	Radiance EnvironmentTexture
}

func (e Environment) IsEnvironment() bool { return true }

// Le evaluates the environment texture at the UV an equirectangular
// mapping derives from a world-space direction: (atan2(z,x)/2π + 0.5,
// asin(y)/π + 0.5).
func (e Environment) Le(wi core.Vec3) core.Vec3 {
	u := math.Atan2(wi.Z, wi.X)/(2*math.Pi) + 0.5
	v := math.Asin(clampUnit(wi.Y))/math.Pi + 0.5
	return e.Radiance.EvalUV(core.NewVec2(u, v))
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

// Sample draws a uniform hemisphere direction above the shading normal.
// Importance sampling the map itself would reduce variance further but
// isn't implemented here.
func (e Environment) Sample(p, n core.Vec3, u core.Vec2) Sample {
	frame := core.NewFrame3(n)
	local := core.SquareToUniformHemisphere(u)
	wi := frame.ToWorld(local).Normalize()
	if wi.Dot(n) < 0 {
		wi = wi.Negate()
	}
	return Sample{
		Wi: wi,
		Li: e.Le(wi),
		Visibility: Visibility{
			Ray: core.NewRay(faceForwardOffset(p, n, wi), wi),
			End: p.Add(wi.Multiply(1e7)),
		},
	}
}
