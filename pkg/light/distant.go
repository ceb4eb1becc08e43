package light

import "github.com/aeonrender/photon/pkg/core"

// Distant is a directional light infinitely far away (sunlight): every
// shading point sees the same incident direction and there is no falloff.
type Distant struct {
	WLight   core.Vec3 // unit direction from a shading point toward the light, world space
	Radiance core.Vec3
}

func NewDistant(wLight, radiance core.Vec3) Distant {
	return Distant{WLight: wLight.Normalize(), Radiance: radiance}
}

func (d Distant) IsEnvironment() bool { return false }

func (d Distant) Le(wi core.Vec3) core.Vec3 { return d.Radiance }

func (d Distant) Sample(p, n core.Vec3, u core.Vec2) Sample {
	wi := d.WLight
	origin := faceForwardOffset(p, n, wi)
	return Sample{
		Wi: wi,
		Li: d.Le(wi),
		Visibility: Visibility{
			Ray: core.NewRay(origin, wi),
			End: p.Add(wi.Multiply(1e6)),
		},
	}
}
