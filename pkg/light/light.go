// Package light implements the five light types a scene can contain:
// point, distant, spot, environment, and area. Every light exposes whether
// it behaves as an environment (reached by escaped rays rather than scene
// geometry), its emitted radiance along a queried direction, and a
// direct-sampling routine for next-event estimation.
package light

import "github.com/aeonrender/photon/pkg/core"

// Visibility is the shadow-ray/endpoint pair a sampled light returns so
// the integrator can test occlusion along the segment [ray.Origin, end].
type Visibility struct {
	Ray core.Ray
	End core.Vec3
}

// Sample is the result of sampling a light for direct illumination at a
// shading point: the incident direction, the light's radiance along it,
// and the visibility segment to test.
type Sample struct {
	Wi         core.Vec3
	Li         core.Vec3
	Visibility Visibility
}

// Light is the common interface every light variant implements.
type Light interface {
	IsEnvironment() bool
	Le(wi core.Vec3) core.Vec3
	Sample(p, n core.Vec3, u core.Vec2) Sample
}

// rayOffset nudges a shadow-ray origin along the face-forwarded normal to
// avoid immediate self-intersection at the originating surface.
const rayOffset = 1e-4

func faceForwardOffset(p, n, wi core.Vec3) core.Vec3 {
	ffn := n
	if n.Dot(wi) < 0 {
		ffn = n.Negate()
	}
	return p.Add(ffn.Multiply(rayOffset))
}
