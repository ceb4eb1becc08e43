// Package integrator implements the path-tracing estimator: the loop that
// turns a camera ray into a radiance estimate by walking the BVH, sampling
// materials and lights, and accounting for participating media along the
// way.
package integrator

import (
	"math"

	"github.com/aeonrender/photon/pkg/bsdf"
	"github.com/aeonrender/photon/pkg/core"
	"github.com/aeonrender/photon/pkg/light"
	"github.com/aeonrender/photon/pkg/material"
	"github.com/aeonrender/photon/pkg/medium"
	"github.com/aeonrender/photon/pkg/sampler"
	"github.com/aeonrender/photon/pkg/scene"
	"github.com/aeonrender/photon/pkg/shape"
)

// shadowEpsilon nudges shadow and continuation rays off the surface they
// originate from, matching the offset pkg/light uses for its own
// light-side shadow-ray origins.
const shadowEpsilon = 1e-4

// missT is the sentinel distance passed to the medium sampler when a ray
// escapes the scene entirely rather than hitting a surface.
const missT = 1e7

// PathTracer is the recursive-as-loop path integrator: next-event
// estimation at every smooth bounce, a fixed depth budget, and an
// optional homogeneous-medium pass. Depth is not spent on bounces through
// Null-flagged lobes, which exist solely to carry a ray across a medium
// boundary.
type PathTracer struct {
	MaxDepth   int
	Volumetric bool
}

// Li estimates radiance arriving along ray, starting in cameraMedium (nil
// for vacuum). s supplies every random number consumed along the path;
// stats records degenerate and traversal outcomes.
func (pt *PathTracer) Li(ray core.Ray, sc *scene.Scene, cameraMedium medium.Medium, s sampler.Sampler, stats *core.Stats) core.Vec3 {
	stats.IncPathsTraced()

	throughput := core.NewVec3(1, 1, 1)
	radiance := core.Vec3{}
	currentMedium := cameraMedium
	depth := 1

	for depth < pt.MaxDepth {
		var visited uint64
		prim, t, hit := sc.BVH.Hit(ray, shadowEpsilon, math.Inf(1), &visited)
		stats.AddBVHNodesVisited(visited)

		surfaceT := missT
		if hit {
			surfaceT = t
		}

		var mediumHit bool
		var mi medium.Interaction
		if pt.Volumetric && currentMedium != nil {
			var mediumWeight core.Vec3
			mi, mediumWeight, mediumHit = currentMedium.Sample(ray, surfaceT, s.Next1D())
			throughput = throughput.MultiplyVec(mediumWeight)
		}

		switch {
		case mediumHit:
			for _, lt := range sc.Lights {
				radiance = radiance.Add(pt.sampleMediumLight(sc, mi, ray, currentMedium, lt, s, throughput, stats))
			}

			ps := mi.PhaseFunction.Sample(mi.Wi, s.Next2D())
			ray = core.NewRay(mi.P, ps.Wo)

		case hit:
			sp, ok := prim.(*scene.Primitive)
			if !ok {
				return radiance
			}
			si := sp.SurfaceInteractionAt(ray, t)
			wi := ray.Direction.Negate()

			if sp.HasAreaLight() {
				radiance = radiance.Add(throughput.MultiplyVec(sc.Lights[sp.AreaLightIndex].Le(wi)))
				return radiance
			}

			mat := sc.Materials[sp.MaterialIndex]
			frame := material.ShadingFrame(si.Normal, si.DpDu)

			ms, ok := mat.Sample(wi, frame, s.Next1D(), s.Next2D())
			if !ok || hasNaN(ms.Weight) {
				stats.IncZeroRadiancePaths()
				return radiance
			}

			if ms.Flags.IsSmooth() {
				for _, lt := range sc.Lights {
					radiance = radiance.Add(pt.sampleSurfaceLight(sc, si, wi, mat, frame, lt, s, throughput, stats))
				}
			}

			throughput = throughput.MultiplyVec(ms.Weight)
			if throughput.IsZero() {
				return radiance
			}

			if ms.Flags.Has(bsdf.Null) {
				stats.IncNullBounces()
				ray = core.NewRay(si.Point.Add(ray.Direction.Multiply(shadowEpsilon)), ms.Wo)
				depth--
			} else {
				ray = core.NewRay(si.Point, ms.Wo)
			}
			currentMedium = nextMedium(sp.Medium, ms.Wo, si.GeometricNormal)

		default:
			for _, lt := range sc.Lights {
				if lt.IsEnvironment() {
					radiance = radiance.Add(throughput.MultiplyVec(lt.Le(ray.Direction)))
				}
			}
			return radiance
		}

		depth++
	}

	return radiance
}

// sampleMediumLight performs next-event estimation from a medium
// scattering point: beam transmittance through any intervening
// null-boundary geometry and media, weighted by the phase function.
func (pt *PathTracer) sampleMediumLight(
	sc *scene.Scene, mi medium.Interaction, ray core.Ray, currentMedium medium.Medium,
	lt light.Light, s sampler.Sampler, throughput core.Vec3, stats *core.Stats,
) core.Vec3 {
	ls := lt.Sample(mi.P, mi.Wi, s.Next2D())
	if ls.Li.IsZero() {
		return core.Vec3{}
	}

	tr, unoccluded := pt.transmittance(sc, ls.Visibility, currentMedium, stats)
	if !unoccluded {
		return core.Vec3{}
	}

	f := mi.PhaseFunction.Eval(mi.Wi, ls.Wi)
	cosine := ls.Wi.AbsDot(mi.Wi)
	return throughput.Multiply(f * cosine).MultiplyVec(ls.Li).MultiplyVec(tr)
}

// sampleSurfaceLight performs next-event estimation from a surface
// interaction: a single binary visibility test through the BVH, matching
// the simpler shadow-ray rule surface bounces use (no null-boundary
// traversal — only Smooth lobes ever reach here, and the shadow ray's own
// destination is a light sample, not a medium-crossing query).
func (pt *PathTracer) sampleSurfaceLight(
	sc *scene.Scene, si shape.SurfaceInteraction, wi core.Vec3, mat material.Material, frame core.Frame3,
	lt light.Light, s sampler.Sampler, throughput core.Vec3, stats *core.Stats,
) core.Vec3 {
	ls := lt.Sample(si.Point, si.Normal, s.Next2D())
	if ls.Li.IsZero() {
		return core.Vec3{}
	}

	if !pt.visible(sc, ls.Visibility, stats) {
		return core.Vec3{}
	}

	f := mat.Eval(wi, ls.Wi, frame)
	cosine := ls.Wi.AbsDot(si.Normal)
	return throughput.MultiplyVec(f).MultiplyVec(ls.Li).Multiply(cosine)
}

// visible is the plain binary shadow test: any closer hit than the
// light's own distance blocks it entirely.
func (pt *PathTracer) visible(sc *scene.Scene, vis light.Visibility, stats *core.Stats) bool {
	stats.IncShadowRaysTraced()
	dist := vis.End.Subtract(vis.Ray.Origin).Length()
	return !sc.BVH.IntersectP(vis.Ray, shadowEpsilon, dist-shadowEpsilon)
}

// transmittance walks a shadow ray from a medium-scattering point toward
// a sampled light, skipping past any Null-BSDF boundary it crosses and
// accumulating the medium's transmittance over each traversed segment.
// It short-circuits to fully occluded the moment it meets a non-null
// surface, since that surface is opaque to this query by construction.
func (pt *PathTracer) transmittance(sc *scene.Scene, vis light.Visibility, currentMedium medium.Medium, stats *core.Stats) (core.Vec3, bool) {
	tr := core.NewVec3(1, 1, 1)
	ray := vis.Ray
	remaining := vis.End.Subtract(ray.Origin).Length()

	for {
		stats.IncShadowRaysTraced()
		var visited uint64
		prim, t, hit := sc.BVH.Hit(ray, shadowEpsilon, remaining-shadowEpsilon, &visited)
		stats.AddBVHNodesVisited(visited)

		segment := remaining
		if hit {
			segment = t
		}
		if currentMedium != nil {
			tr = tr.MultiplyVec(currentMedium.Transmittance(ray, segment))
		}

		if !hit {
			return tr, true
		}

		sp, ok := prim.(*scene.Primitive)
		if !ok || !isNullMaterial(sc.Materials[sp.MaterialIndex]) {
			return core.Vec3{}, false
		}

		si := sp.SurfaceInteractionAt(ray, t)
		currentMedium = nextMedium(sp.Medium, ray.Direction, si.GeometricNormal)

		traveled := si.Point.Subtract(ray.Origin).Length()
		remaining -= traveled
		ray = core.NewRay(si.Point.Add(ray.Direction.Multiply(shadowEpsilon)), ray.Direction)
		if remaining <= shadowEpsilon {
			return tr, true
		}
	}
}

// isNullMaterial reports whether m is the pass-through Null BSDF wrapped
// directly in a Direct material, the only shape a medium-boundary
// primitive's material takes in this module.
func isNullMaterial(m material.Material) bool {
	d, ok := m.(material.Direct)
	if !ok {
		return false
	}
	_, ok = d.BSDF.(bsdf.NullBSDF)
	return ok
}

func hasNaN(v core.Vec3) bool {
	return v.X != v.X || v.Y != v.Y || v.Z != v.Z
}

// nextMedium picks the medium a ray continues into after crossing iface's
// surface, by the sign of the outgoing direction against the geometric
// normal: wo on the same side as n means the ray is leaving through the
// front face into Outside, the opposite side means it's entering Inside.
func nextMedium(iface medium.Interface, wo, n core.Vec3) medium.Medium {
	if wo.Dot(n) > 0 {
		return iface.Outside
	}
	return iface.Inside
}
