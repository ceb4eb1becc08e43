package scene

import (
	"github.com/aeonrender/photon/pkg/accel"
	"github.com/aeonrender/photon/pkg/camera"
	"github.com/aeonrender/photon/pkg/core"
	"github.com/aeonrender/photon/pkg/light"
	"github.com/aeonrender/photon/pkg/material"
)

// Scene is the fully-built, immutable input to the path integrator: every
// primitive, registered in both the BVH and (for area lights) the light
// array; every material a primitive's MaterialIndex can point into; the
// camera generating primary rays. A Builder assembles one once; nothing
// mutates it afterward.
type Scene struct {
	BVH       *accel.BVH
	Materials []material.Material
	Lights    []light.Light
	Camera    camera.Perspective
	// Width and Height are the film resolution the camera was built for,
	// 0 when a Builder never called SetResolution (callers that already
	// track their own output dimensions, like the renderer tests, can
	// ignore these).
	Width, Height int
}

// Builder accumulates primitives, materials, and lights before a final
// Build() flattens them into a Scene, shared by every scene-construction
// path (cornell.go, the PBRT loader) instead of one bespoke struct literal
// per scene.
type Builder struct {
	primitives    []*Primitive
	materials     []material.Material
	lights        []light.Light
	cam           camera.Perspective
	width, height int
}

// SetResolution records the film resolution the scene's camera was built
// for, so a caller that only has a *Scene (not the PBRT film statement or
// CameraOverride that produced it) can still size a Film/Renderer.
func (b *Builder) SetResolution(width, height int) {
	b.width, b.height = width, height
}

// NewBuilder starts an empty scene builder for the given camera.
func NewBuilder(cam camera.Perspective) *Builder {
	return &Builder{cam: cam}
}

// AddMaterial registers a material, returning its index for use in
// AddPrimitive.
func (b *Builder) AddMaterial(m material.Material) int {
	b.materials = append(b.materials, m)
	return len(b.materials) - 1
}

// AddPrimitive registers a non-emissive primitive, returning its index.
func (b *Builder) AddPrimitive(p *Primitive) int {
	p.AreaLightIndex = -1
	b.primitives = append(b.primitives, p)
	return len(b.primitives) - 1
}

// AddAreaLight registers p as a primitive and, simultaneously, as an area
// light of the given radiance: p.AreaLightIndex is set to the new light's
// index so the integrator can look up its emission when a camera ray hits
// it directly, keeping the primitive's area-light reference and its
// AreaLightIndex in agreement.
func (b *Builder) AddAreaLight(p *Primitive, radiance core.Vec3) int {
	idx := b.AddPrimitive(p)
	lightIdx := len(b.lights)
	b.lights = append(b.lights, light.Area{Shape: p, Radiance: radiance})
	b.primitives[idx].AreaLightIndex = lightIdx
	return lightIdx
}

// AddLight registers a non-geometric light (point, distant, spot, environment).
func (b *Builder) AddLight(l light.Light) int {
	b.lights = append(b.lights, l)
	return len(b.lights) - 1
}

// Build flattens the accumulated primitives into a BVH and returns the
// immutable Scene. No further mutation through Builder is expected to
// affect a Scene already built from it.
func (b *Builder) Build() *Scene {
	accelPrims := make([]accel.Primitive, len(b.primitives))
	for i, p := range b.primitives {
		accelPrims[i] = p
	}
	return &Scene{
		BVH:       accel.Build(accelPrims),
		Materials: append([]material.Material(nil), b.materials...),
		Lights:    append([]light.Light(nil), b.lights...),
		Camera:    b.cam,
		Width:     b.width,
		Height:    b.height,
	}
}
