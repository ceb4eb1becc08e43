package scene

import (
	"math"

	"github.com/aeonrender/photon/pkg/bsdf"
	"github.com/aeonrender/photon/pkg/camera"
	"github.com/aeonrender/photon/pkg/core"
	"github.com/aeonrender/photon/pkg/material"
	"github.com/aeonrender/photon/pkg/medium"
	"github.com/aeonrender/photon/pkg/shape"
)

// addBakedTriangles registers each triangle in tris as its own primitive,
// baking worldTransform into its object-space vertex data up front (every
// Triangle supports baking) rather than carrying a per-primitive
// WorldToObject.
func (b *Builder) addBakedTriangles(tris []*shape.Triangle, worldTransform core.Transform, materialIdx int) {
	for _, t := range tris {
		t.BakeTransform(worldTransform)
		b.AddPrimitive(&Primitive{Shape: t, MaterialIndex: materialIdx, Medium: medium.None()})
	}
}

// NewCornellBox builds the classic Cornell box test scene: five Lambertian
// quad walls, a quad area light set into the ceiling, a conductor sphere,
// and a dielectric sphere.
func NewCornellBox() *Scene {
	const boxSize = 555.0

	eye := core.NewVec3(278, 278, -800)
	lookAt := core.NewVec3(278, 278, 0)
	cameraToWorld := lookAtTransform(eye, lookAt, core.NewVec3(0, 1, 0))

	cam := camera.NewPerspective(400, 400, 40.0*math.Pi/180.0, cameraToWorld, 0, 1, nil)
	b := NewBuilder(cam)
	b.SetResolution(400, 400)

	white := b.AddMaterial(material.Direct{BSDF: bsdf.Lambertian{Albedo: core.NewVec3(0.73, 0.73, 0.73)}})
	red := b.AddMaterial(material.Direct{BSDF: bsdf.Lambertian{Albedo: core.NewVec3(0.65, 0.05, 0.05)}})
	green := b.AddMaterial(material.Direct{BSDF: bsdf.Lambertian{Albedo: core.NewVec3(0.12, 0.45, 0.15)}})

	identity := core.Identity()

	floor := shape.BuildQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize))
	ceiling := shape.BuildQuad(core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize))
	backWall := shape.BuildQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0))
	leftWall := shape.BuildQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0))
	rightWall := shape.BuildQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize))

	b.addBakedTriangles(floor[:], identity, white)
	b.addBakedTriangles(ceiling[:], identity, white)
	b.addBakedTriangles(backWall[:], identity, white)
	b.addBakedTriangles(leftWall[:], identity, red)
	b.addBakedTriangles(rightWall[:], identity, green)

	lightSize := 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	lightQuad := shape.BuildQuad(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
	)
	radiance := core.NewVec3(15, 15, 15)
	for _, t := range lightQuad {
		b.AddAreaLight(&Primitive{Shape: t, MaterialIndex: white, Medium: medium.None()}, radiance)
	}

	metalMat := b.AddMaterial(material.Direct{BSDF: bsdf.Conductor{
		Eta: core.NewVec3(0.2, 0.92, 1.1),
		K:   core.NewVec3(3.9, 2.45, 2.14),
	}})
	glassMat := b.AddMaterial(material.Direct{BSDF: bsdf.Dielectric{Eta: 1.5, Tint: core.NewVec3(1, 1, 1)}})

	leftSphereCenter := core.NewVec3(185, 82.5, 169)
	leftSphereXform := core.Translate(leftSphereCenter)
	leftSphereInv := leftSphereXform.Inverse()
	b.AddPrimitive(&Primitive{
		Shape:         shape.NewSphere(82.5),
		MaterialIndex: metalMat,
		WorldToObject: &leftSphereInv,
		Medium:        medium.None(),
	})

	rightSphereCenter := core.NewVec3(370, 90, 351)
	rightSphereXform := core.Translate(rightSphereCenter)
	rightSphereInv := rightSphereXform.Inverse()
	b.AddPrimitive(&Primitive{
		Shape:         shape.NewSphere(90),
		MaterialIndex: glassMat,
		WorldToObject: &rightSphereInv,
		Medium:        medium.None(),
	})

	return b.Build()
}

// lookAtTransform builds a camera-to-world transform placing the camera at
// eye, looking toward target, with the given up hint — the standard
// look-at basis construction every example repo's camera builder uses.
func lookAtTransform(eye, target, up core.Vec3) core.Transform {
	forward := target.Subtract(eye).Normalize()
	right := up.Normalize().Cross(forward).Normalize()
	newUp := forward.Cross(right)

	var m core.Mat4
	m[0][0], m[0][1], m[0][2], m[0][3] = right.X, newUp.X, forward.X, eye.X
	m[1][0], m[1][1], m[1][2], m[1][3] = right.Y, newUp.Y, forward.Y, eye.Y
	m[2][0], m[2][1], m[2][2], m[2][3] = right.Z, newUp.Z, forward.Z, eye.Z
	m[3][0], m[3][1], m[3][2], m[3][3] = 0, 0, 0, 1

	return core.NewTransform(m)
}
