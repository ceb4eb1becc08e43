// Package camera implements the perspective thin-lens camera that turns a
// film sample into a world-space ray.
package camera

import (
	"math"

	"github.com/aeonrender/photon/pkg/core"
	"github.com/aeonrender/photon/pkg/medium"
)

// Sample is a request to generate one ray: pFilm is in raster coordinates
// (0..width, 0..height), pLens is in [0,1)^2.
type Sample struct {
	PFilm core.Vec2
	PLens core.Vec2
}

// Perspective is a thin-lens perspective camera. A zero LensRadius
// degenerates to a pinhole camera.
type Perspective struct {
	rasterToCamera core.Transform
	cameraToWorld  core.Transform
	LensRadius     float64
	FocalDistance  float64
	Medium         medium.Medium
}

// NewPerspective builds a Perspective camera. fovRadians is the vertical
// field of view; width/height are the film's pixel extent; cameraToWorld
// places the camera in the scene.
func NewPerspective(width, height int, fovRadians float64, cameraToWorld core.Transform, lensRadius, focalDistance float64, med medium.Medium) Perspective {
	const near = 0.001
	const far = 1.0

	aspect := float64(width) / float64(height)
	cameraToScreen := perspectiveProjection(fovRadians, aspect, near, far)

	screenMin := core.NewVec2(-1, -1)
	screenMax := core.NewVec2(1, 1)

	screenToRaster := core.Translate(core.NewVec3(-screenMin.X, -screenMax.Y, 0)).
		Compose(core.Scale(core.NewVec3(
			1/(screenMax.X-screenMin.X),
			1/(screenMin.Y-screenMax.Y),
			1,
		))).
		Compose(core.Scale(core.NewVec3(float64(width), float64(height), 1)))

	rasterToCamera := cameraToScreen.Inverse().Compose(screenToRaster.Inverse())

	return Perspective{
		rasterToCamera: rasterToCamera,
		cameraToWorld:  cameraToWorld,
		LensRadius:     lensRadius,
		FocalDistance:  focalDistance,
		Medium:         med,
	}
}

// perspectiveProjection builds a right-handed perspective projection from
// camera space onto the [-1,1]^2 screen window at z=near.
func perspectiveProjection(fovRadians, aspect, near, far float64) core.Transform {
	invTan := 1.0 / math.Tan(fovRadians/2.0)

	var m core.Mat4
	m[0][0] = invTan / aspect
	m[1][1] = invTan
	m[2][2] = far / (far - near)
	m[2][3] = -far * near / (far - near)
	m[3][2] = 1
	return core.NewTransform(m)
}

// GenerateRay produces a world-space ray for the given film/lens sample.
func (p Perspective) GenerateRay(s Sample) core.Ray {
	pCamera := p.rasterToCamera.Point(core.NewVec3(s.PFilm.X, s.PFilm.Y, 0))

	ray := core.NewRay(core.NewVec3(0, 0, 0), pCamera.Normalize())

	if p.LensRadius > 0 {
		pLens := core.SquareToUniformDiskConcentric(s.PLens).Multiply(p.LensRadius)

		ft := p.FocalDistance / ray.Direction.Z
		focus := ray.At(ft)

		ray.Origin = core.NewVec3(pLens.X, pLens.Y, 0)
		ray.Direction = focus.Subtract(ray.Origin).Normalize()
	}

	return p.cameraToWorld.Ray(ray)
}
