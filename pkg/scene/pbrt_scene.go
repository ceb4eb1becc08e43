package scene

import (
	"fmt"
	"math"
	"strconv"

	"github.com/aeonrender/photon/pkg/bsdf"
	"github.com/aeonrender/photon/pkg/camera"
	"github.com/aeonrender/photon/pkg/core"
	"github.com/aeonrender/photon/pkg/light"
	"github.com/aeonrender/photon/pkg/loaders"
	"github.com/aeonrender/photon/pkg/material"
	"github.com/aeonrender/photon/pkg/medium"
	"github.com/aeonrender/photon/pkg/shape"
)

// CameraOverride lets a caller (the CLI, a test) force film resolution and
// field of view regardless of what a PBRT file declares.
type CameraOverride struct {
	Width, Height int
	FovDegrees    float64
}

// NewPBRTScene loads filename and converts it into a renderable Scene:
// top-level materials first, then top-level shapes (each resolved against
// its assigned material index), then top-level lights, and finally each
// AttributeBegin/AttributeEnd block's materials, shapes (including
// area-light overrides) and lights.
func NewPBRTScene(filename string, overrides ...CameraOverride) (*Scene, error) {
	pbrtScene, err := loaders.LoadPBRT(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load PBRT file: %w", err)
	}

	cam, width, height, err := convertCamera(pbrtScene, overrides...)
	if err != nil {
		return nil, fmt.Errorf("failed to convert camera: %w", err)
	}
	b := NewBuilder(cam)
	b.SetResolution(width, height)

	materials := make([]material.Material, len(pbrtScene.Materials))
	for i := range pbrtScene.Materials {
		mat, err := convertMaterial(&pbrtScene.Materials[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert material: %w", err)
		}
		materials[i] = mat
	}
	materialIdx := make([]int, len(materials))
	for i, m := range materials {
		materialIdx[i] = b.AddMaterial(m)
	}

	for i := range pbrtScene.Shapes {
		if err := addShape(b, &pbrtScene.Shapes[i], materialIdx); err != nil {
			return nil, fmt.Errorf("failed to convert shape: %w", err)
		}
	}

	for i := range pbrtScene.LightSources {
		stmt := &pbrtScene.LightSources[i]
		if stmt.Type == "AreaLightSource" {
			continue // handled as part of the shape it's attached to
		}
		l, err := convertLight(stmt)
		if err != nil {
			return nil, fmt.Errorf("failed to convert light: %w", err)
		}
		b.AddLight(l)
	}

	for i := range pbrtScene.Attributes {
		if err := addAttributeBlock(b, &pbrtScene.Attributes[i], materials, materialIdx); err != nil {
			return nil, fmt.Errorf("failed to process attribute block: %w", err)
		}
	}

	return b.Build(), nil
}

func convertCamera(pbrtScene *loaders.PBRTScene, overrides ...CameraOverride) (cam camera.Perspective, width, height int, err error) {
	eye := core.NewVec3(0, 0, 0)
	target := core.NewVec3(0, 0, -1)
	up := core.NewVec3(0, 1, 0)
	if pbrtScene.LookAt != nil && pbrtScene.LookAtTo != nil && pbrtScene.LookAtUp != nil {
		eye, target, up = *pbrtScene.LookAt, *pbrtScene.LookAtTo, *pbrtScene.LookAtUp
	}

	fovDegrees := 90.0
	if pbrtScene.Camera != nil && pbrtScene.Camera.Subtype == "perspective" {
		if fov, ok := pbrtScene.Camera.GetFloatParam("fov"); ok {
			if fov <= 0 || fov >= 180 {
				return camera.Perspective{}, 0, 0, fmt.Errorf("invalid camera fov %f: must be between 0 and 180 degrees", fov)
			}
			fovDegrees = fov
		}
	}

	width, height = 400, 400
	if pbrtScene.Film != nil {
		if w, ok := pbrtScene.Film.GetFloatParam("xresolution"); ok {
			if w <= 0 || w > 8192 {
				return camera.Perspective{}, 0, 0, fmt.Errorf("invalid image width %f: must be between 1 and 8192", w)
			}
			width = int(w)
		}
		if h, ok := pbrtScene.Film.GetFloatParam("yresolution"); ok {
			if h <= 0 || h > 8192 {
				return camera.Perspective{}, 0, 0, fmt.Errorf("invalid image height %f: must be between 1 and 8192", h)
			}
			height = int(h)
		}
	}

	if len(overrides) > 0 {
		o := overrides[0]
		if o.Width > 0 {
			width = o.Width
		}
		if o.Height > 0 {
			height = o.Height
		}
		if o.FovDegrees > 0 {
			fovDegrees = o.FovDegrees
		}
	}

	cameraToWorld := lookAtTransform(eye, target, up)
	return camera.NewPerspective(width, height, fovDegrees*math.Pi/180.0, cameraToWorld, 0, 1, nil), width, height, nil
}

// convertMaterial maps a PBRT material statement onto one of the closed
// BSDF variants; "measured" loads a tabulated BRDF from its "filename"
// parameter. Subtypes not named here are rejected with an error.
func convertMaterial(stmt *loaders.PBRTStatement) (material.Material, error) {
	switch stmt.Subtype {
	case "diffuse":
		albedo := core.NewVec3(0.7, 0.7, 0.7)
		if rgb, ok := stmt.GetRGBParam("reflectance"); ok {
			albedo = *rgb
		}
		return material.Direct{BSDF: bsdf.Lambertian{Albedo: albedo}}, nil

	case "conductor":
		eta := core.NewVec3(0.2, 0.92, 1.1)
		k := core.NewVec3(3.9, 2.45, 2.14)
		if rgb, ok := stmt.GetRGBParam("eta"); ok {
			eta = *rgb
		}
		if rgb, ok := stmt.GetRGBParam("k"); ok {
			k = *rgb
		}
		return material.Direct{BSDF: bsdf.Conductor{Eta: eta, K: k}}, nil

	case "dielectric":
		eta := 1.5
		if v, ok := stmt.GetFloatParam("eta"); ok {
			if v <= 0 {
				return nil, fmt.Errorf("invalid dielectric eta %f: must be positive", v)
			}
			eta = v
		}
		tint := core.NewVec3(1, 1, 1)
		if rgb, ok := stmt.GetRGBParam("tint"); ok {
			tint = *rgb
		}
		return material.Direct{BSDF: bsdf.Dielectric{Eta: eta, Tint: tint}}, nil

	case "coateddiffuse":
		eta := 1.5
		if v, ok := stmt.GetFloatParam("eta"); ok {
			eta = v
		}
		roughness := 0.1
		if v, ok := stmt.GetFloatParam("roughness"); ok {
			roughness = v
		}
		diffuse := core.NewVec3(0.5, 0.5, 0.5)
		if rgb, ok := stmt.GetRGBParam("reflectance"); ok {
			diffuse = *rgb
		}
		return material.Direct{BSDF: bsdf.RoughPlastic{Eta: eta, Roughness: roughness, Diffuse: diffuse}}, nil

	case "none", "":
		return material.Direct{BSDF: bsdf.NullBSDF{}}, nil

	case "measured":
		filename, ok := stmt.GetStringParam("filename")
		if !ok {
			return nil, fmt.Errorf("measured material missing filename")
		}
		measured, err := LoadMeasuredBSDF(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to load measured material %q: %w", filename, err)
		}
		return material.Direct{BSDF: measured}, nil

	default:
		return nil, fmt.Errorf("unsupported material type: %s", stmt.Subtype)
	}
}

// shapeMedium builds a shape's medium interface from inline "sigma_a"/
// "sigma_s" (and optional "g") parameters on the shape statement: a
// homogeneous medium inside, nothing outside. Named media and
// "interior"/"exterior" references are not read (there is no separate
// MakeNamedMedium table), matching the teacher's equally flat PBRT subset.
func shapeMedium(stmt *loaders.PBRTStatement) medium.Interface {
	sigmaA, hasA := stmt.GetRGBParam("sigma_a")
	sigmaS, hasS := stmt.GetRGBParam("sigma_s")
	if !hasA && !hasS {
		return medium.None()
	}
	if !hasA {
		sigmaA = &core.Vec3{}
	}
	if !hasS {
		sigmaS = &core.Vec3{}
	}
	sigmaT := sigmaA.Add(*sigmaS)
	albedo := core.Vec3{}
	if sigmaT.X > 0 {
		albedo = core.NewVec3(sigmaS.X/sigmaT.X, sigmaS.Y/maxFloat(sigmaT.Y, 1e-12), sigmaS.Z/maxFloat(sigmaT.Z, 1e-12))
	}

	g := 0.0
	if v, ok := stmt.GetFloatParam("g"); ok {
		g = v
	}
	var phase medium.PhaseFunction = medium.Isotropic{}
	if g != 0 {
		phase = medium.HenyeyGreenstein{G: g}
	}
	return medium.Interface{Inside: medium.Homogeneous{PhaseFunction: phase, Albedo: albedo, SigmaT: sigmaT, Scale: 1}}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func addShape(b *Builder, stmt *loaders.PBRTStatement, materialIdx []int) error {
	if stmt.MaterialIndex < 0 || stmt.MaterialIndex >= len(materialIdx) {
		return fmt.Errorf("shape has no valid material (index %d)", stmt.MaterialIndex)
	}
	matIdx := materialIdx[stmt.MaterialIndex]
	med := shapeMedium(stmt)

	shapes, err := convertShape(stmt)
	if err != nil {
		return err
	}

	var areaRadiance *core.Vec3
	if stmt.IsAreaLight() {
		if rgb, ok := stmt.GetRGBParam("L"); ok {
			areaRadiance = rgb
		} else {
			areaRadiance = &core.Vec3{X: 1, Y: 1, Z: 1}
		}
	}

	for _, s := range shapes {
		prim := &Primitive{Shape: s, MaterialIndex: matIdx, Medium: med}
		if areaRadiance != nil {
			b.AddAreaLight(prim, *areaRadiance)
		} else {
			b.AddPrimitive(prim)
		}
	}
	return nil
}

func convertShape(stmt *loaders.PBRTStatement) ([]shape.Shape, error) {
	switch stmt.Subtype {
	case "sphere":
		radius := 1.0
		if r, ok := stmt.GetFloatParam("radius"); ok {
			if r <= 0 {
				return nil, fmt.Errorf("invalid sphere radius %f: must be positive", r)
			}
			radius = r
		}
		return []shape.Shape{shape.NewSphere(radius)}, nil

	case "bilinearPatch":
		p00, ok1 := stmt.GetPoint3Param("P00")
		p01, ok2 := stmt.GetPoint3Param("P01")
		p10, ok3 := stmt.GetPoint3Param("P10")
		if !ok1 || !ok2 || !ok3 {
			return nil, fmt.Errorf("bilinearPatch missing corner points")
		}
		u := p01.Subtract(*p00)
		v := p10.Subtract(*p00)
		quad := shape.BuildQuad(*p00, u, v)
		return []shape.Shape{quad[0], quad[1]}, nil

	case "trianglemesh":
		pParam, exists := stmt.Parameters["P"]
		if !exists || len(pParam.Values)%3 != 0 {
			return nil, fmt.Errorf("trianglemesh missing or invalid vertices")
		}
		vertices := make([]core.Vec3, 0, len(pParam.Values)/3)
		for i := 0; i < len(pParam.Values); i += 3 {
			x, err1 := strconv.ParseFloat(pParam.Values[i], 64)
			y, err2 := strconv.ParseFloat(pParam.Values[i+1], 64)
			z, err3 := strconv.ParseFloat(pParam.Values[i+2], 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("invalid vertex coordinates at index %d", i)
			}
			vertices = append(vertices, core.NewVec3(x, y, z))
		}

		indicesParam, exists := stmt.Parameters["indices"]
		if !exists || len(indicesParam.Values)%3 != 0 {
			return nil, fmt.Errorf("trianglemesh missing or invalid indices")
		}

		tris := make([]shape.Shape, 0, len(indicesParam.Values)/3)
		for i := 0; i < len(indicesParam.Values); i += 3 {
			i0, err1 := strconv.Atoi(indicesParam.Values[i])
			i1, err2 := strconv.Atoi(indicesParam.Values[i+1])
			i2, err3 := strconv.Atoi(indicesParam.Values[i+2])
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("invalid triangle indices at index %d", i)
			}
			if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= len(vertices) || i1 >= len(vertices) || i2 >= len(vertices) {
				return nil, fmt.Errorf("triangle index out of range at index %d", i)
			}
			tris = append(tris, shape.NewTriangle(vertices[i0], vertices[i1], vertices[i2]))
		}
		return tris, nil

	case "plymesh":
		filename, ok := stmt.GetStringParam("filename")
		if !ok {
			return nil, fmt.Errorf("plymesh missing filename")
		}
		return LoadPLYMesh(filename)

	case "gltfmesh":
		filename, ok := stmt.GetStringParam("filename")
		if !ok {
			return nil, fmt.Errorf("gltfmesh missing filename")
		}
		primIndex := 0
		if v, ok := stmt.GetFloatParam("primitiveindex"); ok {
			primIndex = int(v)
		}
		return LoadGLTFMesh(filename, primIndex)

	default:
		return nil, fmt.Errorf("unsupported shape type: %s", stmt.Subtype)
	}
}

func convertLight(stmt *loaders.PBRTStatement) (light.Light, error) {
	switch stmt.Subtype {
	case "point":
		radiance := core.NewVec3(10, 10, 10)
		if rgb, ok := stmt.GetRGBParam("I"); ok {
			radiance = *rgb
		}
		position := core.NewVec3(0, 5, 0)
		if p, ok := stmt.GetPoint3Param("from"); ok {
			position = *p
		}
		return light.Point{P: position, Radiance: radiance}, nil

	case "spot":
		radiance := core.NewVec3(10, 10, 10)
		if rgb, ok := stmt.GetRGBParam("I"); ok {
			radiance = *rgb
		}
		position := core.NewVec3(0, 5, 0)
		if p, ok := stmt.GetPoint3Param("from"); ok {
			position = *p
		}
		coneAngle := 30.0
		if v, ok := stmt.GetFloatParam("coneangle"); ok {
			coneAngle = v
		}
		coneDelta := 5.0
		if v, ok := stmt.GetFloatParam("conedeltaangle"); ok {
			coneDelta = v
		}
		falloffStart := coneAngle - coneDelta
		if falloffStart < 0 {
			falloffStart = 0
		}
		return light.NewSpot(position, radiance, coneAngle, falloffStart), nil

	case "distant":
		radiance := core.NewVec3(3, 3, 3)
		if rgb, ok := stmt.GetRGBParam("L"); ok {
			radiance = *rgb
		}
		from := core.NewVec3(0, 0, 0)
		to := core.NewVec3(0, -1, 0)
		if p, ok := stmt.GetPoint3Param("from"); ok {
			from = *p
		}
		if p, ok := stmt.GetPoint3Param("to"); ok {
			to = *p
		}
		wLight := from.Subtract(to).Normalize()
		return light.NewDistant(wLight, radiance), nil

	case "infinite":
		radiance := core.NewVec3(1, 1, 1)
		if rgb, ok := stmt.GetRGBParam("L"); ok {
			radiance = *rgb
		}
		return light.Environment{Radiance: light.ConstantTexture{Value: radiance}}, nil

	default:
		return nil, fmt.Errorf("unsupported light type: %s", stmt.Subtype)
	}
}

func addAttributeBlock(b *Builder, block *loaders.AttributeBlock, globalMaterials []material.Material, globalMaterialIdx []int) error {
	localMaterials := make([]material.Material, len(block.Materials))
	localMaterialIdx := make([]int, len(block.Materials))
	for i := range block.Materials {
		mat, err := convertMaterial(&block.Materials[i])
		if err != nil {
			return fmt.Errorf("failed to convert material in attribute block: %w", err)
		}
		localMaterials[i] = mat
		localMaterialIdx[i] = b.AddMaterial(mat)
	}

	for i := range block.Shapes {
		stmt := &block.Shapes[i]
		var idx int
		switch {
		case stmt.MaterialIndex >= 0 && stmt.MaterialIndex < len(localMaterialIdx):
			idx = localMaterialIdx[stmt.MaterialIndex]
		case stmt.MaterialIndex >= 0 && stmt.MaterialIndex < len(globalMaterialIdx):
			idx = globalMaterialIdx[stmt.MaterialIndex]
		default:
			return fmt.Errorf("shape has no valid material (index %d, local %d, global %d)",
				stmt.MaterialIndex, len(localMaterials), len(globalMaterials))
		}

		med := shapeMedium(stmt)
		shapes, err := convertShape(stmt)
		if err != nil {
			return fmt.Errorf("failed to convert shape in attribute block: %w", err)
		}

		var areaRadiance *core.Vec3
		if stmt.IsAreaLight() {
			if rgb, ok := stmt.GetRGBParam("L"); ok {
				areaRadiance = rgb
			} else {
				areaRadiance = &core.Vec3{X: 1, Y: 1, Z: 1}
			}
		}

		for _, s := range shapes {
			prim := &Primitive{Shape: s, MaterialIndex: idx, Medium: med}
			if areaRadiance != nil {
				b.AddAreaLight(prim, *areaRadiance)
			} else {
				b.AddPrimitive(prim)
			}
		}
	}

	for i := range block.LightSources {
		stmt := &block.LightSources[i]
		if stmt.Type == "AreaLightSource" {
			continue
		}
		l, err := convertLight(stmt)
		if err != nil {
			return fmt.Errorf("failed to convert light in attribute block: %w", err)
		}
		b.AddLight(l)
	}

	return nil
}
