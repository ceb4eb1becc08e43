package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aeonrender/photon/pkg/camera"
	"github.com/aeonrender/photon/pkg/core"
)

const testPBRT = `
LookAt 0 0 5  0 0 0  0 1 0
Camera "perspective" "float fov" 40
Film "rgb" "integer xresolution" 64 "integer yresolution" 64

WorldBegin

Material "diffuse" "rgb reflectance" [0.8 0.2 0.2]
Shape "sphere" "float radius" 1.0

AttributeBegin
  Material "diffuse" "rgb reflectance" [0.9 0.9 0.9]
  AreaLightSource "diffuse" "rgb L" [10 10 10]
  Shape "sphere" "float radius" 0.3
AttributeEnd

LightSource "point" "rgb I" [5 5 5] "point3 from" [2 2 2]
`

func TestNewPBRTSceneBuildsRenderableScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.pbrt")
	if err := os.WriteFile(path, []byte(testPBRT), 0o644); err != nil {
		t.Fatalf("failed to write test scene: %v", err)
	}

	sc, err := NewPBRTScene(path)
	if err != nil {
		t.Fatalf("NewPBRTScene failed: %v", err)
	}

	if sc.BVH.Len() != 2 {
		t.Errorf("expected 2 primitives (body sphere + area light sphere), got %d", sc.BVH.Len())
	}
	if len(sc.Materials) != 2 {
		t.Errorf("expected 2 materials, got %d", len(sc.Materials))
	}
	// One area light (from the emissive sphere) plus one point light.
	if len(sc.Lights) != 2 {
		t.Errorf("expected 2 lights (1 area + 1 point), got %d", len(sc.Lights))
	}
}

func TestNewPBRTSceneAppliesCameraOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.pbrt")
	if err := os.WriteFile(path, []byte(testPBRT), 0o644); err != nil {
		t.Fatalf("failed to write test scene: %v", err)
	}

	sc, err := NewPBRTScene(path, CameraOverride{Width: 128, Height: 96})
	if err != nil {
		t.Fatalf("NewPBRTScene failed: %v", err)
	}

	ray := sc.Camera.GenerateRay(camera.Sample{PFilm: core.NewVec2(64, 48)})
	if ray.Direction.LengthSquared() == 0 {
		t.Errorf("expected a non-degenerate camera ray")
	}
}

func TestNewPBRTSceneRejectsBadFOV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.pbrt")
	bad := `Camera "perspective" "float fov" 200
WorldBegin
Material "diffuse" "rgb reflectance" [1 1 1]
Shape "sphere" "float radius" 1.0
`
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("failed to write test scene: %v", err)
	}

	if _, err := NewPBRTScene(path); err == nil {
		t.Errorf("expected an error for an out-of-range fov")
	}
}
