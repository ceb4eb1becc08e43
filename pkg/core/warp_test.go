package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestSquareToCosineHemisphereStaysInHemisphere(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	const numSamples = 10000
	var totalCosine float64

	for i := 0; i < numSamples; i++ {
		u := Vec2{X: random.Float64(), Y: random.Float64()}
		dir := SquareToCosineHemisphere(u)

		if math.Abs(dir.Length()-1.0) > 1e-6 {
			t.Fatalf("generated direction not unit length: %f", dir.Length())
		}
		if dir.Z < 0 {
			t.Fatalf("direction below hemisphere: %v", dir)
		}
		totalCosine += dir.Z
	}

	avgCosine := totalCosine / float64(numSamples)
	expected := 2.0 / 3.0
	if math.Abs(avgCosine-expected) > 0.02 {
		t.Errorf("average cosine %f doesn't match expected %f", avgCosine, expected)
	}
}

func TestSquareToUniformDiskConcentricStaysInDisk(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		u := Vec2{X: random.Float64(), Y: random.Float64()}
		d := SquareToUniformDiskConcentric(u)
		if d.X*d.X+d.Y*d.Y > 1.0+1e-9 {
			t.Fatalf("point outside unit disk: %v", d)
		}
	}
}

func TestSquareToBarycentricSumsToOne(t *testing.T) {
	random := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		u := Vec2{X: random.Float64(), Y: random.Float64()}
		b0, b1 := SquareToBarycentric(u)
		b2 := 1 - b0 - b1
		if b0 < -1e-9 || b1 < -1e-9 || b2 < -1e-9 {
			t.Fatalf("negative barycentric coordinate: %f %f %f", b0, b1, b2)
		}
	}
}

func TestSquareToUniformSphereUnitLength(t *testing.T) {
	random := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		u := Vec2{X: random.Float64(), Y: random.Float64()}
		d := SquareToUniformSphere(u)
		if math.Abs(d.Length()-1.0) > 1e-6 {
			t.Fatalf("non-unit direction: %v (len=%f)", d, d.Length())
		}
	}
}
