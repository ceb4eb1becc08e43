package sampler

import (
	"math"
	"testing"
)

func TestStratifiedRoundsSppToPowerOfTwo(t *testing.T) {
	s := NewStratified(10, 1, false)
	if s.SPP() != 16 {
		t.Errorf("expected spp rounded to 16, got %d", s.SPP())
	}
}

func TestStratifiedCoverageNoJitter(t *testing.T) {
	const k = 4
	const spp = k * k
	s := NewStratified(spp, 42, false)
	s.BeginPixel()

	cellHit := make(map[[2]int]int)
	for s.StartSample() {
		u := s.Next2D()
		cellX := int(u.X * k)
		cellY := int(u.Y * k)
		if cellX >= k {
			cellX = k - 1
		}
		if cellY >= k {
			cellY = k - 1
		}
		cellHit[[2]int{cellX, cellY}]++
	}

	if len(cellHit) != k*k {
		t.Errorf("expected %d distinct subcells covered, got %d", k*k, len(cellHit))
	}
	for cell, count := range cellHit {
		if count != 1 {
			t.Errorf("cell %v hit %d times, want exactly 1", cell, count)
		}
	}
}

func TestStratifiedNext1DStaysInUnitInterval(t *testing.T) {
	s := NewStratified(64, 7, true)
	s.BeginPixel()
	for s.StartSample() {
		v := s.Next1D()
		if v < 0 || v >= 1 {
			t.Fatalf("Next1D out of range: %f", v)
		}
	}
}

func TestForkedSamplersDecorrelate(t *testing.T) {
	base := NewStratified(64, 1, true)

	a := base.Fork(PixelSeed(1, 0, 0))
	b := base.Fork(PixelSeed(1, 1, 0))

	a.BeginPixel()
	b.BeginPixel()

	var sumA, sumB float64
	n := 0
	for a.StartSample() && b.StartSample() {
		sumA += a.Next1D()
		sumB += b.Next1D()
		n++
	}

	meanA := sumA / float64(n)
	meanB := sumB / float64(n)
	if math.Abs(meanA-meanB) < 1e-6 && meanA == meanB {
		t.Errorf("forked samplers produced identical sequences")
	}
}
