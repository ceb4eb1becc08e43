// Package sampler implements the correlated multi-jittered stratified
// sampler the integrator draws all its random numbers from, ported from
// Kensler's permutation-hashing scheme (Pixar, "Correlated Multi-Jittered
// Sampling").
package sampler

import (
	"math"
	"math/rand"

	"github.com/aeonrender/photon/pkg/core"
)

// Sampler is the interface the integrator consumes; it only needs fresh
// 1D/2D samples per bounce, a per-pixel reset, and a per-pixel fork so
// tiles can run independently.
type Sampler interface {
	BeginPixel()
	StartSample() bool // advances to the next sample index; false once spp is exhausted
	Next1D() float64
	Next2D() core.Vec2
	Fork(seed uint64) Sampler
	SPP() uint32
}

// Stratified is a stratified sampler: SPP rounded up to a power of two,
// Kensler-hashed permutation of the sample index per dimension, optional
// jitter within each stratum. Forked per pixel from a pixel-derived seed
// so rendering is embarrassingly parallel with reproducible output.
type Stratified struct {
	spp            uint32
	sampleIndex    uint32
	dimensionIndex uint32
	seed           uint64
	rng            *rand.Rand
	jitter         bool
}

// NewStratified builds a Stratified sampler, rounding spp up to the next
// power of two if needed.
func NewStratified(spp uint32, seed uint64, jitter bool) *Stratified {
	if spp == 0 {
		spp = 1
	}
	if spp&(spp-1) != 0 {
		spp = nextPowerOfTwo(spp)
	}
	return &Stratified{
		spp:    spp,
		seed:   seed,
		rng:    rand.New(rand.NewSource(int64(seed))),
		jitter: jitter,
	}
}

func nextPowerOfTwo(v uint32) uint32 {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v++
	return v
}

// permute is Kensler's hashed index permutation: a bijection on
// [0, sampleCount) that, for a fixed seed, avoids the visible correlation
// artifacts a plain modular hash produces.
func permute(index, sampleCount, seed uint32) uint32 {
	w := sampleCount - 1
	w |= w >> 1
	w |= w >> 2
	w |= w >> 4
	w |= w >> 8
	w |= w >> 16

	for {
		index ^= seed
		index *= 0xe170893d
		index ^= seed >> 16
		index ^= (index & w) >> 4
		index ^= seed >> 8
		index *= 0x0929eb3f
		index ^= seed >> 23
		index ^= (index & w) >> 1
		index *= 1 | (seed >> 27)
		index *= 0x6935fa69
		index ^= (index & w) >> 11
		index *= 0x74dcb303
		index ^= (index & w) >> 2
		index *= 0x9e501cc3
		index ^= (index & w) >> 2
		index *= 0xc860a3df
		index &= w
		index ^= index >> 5

		if index < sampleCount {
			break
		}
	}

	return (index + seed) % sampleCount
}

// BeginPixel resets sample/dimension indices for a new pixel.
func (s *Stratified) BeginPixel() {
	s.sampleIndex = 0
	s.dimensionIndex = 0
}

// StartSample advances to the next sample within the pixel, resetting the
// dimension counter. Returns false once spp samples have been consumed.
func (s *Stratified) StartSample() bool {
	s.dimensionIndex = 0
	s.sampleIndex++
	return s.sampleIndex <= s.spp
}

// Next1D returns a stratified 1D sample in [0,1).
func (s *Stratified) Next1D() float64 {
	seed := (uint32(s.seed) + s.dimensionIndex) * 0xa511e9b3
	idx := permute(s.sampleIndex, s.spp, seed)
	s.dimensionIndex++

	j := 0.5
	if s.jitter {
		j = s.rng.Float64()
	}

	return (float64(idx) + j) / float64(s.spp)
}

// Next2D returns a stratified 2D sample in [0,1)², decorrelated from
// Next1D and from earlier Next2D calls by the advancing dimension index.
func (s *Stratified) Next2D() core.Vec2 {
	seed := uint32(s.seed) + s.dimensionIndex
	idx := permute(s.sampleIndex, s.spp, seed*0x51633e2d)

	m := uint32(math.Sqrt(float64(s.spp)))
	if m == 0 {
		m = 1
	}
	n := (s.spp + m - 1) / m

	x := permute(idx%m, m, seed*0x68bc21eb)
	y := permute(idx/m, n, seed*0x02e5be93)

	s.dimensionIndex++

	jx, jy := 0.5, 0.5
	if s.jitter {
		jx, jy = s.rng.Float64(), s.rng.Float64()
	}

	return core.Vec2{
		X: (float64(x) + (float64(y)+jx)/float64(n)) / float64(m),
		Y: (float64(idx) + jy) / float64(s.spp),
	}
}

// Fork derives an independent sampler for another pixel (or other stream),
// combining this sampler's seed with the caller-supplied one so distinct
// pixels get decorrelated sequences.
func (s *Stratified) Fork(seed uint64) Sampler {
	combined := s.seed + seed
	return &Stratified{
		spp:    s.spp,
		seed:   combined,
		rng:    rand.New(rand.NewSource(int64(combined))),
		jitter: s.jitter,
	}
}

// SPP returns the (power-of-two-rounded) samples-per-pixel count.
func (s *Stratified) SPP() uint32 {
	return s.spp
}

// PixelSeed derives a deterministic per-pixel fork seed from pixel
// coordinates and a base seed, so two renders with the same base seed
// produce pixel-identical sample sequences regardless of tile scheduling
// order.
func PixelSeed(baseSeed uint64, x, y int) uint64 {
	h := baseSeed ^ 0x9e3779b97f4a7c15
	h ^= uint64(uint32(x)) * 0xbf58476d1ce4e5b9
	h ^= uint64(uint32(y)) * 0x94d049bb133111eb
	h ^= h >> 31
	return h
}
