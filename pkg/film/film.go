// Package film implements the sample-accumulation buffer the renderer
// splats radiance samples into: a filter-weighted grid of atomic
// accumulators, tile-local staging buffers, and the reconstruction filters
// used to distribute a sample's contribution across neighboring pixels.
package film

import (
	"math"

	"github.com/aeonrender/photon/pkg/core"
)

// pixel holds the four atomic accumulators a single film pixel needs:
// a filter-weight sum and three XYZ channel sums.
type pixel struct {
	filterWeightSum atomicFloat64
	xyz             [3]atomicFloat64
}

// Film is the full-image accumulation buffer. Its extent is fixed at
// construction; interior mutation only ever happens through atomic
// fetch-add, so concurrent tile workers can splat into overlapping pixel
// neighborhoods without a lock.
type Film struct {
	width, height int
	filter        Filter
	pixels        []pixel
}

// New creates a Film of the given pixel extent using filter for
// reconstruction.
func New(width, height int, filter Filter) *Film {
	return &Film{
		width:  width,
		height: height,
		filter: filter,
		pixels: make([]pixel, width*height),
	}
}

func (f *Film) Width() int  { return f.width }
func (f *Film) Height() int { return f.height }
func (f *Film) Filter() Filter { return f.filter }

func (f *Film) at(x, y int) *pixel {
	return &f.pixels[y*f.width+x]
}

// sampleBounds returns the inclusive-exclusive pixel range that p's filter
// support can land in, clamped to the film's extent.
func (f *Film) sampleBounds(p core.Vec2, filter Filter) (minX, minY, maxX, maxY int) {
	r := filter.Radius()

	minX = int(math.Ceil(p.X - r.X - 0.5))
	minY = int(math.Ceil(p.Y - r.Y - 0.5))
	maxX = int(math.Floor(p.X+r.X-0.5)) + 1
	maxY = int(math.Floor(p.Y+r.Y-0.5)) + 1

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > f.width {
		maxX = f.width
	}
	if maxY > f.height {
		maxY = f.height
	}
	return
}

// ApplySample splats a single (film position, RGB radiance) sample across
// every pixel its reconstruction filter reaches.
func (f *Film) ApplySample(p core.Vec2, sampleRGB core.Vec3) {
	minX, minY, maxX, maxY := f.sampleBounds(p, f.filter)
	xyz := rgbToXYZ(sampleRGB)

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			offset := core.NewVec2(float64(x)+0.5-p.X, float64(y)+0.5-p.Y)
			w := f.filter.Eval(offset)
			if w < 0 {
				continue
			}

			px := f.at(x, y)
			px.filterWeightSum.add(w)
			px.xyz[0].add(w * xyz.X)
			px.xyz[1].add(w * xyz.Y)
			px.xyz[2].add(w * xyz.Z)
		}
	}
}

// Pixel returns the resolved XYZ value of pixel (x,y): its channel sums
// divided by its filter weight sum. A pixel no sample ever reached has a
// zero weight sum and resolves to black.
func (f *Film) Pixel(x, y int) core.Vec3 {
	px := f.at(x, y)
	wsum := px.filterWeightSum.load()
	if wsum <= 0 {
		return core.Vec3{}
	}
	inv := 1.0 / wsum
	return core.Vec3{
		X: px.xyz[0].load() * inv,
		Y: px.xyz[1].load() * inv,
		Z: px.xyz[2].load() * inv,
	}
}

// PixelRGB returns pixel (x,y) converted back to linear sRGB, for preview
// display or any consumer that wants RGB rather than XYZ.
func (f *Film) PixelRGB(x, y int) core.Vec3 {
	return xyzToRGB(f.Pixel(x, y))
}

// Merge folds a tile's bordered local buffer into the film. Pixels outside
// the film's extent (from the tile's border) are dropped.
func (f *Film) Merge(tile *Tile) {
	for ty := 0; ty < tile.height; ty++ {
		y := tile.originY + ty
		if y < 0 || y >= f.height {
			continue
		}
		for tx := 0; tx < tile.width; tx++ {
			x := tile.originX + tx
			if x < 0 || x >= f.width {
				continue
			}

			src := tile.at(tx, ty)
			wsum := src.filterWeightSum.load()
			if wsum == 0 {
				continue
			}

			dst := f.at(x, y)
			dst.filterWeightSum.add(wsum)
			dst.xyz[0].add(src.xyz[0].load())
			dst.xyz[1].add(src.xyz[1].load())
			dst.xyz[2].add(src.xyz[2].load())
		}
	}
}
