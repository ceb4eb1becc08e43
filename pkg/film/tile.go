package film

import (
	"math"

	"github.com/aeonrender/photon/pkg/core"
)

// Bounds is an inclusive-exclusive pixel rectangle: [MinX,MaxX) x [MinY,MaxY).
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

func (b Bounds) Width() int  { return b.MaxX - b.MinX }
func (b Bounds) Height() int { return b.MaxY - b.MinY }

// Tile is a worker-local accumulation buffer for one rectangular region of
// the film, padded on every side by a border of the reconstruction filter's
// radius truncated to whole pixels, plus one. A sample near a tile edge still splats correctly into
// neighboring pixels that belong to an adjacent tile; Film.Merge folds the
// whole padded buffer back in, so the overlap resolves itself rather than
// requiring cross-tile synchronization during rendering.
type Tile struct {
	Bounds Bounds

	originX, originY int // top-left of the padded buffer, may be negative
	width, height    int // padded buffer extent
	filter           Filter
	pixels           []pixel
}

// NewTile allocates a tile covering bounds, bordered by int(filter radius)+1
// pixels on each axis.
func NewTile(bounds Bounds, filter Filter) *Tile {
	r := filter.Radius()
	borderX := int(r.X) + 1
	borderY := int(r.Y) + 1

	originX := bounds.MinX - borderX
	originY := bounds.MinY - borderY
	width := bounds.Width() + 2*borderX
	height := bounds.Height() + 2*borderY

	return &Tile{
		Bounds:  bounds,
		originX: originX,
		originY: originY,
		width:   width,
		height:  height,
		filter:  filter,
		pixels:  make([]pixel, width*height),
	}
}

func (t *Tile) at(tx, ty int) *pixel {
	return &t.pixels[ty*t.width+tx]
}

// ApplySample splats a sample at film position p (in the full image's
// pixel coordinates) into this tile's local buffer.
func (t *Tile) ApplySample(p core.Vec2, sampleRGB core.Vec3) {
	r := t.filter.Radius()

	minX := int(math.Ceil(p.X - r.X - 0.5))
	minY := int(math.Ceil(p.Y - r.Y - 0.5))
	maxX := int(math.Floor(p.X+r.X-0.5)) + 1
	maxY := int(math.Floor(p.Y+r.Y-0.5)) + 1

	xyz := rgbToXYZ(sampleRGB)

	for y := minY; y < maxY; y++ {
		ty := y - t.originY
		if ty < 0 || ty >= t.height {
			continue
		}
		for x := minX; x < maxX; x++ {
			tx := x - t.originX
			if tx < 0 || tx >= t.width {
				continue
			}

			offset := core.NewVec2(float64(x)+0.5-p.X, float64(y)+0.5-p.Y)
			w := t.filter.Eval(offset)
			if w < 0 {
				continue
			}

			px := t.at(tx, ty)
			px.filterWeightSum.add(w)
			px.xyz[0].add(w * xyz.X)
			px.xyz[1].add(w * xyz.Y)
			px.xyz[2].add(w * xyz.Z)
		}
	}
}
