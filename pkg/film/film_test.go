package film

import (
	"math"
	"testing"

	"github.com/aeonrender/photon/pkg/core"
)

func TestBoxFilterWeightsEverythingEqually(t *testing.T) {
	b := Box{R: core.NewVec2(1, 1)}
	if b.Eval(core.NewVec2(0, 0)) != 1 || b.Eval(core.NewVec2(0.9, 0.9)) != 1 {
		t.Error("expected box filter to return 1 everywhere within its radius")
	}
}

func TestTentFilterFallsOffLinearly(t *testing.T) {
	tn := Tent{R: core.NewVec2(2, 2)}
	center := tn.Eval(core.NewVec2(0, 0))
	edge := tn.Eval(core.NewVec2(1, 1))
	outside := tn.Eval(core.NewVec2(2.5, 0))

	if center <= edge {
		t.Errorf("expected center weight %f to exceed edge weight %f", center, edge)
	}
	if outside != 0 {
		t.Errorf("expected zero weight outside radius, got %f", outside)
	}
}

func TestFilmSinglePixelSampleResolvesToItsColor(t *testing.T) {
	f := New(4, 4, Box{R: core.NewVec2(0.5, 0.5)})
	f.ApplySample(core.NewVec2(2.5, 2.5), core.NewVec3(1, 0, 0))

	got := f.PixelRGB(2, 2)
	if math.Abs(got.X-1) > 1e-6 || got.Y > 1e-6 || got.Z > 1e-6 {
		t.Errorf("expected pixel to resolve to pure red, got %v", got)
	}
}

func TestFilmUntouchedPixelIsBlack(t *testing.T) {
	f := New(4, 4, Box{R: core.NewVec2(0.5, 0.5)})
	got := f.Pixel(0, 0)
	if got != (core.Vec3{}) {
		t.Errorf("expected untouched pixel to be black, got %v", got)
	}
}

func TestFilmSampleBoundsClampToImageEdge(t *testing.T) {
	f := New(4, 4, Tent{R: core.NewVec2(2, 2)})
	minX, minY, maxX, maxY := f.sampleBounds(core.NewVec2(0.5, 0.5), f.filter)
	if minX < 0 || minY < 0 || maxX > 4 || maxY > 4 {
		t.Errorf("expected bounds clamped to image extent, got (%d,%d)-(%d,%d)", minX, minY, maxX, maxY)
	}
}

func TestTileMergeReproducesDirectFilmSplat(t *testing.T) {
	filter := Tent{R: core.NewVec2(1.5, 1.5)}

	direct := New(8, 8, filter)
	direct.ApplySample(core.NewVec2(4.3, 4.7), core.NewVec3(0.5, 0.25, 0.1))

	viaTile := New(8, 8, filter)
	tile := NewTile(Bounds{MinX: 4, MinY: 4, MaxX: 6, MaxY: 6}, filter)
	tile.ApplySample(core.NewVec2(4.3, 4.7), core.NewVec3(0.5, 0.25, 0.1))
	viaTile.Merge(tile)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			a := direct.Pixel(x, y)
			b := viaTile.Pixel(x, y)
			if math.Abs(a.X-b.X) > 1e-9 || math.Abs(a.Y-b.Y) > 1e-9 || math.Abs(a.Z-b.Z) > 1e-9 {
				t.Errorf("pixel (%d,%d): direct=%v tile=%v", x, y, a, b)
			}
		}
	}
}

func TestTileOrderCoversEveryTileExactlyOnce(t *testing.T) {
	order := TileOrder(37, 23, 8)

	cols := (37 + 7) / 8
	rows := (23 + 7) / 8
	seen := make(map[[2]int]bool)

	for _, b := range order {
		col, row := b.MinX/8, b.MinY/8
		key := [2]int{col, row}
		if seen[key] {
			t.Fatalf("tile (%d,%d) emitted more than once", col, row)
		}
		seen[key] = true
	}

	if len(seen) != cols*rows {
		t.Errorf("expected %d tiles, got %d", cols*rows, len(seen))
	}
}

func TestTileOrderStartsNearCenter(t *testing.T) {
	order := TileOrder(80, 80, 8)
	if len(order) == 0 {
		t.Fatal("expected at least one tile")
	}

	first := order[0]
	centerX, centerY := 40, 40
	firstCenterX := (first.MinX + first.MaxX) / 2
	firstCenterY := (first.MinY + first.MaxY) / 2

	distFirst := math.Hypot(float64(firstCenterX-centerX), float64(firstCenterY-centerY))

	last := order[len(order)-1]
	lastCenterX := (last.MinX + last.MaxX) / 2
	lastCenterY := (last.MinY + last.MaxY) / 2
	distLast := math.Hypot(float64(lastCenterX-centerX), float64(lastCenterY-centerY))

	if distFirst > distLast {
		t.Errorf("expected first tile closer to center than last: first=%f last=%f", distFirst, distLast)
	}
}
