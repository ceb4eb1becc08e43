package film

import (
	"math"

	"github.com/aeonrender/photon/pkg/core"
)

// Filter is a pixel reconstruction filter: it weights how much a sample
// falling at offset p from a pixel center contributes to that pixel.
type Filter interface {
	// Eval returns the filter's weight at offset p from a pixel center. p
	// is only ever evaluated within [-Radius, Radius].
	Eval(p core.Vec2) float64
	Radius() core.Vec2
}

// Box is the trivial reconstruction filter: every sample within its radius
// contributes with equal weight.
type Box struct {
	R core.Vec2
}

func (b Box) Eval(p core.Vec2) float64 { return 1 }
func (b Box) Radius() core.Vec2        { return b.R }

// Tent weights samples linearly, falling to zero at the radius in each
// dimension independently.
type Tent struct {
	R core.Vec2
}

func (t Tent) Eval(p core.Vec2) float64 {
	return math.Max(0, t.R.X-math.Abs(p.X)) * math.Max(0, t.R.Y-math.Abs(p.Y))
}

func (t Tent) Radius() core.Vec2 { return t.R }
