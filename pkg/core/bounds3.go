package core

import "math"

// Bounds3 is an axis-aligned bounding box.
type Bounds3 struct {
	Min Vec3
	Max Vec3
}

// EmptyBounds3 returns a bounds with inverted extents, ready to be grown by Union.
func EmptyBounds3() Bounds3 {
	inf := math.Inf(1)
	return Bounds3{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// NewBounds3 creates a new Bounds3 from min and max points.
func NewBounds3(min, max Vec3) Bounds3 {
	return Bounds3{Min: min, Max: max}
}

// NewBounds3FromPoints creates a Bounds3 that bounds all given points.
func NewBounds3FromPoints(points ...Vec3) Bounds3 {
	if len(points) == 0 {
		return Bounds3{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return Bounds3{Min: min, Max: max}
}

// Hit tests if a ray intersects this Bounds3 using the slab method, returning
// the entry/exit parametric distances clipped to [tMin, tMax].
func (b Bounds3) Hit(ray Ray, tMin, tMax float64) (float64, float64, bool) {
	for axis := 0; axis < 3; axis++ {
		minV, maxV, origin, direction := b.axisExtent(axis, ray)

		if math.Abs(direction) < 1e-8 {
			if origin < minV || origin > maxV {
				return 0, 0, false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (minV - origin) * invDirection
		t2 := (maxV - origin) * invDirection

		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)

		if tMin > tMax {
			return 0, 0, false
		}
	}

	return tMin, tMax, true
}

func (b Bounds3) axisExtent(axis int, ray Ray) (minV, maxV, origin, direction float64) {
	switch axis {
	case 0:
		return b.Min.X, b.Max.X, ray.Origin.X, ray.Direction.X
	case 1:
		return b.Min.Y, b.Max.Y, ray.Origin.Y, ray.Direction.Y
	default:
		return b.Min.Z, b.Max.Z, ray.Origin.Z, ray.Direction.Z
	}
}

// Union returns a Bounds3 that bounds both this Bounds3 and another.
func (b Bounds3) Union(other Bounds3) Bounds3 {
	return Bounds3{
		Min: Vec3{
			X: math.Min(b.Min.X, other.Min.X),
			Y: math.Min(b.Min.Y, other.Min.Y),
			Z: math.Min(b.Min.Z, other.Min.Z),
		},
		Max: Vec3{
			X: math.Max(b.Max.X, other.Max.X),
			Y: math.Max(b.Max.Y, other.Max.Y),
			Z: math.Max(b.Max.Z, other.Max.Z),
		},
	}
}

// UnionPoint returns a Bounds3 grown to include the given point.
func (b Bounds3) UnionPoint(p Vec3) Bounds3 {
	return Bounds3{
		Min: Vec3{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)},
		Max: Vec3{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)},
	}
}

// Center returns the center point of the Bounds3.
func (b Bounds3) Center() Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// Size returns the extent of the Bounds3 along each axis.
func (b Bounds3) Size() Vec3 {
	return b.Max.Subtract(b.Min)
}

// SurfaceArea returns the surface area of the Bounds3.
func (b Bounds3) SurfaceArea() float64 {
	size := b.Size()
	if size.X < 0 || size.Y < 0 || size.Z < 0 {
		return 0
	}
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
func (b Bounds3) LongestAxis() int {
	size := b.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// Axis returns the extent of the bounds along the given axis (0=X, 1=Y, 2=Z).
func (b Bounds3) Axis(axis int) (min, max float64) {
	switch axis {
	case 0:
		return b.Min.X, b.Max.X
	case 1:
		return b.Min.Y, b.Max.Y
	default:
		return b.Min.Z, b.Max.Z
	}
}

// Offset returns the position of a point relative to the bounds, measured as
// a fraction of the extent along each axis (0 at Min, 1 at Max).
func (b Bounds3) Offset(p Vec3) Vec3 {
	o := p.Subtract(b.Min)
	size := b.Size()
	if size.X > 0 {
		o.X /= size.X
	}
	if size.Y > 0 {
		o.Y /= size.Y
	}
	if size.Z > 0 {
		o.Z /= size.Z
	}
	return o
}

// IsValid returns true if this is a valid Bounds3 (min <= max for all axes).
func (b Bounds3) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Expand returns a Bounds3 expanded by the given amount in all directions.
func (b Bounds3) Expand(amount float64) Bounds3 {
	expansion := NewVec3(amount, amount, amount)
	return Bounds3{
		Min: b.Min.Subtract(expansion),
		Max: b.Max.Add(expansion),
	}
}
