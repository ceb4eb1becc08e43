package core

import "math"

// Mat4 is a row-major 4x4 matrix used for affine world<->object transforms.
type Mat4 [4][4]float64

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

// Mul returns the matrix product m*other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * other[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// Transpose returns the matrix transpose.
func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Inverse computes the matrix inverse via Gauss-Jordan elimination with
// partial pivoting. Panics if the matrix is singular — a singular
// world-to-object transform indicates a malformed scene, which is a
// construction-time configuration error, not a runtime one.
func (m Mat4) Inverse() Mat4 {
	a := m
	inv := Identity4()

	for col := 0; col < 4; col++ {
		pivotRow := col
		pivotVal := math.Abs(a[col][col])
		for r := col + 1; r < 4; r++ {
			if v := math.Abs(a[r][col]); v > pivotVal {
				pivotRow, pivotVal = r, v
			}
		}
		if pivotVal < 1e-12 {
			panic("core: singular matrix has no inverse")
		}
		if pivotRow != col {
			a[col], a[pivotRow] = a[pivotRow], a[col]
			inv[col], inv[pivotRow] = inv[pivotRow], inv[col]
		}

		pivot := a[col][col]
		for j := 0; j < 4; j++ {
			a[col][j] /= pivot
			inv[col][j] /= pivot
		}

		for r := 0; r < 4; r++ {
			if r == col {
				continue
			}
			factor := a[r][col]
			if factor == 0 {
				continue
			}
			for j := 0; j < 4; j++ {
				a[r][j] -= factor * a[col][j]
				inv[r][j] -= factor * inv[col][j]
			}
		}
	}

	return inv
}

// Transform is an affine world<->object transform, caching both directions
// so repeated ray transforms during BVH traversal never recompute the
// inverse.
type Transform struct {
	m    Mat4
	mInv Mat4
}

// NewTransform builds a Transform from a matrix, computing its inverse once.
func NewTransform(m Mat4) Transform {
	return Transform{m: m, mInv: m.Inverse()}
}

// Identity returns the identity Transform.
func Identity() Transform {
	return Transform{m: Identity4(), mInv: Identity4()}
}

// Translate builds a translation Transform.
func Translate(delta Vec3) Transform {
	m := Identity4()
	m[0][3], m[1][3], m[2][3] = delta.X, delta.Y, delta.Z
	return NewTransform(m)
}

// Scale builds a non-uniform scale Transform.
func Scale(s Vec3) Transform {
	m := Identity4()
	m[0][0], m[1][1], m[2][2] = s.X, s.Y, s.Z
	return NewTransform(m)
}

// RotateY builds a rotation Transform about the Y axis, angle in radians.
func RotateY(theta float64) Transform {
	s, c := math.Sin(theta), math.Cos(theta)
	m := Identity4()
	m[0][0], m[0][2] = c, s
	m[2][0], m[2][2] = -s, c
	return NewTransform(m)
}

// Inverse returns the inverse Transform (swaps the cached forward/inverse pair).
func (t Transform) Inverse() Transform {
	return Transform{m: t.mInv, mInv: t.m}
}

// Compose returns a Transform equivalent to applying t first, then other.
func (t Transform) Compose(other Transform) Transform {
	return Transform{m: other.m.Mul(t.m), mInv: t.mInv.Mul(other.mInv)}
}

// Point transforms a point (implicit w=1), dividing by the homogeneous w.
func (t Transform) Point(p Vec3) Vec3 {
	m := t.m
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	if w == 1 {
		return Vec3{x, y, z}
	}
	return Vec3{x / w, y / w, z / w}
}

// Vector transforms a direction (implicit w=0, no translation).
func (t Transform) Vector(v Vec3) Vec3 {
	m := t.m
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Normal transforms a surface normal using the inverse-transpose rule, which
// keeps normals perpendicular to their surface under non-uniform scale.
func (t Transform) Normal(n Vec3) Vec3 {
	mInv := t.mInv
	return Vec3{
		X: mInv[0][0]*n.X + mInv[1][0]*n.Y + mInv[2][0]*n.Z,
		Y: mInv[0][1]*n.X + mInv[1][1]*n.Y + mInv[2][1]*n.Z,
		Z: mInv[0][2]*n.X + mInv[1][2]*n.Y + mInv[2][2]*n.Z,
	}
}

// Ray transforms a ray's origin and direction into the target space.
func (t Transform) Ray(r Ray) Ray {
	return Ray{Origin: t.Point(r.Origin), Direction: t.Vector(r.Direction)}
}
