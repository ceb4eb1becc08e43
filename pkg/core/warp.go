package core

import "math"

// SquareToUniformDiskConcentric maps a uniform [0,1)^2 sample onto the unit
// disk using Shirley's concentric mapping, which keeps neighboring samples
// in the square close together on the disk (unlike the polar mapping) —
// important for the stratified sampler's low-discrepancy guarantees to
// survive the reparameterization.
func SquareToUniformDiskConcentric(u Vec2) Vec2 {
	ox := 2.0*u.X - 1.0
	oy := 2.0*u.Y - 1.0

	if ox == 0 && oy == 0 {
		return Vec2{}
	}

	var r, theta float64
	if math.Abs(ox) > math.Abs(oy) {
		r = ox
		theta = (math.Pi / 4.0) * (oy / ox)
	} else {
		r = oy
		theta = math.Pi/2.0 - (math.Pi/4.0)*(ox/oy)
	}

	return Vec2{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// SquareToUniformHemisphere maps a uniform [0,1)^2 sample to a direction
// uniformly distributed over the unit hemisphere around +Z.
func SquareToUniformHemisphere(u Vec2) Vec3 {
	z := u.X
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2.0 * math.Pi * u.Y
	return Vec3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

// UniformHemispherePDF is the solid-angle density of SquareToUniformHemisphere.
func UniformHemispherePDF() float64 {
	return 1.0 / (2.0 * math.Pi)
}

// SquareToCosineHemisphere maps a uniform [0,1)^2 sample to a direction
// cosine-weighted about +Z, via Malley's method: project a concentric disk
// sample up onto the hemisphere.
func SquareToCosineHemisphere(u Vec2) Vec3 {
	d := SquareToUniformDiskConcentric(u)
	z := math.Sqrt(math.Max(0, 1-d.X*d.X-d.Y*d.Y))
	return Vec3{X: d.X, Y: d.Y, Z: z}
}

// CosineHemispherePDF is the solid-angle density of SquareToCosineHemisphere
// for a local-space direction with the given cosTheta.
func CosineHemispherePDF(cosTheta float64) float64 {
	return cosTheta / math.Pi
}

// SquareToUniformSphere maps a uniform [0,1)^2 sample to a direction
// uniformly distributed over the full unit sphere.
func SquareToUniformSphere(u Vec2) Vec3 {
	z := 1.0 - 2.0*u.Y
	r := math.Sqrt(math.Abs(1 - z*z))
	phi := 2.0 * math.Pi * u.X
	return Vec3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

// UniformSpherePDF is the solid-angle density of SquareToUniformSphere.
func UniformSpherePDF() float64 {
	return 1.0 / (4.0 * math.Pi)
}

// SquareToBarycentric maps a uniform [0,1)^2 sample to barycentric
// coordinates (b0, b1) over a triangle; b2 = 1 - b0 - b1.
func SquareToBarycentric(u Vec2) (b0, b1 float64) {
	su0 := math.Sqrt(u.X)
	return 1.0 - su0, u.Y*su0
}
