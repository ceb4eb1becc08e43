package film

import "github.com/aeonrender/photon/pkg/core"

// rgbToXYZ converts a linear sRGB radiance value (the color space every
// BSDF, light, and texture in this renderer works in) to CIE 1931 XYZ, the
// space the film accumulates in so that downstream tone-mapping/EXR writing
// can work from a device-independent representation.
func rgbToXYZ(rgb core.Vec3) core.Vec3 {
	return core.Vec3{
		X: 0.4124564*rgb.X + 0.3575761*rgb.Y + 0.1804375*rgb.Z,
		Y: 0.2126729*rgb.X + 0.7151522*rgb.Y + 0.0721750*rgb.Z,
		Z: 0.0193339*rgb.X + 0.1191920*rgb.Y + 0.9503041*rgb.Z,
	}
}

// xyzToRGB is the inverse of rgbToXYZ, used when a caller wants a film
// pixel's accumulated value back in linear sRGB (e.g. for a preview).
func xyzToRGB(xyz core.Vec3) core.Vec3 {
	return core.Vec3{
		X: 3.2404542*xyz.X - 1.5371385*xyz.Y - 0.4985314*xyz.Z,
		Y: -0.9692660*xyz.X + 1.8760108*xyz.Y + 0.0415560*xyz.Z,
		Z: 0.0556434*xyz.X - 0.2040259*xyz.Y + 1.0572252*xyz.Z,
	}
}
