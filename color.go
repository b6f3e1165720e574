package pathtracer

import "math"

// Color is a linear RGBA color. Renderer-internal math stays in linear
// space; gamma correction is applied once, at tonemap time, in driver.go.
type Color struct {
	R, G, B, A float64
}

var (
	Black = Color{0, 0, 0, 1}
	White = Color{1, 1, 1, 1}
	// Discard marks a shader result that should not be written (fully
	// transparent sentinel), kept from fragment-shader
	// vocabulary; the integrator never returns it.
	Discard = Color{0, 0, 0, 0}
)

func Gray(x float64) Color {
	return Color{x, x, x, 1}
}

func (a Color) Add(b Color) Color {
	return Color{a.R + b.R, a.G + b.G, a.B + b.B, a.A}
}

func (a Color) Sub(b Color) Color {
	return Color{a.R - b.R, a.G - b.G, a.B - b.B, a.A}
}

func (a Color) Mul(b Color) Color {
	return Color{a.R * b.R, a.G * b.G, a.B * b.B, a.A}
}

func (a Color) MulScalar(b float64) Color {
	return Color{a.R * b, a.G * b, a.B * b, a.A}
}

func (a Color) Lerp(b Color, t float64) Color {
	return a.MulScalar(1 - t).Add(b.MulScalar(t))
}

func (a Color) Min(b Color) Color {
	return Color{math.Min(a.R, b.R), math.Min(a.G, b.G), math.Min(a.B, b.B), a.A}
}

func (a Color) Max(b Color) Color {
	return Color{math.Max(a.R, b.R), math.Max(a.G, b.G), math.Max(a.B, b.B), a.A}
}

func (a Color) Alpha(alpha float64) Color {
	return Color{a.R, a.G, a.B, alpha}
}

// Clamp clamps each channel to [0,1], replacing NaN/Inf with 0.
// colorToRGBA applies it to the averaged pixel color; NaN samples are
// already replaced by black before averaging, in renderPixel.
func (a Color) Clamp() Color {
	clamp := func(x float64) float64 {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0
		}
		if x < 0 {
			return 0
		}
		if x > 1 {
			return 1
		}
		return x
	}
	return Color{clamp(a.R), clamp(a.G), clamp(a.B), clamp(a.A)}
}

// Gamma applies gamma correction x^(1/g) per channel.
func (a Color) Gamma(g float64) Color {
	p := 1 / g
	return Color{math.Pow(a.R, p), math.Pow(a.G, p), math.Pow(a.B, p), a.A}
}

// Vector views the color's RGB as a Vector for use in the vector-valued
// BRDF math (brdf.go), mirroring how pbr.go borrows Vector for F0/kS/kD.
func (a Color) Vector() Vector {
	return Vector{a.R, a.G, a.B}
}

func ColorFromVector(v Vector) Color {
	return Color{v.X, v.Y, v.Z, 1}
}

// IsNaN reports whether any channel is NaN or infinite.
func (a Color) IsNaN() bool {
	return math.IsNaN(a.R) || math.IsNaN(a.G) || math.IsNaN(a.B) ||
		math.IsInf(a.R, 0) || math.IsInf(a.G, 0) || math.IsInf(a.B, 0)
}
