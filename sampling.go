package pathtracer

import (
	"math"
	"math/rand"
)

// NewPixelRNG returns a per-pixel random source seeded deterministically
// from (x, y, seed), so a fixed seed reproduces a fixed image regardless
// of spp or thread count: the same pixel
// always draws from the same stream no matter which worker renders it.
// Stdlib math/rand only — no sampling or RNG library appears anywhere in
// the retrieval pack to adopt instead.
func NewPixelRNG(x, y, seed int64) *rand.Rand {
	h := uint64(seed)
	h = h*1099511628211 ^ uint64(x)
	h = h*1099511628211 ^ uint64(y)
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return rand.New(rand.NewSource(int64(h)))
}

// PixelJitter draws the sub-sample offset (xi1, xi2) uniform in [0,1)^2
// used to place a primary ray inside its pixel.
func PixelJitter(rng *rand.Rand) (float64, float64) {
	return rng.Float64(), rng.Float64()
}

// CosineSampleHemisphere draws a direction from the cosine-weighted
// hemisphere around normal n, used by the integrator's single ambient
// occlusion sample per invocation.
func CosineSampleHemisphere(n Vector, rng *rand.Rand) Vector {
	u1, u2 := rng.Float64(), rng.Float64()
	r := math.Sqrt(u1)
	theta := 2 * math.Pi * u2
	x := r * math.Cos(theta)
	y := r * math.Sin(theta)
	z := math.Sqrt(math.Max(0, 1-u1))

	t, b := n.Basis()
	return t.MulScalar(x).Add(b.MulScalar(y)).Add(n.MulScalar(z)).Normalize()
}

// CosineLobeAround perturbs direction d by a cosine lobe of half-width
// proportional to spread, used to blur mirror reflection by surface roughness.
func CosineLobeAround(d Vector, spread float64, rng *rand.Rand) Vector {
	if spread <= 0 {
		return d
	}
	perturbed := CosineSampleHemisphere(d, rng)
	return d.Lerp(perturbed, spread).Normalize()
}
