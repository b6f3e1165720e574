package pathtracer

import (
	"math"
	"math/rand"
)

// Shade evaluates the recursive Monte Carlo shading function for one
// ray at the given recursion depth, generalized from a rasterizer
// fragment function into a callable that queries the BVH itself and
// recurses for reflection/refraction — grounded in
// PhongShader.Fragment (diffuse/specular/ambient accumulation) and
// PBRLighting.CalculatePBR/calculateLightContribution in pbr.go (the
// Cook-Torrance per-light loop), neither of which had any notion of
// recursion, reflection, or refraction since a rasterizer fragment
// shader never recurses.
func Shade(scene *Scene, ray Ray, depth int, rng *rand.Rand) Color {
	hit, ok := scene.BVH.Intersect(ray, math.Inf(1))
	if !ok {
		return Black
	}

	n := hit.Normal
	v := ray.Direction.Negate().Normalize()
	sm := hit.Primitive.Material.Sample(hit.UV.X, hit.UV.Y)

	result := sm.Emissive

	direct := directLighting(scene, hit.Point, n, v, sm)
	if sm.Kind == PhongMaterial {
		direct = direct.Add(ambientContribution(scene, sm))
	}

	direct = direct.MulScalar(ambientOcclusionFactor(scene, hit.Point, n, rng))
	if sm.Opacity < 1 && depth < scene.MaxDepth {
		// the transmitted ray carries the remaining 1-opacity share
		direct = direct.MulScalar(sm.Opacity)
	}
	result = result.Add(direct)

	if depth < scene.MaxDepth {
		result = result.Add(reflectionContribution(scene, ray, hit, n, v, sm, depth, rng))
		result = result.Add(refractionContribution(scene, ray, hit, n, v, sm, depth, rng))
	}

	return Color{
		R: math.Max(0, result.R),
		G: math.Max(0, result.G),
		B: math.Max(0, result.B),
		A: 1,
	}
}

// directLighting sums the BRDF evaluation over every non-ambient light
// whose shadow ray reaches it unoccluded.
func directLighting(scene *Scene, point, n, v Vector, sm SampledMaterial) Color {
	var sum Color
	for _, light := range scene.Lights {
		if light.Kind == AmbientLight {
			continue
		}
		l, radiance, distance := light.Illuminate(point)
		shadowOrigin := point.Add(n.MulScalar(DefaultTMin * 10))
		shadowRay := NewRay(shadowOrigin, l)
		if scene.BVH.AnyHit(shadowRay, distance) {
			continue
		}
		var brdf Color
		if sm.Kind == PhysicalMaterial {
			brdf = CookTorrance(n, v, l, sm)
		} else {
			brdf = PhongShade(n, v, l, sm)
		}
		sum = sum.Add(brdf.Mul(radiance))
	}
	return sum
}

// ambientContribution is the Phong-only `color * sum(ambient lights)`
// term.
func ambientContribution(scene *Scene, sm SampledMaterial) Color {
	var ambient Color
	for _, light := range scene.Lights {
		if light.Kind != AmbientLight {
			continue
		}
		ambient = ambient.Add(light.Color.MulScalar(light.Intensity))
	}
	return sm.Albedo.Mul(ambient)
}

// ambientOcclusionFactor samples one cosine-weighted hemisphere
// direction and attenuates the direct+ambient contribution by how close
// the occluder is. Disabled (returns 1) when
// MaxOcclusionDistance is non-positive.
func ambientOcclusionFactor(scene *Scene, point, n Vector, rng *rand.Rand) float64 {
	maxD := scene.MaxOcclusionDistance
	if maxD <= 0 {
		return 1
	}
	dir := CosineSampleHemisphere(n, rng)
	origin := point.Add(n.MulScalar(DefaultTMin * 10))
	ray := NewRay(origin, dir)
	hit, ok := scene.BVH.Intersect(ray, maxD)
	if !ok {
		return 1
	}
	return 1 - (1 - hit.T/maxD)
}

// reflectionContribution recurses along the mirror direction, weighted
// step 7: Phong uses its scalar Reflectivity, Physical
// uses the Fresnel term mixed toward metalness, with the reflected
// direction perturbed by a cosine lobe of width roughness^2.
func reflectionContribution(scene *Scene, ray Ray, hit Hit, n, v Vector, sm SampledMaterial, depth int, rng *rand.Rand) Color {
	var weight float64
	var spread float64
	switch sm.Kind {
	case PhongMaterial:
		weight = sm.Reflectivity
	default:
		cosTheta := math.Max(0, v.Dot(n))
		f0 := sm.FresnelR0()
		fresnel := FresnelSchlick(cosTheta, f0)
		weight = math.Max(fresnel, sm.Metalness)
		spread = sm.Roughness * sm.Roughness
	}
	if weight <= 0 {
		return Black.Alpha(0)
	}
	reflected := ray.Direction.Reflect(n).Normalize()
	reflected = CosineLobeAround(reflected, spread, rng)
	origin := hit.Point.Add(n.MulScalar(DefaultTMin * 10))
	color := Shade(scene, NewRay(origin, reflected), depth+1, rng)
	return color.MulScalar(weight)
}

// refractionContribution traces the transmitted ray through the surface
// via Snell's law, falling back to mirror reflection on total internal
// reflection, splitting energy between reflected and transmitted rays
// via the same Fresnel term so neither double-counts nor leaves energy
// on the floor.
func refractionContribution(scene *Scene, ray Ray, hit Hit, n, v Vector, sm SampledMaterial, depth int, rng *rand.Rand) Color {
	if sm.Opacity >= 1 {
		return Black.Alpha(0)
	}

	incident := ray.Direction.Normalize()
	normal := n
	eta := 1 / sm.RefractiveIndex
	cosI := -normal.Dot(incident)
	if cosI < 0 {
		// exiting the surface: flip normal and invert the ratio
		normal = normal.Negate()
		cosI = -cosI
		eta = sm.RefractiveIndex
	}

	k := 1 - eta*eta*(1-cosI*cosI)
	f0 := sm.FresnelR0()
	reflectWeight := FresnelSchlick(math.Max(0, cosI), f0)

	if k < 0 {
		// total internal reflection: all energy goes to the mirror ray
		reflected := incident.Reflect(normal).Normalize()
		origin := hit.Point.Add(normal.Negate().MulScalar(DefaultTMin * 10))
		color := Shade(scene, NewRay(origin, reflected), depth+1, rng)
		return color.MulScalar(1 - sm.Opacity)
	}

	transmitted := incident.MulScalar(eta).Add(normal.MulScalar(eta*cosI - math.Sqrt(k))).Normalize()
	refractOrigin := hit.Point.Add(normal.Negate().MulScalar(DefaultTMin * 10))
	refractColor := Shade(scene, NewRay(refractOrigin, transmitted), depth+1, rng)

	reflected := incident.Reflect(normal).Normalize()
	reflectOrigin := hit.Point.Add(normal.MulScalar(DefaultTMin * 10))
	reflectColor := Shade(scene, NewRay(reflectOrigin, reflected), depth+1, rng)

	transmitWeight := 1 - sm.Opacity
	out := refractColor.MulScalar((1 - reflectWeight) * transmitWeight)
	out = out.Add(reflectColor.MulScalar(reflectWeight * transmitWeight))
	return out
}
