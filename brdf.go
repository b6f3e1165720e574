package pathtracer

import "math"

// distributionGGX is the Trowbridge-Reitz/GGX normal distribution term,
// lifted near verbatim from PBRLighting.distributionGGX in pbr.go.
func distributionGGX(NdotH, alpha float64) float64 {
	a2 := alpha * alpha
	d := NdotH*NdotH*(a2-1) + 1
	return a2 / (math.Pi * d * d)
}

// geometrySchlickGGX is the single-direction Schlick-GGX occlusion term.
func geometrySchlickGGX(NdotV, alpha float64) float64 {
	k := (alpha + 1) * (alpha + 1) / 8
	return NdotV / (NdotV*(1-k) + k)
}

// geometrySmith combines the view and light occlusion terms via Smith's
// method (PBRLighting.geometrySmith in pbr.go).
func geometrySmith(NdotV, NdotL, alpha float64) float64 {
	return geometrySchlickGGX(NdotV, alpha) * geometrySchlickGGX(NdotL, alpha)
}

// CookTorrance evaluates the Physical (metallic-roughness) BRDF for one
// light direction, D*G*F/(4*NdotL*NdotV) for specular,
// (1-F)*(1-metalness)*albedo/pi for diffuse, both scaled by NdotL.
// Grounded on calculateLightContribution in pbr.go,
// generalized from "per-fragment given a light list" into a pure
// function the integrator calls once per light per recursive shade.
func CookTorrance(n, v, l Vector, sm SampledMaterial) Color {
	NdotL := math.Max(0, n.Dot(l))
	if NdotL <= 0 {
		return Black.Alpha(0)
	}
	NdotV := math.Max(0, n.Dot(v))
	if NdotV <= 0 {
		return Black.Alpha(0)
	}
	h := l.Add(v).Normalize()
	NdotH := math.Max(0, n.Dot(h))
	VdotH := math.Max(0, v.Dot(h))

	alpha := sm.Roughness * sm.Roughness
	f0 := PhysicalF0(sm.Albedo, sm.Metalness)

	D := distributionGGX(NdotH, alpha)
	G := geometrySmith(NdotV, NdotL, alpha)
	F := FresnelSchlickVector(VdotH, f0)

	specular := F.MulScalar(D * G / (4*NdotV*NdotL + 1e-4))

	kD := Vector{1, 1, 1}.Sub(F).MulScalar(1 - sm.Metalness)
	diffuse := kD.Mul(sm.Albedo.Vector()).MulScalar(1 / math.Pi)

	brdf := diffuse.Add(specular)
	return ColorFromVector(brdf.MulScalar(NdotL))
}

// PhongShade evaluates the classical Blinn-Phong local term for one
// light direction, Generalized from PhongShader.Fragment
// in shader.go, which accumulated exactly this diffuse +
// specular sum per-fragment given a single fixed light direction.
func PhongShade(n, v, l Vector, sm SampledMaterial) Color {
	NdotL := math.Max(0, n.Dot(l))
	if NdotL <= 0 {
		return Black.Alpha(0)
	}
	diffuse := sm.Albedo.MulScalar(NdotL)

	result := diffuse
	if sm.Shininess > 0 {
		h := l.Add(v).Normalize()
		NdotH := math.Max(0, n.Dot(h))
		if NdotH > 0 {
			spec := math.Pow(NdotH, sm.Shininess)
			result = result.Add(sm.Specular.MulScalar(spec))
		}
	}
	return result
}
