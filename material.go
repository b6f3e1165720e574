package pathtracer

import "math"

// Side selects which face(s) of a primitive accept a hit.
type Side int

const (
	Front Side = iota
	Back
	Both
)

// MaterialKind tags which shading model a Material carries.
type MaterialKind int

const (
	PhongMaterial MaterialKind = iota
	PhysicalMaterial
)

// Material is a tagged variant: Phong (classical) or Physical
// (metallic-roughness), matching the habit of sampling every field up
// front seen in PBRMaterial.Sample rather than branching per-field at
// shade time.
type Material struct {
	Kind MaterialKind
	Side Side

	// Shared
	Color           Color
	Emissive        Color
	Opacity         float64
	RefractiveIndex float64
	AlbedoTexture   *Texture

	// Phong
	Specular      Color
	Shininess     float64
	Reflectivity  float64

	// Physical (metallic-roughness)
	Metalness float64
	Roughness float64
}

// NewPhongMaterial returns a Phong material with its implicit defaults:
// opaque, no reflectivity, IOR matching air.
func NewPhongMaterial(color, specular Color, shininess float64) *Material {
	return &Material{
		Kind:            PhongMaterial,
		Side:            Front,
		Color:           color,
		Specular:        specular,
		Shininess:       shininess,
		Emissive:        Black.Alpha(0),
		Opacity:         1,
		RefractiveIndex: 1,
	}
}

// NewPhysicalMaterial returns a Physical (metallic-roughness) material.
func NewPhysicalMaterial(color Color, metalness, roughness float64) *Material {
	return &Material{
		Kind:            PhysicalMaterial,
		Side:            Front,
		Color:           color,
		Metalness:       metalness,
		Roughness:       roughness,
		Emissive:        Black.Alpha(0),
		Opacity:         1,
		RefractiveIndex: 1,
	}
}

// SampledMaterial is a Material with its texture resolved at one UV,
// ready for the integrator's shading math. Grounded on
// PBRMaterial.Sample in pbr.go, trimmed to the fields this
// spec actually shades.
type SampledMaterial struct {
	Kind            MaterialKind
	Side            Side
	Albedo          Color
	Emissive        Color
	Opacity         float64
	RefractiveIndex float64
	Specular        Color
	Shininess       float64
	Reflectivity    float64
	Metalness       float64
	Roughness       float64
}

// Sample resolves the albedo texture (if any) at (u,v) and returns the
// flattened material ready for shading.
func (m *Material) Sample(u, v float64) SampledMaterial {
	albedo := m.Color
	if m.AlbedoTexture != nil {
		albedo = albedo.Mul(m.AlbedoTexture.BilinearSample(u, v))
	}
	return SampledMaterial{
		Kind:            m.Kind,
		Side:            m.Side,
		Albedo:          albedo,
		Emissive:        m.Emissive,
		Opacity:         m.Opacity,
		RefractiveIndex: m.RefractiveIndex,
		Specular:        m.Specular,
		Shininess:       m.Shininess,
		Reflectivity:    m.Reflectivity,
		Metalness:       m.Metalness,
		Roughness:       m.Roughness,
	}
}

// FresnelR0 is the scalar normal-incidence reflectance used by both the
// Phong and Physical reflection/refraction split: F0 =
// ((1-eta)/(1+eta))^2, eta = RefractiveIndex (object IOR over air IOR 1).
func (m SampledMaterial) FresnelR0() float64 {
	eta := m.RefractiveIndex
	f0 := (1 - eta) / (1 + eta)
	return f0 * f0
}

// FresnelSchlick evaluates the Schlick approximation at cosine cosTheta
// (the angle between the view/incident direction and the surface normal)
// given a scalar base reflectance f0.
func FresnelSchlick(cosTheta, f0 float64) float64 {
	cosTheta = math.Max(0, math.Min(1, cosTheta))
	return f0 + (1-f0)*math.Pow(1-cosTheta, 5)
}

// FresnelSchlickVector is the vector-valued form used by Physical
// shading, where F0 is tinted by the albedo as metalness increases
// (PBRLighting.fresnelSchlick in pbr.go).
func FresnelSchlickVector(cosTheta float64, f0 Vector) Vector {
	cosTheta = math.Max(0, math.Min(1, cosTheta))
	f := math.Pow(1-cosTheta, 5)
	one := Vector{1, 1, 1}
	return f0.Add(one.Sub(f0).MulScalar(f))
}

// PhysicalF0 mixes the non-metallic base reflectance (0.04) toward the
// albedo as metalness increases.
func PhysicalF0(albedo Color, metalness float64) Vector {
	dielectric := Vector{0.04, 0.04, 0.04}
	return dielectric.Lerp(albedo.Vector(), metalness)
}
