package pathtracer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhongShadeNoSpecularAtZeroShininess(t *testing.T) {
	sm := SampledMaterial{Albedo: White, Specular: White, Shininess: 0}
	n := V(0, 1, 0)
	v := V(0, 1, 0)
	l := V(0, 1, 0)
	c := PhongShade(n, v, l, sm)
	require.InDelta(t, 1, c.R, 1e-9)
	require.InDelta(t, 1, c.G, 1e-9)
	require.InDelta(t, 1, c.B, 1e-9)
}

func TestPhongShadeBackFacingLightIsBlack(t *testing.T) {
	sm := SampledMaterial{Albedo: White, Specular: White, Shininess: 32}
	n := V(0, 1, 0)
	v := V(0, 1, 0)
	l := V(0, -1, 0) // light behind the surface
	c := PhongShade(n, v, l, sm)
	require.Equal(t, 0.0, c.R)
	require.Equal(t, 0.0, c.G)
	require.Equal(t, 0.0, c.B)
}

func TestPhongShadeAddsSpecularWhenHalfVectorIsNormal(t *testing.T) {
	sm := SampledMaterial{Albedo: Black, Specular: White, Shininess: 2}
	n := V(0, 1, 0)
	v := V(0, 1, 0)
	l := V(0, 1, 0)
	c := PhongShade(n, v, l, sm)
	require.InDelta(t, 1, c.R, 1e-9) // half vector == n, NdotH = 1, spec = 1^2 = 1
}

func TestCookTorranceZeroBelowHorizon(t *testing.T) {
	sm := SampledMaterial{Albedo: White, Metalness: 0, Roughness: 0.5}
	n := V(0, 1, 0)
	v := V(0, 1, 0)
	l := V(0, -1, 0)
	c := CookTorrance(n, v, l, sm)
	require.Equal(t, 0.0, c.R)
}

func TestCookTorranceNormalIncidenceIsFinite(t *testing.T) {
	sm := SampledMaterial{Albedo: White, Metalness: 0.5, Roughness: 0.3}
	n := V(0, 1, 0)
	v := V(0, 1, 0)
	l := V(0, 1, 0)
	c := CookTorrance(n, v, l, sm)
	require.False(t, c.IsNaN())
	require.GreaterOrEqual(t, c.R, 0.0)
}

func TestFresnelSchlickGrazingApproachesOne(t *testing.T) {
	r0 := 0.04
	grazing := FresnelSchlick(0.01, r0)
	normal := FresnelSchlick(1.0, r0)
	require.InDelta(t, r0, normal, 1e-9)
	require.Greater(t, grazing, normal)
	require.LessOrEqual(t, grazing, 1.0+1e-9)
}

func TestFresnelSchlickVectorMatchesScalarPerChannel(t *testing.T) {
	f0 := Vector{0.9, 0.2, 0.04}
	v := FresnelSchlickVector(0.5, f0)
	require.InDelta(t, FresnelSchlick(0.5, f0.X), v.X, 1e-9)
	require.InDelta(t, FresnelSchlick(0.5, f0.Y), v.Y, 1e-9)
	require.InDelta(t, FresnelSchlick(0.5, f0.Z), v.Z, 1e-9)
}

func TestPhysicalF0BlendsTowardAlbedoWithMetalness(t *testing.T) {
	albedo := Color{R: 0.8, G: 0.1, B: 0.1, A: 1}
	dielectric := PhysicalF0(albedo, 0)
	metal := PhysicalF0(albedo, 1)
	require.InDelta(t, 0.04, dielectric.X, 1e-9)
	require.InDelta(t, albedo.R, metal.X, 1e-9)
	require.InDelta(t, albedo.G, metal.Y, 1e-9)
}

func TestDistributionGGXPeaksAtNormalIncidence(t *testing.T) {
	alpha := 0.1
	atNormal := distributionGGX(1, alpha)
	atGrazing := distributionGGX(0.1, alpha)
	require.Greater(t, atNormal, atGrazing)
	require.False(t, math.IsNaN(atNormal))
}
