package pathtracer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func planeScene(lights []Light, maxOcclusion float64) *Scene {
	mat := NewPhongMaterial(Color{R: 1, G: 1, B: 1, A: 1}, Color{}, 0)
	root := &Node{
		Kind:     PlaneNode,
		Material: mat,
		Plane:    Plane{Normal: V(0, 1, 0), Point: V(0, 0, 0)},
	}
	cam := NewCamera(V(0, 10, 0), V(0, 0, 0), V(0, 0, -1), Radians(60), 1)
	return NewScene(4, 4, 3, &maxOcclusion, 2.2, cam, lights, root)
}

// Scenario 3: with only ambient light and no point lights, a
// Phong surface's contribution is exactly `color * ambient`, independent
// of view or recursion depth.
func TestAmbientOnlyContribution(t *testing.T) {
	scene := planeScene([]Light{NewAmbientLight(Color{R: 0.1, G: 0.1, B: 0.1, A: 1})}, 0)
	ray := NewRay(V(0, 10, 0), V(0, -1, 0))
	rng := rand.New(rand.NewSource(1))

	c := Shade(scene, ray, 0, rng)
	require.InDelta(t, 0.1, c.R, 1e-9)
	require.InDelta(t, 0.1, c.G, 1e-9)
	require.InDelta(t, 0.1, c.B, 1e-9)
}

// Scenario 4: single white point light at (0,10,0) above a
// white diffuse plane y=0, camera looking straight down: central pixel
// brightness ~= 1/100 before tonemap (falloff = intensity/distance^2,
// N.L = 1, no specular since shininess is 0).
func TestPointLightOverPlaneBrightness(t *testing.T) {
	light := NewPointLight(V(0, 10, 0), Color{R: 1, G: 1, B: 1, A: 1}, 1)
	scene := planeScene([]Light{light}, 0)
	ray := NewRay(V(0, 10, 0), V(0, -1, 0))
	rng := rand.New(rand.NewSource(1))

	c := Shade(scene, ray, 0, rng)
	require.InDelta(t, 1.0/100, c.R, 1e-6)
	require.InDelta(t, 1.0/100, c.G, 1e-6)
	require.InDelta(t, 1.0/100, c.B, 1e-6)
}

// step 1: a miss returns pure black regardless of ambient
// lights — ambient only ever multiplies a hit surface's albedo.
func TestMissReturnsBlack(t *testing.T) {
	scene := planeScene([]Light{NewAmbientLight(Color{R: 0.5, G: 0.5, B: 0.5, A: 1})}, 0)
	ray := NewRay(V(0, 10, 0), V(0, 1, 0)) // straight up, away from the plane
	rng := rand.New(rand.NewSource(1))

	c := Shade(scene, ray, 0, rng)
	require.Equal(t, 0.0, c.R)
	require.Equal(t, 0.0, c.G)
	require.Equal(t, 0.0, c.B)
}

// step 9 / recursion limit: a perfect mirror sphere with no
// other geometry terminates at MaxDepth rather than recursing forever.
func TestReflectionTerminatesAtMaxDepth(t *testing.T) {
	mat := NewPhongMaterial(Color{}, Color{}, 0)
	mat.Reflectivity = 1
	root := &Node{Kind: SphereNode, Material: mat, Sphere: Sphere{Radius: 1}}
	cam := NewCamera(V(0, 0, 5), V(0, 0, 0), V(0, 1, 0), Radians(60), 1)
	maxOcclusion := 0.0
	scene := NewScene(2, 2, 3, &maxOcclusion, 2.2, cam, nil, root)

	ray := NewRay(V(0, 0, 5), V(0, 0, -1))
	rng := rand.New(rand.NewSource(1))

	require.NotPanics(t, func() {
		c := Shade(scene, ray, 0, rng)
		require.False(t, math.IsNaN(c.R))
		require.False(t, math.IsInf(c.R, 0))
	})
}
