package pathtracer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPointLightInverseSquareFalloff(t *testing.T) {
	l := NewPointLight(V(0, 10, 0), White, 1)
	dir, radiance, distance := l.Illuminate(V(0, 0, 0))
	require.InDelta(t, 10, distance, 1e-9)
	require.InDelta(t, 0.01, radiance.R, 1e-9) // 1/10^2
	require.InDelta(t, 1, dir.Y, 1e-9)
}

func TestPointLightIntensityDefaultsToOne(t *testing.T) {
	l := NewPointLight(V(0, 1, 0), White, 0)
	require.Equal(t, 1.0, l.Intensity)
}

func TestAmbientLightHasNoDirectionOrFalloff(t *testing.T) {
	l := NewAmbientLight(Color{R: 0.2, G: 0.2, B: 0.2, A: 1})
	dir, radiance, distance := l.Illuminate(V(5, 5, 5))
	require.Equal(t, Vector{}, dir)
	require.Equal(t, 0.0, distance)
	require.InDelta(t, 0.2, radiance.R, 1e-9)
}

func TestPointLightAtLightPositionDoesNotDivideByZero(t *testing.T) {
	l := NewPointLight(V(1, 1, 1), White, 1)
	_, radiance, distance := l.Illuminate(V(1, 1, 1))
	require.Equal(t, 0.0, distance)
	require.False(t, math.IsNaN(radiance.R))
	require.False(t, math.IsInf(radiance.R, 0))
}
