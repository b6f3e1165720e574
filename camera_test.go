package pathtracer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCameraRayCenterPointsAtTarget(t *testing.T) {
	c := NewCamera(V(0, 0, 5), V(0, 0, 0), V(0, 1, 0), 0, 1)
	r := c.Ray(0.5, 0.5)
	require.Equal(t, V(0, 0, 5), r.Origin)
	require.InDelta(t, 0, r.Direction.X, 1e-9)
	require.InDelta(t, 0, r.Direction.Y, 1e-9)
	require.InDelta(t, -1, r.Direction.Z, 1e-9)
}

func TestCameraDefaultsUpAndFOV(t *testing.T) {
	c := NewCamera(V(0, 0, 5), V(0, 0, 0), Vector{}, 0, 1)
	require.Equal(t, Vector{0, 1, 0}, c.Up)
	require.InDelta(t, Radians(60), c.FOVY, 1e-12)
}

func TestCameraRayDirectionsAreUnitLength(t *testing.T) {
	c := NewCamera(V(3, 4, 5), V(0, 0, 0), V(0, 1, 0), Radians(90), 16.0/9.0)
	for _, uv := range [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0.5, 0.5}} {
		r := c.Ray(uv[0], uv[1])
		require.InDelta(t, 1, r.Direction.Length(), 1e-9)
	}
}
