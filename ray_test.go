package pathtracer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRayDefaults(t *testing.T) {
	r := NewRay(V(1, 2, 3), V(0, 0, 1))
	require.Equal(t, DefaultTMin, r.TMin)
	require.True(t, math.IsInf(r.TMax, 1))
}

func TestRayAt(t *testing.T) {
	r := NewRay(V(0, 0, 0), V(1, 0, 0))
	p := r.At(5)
	require.Equal(t, V(5, 0, 0), p)
}

func TestRayTransformPreservesParametricT(t *testing.T) {
	r := NewRay(V(0, 0, 5), V(0, 0, -1))
	m := Translate(V(0, 0, 5))
	local := r.Transform(m.Inverse())
	// local.At(t) must equal the inverse-transformed world hit point at the
	// same t, for any t.
	worldHit := r.At(5)
	localHit := m.Inverse().MulPosition(worldHit)
	require.InDelta(t, localHit.X, local.At(5).X, 1e-9)
	require.InDelta(t, localHit.Y, local.At(5).Y, 1e-9)
	require.InDelta(t, localHit.Z, local.At(5).Z, 1e-9)
}
