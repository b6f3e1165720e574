package pathtracer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectorNormalizeZeroLengthStaysZero(t *testing.T) {
	v := Vector{}
	require.Equal(t, Vector{}, v.Normalize())
}

func TestVectorNormalizeUnitLength(t *testing.T) {
	v := V(3, 4, 0).Normalize()
	require.InDelta(t, 1, v.Length(), 1e-12)
	require.InDelta(t, 0.6, v.X, 1e-12)
	require.InDelta(t, 0.8, v.Y, 1e-12)
}

func TestVectorReflectAboutNormal(t *testing.T) {
	incoming := V(1, -1, 0)
	n := V(0, 1, 0)
	r := incoming.Reflect(n)
	require.InDelta(t, 1, r.X, 1e-12)
	require.InDelta(t, 1, r.Y, 1e-12)
	require.InDelta(t, 0, r.Z, 1e-12)
}

func TestVectorBasisIsOrthonormal(t *testing.T) {
	n := V(0, 0, 1)
	tangent, bitangent := n.Basis()
	require.InDelta(t, 0, tangent.Dot(n), 1e-9)
	require.InDelta(t, 0, bitangent.Dot(n), 1e-9)
	require.InDelta(t, 0, tangent.Dot(bitangent), 1e-9)
	require.InDelta(t, 1, tangent.Length(), 1e-9)
	require.InDelta(t, 1, bitangent.Length(), 1e-9)
}

func TestVectorCrossProduct(t *testing.T) {
	x := V(1, 0, 0)
	y := V(0, 1, 0)
	require.Equal(t, V(0, 0, 1), x.Cross(y))
}

func TestVectorIsDegenerate(t *testing.T) {
	require.False(t, V(1, 2, 3).IsDegenerate())
	require.True(t, V(1, 0, 0).DivScalar(0).IsDegenerate())
}
