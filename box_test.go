package pathtracer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoxExtendFromEmpty(t *testing.T) {
	b := EmptyBox.Extend(Box{Min: V(-1, -1, -1), Max: V(1, 1, 1)})
	require.Equal(t, V(-1, -1, -1), b.Min)
	require.Equal(t, V(1, 1, 1), b.Max)
}

func TestBoxContainsAndIntersects(t *testing.T) {
	b := Box{Min: V(0, 0, 0), Max: V(2, 2, 2)}
	require.True(t, b.Contains(V(1, 1, 1)))
	require.False(t, b.Contains(V(3, 1, 1)))

	other := Box{Min: V(1, 1, 1), Max: V(3, 3, 3)}
	require.True(t, b.Intersects(other))
	disjoint := Box{Min: V(10, 10, 10), Max: V(11, 11, 11)}
	require.False(t, b.Intersects(disjoint))
}

func TestBoxSurfaceArea(t *testing.T) {
	b := Box{Min: V(0, 0, 0), Max: V(1, 2, 3)}
	require.InDelta(t, 2*(1*2+2*3+3*1), b.SurfaceArea(), 1e-9)
}

func TestBoxIntersectRayHitAndMiss(t *testing.T) {
	b := Box{Min: V(-1, -1, -1), Max: V(1, 1, 1)}
	hitRay := NewRay(V(0, 0, -5), V(0, 0, 1))
	tNear, tFar, hit := b.IntersectRay(hitRay, 1e9)
	require.True(t, hit)
	require.InDelta(t, 4, tNear, 1e-9)
	require.InDelta(t, 6, tFar, 1e-9)

	missRay := NewRay(V(5, 5, -5), V(0, 0, 1))
	_, _, missHit := b.IntersectRay(missRay, 1e9)
	require.False(t, missHit)
}

func TestBoxCenterAndSize(t *testing.T) {
	b := Box{Min: V(0, 0, 0), Max: V(4, 2, 6)}
	require.Equal(t, V(2, 1, 3), b.Center())
	require.Equal(t, V(4, 2, 6), b.Size())
}
