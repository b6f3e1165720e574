package pathtracer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// a group's material is inherited by children unless they
// specify their own, and a group's composed transform propagates to
// descendants (child_world = group_world · child_local).
func TestFlattenInheritsMaterialAndComposesTransform(t *testing.T) {
	groupMat := NewPhongMaterial(Color{R: 1, G: 0, B: 0, A: 1}, Color{}, 0)
	overrideMat := NewPhongMaterial(Color{R: 0, G: 1, B: 0, A: 1}, Color{}, 0)

	child1 := &Node{Kind: SphereNode, Sphere: Sphere{Radius: 1}} // inherits
	child2 := &Node{Kind: SphereNode, Sphere: Sphere{Radius: 1}, Material: overrideMat, Ops: []TransformOp{TranslateOp(V(0, 5, 0))}}

	root := &Node{
		Kind:     GroupNode,
		Material: groupMat,
		Ops:      []TransformOp{TranslateOp(V(10, 0, 0))},
		Children: []*Node{child1, child2},
	}

	prims := Flatten(root)
	require.Len(t, prims, 2)

	require.Same(t, groupMat, prims[0].Material)
	require.InDelta(t, 10, prims[0].World.MulPosition(V(0, 0, 0)).X, 1e-9)

	require.Same(t, overrideMat, prims[1].Material)
	world := prims[1].World.MulPosition(V(0, 0, 0))
	require.InDelta(t, 10, world.X, 1e-9)
	require.InDelta(t, 5, world.Y, 1e-9)
}

// a mesh node expands into one primitive per triangle, each
// sharing the parent's world transform and material.
func TestFlattenMeshExpandsPerTriangle(t *testing.T) {
	mat := NewPhongMaterial(White, Color{}, 0)
	tris := []*Triangle{
		NewTriangleForPoints(V(-1, -1, 0), V(1, -1, 0), V(0, 1, 0)),
		NewTriangleForPoints(V(-1, -1, 1), V(1, -1, 1), V(0, 1, 1)),
	}
	root := &Node{Kind: MeshNode, Material: mat, Mesh: NewTriangleMesh(tris)}

	prims := Flatten(root)
	require.Len(t, prims, 2)
	for _, p := range prims {
		require.Equal(t, TriangleNode, p.Kind)
		require.Same(t, mat, p.Material)
	}
}

// World AABB must conservatively enclose every world-space point of the
// primitive.
func TestPrimitiveWorldBoundsEnclosesLocalBounds(t *testing.T) {
	root := &Node{
		Kind:     SphereNode,
		Material: NewPhongMaterial(White, Color{}, 0),
		Sphere:   Sphere{Radius: 2},
		Ops:      []TransformOp{TranslateOp(V(5, 5, 5)), RotateOp(V(0, 1, 0), 30), ScaleOp(V(1, 1, 1))},
	}
	prims := Flatten(root)
	require.Len(t, prims, 1)
	p := prims[0]

	local := p.LocalBounds()
	corners := []Vector{
		{local.Min.X, local.Min.Y, local.Min.Z},
		{local.Max.X, local.Max.Y, local.Max.Z},
	}
	for _, c := range corners {
		world := p.World.MulPosition(c)
		require.True(t, p.WorldBounds.Contains(world), "world bounds must contain transformed corner %v", world)
	}
}
