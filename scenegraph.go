package pathtracer

// TransformOp is one entry of a node's local transform list:
// {"translate":[...]}, {"scale":[...]}, or {"rotate":[[ax,ay,az],deg]}.
type TransformOp struct {
	Kind  string // "translate", "scale", or "rotate"
	Value Vector
	Axis  Vector  // rotate only
	Deg   float64 // rotate only
}

func TranslateOp(v Vector) TransformOp { return TransformOp{Kind: "translate", Value: v} }
func ScaleOp(v Vector) TransformOp     { return TransformOp{Kind: "scale", Value: v} }
func RotateOp(axis Vector, deg float64) TransformOp {
	return TransformOp{Kind: "rotate", Axis: axis, Deg: deg}
}

// NewTransform folds a transform-op list into a single matrix, applying
// each op to the running matrix in list order so the first entry acts
// first on a local point (see the composition-order note on Matrix.Mul
// in matrix.go).
func NewTransform(ops []TransformOp) Matrix {
	m := Identity()
	for _, op := range ops {
		switch op.Kind {
		case "translate":
			m = m.Translate(op.Value)
		case "scale":
			m = m.Scale(op.Value)
		case "rotate":
			m = m.RotateDegrees(op.Axis, op.Deg)
		}
	}
	return m
}

// NodeKind tags what local geometry, if any, a Node carries.
type NodeKind int

const (
	GroupNode NodeKind = iota
	SphereNode
	CubeNode
	PlaneNode
	TriangleNode
	MeshNode
)

// Node is one entry of the scene JSON's object tree: a group
// or leaf shape node, carrying a local transform list and an optional
// material override inherited by children unless they specify their
// own. Grounded on the parent/child shape of SceneNode in scene.go,
// adapted from a mutable, re-walkable rasterizer scene graph
// (UpdateWorldTransform recursion on every mutation) to a tree that is
// walked exactly once, at Flatten.
type Node struct {
	Kind     NodeKind
	Ops      []TransformOp
	Material *Material // nil means "inherit from nearest ancestor"
	Children []*Node

	Sphere   Sphere
	Cube     Cube
	Plane    Plane
	Triangle *Triangle
	Mesh     *Mesh
}

// Primitive is one entry of the flattened world-primitive array produced
// by Flatten: self-contained geometry plus its resolved
// world transform, material, and precomputed world AABB, with no shared
// mutable state on the render hot path.
type Primitive struct {
	Kind     NodeKind
	Sphere   Sphere
	Cube     Cube
	Plane    Plane
	Triangle *Triangle
	Side     Side

	World        Matrix
	WorldInverse Matrix
	NormalMatrix Matrix
	Material     *Material
	WorldBounds  Box
}

// LocalBounds returns the canonical local-space AABB a Primitive would
// report before its world transform is applied.
func (p *Primitive) LocalBounds() Box {
	switch p.Kind {
	case SphereNode:
		return p.Sphere.LocalBounds()
	case CubeNode:
		return p.Cube.LocalBounds()
	case TriangleNode:
		return p.Triangle.BoundingBox()
	default:
		return p.Plane.LocalBounds()
	}
}

// Intersect transforms ray into local space, intersects the local
// geometry, and converts the resulting ShadingRecord's normal back to
// world space via the cached inverse-transpose normal matrix. The
// parametric t is unchanged by the transform round-trip (ray.Transform
// preserves t since the direction is not renormalized).
func (p *Primitive) Intersect(ray Ray, tMax float64) (ShadingRecord, bool) {
	local := ray.Transform(p.WorldInverse)
	local.TMax = tMax

	var rec ShadingRecord
	var ok bool
	switch p.Kind {
	case SphereNode:
		rec, ok = p.Sphere.Intersect(local, tMax)
	case CubeNode:
		rec, ok = p.Cube.Intersect(local, tMax)
	case PlaneNode:
		rec, ok = p.Plane.Intersect(local, tMax)
	case TriangleNode:
		rec, ok = IntersectTriangle(p.Triangle, p.Side, local, tMax)
	}
	if !ok {
		return ShadingRecord{}, false
	}
	rec.Point = p.World.MulPosition(rec.Point)
	rec.Normal = p.NormalMatrix.MulDirection(rec.Normal).Normalize()
	return rec, true
}

// Flatten depth-first-walks the node tree once, composing world
// transforms and inheriting materials, and emits one Primitive per leaf
// shape (one per triangle for a mesh node), each self-contained —
// a scene tree with shared materials flattened to independent
// primitives.
func Flatten(root *Node) []*Primitive {
	var out []*Primitive
	var walk func(n *Node, parentWorld Matrix, inherited *Material)
	walk = func(n *Node, parentWorld Matrix, inherited *Material) {
		local := NewTransform(n.Ops)
		world := parentWorld.Mul(local)
		mat := inherited
		if n.Material != nil {
			mat = n.Material
		}

		side := Front
		if mat != nil {
			side = mat.Side
		}

		switch n.Kind {
		case SphereNode:
			n.Sphere.Side = side
			out = append(out, makePrimitive(SphereNode, world, mat, Primitive{Sphere: n.Sphere}))
		case CubeNode:
			n.Cube.Side = side
			out = append(out, makePrimitive(CubeNode, world, mat, Primitive{Cube: n.Cube}))
		case PlaneNode:
			n.Plane.Side = side
			out = append(out, makePrimitive(PlaneNode, world, mat, Primitive{Plane: n.Plane}))
		case TriangleNode:
			out = append(out, makePrimitive(TriangleNode, world, mat, Primitive{Triangle: n.Triangle, Side: side}))
		case MeshNode:
			for _, t := range n.Mesh.Triangles {
				out = append(out, makePrimitive(TriangleNode, world, mat, Primitive{Triangle: t, Side: side}))
			}
		}
		for _, c := range n.Children {
			walk(c, world, mat)
		}
	}
	walk(root, Identity(), nil)
	return out
}

func makePrimitive(kind NodeKind, world Matrix, mat *Material, base Primitive) *Primitive {
	base.Kind = kind
	base.World = world
	base.WorldInverse = world.Inverse()
	base.NormalMatrix = world.NormalMatrix()
	base.Material = mat
	base.WorldBounds = world.MulBox(base.LocalBounds())
	return &base
}
