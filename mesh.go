package pathtracer

import (
	"math"

	simplifylib "github.com/fogleman/simplify"
)

// Vertex is one corner of a Triangle: position, shading normal, and
// texture coordinate (Texture.X/Texture.Y are u/v). Reconstructed from
// call-site usage in shapes.go/shader.go (see DESIGN.md).
type Vertex struct {
	Position Vector
	Normal   Vector
	Texture  Vector
}

// InterpolateVertexes barycentrically blends three vertices by weights
// w.X, w.Y, w.Z, renormalizing the blended normal.
func InterpolateVertexes(v1, v2, v3 Vertex, w VectorW) Vertex {
	return Vertex{
		Position: v1.Position.MulScalar(w.X).Add(v2.Position.MulScalar(w.Y)).Add(v3.Position.MulScalar(w.Z)),
		Normal:   v1.Normal.MulScalar(w.X).Add(v2.Normal.MulScalar(w.Y)).Add(v3.Normal.MulScalar(w.Z)).Normalize(),
		Texture:  v1.Texture.MulScalar(w.X).Add(v2.Texture.MulScalar(w.Y)).Add(v3.Texture.MulScalar(w.Z)),
	}
}

// Triangle is a mesh face. Reconstructed alongside Vertex (see above).
type Triangle struct {
	V1, V2, V3 Vertex
}

// NewTriangle builds a triangle from three vertices, computing a face
// normal when the supplied vertex normals are degenerate.
func NewTriangle(v1, v2, v3 Vertex) *Triangle {
	t := &Triangle{v1, v2, v3}
	if t.V1.Normal.IsDegenerate() || t.V1.Normal == (Vector{}) {
		n := t.Normal()
		t.V1.Normal, t.V2.Normal, t.V3.Normal = n, n, n
	}
	return t
}

// NewTriangleForPoints builds a triangle from bare positions, deriving a
// flat face normal and zero UVs — the procedural-mesh idiom used in
// shapes.go (NewCube, NewIcosahedron).
func NewTriangleForPoints(p1, p2, p3 Vector) *Triangle {
	n := p2.Sub(p1).Cross(p3.Sub(p1)).Normalize()
	return &Triangle{
		V1: Vertex{Position: p1, Normal: n},
		V2: Vertex{Position: p2, Normal: n},
		V3: Vertex{Position: p3, Normal: n},
	}
}

// Normal returns the flat face normal (not the interpolated vertex
// normals), used to re-derive normals after smoothing/simplification.
func (t *Triangle) Normal() Vector {
	e1 := t.V2.Position.Sub(t.V1.Position)
	e2 := t.V3.Position.Sub(t.V1.Position)
	return e1.Cross(e2).Normalize()
}

func (t *Triangle) Area() float64 {
	e1 := t.V2.Position.Sub(t.V1.Position)
	e2 := t.V3.Position.Sub(t.V1.Position)
	return e1.Cross(e2).Length() / 2
}

func (t *Triangle) BoundingBox() Box {
	min := t.V1.Position.Min(t.V2.Position).Min(t.V3.Position)
	max := t.V1.Position.Max(t.V2.Position).Max(t.V3.Position)
	return Box{min, max}
}

func (t *Triangle) Transform(m Matrix) {
	t.V1.Position = m.MulPosition(t.V1.Position)
	t.V2.Position = m.MulPosition(t.V2.Position)
	t.V3.Position = m.MulPosition(t.V3.Position)
	nm := m.NormalMatrix()
	t.V1.Normal = nm.MulDirection(t.V1.Normal).Normalize()
	t.V2.Normal = nm.MulDirection(t.V2.Normal).Normalize()
	t.V3.Normal = nm.MulDirection(t.V3.Normal).Normalize()
}

func (t *Triangle) ReverseWinding() {
	t.V1, t.V3 = t.V3, t.V1
}

// Mesh is a collection of triangles sharing a material and transform.
// Dropped the Line slice (no wireframe rendering in a path tracer) and
// kept the cached bounding box and large-mesh SIMD transform path from
// mesh.go.
type Mesh struct {
	Triangles []*Triangle
	box       *Box
}

func NewTriangleMesh(triangles []*Triangle) *Mesh {
	return &Mesh{Triangles: triangles}
}

func (m *Mesh) dirty() { m.box = nil }

func (m *Mesh) Copy() *Mesh {
	triangles := make([]*Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		a := *t
		triangles[i] = &a
	}
	return NewTriangleMesh(triangles)
}

func (m *Mesh) Volume() float64 {
	var v float64
	for _, t := range m.Triangles {
		p1, p2, p3 := t.V1.Position, t.V2.Position, t.V3.Position
		v += p1.X*(p2.Y*p3.Z-p3.Y*p2.Z) - p2.X*(p1.Y*p3.Z-p3.Y*p1.Z) + p3.X*(p1.Y*p2.Z-p2.Y*p1.Z)
	}
	return math.Abs(v / 6)
}

func (m *Mesh) SurfaceArea() float64 {
	var a float64
	for _, t := range m.Triangles {
		a += t.Area()
	}
	return a
}

// SmoothNormals averages per-position normals across all triangles that
// share a vertex, producing smooth (Gouraud-style) shading normals. Kept
// verbatim from mesh.go.
func (m *Mesh) SmoothNormals() {
	lookup := make(map[Vector]Vector)
	for _, t := range m.Triangles {
		lookup[t.V1.Position] = lookup[t.V1.Position].Add(t.V1.Normal)
		lookup[t.V2.Position] = lookup[t.V2.Position].Add(t.V2.Normal)
		lookup[t.V3.Position] = lookup[t.V3.Position].Add(t.V3.Normal)
	}
	for k, v := range lookup {
		lookup[k] = v.Normalize()
	}
	for _, t := range m.Triangles {
		t.V1.Normal = lookup[t.V1.Position]
		t.V2.Normal = lookup[t.V2.Position]
		t.V3.Normal = lookup[t.V3.Position]
	}
}

func (m *Mesh) BoundingBox() Box {
	if m.box == nil {
		box := EmptyBox
		for _, t := range m.Triangles {
			box = box.Extend(t.BoundingBox())
		}
		m.box = &box
	}
	return *m.box
}

// Transform applies matrix to every triangle's vertices and normals.
// Meshes over 1000 triangles take the SIMD batch path carried from
// transformWithSIMD, which amortizes the matrix-to-flat-array conversion
// across the whole vertex buffer.
func (m *Mesh) Transform(matrix Matrix) {
	if len(m.Triangles) > 1000 {
		m.transformWithSIMD(matrix)
	} else {
		for _, t := range m.Triangles {
			t.Transform(matrix)
		}
	}
	m.dirty()
}

func (m *Mesh) transformWithSIMD(matrix Matrix) {
	simdMatrix := NewSIMDMat4FromMatrix(matrix)
	normalMatrix := matrix.NormalMatrix()
	for _, t := range m.Triangles {
		for _, v := range [...]*Vertex{&t.V1, &t.V2, &t.V3} {
			p := v.Position
			tp := simdMatrix.MulPositionSIMD([4]float64{p.X, p.Y, p.Z, 1})
			v.Position = Vector{tp[0], tp[1], tp[2]}
			n := v.Normal
			tn := normalMatrix.MulDirection(n)
			v.Normal = tn.Normalize()
		}
	}
}

// Simplify decimates the mesh's triangle count toward factor in [0,1]
// (1 = unchanged), used by sceneio for a mesh node's optional simplify field.
// Delegates to github.com/fogleman/simplify's NewMesh(...).Simplify(factor),
// converting through that package's plain Vector/Triangle types and
// restoring the mesh's vertex normals afterward since the decimation
// library only carries positions through its quadric-error collapse.
func (m *Mesh) Simplify(factor float64) {
	if factor >= 1 || len(m.Triangles) == 0 {
		return
	}
	if factor <= 0 {
		m.Triangles = nil
		m.dirty()
		return
	}

	src := make([]*simplifylib.Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		src[i] = &simplifylib.Triangle{
			V1: simplifylib.Vector{X: t.V1.Position.X, Y: t.V1.Position.Y, Z: t.V1.Position.Z},
			V2: simplifylib.Vector{X: t.V2.Position.X, Y: t.V2.Position.Y, Z: t.V2.Position.Z},
			V3: simplifylib.Vector{X: t.V3.Position.X, Y: t.V3.Position.Y, Z: t.V3.Position.Z},
		}
	}
	simplified := simplifylib.NewMesh(src).Simplify(factor)

	out := make([]*Triangle, len(simplified.Triangles))
	for i, t := range simplified.Triangles {
		out[i] = NewTriangleForPoints(
			Vector{t.V1.X, t.V1.Y, t.V1.Z},
			Vector{t.V2.X, t.V2.Y, t.V2.Z},
			Vector{t.V3.X, t.V3.Y, t.V3.Z},
		)
	}
	m.Triangles = out
	m.SmoothNormals()
	m.dirty()
}
