package pathtracer

import "math"

// ShadingRecord is produced by a primitive intersection: the
// hit distance, world point, outward world normal, UV, and whether the
// ray meets the geometric front face (d.n <= 0). It does not identify the
// primitive that was hit; the BVH pairs it with the primitive in Hit.
type ShadingRecord struct {
	T         float64
	Point     Vector
	Normal    Vector
	UV        Vector
	FrontFace bool
}

// resolveSide applies the Side discipline from Front rejects
// d.n>0, Back rejects d.n<0, Both accepts either and flips the reported
// normal to oppose the ray.
func resolveSide(side Side, d, n Vector) (Vector, bool) {
	dn := d.Dot(n)
	switch side {
	case Front:
		return n, dn <= 0
	case Back:
		return n, dn >= 0
	default: // Both
		if dn > 0 {
			return n.Negate(), true
		}
		return n, true
	}
}

// Sphere is a sphere of radius Radius centered at the local origin.
type Sphere struct {
	Radius float64
	Side   Side
}

func (s Sphere) LocalBounds() Box {
	r := s.Radius
	return Box{Vector{-r, -r, -r}, Vector{r, r, r}}
}

// Intersect solves |o+t*d|^2 = r^2 as a quadratic and reports the
// smaller positive root beyond TMin.
func (s Sphere) Intersect(ray Ray, tMax float64) (ShadingRecord, bool) {
	o, d := ray.Origin, ray.Direction
	a := d.Dot(d)
	b := 2 * o.Dot(d)
	c := o.Dot(o) - s.Radius*s.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return ShadingRecord{}, false
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)
	t := t0
	if t <= ray.TMin {
		t = t1
	}
	if t <= ray.TMin || t >= tMax {
		return ShadingRecord{}, false
	}
	p := ray.At(t)
	n := p.DivScalar(s.Radius).Normalize()
	normal, ok := resolveSide(s.Side, d, n)
	if !ok {
		return ShadingRecord{}, false
	}
	u := math.Atan2(p.Z, p.X)/(2*math.Pi) + 0.5
	v := math.Acos(math.Max(-1, math.Min(1, p.Y/s.Radius))) / math.Pi
	return ShadingRecord{T: t, Point: p, Normal: normal, UV: Vector{u, v, 0}, FrontFace: d.Dot(n) <= 0}, true
}

// Cube is an axis-aligned cube of half-extent s centered at the origin.
type Cube struct {
	HalfExtent float64
	Side       Side
}

func (c Cube) LocalBounds() Box {
	s := c.HalfExtent
	return Box{Vector{-s, -s, -s}, Vector{s, s, s}}
}

// Intersect is the slab test on [-s,s]^3; the hit face is the axis whose
// entry t is maximal.
func (c Cube) Intersect(ray Ray, tMax float64) (ShadingRecord, bool) {
	box := c.LocalBounds()
	tNear, tFar, hit := box.IntersectRay(ray, tMax)
	if !hit || tFar < tNear {
		return ShadingRecord{}, false
	}
	t := tNear
	if t <= ray.TMin {
		t = tFar
		if t <= ray.TMin || t >= tMax {
			return ShadingRecord{}, false
		}
	}
	p := ray.At(t)
	n := c.faceNormal(p)
	normal, ok := resolveSide(c.Side, ray.Direction, n)
	if !ok {
		return ShadingRecord{}, false
	}
	u, v := c.faceUV(p, n)
	return ShadingRecord{T: t, Point: p, Normal: normal, UV: Vector{u, v, 0}, FrontFace: ray.Direction.Dot(n) <= 0}, true
}

func (c Cube) faceNormal(p Vector) Vector {
	s := c.HalfExtent
	const eps = 1e-6
	switch {
	case math.Abs(p.X-s) < eps:
		return Vector{1, 0, 0}
	case math.Abs(p.X+s) < eps:
		return Vector{-1, 0, 0}
	case math.Abs(p.Y-s) < eps:
		return Vector{0, 1, 0}
	case math.Abs(p.Y+s) < eps:
		return Vector{0, -1, 0}
	case math.Abs(p.Z-s) < eps:
		return Vector{0, 0, 1}
	default:
		return Vector{0, 0, -1}
	}
}

func (c Cube) faceUV(p, n Vector) (float64, float64) {
	s := c.HalfExtent
	remap := func(x float64) float64 { return (x/s + 1) / 2 }
	switch {
	case n.X != 0:
		return remap(p.Z), remap(p.Y)
	case n.Y != 0:
		return remap(p.X), remap(p.Z)
	default:
		return remap(p.X), remap(p.Y)
	}
}

// Plane is the infinite plane through Point with unit Normal.
type Plane struct {
	Normal Vector
	Point  Vector
	Side   Side
}

func (p Plane) LocalBounds() Box {
	const big = 1e6
	return Box{Vector{-big, -big, -big}, Vector{big, big, big}}
}

func (p Plane) Intersect(ray Ray, tMax float64) (ShadingRecord, bool) {
	denom := ray.Direction.Dot(p.Normal)
	if math.Abs(denom) < 1e-9 {
		return ShadingRecord{}, false
	}
	t := p.Point.Sub(ray.Origin).Dot(p.Normal) / denom
	if t <= ray.TMin || t >= tMax {
		return ShadingRecord{}, false
	}
	hit := ray.At(t)
	normal, ok := resolveSide(p.Side, ray.Direction, p.Normal)
	if !ok {
		return ShadingRecord{}, false
	}
	tangent, bitangent := p.Normal.Basis()
	rel := hit.Sub(p.Point)
	uv := Vector{rel.Dot(tangent), rel.Dot(bitangent), 0}
	return ShadingRecord{T: t, Point: hit, Normal: normal, UV: uv, FrontFace: ray.Direction.Dot(p.Normal) <= 0}, true
}

// IntersectTriangle runs the Möller–Trumbore test against a standalone
// triangle. Shared by shape-level Triangle primitives and
// the mesh-per-triangle flattening in scenegraph.go.
func IntersectTriangle(tri *Triangle, side Side, ray Ray, tMax float64) (ShadingRecord, bool) {
	e1 := tri.V2.Position.Sub(tri.V1.Position)
	e2 := tri.V3.Position.Sub(tri.V1.Position)
	pvec := ray.Direction.Cross(e2)
	det := e1.Dot(pvec)
	if math.Abs(det) < 1e-9 {
		return ShadingRecord{}, false
	}
	invDet := 1 / det
	tvec := ray.Origin.Sub(tri.V1.Position)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return ShadingRecord{}, false
	}
	qvec := tvec.Cross(e1)
	v := ray.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return ShadingRecord{}, false
	}
	t := e2.Dot(qvec) * invDet
	if t <= ray.TMin || t >= tMax {
		return ShadingRecord{}, false
	}
	w := 1 - u - v
	faceNormal := e1.Cross(e2).Normalize()
	n := tri.V1.Normal.MulScalar(w).Add(tri.V2.Normal.MulScalar(u)).Add(tri.V3.Normal.MulScalar(v))
	if n.IsDegenerate() || n.LengthSquared() < 1e-12 {
		n = faceNormal
	} else {
		n = n.Normalize()
	}
	normal, ok := resolveSide(side, ray.Direction, n)
	if !ok {
		return ShadingRecord{}, false
	}
	uvVert := tri.V1.Texture.MulScalar(w).Add(tri.V2.Texture.MulScalar(u)).Add(tri.V3.Texture.MulScalar(v))
	return ShadingRecord{T: t, Point: ray.At(t), Normal: normal, UV: uvVert, FrontFace: ray.Direction.Dot(n) <= 0}, true
}
