package pathtracer

var EmptyBox = Box{}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vector
}

func (a Box) Anchor(anchor Vector) Vector {
	return a.Min.Add(a.Size().Mul(anchor))
}

func (a Box) Center() Vector {
	return a.Anchor(Vector{0.5, 0.5, 0.5})
}

func (a Box) Size() Vector {
	return a.Max.Sub(a.Min)
}

func (a Box) Extend(b Box) Box {
	if a == EmptyBox {
		return b
	}
	return Box{a.Min.Min(b.Min), a.Max.Max(b.Max)}
}

func (a Box) Offset(x float64) Box {
	return Box{a.Min.SubScalar(x), a.Max.AddScalar(x)}
}

func (a Box) Translate(v Vector) Box {
	return Box{a.Min.Add(v), a.Max.Add(v)}
}

func (a Box) Contains(b Vector) bool {
	return a.Min.X <= b.X && a.Max.X >= b.X &&
		a.Min.Y <= b.Y && a.Max.Y >= b.Y &&
		a.Min.Z <= b.Z && a.Max.Z >= b.Z
}

func (a Box) Intersects(b Box) bool {
	return !(a.Min.X > b.Max.X || a.Max.X < b.Min.X || a.Min.Y > b.Max.Y ||
		a.Max.Y < b.Min.Y || a.Min.Z > b.Max.Z || a.Max.Z < b.Min.Z)
}

func (a Box) Intersection(b Box) Box {
	if !a.Intersects(b) {
		return EmptyBox
	}
	min := a.Min.Max(b.Min)
	max := a.Max.Min(b.Max)
	min, max = min.Min(max), min.Max(max)
	return Box{min, max}
}

func (a Box) Transform(m Matrix) Box {
	return m.MulBox(a)
}

// SurfaceArea is twice the sum of the box's three face areas, the cost
// term the SAH BVH builder minimizes.
func (a Box) SurfaceArea() float64 {
	d := a.Size()
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return 0
	}
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// IntersectRay runs the ray-slab test, returning the near and far
// intersection parameters along ray and whether the ray hits the box at
// all within [ray.TMin, tMax]. Division by a zero direction component
// produces +/-Inf, which the min/max comparisons handle correctly without
// a branch (the standard branchless slab test).
func (a Box) IntersectRay(ray Ray, tMax float64) (tNear, tFar float64, hit bool) {
	tNear = ray.TMin
	tFar = tMax
	for axis := 0; axis < 3; axis++ {
		origin, dir, lo, hi := a.axisValues(ray, axis)
		invD := 1 / dir
		t0 := (lo - origin) * invD
		t1 := (hi - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tNear {
			tNear = t0
		}
		if t1 < tFar {
			tFar = t1
		}
		if tNear > tFar {
			return tNear, tFar, false
		}
	}
	return tNear, tFar, true
}

func (a Box) axisValues(ray Ray, axis int) (origin, dir, lo, hi float64) {
	switch axis {
	case 0:
		return ray.Origin.X, ray.Direction.X, a.Min.X, a.Max.X
	case 1:
		return ray.Origin.Y, ray.Direction.Y, a.Min.Y, a.Max.Y
	default:
		return ray.Origin.Z, ray.Direction.Z, a.Min.Z, a.Max.Z
	}
}
