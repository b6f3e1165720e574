package pathtracer

import "math"

// DefaultTMin is the self-intersection epsilon applied to every new ray
// unless the caller overrides it.
const DefaultTMin = 1e-4

// Ray is a parametric ray origin + d*t, t in [TMin, TMax).
type Ray struct {
	Origin    Vector
	Direction Vector
	TMin      float64
	TMax      float64
}

// NewRay builds a ray with the default epsilon and an unbounded TMax.
func NewRay(origin, direction Vector) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: DefaultTMin, TMax: math.Inf(1)}
}

func (r Ray) At(t float64) Vector {
	return r.Origin.Add(r.Direction.MulScalar(t))
}

// Transform maps r into local space by applying inverse (the inverse of
// the world transform). The direction is transformed without
// renormalizing, so a parametric t
// computed in local space equals t in world space.
func (r Ray) Transform(inverse Matrix) Ray {
	return Ray{
		Origin:    inverse.MulPosition(r.Origin),
		Direction: inverse.MulDirection(r.Direction),
		TMin:      r.TMin,
		TMax:      r.TMax,
	}
}
