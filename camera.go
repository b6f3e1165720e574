package pathtracer

import "math"

// Camera produces primary rays through normalized device coordinates
// with aspect correction. Trimmed from camera.go
// to just what a single-shot path tracer needs: no projection matrices,
// no orbit/first-person controllers, no frustum culling — this camera
// never moves mid-render, and every ray is generated directly rather
// than through a rasterizer's view-projection pipeline.
type Camera struct {
	Position Vector
	Target   Vector
	Up       Vector
	FOVY     float64 // vertical field of view, radians

	u, v, w           Vector // right, up, backward (camera basis)
	halfHeight        float64
	halfWidth         float64
}

// NewCamera builds a camera looking from position toward target, with up
// defaulting to +Y and fov defaulting to 60 degrees when zero.
func NewCamera(position, target, up Vector, fovyRadians float64, aspect float64) *Camera {
	if up == (Vector{}) {
		up = Vector{0, 1, 0}
	}
	if fovyRadians == 0 {
		fovyRadians = Radians(60)
	}
	c := &Camera{Position: position, Target: target, Up: up, FOVY: fovyRadians}
	c.build(aspect)
	return c
}

func (c *Camera) build(aspect float64) {
	c.w = c.Position.Sub(c.Target).Normalize()
	c.u = c.Up.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)
	c.halfHeight = math.Tan(c.FOVY / 2)
	c.halfWidth = c.halfHeight * aspect
}

// Ray generates the primary ray through NDC point (s, t), s and t each
// in [0,1], (0,0) at the bottom-left of the image.
func (c *Camera) Ray(s, t float64) Ray {
	x := (2*s - 1) * c.halfWidth
	y := (2*t - 1) * c.halfHeight
	dir := c.u.MulScalar(x).Add(c.v.MulScalar(y)).Sub(c.w).Normalize()
	return NewRay(c.Position, dir)
}
