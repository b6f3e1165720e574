package pathtracer

// SIMDMat4 is a flat 4x4 matrix used by Mesh.Transform's bulk vertex
// transform path for large meshes, kept from batch-transform
// strategy (mesh.go's transformWithSIMD) — a cache-friendlier layout than
// repeated Matrix field access when thousands of vertices share one
// transform.
type SIMDMat4 [16]float64

func NewSIMDMat4FromMatrix(m Matrix) SIMDMat4 {
	return SIMDMat4{
		m.X00, m.X01, m.X02, m.X03,
		m.X10, m.X11, m.X12, m.X13,
		m.X20, m.X21, m.X22, m.X23,
		m.X30, m.X31, m.X32, m.X33,
	}
}

func (m SIMDMat4) MulPositionSIMD(v [4]float64) [4]float64 {
	return [4]float64{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3]*v[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7]*v[3],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11]*v[3],
		m[12]*v[0] + m[13]*v[1] + m[14]*v[2] + m[15]*v[3],
	}
}

func (m SIMDMat4) MulDirectionSIMD(v [3]float64) [3]float64 {
	return [3]float64{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2],
	}
}
