package pathtracer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// "applying [translate(v), rotate(a,θ), scale(s)] to point p
// equals scale(s)·rotate(a,θ)·translate(v)·p" — NewTransform's
// list-order folding must produce exactly that composed matrix.
func TestTransformCompositionOrder(t *testing.T) {
	v := V(1, 2, 3)
	axis := V(0, 1, 0)
	deg := 45.0
	s := V(2, 2, 2)
	p := V(1, 0, 0)

	ops := []TransformOp{TranslateOp(v), RotateOp(axis, deg), ScaleOp(s)}
	m := NewTransform(ops)

	direct := Scale(s).Mul(RotateDegrees(axis, deg)).Mul(Translate(v))

	got := m.MulPosition(p)
	want := direct.MulPosition(p)
	require.InDelta(t, want.X, got.X, 1e-9)
	require.InDelta(t, want.Y, got.Y, 1e-9)
	require.InDelta(t, want.Z, got.Z, 1e-9)
}

// "Transform ∘ inverse-transform = identity (‖error‖ < 1e-6)
// for any composition of translate/scale(>0)/rotate."
func TestTransformInverseRoundTrip(t *testing.T) {
	ops := []TransformOp{
		TranslateOp(V(5, -2, 3)),
		RotateOp(V(1, 1, 0), 37),
		ScaleOp(V(2, 0.5, 3)),
	}
	m := NewTransform(ops)
	round := m.Mul(m.Inverse())
	identity := Identity()

	fields := []struct{ got, want float64 }{
		{round.X00, identity.X00}, {round.X01, identity.X01}, {round.X02, identity.X02}, {round.X03, identity.X03},
		{round.X10, identity.X10}, {round.X11, identity.X11}, {round.X12, identity.X12}, {round.X13, identity.X13},
		{round.X20, identity.X20}, {round.X21, identity.X21}, {round.X22, identity.X22}, {round.X23, identity.X23},
		{round.X30, identity.X30}, {round.X31, identity.X31}, {round.X32, identity.X32}, {round.X33, identity.X33},
	}
	for _, f := range fields {
		require.InDelta(t, f.want, f.got, 1e-6)
	}
}

func TestNormalMatrixUnderNonUniformScale(t *testing.T) {
	m := Scale(V(2, 1, 1))
	nm := m.NormalMatrix()
	// a normal along the scaled axis must stay perpendicular to a
	// tangent that was scaled along with the surface.
	n := nm.MulDirection(V(1, 0, 0)).Normalize()
	tangent := m.MulDirection(V(0, 1, 0)).Normalize()
	require.InDelta(t, 0, n.Dot(tangent), 1e-9)
}
