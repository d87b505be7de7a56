package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVec2_Arithmetic(t *testing.T) {
	a := XY(3, 4)
	b := XY(1, -2)

	require.Equal(t, XY(4, 2), a.Add(b))
	require.Equal(t, XY(2, 6), a.Sub(b))
	require.Equal(t, XY(3, -8), a.Mul(b))
	require.Equal(t, XY(3, -2), a.Div(b))
	require.Equal(t, XY(6, 8), a.Scale(2))
	require.Equal(t, XY(1.5, 2), a.DivScalar(2))
	require.Equal(t, XY(-3, -4), a.Neg())
	require.Equal(t, -5.0, a.Dot(b))
	require.Equal(t, 25.0, a.SquareLength())
	require.Equal(t, 5.0, a.Length())
}

func TestVec2_InPlace(t *testing.T) {
	v := XY(2, 3)

	v.AddAssign(XY(1, 1))
	require.Equal(t, XY(3, 4), v)

	v.SubAssign(XY(1, 2))
	require.Equal(t, XY(2, 2), v)

	v.MulAssign(XY(2, 3))
	require.Equal(t, XY(4, 6), v)

	v.DivAssign(XY(2, 2))
	require.Equal(t, XY(2, 3), v)

	v.ScaleAssign(3)
	require.Equal(t, XY(6, 9), v)

	v.DivScalarAssign(3)
	require.Equal(t, XY(2, 3), v)

	v.Clear()
	require.Equal(t, Zero(), v)
}

func TestVec2_Constructors(t *testing.T) {
	require.Equal(t, Vec2{X: 5}, OnX(5))
	require.Equal(t, Vec2{Y: 5}, OnY(5))

	u := FromAngle(math.Pi / 2)
	require.InDelta(t, 0, u.X, 1e-12)
	require.InDelta(t, 1, u.Y, 1e-12)
	require.InDelta(t, 1, FromAngle(1.234).Length(), 1e-12)
}

func TestVec2_IsFinite(t *testing.T) {
	require.True(t, XY(1, 2).IsFinite())
	require.False(t, XY(math.NaN(), 0).IsFinite())
	require.False(t, XY(0, math.Inf(-1)).IsFinite())
}
