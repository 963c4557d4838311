package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rotZ(radians float64) Matrix3 {
	c, s := math.Cos(radians), math.Sin(radians)
	return Matrix3{
		ColX: Vector3{c, s, 0},
		ColY: Vector3{-s, c, 0},
		ColZ: Vector3{0, 0, 1},
	}
}

func TestMatrixToQuaternionRoundTripsIdentity(t *testing.T) {
	q := MatrixToQuaternion(Identity3())
	got := q.ToMatrix()
	assert.InDelta(t, 1.0, got.ColX.X, 1e-9)
	assert.InDelta(t, 1.0, got.ColY.Y, 1e-9)
	assert.InDelta(t, 1.0, got.ColZ.Z, 1e-9)
}

func TestMatrixToQuaternionRoundTripsRotation(t *testing.T) {
	m := rotZ(math.Pi / 3)
	q := MatrixToQuaternion(m)
	got := q.ToMatrix()
	assert.InDelta(t, m.ColX.X, got.ColX.X, 1e-9)
	assert.InDelta(t, m.ColX.Y, got.ColX.Y, 1e-9)
	assert.InDelta(t, m.ColY.X, got.ColY.X, 1e-9)
}

func TestMidRotationBisectsTwoZRotations(t *testing.T) {
	a := rotZ(0)
	b := rotZ(math.Pi / 2)
	mid := MidRotation(a, b)

	_, _, rz := EulerXYZ(mid)
	assert.InDelta(t, math.Pi/4, rz, 1e-6)
}

func TestEulerXYZIdentity(t *testing.T) {
	rx, ry, rz := EulerXYZ(Identity3())
	assert.InDelta(t, 0, rx, 1e-9)
	assert.InDelta(t, 0, ry, 1e-9)
	assert.InDelta(t, 0, rz, 1e-9)
}

func TestEulerXYZRecoversZRotation(t *testing.T) {
	m := rotZ(0.4)
	_, _, rz := EulerXYZ(m)
	assert.InDelta(t, 0.4, rz, 1e-9)
}
