package geometry

import "math"

// Quaternion is a unit rotation quaternion (w + xi + yj + zk), used here as
// the interpolation primitive for mid-step/mid-pair frame construction
// (spec.md §4.10's "quaternion half-slerp" choice among the open-question's
// two admissible decompositions).
type Quaternion struct {
	W, X, Y, Z float64
}

// MatrixToQuaternion converts an orthonormal rotation matrix to its
// corresponding unit quaternion, using the standard trace-based case split
// to avoid numerical blowup near any single axis.
func MatrixToQuaternion(m Matrix3) Quaternion {
	m00, m01, m02 := m.ColX.X, m.ColY.X, m.ColZ.X
	m10, m11, m12 := m.ColX.Y, m.ColY.Y, m.ColZ.Y
	m20, m21, m22 := m.ColX.Z, m.ColY.Z, m.ColZ.Z

	trace := m00 + m11 + m22
	var q Quaternion
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1.0)
		q = Quaternion{
			W: 0.25 / s,
			X: (m21 - m12) * s,
			Y: (m02 - m20) * s,
			Z: (m10 - m01) * s,
		}
	case m00 > m11 && m00 > m22:
		s := 2.0 * math.Sqrt(1.0+m00-m11-m22)
		q = Quaternion{W: (m21 - m12) / s, X: 0.25 * s, Y: (m01 + m10) / s, Z: (m02 + m20) / s}
	case m11 > m22:
		s := 2.0 * math.Sqrt(1.0+m11-m00-m22)
		q = Quaternion{W: (m02 - m20) / s, X: (m01 + m10) / s, Y: 0.25 * s, Z: (m12 + m21) / s}
	default:
		s := 2.0 * math.Sqrt(1.0+m22-m00-m11)
		q = Quaternion{W: (m10 - m01) / s, X: (m02 + m20) / s, Y: (m12 + m21) / s, Z: 0.25 * s}
	}
	return q.normalize()
}

func (q Quaternion) normalize() Quaternion {
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if n < 1e-12 {
		return Quaternion{W: 1}
	}
	return Quaternion{q.W / n, q.X / n, q.Y / n, q.Z / n}
}

func (q Quaternion) dot(o Quaternion) float64 {
	return q.W*o.W + q.X*o.X + q.Y*o.Y + q.Z*o.Z
}

func (q Quaternion) negate() Quaternion {
	return Quaternion{-q.W, -q.X, -q.Y, -q.Z}
}

// ToMatrix converts q to its rotation matrix.
func (q Quaternion) ToMatrix() Matrix3 {
	return quaternionToMatrix(q.W, q.X, q.Y, q.Z)
}

// Slerp spherically interpolates between a and b at t in [0,1], taking the
// shorter arc (negating b when the quaternions are more than 90 degrees
// apart, since q and -q represent the same rotation).
func Slerp(a, b Quaternion, t float64) Quaternion {
	cosHalfTheta := a.dot(b)
	if cosHalfTheta < 0 {
		b = b.negate()
		cosHalfTheta = -cosHalfTheta
	}
	if cosHalfTheta > 0.9995 {
		return Quaternion{
			W: a.W + t*(b.W-a.W),
			X: a.X + t*(b.X-a.X),
			Y: a.Y + t*(b.Y-a.Y),
			Z: a.Z + t*(b.Z-a.Z),
		}.normalize()
	}
	halfTheta := math.Acos(cosHalfTheta)
	sinHalfTheta := math.Sqrt(1 - cosHalfTheta*cosHalfTheta)
	ratioA := math.Sin((1-t)*halfTheta) / sinHalfTheta
	ratioB := math.Sin(t*halfTheta) / sinHalfTheta
	return Quaternion{
		W: a.W*ratioA + b.W*ratioB,
		X: a.X*ratioA + b.X*ratioB,
		Y: a.Y*ratioA + b.Y*ratioB,
		Z: a.Z*ratioA + b.Z*ratioB,
	}.normalize()
}

// MidRotation returns the orthonormal "half-rotation" between a and b: the
// orientation a quaternion slerp at t=0.5 produces. Both the intra-pair
// (pairvalidate) and inter-pair (stepparam) mid-frame constructions share
// this.
func MidRotation(a, b Matrix3) Matrix3 {
	qa, qb := MatrixToQuaternion(a), MatrixToQuaternion(b)
	return Slerp(qa, qb, 0.5).ToMatrix()
}

// EulerXYZ decomposes rotation matrix m, interpreted as Rz(rz)*Ry(ry)*Rx(rx),
// into its three angles in radians. This is the Euler-decomposition branch
// of spec.md §4.10's open question (the alternative being a quaternion
// half-angle/axis readout); this module picks Euler decomposition because it
// gives the three named step-parameter angles (tilt/roll/twist or
// shear/stretch/opening's rotational analogues) directly, without an extra
// axis-to-angle mapping step.
func EulerXYZ(m Matrix3) (rx, ry, rz float64) {
	ry = math.Asin(clamp(-m.ColX.Z, -1, 1))
	rz = math.Atan2(m.ColX.Y, m.ColX.X)
	rx = math.Atan2(m.ColY.Z, m.ColZ.Z)
	return rx, ry, rz
}

// AxisAngle returns q's rotation axis (unit vector) and angle in radians,
// in [0, pi]. For a near-zero rotation the axis is arbitrary (returned as
// the x-axis) since no rotation axis is well-defined; callers should treat
// such angles as degenerate rather than trust the axis.
func (q Quaternion) AxisAngle() (axis Vector3, angleRad float64) {
	if q.W < 0 {
		q = Quaternion{W: -q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
	}
	w := q.W
	if w > 1 {
		w = 1
	} else if w < -1 {
		w = -1
	}
	angleRad = 2 * math.Acos(w)
	s := math.Sqrt(1 - w*w)
	if s < 1e-9 {
		return Vector3{X: 1}, angleRad
	}
	return Vector3{X: q.X / s, Y: q.Y / s, Z: q.Z / s}, angleRad
}

// Perpendicular returns an orthonormal basis (e1, e2) perpendicular to
// normal, picking a stable "up" reference (world Z, or world Y if normal is
// nearly parallel to Z) so the basis doesn't degenerate near either pole.
func Perpendicular(normal Vector3) (Vector3, Vector3) {
	up := Vector3{X: 0, Y: 0, Z: 1}
	n := normal.Normalize()
	if math.Abs(n.Dot(up)) > 0.9 {
		up = Vector3{X: 0, Y: 1, Z: 0}
	}
	e1 := n.Cross(up).Normalize()
	e2 := n.Cross(e1).Normalize()
	return e1, e2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
