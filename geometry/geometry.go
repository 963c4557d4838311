/*
Package geometry provides the small set of 3-D linear-algebra primitives the
base-pairing pipeline is built on: vectors, orthonormal 3x3 matrices, and a
Kabsch-style least-squares superposition fit.

Nothing here reaches for a general-purpose linear-algebra library. None of
the example repos this module was grounded on import one (no gonum, no BLAS
binding) for library-style code; the geometry-flavoured example packages in
the retrieval pack (sarat-asymmetrica-genomevedic/engines,
sarat-asymmetrica-foldvedic/engines) are application-internal packages, not
general-purpose libraries, so this package studies their algorithms
(quaternion decomposition of a rotation, Jacobi eigen-solving) and
reimplements them in this module's own idiom rather than importing them.
*/
package geometry

import "math"

// Vector3 is a point or displacement in 3-D space.
type Vector3 struct {
	X, Y, Z float64
}

// Add returns v+o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v-o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the scalar (inner) product of v and o.
func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the vector (cross) product v x o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Norm returns the Euclidean length of v.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. Returns the zero vector if v is
// itself (numerically) the zero vector.
func (v Vector3) Normalize() Vector3 {
	n := v.Norm()
	if n < 1e-12 {
		return Vector3{}
	}
	return v.Scale(1 / n)
}

// Centroid returns the arithmetic mean of points. Returns the zero vector
// for an empty slice.
func Centroid(points []Vector3) Vector3 {
	if len(points) == 0 {
		return Vector3{}
	}
	var sum Vector3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}

// Matrix3 is a 3x3 matrix stored as its three columns. For an orientation
// matrix the columns are the frame's x, y, and z axes expressed in world
// coordinates, matching the convention in structure.Frame.
type Matrix3 struct {
	ColX, ColY, ColZ Vector3
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix3 {
	return Matrix3{
		ColX: Vector3{1, 0, 0},
		ColY: Vector3{0, 1, 0},
		ColZ: Vector3{0, 0, 1},
	}
}

// MulVec applies the matrix to v, i.e. returns M*v.
func (m Matrix3) MulVec(v Vector3) Vector3 {
	return Vector3{
		X: m.ColX.X*v.X + m.ColY.X*v.Y + m.ColZ.X*v.Z,
		Y: m.ColX.Y*v.X + m.ColY.Y*v.Y + m.ColZ.Y*v.Z,
		Z: m.ColX.Z*v.X + m.ColY.Z*v.Y + m.ColZ.Z*v.Z,
	}
}

// Transpose returns the transpose of m. For an orthonormal m this is also
// its inverse.
func (m Matrix3) Transpose() Matrix3 {
	return Matrix3{
		ColX: Vector3{m.ColX.X, m.ColY.X, m.ColZ.X},
		ColY: Vector3{m.ColX.Y, m.ColY.Y, m.ColZ.Y},
		ColZ: Vector3{m.ColX.Z, m.ColY.Z, m.ColZ.Z},
	}
}

// Mul returns the matrix product m*o.
func (m Matrix3) Mul(o Matrix3) Matrix3 {
	return Matrix3{
		ColX: m.MulVec(o.ColX),
		ColY: m.MulVec(o.ColY),
		ColZ: m.MulVec(o.ColZ),
	}
}

// Determinant returns det(m).
func (m Matrix3) Determinant() float64 {
	return m.ColX.X*(m.ColY.Y*m.ColZ.Z-m.ColZ.Y*m.ColY.Z) -
		m.ColY.X*(m.ColX.Y*m.ColZ.Z-m.ColZ.Y*m.ColX.Z) +
		m.ColZ.X*(m.ColX.Y*m.ColY.Z-m.ColY.Y*m.ColX.Z)
}

// OrthonormalityError returns ||Mᵀ·M - I||∞, the max-norm deviation from a
// perfectly orthonormal matrix. Callers compare this against a tolerance
// (1e-6 in this module) to decide whether a fit degenerated.
func (m Matrix3) OrthonormalityError() float64 {
	mtm := m.Transpose().Mul(m)
	id := Identity3()
	max := 0.0
	cols := [2][3]Vector3{{mtm.ColX, mtm.ColY, mtm.ColZ}, {id.ColX, id.ColY, id.ColZ}}
	for i := 0; i < 3; i++ {
		d := cols[0][i].Sub(cols[1][i])
		for _, c := range [3]float64{d.X, d.Y, d.Z} {
			if a := math.Abs(c); a > max {
				max = a
			}
		}
	}
	return max
}
