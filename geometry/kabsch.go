package geometry

import (
	"errors"
	"math"
)

// ErrTooFewPoints is returned by Fit when fewer than 3 points are supplied.
var ErrTooFewPoints = errors.New("geometry: fit requires at least 3 points")

// ErrDegenerateCovariance is returned by Fit when the point sets are too
// nearly collinear/coincident for the covariance matrix to determine a
// rotation.
var ErrDegenerateCovariance = errors.New("geometry: degenerate covariance matrix")

// FitResult is the outcome of a least-squares superposition.
type FitResult struct {
	// Rotation maps a centered standard-frame point into the experimental
	// frame: experimental ≈ Rotation·(standard-std_centroid) + Translation.
	Rotation Matrix3
	// Translation is centroid(experimental) - Rotation·centroid(standard).
	Translation Vector3
	// RMS is the root-mean-square atom displacement after superposition.
	RMS float64
}

// Fit computes the rigid rotation and translation that best superimposes
// standard onto experimental in the least-squares sense (Kabsch/Horn
// problem). standard and experimental must be the same length and contain
// matching points in the same order.
//
// The rotation is found via Horn's quaternion method: the optimal rotation
// quaternion is the eigenvector of the largest eigenvalue of a 4x4 symmetric
// matrix built from the cross-covariance of the two point sets. This module
// finds that eigenvector with a cyclic Jacobi eigensolver (see jacobi.go)
// rather than a general SVD, since the only eigenvector needed is the one
// for the extreme eigenvalue and the input matrix is always symmetric.
func Fit(standard, experimental []Vector3) (FitResult, error) {
	if len(standard) != len(experimental) {
		return FitResult{}, errors.New("geometry: standard and experimental point sets have different lengths")
	}
	if len(standard) < 3 {
		return FitResult{}, ErrTooFewPoints
	}

	stdCentroid := Centroid(standard)
	expCentroid := Centroid(experimental)

	n := len(standard)
	p := make([]Vector3, n) // centered standard
	q := make([]Vector3, n) // centered experimental
	for i := range standard {
		p[i] = standard[i].Sub(stdCentroid)
		q[i] = experimental[i].Sub(expCentroid)
	}

	// Cross-covariance S[a][b] = sum_i p_i[a] * q_i[b].
	var s [3][3]float64
	for i := range p {
		qv := [3]float64{q[i].X, q[i].Y, q[i].Z}
		pv := [3]float64{p[i].X, p[i].Y, p[i].Z}
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				s[a][b] += pv[a] * qv[b]
			}
		}
	}

	if matrix3FromArray(s).isNearZero(1e-9) {
		return FitResult{}, ErrDegenerateCovariance
	}

	n4 := [4][4]float64{
		{s[0][0] + s[1][1] + s[2][2], s[1][2] - s[2][1], s[2][0] - s[0][2], s[0][1] - s[1][0]},
		{s[1][2] - s[2][1], s[0][0] - s[1][1] - s[2][2], s[0][1] + s[1][0], s[2][0] + s[0][2]},
		{s[2][0] - s[0][2], s[0][1] + s[1][0], -s[0][0] + s[1][1] - s[2][2], s[1][2] + s[2][1]},
		{s[0][1] - s[1][0], s[2][0] + s[0][2], s[1][2] + s[2][1], -s[0][0] - s[1][1] + s[2][2]},
	}

	eigenvalues, eigenvectors := jacobiEigenSymmetric4(n4)

	best := 0
	for i := 1; i < 4; i++ {
		if eigenvalues[i] > eigenvalues[best] {
			best = i
		}
	}
	qw, qx, qy, qz := eigenvectors[0][best], eigenvectors[1][best], eigenvectors[2][best], eigenvectors[3][best]
	rotation := quaternionToMatrix(qw, qx, qy, qz)

	translation := expCentroid.Sub(rotation.MulVec(stdCentroid))

	var sumSq float64
	for i := range standard {
		fitted := rotation.MulVec(standard[i]).Add(translation)
		d := fitted.Sub(experimental[i])
		sumSq += d.Dot(d)
	}
	rms := math.Sqrt(sumSq / float64(n))

	return FitResult{Rotation: rotation, Translation: translation, RMS: rms}, nil
}

func matrix3FromArray(s [3][3]float64) Matrix3 {
	return Matrix3{
		ColX: Vector3{s[0][0], s[1][0], s[2][0]},
		ColY: Vector3{s[0][1], s[1][1], s[2][1]},
		ColZ: Vector3{s[0][2], s[1][2], s[2][2]},
	}
}

func (m Matrix3) isNearZero(tol float64) bool {
	vals := []float64{
		m.ColX.X, m.ColX.Y, m.ColX.Z,
		m.ColY.X, m.ColY.Y, m.ColY.Z,
		m.ColZ.X, m.ColZ.Y, m.ColZ.Z,
	}
	for _, v := range vals {
		if math.Abs(v) > tol {
			return false
		}
	}
	return true
}

// quaternionToMatrix converts a unit quaternion (w,x,y,z) into its
// corresponding rotation matrix.
func quaternionToMatrix(w, x, y, z float64) Matrix3 {
	norm := math.Sqrt(w*w + x*x + y*y + z*z)
	if norm < 1e-12 {
		return Identity3()
	}
	w, x, y, z = w/norm, x/norm, y/norm, z/norm

	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Matrix3{
		ColX: Vector3{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy)},
		ColY: Vector3{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx)},
		ColZ: Vector3{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy)},
	}
}
