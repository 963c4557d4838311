package geometry

import "math"

// jacobiEigenSymmetric4 computes the eigenvalues and eigenvectors of a
// symmetric 4x4 matrix using the classic cyclic Jacobi rotation method:
// each sweep zeroes every off-diagonal element in turn, in row order, with a
// plane rotation, and sweeps repeat until the sum of squared off-diagonal
// elements drops below tolerance (at most 100 sweeps). Eigenvectors
// accumulate as columns of the product of all rotations applied.
//
// This is the one general-purpose numerical routine in the module that
// isn't lifted from a domain example; no example repo in the retrieval
// pack implements a symmetric eigensolver, and pulling in a full
// linear-algebra dependency for a single 4x4 decomposition used only by
// Fit did not seem proportionate, so it is implemented directly.
func jacobiEigenSymmetric4(a [4][4]float64) (eigenvalues [4]float64, eigenvectors [4][4]float64) {
	const maxSweeps = 100
	const tol = 1e-14

	v := [4][4]float64{}
	for i := 0; i < 4; i++ {
		v[i][i] = 1
	}

	for sweep := 0; sweep < maxSweeps; sweep++ {
		off := 0.0
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				off += a[i][j] * a[i][j]
			}
		}
		if off < tol {
			break
		}

		for p := 0; p < 4; p++ {
			for q := p + 1; q < 4; q++ {
				if math.Abs(a[p][q]) < 1e-300 {
					continue
				}
				theta := (a[q][q] - a[p][p]) / (2 * a[p][q])
				t := math.Copysign(1, theta) / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				if theta == 0 {
					t = 1
				}
				c := 1 / math.Sqrt(t*t+1)
				s := t * c

				app, aqq, apq := a[p][p], a[q][q], a[p][q]
				a[p][p] = app - t*apq
				a[q][q] = aqq + t*apq
				a[p][q] = 0
				a[q][p] = 0

				for i := 0; i < 4; i++ {
					if i != p && i != q {
						aip, aiq := a[i][p], a[i][q]
						a[i][p] = c*aip - s*aiq
						a[p][i] = a[i][p]
						a[i][q] = s*aip + c*aiq
						a[q][i] = a[i][q]
					}
				}
				for i := 0; i < 4; i++ {
					vip, viq := v[i][p], v[i][q]
					v[i][p] = c*vip - s*viq
					v[i][q] = s*vip + c*viq
				}
			}
		}
	}

	for i := 0; i < 4; i++ {
		eigenvalues[i] = a[i][i]
		for j := 0; j < 4; j++ {
			eigenvectors[j][i] = v[j][i]
		}
	}
	return eigenvalues, eigenvectors
}
