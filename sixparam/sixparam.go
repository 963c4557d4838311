/*
Package sixparam implements the shared six-parameter rigid-body comparison
spec.md uses at two different levels: §4.7 step 8's intra-pair parameters
(shear, stretch, stagger, buckle, propeller, opening, compared between a
pair's two base frames) and §4.10's inter-pair step parameters (shift,
slide, rise, tilt, roll, twist, compared between two consecutive pairs'
frames). Both reduce to the same operation — build the mid frame between
two frames, then express the translational and rotational difference in
that mid frame's own axes — so this package provides it once and
pairvalidate/stepparam each supply their own frame inputs and parameter
names.
*/
package sixparam

import (
	"math"

	"github.com/TimothyStiles/basepair/geometry"
)

// Frame is the minimal (origin, orientation) pair this package operates on;
// structure.Frame and a pair's constructed orientation both satisfy it by
// value.
type Frame struct {
	Origin      geometry.Vector3
	Orientation geometry.Matrix3
}

// Params is the six-number result of comparing frame A to frame B, plus the
// mid frame used to compute it. Translation is (x, y, z) expressed along
// the mid frame's own axes; Rotation is (aboutX, aboutY, aboutZ) in
// degrees, extracted via spec.md's chosen Euler decomposition (see
// geometry.EulerXYZ).
type Params struct {
	Translation    [3]float64
	Rotation       [3]float64
	MidOrigin      geometry.Vector3
	MidOrientation geometry.Matrix3
	// Degenerate reports whether the Euler decomposition hit gimbal lock
	// (|cos(aboutY)| < 1e-9, i.e. aboutY at ±90 degrees), where aboutX and
	// aboutZ are not separately determined; Translation is still valid in
	// that case. A near-180-degree relative rotation about X or Z does not
	// set it.
	Degenerate bool
}

// Compute builds the mid frame between a and b (quaternion half-slerp
// orientation, midpoint origin) and expresses Δorigin and the relative
// rotation in that mid frame's axes.
//
// Legacy numerical-compatibility note (spec.md §4.7): some call sites
// (pairvalidate's intra-pair classification) must pass frames in the
// reversed (b, a) order to match the reference pipeline's sign convention;
// Compute itself is agnostic to which frame is "first" and simply computes
// a-to-b, leaving the ordering decision to the caller.
func Compute(a, b Frame) Params {
	midOrientation := geometry.MidRotation(a.Orientation, b.Orientation)
	midOrigin := a.Origin.Add(b.Origin).Scale(0.5)

	delta := b.Origin.Sub(a.Origin)
	translation := [3]float64{
		delta.Dot(midOrientation.ColX),
		delta.Dot(midOrientation.ColY),
		delta.Dot(midOrientation.ColZ),
	}

	// Relative rotation expressed in the mid frame's own axes: rotate both
	// frames into mid-frame-local coordinates, then read off a's-to-b's
	// local rotation.
	localA := midOrientation.Transpose().Mul(a.Orientation)
	localB := midOrientation.Transpose().Mul(b.Orientation)
	relative := localA.Transpose().Mul(localB)

	rx, ry, rz := geometry.EulerXYZ(relative)
	degenerate := math.Abs(math.Cos(ry)) < 1e-9

	const degPerRad = 180 / math.Pi
	return Params{
		Translation:    translation,
		Rotation:       [3]float64{rx * degPerRad, ry * degPerRad, rz * degPerRad},
		MidOrigin:      midOrigin,
		MidOrientation: midOrientation,
		Degenerate:     degenerate,
	}
}
