/*
Package stepparam implements spec.md §4.10: extracting Shift/Slide/Rise/
Tilt/Roll/Twist and the alternative helical-axis parameter set for each
consecutive pair-of-pairs in a helix ordering.
*/
package stepparam

import (
	"math"

	"github.com/TimothyStiles/basepair/geometry"
	"github.com/TimothyStiles/basepair/helix"
	"github.com/TimothyStiles/basepair/pairselect"
	"github.com/TimothyStiles/basepair/sixparam"
	"github.com/TimothyStiles/basepair/structure"
)

// Parameters is spec.md §4.10's six inter-base-pair-step numbers, computed
// in the mid-step frame. A nil field is the "no step" / ParameterDegenerate
// marker: Shift, Slide and Rise are nil only when non-finite; Tilt, Roll and
// Twist are nil together when sixparam reports the Euler decomposition
// degenerate (Roll at ±90 degrees), and otherwise only when non-finite. A
// near-180-degree Twist is not flagged: it is returned as a finite value
// near ±180. Downstream comparison is defined to treat nil==nil as equality.
type Parameters struct {
	Shift, Slide, Rise *float64
	Tilt, Roll, Twist  *float64
}

// HelicalParameters is the alternative six-number set referenced to the
// step's local helical axis rather than the mid-step frame.
type HelicalParameters struct {
	XDisp, YDisp, Rise      *float64
	Inclination, Tip, Twist *float64
}

// Step is one consecutive pair-of-pairs and its extracted parameters.
type Step struct {
	PairA, PairB pairselect.SelectedPair
	Parameters   Parameters
	Helical      HelicalParameters
}

// ComputeSteps walks ordering's segments, computing a Step for each
// consecutive pair within a segment (skipping across the break markers
// between segments, per spec.md §4.10).
func ComputeSteps(s *structure.Structure, ordering helix.Ordering) ([]Step, error) {
	var steps []Step
	for _, seg := range ordering.Segments {
		for k := 0; k+1 < len(seg.Pairs); k++ {
			step, err := computeStep(s, seg.Pairs[k], seg.Pairs[k+1])
			if err != nil {
				return steps, err
			}
			steps = append(steps, step)
		}
	}
	return steps, nil
}

// pairFrame constructs a pair's own reference frame (spec.md §4.10 step 1):
// origin is the leading (lower-index) residue's base-frame origin;
// orientation is built by flipping the partner base's frame 180 degrees
// about its own long (x) axis — the standard convention for bringing an
// antiparallel pair's two base normals into rough alignment before
// averaging — and taking the quaternion half-rotation between the two.
func pairFrame(s *structure.Structure, p pairselect.SelectedPair) (sixparam.Frame, error) {
	ri, err := s.ResidueAt(p.I)
	if err != nil {
		return sixparam.Frame{}, err
	}
	rj, err := s.ResidueAt(p.J)
	if err != nil {
		return sixparam.Frame{}, err
	}
	if !ri.HasFrame() || !rj.HasFrame() {
		return sixparam.Frame{}, &structureFrameMissing{I: p.I, J: p.J}
	}

	flipped := flipAboutX(rj.Frame.Orientation)
	orientation := geometry.MidRotation(ri.Frame.Orientation, flipped)
	return sixparam.Frame{Origin: ri.Frame.Origin, Orientation: orientation}, nil
}

// flipAboutX rotates m's axes 180 degrees about their own local X axis:
// the Y and Z columns invert, X is unchanged.
func flipAboutX(m geometry.Matrix3) geometry.Matrix3 {
	return geometry.Matrix3{
		ColX: m.ColX,
		ColY: m.ColY.Scale(-1),
		ColZ: m.ColZ.Scale(-1),
	}
}

type structureFrameMissing struct{ I, J int }

func (e *structureFrameMissing) Error() string {
	return "stepparam: pair has a residue without a base frame"
}

func computeStep(s *structure.Structure, a, b pairselect.SelectedPair) (Step, error) {
	frameA, err := pairFrame(s, a)
	if err != nil {
		return Step{}, err
	}
	frameB, err := pairFrame(s, b)
	if err != nil {
		return Step{}, err
	}

	params := sixparam.Compute(frameA, frameB)

	step := Step{PairA: a, PairB: b}
	step.Parameters.Shift = finiteOrNil(params.Translation[0])
	step.Parameters.Slide = finiteOrNil(params.Translation[1])
	step.Parameters.Rise = finiteOrNil(params.Translation[2])
	if !params.Degenerate {
		step.Parameters.Tilt = finiteOrNil(params.Rotation[0])
		step.Parameters.Roll = finiteOrNil(params.Rotation[1])
		step.Parameters.Twist = finiteOrNil(params.Rotation[2])
	}

	step.Helical = computeHelical(frameA, frameB, params)
	return step, nil
}

// computeHelical derives spec.md §4.10 step 5's axis-referenced parameter
// set from the same mid-frame relative rotation sixparam.Compute already
// extracted: the rotation's own axis (in mid-frame-local coordinates)
// stands in for the helical axis, rise/x-disp/y-disp are the translation
// resolved along and across that axis, and inclination/tip are the axis's
// own lean away from the mid frame's z direction.
func computeHelical(frameA, frameB sixparam.Frame, params sixparam.Params) HelicalParameters {
	localA := params.MidOrientation.Transpose().Mul(frameA.Orientation)
	localB := params.MidOrientation.Transpose().Mul(frameB.Orientation)
	relative := localA.Transpose().Mul(localB)
	q := geometry.MatrixToQuaternion(relative)
	axis, angle := q.AxisAngle()

	const degPerRad = 180 / math.Pi
	if math.Sin(angle) < 1e-9 {
		// Near-zero or near-180-degree rotation: the axis is undefined or
		// its sign ambiguous, so only Rise is reported.
		rise := finiteOrNil(params.Translation[2])
		return HelicalParameters{Rise: rise}
	}

	delta := geometry.Vector3{X: params.Translation[0], Y: params.Translation[1], Z: params.Translation[2]}
	rise := delta.Dot(axis)
	perp := delta.Sub(axis.Scale(rise))
	e1, e2 := geometry.Perpendicular(axis)

	return HelicalParameters{
		XDisp:       finiteOrNil(perp.Dot(e1)),
		YDisp:       finiteOrNil(perp.Dot(e2)),
		Rise:        finiteOrNil(rise),
		Inclination: finiteOrNil(math.Asin(clamp(axis.X, -1, 1)) * degPerRad),
		Tip:         finiteOrNil(math.Asin(clamp(axis.Y, -1, 1)) * degPerRad),
		Twist:       finiteOrNil(angle * degPerRad),
	}
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

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
