/*
Package pairvalidate implements spec.md §4.7: testing a candidate residue
pair against the geometric and hydrogen-bonding range tests, scoring it, and
classifying its base-pair type.
*/
package pairvalidate

import (
	"fmt"
	"math"

	"github.com/TimothyStiles/basepair/geometry"
	"github.com/TimothyStiles/basepair/hbond"
	"github.com/TimothyStiles/basepair/ringatom"
	"github.com/TimothyStiles/basepair/structure"
)

// PairRejected is spec.md §7's recovered, pipeline-local error: a candidate
// pair failed one of validate's checks.
type PairRejected struct {
	I, J   int
	Reason string
}

func (e *PairRejected) Error() string {
	return fmt.Sprintf("pairvalidate: pair (%d,%d) rejected: %s", e.I, e.J, e.Reason)
}

// ValidationResult is a pair that passed every check in Validate.
type ValidationResult struct {
	I, J            int // canonical residue indices, I < J
	Dorg            float64
	Dv              float64
	PlaneAngle      float64 // degrees, in [0,90]
	DNN             float64
	HBonds          []hbond.HBond
	BaseHBondCount  int
	OverlapArea     float64
	BaseQuality     float64
	HBondAdjustment float64
	BPType          BPType
	FinalQuality    float64 // lower is better
}

// Validate tests residues at canonical indices i and j against thresholds,
// reordering them to canonical i<j before any computation (spec.md §4.7's
// order policy).
func Validate(s *structure.Structure, i, j int, t Thresholds) (ValidationResult, error) {
	if i > j {
		i, j = j, i
	}
	ri, err := s.ResidueAt(i)
	if err != nil {
		return ValidationResult{}, &PairRejected{I: i, J: j, Reason: err.Error()}
	}
	rj, err := s.ResidueAt(j)
	if err != nil {
		return ValidationResult{}, &PairRejected{I: i, J: j, Reason: err.Error()}
	}

	if !ri.HasFrame() || !rj.HasFrame() {
		return ValidationResult{}, &PairRejected{I: i, J: j, Reason: "one or both residues have no base frame"}
	}

	originI, originJ := ri.Frame.Origin, rj.Frame.Origin
	zI, zJ := ri.Frame.ZAxis(), rj.Frame.ZAxis()

	delta := originJ.Sub(originI)
	dorg := delta.Norm()

	// A valid pair is antiparallel (invariant 4: z_i·z_j < 0), so zJ must be
	// reversed before averaging — summing the raw axes cancels toward a
	// near-zero or in-plane vector instead of the pair's actual normal.
	alignedZJ := zJ
	if zI.Dot(zJ) < 0 {
		alignedZJ = zJ.Scale(-1)
	}
	meanZ := zI.Add(alignedZJ).Normalize()
	dv := math.Abs(delta.Dot(meanZ))

	planeAngle := planeAngleDegrees(zI, zJ)

	nI, okI := glycosidicNitrogen(ri)
	nJ, okJ := glycosidicNitrogen(rj)
	if !okI || !okJ {
		return ValidationResult{}, &PairRejected{I: i, J: j, Reason: "missing glycosidic nitrogen atom"}
	}
	dNN := nJ.Sub(nI).Norm()

	if dorg < t.MinDorg || dorg > t.MaxDorg {
		return ValidationResult{}, &PairRejected{I: i, J: j, Reason: fmt.Sprintf("dorg %.3f out of range", dorg)}
	}
	if dv < t.MinDv || dv > t.MaxDv {
		return ValidationResult{}, &PairRejected{I: i, J: j, Reason: fmt.Sprintf("d_v %.3f out of range", dv)}
	}
	if planeAngle < t.MinPlaneAngle || planeAngle > t.MaxPlaneAngle {
		return ValidationResult{}, &PairRejected{I: i, J: j, Reason: fmt.Sprintf("plane_angle %.3f out of range", planeAngle)}
	}
	if dNN < t.MinDNN || dNN > t.MaxDNN {
		return ValidationResult{}, &PairRejected{I: i, J: j, Reason: fmt.Sprintf("dNN %.3f out of range", dNN)}
	}

	bonds := hbond.Detect(ri, rj, t.HBDist1)
	baseCount := hbond.CountBaseHBonds(bonds)
	if baseCount < t.MinBaseHB {
		return ValidationResult{}, &PairRejected{I: i, J: j, Reason: fmt.Sprintf("only %d base h-bonds, need %d", baseCount, t.MinBaseHB)}
	}

	ex, ey := geometry.Perpendicular(meanZ)
	midOrigin := originI.Add(originJ).Scale(0.5)
	overlap := overlapArea(ringatom.RingPoints(ri), ringatom.RingPoints(rj), midOrigin, ex, ey)
	if t.OverlapThreshold > 0 && overlap < t.OverlapThreshold {
		return ValidationResult{}, &PairRejected{I: i, J: j, Reason: fmt.Sprintf("overlap area %.4f below threshold", overlap)}
	}

	baseQuality := dorg + 2*dv + planeAngle/20
	k := goodCloseHBondCount(bonds)
	adjustment := hbondAdjustment(k)

	bpType := classifyBPType(ri, rj)
	final := baseQuality + adjustment
	if bpType == BPWatsonCrick {
		final -= 2
	}

	return ValidationResult{
		I: i, J: j,
		Dorg: dorg, Dv: dv, PlaneAngle: planeAngle, DNN: dNN,
		HBonds:          bonds,
		BaseHBondCount:  baseCount,
		OverlapArea:     overlap,
		BaseQuality:     baseQuality,
		HBondAdjustment: adjustment,
		BPType:          bpType,
		FinalQuality:    final,
	}, nil
}

// planeAngleDegrees returns the angle between a and b's directions, folded
// into [0,90] degrees (spec.md §4.7 step 2: z-axes point in arbitrary
// relative senses, so only the unsigned angle between the planes matters).
func planeAngleDegrees(a, b geometry.Vector3) float64 {
	cos := a.Normalize().Dot(b.Normalize())
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	angle := math.Acos(cos) * 180 / math.Pi
	if angle > 90 {
		angle = 180 - angle
	}
	return angle
}

// glycosidicNitrogen returns the atom spec.md §4.7 step 2 uses for dNN: N9
// for a detected purine, N1 for a detected pyrimidine, driven by the
// residue's own classification rather than re-scanning atom names.
func glycosidicNitrogen(r *structure.Residue) (geometry.Vector3, bool) {
	name := "N1"
	if r.IsPurine {
		name = "N9"
	}
	atom, ok := r.AtomNamed(name)
	return atom.Coord, ok
}

// goodCloseHBondCount is spec.md §4.7 step 7's k: h-bonds classified Good
// (linkage '-') whose distance, rounded to 2 decimals, falls in [2.5,3.5].
// hbond.LinkageGood is already assigned exactly that range, so this reduces
// to counting Good bonds; the explicit rounding is kept to match the
// contract's documented rounding step.
func goodCloseHBondCount(bonds []hbond.HBond) int {
	k := 0
	for _, b := range bonds {
		if b.Linkage != hbond.LinkageGood {
			continue
		}
		d := math.Round(b.Distance*100) / 100
		if d >= 2.5 && d <= 3.5 {
			k++
		}
	}
	return k
}

func hbondAdjustment(k int) float64 {
	if k >= 2 {
		return -3
	}
	return -float64(k)
}
