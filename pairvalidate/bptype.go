package pairvalidate

import (
	"math"

	"github.com/TimothyStiles/basepair/sixparam"
	"github.com/TimothyStiles/basepair/structure"
)

// BPType is the sum type spec.md §9's design notes call for in place of
// the reference pipeline's -1/0/1/2 bp_type_id integer.
type BPType int

const (
	BPInvalid           BPType = 0
	BPPassedBasicChecks BPType = -1
	BPWobble            BPType = 1
	BPWatsonCrick       BPType = 2
)

// String renders the type's name (e.g. "WatsonCrick"). The legacy bp_type_id
// integer is the BPType value itself, int(t).
func (t BPType) String() string {
	switch t {
	case BPPassedBasicChecks:
		return "PassedBasicChecks"
	case BPWobble:
		return "Wobble"
	case BPWatsonCrick:
		return "WatsonCrick"
	default:
		return "Invalid"
	}
}

// canonicalPairs is the Watson-Crick/wobble ordered base-letter set
// spec.md §4.7 step 8 names.
var canonicalPairs = map[string]bool{
	"AT": true, "AU": true, "TA": true, "UA": true,
	"GC": true, "CG": true, "IC": true, "CI": true, "XX": true,
}

// classifyBPType computes the pair's intra-pair step parameters (shear,
// stretch, opening among the six) from ri and rj's base frames, following
// spec.md §4.7's reversed-argument legacy convention: the caller passes
// (frame_j, frame_i), not (frame_i, frame_j).
//
// This module's convention (documented alongside structure.Frame) puts the
// glycosidic-direction axis on ColX and the base-plane normal on ColZ, so
// Translation[0]/Translation[1] are read as shear/stretch and Rotation[2]
// as opening.
func classifyBPType(ri, rj *structure.Residue) BPType {
	params := sixparam.Compute(
		sixparam.Frame{Origin: rj.Frame.Origin, Orientation: rj.Frame.Orientation},
		sixparam.Frame{Origin: ri.Frame.Origin, Orientation: ri.Frame.Orientation},
	)
	shear := params.Translation[0]
	stretch := params.Translation[1]
	opening := params.Rotation[2]

	bpType := BPPassedBasicChecks
	if math.Abs(stretch) > 2.0 || math.Abs(opening) > 60 {
		return bpType
	}
	if math.Abs(shear) >= 1.8 && math.Abs(shear) <= 2.8 {
		bpType = BPWobble
	}
	if math.Abs(shear) <= 1.8 && canonicalPairs[ri.BaseType.String()+rj.BaseType.String()] {
		bpType = BPWatsonCrick
	}
	return bpType
}
