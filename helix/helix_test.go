package helix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimothyStiles/basepair/geometry"
	"github.com/TimothyStiles/basepair/pairselect"
	"github.com/TimothyStiles/basepair/structure"
)

func atom(name string, v geometry.Vector3) structure.Atom {
	return structure.Atom{Name: name, Coord: v}
}

// backboneResidue builds a minimal residue carrying only the O3'/P atoms
// helix's connectivity test inspects. pos is this residue's position along
// its strand (0-based): P sits at its own position, O3' sits 18 units
// ahead, 2 units short of the next residue's P — close enough to link
// forward, far short of linking any other residue.
func backboneResidue(pos int) structure.Residue {
	p := float64(pos) * 20
	o3 := p + 18
	return structure.Residue{
		Atoms: []structure.Atom{
			atom("O3'", geometry.Vector3{X: o3, Y: 0, Z: 0}),
			atom("P", geometry.Vector3{X: p, Y: 0, Z: 0}),
		},
	}
}

// twoStepHelixStructure models a 4-base-pair ladder: residues 1..4 on the
// "i" strand (ascending 5'->3'), residues 5..8 on the "j" strand, paired
// antiparallel so J descends as I ascends: (1,8),(2,7),(3,6),(4,5).
func twoStepHelixStructure() *structure.Structure {
	s := structure.New()
	s.Residues = make([]structure.Residue, 8)
	for k := 0; k < 4; k++ {
		s.Residues[k] = backboneResidue(k)
	}
	for m := 0; m < 4; m++ {
		s.Residues[4+m] = backboneResidue(m)
	}
	return s
}

func TestOrganizeChainsFourStepsIntoOneSegment(t *testing.T) {
	s := twoStepHelixStructure()
	// Pairs (1,8), (2,7), (3,6), (4,5): i ascends, j descends.
	pairs := []pairselect.SelectedPair{
		{I: 1, J: 8}, {I: 2, J: 7}, {I: 3, J: 6}, {I: 4, J: 5},
	}
	ordering := Organize(s, pairs, DefaultBreakDistance)
	require.Len(t, ordering.Segments, 1)
	assert.Len(t, ordering.Segments[0].Pairs, 4)
	assert.Equal(t, 1, ordering.Segments[0].Pairs[0].I)
	assert.Equal(t, 4, ordering.Segments[0].Pairs[3].I)
}

func TestOrganizeBreaksOnDistantBackbone(t *testing.T) {
	s := twoStepHelixStructure()
	// Push residue 2's O3' far away from residue 3's P, breaking the link
	// between pair (2,7) and pair (3,6).
	s.Residues[1].Atoms[0].Coord = geometry.Vector3{X: 500, Y: 0, Z: 0} // O3' of residue 2

	pairs := []pairselect.SelectedPair{
		{I: 1, J: 8}, {I: 2, J: 7}, {I: 3, J: 6}, {I: 4, J: 5},
	}
	ordering := Organize(s, pairs, DefaultBreakDistance)
	require.Len(t, ordering.Segments, 2)
	assert.Len(t, ordering.Segments[0].Pairs, 2)
	assert.Len(t, ordering.Segments[1].Pairs, 2)
}

func TestOrganizeSinglePairIsItsOwnSegment(t *testing.T) {
	s := twoStepHelixStructure()
	pairs := []pairselect.SelectedPair{{I: 1, J: 8}}
	ordering := Organize(s, pairs, DefaultBreakDistance)
	require.Len(t, ordering.Segments, 1)
	assert.Len(t, ordering.Segments[0].Pairs, 1)
}
