package stepparam

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimothyStiles/basepair/geometry"
	"github.com/TimothyStiles/basepair/helix"
	"github.com/TimothyStiles/basepair/pairselect"
	"github.com/TimothyStiles/basepair/pairvalidate"
	"github.com/TimothyStiles/basepair/structure"
)

func rotZDeg(deg float64) geometry.Matrix3 {
	r := deg * math.Pi / 180
	c, s := math.Cos(r), math.Sin(r)
	return geometry.Matrix3{
		ColX: geometry.Vector3{X: c, Y: s, Z: 0},
		ColY: geometry.Vector3{X: -s, Y: c, Z: 0},
		ColZ: geometry.Vector3{X: 0, Y: 0, Z: 1},
	}
}

// flippedPartner builds the orientation a pair's second (antiparallel)
// base must carry so that flipAboutX(orientation) == leading, matching
// pairFrame's convention.
func flippedPartner(leading geometry.Matrix3) geometry.Matrix3 {
	return geometry.Matrix3{
		ColX: leading.ColX,
		ColY: leading.ColY.Scale(-1),
		ColZ: leading.ColZ.Scale(-1),
	}
}

func idealPair(origin geometry.Vector3, orientation geometry.Matrix3) (structure.Residue, structure.Residue) {
	ri := structure.Residue{
		BaseType: structure.BaseCytosine,
		Frame:    &structure.Frame{Origin: origin, Orientation: orientation},
	}
	rj := structure.Residue{
		BaseType: structure.BaseGuanine,
		Frame:    &structure.Frame{Origin: origin, Orientation: flippedPartner(orientation)},
	}
	return ri, rj
}

// idealBDNAStructure builds spec.md §8 scenario S1: two stacked CG pairs at
// idealized B-DNA geometry (rise 3.38 Å, twist 36°, everything else zero).
func idealBDNAStructure() (*structure.Structure, []pairselect.SelectedPair) {
	s := structure.New()
	ri1, rj1 := idealPair(geometry.Vector3{X: 0, Y: 0, Z: 0}, geometry.Identity3())
	ri2, rj2 := idealPair(geometry.Vector3{X: 0, Y: 0, Z: 3.38}, rotZDeg(36))
	s.Residues = []structure.Residue{ri1, rj1, ri2, rj2}

	pairs := []pairselect.SelectedPair{
		{I: 1, J: 2, Result: pairvalidate.ValidationResult{I: 1, J: 2}},
		{I: 3, J: 4, Result: pairvalidate.ValidationResult{I: 3, J: 4}},
	}
	return s, pairs
}

func TestComputeStepsMatchesIdealBDNAStep(t *testing.T) {
	s, pairs := idealBDNAStructure()
	ordering := helix.Ordering{Segments: []helix.Segment{{Pairs: pairs}}}

	steps, err := ComputeSteps(s, ordering)
	require.NoError(t, err)
	require.Len(t, steps, 1)

	p := steps[0].Parameters
	require.NotNil(t, p.Shift)
	require.NotNil(t, p.Slide)
	require.NotNil(t, p.Rise)
	require.NotNil(t, p.Tilt)
	require.NotNil(t, p.Roll)
	require.NotNil(t, p.Twist)

	assert.InDelta(t, 0, *p.Shift, 1e-2)
	assert.InDelta(t, 0, *p.Slide, 1e-2)
	assert.InDelta(t, 3.38, *p.Rise, 1e-2)
	assert.InDelta(t, 0, *p.Tilt, 1e-2)
	assert.InDelta(t, 0, *p.Roll, 1e-2)
	assert.InDelta(t, 36, *p.Twist, 1e-2)
}

func TestComputeStepsHelicalParametersForCoaxialStack(t *testing.T) {
	s, pairs := idealBDNAStructure()
	ordering := helix.Ordering{Segments: []helix.Segment{{Pairs: pairs}}}

	steps, err := ComputeSteps(s, ordering)
	require.NoError(t, err)
	require.Len(t, steps, 1)

	h := steps[0].Helical
	require.NotNil(t, h.Rise)
	require.NotNil(t, h.Twist)
	assert.InDelta(t, 3.38, *h.Rise, 1e-2)
	assert.InDelta(t, 36, *h.Twist, 1e-2)
	if h.XDisp != nil {
		assert.InDelta(t, 0, *h.XDisp, 1e-2)
	}
	if h.YDisp != nil {
		assert.InDelta(t, 0, *h.YDisp, 1e-2)
	}
}

func TestComputeStepsSkipsAcrossHelixBreaks(t *testing.T) {
	s, pairs := idealBDNAStructure()
	// Each pair in its own single-pair segment: no consecutive steps.
	ordering := helix.Ordering{Segments: []helix.Segment{
		{Pairs: []pairselect.SelectedPair{pairs[0]}},
		{Pairs: []pairselect.SelectedPair{pairs[1]}},
	}}

	steps, err := ComputeSteps(s, ordering)
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestComputeStepsErrorsOnMissingFrame(t *testing.T) {
	s, pairs := idealBDNAStructure()
	s.Residues[0].Frame = nil
	ordering := helix.Ordering{Segments: []helix.Segment{{Pairs: pairs}}}

	_, err := ComputeSteps(s, ordering)
	require.Error(t, err)
}
