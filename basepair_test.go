package basepair

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimothyStiles/basepair/geometry"
	"github.com/TimothyStiles/basepair/nucleotide"
	"github.com/TimothyStiles/basepair/pairvalidate"
	"github.com/TimothyStiles/basepair/structure"
	"github.com/TimothyStiles/basepair/template"
)

func atom(name string, v geometry.Vector3) structure.Atom {
	return structure.Atom{Name: name, Coord: v}
}

// idealWatsonCrickStructure builds a two-residue A-T structure with frames
// given directly rather than fit from a template file: both residue names
// are unknown to the registry and carry too few ring atoms for restype's
// RMSD detector to match, so classification is rejected and
// baseframe.Calculate is never reached — leaving these hand-placed frames
// untouched for pair selection to work with.
func idealWatsonCrickStructure() *structure.Structure {
	s := structure.New()
	s.Residues = []structure.Residue{
		{
			Name: "A", BaseType: structure.BaseAdenine, IsPurine: true,
			Frame: &structure.Frame{Origin: geometry.Vector3{X: 0, Y: 0, Z: 0}, Orientation: geometry.Identity3()},
			Atoms: []structure.Atom{
				atom("N9", geometry.Vector3{X: 1, Y: 0, Z: 0}),
				atom("N6", geometry.Vector3{X: 1.2, Y: 0, Z: 0}),
			},
		},
		{
			Name: "T", BaseType: structure.BaseThymine, IsPurine: false,
			Frame: &structure.Frame{Origin: geometry.Vector3{X: 8, Y: 0, Z: 0}, Orientation: geometry.Identity3()},
			Atoms: []structure.Atom{
				atom("N1", geometry.Vector3{X: 7, Y: 0, Z: 0}),
				atom("O4", geometry.Vector3{X: 4.2, Y: 0, Z: 0}),
			},
		},
	}
	return s
}

// flipAboutX mirrors the antiparallel-partner convention stepparam's
// pairFrame uses: a valid pair's z-axes satisfy z_i . z_j < 0 (invariant
// 4), so the second base's orientation keeps its x-axis but negates y and
// z relative to the first.
func flipAboutX(leading geometry.Matrix3) geometry.Matrix3 {
	return geometry.Matrix3{
		ColX: leading.ColX,
		ColY: leading.ColY.Scale(-1),
		ColZ: leading.ColZ.Scale(-1),
	}
}

// antiparallelWatsonCrickStructure builds a physically real A-T pair: both
// bases carry a full six-membered ring (restype's standard-ring geometry,
// shifted slightly between the two residues so their projected rings
// genuinely overlap), antiparallel frames satisfying invariant 4, and
// glycosidic/amine atoms placed for a realistic dNN and a close N6...O4
// hydrogen bond — unlike idealWatsonCrickStructure, this is built to pass
// Run's default (non-zero) overlap threshold, not just a relaxed one.
// Residue names stay outside the registry and without a sugar carbon
// (C1'/C1*/C1R), so classification is still rejected and these hand-placed
// frames survive untouched, exactly as idealWatsonCrickStructure relies on.
func antiparallelWatsonCrickStructure() *structure.Structure {
	ringI := []structure.Atom{
		atom("C4", geometry.Vector3{X: -1.121, Y: 1.999, Z: 0}),
		atom("N3", geometry.Vector3{X: -2.397, Y: 2.349, Z: 0}),
		atom("C2", geometry.Vector3{X: -2.462, Y: 3.662, Z: 0}),
		atom("N1", geometry.Vector3{X: -1.291, Y: 4.498, Z: 0}),
		atom("C6", geometry.Vector3{X: 0.064, Y: 4.144, Z: 0}),
		atom("C5", geometry.Vector3{X: 0.072, Y: 2.751, Z: 0}),
	}
	shift := geometry.Vector3{X: 0.5, Y: 0, Z: 0}
	ringJ := make([]structure.Atom, len(ringI))
	for i, a := range ringI {
		ringJ[i] = atom(a.Name, a.Coord.Add(shift))
	}

	s := structure.New()
	s.Residues = []structure.Residue{
		{
			Name: "A", BaseType: structure.BaseAdenine, IsPurine: true,
			Frame: &structure.Frame{Origin: geometry.Vector3{X: 0, Y: 0, Z: 0}, Orientation: geometry.Identity3()},
			Atoms: append(append([]structure.Atom{}, ringI...),
				atom("N9", geometry.Vector3{X: -0.791, Y: -4.302, Z: 0}),
				atom("N6", geometry.Vector3{X: 2.0, Y: 2.5, Z: 0}),
			),
		},
		{
			Name: "T", BaseType: structure.BaseThymine, IsPurine: false,
			Frame: &structure.Frame{Origin: geometry.Vector3{X: 8, Y: 0, Z: 0}, Orientation: flipAboutX(geometry.Identity3())},
			Atoms: append(append([]structure.Atom{}, ringJ...),
				atom("O4", geometry.Vector3{X: 2.0, Y: 5.5, Z: 0}),
			),
		},
	}
	return s
}

func defaultThresholdConfig() Config {
	return Config{
		Registry:    nucleotide.New(),
		Templates:   template.NewCache(),
		TemplateDir: "testdata",
		Thresholds:  pairvalidate.DefaultThresholds(),
	}
}

func TestRunSelectsAntiparallelPairAtDefaultThresholds(t *testing.T) {
	s := antiparallelWatsonCrickStructure()
	result := Run(context.Background(), s, defaultThresholdConfig())

	require.NoError(t, result.Err)
	require.Len(t, result.SelectedPairs, 1)
	assert.Equal(t, 1, result.SelectedPairs[0].I)
	assert.Equal(t, 2, result.SelectedPairs[0].J)
}

func noOverlapConfig() Config {
	t := pairvalidate.DefaultThresholds()
	t.OverlapThreshold = 0
	return Config{
		Registry:    nucleotide.New(),
		Templates:   template.NewCache(),
		TemplateDir: "testdata",
		Thresholds:  t,
	}
}

func TestRunSelectsPairAndReportsCounts(t *testing.T) {
	s := idealWatsonCrickStructure()
	result := Run(context.Background(), s, noOverlapConfig())

	require.NoError(t, result.Err)
	assert.Equal(t, 0, result.ResiduesClassified)
	assert.Equal(t, 2, result.ResiduesRejected)
	assert.Equal(t, 1, result.PairsSelected)
	require.Len(t, result.SelectedPairs, 1)
	assert.Equal(t, 1, result.SelectedPairs[0].I)
	assert.Equal(t, 2, result.SelectedPairs[0].J)
	require.Len(t, result.Ordering.Segments, 1)
	assert.Empty(t, result.Steps) // only one pair: no consecutive step to compute
}

func TestRunClassificationRejectedResidueHasNoFrame(t *testing.T) {
	s := structure.New()
	s.Residues = []structure.Residue{{Name: "GLC"}} // not a nucleotide at all
	result := Run(context.Background(), s, noOverlapConfig())

	require.NoError(t, result.Err)
	assert.Equal(t, 0, result.ResiduesClassified)
	assert.Equal(t, 1, result.ResiduesRejected)
	assert.False(t, s.Residues[0].HasFrame())
	assert.Empty(t, result.SelectedPairs)
}

func TestRunReturnsPartialResultsOnCancellation(t *testing.T) {
	s := idealWatsonCrickStructure()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := Run(ctx, s, noOverlapConfig())
	require.Error(t, result.Err)
	assert.Empty(t, result.SelectedPairs)
}

func TestRunWithNoResiduesProducesEmptyResult(t *testing.T) {
	s := structure.New()
	result := Run(context.Background(), s, noOverlapConfig())

	require.NoError(t, result.Err)
	assert.Equal(t, 0, result.ResiduesClassified)
	assert.Equal(t, 0, result.ResiduesRejected)
	assert.Empty(t, result.SelectedPairs)
	assert.Empty(t, result.Ordering.Segments)
	assert.Empty(t, result.Steps)
}
