package baseframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimothyStiles/basepair/geometry"
	"github.com/TimothyStiles/basepair/restype"
	"github.com/TimothyStiles/basepair/structure"
	"github.com/TimothyStiles/basepair/template"
)

func adenineTemplateCoords() map[string]geometry.Vector3 {
	return map[string]geometry.Vector3{
		"N1": {X: -1.291, Y: 4.498, Z: 0}, "C2": {X: -2.462, Y: 3.662, Z: 0}, "N3": {X: -2.397, Y: 2.349, Z: 0},
		"C4": {X: -1.121, Y: 1.999, Z: 0}, "C5": {X: 0.072, Y: 2.751, Z: 0}, "C6": {X: 0.064, Y: 4.144, Z: 0},
		"N7": {X: 1.365, Y: 2.132, Z: 0}, "C8": {X: 1.872, Y: 1.023, Z: 0}, "N9": {X: 0.912, Y: 0.858, Z: 0},
	}
}

func residueMatchingTemplateExactly() *structure.Residue {
	r := &structure.Residue{Name: "A"}
	for name, coord := range adenineTemplateCoords() {
		r.Atoms = append(r.Atoms, structure.Atom{Name: name, Coord: coord})
	}
	r.Atoms = append(r.Atoms, structure.Atom{Name: "C1'", Coord: geometry.Vector3{X: -2, Y: -1, Z: 0}})
	return r
}

func TestCalculateAssignsFrame(t *testing.T) {
	calc := NewCalculator(template.NewCache(), "testdata")
	residue := residueMatchingTemplateExactly()
	result := restype.Result{BaseType: structure.BaseAdenine, IsPurine: true}

	err := calc.Calculate(residue, result)
	require.NoError(t, err)
	require.True(t, residue.HasFrame())
	assert.Less(t, residue.RMSFit, 1e-6)
	assert.Less(t, residue.Frame.Orientation.OrthonormalityError(), 1e-6)
	assert.Greater(t, residue.Frame.Orientation.Determinant(), 0.0)
}

func TestCalculateUsesRegistryTemplateFile(t *testing.T) {
	calc := NewCalculator(template.NewCache(), "testdata")
	residue := residueMatchingTemplateExactly()
	residue.Name = "A23"
	result := restype.Result{BaseType: structure.BaseAdenine, IsPurine: true, FromRegistry: true, TemplateFile: "Atomic_A.pdb"}

	err := calc.Calculate(residue, result)
	require.NoError(t, err)
	assert.True(t, residue.HasFrame())
}

func TestCalculateDegradesGracefullyOnMissingTemplate(t *testing.T) {
	calc := NewCalculator(template.NewCache(), "testdata")
	residue := residueMatchingTemplateExactly()
	result := restype.Result{BaseType: structure.BaseCytosine}

	err := calc.Calculate(residue, result)
	require.Error(t, err)
	assert.False(t, residue.HasFrame())
	var degenerate *FrameFitDegenerate
	assert.ErrorAs(t, err, &degenerate)
}

func TestCalculateRejectsPoorFit(t *testing.T) {
	calc := NewCalculator(template.NewCache(), "testdata")
	calc.Tolerance = 0.01
	residue := residueMatchingTemplateExactly()
	// Perturb one atom enough to blow the RMS past a tight tolerance.
	for i, a := range residue.Atoms {
		if a.Name == "N1" {
			residue.Atoms[i].Coord = geometry.Vector3{X: a.Coord.X + 5, Y: a.Coord.Y, Z: a.Coord.Z}
		}
	}
	result := restype.Result{BaseType: structure.BaseAdenine, IsPurine: true}

	err := calc.Calculate(residue, result)
	require.Error(t, err)
	assert.False(t, residue.HasFrame())
}

func TestProcessStructureSkipsRejectedResidues(t *testing.T) {
	calc := NewCalculator(template.NewCache(), "testdata")
	s := structure.New()
	s.Residues = []structure.Residue{*residueMatchingTemplateExactly(), {Name: "GLC"}}

	classify := func(r *structure.Residue) (restype.Result, error) {
		if r.Name == "GLC" {
			return restype.Result{}, &restype.ClassificationRejected{Residue: "GLC", Reason: "no ring"}
		}
		return restype.Result{BaseType: structure.BaseAdenine, IsPurine: true}, nil
	}

	calc.ProcessStructure(s, classify)
	assert.True(t, s.Residues[0].HasFrame())
	assert.False(t, s.Residues[1].HasFrame())
}
