package restype

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimothyStiles/basepair/geometry"
	"github.com/TimothyStiles/basepair/nucleotide"
	"github.com/TimothyStiles/basepair/structure"
)

func atom(name string, v geometry.Vector3) structure.Atom {
	return structure.Atom{Name: name, Coord: v}
}

// idealAdenine builds a residue whose ring atoms exactly match
// standardRing plus a sugar carbon and N6 (adenine amino group).
func idealAdenine() *structure.Residue {
	r := &structure.Residue{Name: "A"}
	for name, coord := range standardRing.Atoms {
		r.Atoms = append(r.Atoms, atom(name, coord))
	}
	r.Atoms = append(r.Atoms, atom("C1'", geometry.Vector3{X: -2, Y: -1, Z: 0}))
	r.Atoms = append(r.Atoms, atom("N6", geometry.Vector3{X: 0.2, Y: 5.4, Z: 0}))
	return r
}

func TestDetectAcceptsIdealAdenine(t *testing.T) {
	result, err := Detect(idealAdenine(), nucleotide.New())
	require.NoError(t, err)
	assert.Equal(t, structure.BaseAdenine, result.BaseType)
	assert.True(t, result.IsPurine)
	assert.Less(t, result.RMS, NTCutoff)
}

func TestDetectAcceptsIdealGuanine(t *testing.T) {
	r := idealAdenine()
	// Replace the amino marker with the guanine keto marker.
	for i, a := range r.Atoms {
		if a.Name == "N6" {
			r.Atoms[i] = atom("O6", geometry.Vector3{X: 0.2, Y: 5.4, Z: 0})
		}
	}
	result, err := Detect(r, nucleotide.New())
	require.NoError(t, err)
	assert.Equal(t, structure.BaseGuanine, result.BaseType)
}

func TestDetectAmbiguousPurineDefaultsToGuanine(t *testing.T) {
	r := idealAdenine()
	// Drop the amino marker entirely, leaving neither N6 nor O6 present.
	for i, a := range r.Atoms {
		if a.Name == "N6" {
			r.Atoms = append(r.Atoms[:i], r.Atoms[i+1:]...)
			break
		}
	}
	result, err := Detect(r, nucleotide.New())
	require.NoError(t, err)
	assert.Equal(t, structure.BaseGuanine, result.BaseType)
	assert.True(t, result.IsPurine)
}

func TestDetectRejectsGlucose(t *testing.T) {
	r := &structure.Residue{Name: "GLC", Atoms: []structure.Atom{
		atom("C1", geometry.Vector3{}), atom("C2", geometry.Vector3{X: 1}),
		atom("C3", geometry.Vector3{X: 2}), atom("C4", geometry.Vector3{X: 3}),
		atom("C5", geometry.Vector3{X: 4}), atom("C6", geometry.Vector3{X: 5}),
	}}
	_, err := Detect(r, nucleotide.New())
	require.Error(t, err)
	var rejected *ClassificationRejected
	assert.ErrorAs(t, err, &rejected)
}

// S4: 2-thiouridine style residue where a side-chain C8 exists with no N7;
// the purine test requires both, so it is treated as a pyrimidine.
func TestDetectPyrimidineWithStraySideChainC8(t *testing.T) {
	r := &structure.Residue{Name: "70U", Atoms: []structure.Atom{
		atom("C1'", geometry.Vector3{X: -2, Y: -1, Z: 0}),
	}}
	for _, name := range []string{"C4", "N3", "C2", "N1", "C6", "C5"} {
		r.Atoms = append(r.Atoms, atom(name, standardRing.Atoms[name]))
	}
	r.Atoms = append(r.Atoms, atom("C8", geometry.Vector3{X: 9, Y: 9, Z: 9})) // unrelated side chain

	result, err := Detect(r, nucleotide.New())
	require.NoError(t, err)
	assert.False(t, result.IsPurine)
	assert.Equal(t, structure.BaseUracil, result.BaseType)
}

// S3: cyclic AMP ("A23") is resolved via the registry, not RMSD, even
// though its ring is distorted enough that RMSD detection would reject it.
func TestDetectUsesRegistryOverride(t *testing.T) {
	data := []byte(`{"modified_adenines":{"A23":{"code":"a","type":"ADENINE","template":"Atomic.a.pdb","description":"cyclic AMP"}}}`)
	reg := loadInlineRegistry(t, data)

	r := &structure.Residue{Name: "A23"}
	result, err := Detect(r, reg)
	require.NoError(t, err)
	assert.Equal(t, structure.BaseAdenine, result.BaseType)
	assert.True(t, result.FromRegistry)
	assert.Equal(t, "Atomic.a.pdb", result.TemplateFile)
}

func TestDetectRejectsMissingSugarCarbon(t *testing.T) {
	r := &structure.Residue{Name: "XXX"}
	for name, coord := range standardRing.Atoms {
		r.Atoms = append(r.Atoms, atom(name, coord))
	}
	_, err := Detect(r, nucleotide.New())
	require.Error(t, err)
}

func loadInlineRegistry(t *testing.T, jsonBytes []byte) *nucleotide.Registry {
	t.Helper()
	dir := t.TempDir()
	path := dir + "/registry.json"
	require.NoError(t, os.WriteFile(path, jsonBytes, 0o644))
	reg, err := nucleotide.Load(path)
	require.NoError(t, err)
	return reg
}
