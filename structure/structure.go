/*
Package structure is this module's in-memory data model for a parsed
nucleic-acid macromolecular structure: atoms grouped into residues and
chains, with coordinates. It is what spec.md calls "a parsed Structure" —
the core pipeline's only input, built by a collaborator (pdbio, or any other
parser) rather than by the pipeline itself.

Following the re-architecture guidance against pointer graphs, a Structure
owns a single flat pool of Residues in parse order; Chains reference that
pool by index rather than by pointer, and the pool position doubles as the
1-based "canonical residue index" used throughout the pipeline (spec.md
Invariant 1). Internally indices are 0-based; CanonicalIndex and ResidueAt
do the 1-based translation at the boundary.
*/
package structure

import (
	"fmt"

	"github.com/TimothyStiles/basepair/geometry"
)

// BaseType is the sum type spec.md's design notes call for in place of a
// magic integer code: a residue is a standard base, an amino acid, or
// something else entirely (e.g. water, a ligand).
type BaseType int

const (
	BaseUnknown BaseType = iota
	BaseAdenine
	BaseGuanine
	BaseCytosine
	BaseThymine
	BaseUracil
	BaseInosine
	BasePseudouridine
	BaseAminoAcid
	BaseOther
)

// String renders the one-letter code used throughout diagnostics and
// pair base-letter strings (e.g. "AU", "CG").
func (b BaseType) String() string {
	switch b {
	case BaseAdenine:
		return "A"
	case BaseGuanine:
		return "G"
	case BaseCytosine:
		return "C"
	case BaseThymine:
		return "T"
	case BaseUracil:
		return "U"
	case BaseInosine:
		return "I"
	case BasePseudouridine:
		return "P"
	case BaseAminoAcid:
		return "X"
	case BaseOther:
		return "?"
	default:
		return "?"
	}
}

// RecordKind distinguishes standard polymer atom records from heteroatom
// records, mirroring the ATOM/HETATM distinction in PDB-family formats.
type RecordKind int

const (
	RecordStandard RecordKind = iota
	RecordHetero
)

// Atom is immutable after parse.
type Atom struct {
	// Name is the atom name, e.g. "N1", "C1'", right-padded to 4 characters
	// per the legacy PDB convention; callers compare with strings.TrimSpace
	// or Residue.AtomNamed, which does the trimming for them.
	Name string
	// Element is the one- or two-letter element symbol, e.g. "N", "C".
	Element string
	// ResidueIndex is the 0-based back-reference into the owning
	// Structure's Residues pool.
	ResidueIndex int
	Coord        geometry.Vector3
	AltLoc       byte
	Occupancy    float64
	BFactor      float64
	Kind         RecordKind
}

// Frame is a residue's reference frame: an origin and a right-handed
// orthonormal orientation. Orientation's columns are the base's x, y, z
// axes in world coordinates; z is the base-plane normal and x points from
// the ring centre toward the glycosidic nitrogen, per the template
// convention the base-frame calculator fits against.
type Frame struct {
	Origin      geometry.Vector3
	Orientation geometry.Matrix3
}

// ZAxis returns the frame's base-plane normal.
func (f Frame) ZAxis() geometry.Vector3 { return f.Orientation.ColZ }

// XAxis returns the frame's glycosidic-direction axis.
func (f Frame) XAxis() geometry.Vector3 { return f.Orientation.ColX }

// Residue is created during parse and mutated only by the base-frame
// calculator (BaseType/IsPurine classification and Frame assignment).
type Residue struct {
	Name       string // 3-letter residue code, e.g. "DA", "70U", "GLC"
	ChainID    string
	SeqNum     int
	InsCode    byte
	Atoms      []Atom
	BaseType   BaseType
	IsPurine   bool
	Frame      *Frame  // nil until the base-frame calculator succeeds
	RMSFit     float64 // diagnostic RMS of the template fit, valid iff Frame != nil
	MatchCount int     // number of ring atoms matched during frame fitting
}

// HasFrame reports whether a reference frame was successfully assigned,
// i.e. whether type detection succeeded (spec.md Invariant 2).
func (r *Residue) HasFrame() bool { return r.Frame != nil }

// AtomNamed returns the first atom in r whose trimmed name equals name, and
// whether one was found.
func (r *Residue) AtomNamed(name string) (Atom, bool) {
	for _, a := range r.Atoms {
		if trimName(a.Name) == name {
			return a, true
		}
	}
	return Atom{}, false
}

func trimName(name string) string {
	start, end := 0, len(name)
	for start < end && name[start] == ' ' {
		start++
	}
	for end > start && name[end-1] == ' ' {
		end--
	}
	return name[start:end]
}

// Chain is an ordered set of residues sharing a chain id, referencing the
// owning Structure's residue pool by index rather than by pointer.
type Chain struct {
	ID             string
	ResidueIndices []int // 0-based indices into Structure.Residues, in parse order
}

// Structure is the top-level parsed molecule: an ordered set of chains over
// a flat, parse-ordered pool of residues. It is exclusively owned by the
// active pipeline for the duration of a run; Residues are mutated in place
// during base-frame calculation (frame/type assignment) but the pool itself
// is never reordered or resized after parse.
type Structure struct {
	Chains   []Chain
	Residues []Residue // flat pool, parse order; position i is canonical index i+1
}

// New returns an empty Structure ready to be populated by a parser
// collaborator.
func New() *Structure {
	return &Structure{}
}

// NumResidues returns the number of residues in the structure.
func (s *Structure) NumResidues() int { return len(s.Residues) }

// ResidueAt returns the residue at the given 1-based canonical index
// (spec.md §3 Invariant 1). Returns an error for an out-of-range index so
// callers that compute indices from arithmetic don't need a bounds check
// duplicated at every call site.
func (s *Structure) ResidueAt(canonicalIndex int) (*Residue, error) {
	i := canonicalIndex - 1
	if i < 0 || i >= len(s.Residues) {
		return nil, fmt.Errorf("structure: canonical residue index %d out of range [1,%d]", canonicalIndex, len(s.Residues))
	}
	return &s.Residues[i], nil
}

// CanonicalIndex returns the 1-based canonical index of residue r, i.e. its
// position in Structure.Residues. Returns -1 if r does not belong to s.
func (s *Structure) CanonicalIndex(r *Residue) int {
	for i := range s.Residues {
		if &s.Residues[i] == r {
			return i + 1
		}
	}
	return -1
}
