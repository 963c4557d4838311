/*
Package ringatom implements spec.md §4.3: extracting the canonical
ring-atom subset of a residue, matched against a standard-base template, in
a fixed order suitable for a least-squares fit.
*/
package ringatom

import (
	"errors"

	"github.com/TimothyStiles/basepair/geometry"
	"github.com/TimothyStiles/basepair/structure"
	"github.com/TimothyStiles/basepair/template"
)

// canonicalOrder is the full purine ring-atom name set in the fixed order
// spec.md §4.3 names. The first six names are the pyrimidine ring; the
// purine-only atoms (N7, C8, N9) follow.
var canonicalOrder = []string{"C4", "N3", "C2", "N1", "C6", "C5", "N7", "C8", "N9"}

const pyrimidineAtomCount = 6

// sugarCarbonNames are the accepted spellings of the glycosidic sugar
// carbon; its presence is what distinguishes a nucleotide ring from an
// incidentally similar sugar (spec.md §4.3, example S5: rejecting glucose).
var sugarCarbonNames = []string{"C1'", "C1*", "C1R"}

// ErrNotNucleotide indicates the residue has no sugar carbon and therefore
// cannot be a nucleotide, regardless of how many ring-like atoms it has.
var ErrNotNucleotide = errors.New("ringatom: no sugar carbon (C1'/C1*/C1R) present")

// ErrInsufficientRingAtoms indicates fewer than 3 ring atoms matched both
// the residue and the template.
var ErrInsufficientRingAtoms = errors.New("ringatom: fewer than 3 ring atoms matched")

// Match is the result of matching a residue's ring atoms against a
// standard-base template: parallel name/experimental/standard slices in
// canonical order, ready to hand to geometry.Fit.
type Match struct {
	Names        []string
	Experimental []geometry.Vector3
	Standard     []geometry.Vector3
	// PurineMatched reports whether N7, C8, and N9 were all matched, i.e.
	// whether this match describes a purine ring rather than a pyrimidine
	// ring.
	PurineMatched bool
}

// Len returns the number of matched ring atoms.
func (m Match) Len() int { return len(m.Names) }

// MatchRingAtoms matches residue's atoms against tmpl's standard ring
// coordinates. Purine atoms (N7, C8, N9) are only considered when BOTH N7
// and C8 are present in the residue itself — the purine test spec.md §4.3
// requires, independent of what the template or final match contains.
func MatchRingAtoms(residue *structure.Residue, tmpl *template.Template) (Match, error) {
	return matchRingAtoms(residue, tmpl, false)
}

// MatchPyrimidineOnly matches only the six pyrimidine ring atoms, ignoring
// whether N7/C8 are present. The residue-type detector uses this for its
// retry attempt (spec.md §4.4): a purine ring too distorted to fit the full
// nine-atom template can still fit the shared six-atom core perfectly.
func MatchPyrimidineOnly(residue *structure.Residue, tmpl *template.Template) (Match, error) {
	return matchRingAtoms(residue, tmpl, true)
}

func matchRingAtoms(residue *structure.Residue, tmpl *template.Template, forcePyrimidineOnly bool) (Match, error) {
	if !hasSugarCarbon(residue) {
		return Match{}, ErrNotNucleotide
	}

	_, hasN7 := residue.AtomNamed("N7")
	_, hasC8 := residue.AtomNamed("C8")
	purineEligible := !forcePyrimidineOnly && hasN7 && hasC8

	order := canonicalOrder
	if !purineEligible {
		order = canonicalOrder[:pyrimidineAtomCount]
	}

	match := Match{}
	for _, name := range order {
		atom, ok := residue.AtomNamed(name)
		if !ok {
			continue
		}
		coord, ok := tmpl.Coord(name)
		if !ok {
			continue
		}
		match.Names = append(match.Names, name)
		match.Experimental = append(match.Experimental, atom.Coord)
		match.Standard = append(match.Standard, coord)
	}

	if len(match.Names) < 3 {
		return Match{}, ErrInsufficientRingAtoms
	}

	match.PurineMatched = purineEligible && containsAll(match.Names, "N7", "C8", "N9")
	return match, nil
}

// sixMemberedRing is the six-membered ring shared by purines and
// pyrimidines alike, in actual ring-connectivity (traversal) order rather
// than canonicalOrder's match-priority order. pairvalidate's overlap-area
// calculation needs a simple (non-self-intersecting) polygon, which the
// fused nine-atom purine set does not form without the imidazole ring's own
// separate traversal, so overlap area is computed from this six-membered
// ring alone for both purines and pyrimidines.
var sixMemberedRing = []string{"C4", "N3", "C2", "N1", "C6", "C5"}

// RingPoints returns the coordinates of residue's six-membered ring atoms,
// in ring-traversal order, for any that are present. Unlike MatchRingAtoms
// this does not consult a template or require a minimum count; callers that
// need a closed polygon (pairvalidate's overlap-area test) check the
// returned length themselves.
func RingPoints(residue *structure.Residue) []geometry.Vector3 {
	var points []geometry.Vector3
	for _, name := range sixMemberedRing {
		if atom, ok := residue.AtomNamed(name); ok {
			points = append(points, atom.Coord)
		}
	}
	return points
}

func hasSugarCarbon(residue *structure.Residue) bool {
	for _, name := range sugarCarbonNames {
		if _, ok := residue.AtomNamed(name); ok {
			return true
		}
	}
	return false
}

func containsAll(haystack []string, needles ...string) bool {
	for _, needle := range needles {
		found := false
		for _, h := range haystack {
			if h == needle {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
