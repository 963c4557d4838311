/*
Package hbond implements spec.md §4.6: enumerating hydrogen-bond candidates
between two residues, resolving conflicts where an atom would participate
in more than one bond, and classifying each retained bond's linkage kind.
*/
package hbond

import (
	"sort"

	"github.com/TimothyStiles/basepair/structure"
)

// Linkage is the classification of a retained or rejected hydrogen bond.
type Linkage int

const (
	LinkageGood     Linkage = iota // '-': distance in [2.5, 3.5]
	LinkageMarginal                // ' ': retained but outside the good range
	LinkageRejected                // '*': lost a conflict to a shorter bond
)

// Symbol returns the single-character rendering spec.md §3 documents.
func (l Linkage) Symbol() byte {
	switch l {
	case LinkageGood:
		return '-'
	case LinkageRejected:
		return '*'
	default:
		return ' '
	}
}

const (
	minDist     = 2.0
	goodMin     = 2.5
	goodMax     = 3.5
	defaultMaxD = 4.0
)

// phosphateExclusion lists the backbone atoms excluded from candidate
// generation for the "base" hydrogen-bond rule (spec.md §4.6); note N7 is
// excluded here even though it is a valid purine acceptor in other
// contexts.
var phosphateExclusion = map[string]bool{
	"O1P": true, "O2P": true, "O3'": true, "O4'": true, "O5'": true, "N7": true,
}

// donorRoles resolves, for a handful of common base/atom-name
// combinations, whether that atom acts as a donor. Unknown atoms default to
// "either" and do not disqualify a candidate; they simply leave the
// Donor/Acceptor assignment to candidate generation order.
var donorRoles = map[string]bool{
	"N6": true, "N4": true, "N2": true, // amino groups: donors
	"O6": false, "O4": false, "O2": false, // keto/oxo groups: acceptors
}

// HBond is a single candidate or retained hydrogen bond between two
// residues.
type HBond struct {
	Donor    structure.Atom
	Acceptor structure.Atom
	Distance float64
	Linkage  Linkage
}

// atomKey identifies an atom within the pair being tested, by which side
// of the pair it belongs to (0 = residue i, 1 = residue j) and its name,
// so conflict resolution can track "has this atom already been used".
type atomKey struct {
	side int
	name string
}

func isDonorAcceptorElement(a structure.Atom) bool {
	el := a.Element
	if el == "" {
		el = elementFromName(a.Name)
	}
	return el == "O" || el == "N"
}

// elementFromName derives an element symbol from an atom name when Element
// wasn't populated by the parser (common for legacy PDB-style records where
// the element column is blank and the first non-digit character of the
// name carries it).
func elementFromName(name string) string {
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == ' ' || (c >= '0' && c <= '9') || c == '\'' || c == '*' {
			continue
		}
		return string(c)
	}
	return ""
}

func trimmedName(a structure.Atom) string {
	end := len(a.Name)
	for end > 0 && a.Name[end-1] == ' ' {
		end--
	}
	start := 0
	for start < end && a.Name[start] == ' ' {
		start++
	}
	return a.Name[start:end]
}

func isExcluded(a structure.Atom) bool {
	return phosphateExclusion[trimmedName(a)]
}

// Detect enumerates hydrogen-bond candidates between residueI and
// residueJ's O/N atoms (excluding the phosphate-exclusion set), retains
// those within [2.0, maxDist] angstroms, resolves atom-sharing conflicts by
// keeping the shorter bond, and classifies each retained bond's linkage.
// maxDist is the caller-configured hb_dist1 threshold (spec.md §6;
// default 4.0).
func Detect(residueI, residueJ *structure.Residue, maxDist float64) []HBond {
	type candidate struct {
		hb   HBond
		keyI atomKey // the residueI atom in this candidate
		keyJ atomKey // the residueJ atom in this candidate
	}

	var candidates []candidate
	for _, a := range residueI.Atoms {
		if !isDonorAcceptorElement(a) || isExcluded(a) {
			continue
		}
		for _, b := range residueJ.Atoms {
			if !isDonorAcceptorElement(b) || isExcluded(b) {
				continue
			}
			d := a.Coord.Sub(b.Coord).Norm()
			if d < minDist || d > maxDist {
				continue
			}

			donor, acceptor := a, b
			if roleIsDonor, known := donorRoles[trimmedName(b)]; known && roleIsDonor {
				if roleA, knownA := donorRoles[trimmedName(a)]; !knownA || !roleA {
					donor, acceptor = b, a
				}
			}

			candidates = append(candidates, candidate{
				hb:   HBond{Donor: donor, Acceptor: acceptor, Distance: d},
				keyI: atomKey{side: 0, name: trimmedName(a)},
				keyJ: atomKey{side: 1, name: trimmedName(b)},
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].hb.Distance < candidates[j].hb.Distance
	})

	used := map[atomKey]bool{}
	result := make([]HBond, 0, len(candidates))
	for _, c := range candidates {
		if used[c.keyI] || used[c.keyJ] {
			hb := c.hb
			hb.Linkage = LinkageRejected
			result = append(result, hb)
			continue
		}
		used[c.keyI] = true
		used[c.keyJ] = true

		hb := c.hb
		if hb.Distance >= goodMin && hb.Distance <= goodMax {
			hb.Linkage = LinkageGood
		} else {
			hb.Linkage = LinkageMarginal
		}
		result = append(result, hb)
	}
	return result
}

// CountBaseHBonds counts retained (non-rejected) bonds, excluding any
// bond touching an O2' atom, as the "base h-bond" rule spec.md §4.6
// requires.
func CountBaseHBonds(bonds []HBond) int {
	count := 0
	for _, b := range bonds {
		if b.Linkage == LinkageRejected {
			continue
		}
		if trimmedName(b.Donor) == "O2'" || trimmedName(b.Acceptor) == "O2'" {
			continue
		}
		count++
	}
	return count
}

// DefaultMaxDistance is hb_dist1's default value.
const DefaultMaxDistance = defaultMaxD
