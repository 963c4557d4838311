/*
Package helix implements spec.md §4.9: grouping selected base pairs into
helices by backbone connectivity and producing a deterministic 5'→3'
traversal order with break markers between segments.

The reference pipeline's exact junction/coaxial-stack ordering is left
unspecified by spec.md §9's open questions; this module picks the
straightforward deterministic choice of "follow the unique backbone-linked
successor, start segments at pairs with no predecessor, break otherwise".
*/
package helix

import (
	"sort"

	"github.com/TimothyStiles/basepair/pairselect"
	"github.com/TimothyStiles/basepair/structure"
)

// DefaultBreakDistance is the O3'-P link distance (Angstroms) above which
// two residues are not considered backbone-connected.
const DefaultBreakDistance = 7.5

// Segment is a maximal run of pairs connected by backbone links on both
// strands, in 5'→3' traversal order.
type Segment struct {
	Pairs []pairselect.SelectedPair
}

// Ordering is the full helix organisation: a structure's selected pairs
// partitioned into segments, each internally satisfying backbone-
// connectivity invariants. Segment boundaries are the break markers
// spec.md's glossary describes.
type Ordering struct {
	Segments []Segment
}

// Organize partitions pairs into backbone-connected segments using
// breakDist as the O3'-P link threshold.
func Organize(s *structure.Structure, pairs []pairselect.SelectedPair, breakDist float64) Ordering {
	sorted := make([]pairselect.SelectedPair, len(pairs))
	copy(sorted, pairs)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].I < sorted[b].I })

	succ := make(map[int]int, len(sorted))
	hasPred := make(map[int]bool, len(sorted))
	for a := range sorted {
		for b := range sorted {
			if a == b {
				continue
			}
			if stacksOnto(s, sorted[a], sorted[b], breakDist) {
				succ[a] = b
				hasPred[b] = true
				break
			}
		}
	}

	visited := make([]bool, len(sorted))
	var segments []Segment

	appendSegmentFrom := func(start int) {
		var seg []pairselect.SelectedPair
		cur := start
		for !visited[cur] {
			seg = append(seg, sorted[cur])
			visited[cur] = true
			next, ok := succ[cur]
			if !ok || visited[next] {
				break
			}
			cur = next
		}
		segments = append(segments, Segment{Pairs: seg})
	}

	for a := range sorted {
		if !visited[a] && !hasPred[a] {
			appendSegmentFrom(a)
		}
	}
	// Any residual unvisited pairs form cycles (coaxial/junction cases
	// spec.md §9 leaves unspecified); emit them as their own segments in
	// canonical-index order for determinism.
	for a := range sorted {
		if !visited[a] {
			appendSegmentFrom(a)
		}
	}

	return Ordering{Segments: segments}
}

// stacksOnto reports whether pair b continues pair a's helix in the 5'→3'
// direction: a's leading-strand residue backbone-links forward into b's,
// and b's complementary-strand residue backbone-links forward into a's
// (the antiparallel convention: as the i-index strand advances, the
// j-index strand's own 5'→3' direction runs the other way across the
// pair list).
func stacksOnto(s *structure.Structure, a, b pairselect.SelectedPair, breakDist float64) bool {
	ri, err := s.ResidueAt(a.I)
	if err != nil {
		return false
	}
	ri2, err := s.ResidueAt(b.I)
	if err != nil {
		return false
	}
	rj2, err := s.ResidueAt(b.J)
	if err != nil {
		return false
	}
	rj, err := s.ResidueAt(a.J)
	if err != nil {
		return false
	}
	return backboneLinked(ri, ri2, breakDist) && backboneLinked(rj2, rj, breakDist)
}

// backboneLinked reports whether from's O3' atom lies within breakDist of
// to's P atom, the O3'-P phosphodiester link spec.md §4.9 uses to test
// backbone connectivity.
func backboneLinked(from, to *structure.Residue, breakDist float64) bool {
	o3, ok := from.AtomNamed("O3'")
	if !ok {
		return false
	}
	p, ok := to.AtomNamed("P")
	if !ok {
		return false
	}
	return o3.Coord.Sub(p.Coord).Norm() <= breakDist
}
