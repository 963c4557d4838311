/*
Package pairselect implements spec.md §4.8: selecting the mutual-best-greedy
set of base pairs from a structure whose residues already carry frames.
*/
package pairselect

import (
	"context"
	"fmt"

	"github.com/TimothyStiles/basepair/pairvalidate"
	"github.com/TimothyStiles/basepair/structure"
)

// SelectedPair is one committed pair: the canonical (i<j) index pair and
// the ValidationResult that won mutual-best consideration.
type SelectedPair struct {
	I, J   int
	Result pairvalidate.ValidationResult
}

// InternalInvariantViolated is spec.md §7's fatal error: a residue was
// about to be recorded into more than one selected pair. This should be
// unreachable given the algorithm below; its presence here is the
// documented backstop spec.md §7 requires, not a recovery path.
type InternalInvariantViolated struct {
	Residue int
}

func (e *InternalInvariantViolated) Error() string {
	return fmt.Sprintf("pairselect: residue %d would appear in more than one selected pair", e.Residue)
}

// Select runs the mutual-best greedy matching loop spec.md §4.8 describes
// over every residue in s, in canonical order, considering only residues
// with an assigned frame. The loop checks ctx for cancellation once per
// outer iteration; a cancelled run returns the pairs already committed
// along with ctx.Err().
func Select(ctx context.Context, s *structure.Structure, t pairvalidate.Thresholds) ([]SelectedPair, error) {
	n := s.NumResidues()
	matched := make(map[int]bool, n)
	var selected []SelectedPair

	for {
		select {
		case <-ctx.Done():
			return selected, ctx.Err()
		default:
		}

		progress := false
		for i := 1; i <= n; i++ {
			if matched[i] {
				continue
			}
			ri, err := s.ResidueAt(i)
			if err != nil || !ri.HasFrame() {
				continue
			}

			bestJ, bestResult, ok := bestPartner(s, i, matched, t)
			if !ok {
				continue
			}
			bestIForJ, _, ok2 := bestPartner(s, bestJ, matched, t)
			if !ok2 || bestIForJ != i {
				continue
			}

			if matched[i] || matched[bestJ] {
				return selected, &InternalInvariantViolated{Residue: i}
			}
			matched[i] = true
			matched[bestJ] = true

			lo, hi := i, bestJ
			if lo > hi {
				lo, hi = hi, lo
			}
			selected = append(selected, SelectedPair{I: lo, J: hi, Result: bestResult})
			progress = true
		}
		if !progress {
			break
		}
	}
	return selected, nil
}

// bestPartner finds residue i's lowest-final-quality valid partner among
// unmatched, framed residues, ties broken by smaller canonical index
// (guaranteed by scanning j in ascending order and only replacing the
// incumbent on a strictly lower quality).
func bestPartner(s *structure.Structure, i int, matched map[int]bool, t pairvalidate.Thresholds) (int, pairvalidate.ValidationResult, bool) {
	n := s.NumResidues()
	bestJ := -1
	var bestResult pairvalidate.ValidationResult

	for j := 1; j <= n; j++ {
		if j == i || matched[j] {
			continue
		}
		rj, err := s.ResidueAt(j)
		if err != nil || !rj.HasFrame() {
			continue
		}
		result, err := pairvalidate.Validate(s, i, j, t)
		if err != nil {
			continue
		}
		if bestJ == -1 || result.FinalQuality < bestResult.FinalQuality {
			bestJ = j
			bestResult = result
		}
	}
	if bestJ == -1 {
		return 0, pairvalidate.ValidationResult{}, false
	}
	return bestJ, bestResult, true
}
