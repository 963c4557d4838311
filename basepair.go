/*
Package basepair is the base-pair geometry engine's top-level entry point:
it wires together residue classification (restype), reference-frame fitting
(baseframe), pairwise validation and hydrogen-bond detection (pairvalidate,
hbond), mutual-best pair selection (pairselect), helix ordering (helix), and
inter-pair step-parameter extraction (stepparam) into the single-structure
pipeline spec.md §1-4 describes.

Across-structure fan-out lives in the batch package; this package processes
exactly one Structure, single-threaded, as spec.md §5 requires.
*/
package basepair

import (
	"context"
	"fmt"

	"github.com/TimothyStiles/basepair/baseframe"
	"github.com/TimothyStiles/basepair/helix"
	"github.com/TimothyStiles/basepair/nucleotide"
	"github.com/TimothyStiles/basepair/pairselect"
	"github.com/TimothyStiles/basepair/pairvalidate"
	"github.com/TimothyStiles/basepair/restype"
	"github.com/TimothyStiles/basepair/stepparam"
	"github.com/TimothyStiles/basepair/structure"
	"github.com/TimothyStiles/basepair/template"
)

// Result is spec.md §7's "structured report": counts of residues
// classified/rejected and pairs tested/selected, the error that terminated
// the run early (if any), and every partial result computed up to that
// point.
type Result struct {
	ResiduesClassified int
	ResiduesRejected   int
	// PairsTested counts the candidate (i,j) pairs among framed residues
	// pair selection considered — C(k,2) for k framed residues, since every
	// such pair is validated at least once during mutual-best search.
	PairsTested   int
	PairsSelected int

	SelectedPairs []pairselect.SelectedPair
	Ordering      helix.Ordering
	Steps         []stepparam.Step

	// Err is the error that caused early termination, if any. A non-nil Err
	// means SelectedPairs/Ordering/Steps hold only the partial results
	// computed before the failure.
	Err error
}

// Config bundles the shared, read-only-after-load resources spec.md §5
// describes (registry, template cache) along with the thresholds and
// break-distance a Run needs.
type Config struct {
	Registry    *nucleotide.Registry
	Templates   *template.Cache
	TemplateDir string
	Thresholds  pairvalidate.Thresholds
	HelixBreak  float64 // O3'-P link threshold; 0 means use Thresholds.HelixBreakDist
}

// Run executes the full single-structure pipeline: classify and fit a frame
// for every residue, select mutual-best pairs, organize them into helices,
// and compute inter-pair step parameters.
func Run(ctx context.Context, s *structure.Structure, cfg Config) Result {
	calc := baseframe.NewCalculator(cfg.Templates, cfg.TemplateDir)
	if cfg.Thresholds == (pairvalidate.Thresholds{}) {
		cfg.Thresholds = pairvalidate.DefaultThresholds()
	}

	var classified, rejected int
	calc.ProcessStructure(s, func(r *structure.Residue) (restype.Result, error) {
		result, err := restype.Detect(r, cfg.Registry)
		if err != nil {
			rejected++
			return restype.Result{}, err
		}
		classified++
		return result, nil
	})

	framed := 0
	for i := range s.Residues {
		if s.Residues[i].HasFrame() {
			framed++
		}
	}

	result := Result{
		ResiduesClassified: classified,
		ResiduesRejected:   rejected,
		PairsTested:        framed * (framed - 1) / 2,
	}

	selected, err := pairselect.Select(ctx, s, cfg.Thresholds)
	result.SelectedPairs = selected
	result.PairsSelected = len(selected)
	if err != nil {
		result.Err = fmt.Errorf("basepair: pair selection terminated early: %w", err)
		return result
	}

	breakDist := cfg.HelixBreak
	if breakDist == 0 {
		breakDist = cfg.Thresholds.HelixBreakDist
	}
	if breakDist == 0 {
		breakDist = helix.DefaultBreakDistance
	}
	ordering := helix.Organize(s, selected, breakDist)
	result.Ordering = ordering

	steps, err := stepparam.ComputeSteps(s, ordering)
	result.Steps = steps
	if err != nil {
		result.Err = fmt.Errorf("basepair: step parameter calculation terminated early: %w", err)
	}
	return result
}
