/*
Package baseframe implements spec.md §4.5: for each residue classified as a
nucleotide, load its standard-base template, fit it to the residue's ring
atoms, and store the resulting reference frame (origin + orthonormal
orientation) on the residue.
*/
package baseframe

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/TimothyStiles/basepair/geometry"
	"github.com/TimothyStiles/basepair/restype"
	"github.com/TimothyStiles/basepair/ringatom"
	"github.com/TimothyStiles/basepair/structure"
	"github.com/TimothyStiles/basepair/template"
)

// DefaultTolerance is the RMS-after-fit tolerance a residue's own template
// fit must meet to receive a frame. This is deliberately looser than
// restype.NTCutoff: that cutoff classifies whether a ring is a nucleotide
// at all against an idealized generic ring, while this tolerance judges
// the fit against the residue's own specific base template, where some
// additional deviation (e.g. the distorted residues restype's retry path
// accepts) is expected. Open Question in spec.md §9 left this unspecified;
// this module documents the choice here rather than guessing silently.
const DefaultTolerance = 0.5

// FrameFitDegenerate is spec.md §7's recovered, non-fatal error: the
// residue is excluded from pairing but the pipeline continues.
type FrameFitDegenerate struct {
	Residue string
	Reason  string
}

func (e *FrameFitDegenerate) Error() string {
	return fmt.Sprintf("baseframe: residue %q: %s", e.Residue, e.Reason)
}

// Calculator fits standard-base templates to residues and assigns frames.
// It holds the template cache and directory, both read-only after
// construction (spec.md §5).
type Calculator struct {
	Templates   *template.Cache
	TemplateDir string
	Tolerance   float64
	Logger      *log.Logger
}

// NewCalculator returns a Calculator with DefaultTolerance and the
// standard library's default logger.
func NewCalculator(templates *template.Cache, templateDir string) *Calculator {
	return &Calculator{
		Templates:   templates,
		TemplateDir: templateDir,
		Tolerance:   DefaultTolerance,
		Logger:      log.Default(),
	}
}

// templateFilename picks the template file for a classification result:
// the registry's own template file when the classification came from the
// registry, otherwise the standard "Atomic_X.pdb" convention spec.md §6
// documents.
func templateFilename(result restype.Result) string {
	if result.FromRegistry && result.TemplateFile != "" {
		return result.TemplateFile
	}
	return fmt.Sprintf("Atomic_%s.pdb", result.BaseType.String())
}

// Calculate fits a template to residue given its classification result and
// stores the resulting frame on residue. Returns a *FrameFitDegenerate
// (non-fatal; residue is simply left without a frame) on any failure to
// load the template, match enough ring atoms, or produce a
// within-tolerance, orthonormal fit.
func (c *Calculator) Calculate(residue *structure.Residue, result restype.Result) error {
	path := filepath.Join(c.TemplateDir, templateFilename(result))

	tmpl, err := c.Templates.Load(path)
	if err != nil {
		return c.degenerate(residue, fmt.Sprintf("template load failed: %v", err))
	}

	match, err := ringatom.MatchRingAtoms(residue, tmpl)
	if err != nil {
		return c.degenerate(residue, fmt.Sprintf("ring match failed: %v", err))
	}

	fit, err := geometry.Fit(match.Standard, match.Experimental)
	if err != nil {
		return c.degenerate(residue, fmt.Sprintf("fit failed: %v", err))
	}

	if fit.RMS > c.Tolerance {
		return c.degenerate(residue, fmt.Sprintf("rms %.4f exceeds tolerance %.4f", fit.RMS, c.Tolerance))
	}
	if dev := fit.Rotation.OrthonormalityError(); dev > 1e-6 {
		return c.degenerate(residue, fmt.Sprintf("non-orthonormal rotation (deviation %.2e)", dev))
	}

	residue.Frame = &structure.Frame{Origin: fit.Translation, Orientation: fit.Rotation}
	residue.RMSFit = fit.RMS
	residue.MatchCount = match.Len()
	residue.BaseType = result.BaseType
	residue.IsPurine = result.IsPurine
	return nil
}

func (c *Calculator) degenerate(residue *structure.Residue, reason string) error {
	err := &FrameFitDegenerate{Residue: residue.Name, Reason: reason}
	if c.Logger != nil {
		c.Logger.Printf("%v", err)
	}
	return err
}

// ProcessStructure runs classification and frame calculation over every
// residue of s in canonical order, as spec.md §4.5 requires. Residues that
// fail classification or frame fitting are simply left without a frame; no
// error is returned.
func (c *Calculator) ProcessStructure(s *structure.Structure, classify func(*structure.Residue) (restype.Result, error)) {
	for i := range s.Residues {
		residue := &s.Residues[i]
		result, err := classify(residue)
		if err != nil {
			continue // ClassificationRejected: not a pipeline error, residue excluded
		}
		_ = c.Calculate(residue, result) // FrameFitDegenerate: residue excluded, already logged
	}
}
