package pairvalidate

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Thresholds holds the caller-configurable range tests and scoring knobs
// spec.md §6 lists. It is a plain config value, not a framework, mirroring
// how align.NewScoring() hands back a small struct of tunable numbers
// rather than reading from a global.
type Thresholds struct {
	MinDorg, MaxDorg             float64
	MinDv, MaxDv                 float64
	MinPlaneAngle, MaxPlaneAngle float64
	MinDNN, MaxDNN               float64
	MinBaseHB                    int
	HBDist1                      float64 // max h-bond distance (spec.md's hb_dist1)
	OverlapThreshold             float64
	NTCutoff                     float64
	HelixBreakDist               float64
}

// DefaultThresholds returns spec.md §4.7's documented defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinDorg: 0, MaxDorg: 15,
		MinDv: 0, MaxDv: 2.5,
		MinPlaneAngle: 0, MaxPlaneAngle: 65,
		MinDNN: 4.5, MaxDNN: math.Inf(1),
		MinBaseHB:        1,
		HBDist1:          4.0,
		OverlapThreshold: 0.01,
		NTCutoff:         0.2618,
		HelixBreakDist:   7.5,
	}
}

// readFileFn and unmarshalFn are package-level seams so tests can swap the
// I/O without a mocking framework, the same pattern nucleotide.Load and
// io/polyjson use.
var (
	readFileFn  = os.ReadFile
	unmarshalFn = json.Unmarshal
)

// ThresholdsError wraps a failure loading thresholds from disk.
type ThresholdsError struct {
	Path string
	Err  error
}

func (e *ThresholdsError) Error() string {
	return fmt.Sprintf("pairvalidate: loading thresholds from %q: %v", e.Path, e.Err)
}

func (e *ThresholdsError) Unwrap() error { return e.Err }

// LoadThresholds reads a JSON thresholds file, starting from
// DefaultThresholds so a partial file only overrides the fields it sets.
func LoadThresholds(path string) (Thresholds, error) {
	t := DefaultThresholds()
	data, err := readFileFn(path)
	if err != nil {
		return Thresholds{}, &ThresholdsError{Path: path, Err: err}
	}
	if err := unmarshalFn(data, &t); err != nil {
		return Thresholds{}, &ThresholdsError{Path: path, Err: err}
	}
	return t, nil
}
