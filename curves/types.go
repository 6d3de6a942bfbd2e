package curves

import (
	"errors"

	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/forward"
)

var (
	// ErrEmptyCurve is returned when either input curve has no samples.
	ErrEmptyCurve = errors.New("curves: empty curve")

	// ErrBand is returned when the alignment band is so narrow that no
	// warping path connects the first samples to the last.
	ErrBand = errors.New("curves: band excludes every alignment")
)

// Options tunes curve alignment and classification.
type Options struct {
	// Band caps |i-j| for aligned sample pairs (a Sakoe-Chiba band).
	// Zero or negative means unconstrained. A tight band speeds up the
	// alignment and forbids pathological warps that match the head of
	// one curve to the tail of the other.
	Band int

	// StepPenalty is added whenever the alignment stretches one curve
	// against the other (an insertion or deletion step) instead of
	// advancing along both. Zero allows free stretching.
	StepPenalty float64

	// ReturnPath asks Warp for the aligned index pairs. The path costs
	// O(len(a)*len(b)) memory; distance alone needs two rows.
	ReturnPath bool

	// Forward configures the reference responses built by Classify.
	// nil uses forward defaults.
	Forward *forward.Options
}

// DefaultOptions are suitable for curves of a few dozen samples:
// unconstrained band, a mild stretch penalty and no path.
func DefaultOptions() Options {
	return Options{
		Band:        0,
		StepPenalty: 0.05,
		ReturnPath:  false,
	}
}

// PathStep is one aligned pair of sample indices on the warping path.
type PathStep struct {
	I int // index into the first curve
	J int // index into the second curve
}

// Match is one candidate classification produced by Classify.
type Match struct {
	// Type is the candidate curve class.
	Type earth.CurveType

	// Distance is the warp distance between the observed shape and the
	// reference shape for Type. Smaller is better.
	Distance float64

	// Model is the canonical section behind the reference curve, at
	// unit base resistivity. Suggest rescales it to the data.
	Model earth.Model
}
