// Package fit defines trial-evaluation options, results and sentinel errors.
package fit

import (
	"errors"

	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/forward"
)

// Sentinel errors for fitting operations.
var (
	// ErrOptions indicates out-of-range fitting options.
	ErrOptions = errors.New("fit: invalid options")
	// ErrSearchFailed indicates the simplex search could not improve the
	// starting model at all.
	ErrSearchFailed = errors.New("fit: simplex search failed")
)

// Options tunes trial evaluation and the simplex auto-fit. A nil
// *Options means DefaultOptions().
type Options struct {
	// DefaultRelErr is the relative data uncertainty assumed when the
	// sounding carries no StdDev column (0.05 means 5%).
	DefaultRelErr float64
	// MaxEvals caps forward evaluations during Auto.
	MaxEvals int
	// Forward tunes the underlying Hankel quadrature; nil for defaults.
	Forward *forward.Options
}

// DefaultOptions returns the standard fitting setup: 5% assumed errors
// and a two-thousand-evaluation simplex budget.
func DefaultOptions() *Options {
	return &Options{
		DefaultRelErr: 0.05,
		MaxEvals:      2000,
	}
}

// withDefaults resolves a possibly-nil options pointer to a value.
func (o *Options) withDefaults() Options {
	if o == nil {
		return *DefaultOptions()
	}
	return *o
}

// validate rejects non-positive uncertainties and evaluation budgets.
func (o Options) validate() error {
	if !(o.DefaultRelErr > 0) || o.MaxEvals < 1 {
		return ErrOptions
	}
	return nil
}

// Trial is one scored model: its forward response at the observed
// spacings and the misfit statistics interpreters watch while adjusting
// layers.
type Trial struct {
	// Model is the trial section.
	Model earth.Model
	// Predicted holds the forward apparent resistivities at the
	// sounding's spacings.
	Predicted []float64
	// Chi2 is Σ((ln ρa_pred − ln ρa_obs)/ε)², the weighted data misfit.
	Chi2 float64
	// Chi2N is Chi2 divided by the number of data points; 1 means the
	// model fits to within the stated uncertainties.
	Chi2N float64
	// RMSLog is the root-mean-square log-residual.
	RMSLog float64
	// RMSPercent is the root-mean-square relative error in percent.
	RMSPercent float64
}
