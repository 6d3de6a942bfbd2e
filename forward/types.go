// Package forward defines quadrature options and sentinel errors for the
// apparent-resistivity kernels.
package forward

import "errors"

// Sentinel errors for forward-modelling operations.
var (
	// ErrBadSpacing indicates a non-positive or non-finite electrode spacing.
	ErrBadSpacing = errors.New("forward: spacing must be positive and finite")
	// ErrOptions indicates out-of-range quadrature options.
	ErrOptions = errors.New("forward: invalid options")
	// ErrNoConvergence indicates the Hankel quadrature hit MaxSegments
	// before the integrand tail went quiet.
	ErrNoConvergence = errors.New("forward: hankel quadrature did not converge")
)

// Options tunes the Hankel quadrature. The zero value is not usable;
// start from DefaultOptions. A nil *Options means DefaultOptions().
type Options struct {
	// RelTol is the relative tolerance: integration stops once several
	// consecutive segments fall below RelTol of the running scale.
	RelTol float64
	// MaxSegments caps the number of π/4-wide quadrature segments per
	// integral. Exceeding it returns ErrNoConvergence. Large
	// spacing-to-thickness ratios (deep surveys over thin first layers)
	// need more segments.
	MaxSegments int
}

// DefaultOptions returns the tolerances used throughout the repository:
// nine digits of relative accuracy and room for spacing-to-thickness
// ratios beyond 10⁴.
func DefaultOptions() *Options {
	return &Options{
		RelTol:      1e-9,
		MaxSegments: 200_000,
	}
}

// withDefaults resolves a possibly-nil options pointer to a value.
func (o *Options) withDefaults() Options {
	if o == nil {
		return *DefaultOptions()
	}
	return *o
}

// validate rejects non-positive tolerances and segment caps.
func (o Options) validate() error {
	if !(o.RelTol > 0) || o.MaxSegments < 1 {
		return ErrOptions
	}
	return nil
}
