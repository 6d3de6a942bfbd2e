// Package invert defines inversion options, schedules, results and
// sentinel errors.
package invert

import (
	"errors"

	"go.uber.org/zap"

	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/forward"
	"github.com/terraprobe/ves/mesh"
)

// Sentinel errors for inversion runs.
var (
	// ErrOptions indicates out-of-range inversion options.
	ErrOptions = errors.New("invert: invalid options")
	// ErrSchedule indicates an unusable beta schedule.
	ErrSchedule = errors.New("invert: invalid beta schedule")
	// ErrSingular indicates normal equations that stayed singular through
	// every ridge retry; in practice this means the forward model returned
	// non-finite values.
	ErrSingular = errors.New("invert: normal equations singular beyond repair")
	// ErrDOIRange indicates a DOI spread factor or threshold out of range.
	ErrDOIRange = errors.New("invert: doi gamma must exceed 1 and threshold lie in (0,1)")
)

// Regularization weights the model term of the objective.
type Regularization struct {
	// AlphaS scales the smallness term ‖W_s(m−m_ref)‖².
	AlphaS float64
	// AlphaZ scales the vertical smoothness term ‖W_f·D·m‖². Ignored by
	// parametric runs, which have no spatial adjacency to smooth over.
	AlphaZ float64
	// RefRho is the uniform reference resistivity for smooth runs, Ω·m.
	// Zero selects the geometric mean of the observed curve.
	RefRho float64
	// SensWeight toggles sensitivity weighting: cells the data barely see
	// get pulled toward the reference instead of drifting freely.
	SensWeight bool
}

// Schedule controls the cooling of the trade-off parameter β.
type Schedule struct {
	// Beta0 is the starting β. Zero estimates it from the relative size
	// of the data and model Hessians, scaled by Beta0Ratio.
	Beta0 float64
	// Beta0Ratio scales the automatic Beta0 estimate.
	Beta0Ratio float64
	// CoolingFactor divides β on every cooling step; must exceed 1.
	CoolingFactor float64
	// CoolingRate is the number of iterations between cooling steps.
	CoolingRate int
	// ChiFact sets the stopping target φ_d ≤ ChiFact·N.
	ChiFact float64
}

// Options configures an inversion run. A nil *Options means
// DefaultOptions().
type Options struct {
	// Cells is the smooth-inversion mesh size; 0 selects mesh.DefaultCells.
	Cells int
	// DefaultRelErr is the relative data uncertainty assumed when the
	// sounding carries no StdDev column.
	DefaultRelErr float64
	// Reg weights the model term.
	Reg Regularization
	// Sched cools β.
	Sched Schedule
	// MaxIterations caps Gauss–Newton iterations.
	MaxIterations int
	// Forward tunes the Hankel quadrature; nil for defaults.
	Forward *forward.Options
	// Logger receives per-iteration progress; nil for silence.
	Logger *zap.Logger
}

// DefaultOptions returns the smoothness-dominated setup both inversion
// styles start from: 5% assumed errors, α_s=0.01, α_z=1, sensitivity
// weighting on, automatic β0 ten times the balanced estimate, cooling by
// 2 every iteration, χ² target 1.
func DefaultOptions() *Options {
	return &Options{
		DefaultRelErr: 0.05,
		Reg: Regularization{
			AlphaS:     0.01,
			AlphaZ:     1,
			SensWeight: true,
		},
		Sched: Schedule{
			Beta0Ratio:    10,
			CoolingFactor: 2,
			CoolingRate:   1,
			ChiFact:       1,
		},
		MaxIterations: 25,
	}
}

// withDefaults resolves a possibly-nil options pointer to a value.
func (o *Options) withDefaults() Options {
	if o == nil {
		return *DefaultOptions()
	}
	return *o
}

// validate rejects option combinations no run can use.
func (o Options) validate() error {
	if !(o.DefaultRelErr > 0) || o.MaxIterations < 1 || o.Cells < 0 ||
		o.Reg.AlphaS < 0 || o.Reg.AlphaZ < 0 || o.Reg.RefRho < 0 {
		return ErrOptions
	}
	s := o.Sched
	if s.Beta0 < 0 || !(s.ChiFact > 0) || !(s.CoolingFactor > 1) || s.CoolingRate < 1 {
		return ErrSchedule
	}
	if s.Beta0 == 0 && !(s.Beta0Ratio > 0) {
		return ErrSchedule
	}
	return nil
}

// Step records one Gauss–Newton iteration for convergence diagnostics.
type Step struct {
	// Iteration counts from 1.
	Iteration int
	// Beta is the trade-off parameter the step was taken under.
	Beta float64
	// PhiD is the data misfit after the step.
	PhiD float64
	// PhiM is the model norm after the step.
	PhiM float64
	// Alpha is the accepted line-search step length.
	Alpha float64
}

// Result is a finished inversion run.
type Result struct {
	// Model is the recovered section: mesh cells for smooth runs, the
	// refined few-layer stack for parametric ones.
	Model earth.Model
	// Mesh is the cell geometry of a smooth run; nil for parametric.
	Mesh *mesh.Mesh
	// Predicted holds the forward response of Model at the data spacings.
	Predicted []float64
	// PhiD is the final data misfit Σ((ln pred − ln obs)/ε)².
	PhiD float64
	// Chi2N is PhiD per data point; at or below ChiFact means converged.
	Chi2N float64
	// RMSPercent is the root-mean-square relative error in percent.
	RMSPercent float64
	// Beta is the final trade-off parameter.
	Beta float64
	// Iterations is the number of Gauss–Newton steps taken.
	Iterations int
	// Converged reports whether the chi-squared target was reached.
	Converged bool
	// Path records every iteration, first to last.
	Path []Step
}

// DOIResult is a depth-of-investigation analysis: two smooth runs from
// spread references and their per-cell agreement index.
type DOIResult struct {
	// Low and High are the runs referenced at ρ*/γ and ρ*·γ.
	Low, High *Result
	// Mesh is the common cell geometry.
	Mesh *mesh.Mesh
	// Depths holds the cell-center depths the index is sampled at.
	Depths []float64
	// Index is the Oldenburg–Li index per cell: near 0 where the data
	// constrain the model, near 1 where only the reference speaks.
	Index []float64
	// Depth is the estimated depth of investigation: the center of the
	// first cell whose index exceeds the threshold, or the basement top
	// when none does.
	Depth float64
}
