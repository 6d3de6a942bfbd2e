package invert

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/forward"
	"github.com/terraprobe/ves/sounding"
)

// Parametric runs a few-layer inversion: both resistivities and
// thicknesses of the start model move, the layer count stays. The
// smallness term anchors the search to the start, so pick a start with
// the right number of layers and roughly the right scale (fit.Auto is
// a good source). Smoothness does not apply to a handful of layers and
// is skipped regardless of AlphaZ.
//
// On ctx cancellation the best model found so far is returned together
// with ctx.Err().
func Parametric(ctx context.Context, s *sounding.Sounding, start earth.Model, opts *Options) (*Result, error) {
	o := opts.withDefaults()
	if err := o.validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := start.Validate(); err != nil {
		return nil, err
	}

	x0 := start.LogParams()
	ref := append([]float64(nil), x0...)
	vs := make([]float64, len(x0))
	for j := range vs {
		vs[j] = 1
	}

	fwd := func(x, dst []float64) error {
		em, err := earth.FromLogParams(x)
		if err != nil {
			return err
		}
		curve, err := forward.Curve(em, s.Array, s.Spacing, o.Forward)
		if err != nil {
			return err
		}
		for i, v := range curve {
			dst[i] = math.Log(v)
		}
		return nil
	}

	logger := o.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &gnProblem{
		style:   "parametric",
		forward: fwd,
		x0:      x0,
		ref:     ref,
		vs:      vs,
		fit:     newDataFit(s, o.DefaultRelErr),
		reg:     o.Reg,
		sched:   o.Sched,
		maxIter: o.MaxIterations,
		logger:  logger,
	}
	run, err := p.run(ctx)
	if run == nil {
		return nil, fmt.Errorf("invert: parametric start failed: %w", err)
	}

	res := newResult(run, p.fit, s.Rhoa)
	res.Model, _ = earth.FromLogParams(run.x) // accepted states always parse
	return res, err
}
