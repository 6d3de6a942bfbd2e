package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/forward"
	"github.com/terraprobe/ves/sounding"
)

// Evaluate scores a trial model against a sounding: forward curve at the
// observed spacings plus chi-squared and RMS statistics. Per-point
// uncertainties come from the sounding's StdDev column, falling back to
// Options.DefaultRelErr.
func Evaluate(s *sounding.Sounding, m earth.Model, opts *Options) (*Trial, error) {
	o := opts.withDefaults()
	if err := o.validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	pred, err := forward.Curve(m, s.Array, s.Spacing, o.Forward)
	if err != nil {
		return nil, err
	}

	var chi2, sumLog2, sumRel2 float64
	for i, p := range pred {
		eps := o.DefaultRelErr
		if s.HasStdDev() {
			eps = s.StdDev[i]
		}
		r := math.Log(p) - math.Log(s.Rhoa[i])
		chi2 += (r / eps) * (r / eps)
		sumLog2 += r * r
		rel := (p - s.Rhoa[i]) / s.Rhoa[i]
		sumRel2 += rel * rel
	}
	n := float64(s.Len())
	return &Trial{
		Model:      m.Clone(),
		Predicted:  pred,
		Chi2:       chi2,
		Chi2N:      chi2 / n,
		RMSLog:     math.Sqrt(sumLog2 / n),
		RMSPercent: 100 * math.Sqrt(sumRel2/n),
	}, nil
}

// Auto polishes a starting model with a Nelder–Mead simplex over the
// log-parameters, minimizing Chi2. The layer count stays fixed; only
// resistivities and thicknesses move. Returns the scored refined model.
//
// The search is local: start from a model whose curve already has the
// right general shape (a type curve, or a hand fit).
func Auto(s *sounding.Sounding, start earth.Model, opts *Options) (*Trial, error) {
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

	// Off-domain parameter vectors (overflowed exponentials and the
	// like) score as a huge penalty so the simplex backs away.
	const penalty = 1e30
	obj := func(x []float64) float64 {
		m, err := earth.FromLogParams(x)
		if err != nil {
			return penalty
		}
		tr, err := Evaluate(s, m, &o)
		if err != nil {
			return penalty
		}
		return tr.Chi2
	}

	problem := optimize.Problem{Func: obj}
	settings := &optimize.Settings{
		FuncEvaluations: o.MaxEvals,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Iterations: 50,
		},
	}
	result, err := optimize.Minimize(problem, start.LogParams(), settings, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	if result.F >= penalty {
		return nil, ErrSearchFailed
	}

	refined, err := earth.FromLogParams(result.X)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	return Evaluate(s, refined, &o)
}
