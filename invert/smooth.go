package invert

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/terraprobe/ves/forward"
	"github.com/terraprobe/ves/mesh"
	"github.com/terraprobe/ves/sounding"
)

// Smooth runs an Occam-style inversion on a fixed log-spaced mesh:
// many cells, resistivities free, thicknesses pinned. The model norm
// keeps the profile close to a uniform reference and penalizes
// cell-to-cell jumps, so structure appears only where the data insist.
//
// On ctx cancellation the best model found so far is returned together
// with ctx.Err().
func Smooth(ctx context.Context, s *sounding.Sounding, opts *Options) (*Result, error) {
	o := opts.withDefaults()
	if err := o.validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	msh, err := mesh.ForSounding(s, o.Cells)
	if err != nil {
		return nil, err
	}
	return smoothOnMesh(ctx, s, msh, o)
}

// smoothOnMesh is the mesh-pinned core shared with DOI, which must run
// its two inversions on the same cells to compare them pointwise.
func smoothOnMesh(ctx context.Context, s *sounding.Sounding, msh *mesh.Mesh, o Options) (*Result, error) {
	m := msh.NumCells()
	refRho := o.Reg.RefRho
	if refRho == 0 {
		refRho = geometricMean(s.Rhoa)
	}
	lnRef := math.Log(refRho)

	x0 := make([]float64, m)
	ref := make([]float64, m)
	for j := range x0 {
		x0[j] = lnRef
		ref[j] = lnRef
	}

	fwd := func(x, dst []float64) error {
		rhos := make([]float64, len(x))
		for j, v := range x {
			rhos[j] = math.Exp(v)
		}
		em, err := msh.Model(rhos)
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
	vs, vf := meshVolumes(msh)
	p := &gnProblem{
		style:   "smooth",
		forward: fwd,
		x0:      x0,
		ref:     ref,
		vs:      vs,
		vf:      vf,
		fit:     newDataFit(s, o.DefaultRelErr),
		reg:     o.Reg,
		sched:   o.Sched,
		maxIter: o.MaxIterations,
		logger:  logger,
	}
	run, err := p.run(ctx)
	if run == nil {
		return nil, fmt.Errorf("invert: smooth start failed: %w", err)
	}

	res := newResult(run, p.fit, s.Rhoa)
	res.Mesh = msh
	rhos := make([]float64, m)
	for j, v := range run.x {
		rhos[j] = math.Exp(v)
	}
	res.Model, _ = msh.Model(rhos) // run.x passed validation inside forward
	return res, err
}

// meshVolumes returns the regularization scalings for a mesh: cell
// thicknesses for the smallness term (the basement reuses the deepest
// finite thickness) and inverse center spacings for the faces. Thick
// deep cells therefore lean on the reference while thin shallow cells
// lean on their neighbors, which is what lets the DOI index saturate
// below the depth of investigation.
func meshVolumes(msh *mesh.Mesh) (vs, vf []float64) {
	th := msh.Thicknesses()
	m := msh.NumCells()
	last := th[len(th)-1]

	vs = make([]float64, m)
	copy(vs, th)
	vs[m-1] = last

	vf = make([]float64, m-1)
	for j := 0; j+1 < m; j++ {
		hj, hk := vs[j], vs[j+1]
		vf[j] = 1 / (0.5 * (hj + hk))
	}
	return vs, vf
}

// newResult converts raw engine state into the exported form.
func newResult(run *gnRun, fit *dataFit, obs []float64) *Result {
	pred := make([]float64, len(run.pred))
	for i, v := range run.pred {
		pred[i] = math.Exp(v)
	}
	return &Result{
		Predicted:  pred,
		PhiD:       run.phiD,
		Chi2N:      run.phiD / float64(fit.n()),
		RMSPercent: rmsPercent(pred, obs),
		Beta:       run.beta,
		Iterations: run.iterations,
		Converged:  run.converged,
		Path:       run.path,
	}
}

func geometricMean(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += math.Log(x)
	}
	return math.Exp(sum / float64(len(v)))
}
