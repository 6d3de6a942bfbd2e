package invert

import (
	"context"
	"math"
	"math/rand"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// gnProblem is one damped Gauss–Newton minimization over log-parameters,
// shared by the smooth and parametric front ends. The model term uses
// volume scaling: vs holds per-cell volumes (thicknesses) for the
// smallness term, vf inverse center spacings for the smoothness term.
// Parametric runs pass unit volumes and no faces.
type gnProblem struct {
	style string // "smooth" or "parametric", for logs

	// forward fills dst with predicted ln ρa at x. It must be safe for
	// concurrent calls: the Jacobian differences run in parallel.
	forward func(x, dst []float64) error

	x0  []float64 // starting log-parameters
	ref []float64 // smallness reference
	vs  []float64 // smallness volume per parameter
	vf  []float64 // 1/Δz per face; empty disables smoothness

	fit     *dataFit
	reg     Regularization
	sched   Schedule
	maxIter int
	logger  *zap.Logger
}

// gnRun is the raw engine output before the front ends dress it up.
type gnRun struct {
	x          []float64
	pred       []float64 // ln-space prediction at x
	phiD       float64
	beta       float64
	iterations int
	converged  bool
	path       []Step
}

// run iterates until the chi-squared target, the iteration cap, a stall
// or ctx cancellation. On cancellation the best state so far is returned
// together with ctx.Err() so callers can keep the partial model.
func (p *gnProblem) run(ctx context.Context) (*gnRun, error) {
	n, m := p.fit.n(), len(p.x0)
	target := p.sched.ChiFact * float64(n)

	x := append([]float64(nil), p.x0...)
	pred := make([]float64, n)
	if err := p.forward(x, pred); err != nil {
		return nil, err
	}
	run := &gnRun{x: x, pred: pred, phiD: p.fit.phiD(pred)}
	if run.phiD <= target {
		run.converged = true
		return run, nil
	}

	jw := mat.NewDense(n, m, nil)
	r := make([]float64, n)
	stalls := 0

	for iter := 1; iter <= p.maxIter; iter++ {
		select {
		case <-ctx.Done():
			return run, ctx.Err()
		default:
		}

		p.jacobian(jw, run.x)
		w := p.cellWeights(jw)
		if iter == 1 {
			run.beta = p.initialBeta(jw, w)
		}

		p.fit.residuals(run.pred, r)
		g, h := p.assemble(jw, r, run.x, w, run.beta)
		delta, err := solveStep(h, g)
		if err != nil {
			return run, err
		}
		slope := mat.Dot(g, delta)

		phi0 := run.phiD + run.beta*p.phiM(run.x, w)
		alpha, xNew, predNew, phiDNew, ok := p.lineSearch(run.x, delta, run.beta, w, phi0, slope)
		if ok {
			stalls = 0
			run.x, run.pred, run.phiD = xNew, predNew, phiDNew
		} else {
			stalls++
			p.logger.Warn("line search stalled",
				zap.String("style", p.style), zap.Int("iteration", iter))
		}

		run.iterations = iter
		run.path = append(run.path, Step{
			Iteration: iter,
			Beta:      run.beta,
			PhiD:      run.phiD,
			PhiM:      p.phiM(run.x, w),
			Alpha:     alpha,
		})
		p.logger.Debug("gauss-newton step",
			zap.String("style", p.style),
			zap.Int("iteration", iter),
			zap.Float64("beta", run.beta),
			zap.Float64("phi_d", run.phiD),
			zap.Float64("target", target),
			zap.Float64("alpha", alpha))

		if run.phiD <= target {
			run.converged = true
			break
		}
		if stalls >= 2 {
			break
		}
		if iter%p.sched.CoolingRate == 0 {
			run.beta /= p.sched.CoolingFactor
		}
	}
	return run, nil
}

// jacobian fills dst with W_d·∂F/∂x by concurrent central differences.
// A forward failure inside the stencil poisons the column with NaN and
// surfaces later as a ridge retry.
func (p *gnProblem) jacobian(dst *mat.Dense, x []float64) {
	f := func(y, xx []float64) {
		if err := p.forward(xx, y); err != nil {
			for i := range y {
				y[i] = math.NaN()
			}
		}
	}
	fd.Jacobian(dst, f, x, &fd.JacobianSettings{Formula: fd.Central, Concurrent: true})
	_, m := dst.Dims()
	for i, wd := range p.fit.wd {
		for j := 0; j < m; j++ {
			dst.Set(i, j, dst.At(i, j)*wd)
		}
	}
}

// cellWeights returns per-parameter sensitivity weights: the column
// norms of the weighted Jacobian normalized to peak 1 and floored, so
// barely-seen cells still feel the reference. All ones when disabled.
func (p *gnProblem) cellWeights(jw *mat.Dense) []float64 {
	n, m := jw.Dims()
	w := make([]float64, m)
	if !p.reg.SensWeight {
		for j := range w {
			w[j] = 1
		}
		return w
	}
	maxNorm := 0.0
	for j := 0; j < m; j++ {
		var s float64
		for i := 0; i < n; i++ {
			v := jw.At(i, j)
			s += v * v
		}
		w[j] = math.Sqrt(s)
		if w[j] > maxNorm {
			maxNorm = w[j]
		}
	}
	if maxNorm == 0 {
		for j := range w {
			w[j] = 1
		}
		return w
	}
	const floor = 1e-2
	for j := range w {
		w[j] /= maxNorm
		if w[j] < floor {
			w[j] = floor
		}
	}
	return w
}

// initialBeta estimates β0 from the ratio of data to model curvature
// probed with a fixed random vector, then scales it by Beta0Ratio.
// Returns 0 when regularization is absent.
func (p *gnProblem) initialBeta(jw *mat.Dense, w []float64) float64 {
	if p.sched.Beta0 > 0 {
		return p.sched.Beta0
	}
	n, m := jw.Dims()
	rng := rand.New(rand.NewSource(7351))
	v := make([]float64, m)
	for j := range v {
		v[j] = rng.NormFloat64()
	}
	var num float64
	for i := 0; i < n; i++ {
		var dot float64
		for j := 0; j < m; j++ {
			dot += jw.At(i, j) * v[j]
		}
		num += dot * dot
	}
	den := p.regQuad(v, w)
	if den <= 0 {
		return 0
	}
	return p.sched.Beta0Ratio * num / den
}

// regQuad evaluates vᵀRv for the volume-scaled regularization.
func (p *gnProblem) regQuad(v, w []float64) float64 {
	var sum float64
	for j := range v {
		sum += p.reg.AlphaS * w[j] * w[j] * p.vs[j] * v[j] * v[j]
	}
	for j := range p.vf {
		wf := 0.5 * (w[j] + w[j+1])
		d := v[j+1] - v[j]
		sum += p.reg.AlphaZ * wf * wf * p.vf[j] * d * d
	}
	return sum
}

// phiM is the model norm at x: smallness against the reference plus
// first-difference smoothness of x itself.
func (p *gnProblem) phiM(x []float64, w []float64) float64 {
	var sum float64
	for j := range x {
		d := x[j] - p.ref[j]
		sum += p.reg.AlphaS * w[j] * w[j] * p.vs[j] * d * d
	}
	for j := range p.vf {
		wf := 0.5 * (w[j] + w[j+1])
		d := x[j+1] - x[j]
		sum += p.reg.AlphaZ * wf * wf * p.vf[j] * d * d
	}
	return sum
}

// assemble builds the gradient and Gauss–Newton Hessian of the halved
// objective: g = Jwᵀr + β·∇φm/2, H = JwᵀJw + β·R.
func (p *gnProblem) assemble(jw *mat.Dense, r, x, w []float64, beta float64) (*mat.VecDense, *mat.SymDense) {
	n, m := jw.Dims()

	h := mat.NewSymDense(m, nil)
	h.SymOuterK(1, jw.T())

	g := mat.NewVecDense(m, nil)
	g.MulVec(jw.T(), mat.NewVecDense(n, r))

	for j := 0; j < m; j++ {
		ws := beta * p.reg.AlphaS * w[j] * w[j] * p.vs[j]
		h.SetSym(j, j, h.At(j, j)+ws)
		g.SetVec(j, g.AtVec(j)+ws*(x[j]-p.ref[j]))
	}
	for j := range p.vf {
		wf := 0.5 * (w[j] + w[j+1])
		wz := beta * p.reg.AlphaZ * wf * wf * p.vf[j]
		d := x[j+1] - x[j]
		h.SetSym(j, j, h.At(j, j)+wz)
		h.SetSym(j+1, j+1, h.At(j+1, j+1)+wz)
		h.SetSym(j, j+1, h.At(j, j+1)-wz)
		g.SetVec(j, g.AtVec(j)-wz*d)
		g.SetVec(j+1, g.AtVec(j+1)+wz*d)
	}
	return g, h
}

// solveStep solves H·δ = −g by Cholesky, adding a growing ridge to the
// diagonal when the factorization balks. ErrSingular after five tries
// means non-finite entries, not mere ill-conditioning.
func solveStep(h *mat.SymDense, g *mat.VecDense) (*mat.VecDense, error) {
	m := g.Len()
	delta := mat.NewVecDense(m, nil)

	var trace float64
	for j := 0; j < m; j++ {
		trace += h.At(j, j)
	}
	ridge := 0.0
	var chol mat.Cholesky
	for attempt := 0; attempt < 5; attempt++ {
		hr := h
		if ridge > 0 {
			hr = mat.NewSymDense(m, nil)
			hr.CopySym(h)
			for j := 0; j < m; j++ {
				hr.SetSym(j, j, h.At(j, j)+ridge)
			}
		}
		if chol.Factorize(hr) {
			if err := chol.SolveVecTo(delta, g); err == nil {
				delta.ScaleVec(-1, delta)
				return delta, nil
			}
		}
		if ridge == 0 {
			ridge = 1e-8 * trace / float64(m)
		} else {
			ridge *= 100
		}
	}
	return nil, ErrSingular
}

// lineSearch backtracks from a full Gauss–Newton step until the Armijo
// condition φ(x+αδ) ≤ φ(x) + c₁·α·gᵀδ holds. ok is false when even the
// smallest step fails to descend.
func (p *gnProblem) lineSearch(x []float64, delta *mat.VecDense, beta float64, w []float64,
	phi0, slope float64) (alpha float64, xNew, predNew []float64, phiDNew float64, ok bool) {

	const c1 = 1e-4
	const alphaMin = 1.0 / 4096

	xNew = make([]float64, len(x))
	predNew = make([]float64, p.fit.n())
	for alpha = 1; alpha >= alphaMin; alpha /= 2 {
		for j := range x {
			xNew[j] = x[j] + alpha*delta.AtVec(j)
		}
		if err := p.forward(xNew, predNew); err != nil {
			continue
		}
		phiDNew = p.fit.phiD(predNew)
		phi := phiDNew + beta*p.phiM(xNew, w)
		if phi <= phi0+c1*alpha*slope {
			return alpha, xNew, predNew, phiDNew, true
		}
	}
	return 0, nil, nil, 0, false
}
