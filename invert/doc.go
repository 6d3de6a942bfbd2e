// Package invert recovers layered-earth models from sounding curves by
// damped Gauss–Newton minimization with a cooled trade-off parameter.
//
// # Objective
//
// Both inversion styles minimize the same two-part objective over
// log-parameters m:
//
//	φ(m) = ‖W_d(F(m) − d)‖² + β·[α_s·‖W_s(m − m_ref)‖² + α_z·‖W_f·D·m‖²]
//
// where F is the forward response in ln ρa, d the observed ln ρa, W_d
// the inverse data uncertainties, D the first-difference operator down
// the cell stack, and W_s, W_f optional sensitivity weights. β starts
// high (estimated from the relative size of the data and model terms)
// and cools by a fixed factor on a fixed schedule until the data misfit
// reaches its chi-squared target φ_d ≤ ChiFact·N.
//
// # Styles
//
// Smooth (Occam style) fixes a geometric mesh and estimates one
// resistivity per cell under a smoothness penalty — structure emerges
// only where the data demand it. Parametric fixes the layer count and
// estimates resistivities and thicknesses of a few layers under damping
// toward the start — sharp boundaries, few knobs.
//
// DOI runs the smooth inversion twice from references pushed a factor γ
// apart and reports the Oldenburg–Li depth-of-investigation index: where
// the two agree the data speak, where they drift to their references the
// model is decoration.
//
// Jacobians are central finite differences (gonum diff/fd) evaluated
// concurrently; the normal equations solve through gonum's Cholesky with
// a ridge retry on marginal systems.
package invert
