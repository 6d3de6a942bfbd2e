// Package fit scores trial layered models against observed sounding
// curves — the interactive half of interpretation, where a model is
// adjusted until its forward response drapes the data.
//
// Evaluate computes the forward curve of a trial model at the observed
// spacings and returns misfit statistics: chi-squared against the data
// uncertainties, its per-point average, and log-space / percent RMS
// errors. Auto polishes a starting model with a Nelder–Mead simplex
// search over the log-parameters, the numerical analogue of nudging
// sliders until the curve locks on.
//
// Both entry points are deliberately derivative-free; the gradient-based
// machinery lives in package invert.
package fit
