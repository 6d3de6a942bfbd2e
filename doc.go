// Package ves is a toolkit for one-dimensional direct-current resistivity
// sounding — forward modelling, curve fitting and regularized inversion —
// for Wenner, Schlumberger and pole-pole electrode arrays.
//
// 🌍 What is ves?
//
//	A vertical electrical sounding (VES) workbench that brings together:
//		• Layered-earth models: resistivities & thicknesses, classic H/K/A/Q curves
//		• Forward modelling: Koefoed resistivity transform + Hankel quadrature
//		• Sounding data: apparent-resistivity curves, CSV I/O, synthetic noise
//		• Manual fitting: trial models, misfit metrics, Nelder–Mead auto-fit
//		• Curve classification: warp-distance matching against H/K/A/Q shapes
//		• Inversion: Gauss–Newton with beta cooling, parametric & Occam-smooth
//		• Depth of investigation: two-reference DOI index
//		• Cylinder exhibit: charge build-up and current channelling in 2D
//
// ✨ Why choose ves?
//
//   - Field-ready numerics – adaptive quadrature, no filter-table magic
//   - Honest uncertainty – chi-squared targets, DOI index, sensitivity weights
//   - Composable – every stage is a plain function over plain data
//   - Batteries included – CLI, SQLite archive, YAML configs
//
// Everything is organized under focused subpackages:
//
//	earth/    — layered half-space models, type curves, log-parameter helpers
//	sounding/ — apparent-resistivity data sets, arrays, CSV round-trip
//	forward/  — resistivity transform and apparent-resistivity kernels
//	mesh/     — geometric layer meshes for smooth inversion
//	fit/      — interactive trial evaluation and simplex auto-fit
//	invert/   — damped Gauss–Newton inversion, DOI estimation
//	curves/   — elastic curve matching and H/K/A/Q classification
//	cylinder/ — buried-cylinder fields: potential, current, surface charge
//	store/    — SQLite archive of soundings and inversion runs
//	cmd/ves   — command-line front end
//
// Quick ASCII example:
//
//	A────M──────N────B        surface electrodes
//	═══════════════════  z=0
//	  ρ₁ = 100 Ω·m            ── 5 m ──
//	  ρ₂ =  20 Ω·m            ── 10 m ──
//	  ρ₃ = 300 Ω·m            (basement)
//
//	widening AB probes deeper; the apparent-resistivity curve ρa(AB/2)
//	bends from ρ₁ toward ρ₃ through the conductive middle layer.
//
// Dive into README.md for worked examples and the examples/ directory for
// runnable programs.
//
//	go get github.com/terraprobe/ves
package ves
