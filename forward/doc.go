// Package forward computes apparent resistivities over layered
// half-spaces — the forward problem of 1D DC resistivity sounding.
//
// # Resistivity transform
//
// The response of a stack of layers enters through Koefoed's resistivity
// transform T(λ), built by the Pekeris recursion from the basement up:
//
//	T_N(λ) = ρ_N
//	T_i(λ) = (T_{i+1} + ρ_i·tanh(λ·t_i)) / (1 + T_{i+1}·tanh(λ·t_i)/ρ_i)
//
// where ρ_i and t_i are the layer resistivities and thicknesses. T(0)
// equals the basement resistivity and T(λ→∞) tends to the first-layer
// resistivity ρ₁.
//
// # Apparent resistivity
//
// The surface measurement is a Hankel transform of T. With the uniform
// part subtracted (T−ρ₁ decays exponentially, the identities
// ∫J₁(λs)λdλ = 1/s² and ∫J₀(λr)dλ = 1/r absorb the rest):
//
//	Schlumberger: ρa(s) = ρ₁ + s²·∫ (T(λ)−ρ₁)·J₁(λs)·λ dλ
//	Wenner:       ρa(a) = ρ₁ + 2a·∫ (T(λ)−ρ₁)·(J₀(λa)−J₀(2λa)) dλ
//	Pole-pole:    ρa(r) = ρ₁ + r·∫ (T(λ)−ρ₁)·J₀(λr) dλ
//
// The integrals are evaluated by 8-point Gauss–Legendre quadrature over
// consecutive π/4-wide segments of the dimensionless variable u = λ·s,
// accumulating until the segments stay below tolerance. No digital
// filter tables are involved; accuracy is controlled by Options.RelTol.
//
// # Reference solution
//
// For a two-layer model the same integrals reduce to the classical image
// series in the reflection coefficient k = (ρ₂−ρ₁)/(ρ₂+ρ₁), implemented
// independently in TwoLayerApparent. The quadrature and the series agree
// to several digits, which the package tests exploit.
package forward
