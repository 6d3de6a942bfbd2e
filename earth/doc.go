// Package earth models a horizontally layered half-space: a stack of
// uniform layers, each with a resistivity in Ω·m and a thickness in
// metres, resting on an infinite basement.
//
// A Model is the fundamental input of every forward simulation and the
// output of every inversion in this repository. Layers are ordered from
// the surface down; the last layer is the basement and extends to
// infinite depth, so its thickness is fixed at zero.
//
// Three-layer sections are traditionally classified by the shape of the
// sounding curve they produce:
//
//	H (ρ₁ > ρ₂ < ρ₃) — conductive middle layer, curve dips then recovers
//	K (ρ₁ < ρ₂ > ρ₃) — resistive middle layer, curve bulges
//	A (ρ₁ < ρ₂ < ρ₃) — resistivity increasing with depth
//	Q (ρ₁ > ρ₂ > ρ₃) — resistivity decreasing with depth
//
// TypeCurve builds canonical examples of each class for teaching and for
// seeding inversions.
//
// Inversions work on the logarithms of resistivities and thicknesses —
// both quantities are positive and range over decades. LogParams and
// FromLogParams convert between a Model and that flat parameter vector.
package earth
