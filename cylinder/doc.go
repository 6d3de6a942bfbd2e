// Package cylinder computes DC electric fields around a buried circular
// cylinder, the classic section-view teaching exhibit for current
// channeling.
//
// The setting is two dimensional: a pair of infinite line electrodes on
// the surface of a uniform half-space (resistivity ρ₀) drives current I
// per meter in at A and out at B, and an infinitely long cylinder of
// resistivity ρ₁ and radius R is buried with its axis parallel to the
// electrodes. With z positive downward the primary potential is
//
//	V₀(P) = (ρ₀ I / π) · ln(r_B / r_A)
//
// and the cylinder's response is the textbook polarization solution for
// a cylinder in a uniform field, evaluated with the primary field at
// the cylinder center:
//
//	χ    = (ρ₀ − ρ₁) / (ρ₀ + ρ₁)
//	p    = χ R² E₀              (line-dipole moment)
//	E_in = (1 − χ) E₀           (uniform inside)
//
// A mirror dipole above the surface keeps vertical current zero across
// the air interface. Treating E₀ as uniform over the cylinder is the
// usual teaching approximation: it is accurate while the cylinder sits
// a few radii below the surface and away from the electrodes.
//
// Beyond point sampling (Potential, E, J) the package rasterizes the
// section (Solve), reports the induced charge on the rim
// (SurfaceCharge) and scans an ideal MN dipole along the surface to
// produce the apparent-resistivity anomaly a field class would measure
// (ProfileMN).
package cylinder
