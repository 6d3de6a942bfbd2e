package cylinder

import (
	"errors"
	"math"
)

var (
	// ErrRho reports a non-positive or non-finite resistivity.
	ErrRho = errors.New("cylinder: resistivities must be positive and finite")

	// ErrRadius reports a non-positive cylinder radius.
	ErrRadius = errors.New("cylinder: radius must be positive")

	// ErrBuried reports a cylinder that touches or pierces the surface.
	ErrBuried = errors.New("cylinder: cylinder must lie entirely below the surface")

	// ErrElectrodes reports current electrodes off the surface or on
	// top of each other.
	ErrElectrodes = errors.New("cylinder: electrodes must sit on the surface at distinct positions")

	// ErrCurrent reports a zero line current.
	ErrCurrent = errors.New("cylinder: current must be nonzero")

	// ErrGrid reports inconsistent grid extents or counts.
	ErrGrid = errors.New("cylinder: grid needs x1 > x0, z1 > z0 ≥ 0 and at least 2×2 nodes")

	// ErrMN reports a non-positive potential-dipole separation.
	ErrMN = errors.New("cylinder: MN separation must be positive")
)

// Point is a position in the section plane. X runs along the surface,
// Z positive downward, the surface at Z = 0.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Z float64 `json:"z" yaml:"z"`
}

// Setup describes one complete exhibit: the half-space, the buried
// cylinder and the line-current electrodes. The zero value is invalid;
// fill every field and Validate.
type Setup struct {
	RhoBackground float64 `json:"rho_background" yaml:"rho_background"` // Ω·m
	RhoCylinder   float64 `json:"rho_cylinder" yaml:"rho_cylinder"`     // Ω·m
	Radius        float64 `json:"radius" yaml:"radius"`                 // m
	Center        Point   `json:"center" yaml:"center"`                 // Center.Z > Radius
	A             Point   `json:"a" yaml:"a"`                           // +I electrode, on the surface
	B             Point   `json:"b" yaml:"b"`                           // −I electrode, on the surface
	Current       float64 `json:"current" yaml:"current"`               // A per meter of line
}

// Validate checks the geometry and material parameters.
func (s *Setup) Validate() error {
	for _, rho := range []float64{s.RhoBackground, s.RhoCylinder} {
		if !(rho > 0) || math.IsInf(rho, 1) {
			return ErrRho
		}
	}
	if !(s.Radius > 0) {
		return ErrRadius
	}
	if !(s.Center.Z > s.Radius) {
		return ErrBuried
	}
	if s.A.Z != 0 || s.B.Z != 0 || s.A.X == s.B.X {
		return ErrElectrodes
	}
	if s.Current == 0 || math.IsNaN(s.Current) || math.IsInf(s.Current, 0) {
		return ErrCurrent
	}
	return nil
}

// chi is the polarization contrast (ρ₀−ρ₁)/(ρ₀+ρ₁): positive for a
// conductive cylinder, zero for none, negative for a resistive one.
func (s *Setup) chi() float64 {
	return (s.RhoBackground - s.RhoCylinder) / (s.RhoBackground + s.RhoCylinder)
}

// Inside reports whether the point lies in the cylinder.
func (s *Setup) Inside(x, z float64) bool {
	dx, dz := x-s.Center.X, z-s.Center.Z
	return dx*dx+dz*dz <= s.Radius*s.Radius
}

// Field is the solution sampled at one point.
type Field struct {
	V      float64 `json:"v"`  // potential, V
	Ex     float64 `json:"ex"` // electric field, V/m
	Ez     float64 `json:"ez"`
	Jx     float64 `json:"jx"` // current density, A/m²
	Jz     float64 `json:"jz"`
	Inside bool    `json:"inside"`
}

// Grid is a regular sampling of the section: NX columns spanning
// [X0,X1] by NZ rows spanning [Z0,Z1], Z0 at or below the surface.
type Grid struct {
	X0, X1 float64
	Z0, Z1 float64
	NX, NZ int
}

func (g Grid) validate() error {
	if g.NX < 2 || g.NZ < 2 || !(g.X1 > g.X0) || !(g.Z1 > g.Z0) || g.Z0 < 0 {
		return ErrGrid
	}
	return nil
}

// FieldGrid holds Solve output: node coordinates plus the field at
// every node, row-major with z varying slowest.
type FieldGrid struct {
	Grid   Grid
	Xs     []float64 // NX node abscissas
	Zs     []float64 // NZ node depths
	Fields []Field   // len NX·NZ
}

// At returns the field at column ix, row iz.
func (fg *FieldGrid) At(ix, iz int) Field {
	return fg.Fields[iz*fg.Grid.NX+ix]
}
