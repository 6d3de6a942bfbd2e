// Package mesh defines the Mesh type, its options and sentinel errors.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/sounding"
)

// Sentinel errors for mesh construction.
var (
	// ErrCells indicates a cell count below two.
	ErrCells = errors.New("mesh: need at least two cells")
	// ErrFirstThickness indicates a non-positive or non-finite first cell.
	ErrFirstThickness = errors.New("mesh: first cell thickness must be positive and finite")
	// ErrGrowth indicates a growth factor below one.
	ErrGrowth = errors.New("mesh: growth factor must be at least 1")
	// ErrRhoCount indicates a resistivity vector that does not match the cell count.
	ErrRhoCount = errors.New("mesh: need exactly one resistivity per cell")
)

// DefaultCells is the cell count ForSounding uses; two dozen cells
// resolve a sounding curve without overparameterizing it.
const DefaultCells = 24

// Options describes a geometric mesh explicitly.
type Options struct {
	// FirstThickness is the thickness of the shallowest cell in metres.
	FirstThickness float64
	// Growth is the thickness ratio between neighbouring cells, ≥ 1.
	Growth float64
	// Cells is the total cell count including the basement half-space.
	Cells int
}

// Mesh is an immutable stack of cells with geometrically growing
// thicknesses. The last cell is the basement half-space and has no
// thickness of its own.
type Mesh struct {
	thicknesses []float64 // finite cells only: Cells-1 entries
}

// New builds a mesh from explicit options.
func New(opts Options) (*Mesh, error) {
	if opts.Cells < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrCells, opts.Cells)
	}
	if !(opts.FirstThickness > 0) || math.IsInf(opts.FirstThickness, 0) || math.IsNaN(opts.FirstThickness) {
		return nil, fmt.Errorf("%w: got %g", ErrFirstThickness, opts.FirstThickness)
	}
	if !(opts.Growth >= 1) || math.IsInf(opts.Growth, 0) || math.IsNaN(opts.Growth) {
		return nil, fmt.Errorf("%w: got %g", ErrGrowth, opts.Growth)
	}
	ths := make([]float64, opts.Cells-1)
	th := opts.FirstThickness
	for i := range ths {
		ths[i] = th
		th *= opts.Growth
	}
	return &Mesh{thicknesses: ths}, nil
}

// ForSounding sizes a mesh to a survey: the first cell is a quarter of
// the smallest spacing and the finite stack reaches the largest spacing,
// the usual depth-of-penetration rule of thumb. cells ≤ 0 selects
// DefaultCells. When a uniform stack of first-cell-thick layers already
// passes the target depth the growth factor stays at 1 and the mesh
// simply overshoots.
func ForSounding(s *sounding.Sounding, cells int) (*Mesh, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if cells <= 0 {
		cells = DefaultCells
	}
	first := s.MinSpacing() / 4
	growth := solveGrowth(first, s.MaxSpacing(), cells-1)
	return New(Options{FirstThickness: first, Growth: growth, Cells: cells})
}

// solveGrowth finds g ≥ 1 with first·(gⁿ−1)/(g−1) = depth by bisection;
// the left side is strictly increasing in g.
func solveGrowth(first, depth float64, n int) float64 {
	if n < 2 || first*float64(n) >= depth {
		return 1
	}
	total := func(g float64) float64 {
		return first * (math.Pow(g, float64(n)) - 1) / (g - 1)
	}
	lo, hi := 1+1e-9, 2.0
	for total(hi) < depth && hi < 64 {
		hi *= 2
	}
	for i := 0; i < 200; i++ {
		mid := 0.5 * (lo + hi)
		if total(mid) < depth {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}

// NumCells reports the number of cells including the basement.
func (m *Mesh) NumCells() int { return len(m.thicknesses) + 1 }

// Thicknesses returns the finite cell thicknesses, top down.
func (m *Mesh) Thicknesses() []float64 {
	return append([]float64(nil), m.thicknesses...)
}

// TotalDepth returns the depth of the basement top in metres.
func (m *Mesh) TotalDepth() float64 {
	var z float64
	for _, t := range m.thicknesses {
		z += t
	}
	return z
}

// Tops returns the depth of each cell's upper boundary, one entry per
// cell; the first is always 0.
func (m *Mesh) Tops() []float64 {
	tops := make([]float64, m.NumCells())
	var z float64
	for i, t := range m.thicknesses {
		tops[i] = z
		z += t
	}
	tops[len(tops)-1] = z
	return tops
}

// Centers returns a representative depth per cell: the midpoint for
// finite cells and, for the unbounded basement, its top extended by half
// the deepest finite thickness.
func (m *Mesh) Centers() []float64 {
	centers := make([]float64, m.NumCells())
	var z float64
	for i, t := range m.thicknesses {
		centers[i] = z + t/2
		z += t
	}
	half := 0.0
	if n := len(m.thicknesses); n > 0 {
		half = m.thicknesses[n-1] / 2
	}
	centers[len(centers)-1] = z + half
	return centers
}

// Model binds one resistivity per cell to the mesh geometry, producing a
// layered model ready for forward simulation.
func (m *Mesh) Model(rhos []float64) (earth.Model, error) {
	if len(rhos) != m.NumCells() {
		return nil, fmt.Errorf("%w: %d cells, %d resistivities", ErrRhoCount, m.NumCells(), len(rhos))
	}
	return earth.New(rhos, m.thicknesses)
}

// Project samples a layered model at the mesh cell centers, giving the
// mesh-resolution view of an arbitrary section. Handy for building
// reference models and for comparing inversion output against a known
// truth.
func (m *Mesh) Project(em earth.Model) []float64 {
	centers := m.Centers()
	out := make([]float64, len(centers))
	for i, z := range centers {
		out[i] = em.RhoAt(z)
	}
	return out
}
