package cylinder

import "math"

// SurfaceCharge returns the induced charge density on the cylinder rim
// at angle theta, measured from +x in the section plane, divided by ε₀.
// The jump in the normal field across the rim gives
//
//	τ(θ)/ε₀ = 2χ · (E₀ · n̂).
//
// Its integral around the rim vanishes: the cylinder polarizes, it does
// not charge up.
func (s *Setup) SurfaceCharge(theta float64) float64 {
	_, e0x, e0z := s.primary(s.Center.X, s.Center.Z)
	nx, nz := math.Cos(theta), math.Sin(theta)
	return 2 * s.chi() * (e0x*nx + e0z*nz)
}

// ProfileMN scans an ideal MN dipole of separation mn along the surface
// and returns the apparent resistivity at each midpoint, calibrated so
// a contrast-free section reads exactly RhoBackground:
//
//	ρa(x) = ρ₀ · ΔV_total / ΔV_primary.
//
// A conductive cylinder pulls the profile down over the target, a
// resistive one pushes it up. MN electrodes that land on a current
// electrode are nudged off the singularity.
func (s *Setup) ProfileMN(midpoints []float64, mn float64) ([]float64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if !(mn > 0) {
		return nil, ErrMN
	}

	nudge := 1e-9 * math.Abs(s.B.X-s.A.X)
	rhoa := make([]float64, len(midpoints))
	for i, x := range midpoints {
		xm := s.offElectrode(x-mn/2, nudge)
		xn := s.offElectrode(x+mn/2, nudge)
		vm := s.at(xm, 0).V
		vn := s.at(xn, 0).V
		vmp, _, _ := s.primary(xm, 0)
		vnp, _, _ := s.primary(xn, 0)
		rhoa[i] = s.RhoBackground * (vm - vn) / (vmp - vnp)
	}
	return rhoa, nil
}

func (s *Setup) offElectrode(x, nudge float64) float64 {
	if math.Abs(x-s.A.X) < nudge {
		return s.A.X + nudge
	}
	if math.Abs(x-s.B.X) < nudge {
		return s.B.X + nudge
	}
	return x
}
