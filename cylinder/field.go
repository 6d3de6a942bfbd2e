package cylinder

import "math"

// primary returns the potential and electric field of the electrode
// pair alone, the uniform half-space solution.
func (s *Setup) primary(x, z float64) (v, ex, ez float64) {
	k := s.RhoBackground * s.Current / math.Pi
	dax, daz := x-s.A.X, z-s.A.Z
	dbx, dbz := x-s.B.X, z-s.B.Z
	ra2 := dax*dax + daz*daz
	rb2 := dbx*dbx + dbz*dbz
	v = 0.5 * k * math.Log(rb2/ra2)
	ex = k * (dax/ra2 - dbx/rb2)
	ez = k * (daz/ra2 - dbz/rb2)
	return v, ex, ez
}

// moment is the line-dipole strength χR²E₀ induced on the cylinder.
func (s *Setup) moment() (px, pz float64) {
	_, e0x, e0z := s.primary(s.Center.X, s.Center.Z)
	k := s.chi() * s.Radius * s.Radius
	return k * e0x, k * e0z
}

// dipole evaluates a 2D line dipole with moment (px,pz) at (cx,cz):
// V = p·d/d², E = 2(p·d)d/d⁴ − p/d².
func dipole(px, pz, cx, cz, x, z float64) (v, ex, ez float64) {
	dx, dz := x-cx, z-cz
	d2 := dx*dx + dz*dz
	dot := px*dx + pz*dz
	v = dot / d2
	ex = 2*dot*dx/(d2*d2) - px/d2
	ez = 2*dot*dz/(d2*d2) - pz/d2
	return v, ex, ez
}

// at samples the full solution at one point. It assumes a validated
// setup. Exterior points see primary plus the cylinder dipole and its
// surface image; interior points see the uniform polarization field,
// referenced to the primary potential at the cylinder center.
func (s *Setup) at(x, z float64) Field {
	if s.Inside(x, z) {
		vc, e0x, e0z := s.primary(s.Center.X, s.Center.Z)
		f := 1 - s.chi()
		ex, ez := f*e0x, f*e0z
		v := vc - ex*(x-s.Center.X) - ez*(z-s.Center.Z)
		sigma := 1 / s.RhoCylinder
		return Field{V: v, Ex: ex, Ez: ez, Jx: sigma * ex, Jz: sigma * ez, Inside: true}
	}

	v, ex, ez := s.primary(x, z)
	px, pz := s.moment()
	if px != 0 || pz != 0 {
		v1, ex1, ez1 := dipole(px, pz, s.Center.X, s.Center.Z, x, z)
		v2, ex2, ez2 := dipole(px, -pz, s.Center.X, -s.Center.Z, x, z)
		v += v1 + v2
		ex += ex1 + ex2
		ez += ez1 + ez2
	}
	sigma := 1 / s.RhoBackground
	return Field{V: v, Ex: ex, Ez: ez, Jx: sigma * ex, Jz: sigma * ez}
}

// Potential returns the total potential at (x, z). The value diverges
// at the electrodes themselves.
func (s *Setup) Potential(x, z float64) float64 {
	return s.at(x, z).V
}

// E returns the total electric field at (x, z).
func (s *Setup) E(x, z float64) (ex, ez float64) {
	f := s.at(x, z)
	return f.Ex, f.Ez
}

// J returns the current density at (x, z), σE with the local
// conductivity.
func (s *Setup) J(x, z float64) (jx, jz float64) {
	f := s.at(x, z)
	return f.Jx, f.Jz
}

// Solve samples the section on a regular grid. Nodes that land on a
// current electrode are nudged sideways by a relative epsilon so the
// output stays finite.
func (s *Setup) Solve(g Grid) (*FieldGrid, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := g.validate(); err != nil {
		return nil, err
	}

	xs := linspace(g.X0, g.X1, g.NX)
	zs := linspace(g.Z0, g.Z1, g.NZ)
	nudge := 1e-9 * math.Max(g.X1-g.X0, 1)

	fields := make([]Field, 0, g.NX*g.NZ)
	for _, z := range zs {
		for _, x := range xs {
			xe := x
			if z < nudge {
				if math.Abs(x-s.A.X) < nudge {
					xe = s.A.X + nudge
				} else if math.Abs(x-s.B.X) < nudge {
					xe = s.B.X + nudge
				}
			}
			fields = append(fields, s.at(xe, z))
		}
	}
	return &FieldGrid{Grid: g, Xs: xs, Zs: zs, Fields: fields}, nil
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
