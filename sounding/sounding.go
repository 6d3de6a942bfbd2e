package sounding

import (
	"fmt"
	"math"
)

// New assembles a Sounding from parallel slices and validates it.
// stddev may be nil when uncertainties were not recorded.
func New(name string, array Array, spacing, rhoa, stddev []float64) (*Sounding, error) {
	s := &Sounding{
		Name:    name,
		Array:   array,
		Spacing: spacing,
		Rhoa:    rhoa,
		StdDev:  stddev,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the structural invariants: a known array, at least one
// point, matching slice lengths, strictly increasing positive spacings,
// positive finite resistivities and (when present) standard deviations.
func (s *Sounding) Validate() error {
	if !s.Array.Valid() {
		return fmt.Errorf("%w: %d", ErrArray, int(s.Array))
	}
	if len(s.Spacing) == 0 {
		return ErrNoData
	}
	if len(s.Rhoa) != len(s.Spacing) {
		return fmt.Errorf("%w: %d spacings, %d rhoa", ErrLengthMismatch, len(s.Spacing), len(s.Rhoa))
	}
	if len(s.StdDev) != 0 && len(s.StdDev) != len(s.Spacing) {
		return fmt.Errorf("%w: %d spacings, %d stddev", ErrLengthMismatch, len(s.Spacing), len(s.StdDev))
	}
	prev := 0.0
	for i, sp := range s.Spacing {
		if !(sp > prev) || math.IsInf(sp, 0) || math.IsNaN(sp) {
			return fmt.Errorf("%w: index %d (%g after %g)", ErrSpacing, i, sp, prev)
		}
		prev = sp
	}
	for i, r := range s.Rhoa {
		if !(r > 0) || math.IsInf(r, 0) || math.IsNaN(r) {
			return fmt.Errorf("%w: index %d (%g)", ErrRhoa, i, r)
		}
	}
	for i, sd := range s.StdDev {
		if !(sd > 0) || math.IsInf(sd, 0) || math.IsNaN(sd) {
			return fmt.Errorf("%w: index %d (%g)", ErrStdDev, i, sd)
		}
	}
	return nil
}

// Len reports the number of data points.
func (s *Sounding) Len() int { return len(s.Spacing) }

// MinSpacing returns the smallest electrode spacing.
func (s *Sounding) MinSpacing() float64 { return s.Spacing[0] }

// MaxSpacing returns the largest electrode spacing.
func (s *Sounding) MaxSpacing() float64 { return s.Spacing[len(s.Spacing)-1] }

// HasStdDev reports whether per-point uncertainties were recorded.
func (s *Sounding) HasStdDev() bool { return len(s.StdDev) > 0 }

// Clone returns an independent deep copy.
func (s *Sounding) Clone() *Sounding {
	c := &Sounding{Name: s.Name, Array: s.Array}
	c.Spacing = append([]float64(nil), s.Spacing...)
	c.Rhoa = append([]float64(nil), s.Rhoa...)
	if s.StdDev != nil {
		c.StdDev = append([]float64(nil), s.StdDev...)
	}
	return c
}

// LogRhoa returns the natural logs of the apparent resistivities — the
// data vector fitting and inversion operate on.
func (s *Sounding) LogRhoa() []float64 {
	out := make([]float64, len(s.Rhoa))
	for i, r := range s.Rhoa {
		out[i] = math.Log(r)
	}
	return out
}

// LogSpacings generates logarithmically spaced electrode spacings from
// min to at most max with perDecade points per decade of spacing. The
// first point is exactly min.
//
// Returns ErrLogRange when min, max or perDecade are out of order.
func LogSpacings(min, max float64, perDecade int) ([]float64, error) {
	if !(min > 0) || !(max > min) || perDecade < 1 ||
		math.IsInf(max, 0) || math.IsNaN(min) || math.IsNaN(max) {
		return nil, fmt.Errorf("%w: min=%g max=%g perDecade=%d", ErrLogRange, min, max, perDecade)
	}
	n := int(math.Floor(math.Log10(max/min)*float64(perDecade))) + 1
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		sp := min * math.Pow(10, float64(i)/float64(perDecade))
		if sp > max*(1+1e-12) {
			break
		}
		out = append(out, sp)
	}
	return out, nil
}
