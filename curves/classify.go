package curves

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/forward"
	"github.com/terraprobe/ves/sounding"
)

// Shape reduces a resistivity curve to its standardized log form: the
// natural logs of the values, centered on their mean and scaled to unit
// variance. Curves that differ only by a resistivity scale factor map
// to the same shape, so Warp on shapes compares geometry, not level.
// Values must be positive. A constant curve maps to all zeros.
func Shape(rhoa []float64) []float64 {
	if len(rhoa) == 0 {
		return nil
	}
	out := make([]float64, len(rhoa))
	for i, r := range rhoa {
		out[i] = math.Log(r)
	}
	mean := floats.Sum(out) / float64(len(out))
	var ss float64
	for i := range out {
		out[i] -= mean
		ss += out[i] * out[i]
	}
	if sd := math.Sqrt(ss / float64(len(out))); sd > 0 {
		for i := range out {
			out[i] /= sd
		}
	}
	return out
}

// Classify ranks the four canonical three-layer classes against an
// observed sounding. Each reference section is sounded with the same
// array over the same spacings as the data, both curves are reduced to
// standardized log shapes, and Warp scores the disagreement. The result
// is sorted best first; ties order H, K, A, Q.
//
// The reference models use a unit base resistivity. Because apparent
// resistivity is linear in a uniform scaling of all layers, the base
// cancels in the shape and only the class geometry is scored.
func Classify(s *sounding.Sounding, opts Options) ([]Match, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	observed := Shape(s.Rhoa)

	wopts := opts
	wopts.ReturnPath = false

	classes := []earth.CurveType{earth.TypeH, earth.TypeK, earth.TypeA, earth.TypeQ}
	out := make([]Match, 0, len(classes))
	for _, c := range classes {
		ref, err := earth.TypeCurve(c, 1)
		if err != nil {
			return nil, err
		}
		rhoa, err := forward.Curve(ref, s.Array, s.Spacing, opts.Forward)
		if err != nil {
			return nil, err
		}
		d, _, err := Warp(observed, Shape(rhoa), wopts)
		if err != nil {
			return nil, err
		}
		out = append(out, Match{Type: c, Distance: d, Model: ref})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Type < out[j].Type
	})
	return out, nil
}

// Suggest scales a classified match into a starting model for the data:
// resistivities are scaled so their geometric mean matches the observed
// apparent resistivities, and thicknesses are rescaled in proportion so
// the interfaces sit around the mid-range depth of investigation,
// sqrt(min·max spacing)/2. The layer proportions of the match survive;
// only level and depth move.
func Suggest(s *sounding.Sounding, m Match) (earth.Model, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := m.Model.Validate(); err != nil {
		return nil, err
	}

	logs := s.LogRhoa()
	gmData := math.Exp(floats.Sum(logs) / float64(len(logs)))

	rhos := m.Model.Resistivities()
	var lsum float64
	for _, r := range rhos {
		lsum += math.Log(r)
	}
	scale := gmData / math.Exp(lsum/float64(len(rhos)))
	for i := range rhos {
		rhos[i] *= scale
	}

	depth := math.Sqrt(s.MinSpacing()*s.MaxSpacing()) / 2
	ts := m.Model.Thicknesses()
	var total float64
	for _, t := range ts {
		total += t
	}
	if total > 0 {
		for i := range ts {
			ts[i] *= depth / total
		}
	}
	return earth.New(rhos, ts)
}
