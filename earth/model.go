package earth

import (
	"fmt"
	"math"
	"strings"
)

// New builds a Model from parallel slices of resistivities and inner-layer
// thicknesses. rhos has one entry per layer, thicknesses one entry per
// layer above the basement, so len(thicknesses) == len(rhos)-1.
//
// Returns ErrEmptyModel, ErrLayerCount, or a validation error.
func New(rhos, thicknesses []float64) (Model, error) {
	if len(rhos) == 0 {
		return nil, ErrEmptyModel
	}
	if len(thicknesses) != len(rhos)-1 {
		return nil, fmt.Errorf("%w: got %d resistivities, %d thicknesses",
			ErrLayerCount, len(rhos), len(thicknesses))
	}
	m := make(Model, len(rhos))
	for i, r := range rhos {
		m[i].Rho = r
		if i < len(thicknesses) {
			m[i].Thickness = thicknesses[i]
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Uniform returns a one-layer model: a homogeneous half-space of
// resistivity rho.
func Uniform(rho float64) Model {
	return Model{{Rho: rho}}
}

// TwoLayer returns a two-layer model: a slab of resistivity rho1 and
// thickness t1 over a basement of resistivity rho2.
func TwoLayer(rho1, rho2, t1 float64) Model {
	return Model{{Rho: rho1, Thickness: t1}, {Rho: rho2}}
}

// Canonical three-layer type-curve proportions. Thicknesses are fixed at
// 5 m and 10 m; resistivities scale with the requested base value.
var curveRatios = map[CurveType][3]float64{
	TypeH: {1, 0.2, 3},
	TypeK: {1, 5, 0.5},
	TypeA: {1, 3, 9},
	TypeQ: {1, 1.0 / 3.0, 1.0 / 9.0},
}

// TypeCurve builds the canonical three-layer model of class c scaled to a
// first-layer resistivity of base Ω·m. The middle layer is 10 m thick
// under 5 m of overburden.
//
// Returns ErrCurveType for an unknown class and ErrResistivity for a
// non-positive base.
func TypeCurve(c CurveType, base float64) (Model, error) {
	ratios, ok := curveRatios[c]
	if !ok {
		return nil, ErrCurveType
	}
	if !(base > 0) || math.IsInf(base, 0) {
		return nil, fmt.Errorf("%w: base %g", ErrResistivity, base)
	}
	return Model{
		{Rho: ratios[0] * base, Thickness: 5},
		{Rho: ratios[1] * base, Thickness: 10},
		{Rho: ratios[2] * base},
	}, nil
}

// Validate checks the structural invariants of a model: at least one
// layer, positive finite resistivities, positive finite thicknesses
// above the basement, zero thickness on the basement itself.
func (m Model) Validate() error {
	if len(m) == 0 {
		return ErrEmptyModel
	}
	last := len(m) - 1
	for i, l := range m {
		if !(l.Rho > 0) || math.IsInf(l.Rho, 0) || math.IsNaN(l.Rho) {
			return fmt.Errorf("%w: layer %d has rho %g", ErrResistivity, i, l.Rho)
		}
		if i == last {
			if l.Thickness != 0 {
				return fmt.Errorf("%w: layer %d has thickness %g", ErrBasement, i, l.Thickness)
			}
			continue
		}
		if !(l.Thickness > 0) || math.IsInf(l.Thickness, 0) || math.IsNaN(l.Thickness) {
			return fmt.Errorf("%w: layer %d has thickness %g", ErrThickness, i, l.Thickness)
		}
	}
	return nil
}

// NumLayers reports the number of layers including the basement.
func (m Model) NumLayers() int { return len(m) }

// Basement returns the deepest layer.
func (m Model) Basement() Layer { return m[len(m)-1] }

// Resistivities returns the layer resistivities from the surface down.
func (m Model) Resistivities() []float64 {
	out := make([]float64, len(m))
	for i, l := range m {
		out[i] = l.Rho
	}
	return out
}

// Thicknesses returns the inner-layer thicknesses from the surface down;
// the slice has NumLayers()-1 entries.
func (m Model) Thicknesses() []float64 {
	if len(m) == 0 {
		return nil
	}
	out := make([]float64, len(m)-1)
	for i := range out {
		out[i] = m[i].Thickness
	}
	return out
}

// InterfaceDepths returns the depths of the layer interfaces in metres,
// top down: the bottom of layer 0, the bottom of layer 1, and so on.
// The slice has NumLayers()-1 entries.
func (m Model) InterfaceDepths() []float64 {
	if len(m) == 0 {
		return nil
	}
	out := make([]float64, len(m)-1)
	var z float64
	for i := range out {
		z += m[i].Thickness
		out[i] = z
	}
	return out
}

// RhoAt returns the resistivity at depth z metres. Depths at or below the
// deepest interface fall in the basement; negative depths clamp to the
// first layer.
func (m Model) RhoAt(z float64) float64 {
	var bottom float64
	for i := 0; i < len(m)-1; i++ {
		bottom += m[i].Thickness
		if z < bottom {
			return m[i].Rho
		}
	}
	return m[len(m)-1].Rho
}

// Clone returns an independent copy of the model.
func (m Model) Clone() Model {
	out := make(Model, len(m))
	copy(out, m)
	return out
}

// String renders the model top down, e.g.
// "100 Ω·m × 5 m | 20 Ω·m × 10 m | 300 Ω·m".
func (m Model) String() string {
	var b strings.Builder
	for i, l := range m {
		if i > 0 {
			b.WriteString(" | ")
		}
		if i == len(m)-1 {
			fmt.Fprintf(&b, "%g Ω·m", l.Rho)
			continue
		}
		fmt.Fprintf(&b, "%g Ω·m × %g m", l.Rho, l.Thickness)
	}
	return b.String()
}

// LogParams flattens the model into the vector inversions operate on:
// the natural logs of the resistivities followed by the natural logs of
// the inner-layer thicknesses, 2n-1 entries for an n-layer model.
func (m Model) LogParams() []float64 {
	n := len(m)
	out := make([]float64, 0, 2*n-1)
	for _, l := range m {
		out = append(out, math.Log(l.Rho))
	}
	for i := 0; i < n-1; i++ {
		out = append(out, math.Log(m[i].Thickness))
	}
	return out
}

// FromLogParams rebuilds a model from a log-parameter vector produced by
// LogParams. The vector length must be odd: 2n-1 entries describe an
// n-layer model.
//
// Returns ErrParamLength for an even or empty vector.
func FromLogParams(p []float64) (Model, error) {
	if len(p) == 0 || len(p)%2 == 0 {
		return nil, fmt.Errorf("%w: got %d entries", ErrParamLength, len(p))
	}
	n := (len(p) + 1) / 2
	m := make(Model, n)
	for i := 0; i < n; i++ {
		m[i].Rho = math.Exp(p[i])
	}
	for i := 0; i < n-1; i++ {
		m[i].Thickness = math.Exp(p[n+i])
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
