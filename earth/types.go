// Package earth defines layered-earth model types, curve-type constants,
// and sentinel errors shared across the forward and inverse packages.
package earth

import "errors"

// Sentinel errors for model construction and validation.
var (
	// ErrEmptyModel indicates a model with no layers.
	ErrEmptyModel = errors.New("earth: model must have at least one layer")
	// ErrResistivity indicates a non-positive or non-finite layer resistivity.
	ErrResistivity = errors.New("earth: layer resistivity must be positive and finite")
	// ErrThickness indicates a non-positive or non-finite inner-layer thickness.
	ErrThickness = errors.New("earth: layer thickness must be positive and finite")
	// ErrBasement indicates a basement layer carrying a nonzero thickness.
	ErrBasement = errors.New("earth: basement layer thickness must be zero")
	// ErrLayerCount indicates a mismatch between resistivity and thickness counts.
	ErrLayerCount = errors.New("earth: need exactly one thickness per layer above the basement")
	// ErrParamLength indicates a log-parameter vector of invalid length.
	ErrParamLength = errors.New("earth: log-parameter vector must have odd length 2n-1")
	// ErrCurveType indicates an unknown sounding curve class.
	ErrCurveType = errors.New("earth: unknown curve type")
)

// Layer is one uniform slab of the section: a resistivity and, for every
// layer above the basement, a thickness. The basement layer has
// Thickness 0 and extends to infinite depth.
type Layer struct {
	// Rho is the layer resistivity in Ω·m. Must be positive and finite.
	Rho float64 `json:"rho" yaml:"rho"`
	// Thickness is the layer thickness in metres. Zero for the basement,
	// positive and finite for every other layer.
	Thickness float64 `json:"thickness,omitempty" yaml:"thickness,omitempty"`
}

// Model is a stack of layers ordered from the surface down. The last
// layer is always the basement.
type Model []Layer

// CurveType classifies a three-layer section by the shape of its
// sounding curve.
type CurveType int

const (
	// TypeH has a conductive middle layer: ρ₁ > ρ₂ < ρ₃.
	TypeH CurveType = iota
	// TypeK has a resistive middle layer: ρ₁ < ρ₂ > ρ₃.
	TypeK
	// TypeA has resistivity increasing with depth: ρ₁ < ρ₂ < ρ₃.
	TypeA
	// TypeQ has resistivity decreasing with depth: ρ₁ > ρ₂ > ρ₃.
	TypeQ
)

// String returns the single-letter curve class: "H", "K", "A" or "Q".
func (c CurveType) String() string {
	switch c {
	case TypeH:
		return "H"
	case TypeK:
		return "K"
	case TypeA:
		return "A"
	case TypeQ:
		return "Q"
	default:
		return "?"
	}
}

// ParseCurveType converts a single-letter class name (case-insensitive)
// into a CurveType. Returns ErrCurveType for anything else.
func ParseCurveType(s string) (CurveType, error) {
	switch s {
	case "H", "h":
		return TypeH, nil
	case "K", "k":
		return TypeK, nil
	case "A", "a":
		return TypeA, nil
	case "Q", "q":
		return TypeQ, nil
	default:
		return 0, ErrCurveType
	}
}
