// Package sounding defines the data types and sentinel errors for
// apparent-resistivity sounding curves.
package sounding

import "errors"

// Sentinel errors for sounding construction, validation and CSV parsing.
var (
	// ErrNoData indicates a sounding with zero data points.
	ErrNoData = errors.New("sounding: need at least one data point")
	// ErrLengthMismatch indicates spacing/rhoa/stddev slices of differing lengths.
	ErrLengthMismatch = errors.New("sounding: spacing, rhoa and stddev lengths must match")
	// ErrSpacing indicates spacings that are not positive, finite and strictly increasing.
	ErrSpacing = errors.New("sounding: spacings must be positive, finite and strictly increasing")
	// ErrRhoa indicates a non-positive or non-finite apparent resistivity.
	ErrRhoa = errors.New("sounding: apparent resistivities must be positive and finite")
	// ErrStdDev indicates a non-positive or non-finite standard deviation.
	ErrStdDev = errors.New("sounding: standard deviations must be positive and finite")
	// ErrArray indicates an unknown electrode array.
	ErrArray = errors.New("sounding: unknown electrode array")
	// ErrCSV indicates a malformed CSV record.
	ErrCSV = errors.New("sounding: malformed csv record")
	// ErrLogRange indicates an invalid logarithmic spacing range.
	ErrLogRange = errors.New("sounding: spacing range must satisfy 0 < min < max with perDecade >= 1")
)

// Array identifies the electrode geometry of a sounding. The zero value
// is invalid so that unset fields surface as validation errors instead
// of silently defaulting.
type Array int

const (
	// Wenner is the equal-spacing four-electrode array; spacing is a.
	Wenner Array = iota + 1
	// Schlumberger is the symmetric array with an ideal central dipole;
	// spacing is AB/2.
	Schlumberger
	// PolePole is the two-active-electrode array with the returns at
	// infinity; spacing is the active separation r.
	PolePole
)

// String returns the lowercase array name used in CSV metadata, CLI
// flags and the database.
func (a Array) String() string {
	switch a {
	case Wenner:
		return "wenner"
	case Schlumberger:
		return "schlumberger"
	case PolePole:
		return "pole-pole"
	default:
		return "unknown"
	}
}

// Valid reports whether a names one of the supported arrays.
func (a Array) Valid() bool {
	return a == Wenner || a == Schlumberger || a == PolePole
}

// ParseArray converts an array name (as produced by String) into an
// Array. Returns ErrArray for anything else.
func ParseArray(s string) (Array, error) {
	switch s {
	case "wenner":
		return Wenner, nil
	case "schlumberger":
		return Schlumberger, nil
	case "pole-pole", "polepole", "pole_pole":
		return PolePole, nil
	default:
		return 0, ErrArray
	}
}

// Sounding is one measured (or synthesized) apparent-resistivity curve.
// Spacing, Rhoa and StdDev are parallel slices; StdDev may be empty when
// no uncertainties were recorded.
type Sounding struct {
	// Name labels the sounding in files, logs and the database.
	Name string
	// Array is the electrode geometry the curve was acquired with.
	Array Array
	// Spacing holds the electrode spacings in metres, strictly increasing.
	Spacing []float64
	// Rhoa holds the apparent resistivities in Ω·m.
	Rhoa []float64
	// StdDev holds relative standard deviations (0.05 means 5%).
	// Empty when unknown; consumers apply their own default floor.
	StdDev []float64
}
