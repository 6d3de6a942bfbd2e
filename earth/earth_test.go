package earth_test

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraprobe/ves/earth"
)

//----------------------------------------------------------------------------//
// Construction and Validation Tests
//----------------------------------------------------------------------------//

// TestNew_Errors verifies that New rejects empty, mismatched and
// non-physical inputs with the matching sentinel error.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name  string
		rhos  []float64
		ths   []float64
		which error
	}{
		{"Empty", nil, nil, earth.ErrEmptyModel},
		{"CountMismatch", []float64{100, 20}, []float64{5, 10}, earth.ErrLayerCount},
		{"ZeroRho", []float64{0, 20}, []float64{5}, earth.ErrResistivity},
		{"NegativeRho", []float64{100, -20}, []float64{5}, earth.ErrResistivity},
		{"NaNRho", []float64{math.NaN(), 20}, []float64{5}, earth.ErrResistivity},
		{"InfRho", []float64{100, math.Inf(1)}, []float64{5}, earth.ErrResistivity},
		{"ZeroThickness", []float64{100, 20}, []float64{0}, earth.ErrThickness},
		{"NegativeThickness", []float64{100, 20, 300}, []float64{5, -10}, earth.ErrThickness},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := earth.New(tc.rhos, tc.ths)
			if !errors.Is(err, tc.which) {
				t.Errorf("New(%v, %v) error = %v; want %v", tc.rhos, tc.ths, err, tc.which)
			}
		})
	}
}

// TestNew_Valid builds a three-layer model and checks every accessor.
func TestNew_Valid(t *testing.T) {
	m, err := earth.New([]float64{100, 20, 300}, []float64{5, 10})
	require.NoError(t, err)

	assert.Equal(t, 3, m.NumLayers())
	assert.Equal(t, []float64{100, 20, 300}, m.Resistivities())
	assert.Equal(t, []float64{5, 10}, m.Thicknesses())
	assert.Equal(t, []float64{5, 15}, m.InterfaceDepths())
	assert.Equal(t, earth.Layer{Rho: 300}, m.Basement())
	assert.Equal(t, "100 Ω·m × 5 m | 20 Ω·m × 10 m | 300 Ω·m", m.String())
}

// TestValidate_Basement rejects a hand-built model whose basement carries
// a thickness.
func TestValidate_Basement(t *testing.T) {
	m := earth.Model{{Rho: 100, Thickness: 5}, {Rho: 20, Thickness: 10}}
	assert.ErrorIs(t, m.Validate(), earth.ErrBasement)
}

// TestClone verifies the copy is independent of the original.
func TestClone(t *testing.T) {
	m := earth.TwoLayer(100, 20, 5)
	c := m.Clone()
	c[0].Rho = 999
	assert.Equal(t, 100.0, m[0].Rho)
	assert.Equal(t, 999.0, c[0].Rho)
}

//----------------------------------------------------------------------------//
// Type Curves
//----------------------------------------------------------------------------//

// TestTypeCurve_Shapes checks the defining resistivity orderings of each
// curve class and the base scaling.
func TestTypeCurve_Shapes(t *testing.T) {
	cases := []struct {
		class earth.CurveType
		check func(r []float64) bool
	}{
		{earth.TypeH, func(r []float64) bool { return r[0] > r[1] && r[1] < r[2] }},
		{earth.TypeK, func(r []float64) bool { return r[0] < r[1] && r[1] > r[2] }},
		{earth.TypeA, func(r []float64) bool { return r[0] < r[1] && r[1] < r[2] }},
		{earth.TypeQ, func(r []float64) bool { return r[0] > r[1] && r[1] > r[2] }},
	}
	for _, tc := range cases {
		t.Run(tc.class.String(), func(t *testing.T) {
			m, err := earth.TypeCurve(tc.class, 50)
			require.NoError(t, err)
			require.Equal(t, 3, m.NumLayers())
			assert.True(t, tc.check(m.Resistivities()), "ordering violated: %v", m.Resistivities())
			assert.Equal(t, 50.0, m[0].Rho, "base scaling")
			assert.NoError(t, m.Validate())
		})
	}
}

// TestTypeCurve_Errors covers the unknown class and bad base cases.
func TestTypeCurve_Errors(t *testing.T) {
	_, err := earth.TypeCurve(earth.CurveType(42), 100)
	assert.ErrorIs(t, err, earth.ErrCurveType)

	_, err = earth.TypeCurve(earth.TypeH, -3)
	assert.ErrorIs(t, err, earth.ErrResistivity)
}

// TestParseCurveType round-trips the four classes and rejects junk.
func TestParseCurveType(t *testing.T) {
	for _, c := range []earth.CurveType{earth.TypeH, earth.TypeK, earth.TypeA, earth.TypeQ} {
		got, err := earth.ParseCurveType(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := earth.ParseCurveType("Z")
	assert.ErrorIs(t, err, earth.ErrCurveType)
}

//----------------------------------------------------------------------------//
// Depth Lookup and Log Parameters
//----------------------------------------------------------------------------//

// TestRhoAt samples resistivity across interfaces, including the exact
// interface depth (which belongs to the layer below) and a negative depth.
func TestRhoAt(t *testing.T) {
	m, err := earth.New([]float64{100, 20, 300}, []float64{5, 10})
	require.NoError(t, err)

	assert.Equal(t, 100.0, m.RhoAt(-1))
	assert.Equal(t, 100.0, m.RhoAt(0))
	assert.Equal(t, 100.0, m.RhoAt(4.999))
	assert.Equal(t, 20.0, m.RhoAt(5))
	assert.Equal(t, 20.0, m.RhoAt(14.999))
	assert.Equal(t, 300.0, m.RhoAt(15))
	assert.Equal(t, 300.0, m.RhoAt(1e6))
}

// TestLogParams_RoundTrip maps a model to log space and back.
func TestLogParams_RoundTrip(t *testing.T) {
	m, err := earth.New([]float64{120, 15, 450}, []float64{3.5, 22})
	require.NoError(t, err)

	p := m.LogParams()
	require.Len(t, p, 5)

	back, err := earth.FromLogParams(p)
	require.NoError(t, err)
	require.Equal(t, m.NumLayers(), back.NumLayers())
	for i := range m {
		assert.InDelta(t, m[i].Rho, back[i].Rho, 1e-9)
		assert.InDelta(t, m[i].Thickness, back[i].Thickness, 1e-9)
	}
}

// TestFromLogParams_Errors rejects empty and even-length vectors.
func TestFromLogParams_Errors(t *testing.T) {
	_, err := earth.FromLogParams(nil)
	assert.ErrorIs(t, err, earth.ErrParamLength)

	_, err = earth.FromLogParams([]float64{1, 2})
	assert.ErrorIs(t, err, earth.ErrParamLength)
}

//----------------------------------------------------------------------------//
// File Round-Trip
//----------------------------------------------------------------------------//

// TestFileRoundTrip saves a model to YAML and loads it back unchanged.
func TestFileRoundTrip(t *testing.T) {
	m, err := earth.New([]float64{80, 10, 500}, []float64{2, 30})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, m.SaveFile(path))

	got, err := earth.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

// TestLoadFile_Invalid rejects files describing non-physical models.
func TestLoadFile_Invalid(t *testing.T) {
	_, err := earth.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
