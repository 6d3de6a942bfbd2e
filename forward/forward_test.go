package forward_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/forward"
	"github.com/terraprobe/ves/sounding"
)

var allArrays = []sounding.Array{sounding.Wenner, sounding.Schlumberger, sounding.PolePole}

//----------------------------------------------------------------------------//
// Resistivity Transform
//----------------------------------------------------------------------------//

// TestTransform_Limits pins the analytic endpoints: T(0) is the basement
// resistivity, T(∞) the first-layer resistivity.
func TestTransform_Limits(t *testing.T) {
	m, err := earth.New([]float64{100, 20, 300}, []float64{5, 10})
	require.NoError(t, err)

	assert.Equal(t, 300.0, forward.Transform(m, 0))
	assert.InDelta(t, 100.0, forward.Transform(m, 1e9), 1e-9)
}

// TestTransform_Bounded verifies min ρ ≤ T(λ) ≤ max ρ across eight
// decades of λ; the recursion is a convex-like blend of the layer
// resistivities and can never leave their range.
func TestTransform_Bounded(t *testing.T) {
	m, err := earth.New([]float64{50, 500, 5, 120}, []float64{2, 8, 40})
	require.NoError(t, err)

	for lg := -4.0; lg <= 4.0; lg += 0.25 {
		tr := forward.Transform(m, math.Pow(10, lg))
		assert.GreaterOrEqual(t, tr, 5.0, "λ=1e%g", lg)
		assert.LessOrEqual(t, tr, 500.0, "λ=1e%g", lg)
	}
}

// TestTransform_TwoLayerClosedForm checks the recursion against the
// algebraic two-layer transform T = ρ₁(1+k·e^(−2λt))/(1−k·e^(−2λt)).
func TestTransform_TwoLayerClosedForm(t *testing.T) {
	const rho1, rho2, th = 100.0, 20.0, 5.0
	m := earth.TwoLayer(rho1, rho2, th)
	k := (rho2 - rho1) / (rho2 + rho1)

	for _, lambda := range []float64{0, 0.01, 0.1, 0.3, 1, 3} {
		e := k * math.Exp(-2*lambda*th)
		want := rho1 * (1 + e) / (1 - e)
		assert.InEpsilon(t, want, forward.Transform(m, lambda), 1e-12, "λ=%g", lambda)
	}
}

//----------------------------------------------------------------------------//
// Apparent Resistivity: Exact Cases
//----------------------------------------------------------------------------//

// TestApparent_HalfSpace verifies that a homogeneous half-space returns
// its resistivity for every array — exactly for a one-layer model, to
// quadrature tolerance for a disguised one (three equal layers).
func TestApparent_HalfSpace(t *testing.T) {
	const rho = 75.0
	uniform := earth.Uniform(rho)
	disguised, err := earth.New([]float64{rho, rho, rho}, []float64{3, 17})
	require.NoError(t, err)

	for _, arr := range allArrays {
		for _, sp := range []float64{0.5, 5, 50, 500} {
			ra, err := forward.Apparent(uniform, arr, sp, nil)
			require.NoError(t, err)
			assert.Equal(t, rho, ra, "%s uniform at %g", arr, sp)

			ra, err = forward.Apparent(disguised, arr, sp, nil)
			require.NoError(t, err)
			assert.InDelta(t, rho, ra, 1e-6, "%s disguised at %g", arr, sp)
		}
	}
}

// TestApparent_TwoLayerAgainstImages holds the Hankel quadrature against
// the independent image-series closed form over both contrast signs,
// three arrays and spacings from a tenth of the slab thickness to twenty
// times it.
func TestApparent_TwoLayerAgainstImages(t *testing.T) {
	const rho1, th = 100.0, 5.0
	for _, rho2 := range []float64{1000, 10} {
		m := earth.TwoLayer(rho1, rho2, th)
		for _, arr := range allArrays {
			for _, sp := range []float64{0.5, 2, 5, 20, 100} {
				got, err := forward.Apparent(m, arr, sp, nil)
				require.NoError(t, err)
				want := forward.TwoLayerApparent(rho1, rho2, th, arr, sp)
				assert.InEpsilon(t, want, got, 1e-6,
					"%s ρ₂=%g spacing=%g", arr, rho2, sp)
			}
		}
	}
}

// TestApparent_Limits verifies the asymptotes of a two-layer curve:
// toward ρ₁ at small spacings, toward ρ₂ at large ones.
func TestApparent_Limits(t *testing.T) {
	const rho1, rho2, th = 100.0, 20.0, 5.0
	m := earth.TwoLayer(rho1, rho2, th)

	for _, arr := range allArrays {
		near, err := forward.Apparent(m, arr, 0.05, nil)
		require.NoError(t, err)
		assert.InEpsilon(t, rho1, near, 0.01, "%s shallow limit", arr)

		far, err := forward.Apparent(m, arr, 2500, nil)
		require.NoError(t, err)
		assert.InEpsilon(t, rho2, far, 0.05, "%s deep limit", arr)
	}
}

// TestApparent_HCurveShape checks the qualitative anatomy of an H-type
// sounding: start near ρ₁, dip toward the conductor, recover toward the
// resistive basement.
func TestApparent_HCurveShape(t *testing.T) {
	m, err := earth.TypeCurve(earth.TypeH, 100) // 100 / 20 / 300
	require.NoError(t, err)

	shallow, err := forward.Apparent(m, sounding.Schlumberger, 1, nil)
	require.NoError(t, err)
	mid, err := forward.Apparent(m, sounding.Schlumberger, 15, nil)
	require.NoError(t, err)
	deep, err := forward.Apparent(m, sounding.Schlumberger, 2000, nil)
	require.NoError(t, err)

	assert.Greater(t, shallow, 80.0, "shallow end near ρ₁")
	assert.Less(t, mid, 75.0, "dip over the conductor")
	assert.Greater(t, deep, 200.0, "recovery toward the basement")
	assert.Less(t, mid, shallow)
	assert.Greater(t, deep, mid)
}

//----------------------------------------------------------------------------//
// Errors and Options
//----------------------------------------------------------------------------//

// TestApparent_Errors exercises every input validation path.
func TestApparent_Errors(t *testing.T) {
	m := earth.TwoLayer(100, 20, 5)

	_, err := forward.Apparent(earth.Model{}, sounding.Wenner, 1, nil)
	assert.ErrorIs(t, err, earth.ErrEmptyModel)

	_, err = forward.Apparent(m, sounding.Array(0), 1, nil)
	assert.ErrorIs(t, err, sounding.ErrArray)

	for _, sp := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		_, err = forward.Apparent(m, sounding.Wenner, sp, nil)
		assert.ErrorIs(t, err, forward.ErrBadSpacing, "spacing %g", sp)
	}

	_, err = forward.Apparent(m, sounding.Wenner, 1, &forward.Options{})
	assert.ErrorIs(t, err, forward.ErrOptions)
}

// TestApparent_NoConvergence starves the segment budget so the tail
// cannot go quiet.
func TestApparent_NoConvergence(t *testing.T) {
	m := earth.TwoLayer(100, 20, 0.001)
	_, err := forward.Apparent(m, sounding.Schlumberger, 1000,
		&forward.Options{RelTol: 1e-9, MaxSegments: 50})
	assert.ErrorIs(t, err, forward.ErrNoConvergence)
}

// TestCurve matches the vector form against point-by-point calls.
func TestCurve(t *testing.T) {
	m, err := earth.New([]float64{100, 20, 300}, []float64{5, 10})
	require.NoError(t, err)
	spacings := []float64{1, 3, 10, 30, 100}

	curve, err := forward.Curve(m, sounding.Wenner, spacings, nil)
	require.NoError(t, err)
	require.Len(t, curve, len(spacings))

	for i, sp := range spacings {
		one, err := forward.Apparent(m, sounding.Wenner, sp, nil)
		require.NoError(t, err)
		assert.Equal(t, one, curve[i], "spacing %g", sp)
	}
}

//----------------------------------------------------------------------------//
// Synthetic Data
//----------------------------------------------------------------------------//

// TestSynthetic_Deterministic verifies seed reproducibility and that the
// noise actually perturbs the curve.
func TestSynthetic_Deterministic(t *testing.T) {
	m := earth.TwoLayer(100, 20, 5)
	sp := []float64{1, 2, 5, 10, 20, 50}

	a, err := forward.Synthetic("a", m, sounding.Schlumberger, sp, 0.05, 42, nil)
	require.NoError(t, err)
	b, err := forward.Synthetic("b", m, sounding.Schlumberger, sp, 0.05, 42, nil)
	require.NoError(t, err)
	c, err := forward.Synthetic("c", m, sounding.Schlumberger, sp, 0.05, 7, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Rhoa, b.Rhoa, "same seed, same noise")
	assert.NotEqual(t, a.Rhoa, c.Rhoa, "different seed, different noise")
	assert.Equal(t, []float64{0.05, 0.05, 0.05, 0.05, 0.05, 0.05}, a.StdDev)
}

// TestSynthetic_Noiseless returns the exact forward curve with no
// uncertainty column.
func TestSynthetic_Noiseless(t *testing.T) {
	m := earth.TwoLayer(100, 20, 5)
	sp := []float64{1, 10, 100}

	s, err := forward.Synthetic("clean", m, sounding.Wenner, sp, 0, 1, nil)
	require.NoError(t, err)
	curve, err := forward.Curve(m, sounding.Wenner, sp, nil)
	require.NoError(t, err)

	assert.Equal(t, curve, s.Rhoa)
	assert.False(t, s.HasStdDev())
	assert.Equal(t, sounding.Wenner, s.Array)
}

//----------------------------------------------------------------------------//
// Image Series
//----------------------------------------------------------------------------//

// TestTwoLayerApparent_Limits pins the closed form's own asymptotes, so
// the cross-check above rests on two mutually independent codes.
func TestTwoLayerApparent_Limits(t *testing.T) {
	const rho1, rho2, th = 100.0, 20.0, 5.0

	for _, arr := range allArrays {
		assert.Equal(t, rho1, forward.TwoLayerApparent(rho1, rho1, th, arr, 10), "no contrast, %s", arr)
		assert.InEpsilon(t, rho1, forward.TwoLayerApparent(rho1, rho2, th, arr, 0.05), 0.01, "shallow, %s", arr)
		assert.InEpsilon(t, rho2, forward.TwoLayerApparent(rho1, rho2, th, arr, 5000), 0.05, "deep, %s", arr)
	}

	assert.True(t, math.IsNaN(forward.TwoLayerApparent(rho1, rho2, th, sounding.Array(9), 10)))
}
