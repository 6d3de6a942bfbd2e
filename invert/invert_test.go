package invert_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/forward"
	"github.com/terraprobe/ves/invert"
	"github.com/terraprobe/ves/sounding"
)

//---------------------------------------------------------------------
// Helpers
//---------------------------------------------------------------------

// noiselessTwoLayer synthesizes a clean conductive-basement sounding:
// 100 Ω·m over 20 Ω·m with the interface at 5 m.
func noiselessTwoLayer(t *testing.T) *sounding.Sounding {
	t.Helper()
	m := earth.TwoLayer(100, 20, 5)
	sp, err := sounding.LogSpacings(1, 100, 5)
	require.NoError(t, err)
	s, err := forward.Synthetic("twolayer", m, sounding.Schlumberger, sp, 0, 1, nil)
	require.NoError(t, err)
	return s
}

// noiselessH synthesizes a clean three-layer H-type sounding.
func noiselessH(t *testing.T) (*sounding.Sounding, earth.Model) {
	t.Helper()
	m, err := earth.New([]float64{100, 20, 300}, []float64{5, 10})
	require.NoError(t, err)
	sp, err := sounding.LogSpacings(1, 300, 5)
	require.NoError(t, err)
	s, err := forward.Synthetic("hcurve", m, sounding.Schlumberger, sp, 0, 1, nil)
	require.NoError(t, err)
	return s, m
}

func testOptions() *invert.Options {
	o := invert.DefaultOptions()
	o.Cells = 16
	o.MaxIterations = 40
	return o
}

//---------------------------------------------------------------------
// Smooth
//---------------------------------------------------------------------

func TestSmooth_TwoLayer(t *testing.T) {
	s := noiselessTwoLayer(t)

	res, err := invert.Smooth(context.Background(), s, testOptions())
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, res.Converged, "clean data should reach the misfit target")
	assert.LessOrEqual(t, res.Chi2N, 1.001)
	assert.Less(t, res.RMSPercent, 6.0)
	require.NotNil(t, res.Mesh)
	require.Len(t, res.Predicted, s.Len())

	// The recovered profile should look like the truth at both ends.
	shallow := res.Model.RhoAt(0.5)
	deep := res.Model.RhoAt(30)
	assert.Greater(t, shallow, 60.0)
	assert.Less(t, shallow, 160.0)
	assert.Greater(t, deep, 8.0)
	assert.Less(t, deep, 50.0)

	// Convergence path bookkeeping.
	require.NotEmpty(t, res.Path)
	assert.Equal(t, res.Iterations, res.Path[len(res.Path)-1].Iteration)
	assert.Less(t, res.Path[len(res.Path)-1].PhiD, res.Path[0].PhiD+1e-12)
}

func TestSmooth_Canceled(t *testing.T) {
	s := noiselessTwoLayer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := invert.Smooth(ctx, s, testOptions())
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res, "cancellation should still surface the best model so far")
	assert.False(t, res.Converged)
}

func TestSmooth_Errors(t *testing.T) {
	s := noiselessTwoLayer(t)

	t.Run("bad sounding", func(t *testing.T) {
		bad := &sounding.Sounding{Array: sounding.Wenner}
		_, err := invert.Smooth(context.Background(), bad, nil)
		assert.ErrorIs(t, err, sounding.ErrNoData)
	})

	t.Run("bad regularization", func(t *testing.T) {
		o := testOptions()
		o.Reg.AlphaS = -1
		_, err := invert.Smooth(context.Background(), s, o)
		assert.ErrorIs(t, err, invert.ErrOptions)
	})

	t.Run("bad schedule", func(t *testing.T) {
		o := testOptions()
		o.Sched.CoolingFactor = 0.5
		_, err := invert.Smooth(context.Background(), s, o)
		assert.ErrorIs(t, err, invert.ErrSchedule)
	})
}

//---------------------------------------------------------------------
// Parametric
//---------------------------------------------------------------------

func TestParametric_ThreeLayerH(t *testing.T) {
	s, truth := noiselessH(t)

	start, err := earth.New([]float64{80, 30, 200}, []float64{4, 12})
	require.NoError(t, err)

	// Clean data support a much tighter target than the default
	// chi-squared of one; chasing it pins the parameters down.
	o := testOptions()
	o.Sched.ChiFact = 0.01

	res, err := invert.Parametric(context.Background(), s, start, o)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, res.Converged)
	assert.LessOrEqual(t, res.Chi2N, 0.0101)
	assert.Nil(t, res.Mesh, "parametric results carry no mesh")
	require.Equal(t, truth.NumLayers(), res.Model.NumLayers())

	// Noiseless H-curve data pin the first layer tightly; deeper
	// parameters trade off and get looser bounds.
	assert.InEpsilon(t, 100.0, res.Model[0].Rho, 0.10)
	assert.InEpsilon(t, 20.0, res.Model[1].Rho, 0.30)
	assert.InEpsilon(t, 300.0, res.Model[2].Rho, 0.30)
	assert.InEpsilon(t, 5.0, res.Model[0].Thickness, 0.30)
	assert.InEpsilon(t, 10.0, res.Model[1].Thickness, 0.45)
}

func TestParametric_Errors(t *testing.T) {
	s := noiselessTwoLayer(t)

	t.Run("bad start", func(t *testing.T) {
		bad := earth.Model{{Rho: -5}}
		_, err := invert.Parametric(context.Background(), s, bad, nil)
		assert.ErrorIs(t, err, earth.ErrResistivity)
	})

	t.Run("bad iterations", func(t *testing.T) {
		o := testOptions()
		o.MaxIterations = -3
		start := earth.TwoLayer(50, 50, 5)
		_, err := invert.Parametric(context.Background(), s, start, o)
		assert.ErrorIs(t, err, invert.ErrOptions)
	})
}

//---------------------------------------------------------------------
// Depth of investigation
//---------------------------------------------------------------------

func TestDOI_TwoLayer(t *testing.T) {
	s := noiselessTwoLayer(t)

	res, err := invert.DOI(context.Background(), s, 0, 0, testOptions())
	require.NoError(t, err)
	require.NotNil(t, res)

	require.NotNil(t, res.Low)
	require.NotNil(t, res.High)
	assert.True(t, res.Low.Converged)
	assert.True(t, res.High.Converged)

	require.Equal(t, res.Mesh.NumCells(), len(res.Index))
	require.Equal(t, len(res.Depths), len(res.Index))

	// Shallow cells are data-constrained, deep cells follow their
	// references.
	assert.Less(t, res.Index[0], 0.2)
	assert.Greater(t, res.Index[len(res.Index)-1], 0.5)

	// The DOI must land between the interface and the mesh bottom.
	assert.Greater(t, res.Depth, 5.0)
	assert.Less(t, res.Depth, res.Mesh.TotalDepth())
}

func TestDOI_Range(t *testing.T) {
	s := noiselessTwoLayer(t)

	for _, tc := range []struct {
		name             string
		gamma, threshold float64
	}{
		{"gamma at one", 1, 0.2},
		{"gamma below one", 0.5, 0.2},
		{"threshold too high", 10, 1.5},
		{"threshold negative", 10, -0.1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := invert.DOI(context.Background(), s, tc.gamma, tc.threshold, testOptions())
			assert.ErrorIs(t, err, invert.ErrDOIRange)
		})
	}
}
