package fit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/fit"
	"github.com/terraprobe/ves/forward"
	"github.com/terraprobe/ves/sounding"
)

// noiselessTwoLayer builds exact synthetic data for the canonical
// 100 / 20 Ω·m, 5 m slab section.
func noiselessTwoLayer(t *testing.T) (*sounding.Sounding, earth.Model) {
	t.Helper()
	truth := earth.TwoLayer(100, 20, 5)
	sp, err := sounding.LogSpacings(1, 200, 6)
	require.NoError(t, err)
	s, err := forward.Synthetic("exact", truth, sounding.Schlumberger, sp, 0, 1, nil)
	require.NoError(t, err)
	return s, truth
}

// TestEvaluate_PerfectModel scores the generating model against its own
// noiseless data: the misfit must vanish to quadrature accuracy.
func TestEvaluate_PerfectModel(t *testing.T) {
	s, truth := noiselessTwoLayer(t)

	tr, err := fit.Evaluate(s, truth, nil)
	require.NoError(t, err)

	assert.Less(t, tr.Chi2, 1e-6)
	assert.Less(t, tr.RMSPercent, 1e-3)
	assert.Len(t, tr.Predicted, s.Len())
}

// TestEvaluate_RanksModels gives the true model a lower misfit than a
// distorted one.
func TestEvaluate_RanksModels(t *testing.T) {
	s, truth := noiselessTwoLayer(t)
	wrong := earth.TwoLayer(100, 60, 5)

	good, err := fit.Evaluate(s, truth, nil)
	require.NoError(t, err)
	bad, err := fit.Evaluate(s, wrong, nil)
	require.NoError(t, err)

	assert.Less(t, good.Chi2, bad.Chi2)
	assert.Greater(t, bad.RMSPercent, 10.0)
}

// TestEvaluate_UsesStdDev halves the stated uncertainties and expects
// chi-squared to quadruple.
func TestEvaluate_UsesStdDev(t *testing.T) {
	s, _ := noiselessTwoLayer(t)
	wrong := earth.TwoLayer(90, 25, 5)

	loose := s.Clone()
	loose.StdDev = make([]float64, loose.Len())
	tight := s.Clone()
	tight.StdDev = make([]float64, tight.Len())
	for i := range loose.StdDev {
		loose.StdDev[i] = 0.10
		tight.StdDev[i] = 0.05
	}

	lt, err := fit.Evaluate(loose, wrong, nil)
	require.NoError(t, err)
	tt, err := fit.Evaluate(tight, wrong, nil)
	require.NoError(t, err)

	assert.InEpsilon(t, 4*lt.Chi2, tt.Chi2, 1e-9)
}

// TestEvaluate_Errors rejects bad options and bad data.
func TestEvaluate_Errors(t *testing.T) {
	s, truth := noiselessTwoLayer(t)

	_, err := fit.Evaluate(s, truth, &fit.Options{DefaultRelErr: 0, MaxEvals: 10})
	assert.ErrorIs(t, err, fit.ErrOptions)

	_, err = fit.Evaluate(&sounding.Sounding{}, truth, nil)
	assert.ErrorIs(t, err, sounding.ErrArray)

	_, err = fit.Evaluate(s, earth.Model{}, nil)
	assert.ErrorIs(t, err, earth.ErrEmptyModel)
}

// TestAuto_RefinesTwoLayer starts the simplex from a deliberately wrong
// section and expects it to land on the generating parameters.
func TestAuto_RefinesTwoLayer(t *testing.T) {
	s, truth := noiselessTwoLayer(t)
	start := earth.TwoLayer(70, 40, 8)

	startScore, err := fit.Evaluate(s, start, nil)
	require.NoError(t, err)

	tr, err := fit.Auto(s, start, nil)
	require.NoError(t, err)

	assert.Less(t, tr.Chi2, startScore.Chi2/100, "orders of magnitude better than the start")
	assert.Less(t, tr.Chi2N, 0.1)
	require.Equal(t, 2, tr.Model.NumLayers())
	assert.InEpsilon(t, truth[0].Rho, tr.Model[0].Rho, 0.05)
	assert.InEpsilon(t, truth[1].Rho, tr.Model[1].Rho, 0.05)
	assert.InEpsilon(t, truth[0].Thickness, tr.Model[0].Thickness, 0.10)
}

// TestAuto_KeepsLayerCount refines a three-layer start without changing
// its structure.
func TestAuto_KeepsLayerCount(t *testing.T) {
	s, _ := noiselessTwoLayer(t)
	start, err := earth.New([]float64{90, 30, 25}, []float64{4, 10})
	require.NoError(t, err)

	tr, err := fit.Auto(s, start, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Model.NumLayers())
}

// TestAuto_Errors rejects invalid starts and options.
func TestAuto_Errors(t *testing.T) {
	s, truth := noiselessTwoLayer(t)

	_, err := fit.Auto(s, earth.Model{}, nil)
	assert.ErrorIs(t, err, earth.ErrEmptyModel)

	_, err = fit.Auto(s, truth, &fit.Options{DefaultRelErr: 0.05, MaxEvals: 0})
	assert.ErrorIs(t, err, fit.ErrOptions)
}
