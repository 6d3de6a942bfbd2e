package invert

import (
	"math"

	"github.com/terraprobe/ves/sounding"
)

// dataFit weights log-space residuals by inverse data uncertainty.
type dataFit struct {
	dObs []float64 // observed ln ρa
	wd   []float64 // 1/ε per datum
}

func newDataFit(s *sounding.Sounding, defaultRelErr float64) *dataFit {
	d := &dataFit{
		dObs: s.LogRhoa(),
		wd:   make([]float64, s.Len()),
	}
	for i := range d.wd {
		eps := defaultRelErr
		if s.HasStdDev() {
			eps = s.StdDev[i]
		}
		d.wd[i] = 1 / eps
	}
	return d
}

func (d *dataFit) n() int { return len(d.dObs) }

// residuals fills dst with W_d(pred − d_obs).
func (d *dataFit) residuals(pred, dst []float64) {
	for i := range pred {
		dst[i] = d.wd[i] * (pred[i] - d.dObs[i])
	}
}

// phiD is the squared norm of the weighted residuals.
func (d *dataFit) phiD(pred []float64) float64 {
	var sum float64
	for i := range pred {
		r := d.wd[i] * (pred[i] - d.dObs[i])
		sum += r * r
	}
	return sum
}

// rmsPercent is the unweighted relative RMS between linear-space curves.
func rmsPercent(pred, obs []float64) float64 {
	var sum float64
	for i := range pred {
		rel := (pred[i] - obs[i]) / obs[i]
		sum += rel * rel
	}
	return 100 * math.Sqrt(sum/float64(len(pred)))
}
