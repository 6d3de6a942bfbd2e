package invert

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/terraprobe/ves/mesh"
	"github.com/terraprobe/ves/sounding"
)

// Defaults for DOI when the caller passes zero values.
const (
	DefaultDOIGamma     = 10.0
	DefaultDOIThreshold = 0.2
)

// DOI estimates the depth of investigation by the Oldenburg–Li recipe:
// run the smooth inversion twice with reference resistivities pulled a
// factor gamma below and above the baseline, then compare the two
// recovered profiles cell by cell,
//
//	Index_j = (ln ρ₁ⱼ − ln ρ₂ⱼ) / (ln ref₁ − ln ref₂).
//
// Where the data constrain a cell both runs agree and the index is near
// 0; where they do not, each run settles on its own reference and the
// index climbs toward 1. Depth is the center of the first cell whose
// index exceeds threshold, or the mesh depth when none does. Zero
// gamma and threshold select DefaultDOIGamma and DefaultDOIThreshold.
//
// The two inversions run concurrently on the same mesh.
func DOI(ctx context.Context, s *sounding.Sounding, gamma, threshold float64, opts *Options) (*DOIResult, error) {
	o := opts.withDefaults()
	if err := o.validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if gamma == 0 {
		gamma = DefaultDOIGamma
	}
	if threshold == 0 {
		threshold = DefaultDOIThreshold
	}
	if gamma <= 1 || threshold <= 0 || threshold >= 1 {
		return nil, ErrDOIRange
	}

	msh, err := mesh.ForSounding(s, o.Cells)
	if err != nil {
		return nil, err
	}
	base := o.Reg.RefRho
	if base == 0 {
		base = geometricMean(s.Rhoa)
	}
	oLow, oHigh := o, o
	oLow.Reg.RefRho = base / gamma
	oHigh.Reg.RefRho = base * gamma

	var low, high *Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := smoothOnMesh(gctx, s, msh, oLow)
		low = r
		return err
	})
	g.Go(func() error {
		r, err := smoothOnMesh(gctx, s, msh, oHigh)
		high = r
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	den := math.Log(oLow.Reg.RefRho) - math.Log(oHigh.Reg.RefRho)
	idx := make([]float64, msh.NumCells())
	for j := range idx {
		idx[j] = (math.Log(low.Model[j].Rho) - math.Log(high.Model[j].Rho)) / den
	}

	depths := msh.Centers()
	depth := msh.TotalDepth()
	for j, v := range idx {
		if v > threshold {
			depth = depths[j]
			break
		}
	}
	return &DOIResult{
		Low:    low,
		High:   high,
		Mesh:   msh,
		Depths: depths,
		Index:  idx,
		Depth:  depth,
	}, nil
}
