package forward

import "math"

// Segment layout of the oscillatory integrals. The transform tail decays
// on the u-scale spacing/(2·depth), which can be far narrower than the
// Bessel period, so integration starts with segments sized to the
// deepest interface and grows them geometrically up to π/4 — an eighth
// of the J₀/J₁ period, which 8-point Gauss–Legendre resolves with large
// margin. Convergence is only declared at full segment width, after six
// consecutive quiet segments: they span one and a half half-periods,
// which rules out stopping inside the lull around a Bessel zero.
const (
	segmentWidth  = math.Pi / 4
	segmentGrowth = 1.15
	quietRun      = 6
	minSegments   = 16
)

// 8-point Gauss–Legendre nodes and weights on [-1, 1].
var gaussNodes = [8]float64{
	-0.9602898564975363, -0.7966664774136267,
	-0.5255324099163290, -0.1834346424956498,
	+0.1834346424956498, +0.5255324099163290,
	+0.7966664774136267, +0.9602898564975363,
}

var gaussWeights = [8]float64{
	0.1012285362903763, 0.2223810344533745,
	0.3137066458778873, 0.3626837833783620,
	0.3626837833783620, 0.3137066458778873,
	0.2223810344533745, 0.1012285362903763,
}

// gauss8 integrates f over [a, b] with the fixed 8-point rule.
func gauss8(f func(float64) float64, a, b float64) float64 {
	half := 0.5 * (b - a)
	mid := 0.5 * (a + b)
	var sum float64
	for i := range gaussNodes {
		sum += gaussWeights[i] * f(mid+half*gaussNodes[i])
	}
	return half * sum
}

// integrateTail accumulates ∫₀^∞ f(u) du over segments that start at
// width h0 and grow geometrically to segmentWidth. scale sets the
// magnitude the relative tolerance is measured against (the first-layer
// resistivity for apparent-resistivity tails). Returns ErrNoConvergence
// when MaxSegments is exhausted before quietRun consecutive full-width
// segments drop below tolerance.
func integrateTail(f func(float64) float64, scale, h0 float64, o Options) (float64, error) {
	h := math.Min(h0, segmentWidth)
	var sum, u float64
	quiet := 0
	for k := 0; k < o.MaxSegments; k++ {
		seg := gauss8(f, u, u+h)
		sum += seg
		u += h
		if h >= segmentWidth && k+1 >= minSegments {
			if math.Abs(seg) <= o.RelTol*(scale+math.Abs(sum)) {
				quiet++
				if quiet >= quietRun {
					return sum, nil
				}
			} else {
				quiet = 0
			}
		}
		h = math.Min(segmentWidth, h*segmentGrowth)
	}
	return sum, ErrNoConvergence
}
