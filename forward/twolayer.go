package forward

import (
	"math"

	"github.com/terraprobe/ves/sounding"
)

// twoLayerMaxTerms caps the image series; with any physical contrast the
// terms vanish long before this.
const twoLayerMaxTerms = 5_000_000

// TwoLayerApparent evaluates the classical image-series solution for a
// two-layer section: a slab of resistivity rho1 and thickness t over a
// basement of resistivity rho2. With the reflection coefficient
// k = (ρ₂−ρ₁)/(ρ₂+ρ₁) the sums are
//
//	Schlumberger: ρa = ρ₁·(1 + 2·Σ kⁿ·s³/(s²+4n²t²)^{3/2})
//	Wenner:       ρa = ρ₁·(1 + 4·Σ kⁿ·(a/√(a²+4n²t²) − a/√(4a²+4n²t²)))
//	Pole-pole:    ρa = ρ₁·(1 + 2·Σ kⁿ·r/√(r²+4n²t²))
//
// This is an independent closed form of the same physics the Hankel
// quadrature computes; the tests hold the two against each other.
// Unknown arrays return NaN.
func TwoLayerApparent(rho1, rho2, t float64, arr sounding.Array, spacing float64) float64 {
	k := (rho2 - rho1) / (rho2 + rho1)
	if k == 0 {
		return rho1
	}
	var sum float64
	kn := 1.0
	for n := 1; n <= twoLayerMaxTerms; n++ {
		kn *= k
		d2 := 4 * float64(n) * float64(n) * t * t
		var term float64
		switch arr {
		case sounding.Schlumberger:
			h := spacing*spacing + d2
			term = 2 * kn * spacing * spacing * spacing / (h * math.Sqrt(h))
		case sounding.Wenner:
			term = 4 * kn * (spacing/math.Sqrt(spacing*spacing+d2) -
				spacing/math.Sqrt(4*spacing*spacing+d2))
		case sounding.PolePole:
			term = 2 * kn * spacing / math.Sqrt(spacing*spacing+d2)
		default:
			return math.NaN()
		}
		sum += term
		if n >= 8 && math.Abs(term) <= 1e-15*(1+math.Abs(sum)) {
			break
		}
	}
	return rho1 * (1 + sum)
}
