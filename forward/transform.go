package forward

import (
	"math"

	"github.com/terraprobe/ves/earth"
)

// Transform evaluates Koefoed's resistivity transform T(λ) for a layered
// model by the Pekeris recursion, rolling the basement resistivity up
// through the stack. The model is assumed valid (see earth.Model.Validate).
//
// Limits: T(0) is the basement resistivity, T(λ→∞) tends to the
// first-layer resistivity.
func Transform(m earth.Model, lambda float64) float64 {
	t := m[len(m)-1].Rho
	for i := len(m) - 2; i >= 0; i-- {
		rho := m[i].Rho
		th := math.Tanh(lambda * m[i].Thickness)
		t = (t + rho*th) / (1 + t*th/rho)
	}
	return t
}
