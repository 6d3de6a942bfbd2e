package forward_test

import (
	"fmt"

	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/forward"
	"github.com/terraprobe/ves/sounding"
)

// ExampleApparent walks a Schlumberger sounding across an H-type section
// and reports the anatomy of the curve rather than raw digits.
func ExampleApparent() {
	m, _ := earth.TypeCurve(earth.TypeH, 100) // 100 / 20 / 300 Ω·m

	shallow, _ := forward.Apparent(m, sounding.Schlumberger, 1, nil)
	mid, _ := forward.Apparent(m, sounding.Schlumberger, 15, nil)
	deep, _ := forward.Apparent(m, sounding.Schlumberger, 2000, nil)

	fmt.Printf("dips over the conductor: %t\n", mid < shallow)
	fmt.Printf("recovers toward basement: %t\n", deep > shallow)
	// Output:
	// dips over the conductor: true
	// recovers toward basement: true
}

// ExampleTwoLayerApparent shows the exact no-contrast case.
func ExampleTwoLayerApparent() {
	ra := forward.TwoLayerApparent(50, 50, 5, sounding.Wenner, 10)
	fmt.Printf("%.1f Ω·m\n", ra)
	// Output:
	// 50.0 Ω·m
}
