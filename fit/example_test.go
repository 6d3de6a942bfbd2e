package fit_test

import (
	"fmt"

	"github.com/terraprobe/ves/earth"
	"github.com/terraprobe/ves/fit"
	"github.com/terraprobe/ves/forward"
	"github.com/terraprobe/ves/sounding"
)

// ExampleAuto refines a rough hand fit against exact two-layer data.
func ExampleAuto() {
	truth := earth.TwoLayer(100, 20, 5)
	sp, _ := sounding.LogSpacings(1, 200, 6)
	data, _ := forward.Synthetic("demo", truth, sounding.Schlumberger, sp, 0, 1, nil)

	rough := earth.TwoLayer(70, 40, 8)
	before, _ := fit.Evaluate(data, rough, nil)
	after, _ := fit.Auto(data, rough, nil)

	fmt.Printf("misfit dropped: %t\n", after.Chi2 < before.Chi2/100)
	fmt.Printf("still two layers: %t\n", after.Model.NumLayers() == 2)
	// Output:
	// misfit dropped: true
	// still two layers: true
}
