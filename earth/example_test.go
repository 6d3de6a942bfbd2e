package earth_test

import (
	"fmt"

	"github.com/terraprobe/ves/earth"
)

// ExampleNew builds a classic H-type section by hand and prints it.
func ExampleNew() {
	m, err := earth.New([]float64{100, 20, 300}, []float64{5, 10})
	if err != nil {
		panic(err)
	}
	fmt.Println(m)
	fmt.Println("interfaces at:", m.InterfaceDepths())
	// Output:
	// 100 Ω·m × 5 m | 20 Ω·m × 10 m | 300 Ω·m
	// interfaces at: [5 15]
}

// ExampleTypeCurve seeds a canonical K-type model from a base resistivity.
func ExampleTypeCurve() {
	m, _ := earth.TypeCurve(earth.TypeK, 100)
	fmt.Printf("%s curve: %v\n", earth.TypeK, m.Resistivities())
	// Output:
	// K curve: [100 500 50]
}
