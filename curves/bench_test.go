package curves_test

import (
	"math"
	"testing"

	"github.com/terraprobe/ves/curves"
)

// wave builds an n-sample curve of two overlapping oscillations, a
// stand-in for a long field curve.
func wave(n int, phase float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		x := float64(i) / float64(n)
		out[i] = math.Sin(7*x+phase) + 0.4*math.Cos(19*x)
	}
	return out
}

// BenchmarkWarp measures the distance-only alignment of two 128-sample
// curves, the rolling two-row code path.
func BenchmarkWarp(b *testing.B) {
	x := wave(128, 0)
	y := wave(128, 0.6)
	opts := curves.DefaultOptions()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := curves.Warp(x, y, opts); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkWarp_Path measures the full-matrix variant with backtracking.
func BenchmarkWarp_Path(b *testing.B) {
	x := wave(128, 0)
	y := wave(128, 0.6)
	opts := curves.DefaultOptions()
	opts.ReturnPath = true

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := curves.Warp(x, y, opts); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkWarp_Banded measures the constrained alignment, the usual
// production setting for similar-length curves.
func BenchmarkWarp_Banded(b *testing.B) {
	x := wave(128, 0)
	y := wave(128, 0.6)
	opts := curves.DefaultOptions()
	opts.Band = 12

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := curves.Warp(x, y, opts); err != nil {
			b.Fatal(err)
		}
	}
}
