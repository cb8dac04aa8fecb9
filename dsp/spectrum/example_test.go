package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-featureviz/dsp/spectrum"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExampleSTFT_Frames() {
	s, _ := spectrum.NewSTFT(2048, 512)
	fmt.Println(s.Bins(), s.Frames(22050))
	// Output:
	// 1025 44
}
