package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-featureviz/stats/time"
)

func ExampleSummarize() {
	s := timestats.Summarize([]float64{1, -1, 1, -1}, 22050)
	fmt.Printf("rms=%.1f zc=%d\n", s.RMS, s.ZeroCrossings)

	// Output:
	// rms=1.0 zc=3
}
