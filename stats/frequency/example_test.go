package frequency_test

import (
	"fmt"

	frequencystats "github.com/cwbudde/algo-modscope/stats/frequency"
)

func ExampleCalculate() {
	mag := []float64{0, 1, 2, 1, 0}
	s := frequencystats.Calculate(mag, 1000)
	fmt.Printf("peak=%.0f centroid=%.0f\n", s.PeakFreq, s.Centroid)

	// Output:
	// peak=2000 centroid=2000
}
