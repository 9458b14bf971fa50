package stats_test

import (
	"fmt"

	"github.com/cwbudde/spectral-transmission/spectrum"
	"github.com/cwbudde/spectral-transmission/stats"
)

func ExampleDescribe() {
	s := spectrum.FromSample("dye", spectrum.NewSample(
		[]float64{400, 500, 600},
		[]float64{0, 1, 0},
	))
	d := stats.Describe(s)
	fmt.Printf("peak=%.0f centroid=%.0f fwhm=%.0f area=%.0f\n",
		d.PeakWavelength, d.Centroid, d.FWHM, d.Area)

	// Output:
	// peak=500 centroid=500 fwhm=100 area=100
}
