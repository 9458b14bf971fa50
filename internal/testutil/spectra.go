package testutil

import (
	"math"
	"strconv"
	"strings"
)

// Grid returns wavelengths from start to end inclusive in step increments.
func Grid(start, end, step float64) []float64 {
	n := int(math.Round((end-start)/step)) + 1
	if n < 1 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// Gaussian evaluates a Gaussian band with the given centre, full width at
// half maximum and peak height at each wavelength.
func Gaussian(wavelengths []float64, center, fwhm, peak float64) []float64 {
	sigma := fwhm / (2 * math.Sqrt(2*math.Ln2))
	out := make([]float64, len(wavelengths))
	for i, wl := range wavelengths {
		d := (wl - center) / sigma
		out[i] = peak * math.Exp(-0.5*d*d)
	}
	return out
}

// Edge models an ideal longpass (rising=true) or shortpass filter with the
// given cut-on wavelength and in-band transmission.
func Edge(wavelengths []float64, cutOn, transmission float64, rising bool) []float64 {
	out := make([]float64, len(wavelengths))
	for i, wl := range wavelengths {
		if (wl >= cutOn) == rising {
			out[i] = transmission
		}
	}
	return out
}

// Band models an ideal bandpass filter passing [lo, hi].
func Band(wavelengths []float64, lo, hi, transmission float64) []float64 {
	out := make([]float64, len(wavelengths))
	for i, wl := range wavelengths {
		if wl >= lo && wl <= hi {
			out[i] = transmission
		}
	}
	return out
}

// Flat returns a constant-valued series of length n.
func Flat(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// CSV renders parallel columns as comma-separated spectral text with an
// optional header line.
func CSV(header string, columns ...[]float64) string {
	var b strings.Builder
	if header != "" {
		b.WriteString(header)
		b.WriteByte('\n')
	}
	if len(columns) == 0 {
		return b.String()
	}
	for i := range columns[0] {
		for j, col := range columns {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatFloat(col[i], 'g', -1, 64))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
