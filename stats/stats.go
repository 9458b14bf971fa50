// Package stats computes shape descriptors of a spectrum sampled over
// wavelength: peak, centroid, spread, full width at half maximum and
// cumulative-area wavelengths.
package stats

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/spectral-transmission/spectrum"
)

// Stats holds descriptors of one spectrum. Negative values are treated as
// zero everywhere except Min.
type Stats struct {
	Points         int
	Max            float64
	PeakWavelength float64 // first wavelength holding Max
	Min            float64
	Mean           float64
	Area           float64 // trapezoid integral, value·nm
	Centroid       float64 // value-weighted mean wavelength (nm)
	Spread         float64 // value-weighted standard deviation (nm)
	HalfMaxLow     float64
	HalfMaxHigh    float64
	FWHM           float64
	Median         float64 // wavelength below which half the area lies
}

// Describe interpolates s onto the canonical grid and computes its stats.
func Describe(s *spectrum.Spectrum) Stats {
	in := s.Interpolate()
	return Calculate(in.Wavelengths, in.Values)
}

// Calculate computes the stats of values sampled at ascending wavelengths.
// Extra entries in the longer slice are ignored.
func Calculate(wavelengths, values []float64) Stats {
	n := min(len(wavelengths), len(values))
	if n == 0 {
		return Stats{}
	}
	wl, v := wavelengths[:n], clamped(values[:n])

	s := Stats{
		Points:         n,
		Max:            values[0],
		PeakWavelength: wl[0],
		Min:            values[0],
	}
	sum := 0.0
	for i, x := range values[:n] {
		sum += x
		if x > s.Max {
			s.Max = x
			s.PeakWavelength = wl[i]
		}
		if x < s.Min {
			s.Min = x
		}
	}
	s.Mean = sum / float64(n)
	if n == 1 {
		return s
	}

	s.Area = area(wl, v)
	s.Centroid = centroid(wl, v)
	s.Spread = spread(wl, v, s.Centroid)
	s.HalfMaxLow, s.HalfMaxHigh = halfMax(wl, v)
	s.FWHM = s.HalfMaxHigh - s.HalfMaxLow
	s.Median = rolloff(wl, v, 0.5, s.Area)
	return s
}

// Centroid returns the value-weighted mean wavelength.
//
//	centroid = sum(wl_i * v_i) / sum(v_i)
func Centroid(wavelengths, values []float64) float64 {
	n := min(len(wavelengths), len(values))
	return centroid(wavelengths[:n], clamped(values[:n]))
}

func centroid(wl, v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	if sum == 0 {
		return 0
	}
	weighted := make([]float64, len(v))
	vecmath.MulBlock(weighted, wl, v)
	ws := 0.0
	for _, x := range weighted {
		ws += x
	}
	return ws / sum
}

func spread(wl, v []float64, cent float64) float64 {
	sum, sq := 0.0, 0.0
	for i, x := range v {
		d := wl[i] - cent
		sq += d * d * x
		sum += x
	}
	if sum == 0 {
		return 0
	}
	return math.Sqrt(sq / sum)
}

// FWHM returns the full width at half maximum around the peak, in nm.
// Crossings are located by linear interpolation between samples; a band
// that does not fall to half maximum is measured to the end of the data.
func FWHM(wavelengths, values []float64) float64 {
	n := min(len(wavelengths), len(values))
	if n < 2 {
		return 0
	}
	lo, hi := halfMax(wavelengths[:n], clamped(values[:n]))
	return hi - lo
}

func halfMax(wl, v []float64) (lo, hi float64) {
	n := len(v)
	peak := 0
	for i, x := range v {
		if x > v[peak] {
			peak = i
		}
	}
	if v[peak] == 0 {
		return 0, 0
	}
	threshold := v[peak] / 2

	lo = wl[0]
	for i := peak; i >= 1; i-- {
		if v[i-1] <= threshold && v[i] > threshold {
			lo = crossing(wl[i-1], wl[i], v[i-1], v[i], threshold)
			break
		}
	}
	hi = wl[n-1]
	for i := peak; i < n-1; i++ {
		if v[i+1] <= threshold && v[i] > threshold {
			hi = crossing(wl[i], wl[i+1], v[i], v[i+1], threshold)
			break
		}
	}
	return lo, hi
}

func crossing(wlA, wlB, vA, vB, threshold float64) float64 {
	d := vB - vA
	if d == 0 {
		return (wlA + wlB) / 2
	}
	return wlA + (threshold-vA)/d*(wlB-wlA)
}

// Rolloff returns the wavelength below which the given fraction (0..1) of
// the total area lies.
func Rolloff(wavelengths, values []float64, fraction float64) float64 {
	n := min(len(wavelengths), len(values))
	if n < 2 {
		return 0
	}
	wl, v := wavelengths[:n], clamped(values[:n])
	return rolloff(wl, v, fraction, area(wl, v))
}

func rolloff(wl, v []float64, fraction, total float64) float64 {
	if total == 0 {
		return 0
	}
	threshold := fraction * total
	cum := 0.0
	for i := 1; i < len(v); i++ {
		seg := (wl[i] - wl[i-1]) * (v[i] + v[i-1]) / 2
		if cum+seg >= threshold && seg > 0 {
			// Linear within the segment is close enough at 1 nm spacing.
			return wl[i-1] + (threshold-cum)/seg*(wl[i]-wl[i-1])
		}
		cum += seg
	}
	return wl[len(wl)-1]
}

func area(wl, v []float64) float64 {
	a := 0.0
	for i := 1; i < len(v); i++ {
		a += (wl[i] - wl[i-1]) * (v[i] + v[i-1]) / 2
	}
	return a
}

func clamped(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, x := range values {
		out[i] = max(0, x)
	}
	return out
}
