package spectrum

// percentThreshold is the peak intensity above which a sample is assumed to
// be expressed in percent.
const percentThreshold = 10.0

// Sample holds raw (wavelength, intensity) pairs as ingested from a data
// source. Wavelengths are expected in ascending order.
type Sample struct {
	Wavelengths []float64
	Intensities []float64
}

// NewSample returns a Sample over copies of wavelengths and intensities.
// The shorter slice determines the length.
func NewSample(wavelengths, intensities []float64) Sample {
	n := min(len(wavelengths), len(intensities))
	s := Sample{
		Wavelengths: make([]float64, n),
		Intensities: make([]float64, n),
	}
	copy(s.Wavelengths, wavelengths)
	copy(s.Intensities, intensities)
	return s
}

// Len returns the number of sample points.
func (s Sample) Len() int {
	return min(len(s.Wavelengths), len(s.Intensities))
}

// Clone returns a deep copy of s.
func (s Sample) Clone() Sample {
	return NewSample(s.Wavelengths, s.Intensities)
}

// Rescale converts percentage data to fractions in place: when the peak
// intensity exceeds 10, every intensity is divided by 100. It reports
// whether a rescale happened.
func (s Sample) Rescale() bool {
	if len(s.Intensities) == 0 {
		return false
	}
	peak := s.Intensities[0]
	for _, v := range s.Intensities[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak <= percentThreshold {
		return false
	}
	for i := range s.Intensities {
		s.Intensities[i] /= 100
	}
	return true
}
