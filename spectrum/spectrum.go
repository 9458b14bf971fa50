package spectrum

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// Canonical grid parameters in nanometres.
const (
	MinWavelength = 300.0
	MaxWavelength = 800.0
	Step          = 1.0
	GridSize      = 501 // 1 + (MaxWavelength-MinWavelength)/Step
)

// ErrLengthMismatch is returned when a value factor does not cover the grid.
var ErrLengthMismatch = errors.New("spectrum: factor length mismatch")

// Point is a single (wavelength, value) pair on the canonical grid.
type Point struct {
	Wavelength float64
	Value      float64
}

// Interpolation is a spectrum resampled onto a wavelength grid.
type Interpolation struct {
	Wavelengths []float64
	Values      []float64
}

// canonical reports whether the grid is exactly the canonical grid.
func (in *Interpolation) canonical() bool {
	n := len(in.Wavelengths)
	return n == GridSize &&
		len(in.Values) == n &&
		in.Wavelengths[0] == MinWavelength &&
		in.Wavelengths[n-1] == MaxWavelength
}

func (in *Interpolation) clone() *Interpolation {
	return &Interpolation{
		Wavelengths: slices.Clone(in.Wavelengths),
		Values:      slices.Clone(in.Values),
	}
}

// Spectrum is a named intensity-versus-wavelength function backed by raw
// samples and a canonical-grid interpolation cache.
//
// A Spectrum is safe to populate from a fetch goroutine while other
// goroutines read it; combination operations are expected to run on one
// goroutine at a time.
type Spectrum struct {
	name string

	mu     sync.Mutex
	raw    *Sample
	interp *Interpolation
	points []Point

	quantumYield          float64
	hasQuantumYield       bool
	extinctionCoefficient float64
	hasExtinction         bool
}

// New returns an empty spectrum. Until a sample is set it interpolates to a
// flat zero spectrum.
func New(name string) *Spectrum {
	return &Spectrum{name: name}
}

// FromSample returns a spectrum populated with a copy of sample.
func FromSample(name string, sample Sample) *Spectrum {
	s := New(name)
	s.SetSample(sample.Clone())
	return s
}

// Name returns the spectrum name.
func (s *Spectrum) Name() string { return s.name }

// String implements fmt.Stringer.
func (s *Spectrum) String() string {
	return fmt.Sprintf("spectrum(%s)", s.name)
}

// SetSample replaces the raw data and invalidates all cached derivations.
// The spectrum takes ownership of sample.
func (s *Spectrum) SetSample(sample Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = &sample
	s.interp = nil
	s.points = nil
}

// Sample returns a copy of the raw data, or false if none has been set.
func (s *Spectrum) Sample() (Sample, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raw == nil {
		return Sample{}, false
	}
	return s.raw.Clone(), true
}

// HasData reports whether raw data has been set.
func (s *Spectrum) HasData() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw != nil
}

// QuantumYield returns the fluorescence quantum yield, if known.
func (s *Spectrum) QuantumYield() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quantumYield, s.hasQuantumYield
}

// SetQuantumYield records the fluorescence quantum yield.
func (s *Spectrum) SetQuantumYield(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quantumYield, s.hasQuantumYield = v, true
}

// ExtinctionCoefficient returns the molar extinction coefficient, if known.
func (s *Spectrum) ExtinctionCoefficient() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.extinctionCoefficient, s.hasExtinction
}

// SetExtinctionCoefficient records the molar extinction coefficient.
func (s *Spectrum) SetExtinctionCoefficient(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extinctionCoefficient, s.hasExtinction = v, true
}

// Interpolate returns the spectrum on the canonical grid, computing it from
// the raw sample if the cache is missing or not canonical. Repeated calls
// return the same backing slices; callers must not modify them.
func (s *Spectrum) Interpolate() Interpolation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.interpolateLocked()
}

// Values returns a copy of the interpolated values.
func (s *Spectrum) Values() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.interpolateLocked().Values)
}

func (s *Spectrum) interpolateLocked() *Interpolation {
	if s.interp != nil && s.interp.canonical() {
		return s.interp
	}
	s.points = nil

	var w, v []float64
	if s.raw != nil {
		if n := s.raw.Len(); n >= 2 {
			w, v = s.raw.Wavelengths[:n], s.raw.Intensities[:n]
		}
	}

	out := &Interpolation{
		Wavelengths: make([]float64, GridSize),
		Values:      make([]float64, GridSize),
	}
	i := 1 // cursor into raw data
	for k := range out.Wavelengths {
		wl := MinWavelength + float64(k)*Step
		out.Wavelengths[k] = wl
		if w == nil || wl < w[0] || wl > w[len(w)-1] {
			continue
		}
		for wl > w[i] {
			i++
		}
		dw := w[i] - w[i-1]
		if dw <= 0 {
			out.Values[k] = v[i]
			continue
		}
		t := (wl - w[i-1]) / dw
		out.Values[k] = (1-t)*v[i-1] + t*v[i]
	}
	s.interp = out
	return out
}

// Area returns the trapezoidal integral over the canonical grid. Negative
// values are clamped to zero before averaging adjacent samples.
func (s *Spectrum) Area() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	in := s.interpolateLocked()
	w, v := in.Wavelengths, in.Values
	area := 0.0
	for i := 1; i < len(w); i++ {
		area += 0.5 * (max(0, v[i]) + max(0, v[i-1])) * (w[i] - w[i-1])
	}
	return area
}

// PeakWavelength returns the grid wavelength of the first maximum of the
// interpolated values. It reports false if the spectrum has never been
// interpolated.
func (s *Spectrum) PeakWavelength() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.interp == nil || len(s.interp.Values) == 0 {
		return 0, false
	}
	peak := 0
	for i, v := range s.interp.Values {
		if v > s.interp.Values[peak] {
			peak = i
		}
	}
	return s.interp.Wavelengths[peak], true
}

// MultiplyBy multiplies the interpolated values in place by f. The spectrum
// is interpolated first if necessary.
func (s *Spectrum) MultiplyBy(f Factor) error {
	var m []float64
	switch f.kind {
	case factorSpectrum:
		if f.spectrum != nil {
			m = f.spectrum.Values()
		} else {
			m = make([]float64, GridSize)
		}
	case factorValues:
		if len(f.values) != GridSize {
			return fmt.Errorf("%w: got %d values, want %d", ErrLengthMismatch, len(f.values), GridSize)
		}
		m = f.values
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	vals := s.interpolateLocked().Values
	s.points = nil
	if m == nil {
		vecmath.ScaleBlock(vals, vals, f.scalar)
		return nil
	}
	vecmath.MulBlockInPlace(vals, m)
	return nil
}

// Copy returns a detached snapshot named name. The copy has no raw data and
// holds a deep copy of the current interpolated values, so later changes to
// s do not affect it.
func (s *Spectrum) Copy(name string) *Spectrum {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Spectrum{
		name:   name,
		interp: s.interpolateLocked().clone(),
	}
}

// Points returns the interpolated spectrum as (wavelength, value) pairs. The
// result is cached until the values change; callers must not modify it.
func (s *Spectrum) Points() []Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	in := s.interpolateLocked()
	if s.points != nil {
		return s.points
	}
	pts := make([]Point, len(in.Wavelengths))
	for i, wl := range in.Wavelengths {
		pts[i] = Point{Wavelength: wl, Value: in.Values[i]}
	}
	s.points = pts
	return pts
}
