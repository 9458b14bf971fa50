// Package spectrum provides wavelength-domain spectra resampled onto a fixed
// canonical grid.
//
// Raw measurements ([Sample]) are ingested once and resampled lazily by
// [Spectrum.Interpolate] onto the grid spanning [MinWavelength] to
// [MaxWavelength] nm in [Step] nm increments. All combination operations
// (area, pointwise products, copies) work on that grid:
//
//   - [Spectrum.Area]:           trapezoidal integral, negative lobes clamped to 0
//   - [Spectrum.PeakWavelength]: grid wavelength of the maximum
//   - [Spectrum.MultiplyBy]:     in-place product with a [Factor]
//   - [Spectrum.Copy]:           detached snapshot of the current grid values
//   - [Spectrum.Points]:         cached (wavelength, value) pairs
//
// A spectrum without raw data behaves as a flat zero spectrum.
package spectrum
