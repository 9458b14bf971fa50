package spectrum

type factorKind int

const (
	factorScalar factorKind = iota
	factorValues
	factorSpectrum
)

// Factor is the right-hand operand of [Spectrum.MultiplyBy]: a scalar, a
// sequence of grid values, or another spectrum.
type Factor struct {
	kind     factorKind
	scalar   float64
	values   []float64
	spectrum *Spectrum
}

// Scalar returns a factor multiplying every grid value by v.
func Scalar(v float64) Factor {
	return Factor{kind: factorScalar, scalar: v}
}

// Values returns a factor multiplying grid value i by v[i]. v must have
// [GridSize] elements.
func Values(v []float64) Factor {
	return Factor{kind: factorValues, values: v}
}

// Of returns a factor multiplying by the interpolated values of s. A nil
// spectrum acts as a flat zero spectrum.
func Of(s *Spectrum) Factor {
	return Factor{kind: factorSpectrum, spectrum: s}
}
