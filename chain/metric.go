package chain

import (
	"fmt"
	"math"
)

// Metric is an optional scalar result. Computations that are undefined
// (empty chains, missing photophysical constants, division by a zero area)
// produce an invalid Metric rather than zero.
type Metric struct {
	Value float64
	Valid bool
}

// Some returns a valid Metric holding v, or an invalid one if v is NaN or
// infinite.
func Some(v float64) Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Metric{}
	}
	return Metric{Value: v, Valid: true}
}

// Scale multiplies a valid metric by f. The result is invalid if m is
// invalid or the product is not finite.
func (m Metric) Scale(f float64) Metric {
	if !m.Valid {
		return m
	}
	return Some(m.Value * f)
}

// Less orders metrics for descending rankings: valid values before invalid
// ones, larger values first. Two invalid metrics compare equal.
func (m Metric) Less(o Metric) bool {
	switch {
	case !m.Valid:
		return false
	case !o.Valid:
		return true
	default:
		return m.Value > o.Value
	}
}

// String formats a valid metric with %g and an invalid one as "n/a".
func (m Metric) String() string {
	if !m.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%g", m.Value)
}
