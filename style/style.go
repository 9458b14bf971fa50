// Package style holds the presentation helpers consumers need to draw
// spectra consistently: a repeating sequence of dash patterns for filter
// traces and a wavelength to hue mapping.
package style

import "slices"

// Dash is a line dash pattern in alternating on/off lengths.
type Dash []float64

var dashPatterns = []Dash{{8, 4}, {16, 4}, {4, 8, 4}, {4, 8, 8}}

// DashCycle hands out dash patterns in a fixed repeating order. The zero
// value starts at the first pattern. It is not safe for concurrent use.
type DashCycle struct {
	next int
}

// NewDashCycle returns a cycle positioned at the first pattern.
func NewDashCycle() *DashCycle { return &DashCycle{} }

// Next returns the next pattern, wrapping after the last. The returned
// slice is a copy.
func (c *DashCycle) Next() Dash {
	d := slices.Clone(dashPatterns[c.next])
	c.next = (c.next + 1) % len(dashPatterns)
	return d
}

// Reset restarts the cycle at the first pattern.
func (c *DashCycle) Reset() { c.next = 0 }

// Len returns the number of distinct patterns.
func (c *DashCycle) Len() int { return len(dashPatterns) }

// WavelengthToHue maps a wavelength in nm to an HSL hue in degrees: red at
// 650 nm and above, violet (288°) at 350 nm and below.
func WavelengthToHue(wl float64) float64 {
	return max(0, min(300, 650-wl)) * 0.96
}
