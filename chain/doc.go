// Package chain composes ordered stacks of optical filters into a composite
// spectrum and a scalar transmission efficiency.
//
// A [Chain] starts with a head entry (the dye of an emission path or the
// light source of an excitation path) followed by filters applied strictly
// in order. A filter in [Transmit] mode multiplies the running spectrum by
// its own transmission; in [Reflect] mode by the clamped complement
// max(0, 1-T). Efficiency is the composite area divided by the head's area.
package chain
