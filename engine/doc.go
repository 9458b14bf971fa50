// Package engine computes excitation efficiency, emission efficiency and
// relative brightness for a dye and filter configuration, and ranks
// candidate dyes by those figures.
//
// A [Session] owns the active excitation and emission chains and the
// [registry.Registry] they resolve spectra from. Session methods are safe
// for concurrent use; a dye ranking holds the session for its whole sweep.
package engine
