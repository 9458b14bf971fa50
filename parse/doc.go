// Package parse reads line-oriented spectral data files.
//
// Each line is a metadata line ("Quantum Yield: 0.92",
// "Extinction Coefficient: 73000", case-insensitive), a header or comment
// line, or a data line of two or three numbers separated by whitespace,
// commas, semicolons or colons. Files whose data lines all carry three
// columns encode an excitation spectrum (column 2) and an emission spectrum
// (column 3) jointly; any two-column line makes the whole file two-column.
//
// Malformed lines are skipped silently. Intensities peaking above 10 are
// taken to be percentages and divided by 100.
package parse
