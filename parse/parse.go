package parse

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/cwbudde/spectral-transmission/spectrum"
)

const floatPattern = `[-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?`

var (
	floatRE        = regexp.MustCompile(floatPattern)
	separatorRE    = regexp.MustCompile(`^[\s,;:]*$`)
	quantumYieldRE = regexp.MustCompile(`(?i)quantum yield:\s*(` + floatPattern + `)`)
	extinctionRE   = regexp.MustCompile(`(?i)extinction coefficient:\s*(` + floatPattern + `)`)
)

// Result is the content of one spectral data file.
type Result struct {
	// Primary holds (wavelength, value) for two-column files and
	// (wavelength, emission) for three-column files.
	Primary spectrum.Sample
	// Excitation holds (wavelength, excitation) for three-column files and
	// is nil otherwise.
	Excitation *spectrum.Sample

	QuantumYield          float64
	HasQuantumYield       bool
	ExtinctionCoefficient float64
	HasExtinction         bool

	// Lines counts accepted data lines; Skipped counts rejected ones.
	Lines   int
	Skipped int
}

// ThreeColumn reports whether the file carried a companion excitation column.
func (r Result) ThreeColumn() bool { return r.Excitation != nil }

// Apply stores the primary sample and photophysical constants on s.
func (r Result) Apply(s *spectrum.Spectrum) {
	s.SetSample(r.Primary)
	if r.HasQuantumYield {
		s.SetQuantumYield(r.QuantumYield)
	}
	if r.HasExtinction {
		s.SetExtinctionCoefficient(r.ExtinctionCoefficient)
	}
}

// ParseString is a convenience wrapper around [Parse].
func ParseString(text string) (Result, error) {
	return Parse(strings.NewReader(text))
}

// Parse reads spectral data from r. Only read errors are returned; content
// that does not conform is skipped.
func Parse(r io.Reader) (Result, error) {
	var (
		res      Result
		wls      []float64
		values   []float64
		aux      []float64
		allThree = true
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()

		if v, ok := matchFloat(quantumYieldRE, line); ok {
			res.QuantumYield, res.HasQuantumYield = v, true
			continue
		}
		if v, ok := matchFloat(extinctionRE, line); ok {
			res.ExtinctionCoefficient, res.HasExtinction = v, true
			continue
		}

		tokens, ok := dataTokens(line)
		if !ok {
			if strings.TrimSpace(line) != "" {
				res.Skipped++
			}
			continue
		}

		switch len(tokens) {
		case 2:
			wls = append(wls, tokens[0])
			aux = append(aux, tokens[1])
			values = append(values, tokens[1])
			allThree = false
		case 3:
			wls = append(wls, tokens[0])
			aux = append(aux, tokens[1])
			values = append(values, tokens[2])
		default:
			res.Skipped++
			continue
		}
		res.Lines++
	}
	if err := sc.Err(); err != nil {
		return Result{}, fmt.Errorf("parse: read: %w", err)
	}

	if res.Lines > 0 && allThree {
		res.Primary = spectrum.Sample{Wavelengths: wls, Intensities: values}
		ex := spectrum.Sample{Wavelengths: append([]float64(nil), wls...), Intensities: aux}
		ex.Rescale()
		res.Excitation = &ex
	} else {
		// Column 2 of every accepted line, three-column lines included.
		res.Primary = spectrum.Sample{Wavelengths: wls, Intensities: aux}
	}
	res.Primary.Rescale()
	return res, nil
}

func matchFloat(re *regexp.Regexp, line string) (float64, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// dataTokens returns the numbers on line if it is a data line: at least one
// number, with only separator characters around and between them.
func dataTokens(line string) ([]float64, bool) {
	idx := floatRE.FindAllStringIndex(line, -1)
	if len(idx) == 0 {
		return nil, false
	}
	out := make([]float64, 0, len(idx))
	prev := 0
	for _, loc := range idx {
		if !separatorRE.MatchString(line[prev:loc[0]]) {
			return nil, false
		}
		v, err := strconv.ParseFloat(line[loc[0]:loc[1]], 64)
		if err != nil {
			return nil, false
		}
		out = append(out, v)
		prev = loc[1]
	}
	if !separatorRE.MatchString(line[prev:]) {
		return nil, false
	}
	return out, true
}
