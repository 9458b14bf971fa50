package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/spectral-transmission/internal/testutil"
	"github.com/cwbudde/spectral-transmission/spectrum"
)

func TestParseTwoColumn(t *testing.T) {
	t.Parallel()

	text := "Wavelength (nm),Transmission (%)\n" +
		"400,0\n" +
		"500;100\n" +
		"600\t0\n"
	res, err := ParseString(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.ThreeColumn() {
		t.Fatal("two-column file reported as three-column")
	}
	if res.Lines != 3 {
		t.Fatalf("Lines = %d, want 3", res.Lines)
	}
	testutil.RequireSliceNearlyEqual(t, res.Primary.Wavelengths, []float64{400, 500, 600}, 0)
	testutil.RequireSliceNearlyEqual(t, res.Primary.Intensities, []float64{0, 1, 0}, 1e-15)
}

func TestParseThreeColumn(t *testing.T) {
	t.Parallel()

	text := "wl ex em\n" +
		"450, 80, 5\n" +
		"500, 100, 50\n" +
		"550, 10, 100\n"
	res, err := ParseString(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !res.ThreeColumn() {
		t.Fatal("expected three-column result")
	}
	testutil.RequireSliceNearlyEqual(t, res.Primary.Intensities, []float64{0.05, 0.5, 1}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, res.Excitation.Intensities, []float64{0.8, 1, 0.1}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, res.Excitation.Wavelengths, res.Primary.Wavelengths, 0)

	res.Excitation.Wavelengths[0] = 0
	if res.Primary.Wavelengths[0] != 450 {
		t.Fatal("companion sample shares wavelength storage with primary")
	}
}

func TestParseMixedColumnsFallsBackToTwo(t *testing.T) {
	t.Parallel()

	text := "400 0.1 0.2\n500 0.3\n600 0.5 0.6\n"
	res, err := ParseString(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.ThreeColumn() {
		t.Fatal("mixed file must be treated as two-column")
	}
	testutil.RequireSliceNearlyEqual(t, res.Primary.Intensities, []float64{0.1, 0.3, 0.5}, 0)
}

func TestParseRescaleIndependently(t *testing.T) {
	t.Parallel()

	// Excitation column in percent, emission column already fractional.
	text := "400,50,0.2\n500,100,0.4\n"
	res, err := ParseString(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, res.Primary.Intensities, []float64{0.2, 0.4}, 0)
	testutil.RequireSliceNearlyEqual(t, res.Excitation.Intensities, []float64{0.5, 1}, 1e-15)
}

func TestParseMetadata(t *testing.T) {
	t.Parallel()

	text := "# Alexa Fluor 488\n" +
		"quantum yield: 0.92\n" +
		"EXTINCTION COEFFICIENT:   7.3e4\n" +
		"500 1\n510 0.5\n"
	res, err := ParseString(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !res.HasQuantumYield || res.QuantumYield != 0.92 {
		t.Fatalf("QuantumYield = %v, %v", res.QuantumYield, res.HasQuantumYield)
	}
	if !res.HasExtinction || res.ExtinctionCoefficient != 73000 {
		t.Fatalf("ExtinctionCoefficient = %v, %v", res.ExtinctionCoefficient, res.HasExtinction)
	}
	if res.Lines != 2 {
		t.Fatalf("Lines = %d, want 2", res.Lines)
	}

	s := spectrum.New("af488")
	res.Apply(s)
	if qy, ok := s.QuantumYield(); !ok || qy != 0.92 {
		t.Fatalf("applied QuantumYield = %v, %v", qy, ok)
	}
	if !s.HasData() {
		t.Fatal("Apply did not set the sample")
	}
}

func TestParseSkipsMalformedLines(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		line string
	}{
		{name: "units glued to number", line: "405nm 0.5"},
		{name: "single number", line: "405"},
		{name: "four numbers", line: "405 1 2 3"},
		{name: "header", line: "Wavelength, Value"},
		{name: "trailing text", line: "405 0.5 peak"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			res, err := ParseString("400 0.1\n" + tc.line + "\n410 0.2\n")
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if res.Lines != 2 {
				t.Fatalf("Lines = %d, want 2", res.Lines)
			}
			if res.Skipped != 1 {
				t.Fatalf("Skipped = %d, want 1", res.Skipped)
			}
			testutil.RequireSliceNearlyEqual(t, res.Primary.Wavelengths, []float64{400, 410}, 0)
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	t.Parallel()

	res, err := ParseString("\n\n# nothing here\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.ThreeColumn() {
		t.Fatal("empty file must not produce a companion spectrum")
	}
	if res.Primary.Len() != 0 {
		t.Fatalf("Primary.Len = %d, want 0", res.Primary.Len())
	}
}

func TestParseCRLFAndSeparators(t *testing.T) {
	t.Parallel()

	res, err := ParseString("400 : 10\r\n500 ;; 20\r\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, res.Primary.Intensities, []float64{0.1, 0.2}, 1e-15)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestParseReadError(t *testing.T) {
	t.Parallel()

	if _, err := Parse(failingReader{}); err == nil {
		t.Fatal("expected read error")
	}
	if _, err := Parse(strings.NewReader("")); err != nil {
		t.Fatalf("empty reader: %v", err)
	}
}
