package chain

import (
	"testing"

	"github.com/cwbudde/spectral-transmission/internal/testutil"
	"github.com/cwbudde/spectral-transmission/spectrum"
)

type mapResolver map[string]*spectrum.Spectrum

func (m mapResolver) Get(name string) *spectrum.Spectrum {
	if s, ok := m[name]; ok {
		return s
	}
	s := spectrum.New(name)
	m[name] = s
	return s
}

func sampled(name string, vals []float64) *spectrum.Spectrum {
	wl := testutil.Grid(spectrum.MinWavelength, spectrum.MaxWavelength, spectrum.Step)
	return spectrum.FromSample(name, spectrum.NewSample(wl, vals))
}

func fixtures() mapResolver {
	wl := testutil.Grid(spectrum.MinWavelength, spectrum.MaxWavelength, spectrum.Step)
	return mapResolver{
		"dye":      sampled("dye", testutil.Gaussian(wl, 520, 40, 1)),
		"longpass": sampled("longpass", testutil.Edge(wl, 510, 0.9, true)),
		"dichroic": sampled("dichroic", testutil.Edge(wl, 500, 1, true)),
		"flat":     sampled("flat", testutil.Flat(1, spectrum.GridSize)),
		"over":     sampled("over", testutil.Flat(1.5, spectrum.GridSize)),
		"half":     sampled("half", testutil.Flat(0.5, spectrum.GridSize)),
	}
}

func TestChainEntries(t *testing.T) {
	t.Parallel()

	c := New("dye")
	c.AddFilter("a", Transmit)
	c.AddFilter("b", Reflect)
	c.AddFilter("c", Transmit)

	if c.Len() != 4 {
		t.Fatalf("Len = %d, want 4", c.Len())
	}
	if !c.RemoveFilter("b") {
		t.Fatal("RemoveFilter(b) = false")
	}
	if c.RemoveFilter("missing") {
		t.Fatal("RemoveFilter(missing) = true")
	}
	if !c.SetMode("c", Reflect) {
		t.Fatal("SetMode(c) = false")
	}
	if m, ok := c.ToggleMode("a"); !ok || m != Reflect {
		t.Fatalf("ToggleMode(a) = %v, %v", m, ok)
	}

	got := c.LiveEntries()
	want := []Entry{{"dye", Transmit}, {"a", Reflect}, {"c", Reflect}}
	if len(got) != len(want) {
		t.Fatalf("LiveEntries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("LiveEntries[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	c.SetHead("")
	if names := c.Names(); len(names) != 2 || names[0] != "a" {
		t.Fatalf("Names without head = %v", names)
	}

	c.Reset()
	if c.Len() != 0 || c.Head() != "" {
		t.Fatalf("Reset left %d entries", c.Len())
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Mode{
		"t": Transmit, "T": Transmit, "": Transmit, "x": Transmit,
		"r": Reflect, "R": Reflect, " reflect": Reflect,
	} {
		if got := ParseMode(in); got != want {
			t.Fatalf("ParseMode(%q) = %v, want %v", in, got, want)
		}
	}
	if Reflect.String() != "r" || Transmit.String() != "t" {
		t.Fatal("unexpected Mode.String")
	}
}

func TestComputeSingleEntryIsUnity(t *testing.T) {
	t.Parallel()

	r := mapResolver{}
	s := spectrum.NewSample([]float64{400, 500, 600}, []float64{0, 100, 0})
	s.Rescale()
	r["dye"] = spectrum.FromSample("dye", s)

	c := New("dye")
	c.Compute(r)

	tr := c.Transmission()
	if !tr.Valid || tr.Value != 1.0 {
		t.Fatalf("Transmission = %+v, want 1", tr)
	}
	if c.Composite() == nil {
		t.Fatal("Composite is nil")
	}
	testutil.RequireNearlyEqual(t, "composite area", c.Composite().Area(), 100, 1e-9)
}

func TestComputeTransmitAndReflect(t *testing.T) {
	t.Parallel()

	r := fixtures()

	c := New("dye")
	c.AddFilter("half", Transmit)
	c.Compute(r)
	testutil.RequireNearlyEqual(t, "transmit half", c.Transmission().Value, 0.5, 1e-12)

	c = New("dye")
	c.AddFilter("half", Reflect)
	c.Compute(r)
	testutil.RequireNearlyEqual(t, "reflect half", c.Transmission().Value, 0.5, 1e-12)

	c = New("dye")
	c.AddFilter("flat", Reflect)
	c.Compute(r)
	testutil.RequireNearlyEqual(t, "reflect full transmitter", c.Transmission().Value, 0, 0)

	// Reflectance of a >100% transmitter is clamped at zero, not negative.
	c = New("dye")
	c.AddFilter("over", Reflect)
	c.Compute(r)
	if tr := c.Transmission(); !tr.Valid || tr.Value != 0 {
		t.Fatalf("clamped reflect = %+v, want 0", tr)
	}
}

func TestComputeDoesNotMutateHead(t *testing.T) {
	t.Parallel()

	r := fixtures()
	before := r["dye"].Area()

	c := New("dye")
	c.AddFilter("longpass", Transmit)
	c.AddFilter("dichroic", Reflect)
	c.Compute(r)

	testutil.RequireNearlyEqual(t, "head area", r["dye"].Area(), before, 0)
	if c.Composite() == r["dye"] {
		t.Fatal("composite aliases the head spectrum")
	}
}

func TestComputeOrderIsPreserved(t *testing.T) {
	t.Parallel()

	r := fixtures()

	a := New("dye")
	a.AddFilter("over", Transmit)
	a.AddFilter("half", Reflect)
	a.Compute(r)

	b := New("dye")
	b.AddFilter("half", Reflect)
	b.AddFilter("over", Transmit)
	b.Compute(r)

	// Pointwise products agree up to rounding; the configured order itself
	// must survive Compute.
	if !a.Transmission().Valid || !b.Transmission().Valid {
		t.Fatal("expected valid efficiencies")
	}
	if a.LiveEntries()[1].Name != "over" || b.LiveEntries()[1].Name != "half" {
		t.Fatal("entry order changed by Compute")
	}
	testutil.RequireNearlyEqual(t, "over then half", a.Transmission().Value, 0.75, 1e-12)
	testutil.RequireNearlyEqual(t, "half then over", b.Transmission().Value, 0.75, 1e-12)
}

func TestComputeMissingFilterIsZero(t *testing.T) {
	t.Parallel()

	r := fixtures()
	c := New("dye")
	c.AddFilter("unknown", Transmit)
	c.Compute(r)

	tr := c.Transmission()
	if !tr.Valid || tr.Value != 0 {
		t.Fatalf("Transmission = %+v, want valid 0", tr)
	}
}

func TestComputeUndefinedCases(t *testing.T) {
	t.Parallel()

	r := fixtures()

	t.Run("empty chain", func(t *testing.T) {
		c := &Chain{}
		c.Compute(r)
		if c.Transmission().Valid || c.Composite() != nil {
			t.Fatal("empty chain must leave results undefined")
		}
	})

	t.Run("filters without head", func(t *testing.T) {
		c := New("")
		c.AddFilter("half", Transmit)
		c.Compute(r)
		if c.Transmission().Valid {
			t.Fatal("headless chain must leave efficiency undefined")
		}
	})

	t.Run("zero area head", func(t *testing.T) {
		c := New("never-fetched")
		c.Compute(r)
		if c.Transmission().Valid {
			t.Fatalf("zero-area head produced %+v", c.Transmission())
		}
		if c.Composite() == nil {
			t.Fatal("composite should still be available")
		}
	})
}

func TestMetric(t *testing.T) {
	t.Parallel()

	if Some(1).Scale(0.5).Value != 0.5 {
		t.Fatal("Scale")
	}
	if (Metric{}).Scale(2).Valid {
		t.Fatal("Scale of invalid metric became valid")
	}
	if Some(1).Scale(0).Valid != true {
		t.Fatal("zero is a valid value")
	}
	if !Some(2).Less(Some(1)) || Some(1).Less(Some(2)) {
		t.Fatal("valid ordering")
	}
	if !Some(-1).Less(Metric{}) || (Metric{}).Less(Some(-1)) || (Metric{}).Less(Metric{}) {
		t.Fatal("invalid metrics must sort last")
	}
	if (Metric{}).String() != "n/a" || Some(0.5).String() != "0.5" {
		t.Fatal("String")
	}
}
