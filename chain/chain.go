package chain

import (
	"slices"
	"strings"

	"github.com/cwbudde/spectral-transmission/spectrum"
)

// Mode selects how a filter contributes to a chain.
type Mode int

const (
	// Transmit multiplies by the filter spectrum.
	Transmit Mode = iota
	// Reflect multiplies by the clamped complement of the filter spectrum.
	Reflect
)

// ParseMode maps "r"/"R" (or any string starting with r) to Reflect and
// everything else to Transmit.
func ParseMode(s string) Mode {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(s)), "r") {
		return Reflect
	}
	return Transmit
}

// String returns "t" or "r".
func (m Mode) String() string {
	if m == Reflect {
		return "r"
	}
	return "t"
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Reflect {
		return Transmit
	}
	return Reflect
}

// Entry is one step of a chain.
type Entry struct {
	Name string
	Mode Mode
}

// Resolver looks up spectra by name. Unknown names must resolve to an empty
// spectrum rather than nil; [*registry.Registry] satisfies this.
type Resolver interface {
	Get(name string) *spectrum.Spectrum
}

// Chain is an ordered filter stack behind a head spectrum. The zero value is
// an empty chain.
type Chain struct {
	head    string
	filters []Entry

	transmission Metric
	composite    *spectrum.Spectrum
}

// New returns a chain with the given head and filters.
func New(head string, filters ...Entry) *Chain {
	return &Chain{head: head, filters: slices.Clone(filters)}
}

// Head returns the head spectrum name, or "" if none is selected.
func (c *Chain) Head() string { return c.head }

// SetHead selects the head spectrum. An empty name clears it.
func (c *Chain) SetHead(name string) { c.head = name }

// AddFilter appends a filter step.
func (c *Chain) AddFilter(name string, mode Mode) {
	c.filters = append(c.filters, Entry{Name: name, Mode: mode})
}

// RemoveFilter removes the first filter step named name and reports whether
// one was found. Later steps move up; order is otherwise preserved.
func (c *Chain) RemoveFilter(name string) bool {
	i := c.index(name)
	if i < 0 {
		return false
	}
	c.filters = slices.Delete(c.filters, i, i+1)
	return true
}

// SetMode changes the mode of the first filter step named name.
func (c *Chain) SetMode(name string, mode Mode) bool {
	i := c.index(name)
	if i < 0 {
		return false
	}
	c.filters[i].Mode = mode
	return true
}

// ToggleMode flips the mode of the first filter step named name and returns
// the new mode.
func (c *Chain) ToggleMode(name string) (Mode, bool) {
	i := c.index(name)
	if i < 0 {
		return Transmit, false
	}
	c.filters[i].Mode = c.filters[i].Mode.Toggle()
	return c.filters[i].Mode, true
}

func (c *Chain) index(name string) int {
	return slices.IndexFunc(c.filters, func(e Entry) bool { return e.Name == name })
}

// Filters returns a copy of the filter steps, head excluded.
func (c *Chain) Filters() []Entry {
	return slices.Clone(c.filters)
}

// LiveEntries returns the head (if selected, in Transmit mode) followed by
// the filter steps in application order.
func (c *Chain) LiveEntries() []Entry {
	out := make([]Entry, 0, len(c.filters)+1)
	if c.head != "" {
		out = append(out, Entry{Name: c.head, Mode: Transmit})
	}
	return append(out, c.filters...)
}

// Names returns the spectrum names referenced by the live entries.
func (c *Chain) Names() []string {
	entries := c.LiveEntries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

// Len returns the number of live entries.
func (c *Chain) Len() int {
	n := len(c.filters)
	if c.head != "" {
		n++
	}
	return n
}

// Reset clears the head, the filters and any computed results.
func (c *Chain) Reset() {
	c.head = ""
	c.filters = nil
	c.transmission = Metric{}
	c.composite = nil
}

// Transmission returns the efficiency from the last Compute.
func (c *Chain) Transmission() Metric { return c.transmission }

// Composite returns the composite spectrum from the last Compute, or nil.
// The chain owns it; it is replaced on the next Compute.
func (c *Chain) Composite() *spectrum.Spectrum { return c.composite }

// Compute applies the filters to a snapshot of the head spectrum and stores
// the composite spectrum and the transmission efficiency (composite area
// over head area). Without a head both results are cleared.
func (c *Chain) Compute(r Resolver) {
	c.transmission = Metric{}
	c.composite = nil
	if c.head == "" {
		return
	}

	head := r.Get(c.head)
	initial := head.Area()
	composite := head.Copy(c.head)
	for _, e := range c.filters {
		f := r.Get(e.Name)
		if e.Mode == Reflect {
			// Values has exactly GridSize entries, so MultiplyBy cannot fail.
			_ = composite.MultiplyBy(spectrum.Values(Reflectance(f)))
			continue
		}
		_ = composite.MultiplyBy(spectrum.Of(f))
	}

	c.composite = composite
	c.transmission = Some(composite.Area() / initial)
}

// Reflectance returns max(0, 1-T) for each grid value of the transmission
// spectrum s.
func Reflectance(s *spectrum.Spectrum) []float64 {
	vals := s.Values()
	for i, v := range vals {
		vals[i] = max(0, 1-v)
	}
	return vals
}
