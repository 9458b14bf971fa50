package engine

import (
	"fmt"

	"github.com/cwbudde/spectral-transmission/chain"
	"github.com/cwbudde/spectral-transmission/registry"
	"github.com/cwbudde/spectral-transmission/spectrum"
)

// ReferenceBrightness is quantum yield times extinction coefficient of
// Alexa Fluor 488, the reference for relative brightness.
const ReferenceBrightness = 0.92 * 73000

// Registry slots holding the latest composite spectra.
const (
	ExcitationSlot  = "excitation"
	TransmittedSlot = "transmitted"
)

// Result holds the figures of one configuration. Each metric is invalid
// when it cannot be computed.
type Result struct {
	Excitation chain.Metric
	Emission   chain.Metric
	Brightness chain.Metric
}

// String renders the summary line, e.g.
// "Efficiency: ex 45.0%, em 80.1%, brightness 3.21".
func (r Result) String() string {
	switch {
	case r.Excitation.Valid && r.Emission.Valid && r.Brightness.Valid:
		return fmt.Sprintf("Efficiency: ex %.1f%%, em %.1f%%, brightness %.2f",
			100*r.Excitation.Value, 100*r.Emission.Value, r.Brightness.Value)
	case r.Excitation.Valid && r.Emission.Valid:
		return fmt.Sprintf("Efficiency: ex %.1f%%, em %.1f%%",
			100*r.Excitation.Value, 100*r.Emission.Value)
	case r.Emission.Valid:
		return fmt.Sprintf("Efficiency: %.1f%%", 100*r.Emission.Value)
	case r.Excitation.Valid:
		return fmt.Sprintf("Efficiency: ex %.1f%%", 100*r.Excitation.Value)
	default:
		return "Efficiency: n/a"
	}
}

// ComputeEfficiencyAndBrightness computes both chains against reg.
//
// The excitation composite is stored in the ExcitationSlot. When the dye
// (the emission head) has a companion excitation spectrum, the excitation
// composite is further weighted by it and the excitation efficiency scaled
// by the resulting area ratio. The emission composite is stored in the
// TransmittedSlot. Brightness is relative to ReferenceBrightness, times 10.
func ComputeEfficiencyAndBrightness(reg *registry.Registry, ex, em *chain.Chain) Result {
	var res Result
	dye := em.Head()

	ex.Compute(reg)
	if composite := ex.Composite(); composite != nil {
		res.Excitation = ex.Transmission()
		snapshot := composite.Copy(ExcitationSlot)
		reg.Set(ExcitationSlot, snapshot)
		if dye != "" {
			if cross, ok := reg.Lookup(dye + registry.ExcitationSuffix); ok && cross.HasData() {
				if err := composite.MultiplyBy(spectrum.Of(cross)); err == nil {
					res.Excitation = res.Excitation.Scale(composite.Area() / snapshot.Area())
				}
			}
		}
	}

	em.Compute(reg)
	if composite := em.Composite(); composite != nil {
		res.Emission = em.Transmission()
		reg.Set(TransmittedSlot, composite)
	}

	if dye == "" || !res.Excitation.Valid || !res.Emission.Valid {
		return res
	}
	d := reg.Get(dye)
	qy, okQY := d.QuantumYield()
	ec, okEC := d.ExtinctionCoefficient()
	if okQY && okEC {
		res.Brightness = chain.Some(res.Excitation.Value * qy * ec * res.Emission.Value / ReferenceBrightness * 10)
	}
	return res
}
