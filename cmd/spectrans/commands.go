package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/spectral-transmission/chain"
	"github.com/cwbudde/spectral-transmission/engine"
	"github.com/cwbudde/spectral-transmission/source"
	"github.com/cwbudde/spectral-transmission/stats"
	"github.com/cwbudde/spectral-transmission/style"
)

func (a *app) list(_ context.Context, args []string) error {
	what := categories
	if len(args) > 0 {
		what = args
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, c := range what {
		if c == source.SetsKey {
			for _, s := range a.sets {
				fmt.Fprintf(tw, "sets\t%s\t%s\t%s\n", s.Name, s.Dye, s.ExcitationSource)
			}
			continue
		}
		entries, ok := a.listed[c]
		if !ok {
			if !isCategory(c) {
				return fmt.Errorf("unknown category %q", c)
			}
			continue
		}
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", c, e.Name, e.File)
		}
	}
	return tw.Flush()
}

func isCategory(c string) bool {
	for _, k := range categories {
		if k == c {
			return true
		}
	}
	return false
}

func (a *app) compute(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("compute", flag.ContinueOnError)
	apply := a.configFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := apply(); err != nil {
		return err
	}
	if err := a.computeOnce(ctx); err != nil {
		return err
	}
	if !a.cfg.Watch {
		return nil
	}
	return a.watch(ctx)
}

func (a *app) computeOnce(ctx context.Context) error {
	res, err := a.session.Compute(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Trace\tMode\tPeak [nm]\tHue\tDash\n")
	fmt.Fprintf(tw, "-----\t----\t---------\t---\t----\n")
	var dashes style.DashCycle
	traces := append(a.session.Excitation(), a.session.Emission()...)
	heads := map[string]bool{a.session.Dye(): true, a.session.ExcitationSource(): true}
	for _, e := range traces {
		d := stats.Describe(a.reg.Get(e.Name))
		dash := "solid"
		if !heads[e.Name] {
			dash = fmt.Sprint([]float64(dashes.Next()))
		}
		fmt.Fprintf(tw, "%s\t%s\t%.0f\t%.0f\t%s\n", e.Name, e.Mode, d.PeakWavelength, style.WavelengthToHue(d.PeakWavelength), dash)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if tr, ok := a.reg.Lookup(engine.TransmittedSlot); ok && res.Emission.Valid {
		d := stats.Describe(tr)
		fmt.Fprintf(a.out, "transmitted: peak %.0f nm, centroid %.1f nm, FWHM %.1f nm, area %.2f\n",
			d.PeakWavelength, d.Centroid, d.FWHM, d.Area)
	}
	fmt.Fprintln(a.out, res)
	return nil
}

func (a *app) watch(ctx context.Context) error {
	dir, ok := a.src.(*source.Dir)
	if !ok {
		return fmt.Errorf("watch needs a directory source")
	}
	changes := make(chan string, 64)
	w, err := dir.Watch(func(key string) {
		select {
		case changes <- key:
		default:
			a.logger.Printf("dropped change of %s", key)
		}
	})
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()
	a.logger.Printf("watching %s", dir.Root())

	for {
		select {
		case <-ctx.Done():
			return nil
		case key := <-changes:
			names := a.reg.InvalidateKey(key)
			if len(names) == 0 {
				continue
			}
			a.logger.Printf("reloading %s", strings.Join(names, ", "))
			if err := a.computeOnce(ctx); err != nil {
				return err
			}
		}
	}
}

func (a *app) rank(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rank", flag.ContinueOnError)
	apply := a.configFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := apply(); err != nil {
		return err
	}
	candidates := fs.Args()
	if len(candidates) == 0 {
		for _, e := range a.listed[source.CategoryDyes] {
			candidates = append(candidates, e.Name)
		}
	}
	r, err := a.session.RankDyes(ctx, candidates)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tBest excitation\t\tBest emission\t\tBrightest\t\n")
	n := max(len(r.BestExcitation), len(r.BestEmission), len(r.BestBrightness))
	for i := range n {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", i+1,
			rankedName(r.BestExcitation, i), rankedPercent(r.BestExcitation, i),
			rankedName(r.BestEmission, i), rankedPercent(r.BestEmission, i),
			rankedName(r.BestBrightness, i), rankedBrightness(r.BestBrightness, i))
	}
	return tw.Flush()
}

func rankedName(r []engine.Ranked, i int) string {
	if i >= len(r) {
		return ""
	}
	return r[i].Dye
}

func rankedPercent(r []engine.Ranked, i int) string {
	if i >= len(r) {
		return ""
	}
	return metricString(r[i].Value, func(v float64) string { return fmt.Sprintf("%.1f%%", 100*v) })
}

func rankedBrightness(r []engine.Ranked, i int) string {
	if i >= len(r) {
		return ""
	}
	return metricString(r[i].Value, func(v float64) string { return fmt.Sprintf("%.2f", v) })
}

func metricString(m chain.Metric, format func(float64) string) string {
	if !m.Valid {
		return m.String()
	}
	return format(m.Value)
}

func (a *app) points(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("points", flag.ContinueOnError)
	apply := a.configFlags(fs)
	slot := fs.String("slot", engine.TransmittedSlot, "spectrum to dump: transmitted, excitation or any spectrum name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := apply(); err != nil {
		return err
	}
	if _, err := a.session.Compute(ctx); err != nil {
		return err
	}
	if err := a.fetchSpectrum(ctx, *slot); err != nil {
		return err
	}
	s, ok := a.reg.Lookup(*slot)
	if !ok {
		return fmt.Errorf("no spectrum %q", *slot)
	}
	fmt.Fprintf(a.out, "wavelength\t%s\n", *slot)
	for _, p := range s.Points() {
		fmt.Fprintf(a.out, "%g\t%.6g\n", p.Wavelength, p.Value)
	}
	return nil
}

// fetchSpectrum loads name unless it is one of the computed slots.
func (a *app) fetchSpectrum(ctx context.Context, name string) error {
	if name == engine.TransmittedSlot || name == engine.ExcitationSlot {
		return nil
	}
	if err := a.reg.Fetch(ctx, name).Wait(ctx); err != nil {
		return fmt.Errorf("fetch %s: %w", name, err)
	}
	return nil
}
