package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/cwbudde/spectral-transmission/catalog"
	"github.com/cwbudde/spectral-transmission/chain"
	"github.com/cwbudde/spectral-transmission/config"
	"github.com/cwbudde/spectral-transmission/engine"
	"github.com/cwbudde/spectral-transmission/registry"
	"github.com/cwbudde/spectral-transmission/source"
)

var categories = []string{source.CategoryDyes, source.CategoryFilters, source.CategoryExcitation}

type app struct {
	cfg     config.Config
	logger  *log.Logger
	out     io.Writer
	src     source.Source
	reg     *registry.Registry
	session *engine.Session
	listed  map[string][]catalog.Entry
	sets    []catalog.FilterSet
}

func newApp(ctx context.Context, cfg config.Config, logger *log.Logger, out io.Writer) (*app, error) {
	src, err := source.Open(ctx, cfg.SourceConfig())
	if err != nil {
		return nil, err
	}
	reg := registry.New(src, registry.WithLogger(logger))
	a := &app{
		cfg:     cfg,
		logger:  logger,
		out:     out,
		src:     src,
		reg:     reg,
		session: engine.NewSession(reg, engine.WithLogger(logger), engine.WithTopN(cfg.TopDyes)),
		listed:  make(map[string][]catalog.Entry),
	}
	for _, c := range categories {
		entries, err := reg.RegisterCategory(ctx, c)
		if errors.Is(err, source.ErrNotFound) {
			logger.Printf("no %s listing", c)
			continue
		}
		if err != nil {
			a.Close()
			return nil, err
		}
		a.listed[c] = entries
	}
	if err := a.loadSets(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) loadSets(ctx context.Context) error {
	rc, err := a.src.Open(ctx, source.SetsKey)
	if errors.Is(err, source.ErrNotFound) {
		a.sets = nil
		return nil
	}
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()
	a.sets, err = catalog.ParseSets(rc)
	return err
}

func (a *app) Close() {
	if c, ok := a.src.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.logger.Printf("closing source: %v", err)
		}
	}
}

func (a *app) findSet(name string) (catalog.FilterSet, bool) {
	if strings.EqualFold(name, "EMPTY") {
		return catalog.FilterSet{Name: "EMPTY"}, true
	}
	for _, s := range a.sets {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return catalog.FilterSet{}, false
}

// entryList collects repeated NAME[:MODE] flags.
type entryList []chain.Entry

func (l *entryList) String() string {
	parts := make([]string, len(*l))
	for i, e := range *l {
		parts[i] = e.Name + ":" + e.Mode.String()
	}
	return strings.Join(parts, ",")
}

func (l *entryList) Set(v string) error {
	name, mode := v, chain.Transmit
	if i := strings.LastIndex(v, ":"); i >= 0 {
		switch strings.ToLower(v[i+1:]) {
		case "t", "transmit":
			name = v[:i]
		case "r", "reflect":
			name, mode = v[:i], chain.Reflect
		}
	}
	if strings.TrimSpace(name) == "" {
		return errors.New("empty filter name")
	}
	*l = append(*l, chain.Entry{Name: name, Mode: mode})
	return nil
}

// configFlags registers the configuration flags shared by compute, rank and
// points, and returns a function applying them to the session.
func (a *app) configFlags(fs *flag.FlagSet) func() error {
	set := fs.String("set", "", "predefined filter set (EMPTY clears)")
	dye := fs.String("dye", "", "dye name")
	src := fs.String("source", "", "excitation light source")
	var filters, exFilters entryList
	fs.Var(&filters, "filter", "emission filter NAME[:t|r] (repeatable)")
	fs.Var(&exFilters, "exfilter", "excitation filter NAME[:t|r] (repeatable)")

	return func() error {
		if *set != "" {
			fset, ok := a.findSet(*set)
			if !ok {
				return fmt.Errorf("unknown filter set %q", *set)
			}
			a.session.LoadFilterSet(fset)
		}
		if *dye != "" {
			a.session.SelectDye(*dye)
		}
		if *src != "" {
			a.session.SelectExcitationSource(*src)
		}
		for _, f := range filters {
			a.session.AddFilter(f.Name, f.Mode)
		}
		for _, f := range exFilters {
			a.session.AddExcitationFilter(f.Name, f.Mode)
		}
		return nil
	}
}
