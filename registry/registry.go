// Package registry maps spectrum names to lazily populated spectra and loads
// their raw data from a [source.Source].
//
// Names cover dyes, filters and light sources as well as the companion
// excitation spectra of three-column dye files (stored as name+"_ex") and
// any synthetic result slots a caller chooses to store.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/cwbudde/spectral-transmission/catalog"
	"github.com/cwbudde/spectral-transmission/parse"
	"github.com/cwbudde/spectral-transmission/source"
	"github.com/cwbudde/spectral-transmission/spectrum"
)

// ExcitationSuffix names the companion excitation spectrum of a dye.
const ExcitationSuffix = "_ex"

// ErrNoSource is returned when a fetch is requested from a registry that has
// no source.
var ErrNoSource = errors.New("registry: no source")

// Registry is a session-scoped name to spectrum map. It is safe for
// concurrent use.
type Registry struct {
	mu        sync.Mutex
	src       source.Source
	spectra   map[string]*spectrum.Spectrum
	locations map[string]string
	flight    singleflight.Group
	logger    *log.Logger
}

// New returns an empty registry reading from src. src may be nil for a
// registry populated only through [Registry.Set].
func New(src source.Source, opts ...Option) *Registry {
	cfg := ApplyOptions(opts...)
	return &Registry{
		src:       src,
		spectra:   make(map[string]*spectrum.Spectrum),
		locations: make(map[string]string),
		logger:    cfg.Logger,
	}
}

// Source returns the registry's source, or nil.
func (r *Registry) Source() source.Source { return r.src }

// Register binds name to a source location such as "dyes/FITC.csv".
func (r *Registry) Register(name, location string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locations[name] = location
}

// Location returns the source key for name. Unbound names are their own
// location.
func (r *Registry) Location(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if loc, ok := r.locations[name]; ok {
		return loc
	}
	return name
}

// RegisterCategory lists category in the source and registers every entry
// under its display name at "<category>/<file>".
func (r *Registry) RegisterCategory(ctx context.Context, category string) ([]catalog.Entry, error) {
	if r.src == nil {
		return nil, ErrNoSource
	}
	files, err := r.src.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("registry: list %s: %w", category, err)
	}
	entries := catalog.Entries(files)
	for _, e := range entries {
		r.Register(e.Name, source.Key(category, e.File))
	}
	return entries, nil
}

// Get returns the spectrum called name, creating an empty one on first
// reference. It never returns nil.
func (r *Registry) Get(name string) *spectrum.Spectrum {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.spectra[name]
	if !ok {
		s = spectrum.New(name)
		r.spectra[name] = s
	}
	return s
}

// Lookup returns the spectrum called name without creating it.
func (r *Registry) Lookup(name string) (*spectrum.Spectrum, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.spectra[name]
	return s, ok
}

// Set stores s under name, replacing any previous spectrum.
func (r *Registry) Set(name string, s *spectrum.Spectrum) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spectra[name] = s
}

// Names returns the names of all spectra referenced so far, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.spectra))
	for name := range r.spectra {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Invalidate drops name and its excitation companion so the next fetch
// reloads them.
func (r *Registry) Invalidate(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.spectra, name)
	delete(r.spectra, name+ExcitationSuffix)
}

// InvalidateKey invalidates every spectrum loaded from the source key and
// returns their names.
func (r *Registry) InvalidateKey(key string) []string {
	r.mu.Lock()
	var names []string
	for name, loc := range r.locations {
		if loc == key {
			names = append(names, name)
		}
	}
	if _, bound := r.locations[key]; !bound {
		if _, ok := r.spectra[key]; ok {
			names = append(names, key)
		}
	}
	r.mu.Unlock()

	sort.Strings(names)
	for _, name := range names {
		r.Invalidate(name)
	}
	return names
}

// load reads, parses and stores the data for name. A three-column file also
// populates the companion name+ExcitationSuffix.
func (r *Registry) load(ctx context.Context, name string) error {
	s := r.Get(name)
	if s.HasData() {
		return nil
	}
	key := r.Location(name)
	data, err := source.ReadAll(ctx, r.src, key)
	if err != nil {
		return fmt.Errorf("registry: fetch %s: %w", name, err)
	}
	res, err := parse.ParseString(string(data))
	if err != nil {
		return fmt.Errorf("registry: parse %s: %w", key, err)
	}
	if res.Skipped > 0 {
		r.logger.Printf("registry: %s: skipped %d of %d lines", key, res.Skipped, res.Lines+res.Skipped)
	}
	if res.Excitation != nil {
		r.Get(name + ExcitationSuffix).SetSample(*res.Excitation)
	}
	res.Apply(s)
	return nil
}
