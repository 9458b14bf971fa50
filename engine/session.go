package engine

import (
	"context"
	"log"
	"sync"

	"github.com/cwbudde/spectral-transmission/catalog"
	"github.com/cwbudde/spectral-transmission/chain"
	"github.com/cwbudde/spectral-transmission/registry"
)

// Session is one user's working configuration: an excitation chain headed
// by a light source and an emission chain headed by a dye.
type Session struct {
	mu     sync.Mutex
	reg    *registry.Registry
	ex     *chain.Chain
	em     *chain.Chain
	logger *log.Logger
	topN   int
}

// NewSession returns an empty session resolving spectra from reg.
func NewSession(reg *registry.Registry, opts ...Option) *Session {
	cfg := ApplyOptions(opts...)
	return &Session{
		reg:    reg,
		ex:     chain.New(""),
		em:     chain.New(""),
		logger: cfg.Logger,
		topN:   cfg.TopN,
	}
}

// Registry returns the session's registry.
func (s *Session) Registry() *registry.Registry { return s.reg }

// SelectDye sets the emission chain head. An empty name deselects.
func (s *Session) SelectDye(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.em.SetHead(name)
}

// Dye returns the selected dye, or "".
func (s *Session) Dye() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.em.Head()
}

// SelectExcitationSource sets the excitation chain head.
func (s *Session) SelectExcitationSource(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ex.SetHead(name)
}

// ExcitationSource returns the selected light source, or "".
func (s *Session) ExcitationSource() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ex.Head()
}

// AddFilter appends a filter to the emission path.
func (s *Session) AddFilter(name string, mode chain.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.em.AddFilter(name, mode)
}

// AddExcitationFilter appends a filter to the excitation path.
func (s *Session) AddExcitationFilter(name string, mode chain.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ex.AddFilter(name, mode)
}

// RemoveFilter removes a filter from the emission path, or failing that
// from the excitation path.
func (s *Session) RemoveFilter(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.em.RemoveFilter(name) || s.ex.RemoveFilter(name)
}

// ToggleMode flips a filter between transmission and reflection, looking in
// the emission path first.
func (s *Session) ToggleMode(name string) (chain.Mode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.em.ToggleMode(name); ok {
		return m, true
	}
	return s.ex.ToggleMode(name)
}

// Emission returns the live entries of the emission chain, dye first.
func (s *Session) Emission() []chain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.em.LiveEntries()
}

// Excitation returns the live entries of the excitation chain, light
// source first.
func (s *Session) Excitation() []chain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ex.LiveEntries()
}

// LoadFilterSet replaces both chains with a predefined set.
func (s *Session) LoadFilterSet(set catalog.FilterSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.em = chain.New(set.Dye, set.Filters...)
	s.ex = chain.New(set.ExcitationSource, set.ExcitationFilters...)
}

// Clear empties both chains.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.em.Reset()
	s.ex.Reset()
}

// Fetch loads every spectrum the chains reference. Failed fetches are
// logged and leave the spectrum empty; only a done ctx is an error.
func (s *Session) Fetch(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchLocked(ctx)
}

func (s *Session) fetchLocked(ctx context.Context, extra ...string) error {
	names := append(s.ex.Names(), s.em.Names()...)
	names = append(names, extra...)
	if err := registry.JoinAll(ctx, s.reg.FetchAll(ctx, names...)...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		s.logger.Printf("engine: continuing with missing spectra: %v", err)
	}
	return nil
}

// Compute fetches the referenced spectra and computes the configuration.
func (s *Session) Compute(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fetchLocked(ctx); err != nil {
		return Result{}, err
	}
	return ComputeEfficiencyAndBrightness(s.reg, s.ex, s.em), nil
}
