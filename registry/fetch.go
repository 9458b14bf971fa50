package registry

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Handle is the pending result of a [Registry.Fetch].
type Handle struct {
	name string
	done chan struct{}
	err  error
}

func newHandle(name string) *Handle {
	return &Handle{name: name, done: make(chan struct{})}
}

func (h *Handle) resolve(err error) {
	h.err = err
	close(h.done)
}

// Name returns the spectrum name being fetched.
func (h *Handle) Name() string { return h.name }

// Done is closed once the fetch has finished.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Err returns the fetch error. It is nil until Done is closed.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// Wait blocks until the fetch finishes or ctx is done.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Fetch starts loading name and returns immediately. Spectra that already
// hold data resolve at once; concurrent fetches of one name share a single
// load.
func (r *Registry) Fetch(ctx context.Context, name string) *Handle {
	h := newHandle(name)
	if r.Get(name).HasData() {
		h.resolve(nil)
		return h
	}
	if r.src == nil {
		h.resolve(ErrNoSource)
		return h
	}
	go func() {
		_, err, _ := r.flight.Do(name, func() (any, error) {
			return nil, r.load(ctx, name)
		})
		if err != nil {
			r.logger.Printf("%v", err)
		}
		h.resolve(err)
	}()
	return h
}

// FetchAll starts a fetch for every name.
func (r *Registry) FetchAll(ctx context.Context, names ...string) []*Handle {
	out := make([]*Handle, 0, len(names))
	for _, name := range names {
		out = append(out, r.Fetch(ctx, name))
	}
	return out
}

// JoinAll waits for every handle and returns the first error. A failed
// fetch does not stop the wait for the others.
func JoinAll(ctx context.Context, handles ...*Handle) error {
	var g errgroup.Group
	for _, h := range handles {
		g.Go(func() error { return h.Wait(ctx) })
	}
	return g.Wait()
}
